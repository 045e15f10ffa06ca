// PantryChef - Ingredient-Driven Recipe Discovery
// Copyright 2026 PantryChef contributors
// SPDX-License-Identifier: MIT
// https://github.com/pantrychef/pantrychef

// Package generation calls a generative model to invent recipes from a
// pantry list. The upstream model can be slow and occasionally overloaded,
// so calls run behind a circuit breaker with a bounded retry budget.
package generation

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/sony/gobreaker/v2"

	"github.com/pantrychef/pantrychef/internal/logging"
)

// ErrNotConfigured is returned when generation is disabled or missing an
// API key.
var ErrNotConfigured = errors.New("recipe generation is not configured")

// ErrModelOverloaded is returned when the model stays overloaded through
// the whole retry budget.
var ErrModelOverloaded = errors.New("generation model overloaded")

// GeneratedRecipe is one model-invented recipe.
type GeneratedRecipe struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Ingredients []string `json:"ingredients"`
	Directions  []string `json:"directions"`
	PrepTime    string   `json:"prep_time"`
	CookTime    string   `json:"cook_time"`
	Servings    string   `json:"servings"`
	Cuisine     string   `json:"cuisine"`
	Course      string   `json:"course"`
	Category    string   `json:"category"`
	Region      string   `json:"region,omitempty"`
	ImageURL    string   `json:"image_url,omitempty"`
}

// Config controls the generation client.
type Config struct {
	APIKey     string
	Endpoint   string
	Model      string
	Timeout    time.Duration
	MaxRetries int
}

// Client talks to the generative model endpoint.
type Client struct {
	cfg     Config
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[[]GeneratedRecipe]
	// sleep is swapped out in tests to avoid real backoff waits.
	sleep func(time.Duration)
}

// NewClient creates a generation client. Returns ErrNotConfigured when the
// API key is empty so callers can surface a clean 503.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrNotConfigured
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = "https://generativelanguage.googleapis.com/v1beta"
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 5
	}

	c := &Client{
		cfg:   cfg,
		http:  &http.Client{Timeout: cfg.Timeout},
		sleep: time.Sleep,
	}

	c.breaker = gobreaker.NewCircuitBreaker[[]GeneratedRecipe](gobreaker.Settings{
		Name:        "generation",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("generation circuit breaker state change")
		},
	})

	return c, nil
}

// Generate asks the model for recipes built around the given ingredients.
// count is clamped to 6 to keep responses inside the model's output window.
func (c *Client) Generate(ctx context.Context, ingredients []string, count int) ([]GeneratedRecipe, error) {
	if count <= 0 || count > 6 {
		count = 6
	}

	return c.breaker.Execute(func() ([]GeneratedRecipe, error) {
		return c.generate(ctx, ingredients, count)
	})
}

// generate performs the HTTP call with retries on overload.
func (c *Client) generate(ctx context.Context, ingredients []string, count int) ([]GeneratedRecipe, error) {
	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{
			Parts: []geminiPart{{Text: buildPrompt(ingredients, count)}},
		}},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     0.7,
			MaxOutputTokens: 8192,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal generation request: %w", err)
	}

	reqURL := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		strings.TrimRight(c.cfg.Endpoint, "/"), c.cfg.Model, c.cfg.APIKey)

	for attempt := 0; attempt < c.cfg.MaxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("build generation request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, fmt.Errorf("call generation model: %w", err)
		}

		if resp.StatusCode == http.StatusServiceUnavailable {
			resp.Body.Close()
			if attempt == c.cfg.MaxRetries-1 {
				return nil, ErrModelOverloaded
			}
			// Linear backoff: 5s, 10s, 15s, ...
			wait := time.Duration(attempt+1) * 5 * time.Second
			logging.Ctx(ctx).Warn().
				Int("attempt", attempt+1).
				Dur("wait", wait).
				Msg("generation model overloaded, retrying")
			c.sleep(wait)
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("generation model returned status %d", resp.StatusCode)
		}

		var payload geminiResponse
		err = json.NewDecoder(resp.Body).Decode(&payload)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("decode generation response: %w", err)
		}

		if len(payload.Candidates) == 0 || len(payload.Candidates[0].Content.Parts) == 0 {
			return nil, fmt.Errorf("generation response contained no candidates")
		}

		recipes, err := ParseRecipeJSON(payload.Candidates[0].Content.Parts[0].Text)
		if err != nil {
			return nil, err
		}
		return recipes, nil
	}

	return nil, ErrModelOverloaded
}

// ParseRecipeJSON extracts a recipe array from model output. Markdown code
// fences are stripped, and a truncated array is salvaged by closing it
// after the last complete object.
func ParseRecipeJSON(text string) ([]GeneratedRecipe, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var recipes []GeneratedRecipe
	if err := json.Unmarshal([]byte(text), &recipes); err == nil {
		return recipes, nil
	}

	// The model sometimes runs out of output tokens mid-array. Close the
	// array after the last complete object and try again.
	if strings.HasPrefix(text, "[") && !strings.HasSuffix(text, "]") {
		if lastBrace := strings.LastIndex(text, "}"); lastBrace > 0 {
			salvaged := text[:lastBrace+1] + "]"
			if err := json.Unmarshal([]byte(salvaged), &recipes); err == nil {
				logging.Info().Int("recipes", len(recipes)).Msg("salvaged truncated generation response")
				return recipes, nil
			}
		}
	}

	return nil, fmt.Errorf("generation response is not valid recipe JSON")
}

// buildPrompt produces the structured generation prompt.
func buildPrompt(ingredients []string, count int) string {
	return fmt.Sprintf(`Generate %d diverse and creative recipes using these ingredients: %s

For each recipe, provide a creative name, a 2-3 sentence description covering
the dish's origin and taste profile, a complete ingredient list with
measurements, step-by-step cooking instructions, preparation time, cooking
time, servings, cuisine type, course, and a category that is one of
VEGETARIAN, NON-VEGETARIAN, VEGAN, or EGGETARIAN. For Indian dishes, include
the state or region of origin in brackets after the cuisine type.

Format your response as a valid JSON array with this exact structure:
[
  {
    "title": "Recipe Name",
    "description": "...",
    "ingredients": ["ingredient 1 with measurement", "..."],
    "directions": ["step 1", "..."],
    "prep_time": "15 min",
    "cook_time": "30 min",
    "servings": "4 servings",
    "cuisine": "North Indian (Punjab)",
    "course": "Main Course",
    "category": "VEGETARIAN",
    "region": "Punjab"
  }
]

Important: Return ONLY valid JSON, no additional text or markdown formatting.`,
		count, strings.Join(ingredients, ", "))
}

// Gemini API wire types.

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}
