// PantryChef - Ingredient-Driven Recipe Discovery
// Copyright 2026 PantryChef contributors
// SPDX-License-Identifier: MIT
// https://github.com/pantrychef/pantrychef

package api

import (
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/pantrychef/pantrychef/internal/enrich"
	"github.com/pantrychef/pantrychef/internal/generation"
	"github.com/pantrychef/pantrychef/internal/ingredient"
	"github.com/pantrychef/pantrychef/internal/metrics"
	"github.com/pantrychef/pantrychef/internal/models"
	"github.com/pantrychef/pantrychef/internal/nutrition"
)

type generateRequest struct {
	Ingredients []string `json:"ingredients" validate:"required,min=1,max=30"`
	Count       int      `json:"count,omitempty" validate:"omitempty,gte=1,lte=6"`
}

// generatedRecipe is a generated result plus the derived fields clients
// render on recipe cards: nutrition estimate and pantry match info.
type generatedRecipe struct {
	generation.GeneratedRecipe
	Nutrition          *models.NutritionInfo `json:"nutrition"`
	MatchPercentage    float64               `json:"match_percentage"`
	MatchingCount      int                   `json:"matching_count"`
	PresentIngredients []string              `json:"present_ingredients"`
	MissingIngredients []string              `json:"missing_ingredients"`
}

type imagePromptRequest struct {
	Name        string   `json:"name" validate:"required,min=1,max=200"`
	Ingredients []string `json:"ingredients,omitempty" validate:"omitempty,max=50"`
	Cuisine     string   `json:"cuisine,omitempty" validate:"omitempty,max=64"`
}

// GenerateRecipes asks the generative model for recipe ideas built around
// the caller's ingredients.
func (h *Handler) GenerateRecipes(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if h.generator == nil {
		respondError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE",
			"recipe generation is not configured", nil)
		return
	}

	var req generateRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}
	count := req.Count
	if count == 0 {
		count = 3
	}

	recipes, err := h.generator.Generate(r.Context(), req.Ingredients, count)
	metrics.RecordGeneration(time.Since(start), err)
	if err != nil {
		if errors.Is(err, generation.ErrModelOverloaded) {
			respondError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE",
				"generation model is overloaded, try again later", nil)
			return
		}
		respondError(w, http.StatusBadGateway, "SERVICE_UNAVAILABLE",
			"recipe generation failed", err)
		return
	}

	// Generated recipes arrive bare; attach imagery, nutrition, and pantry
	// match info so clients can render cards immediately.
	pantry := ingredient.NormalizeList(req.Ingredients)
	enriched := make([]generatedRecipe, 0, len(recipes))
	for i := range recipes {
		if recipes[i].ImageURL == "" && h.images != nil {
			recipes[i].ImageURL = h.images.Resolve(r.Context(), recipes[i].Title, recipes[i].Cuisine)
		}
		if recipes[i].Region == "" {
			recipes[i].Region = enrich.Region(recipes[i].Cuisine, recipes[i].Title)
		}
		enriched = append(enriched, enrichGenerated(recipes[i], pantry))
	}

	respondSuccess(w, map[string]interface{}{
		"recipes": enriched,
		"total":   len(enriched),
	}, start, false)
}

// enrichGenerated derives nutrition and pantry coverage for one generated
// recipe. The pantry must already be normalized.
func enrichGenerated(recipe generation.GeneratedRecipe, pantry []string) generatedRecipe {
	info := nutrition.Estimate(recipe.Title, recipe.Ingredients)
	out := generatedRecipe{
		GeneratedRecipe:    recipe,
		Nutrition:          &info,
		PresentIngredients: []string{},
		MissingIngredients: []string{},
	}

	cleaned := ingredient.NormalizeList(recipe.Ingredients)
	for _, ing := range cleaned {
		covered := false
		for _, item := range pantry {
			if ok, _ := ingredient.Covers(item, ing); ok {
				covered = true
				break
			}
		}
		if covered {
			out.PresentIngredients = append(out.PresentIngredients, ing)
		} else {
			out.MissingIngredients = append(out.MissingIngredients, ing)
		}
	}

	out.MatchingCount = len(out.PresentIngredients)
	if len(cleaned) > 0 {
		out.MatchPercentage = math.Round(100 * float64(out.MatchingCount) / float64(len(cleaned)))
	}
	return out
}

// ImagePrompt builds a photorealistic image-generation prompt for a dish.
func (h *Handler) ImagePrompt(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req imagePromptRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	ingredients := req.Ingredients
	if len(ingredients) == 0 {
		if recipe, ok := h.store.ByName(req.Name); ok {
			ingredients = recipe.Ingredients
			if req.Cuisine == "" {
				req.Cuisine = recipe.Cuisine
			}
		}
	}

	respondSuccess(w, map[string]string{
		"name":   req.Name,
		"prompt": enrich.ImagePrompt(req.Name, ingredients, req.Cuisine),
	}, start, false)
}
