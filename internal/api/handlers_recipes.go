// PantryChef - Ingredient-Driven Recipe Discovery
// Copyright 2026 PantryChef contributors
// SPDX-License-Identifier: MIT
// https://github.com/pantrychef/pantrychef

package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pantrychef/pantrychef/internal/cache"
	"github.com/pantrychef/pantrychef/internal/ingredient"
	"github.com/pantrychef/pantrychef/internal/match"
	"github.com/pantrychef/pantrychef/internal/metrics"
	"github.com/pantrychef/pantrychef/internal/models"
)

// recipeCard is the compact shape used by browse and result-card views.
type recipeCard struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Cuisine         string   `json:"cuisine,omitempty"`
	Region          string   `json:"region,omitempty"`
	Course          string   `json:"course,omitempty"`
	Diet            string   `json:"diet,omitempty"`
	ImageURL        string   `json:"image_url,omitempty"`
	Calories        int      `json:"calories,omitempty"`
	MatchPercentage *float64 `json:"match_percentage,omitempty"`
	MissingCount    *int     `json:"missing_count,omitempty"`
}

func (h *Handler) toCard(r *http.Request, recipe models.Recipe) recipeCard {
	h.enrichRecipe(r.Context(), &recipe)
	card := recipeCard{
		ID:       recipe.ID,
		Name:     recipe.Name,
		Cuisine:  recipe.Cuisine,
		Region:   recipe.Region,
		Course:   recipe.Course,
		Diet:     recipe.Diet,
		ImageURL: recipe.ImageURL,
	}
	if recipe.Nutrition != nil {
		card.Calories = recipe.Nutrition.Calories
	}
	return card
}

// SearchByIngredients runs the same ranking as Recommend but responds with
// compact result cards.
func (h *Handler) SearchByIngredients(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req recommendRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	cacheKey := cache.GenerateKey("search_ingredients", req)
	if cached, ok := h.cacheGet(cacheKey); ok {
		metrics.CacheHits.Inc()
		respondSuccess(w, cached, start, true)
		return
	}
	metrics.CacheMisses.Inc()

	matches, err := h.engine.Rank(r.Context(), req.Ingredients, match.Options{
		TopN:       req.TopN,
		MaxMissing: req.MaxMissing,
	})
	if err != nil {
		h.respondRankError(w, err)
		return
	}

	cards := make([]recipeCard, 0, len(matches))
	for _, m := range matches {
		card := h.toCard(r, m.Recipe)
		pct := m.MatchPercentage
		missing := len(m.MissingIngredients)
		card.MatchPercentage = &pct
		card.MissingCount = &missing
		cards = append(cards, card)
	}

	resp := map[string]interface{}{
		"results": cards,
		"total":   len(cards),
	}
	h.cacheSet(cacheKey, resp)
	respondSuccess(w, resp, start, false)
}

func (h *Handler) respondRankError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, match.ErrNoIngredients):
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR",
			"no usable ingredients in request", nil)
	case errors.Is(err, match.ErrNotTrained):
		respondError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE",
			"matching engine not trained", nil)
	default:
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR",
			"recommendation failed", err)
	}
}

// SearchRecipes searches titles by keyword. An empty query returns a random
// sample so browse pages are never empty.
func (h *Handler) SearchRecipes(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	limit := getIntParam(r, "limit", 12)
	if limit < 1 || limit > 100 {
		limit = 12
	}

	recipes := h.store.Search(query, limit)
	cards := make([]recipeCard, 0, len(recipes))
	for _, recipe := range recipes {
		cards = append(cards, h.toCard(r, recipe))
	}

	respondSuccess(w, map[string]interface{}{
		"results": cards,
		"total":   len(cards),
		"query":   query,
	}, start, false)
}

// FeaturedRecipe returns the current featured dish. The pick rotates every
// two minutes over a curated list.
func (h *Handler) FeaturedRecipe(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	recipe, ok := h.store.Featured(time.Now())
	if !ok {
		respondError(w, http.StatusNotFound, "NOT_FOUND",
			"no featured recipe available", nil)
		return
	}
	h.enrichRecipe(r.Context(), &recipe)
	respondSuccess(w, recipe, start, false)
}

// LatestRecipes returns the newest catalog entries.
func (h *Handler) LatestRecipes(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	limit := getIntParam(r, "limit", 8)
	if limit < 1 || limit > 50 {
		limit = 8
	}

	recipes := h.store.Latest(limit)
	cards := make([]recipeCard, 0, len(recipes))
	for _, recipe := range recipes {
		cards = append(cards, h.toCard(r, recipe))
	}
	respondSuccess(w, map[string]interface{}{
		"results": cards,
		"total":   len(cards),
	}, start, false)
}

// RecipeByName returns full recipe detail including the nutrition estimate.
func (h *Handler) RecipeByName(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	name := chi.URLParam(r, "name")
	recipe, ok := h.store.ByName(name)
	if !ok {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "recipe not found", nil)
		return
	}
	h.enrichRecipe(r.Context(), &recipe)
	respondSuccess(w, recipe, start, false)
}

// IngredientSubstitutes returns known substitutions for an ingredient.
func (h *Handler) IngredientSubstitutes(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	name := chi.URLParam(r, "name")
	normalized := ingredient.Normalize(name)
	if normalized == "" {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR",
			"ingredient name is empty after normalization", nil)
		return
	}

	subs := ingredient.Substitutes(normalized)
	respondSuccess(w, map[string]interface{}{
		"ingredient":  normalized,
		"substitutes": subs,
	}, start, false)
}
