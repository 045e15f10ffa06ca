// PantryChef - Ingredient-Driven Recipe Discovery
// Copyright 2026 PantryChef contributors
// SPDX-License-Identifier: MIT
// https://github.com/pantrychef/pantrychef

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/pantrychef/pantrychef/internal/cache"
	"github.com/pantrychef/pantrychef/internal/enrich"
	"github.com/pantrychef/pantrychef/internal/match"
	"github.com/pantrychef/pantrychef/internal/metrics"
	"github.com/pantrychef/pantrychef/internal/models"
	"github.com/pantrychef/pantrychef/internal/nutrition"
)

type recommendRequest struct {
	Ingredients []string `json:"ingredients" validate:"required,min=1,max=50"`
	TopN        *int     `json:"top_n,omitempty" validate:"omitempty,gte=1,lte=50"`
	MaxMissing  *int     `json:"max_missing,omitempty" validate:"omitempty,gte=0,lte=20"`
}

type recommendResponse struct {
	Matches []models.RecipeMatch `json:"matches"`
	Total   int                  `json:"total"`
	Pantry  []string             `json:"pantry"`
}

// Recommend ranks catalog recipes against the caller's pantry.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req recommendRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	cacheKey := cache.GenerateKey("recommend", req)
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

	for i := range matches {
		h.enrichRecipe(r.Context(), &matches[i].Recipe)
	}

	resp := recommendResponse{
		Matches: matches,
		Total:   len(matches),
		Pantry:  req.Ingredients,
	}
	h.cacheSet(cacheKey, resp)
	respondSuccess(w, resp, start, false)
}

// enrichRecipe fills derived fields the dataset does not carry: region,
// nutrition estimate, and an image URL.
func (h *Handler) enrichRecipe(ctx context.Context, recipe *models.Recipe) {
	if recipe.Region == "" {
		recipe.Region = enrich.Region(recipe.Cuisine, recipe.Name)
	}
	if recipe.Nutrition == nil {
		info := nutrition.Estimate(recipe.Name, recipe.Ingredients)
		recipe.Nutrition = &info
	}
	if recipe.ImageURL == "" && h.images != nil {
		recipe.ImageURL = h.images.Resolve(ctx, recipe.Name, recipe.Cuisine)
	}
}
