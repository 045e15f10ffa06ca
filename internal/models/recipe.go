// PantryChef - Ingredient-Driven Recipe Discovery
// Copyright 2026 PantryChef contributors
// SPDX-License-Identifier: MIT
// https://github.com/pantrychef/pantrychef

// Package models holds the wire and domain types shared across PantryChef.
package models

// Recipe is a single dish in the catalog.
type Recipe struct {
	// ID is a stable UUID assigned at load time.
	ID string `json:"id"`
	// Name is the display name of the dish.
	Name string `json:"name"`
	// Ingredients is the raw ingredient list as written in the source data.
	Ingredients []string `json:"ingredients"`
	// CleanedIngredients is the normalized form used for matching.
	CleanedIngredients []string `json:"cleaned_ingredients,omitempty"`
	// Diet is e.g. "vegetarian" or "non vegetarian".
	Diet string `json:"diet,omitempty"`
	// Course is e.g. "main course", "dessert", "snack".
	Course string `json:"course,omitempty"`
	// FlavorProfile is e.g. "spicy", "sweet".
	FlavorProfile string `json:"flavor_profile,omitempty"`
	// Cuisine is the cuisine the dish belongs to.
	Cuisine string `json:"cuisine,omitempty"`
	// Region is the geographic origin, derived when the source omits it.
	Region string `json:"region,omitempty"`
	// Tags are derived labels used by keyword search.
	Tags []string `json:"tags,omitempty"`
	// ImageURL points at a representative photo of the dish.
	ImageURL string `json:"image_url,omitempty"`
	// Nutrition is a per-serving estimate.
	Nutrition *NutritionInfo `json:"nutrition,omitempty"`
}

// NutritionInfo is an estimated per-serving nutritional breakdown.
type NutritionInfo struct {
	Calories int     `json:"calories"`
	ProteinG float64 `json:"protein_g"`
	CarbsG   float64 `json:"carbs_g"`
	FatG     float64 `json:"fat_g"`
	FiberG   float64 `json:"fiber_g"`
	SodiumMG int     `json:"sodium_mg"`
}

// RecipeMatch is a recipe scored against a user's ingredient list.
type RecipeMatch struct {
	Recipe Recipe `json:"recipe"`
	// Score is the boosted cosine similarity used for ranking.
	Score float64 `json:"score"`
	// MatchCount is how many recipe ingredients the user already has.
	MatchCount int `json:"match_count"`
	// MatchPercentage is MatchCount over the recipe's ingredient count,
	// expressed as 0-100.
	MatchPercentage float64 `json:"match_percentage"`
	// PresentIngredients are the recipe ingredients covered by the pantry.
	PresentIngredients []string `json:"present_ingredients"`
	// MissingIngredients are the recipe ingredients still needed.
	MissingIngredients []string `json:"missing_ingredients"`
	// Substitutions records pantry items accepted in place of a recipe
	// ingredient, keyed by the ingredient they replace.
	Substitutions map[string]string `json:"substitutions,omitempty"`
}

// User is a registered account.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email,omitempty"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
	CreatedAt    int64  `json:"created_at"`
}
