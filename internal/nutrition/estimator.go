// PantryChef - Ingredient-Driven Recipe Discovery
// Copyright 2026 PantryChef contributors
// SPDX-License-Identifier: MIT
// https://github.com/pantrychef/pantrychef

// Package nutrition produces rough per-serving nutrition estimates. The
// numbers are heuristic, tuned for typical Indian home cooking, and meant
// for display rather than dietary planning.
package nutrition

import (
	"strings"

	"github.com/pantrychef/pantrychef/internal/ingredient"
	"github.com/pantrychef/pantrychef/internal/models"
)

// calorieTable maps ingredient keywords to approximate calories per
// standard serving portion.
var calorieTable = map[string]int{
	"rice": 130, "onion": 40, "tomato": 18, "paneer": 265,
	"ghee": 112, "milk": 42, "yogurt": 59, "curd": 59,
	"flour": 364, "wheat": 340, "potato": 77, "carrot": 41,
	"chicken": 165, "mutton": 294, "fish": 206, "egg": 155,
	"lentil": 116, "dal": 116, "chickpea": 164, "gram": 164,
}

// Calories sums table calories for every known ingredient in the list.
// Unknown ingredients contribute nothing.
func Calories(ingredients []string) int {
	total := 0
	for _, item := range ingredients {
		clean := ingredient.Normalize(item)
		for keyword, cals := range calorieTable {
			if strings.Contains(clean, keyword) {
				total += cals
			}
		}
	}
	return total
}

// dish classes adjust the baseline estimate by name keywords.
var (
	highProteinDishes = []string{"paneer", "chicken", "mutton", "fish", "egg", "dal", "rajma"}
	carbHeavyDishes   = []string{"biryani", "pulao", "rice", "naan", "roti", "paratha"}
	friedDishes       = []string{"pakora", "samosa", "bhature", "puri", "tikki"}
	sweetDishes       = []string{"gulab", "jamun", "kheer", "halwa", "ladoo", "barfi"}
	lightDishes       = []string{"salad", "raita", "chutney"}
)

// Estimate produces a per-serving estimate for a dish. It starts from a
// typical curry baseline and shifts macros by dish-name keywords; later
// rules stack on earlier ones ("paneer tikki" is both high-protein and
// fried).
func Estimate(recipeName string, ingredients []string) models.NutritionInfo {
	info := models.NutritionInfo{
		Calories: 350,
		ProteinG: 12,
		CarbsG:   45,
		FatG:     15,
		FiberG:   6,
		SodiumMG: 800,
	}

	name := strings.ToLower(recipeName)
	if containsAny(name, highProteinDishes) {
		info.ProteinG = 20
		info.Calories = 400
	}
	if containsAny(name, carbHeavyDishes) {
		info.CarbsG = 60
		info.Calories = 450
	}
	if containsAny(name, friedDishes) {
		info.FatG = 25
		info.Calories = 500
	}
	if containsAny(name, sweetDishes) {
		info.CarbsG = 70
		info.FatG = 18
		info.Calories = 450
		info.ProteinG = 5
	}
	if containsAny(name, lightDishes) {
		info.Calories = 150
		info.FatG = 8
		info.CarbsG = 20
	}

	return info
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
