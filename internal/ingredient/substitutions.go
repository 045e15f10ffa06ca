// PantryChef - Ingredient-Driven Recipe Discovery
// Copyright 2026 PantryChef contributors
// SPDX-License-Identifier: MIT
// https://github.com/pantrychef/pantrychef

package ingredient

import "strings"

// substitutions maps a normalized ingredient to acceptable stand-ins.
// Indian pantry staples carry both their Hindi and English names so either
// spelling satisfies a recipe.
var substitutions = map[string][]string{
	"curd":             {"yogurt", "dahi"},
	"capsicum":         {"bell pepper"},
	"maida":            {"all purpose flour", "flour"},
	"paneer":           {"cottage cheese", "cheese"},
	"cottage cheese":   {"paneer"},
	"coriander":        {"cilantro"},
	"cream":            {"milk", "malai"},
	"sugar":            {"jaggery", "gur"},
	"yogurt":           {"curd", "dahi"},
	"dahi":             {"yogurt", "curd"},
	"ghee":             {"clarified butter", "butter"},
	"clarified butter": {"ghee"},
	"atta":             {"whole wheat flour", "wheat flour"},
	"besan":            {"gram flour", "chickpea flour"},
	"gram flour":       {"besan", "chickpea flour"},
	"jeera":            {"cumin", "cumin seeds"},
	"cumin":            {"jeera", "cumin seeds"},
	"haldi":            {"turmeric", "turmeric powder"},
	"turmeric":         {"haldi", "turmeric powder"},
	"dhaniya":          {"coriander", "cilantro"},
	"methi":            {"fenugreek"},
	"hing":             {"asafoetida"},
	"ajwain":           {"carom seeds"},
}

// Substitutes returns acceptable stand-ins for an ingredient, or nil when
// none are known. The input is normalized before lookup.
func Substitutes(name string) []string {
	return substitutions[Normalize(name)]
}

// Covers reports whether a pantry item satisfies a recipe ingredient.
// Both arguments must already be normalized.
//
// A match is a substring hit in either direction ("rice" covers "basmati
// rice" and vice versa), or a substitution hit in either direction (the
// pantry item is a known substitute for the ingredient, or the ingredient
// is a known substitute for the pantry item).
func Covers(pantryItem, recipeIngredient string) (covered bool, viaSub string) {
	if pantryItem == "" || recipeIngredient == "" {
		return false, ""
	}
	if strings.Contains(pantryItem, recipeIngredient) || strings.Contains(recipeIngredient, pantryItem) {
		return true, ""
	}
	for _, sub := range substitutions[recipeIngredient] {
		if sub == pantryItem {
			return true, pantryItem
		}
	}
	for _, sub := range substitutions[pantryItem] {
		if sub == recipeIngredient {
			return true, ""
		}
	}
	return false, ""
}
