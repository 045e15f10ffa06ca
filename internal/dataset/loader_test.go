// PantryChef - Ingredient-Driven Recipe Discovery
// Copyright 2026 PantryChef contributors
// SPDX-License-Identifier: MIT
// https://github.com/pantrychef/pantrychef

package dataset

import (
	"strings"
	"testing"
)

const sampleCSV = `name,ingredients,diet,course,flavor_profile
Butter chicken,"Chicken, butter, tomato, cream",non vegetarian,main course,spicy
Dhokla,"Gram flour, yogurt, mustard seeds",vegetarian,snack,-1
Pasta al limone,"Pasta, lemon, parmesan",vegetarian,italian main,-1
,"Orphan ingredients",vegetarian,snack,-1
No ingredients,,vegetarian,snack,-1
`

func TestParse(t *testing.T) {
	recipes, err := Parse(strings.NewReader(sampleCSV), 0)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	// Rows without a name or ingredients are dropped.
	if len(recipes) != 3 {
		t.Fatalf("got %d recipes, want 3", len(recipes))
	}

	bc := recipes[0]
	if bc.Name != "Butter chicken" {
		t.Errorf("Name = %q, want Butter chicken", bc.Name)
	}
	if bc.ID == "" {
		t.Error("ID not assigned")
	}
	if len(bc.Ingredients) != 4 {
		t.Errorf("Ingredients = %v, want 4 entries", bc.Ingredients)
	}
	if len(bc.CleanedIngredients) != 4 {
		t.Errorf("CleanedIngredients = %v, want 4 entries", bc.CleanedIngredients)
	}
	if bc.CleanedIngredients[0] != "chicken" {
		t.Errorf("CleanedIngredients[0] = %q, want chicken", bc.CleanedIngredients[0])
	}
	if bc.Cuisine != "Indian" {
		t.Errorf("Cuisine = %q, want Indian", bc.Cuisine)
	}
	wantTags := []string{"main course", "spicy", "non vegetarian"}
	if len(bc.Tags) != len(wantTags) {
		t.Errorf("Tags = %v, want %v", bc.Tags, wantTags)
	}

	// -1 marks an absent value in the source format.
	dhokla := recipes[1]
	if dhokla.FlavorProfile != "" {
		t.Errorf("FlavorProfile = %q, want empty for -1", dhokla.FlavorProfile)
	}

	// Cuisine is derived from tags when the column is absent.
	pasta := recipes[2]
	if pasta.Cuisine != "Italian" {
		t.Errorf("Cuisine = %q, want Italian", pasta.Cuisine)
	}
}

func TestParseLimit(t *testing.T) {
	recipes, err := Parse(strings.NewReader(sampleCSV), 2)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(recipes) != 2 {
		t.Errorf("got %d recipes, want 2 with limit", len(recipes))
	}
}

func TestParseHeaderHandling(t *testing.T) {
	// Header matching is case-insensitive and order-free.
	csv := "INGREDIENTS,Name\n\"rice, milk\",Kheer\n"
	recipes, err := Parse(strings.NewReader(csv), 0)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(recipes) != 1 || recipes[0].Name != "Kheer" {
		t.Fatalf("recipes = %+v, want single Kheer", recipes)
	}

	if _, err := Parse(strings.NewReader("name,diet\nKheer,vegetarian\n"), 0); err == nil {
		t.Error("expected error for missing ingredients column")
	}
	if _, err := Parse(strings.NewReader(""), 0); err == nil {
		t.Error("expected error for empty input")
	}
}
