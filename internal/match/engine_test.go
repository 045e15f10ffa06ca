// PantryChef - Ingredient-Driven Recipe Discovery
// Copyright 2026 PantryChef contributors
// SPDX-License-Identifier: MIT
// https://github.com/pantrychef/pantrychef

package match

import (
	"context"
	"errors"
	"testing"

	"github.com/pantrychef/pantrychef/internal/models"
)

func testRecipes() []models.Recipe {
	return []models.Recipe{
		{
			Name:               "Butter chicken",
			CleanedIngredients: []string{"chicken", "butter", "tomato", "cream"},
		},
		{
			Name:               "Palak paneer",
			CleanedIngredients: []string{"spinach", "paneer", "onion", "garlic"},
		},
		{
			Name:               "Kheer",
			CleanedIngredients: []string{"rice", "milk", "sugar", "cardamom"},
		},
	}
}

func trainedEngine(t *testing.T) *Engine {
	t.Helper()
	e := NewEngine(Config{TopN: 8, MaxMissing: 2, ScoreFloor: 0.5})
	if err := e.Train(context.Background(), testRecipes()); err != nil {
		t.Fatalf("Train failed: %v", err)
	}
	return e
}

func TestEngineRankErrors(t *testing.T) {
	untrained := NewEngine(Config{TopN: 8, MaxMissing: 2, ScoreFloor: 0.5})
	if _, err := untrained.Rank(context.Background(), []string{"chicken"}, Options{}); !errors.Is(err, ErrNotTrained) {
		t.Errorf("Rank on untrained engine: err = %v, want ErrNotTrained", err)
	}

	e := trainedEngine(t)
	if _, err := e.Rank(context.Background(), nil, Options{}); !errors.Is(err, ErrNoIngredients) {
		t.Errorf("Rank with empty pantry: err = %v, want ErrNoIngredients", err)
	}
	// Ingredients that normalize away entirely count as none.
	if _, err := e.Rank(context.Background(), []string{"2 tbsp", "(optional)"}, Options{}); !errors.Is(err, ErrNoIngredients) {
		t.Errorf("Rank with vacuous pantry: err = %v, want ErrNoIngredients", err)
	}
}

func TestEngineRankCoverage(t *testing.T) {
	e := trainedEngine(t)

	matches, err := e.Rank(context.Background(), []string{"Chicken", "Butter", "Tomato", "Cream"}, Options{})
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}
	if len(matches) == 0 {
		t.Fatal("expected at least one match")
	}

	top := matches[0]
	if top.Recipe.Name != "Butter chicken" {
		t.Fatalf("top match = %q, want Butter chicken", top.Recipe.Name)
	}
	if top.MatchCount != 4 {
		t.Errorf("MatchCount = %d, want 4", top.MatchCount)
	}
	if top.MatchPercentage != 100 {
		t.Errorf("MatchPercentage = %g, want 100", top.MatchPercentage)
	}
	if len(top.MissingIngredients) != 0 {
		t.Errorf("MissingIngredients = %v, want none", top.MissingIngredients)
	}
	if top.Score <= 0 {
		t.Errorf("Score = %g, want > 0", top.Score)
	}
}

func TestEngineRankPercentageRounded(t *testing.T) {
	recipes := []models.Recipe{
		{
			Name:               "Jeera rice",
			CleanedIngredients: []string{"rice", "jeera", "ghee"},
		},
	}
	e := NewEngine(Config{TopN: 8, MaxMissing: 2, ScoreFloor: 0.5})
	if err := e.Train(context.Background(), recipes); err != nil {
		t.Fatalf("Train failed: %v", err)
	}

	// Two of three covered: 66.66... rounds to 67.
	matches, err := e.Rank(context.Background(), []string{"rice", "jeera"}, Options{})
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	if matches[0].MatchPercentage != 67 {
		t.Errorf("MatchPercentage = %v, want 67", matches[0].MatchPercentage)
	}
}

func TestEngineRankMissingTolerance(t *testing.T) {
	e := trainedEngine(t)

	// Two of four ingredients present leaves two missing, right at the
	// default tolerance.
	matches, err := e.Rank(context.Background(), []string{"spinach", "paneer"}, Options{})
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}
	found := false
	for _, m := range matches {
		if m.Recipe.Name == "Palak paneer" {
			found = true
			if len(m.MissingIngredients) != 2 {
				t.Errorf("MissingIngredients = %v, want 2 entries", m.MissingIngredients)
			}
		}
	}
	if !found {
		t.Fatal("Palak paneer missing from results at tolerance boundary")
	}

	// Tightening the tolerance to one drops it.
	one := 1
	matches, err = e.Rank(context.Background(), []string{"spinach", "paneer"}, Options{MaxMissing: &one})
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}
	for _, m := range matches {
		if m.Recipe.Name == "Palak paneer" {
			t.Errorf("Palak paneer returned despite max_missing=1")
		}
	}
}

func TestEngineRankSubstitutions(t *testing.T) {
	recipes := []models.Recipe{
		{
			Name:               "Shahi paneer",
			CleanedIngredients: []string{"paneer", "curd", "cashew"},
		},
	}
	e := NewEngine(Config{TopN: 8, MaxMissing: 2, ScoreFloor: 0.5})
	if err := e.Train(context.Background(), recipes); err != nil {
		t.Fatalf("Train failed: %v", err)
	}

	matches, err := e.Rank(context.Background(), []string{"paneer", "yogurt"}, Options{})
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(matches))
	}
	if got := matches[0].Substitutions["curd"]; got != "yogurt" {
		t.Errorf("Substitutions[curd] = %q, want yogurt", got)
	}
	if matches[0].MatchCount != 2 {
		t.Errorf("MatchCount = %d, want 2", matches[0].MatchCount)
	}
}

func TestEngineRankTopN(t *testing.T) {
	e := trainedEngine(t)

	one := 1
	matches, err := e.Rank(context.Background(), []string{"chicken", "paneer", "rice", "milk"}, Options{TopN: &one})
	if err != nil {
		t.Fatalf("Rank failed: %v", err)
	}
	if len(matches) > 1 {
		t.Errorf("got %d matches, want at most 1 with top_n=1", len(matches))
	}
}

func TestEngineRetrainBumpsVersion(t *testing.T) {
	e := trainedEngine(t)
	v1 := e.Version()
	if err := e.Train(context.Background(), testRecipes()); err != nil {
		t.Fatalf("retrain failed: %v", err)
	}
	if e.Version() != v1+1 {
		t.Errorf("Version = %d, want %d", e.Version(), v1+1)
	}
	if !e.IsTrained() {
		t.Error("IsTrained = false after retrain")
	}
	if e.VocabularySize() == 0 {
		t.Error("VocabularySize = 0 after retrain")
	}
}
