// PantryChef - Ingredient-Driven Recipe Discovery
// Copyright 2026 PantryChef contributors
// SPDX-License-Identifier: MIT
// https://github.com/pantrychef/pantrychef

// Package dataset loads the recipe catalog from CSV and serves it through
// an in-memory store.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/pantrychef/pantrychef/internal/ingredient"
	"github.com/pantrychef/pantrychef/internal/models"
)

// LoaderConfig controls CSV loading.
type LoaderConfig struct {
	// Path is the CSV file location.
	Path string
	// Limit caps the number of recipes loaded. 0 loads everything.
	Limit int
}

// Load reads recipes from the configured CSV file.
//
// Expected columns: name, ingredients, diet, course, flavor_profile. The
// ingredients column is comma-separated. Header matching is
// case-insensitive and column order is free. Rows without a name or any
// ingredients are skipped.
func Load(cfg LoaderConfig) ([]models.Recipe, error) {
	f, err := os.Open(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	recipes, err := Parse(f, cfg.Limit)
	if err != nil {
		return nil, fmt.Errorf("parse dataset %s: %w", cfg.Path, err)
	}
	return recipes, nil
}

// Parse reads recipes from CSV data. Exposed separately so tests and
// alternative sources can feed readers directly.
func Parse(r io.Reader, limit int) ([]models.Recipe, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := cols["name"]; !ok {
		return nil, fmt.Errorf("missing required column %q", "name")
	}
	if _, ok := cols["ingredients"]; !ok {
		return nil, fmt.Errorf("missing required column %q", "ingredients")
	}

	var recipes []models.Recipe
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		rec := recipeFromRow(row, cols)
		if rec.Name == "" || len(rec.Ingredients) == 0 {
			continue
		}
		recipes = append(recipes, rec)

		if limit > 0 && len(recipes) >= limit {
			break
		}
	}
	return recipes, nil
}

// recipeFromRow builds a recipe from a CSV row, deriving the cleaned
// ingredient list, tags, and cuisine.
func recipeFromRow(row []string, cols map[string]int) models.Recipe {
	field := func(name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(row) {
			return ""
		}
		v := strings.TrimSpace(row[idx])
		// Source data uses -1 for absent values.
		if v == "-1" {
			return ""
		}
		return v
	}

	rec := models.Recipe{
		ID:            uuid.New().String(),
		Name:          field("name"),
		Diet:          field("diet"),
		Course:        field("course"),
		FlavorProfile: field("flavor_profile"),
		Cuisine:       field("cuisine"),
	}

	for _, part := range strings.Split(field("ingredients"), ",") {
		if p := strings.TrimSpace(part); p != "" {
			rec.Ingredients = append(rec.Ingredients, p)
		}
	}
	rec.CleanedIngredients = ingredient.NormalizeList(rec.Ingredients)

	for _, t := range []string{rec.Course, rec.FlavorProfile, rec.Diet} {
		if t != "" {
			rec.Tags = append(rec.Tags, strings.ToLower(t))
		}
	}

	if rec.Cuisine == "" {
		rec.Cuisine = deriveCuisine(rec.Tags)
	}

	return rec
}

// deriveCuisine extracts a cuisine label from tags. Datasets in the Indian
// food format carry no cuisine column, so it defaults to Indian.
func deriveCuisine(tags []string) string {
	joined := strings.ToLower(strings.Join(tags, " "))
	switch {
	case strings.Contains(joined, "italian"):
		return "Italian"
	case strings.Contains(joined, "mexican"):
		return "Mexican"
	case strings.Contains(joined, "chinese"), strings.Contains(joined, "japanese"), strings.Contains(joined, "asian"):
		return "Asian"
	case strings.Contains(joined, "french"):
		return "French"
	case strings.Contains(joined, "american"):
		return "American"
	default:
		return "Indian"
	}
}
