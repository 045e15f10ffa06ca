// PantryChef - Ingredient-Driven Recipe Discovery
// Copyright 2026 PantryChef contributors
// SPDX-License-Identifier: MIT
// https://github.com/pantrychef/pantrychef

// Package ingredient normalizes free-form ingredient text and resolves
// culinary substitutions. Everything else in the matcher builds on the
// canonical form produced here.
package ingredient

import (
	"regexp"
	"strings"
)

var (
	// parenPattern strips parenthetical notes like "(finely chopped)".
	parenPattern = regexp.MustCompile(`\([^)]*\)`)

	// unitPattern strips measurement units.
	unitPattern = regexp.MustCompile(`\b(g|kg|gram|grams|ml|l|cup|cups|tbsp|tsp|ounce|oz|clove|slice)\b`)

	// quantityPattern strips integer and fractional quantities like "2" or "1/2".
	quantityPattern = regexp.MustCompile(`\d+(/\d+)?`)

	// punctPattern strips anything that is not a word character or space.
	punctPattern = regexp.MustCompile(`[^\w\s]`)

	// spacePattern collapses runs of whitespace.
	spacePattern = regexp.MustCompile(`\s+`)
)

// Normalize reduces an ingredient phrase to its canonical matching form:
// lowercase, no parentheticals, no units, no quantities, no punctuation,
// single-spaced. "2 cups Basmati Rice (washed)" becomes "basmati rice".
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = parenPattern.ReplaceAllString(s, " ")
	s = unitPattern.ReplaceAllString(s, " ")
	s = quantityPattern.ReplaceAllString(s, " ")
	s = punctPattern.ReplaceAllString(s, " ")
	s = spacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// NormalizeList normalizes every entry, dropping ones that normalize to "".
func NormalizeList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if n := Normalize(item); n != "" {
			out = append(out, n)
		}
	}
	return out
}
