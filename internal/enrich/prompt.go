// PantryChef - Ingredient-Driven Recipe Discovery
// Copyright 2026 PantryChef contributors
// SPDX-License-Identifier: MIT
// https://github.com/pantrychef/pantrychef

package enrich

import (
	"fmt"
	"strings"
)

// ImagePrompt builds a text-to-image prompt for a dish. Only the first few
// ingredients are included; long lists dilute the prompt.
func ImagePrompt(name string, ingredients []string, cuisine string) string {
	main := ingredients
	if len(main) > 4 {
		main = main[:4]
	}
	if cuisine == "" {
		cuisine = "Indian"
	}
	return fmt.Sprintf(
		"photorealistic image of %s, made with %s, %s cuisine, warm lighting, high detail",
		name, strings.Join(main, ", "), cuisine,
	)
}
