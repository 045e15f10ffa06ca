// PantryChef - Ingredient-Driven Recipe Discovery
// Copyright 2026 PantryChef contributors
// SPDX-License-Identifier: MIT
// https://github.com/pantrychef/pantrychef

package enrich

import "testing"

func TestRegion(t *testing.T) {
	tests := []struct {
		name    string
		cuisine string
		title   string
		want    string
	}{
		{"indian cuisine keyword", "Punjabi", "Sarson ka saag", "Punjab"},
		{"international cuisine", "Italian", "Carbonara", "Italy"},
		{"hyderabadi biryani", "", "Hyderabadi biryani", "Hyderabad (Telangana)"},
		{"plain biryani", "", "Chicken biryani", "India"},
		{"dish keyword", "", "Masala dosa", "South India"},
		{"dish keyword pav bhaji", "", "Pav bhaji", "Maharashtra"},
		{"generic indian fallback", "Indian", "Mystery curry", "India"},
		{"nothing to place", "", "Mystery stew", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Region(tt.cuisine, tt.title); got != tt.want {
				t.Errorf("Region(%q, %q) = %q, want %q", tt.cuisine, tt.title, got, tt.want)
			}
		})
	}
}
