// PantryChef - Ingredient-Driven Recipe Discovery
// Copyright 2026 PantryChef contributors
// SPDX-License-Identifier: MIT
// https://github.com/pantrychef/pantrychef

package dataset

import (
	"testing"
	"time"

	"github.com/pantrychef/pantrychef/internal/models"
)

func storeRecipes() []models.Recipe {
	return []models.Recipe{
		{ID: "1", Name: "Butter chicken"},
		{ID: "2", Name: "Palak paneer"},
		{ID: "3", Name: "Kheer"},
		{ID: "4", Name: "Masala dosa"},
	}
}

func TestStoreByName(t *testing.T) {
	s := NewStore(storeRecipes())

	tests := []struct {
		name  string
		query string
		found bool
	}{
		{"exact", "Butter chicken", true},
		{"case insensitive", "bUtTeR CHICKEN", true},
		{"surrounding space", "  Kheer  ", true},
		{"unknown", "Ratatouille", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, found := s.ByName(tt.query)
			if found != tt.found {
				t.Errorf("ByName(%q) found = %v, want %v", tt.query, found, tt.found)
			}
		})
	}
}

func TestStoreFeaturedRotation(t *testing.T) {
	s := NewStore(storeRecipes())

	// Three curated dishes are in this catalog; the pick rotates on even
	// minutes and repeats within the same two-minute window.
	at := func(minute int) models.Recipe {
		r, ok := s.Featured(time.Date(2026, 8, 26, 12, minute, 0, 0, time.UTC))
		if !ok {
			t.Fatalf("Featured(min=%d) returned none", minute)
		}
		return r
	}

	if a, b := at(0), at(1); a.ID != b.ID {
		t.Errorf("featured changed within a window: %q then %q", a.Name, b.Name)
	}
	if a, b := at(0), at(2); a.ID == b.ID {
		t.Errorf("featured did not rotate across windows: %q", a.Name)
	}
}

func TestStoreFeaturedEmpty(t *testing.T) {
	s := NewStore(nil)
	if _, ok := s.Featured(time.Now()); ok {
		t.Error("Featured on empty store returned a recipe")
	}
}

func TestStoreLatest(t *testing.T) {
	s := NewStore(storeRecipes())

	latest := s.Latest(2)
	if len(latest) != 2 || latest[0].ID != "1" || latest[1].ID != "2" {
		t.Errorf("Latest(2) = %v", latest)
	}
	if got := s.Latest(100); len(got) != 4 {
		t.Errorf("Latest(100) returned %d, want 4", len(got))
	}
}

func TestStoreSearch(t *testing.T) {
	s := NewStore(storeRecipes())

	byName := s.Search("paneer", 10)
	if len(byName) != 1 || byName[0].Name != "Palak paneer" {
		t.Errorf("Search(paneer) = %v", byName)
	}

	if got := s.Search("chicken", 10); len(got) != 1 {
		t.Errorf("Search(chicken) returned %d, want 1", len(got))
	}

	// Empty query samples the catalog instead of returning nothing.
	sample := s.Search("", 3)
	if len(sample) != 3 {
		t.Errorf("Search(\"\") returned %d, want 3", len(sample))
	}

	if got := s.Search("", 100); len(got) != 4 {
		t.Errorf("Search(\"\", 100) returned %d, want full catalog", len(got))
	}
}

func TestStoreSampleStableWithinWindow(t *testing.T) {
	s := NewStore(storeRecipes())

	// Like the featured pick, the empty-query sample is seeded from a
	// two-minute bucket: repeat calls in the window agree, and the order
	// eventually changes across buckets.
	at := func(minute, second int) []models.Recipe {
		s.mu.RLock()
		defer s.mu.RUnlock()
		return s.sampleLocked(4, time.Date(2026, 8, 26, 12, minute, second, 0, time.UTC))
	}

	a, b := at(0, 5), at(1, 40)
	for i := range a {
		if a[i].ID != b[i].ID {
			t.Fatalf("sample order changed within a window: %v vs %v", a, b)
		}
	}

	rotated := false
	for minute := 2; minute <= 10 && !rotated; minute += 2 {
		c := at(minute, 0)
		for i := range a {
			if a[i].ID != c[i].ID {
				rotated = true
				break
			}
		}
	}
	if !rotated {
		t.Error("sample order never changed across windows")
	}
}

func TestStoreReplace(t *testing.T) {
	s := NewStore(storeRecipes())
	s.Replace([]models.Recipe{{ID: "9", Name: "Upma"}})

	if s.Len() != 1 {
		t.Fatalf("Len = %d after Replace, want 1", s.Len())
	}
	if _, found := s.ByName("Butter chicken"); found {
		t.Error("stale recipe still indexed after Replace")
	}
	if _, found := s.ByName("Upma"); !found {
		t.Error("new recipe not indexed after Replace")
	}
}
