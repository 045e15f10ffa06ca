// PantryChef - Ingredient-Driven Recipe Discovery
// Copyright 2026 PantryChef contributors
// SPDX-License-Identifier: MIT
// https://github.com/pantrychef/pantrychef

package dataset

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/pantrychef/pantrychef/internal/models"
)

// featuredNames is the rotation pool for the featured endpoint. Names not
// present in the loaded catalog are skipped at store construction.
var featuredNames = []string{
	"Butter chicken",
	"Palak paneer",
	"Chicken biryani",
	"Masala dosa",
	"Chole bhature",
	"Paneer tikka",
}

// Store holds the loaded catalog and answers browse queries. Recipes are
// immutable after construction; Replace swaps the whole slice under lock,
// so readers always see a consistent snapshot.
type Store struct {
	mu       sync.RWMutex
	recipes  []models.Recipe
	byName   map[string]int
	featured []int
}

// NewStore builds a store over the given recipes.
func NewStore(recipes []models.Recipe) *Store {
	s := &Store{}
	s.index(recipes)
	return s
}

// index rebuilds lookup structures. Caller must hold mu or own s exclusively.
func (s *Store) index(recipes []models.Recipe) {
	s.recipes = recipes
	s.byName = make(map[string]int, len(recipes))
	for i := range recipes {
		s.byName[strings.ToLower(recipes[i].Name)] = i
	}
	s.featured = s.featured[:0]
	for _, name := range featuredNames {
		if i, ok := s.byName[strings.ToLower(name)]; ok {
			s.featured = append(s.featured, i)
		}
	}
	// Small datasets without the curated dishes still get a rotation.
	if len(s.featured) == 0 {
		for i := 0; i < len(recipes) && i < len(featuredNames); i++ {
			s.featured = append(s.featured, i)
		}
	}
}

// Replace swaps the catalog, e.g. after a dataset reload.
func (s *Store) Replace(recipes []models.Recipe) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.index(recipes)
}

// All returns the full catalog snapshot.
func (s *Store) All() []models.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.recipes
}

// Len returns the catalog size.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.recipes)
}

// ByName finds a recipe by case-insensitive exact name.
func (s *Store) ByName(name string) (models.Recipe, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i, ok := s.byName[strings.ToLower(strings.TrimSpace(name))]; ok {
		return s.recipes[i], true
	}
	return models.Recipe{}, false
}

// Featured returns the currently featured recipe. The selection rotates
// every two minutes through the curated pool so the landing page changes
// without a deploy.
func (s *Store) Featured(now time.Time) (models.Recipe, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.featured) == 0 {
		return models.Recipe{}, false
	}
	idx := (now.Minute() / 2) % len(s.featured)
	return s.recipes[s.featured[idx]], true
}

// Latest returns up to n recipes from the head of the catalog, a stable
// selection for the landing page.
func (s *Store) Latest(n int) []models.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if n > len(s.recipes) {
		n = len(s.recipes)
	}
	out := make([]models.Recipe, n)
	copy(out, s.recipes[:n])
	return out
}

// Search finds recipes whose name contains the query, case-insensitive.
// An empty query returns a pseudo-random sample instead, so the browse
// page is never empty.
func (s *Store) Search(query string, limit int) []models.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 20
	}

	if strings.TrimSpace(query) == "" {
		return s.sampleLocked(limit, time.Now())
	}

	q := strings.ToLower(query)
	out := make([]models.Recipe, 0, limit)
	for i := range s.recipes {
		if strings.Contains(strings.ToLower(s.recipes[i].Name), q) {
			out = append(out, s.recipes[i])
			if len(out) >= limit {
				break
			}
		}
	}
	return out
}

// sampleLocked returns up to n pseudo-randomly chosen recipes. The shuffle
// is seeded from a two-minute time bucket, like Featured, so repeat browses
// within the window see the same sample while the page rotates over time.
// Caller must hold mu.
func (s *Store) sampleLocked(n int, now time.Time) []models.Recipe {
	if n > len(s.recipes) {
		n = len(s.recipes)
	}
	rng := rand.New(rand.NewSource(now.Unix() / 120))
	perm := rng.Perm(len(s.recipes))
	out := make([]models.Recipe, 0, n)
	for _, idx := range perm[:n] {
		out = append(out, s.recipes[idx])
	}
	return out
}
