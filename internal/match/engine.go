// PantryChef - Ingredient-Driven Recipe Discovery
// Copyright 2026 PantryChef contributors
// SPDX-License-Identifier: MIT
// https://github.com/pantrychef/pantrychef

package match

import (
	"context"
	"errors"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/pantrychef/pantrychef/internal/ingredient"
	"github.com/pantrychef/pantrychef/internal/models"
)

// ErrNotTrained is returned when ranking is requested before training.
var ErrNotTrained = errors.New("match engine is not trained")

// ErrNoIngredients is returned when the pantry normalizes to nothing.
var ErrNoIngredients = errors.New("no usable ingredients provided")

// Config tunes the ranking behavior.
type Config struct {
	// TopN is the default result count when a request does not override it.
	TopN int
	// MaxMissing is the default missing-ingredient tolerance.
	MaxMissing int
	// ScoreFloor admits recipes with zero ingredient overlap when their
	// cosine similarity alone exceeds it.
	ScoreFloor float64
}

// Options override per-request ranking parameters. Nil fields fall back to
// the engine config.
type Options struct {
	TopN       *int
	MaxMissing *int
}

// Engine ranks recipes against a pantry. Training acquires an exclusive
// lock while ranking uses a shared lock, so retraining never blocks on
// in-flight requests longer than a single fit.
type Engine struct {
	cfg Config

	mu            sync.RWMutex
	trained       bool
	version       int
	lastTrainedAt time.Time

	recipes    []models.Recipe
	vectorizer *Vectorizer
	recipeVecs []map[int]float64
}

// NewEngine creates an untrained engine with the given defaults.
func NewEngine(cfg Config) *Engine {
	if cfg.TopN <= 0 {
		cfg.TopN = 8
	}
	if cfg.MaxMissing < 0 {
		cfg.MaxMissing = 2
	}
	if cfg.ScoreFloor == 0 {
		cfg.ScoreFloor = 0.5
	}
	return &Engine{cfg: cfg}
}

// IsTrained reports whether the engine has a fitted model.
func (e *Engine) IsTrained() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.trained
}

// Version returns the model version, incremented on every Train.
func (e *Engine) Version() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.version
}

// LastTrainedAt returns when the model was last fitted.
func (e *Engine) LastTrainedAt() time.Time {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lastTrainedAt
}

// RecipeCount returns the number of recipes in the fitted model.
func (e *Engine) RecipeCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.recipes)
}

// VocabularySize returns the fitted vocabulary size, 0 before training.
func (e *Engine) VocabularySize() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.vectorizer == nil {
		return 0
	}
	return e.vectorizer.VocabularySize()
}

// Train fits the TF-IDF model over the recipe corpus. Recipes must carry
// CleanedIngredients; entries without any are still indexed but can only be
// reached through keyword search, never through ranking.
func (e *Engine) Train(ctx context.Context, recipes []models.Recipe) error {
	docs := make([][]string, len(recipes))
	for i := range recipes {
		docs[i] = Tokenize(recipes[i].CleanedIngredients)
	}

	vec := NewVectorizer()
	vec.Fit(docs)

	recipeVecs := make([]map[int]float64, len(recipes))
	for i, doc := range docs {
		if err := ctx.Err(); err != nil {
			return err
		}
		recipeVecs[i] = vec.Transform(doc)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.recipes = recipes
	e.vectorizer = vec
	e.recipeVecs = recipeVecs
	e.trained = true
	e.version++
	e.lastTrainedAt = time.Now()
	return nil
}

// Rank scores every recipe against the pantry and returns the best matches.
//
// For each recipe it computes cosine similarity between pantry and recipe
// TF-IDF vectors, then checks every recipe ingredient for pantry coverage
// (substring in either direction, or a known substitution). The cosine
// score is boosted by the coverage ratio, recipes outside the missing
// tolerance are dropped, and results are ordered by match count then score.
func (e *Engine) Rank(ctx context.Context, pantry []string, opts Options) ([]models.RecipeMatch, error) {
	userClean := ingredient.NormalizeList(pantry)
	if len(userClean) == 0 {
		return nil, ErrNoIngredients
	}

	e.mu.RLock()
	defer e.mu.RUnlock()
	if !e.trained {
		return nil, ErrNotTrained
	}

	topN := e.cfg.TopN
	if opts.TopN != nil && *opts.TopN > 0 {
		topN = *opts.TopN
	}
	maxMissing := e.cfg.MaxMissing
	if opts.MaxMissing != nil && *opts.MaxMissing >= 0 {
		maxMissing = *opts.MaxMissing
	}

	userVec := e.vectorizer.Transform(Tokenize(userClean))

	out := make([]models.RecipeMatch, 0, topN)
	for idx := range e.recipes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		recipe := &e.recipes[idx]
		if len(recipe.CleanedIngredients) == 0 {
			continue
		}

		score := Cosine(userVec, e.recipeVecs[idx])
		present, missing, subs := coverage(userClean, recipe.CleanedIngredients)

		matchRatio := float64(len(present)) / float64(len(recipe.CleanedIngredients))
		boosted := score * (1 + matchRatio)

		if (len(present) == 0 && score <= e.cfg.ScoreFloor) || len(missing) > maxMissing {
			continue
		}

		out = append(out, models.RecipeMatch{
			Recipe:             *recipe,
			Score:              boosted,
			MatchCount:         len(present),
			MatchPercentage:    math.Round(100 * matchRatio),
			PresentIngredients: present,
			MissingIngredients: missing,
			Substitutions:      subs,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].MatchCount != out[j].MatchCount {
			return out[i].MatchCount > out[j].MatchCount
		}
		return out[i].Score > out[j].Score
	})

	if len(out) > topN {
		out = out[:topN]
	}
	return out, nil
}

// coverage splits a recipe's ingredients into present and missing given the
// pantry, recording any substitutions used.
func coverage(pantry, recipeIngredients []string) (present, missing []string, subs map[string]string) {
	present = make([]string, 0, len(recipeIngredients))
	missing = make([]string, 0)
	for _, r := range recipeIngredients {
		found := false
		for _, u := range pantry {
			covered, viaSub := ingredient.Covers(u, r)
			if !covered {
				continue
			}
			present = append(present, r)
			if viaSub != "" {
				if subs == nil {
					subs = make(map[string]string)
				}
				subs[r] = viaSub
			}
			found = true
			break
		}
		if !found {
			missing = append(missing, r)
		}
	}
	return present, missing, subs
}
