// PantryChef - Ingredient-Driven Recipe Discovery
// Copyright 2026 PantryChef contributors
// SPDX-License-Identifier: MIT
// https://github.com/pantrychef/pantrychef

package dataset

import (
	"context"

	"github.com/pantrychef/pantrychef/internal/models"
)

// Reloader re-reads the dataset file and swaps the store contents, so
// edits to the CSV show up without a restart.
type Reloader struct {
	cfg   LoaderConfig
	store *Store
}

// NewReloader creates a reloader bound to a store.
func NewReloader(cfg LoaderConfig, store *Store) *Reloader {
	return &Reloader{cfg: cfg, store: store}
}

// Reload loads the dataset and replaces the store contents on success.
// The store is left untouched when loading fails.
func (r *Reloader) Reload(ctx context.Context) ([]models.Recipe, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	recipes, err := Load(r.cfg)
	if err != nil {
		return nil, err
	}
	r.store.Replace(recipes)
	return recipes, nil
}
