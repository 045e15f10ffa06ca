// PantryChef - Ingredient-Driven Recipe Discovery
// Copyright 2026 PantryChef contributors
// SPDX-License-Identifier: MIT
// https://github.com/pantrychef/pantrychef

// Package api implements the PantryChef HTTP surface: recommendation and
// search endpoints, recipe browsing, authentication, and generation.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/pantrychef/pantrychef/internal/auth"
	"github.com/pantrychef/pantrychef/internal/cache"
	"github.com/pantrychef/pantrychef/internal/config"
	"github.com/pantrychef/pantrychef/internal/dataset"
	"github.com/pantrychef/pantrychef/internal/enrich"
	"github.com/pantrychef/pantrychef/internal/generation"
	"github.com/pantrychef/pantrychef/internal/logging"
	"github.com/pantrychef/pantrychef/internal/match"
)

// Generator abstracts the generative recipe client so handlers can be
// tested without a live model endpoint.
type Generator interface {
	Generate(ctx context.Context, ingredients []string, count int) ([]generation.GeneratedRecipe, error)
}

// Handler holds the dependencies shared by all HTTP handlers.
type Handler struct {
	config    *config.Config
	store     *dataset.Store
	engine    *match.Engine
	users     *auth.UserStore
	jwt       *auth.JWTManager
	cache     *cache.Cache
	images    *enrich.ImageResolver
	generator Generator
	authLog   *logging.AuthLogger
	startTime time.Time
}

// HandlerConfig bundles the handler dependencies. Generator and Users may
// be nil when the corresponding feature is disabled.
type HandlerConfig struct {
	Config    *config.Config
	Store     *dataset.Store
	Engine    *match.Engine
	Users     *auth.UserStore
	JWT       *auth.JWTManager
	Cache     *cache.Cache
	Images    *enrich.ImageResolver
	Generator Generator
}

// NewHandler creates the handler set.
func NewHandler(hc HandlerConfig) *Handler {
	return &Handler{
		config:    hc.Config,
		store:     hc.Store,
		engine:    hc.Engine,
		users:     hc.Users,
		jwt:       hc.JWT,
		cache:     hc.Cache,
		images:    hc.Images,
		generator: hc.Generator,
		authLog:   logging.NewAuthLogger(),
		startTime: time.Now(),
	}
}

// cacheGet looks up a cached response when caching is enabled.
func (h *Handler) cacheGet(key string) (interface{}, bool) {
	if h.cache == nil || !h.config.Cache.Enabled {
		return nil, false
	}
	return h.cache.Get(key)
}

// cacheSet stores a response when caching is enabled.
func (h *Handler) cacheSet(key string, value interface{}) {
	if h.cache == nil || !h.config.Cache.Enabled {
		return
	}
	h.cache.Set(key, value)
}

// clientIP extracts the peer address for audit logs. chi's RealIP
// middleware has already rewritten RemoteAddr behind trusted proxies.
func clientIP(r *http.Request) string {
	return r.RemoteAddr
}
