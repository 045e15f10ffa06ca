// PantryChef - Ingredient-Driven Recipe Discovery
// Copyright 2026 PantryChef contributors
// SPDX-License-Identifier: MIT
// https://github.com/pantrychef/pantrychef

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pantrychef/pantrychef/internal/auth"
	"github.com/pantrychef/pantrychef/internal/middleware"
)

// Router wires handlers, middleware factories, and auth into a chi mux.
type Router struct {
	handler     *Handler
	chiMW       *ChiMiddleware
	authMW      *auth.Middleware
	authLimiter *auth.RateLimiter
}

// NewRouter creates the router. authMW is required; authLimiter may be nil
// to disable the per-IP credential limiter.
func NewRouter(handler *Handler, authMW *auth.Middleware, authLimiter *auth.RateLimiter) *Router {
	cfg := DefaultChiMiddlewareConfig()
	cfg.CORSAllowedOrigins = handler.config.Server.CORSOrigins
	cfg.RateLimitRequests = handler.config.Server.RateLimitRPM
	cfg.RateLimitDisabled = handler.config.Server.RateLimitRPM == 0

	return &Router{
		handler:     handler,
		chiMW:       NewChiMiddleware(cfg),
		authMW:      authMW,
		authLimiter: authLimiter,
	}
}

// Setup builds the full route tree.
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(rt.chiMW.CORS())

	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(rt.chiMW.RateLimitHealth())
		r.Get("/", rt.handler.Health)
		r.Get("/live", rt.handler.Liveness)
		r.Get("/ready", rt.handler.Readiness)
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Use(rt.chiMW.RateLimitAuth())
		r.With(rt.credentialLimit).Post("/register", rt.handler.Register)
		r.With(rt.credentialLimit).Post("/login", rt.handler.Login)
		r.Post("/logout", rt.handler.Logout)
		r.With(chiMiddleware(rt.authMW.Authenticate)).Get("/me", rt.handler.Me)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(rt.chiMW.RateLimit())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))
		r.Use(chiMiddleware(rt.authMW.Authenticate))

		r.Post("/recommend", rt.handler.Recommend)
		r.Post("/search/ingredients", rt.handler.SearchByIngredients)
		r.Get("/search", rt.handler.SearchRecipes)

		r.Get("/recipes/featured", rt.handler.FeaturedRecipe)
		r.Get("/recipes/latest", rt.handler.LatestRecipes)
		r.Get("/recipes/{name}", rt.handler.RecipeByName)

		r.Get("/ingredients/{name}/substitutes", rt.handler.IngredientSubstitutes)

		r.Post("/generate", rt.handler.GenerateRecipes)
		r.Post("/image-prompt", rt.handler.ImagePrompt)
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}

// credentialLimit applies the per-IP token bucket to password endpoints.
func (rt *Router) credentialLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rt.authLimiter != nil && !rt.authLimiter.Allow(clientIP(r)) {
			respondError(w, http.StatusTooManyRequests, "RATE_LIMITED",
				"too many attempts, slow down", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// chiMiddleware adapts HandlerFunc-based middleware to chi's Handler form.
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}
