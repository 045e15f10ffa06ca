// PantryChef - Ingredient-Driven Recipe Discovery
// Copyright 2026 PantryChef contributors
// SPDX-License-Identifier: MIT
// https://github.com/pantrychef/pantrychef

package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/pantrychef/pantrychef/internal/logging"
)

type contextKey string

// ClaimsContextKey carries validated claims through the request context.
const ClaimsContextKey contextKey = "claims"

// Middleware enforces authentication on protected routes.
type Middleware struct {
	jwtManager *JWTManager
	authMode   string
}

// NewMiddleware creates authentication middleware. With authMode "none"
// every request passes through with development claims attached.
func NewMiddleware(jwtManager *JWTManager, authMode string) *Middleware {
	return &Middleware{
		jwtManager: jwtManager,
		authMode:   strings.ToLower(authMode),
	}
}

// Authenticate wraps a handler with token validation.
func (m *Middleware) Authenticate(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if m.authMode == "none" {
			claims := &Claims{Username: "dev", Role: "admin"}
			ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
			next(w, r.WithContext(ctx))
			return
		}

		token, ok := extractToken(r)
		if !ok {
			http.Error(w, "Unauthorized: missing token", http.StatusUnauthorized)
			return
		}

		claims, err := m.jwtManager.ValidateToken(token)
		if err != nil {
			logging.Ctx(r.Context()).Warn().Err(err).Msg("token validation failed")
			http.Error(w, "Unauthorized: invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
		next(w, r.WithContext(ctx))
	}
}

// RequireRole wraps a handler with authentication plus a role check.
// Admins pass every role check.
func (m *Middleware) RequireRole(role string, next http.HandlerFunc) http.HandlerFunc {
	return m.Authenticate(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			http.Error(w, "Forbidden: invalid claims", http.StatusForbidden)
			return
		}
		if claims.Role != role && claims.Role != "admin" {
			http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
			return
		}
		next(w, r)
	})
}

// ClaimsFromContext retrieves validated claims from a request context.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*Claims)
	return claims, ok
}

// extractToken pulls the JWT from the Authorization header, falling back
// to the "token" cookie set by the login handler.
func extractToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		cookie, err := r.Cookie("token")
		if err != nil {
			return "", false
		}
		return cookie.Value, true
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}
