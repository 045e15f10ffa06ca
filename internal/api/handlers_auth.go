// PantryChef - Ingredient-Driven Recipe Discovery
// Copyright 2026 PantryChef contributors
// SPDX-License-Identifier: MIT
// https://github.com/pantrychef/pantrychef

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/pantrychef/pantrychef/internal/auth"
	"github.com/pantrychef/pantrychef/internal/logging"
	"github.com/pantrychef/pantrychef/internal/metrics"
	"github.com/pantrychef/pantrychef/internal/models"
)

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *models.User `json:"user"`
}

// Register creates a new user account.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if h.users == nil {
		respondError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE",
			"user registration is disabled", nil)
		return
	}

	var req registerRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	user, err := h.users.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		h.logAuthEvent("register", req.Username, r, false, err)
		metrics.AuthAttempts.WithLabelValues("register", "failure").Inc()
		if errors.Is(err, auth.ErrUserExists) {
			respondError(w, http.StatusConflict, "CONFLICT",
				"username or email already registered", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR",
			"failed to create user", err)
		return
	}

	h.logAuthEvent("register", user.Username, r, true, nil)
	metrics.AuthAttempts.WithLabelValues("register", "success").Inc()
	respondSuccess(w, user, start, false)
}

// Login authenticates a user and issues a JWT. The token is returned in
// the body and also set as an HTTP-only cookie for browser clients.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if h.users == nil || h.jwt == nil {
		respondError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE",
			"authentication is disabled", nil)
		return
	}

	var req loginRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr)
		return
	}

	user, err := h.users.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		h.logAuthEvent("login", req.Username, r, false, err)
		metrics.AuthAttempts.WithLabelValues("login", "failure").Inc()
		respondError(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR",
			"invalid username or password", nil)
		return
	}

	token, err := h.jwt.GenerateToken(user.Username, user.Role)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR",
			"failed to issue token", err)
		return
	}

	expiresAt := time.Now().Add(h.jwt.Expiry())
	h.setAuthCookie(w, token, expiresAt)
	h.logAuthEvent("login", user.Username, r, true, nil)
	metrics.AuthAttempts.WithLabelValues("login", "success").Inc()

	respondSuccess(w, authResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
	}, start, false)
}

// Logout clears the auth cookie. Stateless tokens stay valid until expiry.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	respondSuccess(w, map[string]string{"status": "logged out"}, time.Now(), false)
}

// Me returns the authenticated user's profile.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR",
			"authentication required", nil)
		return
	}

	if h.users == nil {
		respondSuccess(w, map[string]string{
			"username": claims.Username,
			"role":     claims.Role,
		}, start, false)
		return
	}

	user, err := h.users.Get(r.Context(), claims.Username)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			// Dev-mode claims have no backing record.
			respondSuccess(w, map[string]string{
				"username": claims.Username,
				"role":     claims.Role,
			}, start, false)
			return
		}
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR",
			"failed to load user", err)
		return
	}

	respondSuccess(w, user, start, false)
}

func (h *Handler) setAuthCookie(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *Handler) logAuthEvent(event, username string, r *http.Request, success bool, err error) {
	ev := logging.AuthEvent{
		Event:     event,
		Username:  username,
		IPAddress: clientIP(r),
		Success:   success,
	}
	if err != nil {
		ev.Error = err.Error()
	}
	h.authLog.LogEvent(ev)
}
