// PantryChef - Ingredient-Driven Recipe Discovery
// Copyright 2026 PantryChef contributors
// SPDX-License-Identifier: MIT
// https://github.com/pantrychef/pantrychef

package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"golang.org/x/crypto/bcrypt"

	"github.com/pantrychef/pantrychef/internal/auth"
	"github.com/pantrychef/pantrychef/internal/cache"
	"github.com/pantrychef/pantrychef/internal/config"
	"github.com/pantrychef/pantrychef/internal/dataset"
	"github.com/pantrychef/pantrychef/internal/match"
	"github.com/pantrychef/pantrychef/internal/models"
)

func newJWTServer(t *testing.T, limiter *auth.RateLimiter) http.Handler {
	t.Helper()

	cfg := testAPIConfig()
	cfg.Security = config.SecurityConfig{
		AuthMode:    "jwt",
		JWTSecret:   "0123456789abcdef0123456789abcdef",
		TokenExpiry: time.Hour,
		BcryptCost:  bcrypt.MinCost,
	}

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		t.Fatal(err)
	}

	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	users := auth.NewUserStoreWithDB(db, bcrypt.MinCost)

	store := dataset.NewStore(testDataset())
	engine := match.NewEngine(match.Config{TopN: 8, MaxMissing: 2, ScoreFloor: 0.5})
	if err := engine.Train(context.Background(), store.All()); err != nil {
		t.Fatal(err)
	}

	responseCache := cache.New(cfg.Cache.TTL)
	t.Cleanup(responseCache.Stop)

	handler := NewHandler(HandlerConfig{
		Config: cfg,
		Store:  store,
		Engine: engine,
		Users:  users,
		JWT:    jwtManager,
		Cache:  responseCache,
	})
	authMW := auth.NewMiddleware(jwtManager, "jwt")
	return NewRouter(handler, authMW, limiter).Setup()
}

func register(t *testing.T, srv http.Handler, username, email, password string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	return doRequest(t, srv, http.MethodPost, "/api/v1/auth/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	})
}

func login(t *testing.T, srv http.Handler, username, password string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	return doRequest(t, srv, http.MethodPost, "/api/v1/auth/login", map[string]string{
		"username": username,
		"password": password,
	})
}

func TestRegisterLoginMe(t *testing.T) {
	srv := newJWTServer(t, nil)

	rec, env := register(t, srv, "alice", "alice@example.com", "hunter22pass")
	if rec.Code != http.StatusOK || env.Status != "success" {
		t.Fatalf("register = %d, error %+v", rec.Code, env.Error)
	}
	var created models.User
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatal(err)
	}
	if created.Username != "alice" || created.PasswordHash != "" {
		t.Errorf("created user = %+v, hash must not leak", created)
	}

	rec, env = login(t, srv, "alice", "hunter22pass")
	if rec.Code != http.StatusOK {
		t.Fatalf("login = %d, error %+v", rec.Code, env.Error)
	}
	var authResp authResponse
	if err := json.Unmarshal(env.Data, &authResp); err != nil {
		t.Fatal(err)
	}
	if authResp.Token == "" || authResp.User == nil {
		t.Fatal("login response missing token or user")
	}
	var cookie string
	for _, c := range rec.Result().Cookies() {
		if c.Name == "token" {
			cookie = c.Value
		}
	}
	if cookie != authResp.Token {
		t.Error("auth cookie does not carry the issued token")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+authResp.Token)
	mrec := httptest.NewRecorder()
	srv.ServeHTTP(mrec, req)
	if mrec.Code != http.StatusOK {
		t.Fatalf("me = %d", mrec.Code)
	}
	var meEnv envelope
	if err := json.Unmarshal(mrec.Body.Bytes(), &meEnv); err != nil {
		t.Fatal(err)
	}
	var me models.User
	if err := json.Unmarshal(meEnv.Data, &me); err != nil {
		t.Fatal(err)
	}
	if me.Username != "alice" {
		t.Errorf("me = %+v", me)
	}
}

func TestRegisterConflict(t *testing.T) {
	srv := newJWTServer(t, nil)

	if rec, _ := register(t, srv, "alice", "alice@example.com", "hunter22pass"); rec.Code != http.StatusOK {
		t.Fatalf("first register = %d", rec.Code)
	}
	rec, env := register(t, srv, "alice", "other@example.com", "hunter22pass")
	if rec.Code != http.StatusConflict || env.Error == nil || env.Error.Code != "CONFLICT" {
		t.Errorf("duplicate register = %d, error %+v", rec.Code, env.Error)
	}
}

func TestRegisterValidation(t *testing.T) {
	srv := newJWTServer(t, nil)

	tests := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{"short username", "ab", "a@b.example", "hunter22pass"},
		{"bad email", "alice", "nope", "hunter22pass"},
		{"short password", "alice", "a@b.example", "short"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := register(t, srv, tt.username, tt.email, tt.password)
			if rec.Code != http.StatusBadRequest || env.Error == nil || env.Error.Code != "VALIDATION_ERROR" {
				t.Errorf("status = %d, error %+v", rec.Code, env.Error)
			}
		})
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	srv := newJWTServer(t, nil)
	register(t, srv, "alice", "alice@example.com", "hunter22pass")

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "alice", "wrong-password"},
		{"unknown user", "mallory", "hunter22pass"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := login(t, srv, tt.username, tt.password)
			if rec.Code != http.StatusUnauthorized || env.Error == nil || env.Error.Code != "AUTHENTICATION_ERROR" {
				t.Errorf("status = %d, error %+v", rec.Code, env.Error)
			}
			// Same message for both cases so accounts cannot be enumerated.
			if env.Error != nil && env.Error.Message != "invalid username or password" {
				t.Errorf("message = %q", env.Error.Message)
			}
		})
	}
}

func TestLoginByEmail(t *testing.T) {
	srv := newJWTServer(t, nil)
	register(t, srv, "alice", "alice@example.com", "hunter22pass")

	rec, env := login(t, srv, "alice@example.com", "hunter22pass")
	if rec.Code != http.StatusOK {
		t.Fatalf("login by email = %d, error %+v", rec.Code, env.Error)
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	srv := newJWTServer(t, nil)

	rec, _ := doRequest(t, srv, http.MethodPost, "/api/v1/auth/logout", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("logout = %d", rec.Code)
	}
	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == "token" && c.Value == "" && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("logout did not clear the token cookie")
	}
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	srv := newJWTServer(t, nil)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/v1/recommend"},
		{http.MethodGet, "/api/v1/search"},
		{http.MethodGet, "/api/v1/recipes/featured"},
		{http.MethodGet, "/api/v1/auth/me"},
	}
	for _, p := range paths {
		req := httptest.NewRequest(p.method, p.path, bytes.NewBufferString("{}"))
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s = %d, want 401", p.method, p.path, rec.Code)
		}
	}
}

func TestHealthNeedsNoAuth(t *testing.T) {
	srv := newJWTServer(t, nil)

	rec, _ := doRequest(t, srv, http.MethodGet, "/api/v1/health/live", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("liveness = %d", rec.Code)
	}
}

func TestCredentialRateLimit(t *testing.T) {
	limiter := auth.NewRateLimiter(0.01, 2)
	t.Cleanup(limiter.Stop)
	srv := newJWTServer(t, limiter)

	var last *httptest.ResponseRecorder
	var lastEnv envelope
	for i := 0; i < 3; i++ {
		last, lastEnv = login(t, srv, "alice", "wrong")
	}
	if last.Code != http.StatusTooManyRequests || lastEnv.Error == nil || lastEnv.Error.Code != "RATE_LIMITED" {
		t.Errorf("third attempt = %d, error %+v", last.Code, lastEnv.Error)
	}
}
