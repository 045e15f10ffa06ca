// PantryChef - Ingredient-Driven Recipe Discovery
// Copyright 2026 PantryChef contributors
// SPDX-License-Identifier: MIT
// https://github.com/pantrychef/pantrychef

package auth

import (
	"testing"
	"time"

	"github.com/pantrychef/pantrychef/internal/config"
)

const testSecret = "test-secret-at-least-32-characters!!"

func testJWTManager(t *testing.T, expiry time.Duration) *JWTManager {
	t.Helper()
	m, err := NewJWTManager(&config.SecurityConfig{
		JWTSecret:   testSecret,
		TokenExpiry: expiry,
	})
	if err != nil {
		t.Fatalf("NewJWTManager failed: %v", err)
	}
	return m
}

func TestNewJWTManagerRequiresSecret(t *testing.T) {
	if _, err := NewJWTManager(&config.SecurityConfig{}); err == nil {
		t.Error("expected error for empty secret")
	}
}

func TestJWTManagerDefaultExpiry(t *testing.T) {
	m := testJWTManager(t, 0)
	if m.Expiry() != 24*time.Hour {
		t.Errorf("Expiry = %v, want 24h default", m.Expiry())
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	m := testJWTManager(t, time.Hour)

	token, err := m.GenerateToken("alice", "user")
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if claims.Username != "alice" || claims.Role != "user" {
		t.Errorf("claims = %+v", claims)
	}
	if claims.ExpiresAt == nil || time.Until(claims.ExpiresAt.Time) > time.Hour {
		t.Errorf("ExpiresAt = %v", claims.ExpiresAt)
	}
}

func TestValidateTokenRejects(t *testing.T) {
	m := testJWTManager(t, time.Hour)

	t.Run("garbage", func(t *testing.T) {
		if _, err := m.ValidateToken("not-a-token"); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := testJWTManager(t, time.Hour)
		other.secret = []byte("another-secret-also-32-characters!!!")
		token, err := other.GenerateToken("mallory", "admin")
		if err != nil {
			t.Fatal(err)
		}
		if _, err := m.ValidateToken(token); err == nil {
			t.Error("expected error for token signed with a different secret")
		}
	})

	t.Run("expired", func(t *testing.T) {
		short := testJWTManager(t, time.Nanosecond)
		token, err := short.GenerateToken("alice", "user")
		if err != nil {
			t.Fatal(err)
		}
		time.Sleep(10 * time.Millisecond)
		if _, err := short.ValidateToken(token); err == nil {
			t.Error("expected error for expired token")
		}
	})
}
