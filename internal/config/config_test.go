// PantryChef - Ingredient-Driven Recipe Discovery
// Copyright 2026 PantryChef contributors
// SPDX-License-Identifier: MIT
// https://github.com/pantrychef/pantrychef

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func validConfig() *Config {
	cfg := defaultConfig()
	cfg.Security.JWTSecret = testSecret
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"defaults with secret", func(c *Config) {}, ""},
		{"port too low", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, "server.port"},
		{"empty dataset path", func(c *Config) { c.Dataset.Path = "" }, "dataset.path"},
		{"top_n zero", func(c *Config) { c.Match.TopN = 0 }, "match.top_n"},
		{"negative max_missing", func(c *Config) { c.Match.MaxMissing = -1 }, "match.max_missing"},
		{"score floor above one", func(c *Config) { c.Match.ScoreFloor = 1.5 }, "match.score_floor"},
		{"jwt without secret", func(c *Config) { c.Security.JWTSecret = "" }, "jwt_secret is required"},
		{"jwt secret too short", func(c *Config) { c.Security.JWTSecret = "short" }, "at least 32 characters"},
		{
			"none mode needs no secret",
			func(c *Config) {
				c.Security.AuthMode = "none"
				c.Security.JWTSecret = ""
			},
			"",
		},
		{"unknown auth mode", func(c *Config) { c.Security.AuthMode = "basic" }, "auth_mode"},
		{"bcrypt cost out of range", func(c *Config) { c.Security.BcryptCost = 2 }, "bcrypt_cost"},
		{
			"generation enabled without key",
			func(c *Config) { c.Generation.Enabled = true },
			"generation.api_key",
		},
		{"negative retries", func(c *Config) { c.Generation.MaxRetries = -1 }, "max_retries"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestServerAddr(t *testing.T) {
	c := ServerConfig{Host: "127.0.0.1", Port: 9090}
	if got := c.Addr(); got != "127.0.0.1:9090" {
		t.Errorf("Addr() = %q", got)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("AUTH_MODE", "none")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("default port = %d", cfg.Server.Port)
	}
	if cfg.Match.TopN != 8 || cfg.Match.MaxMissing != 2 || cfg.Match.ScoreFloor != 0.5 {
		t.Errorf("match defaults = %+v", cfg.Match)
	}
	if cfg.Match.RetrainInterval != 24*time.Hour {
		t.Errorf("retrain interval = %v, want 24h", cfg.Match.RetrainInterval)
	}
	if cfg.Security.TokenExpiry != 24*time.Hour {
		t.Errorf("token expiry = %v", cfg.Security.TokenExpiry)
	}
	if !cfg.Cache.Enabled || cfg.Cache.TTL != 5*time.Minute {
		t.Errorf("cache defaults = %+v", cfg.Cache)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("AUTH_MODE", "none")
	t.Setenv("SERVER_PORT", "9191")
	t.Setenv("MATCH_TOP_N", "12")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("UNRELATED_VAR", "ignored")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9191 {
		t.Errorf("port = %d, want 9191", cfg.Server.Port)
	}
	if cfg.Match.TopN != 12 {
		t.Errorf("top_n = %d, want 12", cfg.Match.TopN)
	}
	want := []string{"https://a.example", "https://b.example"}
	if len(cfg.Server.CORSOrigins) != 2 || cfg.Server.CORSOrigins[0] != want[0] || cfg.Server.CORSOrigins[1] != want[1] {
		t.Errorf("cors_origins = %v, want %v", cfg.Server.CORSOrigins, want)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := "server:\n  port: 7070\nsecurity:\n  auth_mode: none\nmatch:\n  max_missing: 4\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	// Env still beats the file.
	t.Setenv("MATCH_MAX_MISSING", "1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("port = %d, want 7070 from file", cfg.Server.Port)
	}
	if cfg.Match.MaxMissing != 1 {
		t.Errorf("max_missing = %d, want env override 1", cfg.Match.MaxMissing)
	}
}

func TestLoadValidationFailure(t *testing.T) {
	t.Setenv("AUTH_MODE", "jwt")
	t.Setenv("JWT_SECRET", "short")

	if _, err := Load(); err == nil {
		t.Fatal("expected validation error for short secret")
	}
}
