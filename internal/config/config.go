// PantryChef - Ingredient-Driven Recipe Discovery
// Copyright 2026 PantryChef contributors
// SPDX-License-Identifier: MIT
// https://github.com/pantrychef/pantrychef

// Package config loads and validates PantryChef configuration.
//
// Configuration is layered: struct defaults, then an optional YAML file,
// then environment variables, with later layers overriding earlier ones.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the root configuration for the PantryChef server.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Dataset    DatasetConfig    `koanf:"dataset"`
	Match      MatchConfig      `koanf:"match"`
	Security   SecurityConfig   `koanf:"security"`
	Generation GenerationConfig `koanf:"generation"`
	Images     ImagesConfig     `koanf:"images"`
	Cache      CacheConfig      `koanf:"cache"`
	Logging    LoggingConfig    `koanf:"logging"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	// RateLimitRPM caps requests per client IP per minute. 0 disables.
	RateLimitRPM int      `koanf:"rate_limit_rpm"`
	CORSOrigins  []string `koanf:"cors_origins"`
}

// Addr returns the host:port listen address.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DatasetConfig controls the recipe dataset loader.
type DatasetConfig struct {
	// Path is the recipe CSV file location.
	Path string `koanf:"path"`
	// Limit caps the number of recipes loaded. 0 loads everything.
	Limit int `koanf:"limit"`
}

// MatchConfig controls the ingredient match engine.
type MatchConfig struct {
	// TopN is the default number of recommendations returned.
	TopN int `koanf:"top_n"`
	// MaxMissing is the default missing-ingredient tolerance.
	MaxMissing int `koanf:"max_missing"`
	// ScoreFloor admits zero-overlap recipes whose cosine score exceeds it.
	ScoreFloor float64 `koanf:"score_floor"`
	// RetrainInterval is how often the engine refits against the dataset.
	RetrainInterval time.Duration `koanf:"retrain_interval"`
}

// SecurityConfig controls authentication.
type SecurityConfig struct {
	// AuthMode is "jwt" or "none". "none" disables auth for local development.
	AuthMode string `koanf:"auth_mode"`
	// JWTSecret signs access tokens. Required when AuthMode is "jwt".
	JWTSecret string `koanf:"jwt_secret"`
	// TokenExpiry is the access token lifetime.
	TokenExpiry time.Duration `koanf:"token_expiry"`
	// UserDBPath is the BadgerDB directory for user accounts.
	UserDBPath string `koanf:"user_db_path"`
	// BcryptCost is the bcrypt work factor for password hashing.
	BcryptCost int `koanf:"bcrypt_cost"`
	// AdminUsername and AdminPassword seed an admin account at startup
	// when both are set.
	AdminUsername string `koanf:"admin_username"`
	AdminPassword string `koanf:"admin_password"`
	// AuthRateLimit is the fallback per-IP token-bucket rate for auth
	// endpoints, in requests per second. 0 disables.
	AuthRateLimit float64 `koanf:"auth_rate_limit"`
	// AuthRateBurst is the token-bucket burst for auth endpoints.
	AuthRateBurst int `koanf:"auth_rate_burst"`
}

// GenerationConfig controls the generative recipe client.
type GenerationConfig struct {
	// Enabled turns the /generate endpoint on.
	Enabled bool `koanf:"enabled"`
	// APIKey authenticates against the model endpoint.
	APIKey string `koanf:"api_key"`
	// Endpoint is the model API base URL.
	Endpoint string `koanf:"endpoint"`
	// Model is the model identifier sent with each request.
	Model string `koanf:"model"`
	// Timeout bounds a single generation request.
	Timeout time.Duration `koanf:"timeout"`
	// MaxRetries is the retry budget for overloaded-model responses.
	MaxRetries int `koanf:"max_retries"`
}

// ImagesConfig controls recipe image resolution.
type ImagesConfig struct {
	// LocalDir is scanned for recipe image files.
	LocalDir string `koanf:"local_dir"`
	// UnsplashAccessKey enables Unsplash API lookups when set.
	UnsplashAccessKey string `koanf:"unsplash_access_key"`
	// LookupTimeout bounds a single remote image lookup.
	LookupTimeout time.Duration `koanf:"lookup_timeout"`
}

// CacheConfig controls the in-memory response cache.
type CacheConfig struct {
	Enabled bool          `koanf:"enabled"`
	TTL     time.Duration `koanf:"ttl"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by the config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RateLimitRPM:    120,
			CORSOrigins:     []string{"*"},
		},
		Dataset: DatasetConfig{
			Path:  "data/recipes.csv",
			Limit: 0,
		},
		Match: MatchConfig{
			TopN:            8,
			MaxMissing:      2,
			ScoreFloor:      0.5,
			RetrainInterval: 24 * time.Hour, // 0 disables periodic retraining
		},
		Security: SecurityConfig{
			AuthMode:      "jwt",
			JWTSecret:     "",
			TokenExpiry:   24 * time.Hour,
			UserDBPath:    "data/users",
			BcryptCost:    10,
			AuthRateLimit: 1,
			AuthRateBurst: 5,
		},
		Generation: GenerationConfig{
			Enabled:    false,
			Endpoint:   "https://generativelanguage.googleapis.com/v1beta",
			Model:      "gemini-2.0-flash",
			Timeout:    30 * time.Second,
			MaxRetries: 5,
		},
		Images: ImagesConfig{
			LocalDir:      "data/images",
			LookupTimeout: 5 * time.Second,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     5 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Validate checks the configuration for internally inconsistent or unusable
// values. It is called after all layers are merged.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Dataset.Path == "" {
		return fmt.Errorf("dataset.path must not be empty")
	}
	if c.Match.TopN < 1 {
		return fmt.Errorf("match.top_n must be at least 1, got %d", c.Match.TopN)
	}
	if c.Match.MaxMissing < 0 {
		return fmt.Errorf("match.max_missing must not be negative, got %d", c.Match.MaxMissing)
	}
	if c.Match.ScoreFloor < 0 || c.Match.ScoreFloor > 1 {
		return fmt.Errorf("match.score_floor must be within [0,1], got %g", c.Match.ScoreFloor)
	}

	switch strings.ToLower(c.Security.AuthMode) {
	case "jwt":
		if c.Security.JWTSecret == "" {
			return fmt.Errorf("security.jwt_secret is required when auth_mode is jwt")
		}
		if len(c.Security.JWTSecret) < 32 {
			return fmt.Errorf("security.jwt_secret must be at least 32 characters")
		}
	case "none":
		// Development mode, no secret needed.
	default:
		return fmt.Errorf("security.auth_mode must be jwt or none, got %q", c.Security.AuthMode)
	}

	if c.Security.BcryptCost < 4 || c.Security.BcryptCost > 31 {
		return fmt.Errorf("security.bcrypt_cost must be between 4 and 31, got %d", c.Security.BcryptCost)
	}

	if c.Generation.Enabled && c.Generation.APIKey == "" {
		return fmt.Errorf("generation.api_key is required when generation is enabled")
	}
	if c.Generation.MaxRetries < 0 {
		return fmt.Errorf("generation.max_retries must not be negative, got %d", c.Generation.MaxRetries)
	}

	return nil
}
