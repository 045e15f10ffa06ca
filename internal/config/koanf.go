// PantryChef - Ingredient-Driven Recipe Discovery
// Copyright 2026 PantryChef contributors
// SPDX-License-Identifier: MIT
// https://github.com/pantrychef/pantrychef

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists where config files are searched, in priority
// order. The first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/pantrychef/config.yaml",
	"/etc/pantrychef/config.yml",
}

// ConfigPathEnvVar overrides the config file path when set.
const ConfigPathEnvVar = "CONFIG_PATH"

// Load builds the configuration from defaults, an optional YAML file, and
// environment variables, then validates the merged result.
func Load() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: struct defaults
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: optional config file
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables (highest priority)
	// SERVER_PORT -> server.port, AUTH_MODE -> security.auth_mode
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first config file that exists, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths lists config paths parsed as comma-separated slices when
// supplied through the environment.
var sliceConfigPaths = []string{
	"server.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for
// known slice fields. Env vars arrive as plain strings.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}
		// Already a slice (from the YAML file or defaults).
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		s, ok := val.(string)
		if !ok {
			return fmt.Errorf("config path %s has unexpected type %T", path, val)
		}

		parts := strings.Split(s, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if err := k.Set(path, out); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envTransformFunc maps environment variable names onto koanf paths. Only
// recognized names are mapped; everything else is ignored so unrelated env
// vars cannot disturb the configuration.
func envTransformFunc(key string) string {
	mappings := map[string]string{
		"server_host":             "server.host",
		"server_port":             "server.port",
		"port":                    "server.port",
		"server_read_timeout":     "server.read_timeout",
		"server_write_timeout":    "server.write_timeout",
		"server_idle_timeout":     "server.idle_timeout",
		"server_shutdown_timeout": "server.shutdown_timeout",
		"server_rate_limit_rpm":   "server.rate_limit_rpm",
		"cors_origins":            "server.cors_origins",

		"dataset_path":  "dataset.path",
		"dataset_limit": "dataset.limit",

		"match_top_n":            "match.top_n",
		"match_max_missing":      "match.max_missing",
		"match_score_floor":      "match.score_floor",
		"match_retrain_interval": "match.retrain_interval",

		"auth_mode":       "security.auth_mode",
		"jwt_secret":      "security.jwt_secret",
		"token_expiry":    "security.token_expiry",
		"user_db_path":    "security.user_db_path",
		"bcrypt_cost":     "security.bcrypt_cost",
		"admin_username":  "security.admin_username",
		"admin_password":  "security.admin_password",
		"auth_rate_limit": "security.auth_rate_limit",
		"auth_rate_burst": "security.auth_rate_burst",

		"generation_enabled":     "generation.enabled",
		"gemini_api_key":         "generation.api_key",
		"generation_endpoint":    "generation.endpoint",
		"generation_model":       "generation.model",
		"generation_timeout":     "generation.timeout",
		"generation_max_retries": "generation.max_retries",

		"images_local_dir":      "images.local_dir",
		"unsplash_access_key":   "images.unsplash_access_key",
		"images_lookup_timeout": "images.lookup_timeout",

		"cache_enabled": "cache.enabled",
		"cache_ttl":     "cache.ttl",

		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",
	}

	if mapped, ok := mappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
