// PantryChef - Ingredient-Driven Recipe Discovery
// Copyright 2026 PantryChef contributors
// SPDX-License-Identifier: MIT
// https://github.com/pantrychef/pantrychef

// Package main is the entry point for the PantryChef server.
//
// PantryChef suggests recipes you can cook with the ingredients already in
// your kitchen. It ranks a recipe catalog against your pantry with TF-IDF
// cosine similarity, tells you what you have and what you are missing,
// proposes substitutions, and can optionally ask a generative model for
// fresh recipe ideas.
//
// The server initializes components in the following order:
//
//  1. Configuration: layered defaults, YAML file, environment (koanf v2)
//  2. Dataset: recipe CSV loaded into the in-memory store
//  3. Match engine: TF-IDF vectorizer trained on the catalog
//  4. Authentication: JWT manager and BadgerDB user store (AUTH_MODE=jwt)
//  5. Generation (optional): circuit-broken generative recipe client
//  6. HTTP server: chi REST API under a suture supervision tree
//
// Graceful shutdown is handled on SIGINT and SIGTERM: the listener stops
// accepting connections, in-flight requests get the configured shutdown
// timeout, and the user database is closed last.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/pantrychef/pantrychef/internal/api"
	"github.com/pantrychef/pantrychef/internal/auth"
	"github.com/pantrychef/pantrychef/internal/cache"
	"github.com/pantrychef/pantrychef/internal/config"
	"github.com/pantrychef/pantrychef/internal/dataset"
	"github.com/pantrychef/pantrychef/internal/enrich"
	"github.com/pantrychef/pantrychef/internal/generation"
	"github.com/pantrychef/pantrychef/internal/logging"
	"github.com/pantrychef/pantrychef/internal/match"
	"github.com/pantrychef/pantrychef/internal/metrics"
	"github.com/pantrychef/pantrychef/internal/supervisor"
	"github.com/pantrychef/pantrychef/internal/supervisor/services"
)

func main() {
	// A .env file is a convenience for local development; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("addr", cfg.Server.Addr()).
		Str("dataset", cfg.Dataset.Path).
		Str("auth_mode", cfg.Security.AuthMode).
		Bool("generation", cfg.Generation.Enabled).
		Msg("Starting PantryChef")

	// Load the recipe catalog and train the matcher before serving.
	recipes, err := dataset.Load(dataset.LoaderConfig{
		Path:  cfg.Dataset.Path,
		Limit: cfg.Dataset.Limit,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load recipe dataset")
	}
	store := dataset.NewStore(recipes)
	logging.Info().Int("recipes", store.Len()).Msg("Recipe dataset loaded")

	engine := match.NewEngine(match.Config{
		TopN:       cfg.Match.TopN,
		MaxMissing: cfg.Match.MaxMissing,
		ScoreFloor: cfg.Match.ScoreFloor,
	})
	trainStart := time.Now()
	if err := engine.Train(context.Background(), recipes); err != nil {
		logging.Fatal().Err(err).Msg("Failed to train match engine")
	}
	metrics.RecordTrain(time.Since(trainStart), store.Len(), engine.VocabularySize(), nil)
	logging.Info().
		Dur("duration", time.Since(trainStart)).
		Int("vocabulary", engine.VocabularySize()).
		Msg("Match engine trained")

	// Authentication. AUTH_MODE=none skips the user store entirely.
	var (
		users      *auth.UserStore
		jwtManager *auth.JWTManager
	)
	if strings.EqualFold(cfg.Security.AuthMode, "jwt") {
		jwtManager, err = auth.NewJWTManager(&cfg.Security)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to initialize JWT manager")
		}
		users, err = auth.NewUserStore(cfg.Security.UserDBPath, cfg.Security.BcryptCost)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to open user database")
		}
		defer func() {
			if err := users.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing user database")
			}
		}()
		seedAdminUser(users, cfg)
	} else {
		logging.Warn().Msg("Authentication disabled (AUTH_MODE=none) - do not run this in production")
	}

	var generator api.Generator
	if cfg.Generation.Enabled {
		client, err := generation.NewClient(generation.Config{
			APIKey:     cfg.Generation.APIKey,
			Endpoint:   cfg.Generation.Endpoint,
			Model:      cfg.Generation.Model,
			Timeout:    cfg.Generation.Timeout,
			MaxRetries: cfg.Generation.MaxRetries,
		})
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to initialize generation client")
		}
		generator = client
		logging.Info().Str("model", cfg.Generation.Model).Msg("Generation client initialized")
	}

	images := enrich.NewImageResolver(enrich.ImageResolverConfig{
		LocalDir:          cfg.Images.LocalDir,
		UnsplashAccessKey: cfg.Images.UnsplashAccessKey,
	}, &http.Client{Timeout: cfg.Images.LookupTimeout})

	responseCache := cache.New(cfg.Cache.TTL)

	handler := api.NewHandler(api.HandlerConfig{
		Config:    cfg,
		Store:     store,
		Engine:    engine,
		Users:     users,
		JWT:       jwtManager,
		Cache:     responseCache,
		Images:    images,
		Generator: generator,
	})

	authMW := auth.NewMiddleware(jwtManager, cfg.Security.AuthMode)
	var authLimiter *auth.RateLimiter
	if cfg.Security.AuthRateLimit > 0 {
		authLimiter = auth.NewRateLimiter(cfg.Security.AuthRateLimit, cfg.Security.AuthRateBurst)
		defer authLimiter.Stop()
	}
	router := api.NewRouter(handler, authMW, authLimiter)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Supervisor tree: HTTP server in the api layer, periodic retrainer in
	// the worker layer.
	supervisorLogger := slog.New(logging.NewSlogHandler())
	tree := supervisor.NewTree(supervisorLogger, supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	if cfg.Match.RetrainInterval > 0 {
		reloader := dataset.NewReloader(dataset.LoaderConfig{
			Path:  cfg.Dataset.Path,
			Limit: cfg.Dataset.Limit,
		}, store)
		tree.AddWorkerService(services.NewTrainerService(
			reloader, engine, responseCache,
			services.TrainerServiceConfig{Interval: cfg.Match.RetrainInterval},
			logging.Logger(),
		))
		logging.Info().Dur("interval", cfg.Match.RetrainInterval).Msg("Periodic retraining enabled")
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	responseCache.Stop()
	logging.Info().Msg("PantryChef stopped gracefully")
}

// seedAdminUser registers the configured admin account on first start.
// An existing account is left alone.
func seedAdminUser(users *auth.UserStore, cfg *config.Config) {
	username := cfg.Security.AdminUsername
	password := cfg.Security.AdminPassword
	if username == "" || password == "" {
		return
	}

	user, err := users.RegisterWithRole(context.Background(), username, username+"@localhost", password, "admin")
	if err != nil {
		if errors.Is(err, auth.ErrUserExists) {
			return
		}
		logging.Warn().Err(err).Msg("Failed to seed admin user")
		return
	}
	logging.Info().Str("username", user.Username).Msg("Admin user seeded")
}
