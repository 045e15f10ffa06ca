// PantryChef - Ingredient-Driven Recipe Discovery
// Copyright 2026 PantryChef contributors
// SPDX-License-Identifier: MIT
// https://github.com/pantrychef/pantrychef

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/pantrychef/pantrychef/internal/models"
)

// RecipeSource reloads the recipe catalog from its backing dataset.
type RecipeSource interface {
	Reload(ctx context.Context) ([]models.Recipe, error)
}

// MatchTrainer refits the matcher against a recipe corpus.
type MatchTrainer interface {
	Train(ctx context.Context, recipes []models.Recipe) error
}

// ResponseCache is the subset of the response cache the trainer needs to
// drop stale entries after a retrain.
type ResponseCache interface {
	Clear()
}

// TrainerServiceConfig holds retrainer tuning.
type TrainerServiceConfig struct {
	// Interval between retrains. Values <= 0 disable the ticker; the
	// service then only waits for shutdown.
	Interval time.Duration
	// TrainTimeout bounds one reload-and-train cycle.
	TrainTimeout time.Duration
}

// TrainerService periodically reloads the dataset, retrains the match
// engine, and clears the response cache so stale rankings fall out.
type TrainerService struct {
	source  RecipeSource
	trainer MatchTrainer
	cache   ResponseCache
	config  TrainerServiceConfig
	logger  zerolog.Logger
	name    string
}

// NewTrainerService creates the retrainer. cache may be nil.
func NewTrainerService(source RecipeSource, trainer MatchTrainer, cache ResponseCache, cfg TrainerServiceConfig, logger zerolog.Logger) *TrainerService {
	if cfg.TrainTimeout <= 0 {
		cfg.TrainTimeout = 5 * time.Minute
	}
	return &TrainerService{
		source:  source,
		trainer: trainer,
		cache:   cache,
		config:  cfg,
		logger:  logger.With().Str("service", "trainer").Logger(),
		name:    "trainer-service",
	}
}

// Serve implements suture.Service.
func (s *TrainerService) Serve(ctx context.Context) error {
	if s.config.Interval <= 0 {
		s.logger.Info().Msg("periodic retraining disabled")
		<-ctx.Done()
		return ctx.Err()
	}

	s.logger.Info().
		Dur("interval", s.config.Interval).
		Msg("trainer service running")

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("trainer service shutting down")
			return ctx.Err()

		case <-ticker.C:
			if err := s.retrain(ctx); err != nil {
				s.logger.Warn().Err(err).Msg("scheduled retrain failed")
			}
		}
	}
}

func (s *TrainerService) retrain(ctx context.Context) error {
	trainCtx, cancel := context.WithTimeout(ctx, s.config.TrainTimeout)
	defer cancel()

	start := time.Now()
	recipes, err := s.source.Reload(trainCtx)
	if err != nil {
		return err
	}
	if err := s.trainer.Train(trainCtx, recipes); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Clear()
	}

	s.logger.Info().
		Int("recipes", len(recipes)).
		Dur("duration", time.Since(start)).
		Msg("retrain complete")
	return nil
}

// String identifies the service in supervisor logs.
func (s *TrainerService) String() string {
	return s.name
}
