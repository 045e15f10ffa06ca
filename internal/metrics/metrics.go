// PantryChef - Ingredient-Driven Recipe Discovery
// Copyright 2026 PantryChef contributors
// SPDX-License-Identifier: MIT
// https://github.com/pantrychef/pantrychef

// Package metrics registers the Prometheus collectors for PantryChef:
// API latency and throughput, match engine training and ranking, cache
// efficiency, and generation calls.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API endpoint metrics

	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Match engine metrics

	MatchTrainDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "match_train_duration_seconds",
			Help:    "Duration of match engine training in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	MatchTrainTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "match_train_total",
			Help: "Total number of match engine training runs",
		},
		[]string{"result"},
	)

	MatchRankDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "match_rank_duration_seconds",
			Help:    "Duration of recipe ranking in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	MatchRecipeCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "match_recipe_count",
			Help: "Number of recipes in the fitted match model",
		},
	)

	MatchVocabularySize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "match_vocabulary_size",
			Help: "Number of TF-IDF vocabulary terms in the fitted model",
		},
	)

	// Cache metrics

	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "response_cache_hits_total",
			Help: "Total number of response cache hits",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "response_cache_misses_total",
			Help: "Total number of response cache misses",
		},
	)

	// Generation metrics

	GenerationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generation_requests_total",
			Help: "Total number of recipe generation requests",
		},
		[]string{"result"},
	)

	GenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "generation_duration_seconds",
			Help:    "Duration of recipe generation calls in seconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 30, 60},
		},
	)

	// Auth metrics

	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
		[]string{"operation", "result"},
	)
)

// RecordAPIRequest records one completed API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordTrain records a match engine training run.
func RecordTrain(duration time.Duration, recipeCount, vocabularySize int, err error) {
	MatchTrainDuration.Observe(duration.Seconds())
	if err != nil {
		MatchTrainTotal.WithLabelValues("error").Inc()
		return
	}
	MatchTrainTotal.WithLabelValues("success").Inc()
	MatchRecipeCount.Set(float64(recipeCount))
	MatchVocabularySize.Set(float64(vocabularySize))
}

// RecordGeneration records one generation call.
func RecordGeneration(duration time.Duration, err error) {
	GenerationDuration.Observe(duration.Seconds())
	if err != nil {
		GenerationRequests.WithLabelValues("error").Inc()
		return
	}
	GenerationRequests.WithLabelValues("success").Inc()
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
		return
	}
	APIActiveRequests.Dec()
}
