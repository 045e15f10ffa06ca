// PantryChef - Ingredient-Driven Recipe Discovery
// Copyright 2026 PantryChef contributors
// SPDX-License-Identifier: MIT
// https://github.com/pantrychef/pantrychef

package api

import (
	"net/http"
	"time"
)

// Health reports overall service health. The service is degraded until the
// matching engine has been trained on the recipe dataset.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	status := "healthy"
	if !h.engine.IsTrained() {
		status = "degraded"
	}

	data := map[string]interface{}{
		"status":         status,
		"uptime_seconds": time.Since(h.startTime).Seconds(),
		"recipes":        h.store.Len(),
		"engine": map[string]interface{}{
			"trained":         h.engine.IsTrained(),
			"version":         h.engine.Version(),
			"last_trained_at": h.engine.LastTrainedAt(),
		},
	}

	respondSuccess(w, data, start, false)
}

// Liveness is a bare liveness probe.
func (h *Handler) Liveness(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, map[string]string{"status": "alive"}, time.Now(), false)
}

// Readiness reports whether the service can serve recommendations.
func (h *Handler) Readiness(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if !h.engine.IsTrained() {
		respondError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE",
			"matching engine not trained", nil)
		return
	}
	respondSuccess(w, map[string]string{"status": "ready"}, start, false)
}
