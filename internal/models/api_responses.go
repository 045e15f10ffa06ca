// PantryChef - Ingredient-Driven Recipe Discovery
// Copyright 2026 PantryChef contributors
// SPDX-License-Identifier: MIT
// https://github.com/pantrychef/pantrychef

package models

import (
	"time"
)

// APIResponse is the standardized wrapper used by every HTTP endpoint.
//
// Status is "success" or "error". Data carries the payload on success;
// Error carries structured details on failure.
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"recipes": [...]},
//	  "metadata": {
//	    "timestamp": "2026-08-26T12:00:00Z",
//	    "query_time_ms": 3,
//	    "cached": false
//	  }
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
//
// QueryTimeMS is the server-side processing time in milliseconds; cached
// responses report 0 and set Cached.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
}

// APIError is the structured error payload shared by all endpoints.
//
// Common codes:
//   - VALIDATION_ERROR: invalid input parameters
//   - AUTHENTICATION_ERROR: invalid or missing credentials
//   - CONFLICT: resource already exists
//   - NOT_FOUND: resource does not exist
//   - RATE_LIMITED: per-IP request budget exhausted
//   - SERVICE_UNAVAILABLE: a dependency is disabled or unreachable
//   - INTERNAL_ERROR: unexpected server failure
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
