// PantryChef - Ingredient-Driven Recipe Discovery
// Copyright 2026 PantryChef contributors
// SPDX-License-Identifier: MIT
// https://github.com/pantrychef/pantrychef

package logging

import (
	"strings"

	"github.com/rs/zerolog"
)

// AuthEvent captures an authentication-relevant event for audit logging.
type AuthEvent struct {
	// Event is the type of event: "register", "login_success", "login_failure".
	Event string
	// Username is the account name involved, sanitized before logging.
	Username string
	// IPAddress is the client's IP address.
	IPAddress string
	// Success indicates whether the operation succeeded.
	Success bool
	// Error is the failure reason, if any. Never include credentials here.
	Error string
}

// AuthLogger writes authentication audit events with input sanitization.
type AuthLogger struct {
	logger zerolog.Logger
}

// NewAuthLogger creates an auth audit logger on top of the global logger.
func NewAuthLogger() *AuthLogger {
	return &AuthLogger{logger: With().Str("component", "auth").Logger()}
}

// NewAuthLoggerWithLogger creates an auth audit logger with a custom backend.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewAuthLoggerWithLogger(logger zerolog.Logger) *AuthLogger {
	return &AuthLogger{logger: logger.With().Str("component", "auth").Logger()}
}

// LogEvent emits the event at info level on success, warn on failure.
func (l *AuthLogger) LogEvent(e AuthEvent) {
	event := l.logger.Info()
	if !e.Success {
		event = l.logger.Warn()
	}

	event = event.
		Str("event", e.Event).
		Str("username", SanitizeValue(e.Username)).
		Bool("success", e.Success)

	if e.IPAddress != "" {
		event = event.Str("ip", e.IPAddress)
	}
	if e.Error != "" {
		event = event.Str("error", SanitizeValue(e.Error))
	}

	event.Msg("auth event")
}

// SanitizeValue strips control characters that could forge log lines and
// truncates oversized values.
func SanitizeValue(v string) string {
	v = strings.ReplaceAll(v, "\n", " ")
	v = strings.ReplaceAll(v, "\r", " ")
	v = strings.ReplaceAll(v, "\t", " ")
	const maxLen = 256
	if len(v) > maxLen {
		v = v[:maxLen]
	}
	return v
}
