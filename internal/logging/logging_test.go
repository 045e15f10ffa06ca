// PantryChef - Ingredient-Driven Recipe Discovery
// Copyright 2026 PantryChef contributors
// SPDX-License-Identifier: MIT
// https://github.com/pantrychef/pantrychef

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func TestSanitizeValue(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"clean", "alice", "alice"},
		{"newline", "alice\nFAKE LOG LINE", "alice FAKE LOG LINE"},
		{"carriage return and tab", "a\rb\tc", "a b c"},
		{"truncated", strings.Repeat("x", 300), strings.Repeat("x", 256)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeValue(tt.in); got != tt.want {
				t.Errorf("SanitizeValue(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestAuthLoggerEvent(t *testing.T) {
	var buf bytes.Buffer
	l := NewAuthLoggerWithLogger(NewTestLogger(&buf))

	l.LogEvent(AuthEvent{
		Event:     "login",
		Username:  "alice\nspoofed",
		IPAddress: "10.0.0.1",
		Success:   false,
		Error:     "invalid credentials",
	})

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line: %v (%q)", err, buf.String())
	}
	if entry["level"] != "warn" {
		t.Errorf("level = %v, want warn for failure", entry["level"])
	}
	if entry["username"] != "alice spoofed" {
		t.Errorf("username = %v, not sanitized", entry["username"])
	}
	if entry["ip"] != "10.0.0.1" || entry["component"] != "auth" {
		t.Errorf("entry = %v", entry)
	}
}

func TestRequestIDContext(t *testing.T) {
	ctx := ContextWithRequestID(context.Background(), "req-123")
	if got := RequestIDFromContext(ctx); got != "req-123" {
		t.Errorf("RequestIDFromContext = %q", got)
	}
	if got := RequestIDFromContext(context.Background()); got != "" {
		t.Errorf("empty context request ID = %q", got)
	}
}

func TestGenerateRequestID(t *testing.T) {
	a := GenerateRequestID()
	b := GenerateRequestID()
	if a == "" || a == b {
		t.Errorf("request IDs not unique: %q, %q", a, b)
	}
}

func TestSlogHandlerBridges(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewSlogHandlerWithLogger(NewTestLogger(&buf)))

	logger.Info("supervisor event", slog.String("service", "http-server"), slog.Int("restarts", 2))

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log line: %v (%q)", err, buf.String())
	}
	if entry["message"] != "supervisor event" {
		t.Errorf("message = %v", entry["message"])
	}
	if entry["service"] != "http-server" {
		t.Errorf("service attr = %v", entry["service"])
	}
	if restarts, ok := entry["restarts"].(float64); !ok || restarts != 2 {
		t.Errorf("restarts attr = %v", entry["restarts"])
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"debug", "debug"},
		{"WARN", "warn"},
		{"unknown", "info"},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in).String(); got != tt.want {
			t.Errorf("parseLevel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
