// PantryChef - Ingredient-Driven Recipe Discovery
// Copyright 2026 PantryChef contributors
// SPDX-License-Identifier: MIT
// https://github.com/pantrychef/pantrychef

package enrich

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("img"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFindLocalImage(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "butter-chicken.jpg")
	writeFile(t, dir, "PalakPaneer.png")

	r := NewImageResolver(ImageResolverConfig{LocalDir: dir}, nil)

	if got := r.findLocalImage("Butter Chicken"); got != "/images/recipes/butter-chicken.jpg" {
		t.Errorf("hyphen variant = %q", got)
	}
	// Fuzzy match ignores case and separators.
	if got := r.findLocalImage("palak paneer"); got != "/images/recipes/PalakPaneer.png" {
		t.Errorf("fuzzy match = %q", got)
	}
	if got := r.findLocalImage("kheer"); got != "" {
		t.Errorf("unknown dish = %q, want empty", got)
	}
}

func TestFindLocalImageNoDir(t *testing.T) {
	r := NewImageResolver(ImageResolverConfig{}, nil)
	if got := r.findLocalImage("anything"); got != "" {
		t.Errorf("no dir configured = %q, want empty", got)
	}

	r = NewImageResolver(ImageResolverConfig{LocalDir: "/does/not/exist"}, nil)
	if got := r.findLocalImage("anything"); got != "" {
		t.Errorf("missing dir = %q, want empty", got)
	}
}

func TestResolvePinnedMap(t *testing.T) {
	r := NewImageResolver(ImageResolverConfig{}, nil)

	got := r.Resolve(context.Background(), "Butter Chicken", "Indian")
	if !strings.HasPrefix(got, "https://images.unsplash.com/") {
		t.Errorf("pinned dish resolved to %q", got)
	}

	// Partial names still hit the pinned entries.
	partial := r.Resolve(context.Background(), "Hyderabadi Biryani", "Indian")
	if !strings.HasPrefix(partial, "https://images.unsplash.com/") {
		t.Errorf("partial pinned dish resolved to %q", partial)
	}
}

func TestResolveFallbackURL(t *testing.T) {
	r := NewImageResolver(ImageResolverConfig{}, nil)

	got := r.Resolve(context.Background(), "Mystery stew", "")
	want := "https://source.unsplash.com/800x600/?Mystery+stew+food"
	if got != want {
		t.Errorf("fallback = %q, want %q", got, want)
	}
}

func TestResolveUnsplashAPI(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"urls":{"regular":"https://example.com/photo.jpg"}}]}`))
	}))
	defer srv.Close()

	r := NewImageResolver(ImageResolverConfig{UnsplashAccessKey: "test-key"}, srv.Client())
	r.apiBaseURL = srv.URL

	got := r.Resolve(context.Background(), "Mystery stew", "Indian")
	if got != "https://example.com/photo.jpg" {
		t.Errorf("Resolve = %q, want API result", got)
	}
	if gotQuery != "Mystery stew indian food recipe" {
		t.Errorf("query = %q", gotQuery)
	}
}

func TestResolveUnsplashAPIFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	r := NewImageResolver(ImageResolverConfig{UnsplashAccessKey: "bad-key"}, srv.Client())
	r.apiBaseURL = srv.URL

	// A failing API stage falls through to the deterministic URL.
	got := r.Resolve(context.Background(), "Mystery stew", "")
	if !strings.HasPrefix(got, "https://source.unsplash.com/") {
		t.Errorf("Resolve after API failure = %q", got)
	}
}
