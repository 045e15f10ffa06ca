// PantryChef - Ingredient-Driven Recipe Discovery
// Copyright 2026 PantryChef contributors
// SPDX-License-Identifier: MIT
// https://github.com/pantrychef/pantrychef

package enrich

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/goccy/go-json"

	"github.com/pantrychef/pantrychef/internal/logging"
)

// recipeImageMap pins popular dishes to known-good Unsplash photos so the
// most-viewed recipes never depend on a live lookup.
var recipeImageMap = map[string]string{
	"paneer tikka":     "https://images.unsplash.com/photo-1567188040759-fb8a883dc6d8?w=800",
	"butter chicken":   "https://images.unsplash.com/photo-1603894584373-5ac82b2ae398?w=800",
	"biryani":          "https://images.unsplash.com/photo-1563379091339-03b21ab4a4f8?w=800",
	"palak paneer":     "https://images.unsplash.com/photo-1601050690597-df0568f70950?w=800",
	"samosa":           "https://images.unsplash.com/photo-1601050690597-df0568f70950?w=800",
	"dosa":             "https://images.unsplash.com/photo-1630383249896-424e482df921?w=800",
	"idli":             "https://images.unsplash.com/photo-1589301760014-d929f3979dbc?w=800",
	"chole bhature":    "https://images.unsplash.com/photo-1626132647523-66f2bf380c9e?w=800",
	"dal makhani":      "https://images.unsplash.com/photo-1546833998-877b37c2e5c6?w=800",
	"tandoori chicken": "https://images.unsplash.com/photo-1599487488170-d11ec9c172f0?w=800",
	"naan":             "https://images.unsplash.com/photo-1601050690117-94f5f6fa9e5b?w=800",
	"gulab jamun":      "https://images.unsplash.com/photo-1589301773859-cb96e5b4c9d4?w=800",
	"rasgulla":         "https://images.unsplash.com/photo-1606313564555-46c1e5a033e1?w=800",
	"jalebi":           "https://images.unsplash.com/photo-1631452180519-c014fe946bc7?w=800",
	"pav bhaji":        "https://images.unsplash.com/photo-1606491956689-2ea866880c84?w=800",
	"vada pav":         "https://images.unsplash.com/photo-1626074353765-517a681e40be?w=800",
}

// ImageResolverConfig controls image lookup.
type ImageResolverConfig struct {
	// LocalDir is scanned for recipe image files served under /images/recipes/.
	LocalDir string
	// UnsplashAccessKey enables the Unsplash API stage when set.
	UnsplashAccessKey string
}

// ImageResolver finds a representative photo URL for a dish.
//
// Resolution order: local file, pinned map entry, Unsplash API, and finally
// a source.unsplash.com query URL that always yields something.
type ImageResolver struct {
	cfg    ImageResolverConfig
	client *http.Client
	// apiBaseURL is overridden in tests.
	apiBaseURL string
}

// NewImageResolver creates a resolver. The client's timeout bounds remote
// lookups; pass one with a short timeout so slow lookups cannot stall a
// page render.
func NewImageResolver(cfg ImageResolverConfig, client *http.Client) *ImageResolver {
	if client == nil {
		client = http.DefaultClient
	}
	return &ImageResolver{cfg: cfg, client: client, apiBaseURL: "https://api.unsplash.com"}
}

// Resolve returns an image URL for the named dish. It never fails; the
// final fallback is a deterministic query URL.
func (r *ImageResolver) Resolve(ctx context.Context, recipeName, cuisine string) string {
	if local := r.findLocalImage(recipeName); local != "" {
		return local
	}

	nameLower := strings.ToLower(strings.TrimSpace(recipeName))
	for key, imgURL := range recipeImageMap {
		if strings.Contains(nameLower, key) || strings.Contains(key, nameLower) {
			return imgURL
		}
	}

	if r.cfg.UnsplashAccessKey != "" {
		if u := r.searchUnsplash(ctx, recipeName, cuisine); u != "" {
			return u
		}
	}

	return "https://source.unsplash.com/800x600/?" + url.QueryEscape(recipeName+" food")
}

var imageNamePattern = regexp.MustCompile(`[^a-z0-9]`)

// findLocalImage looks for an image file matching the recipe name in the
// local images directory, trying common filename variants first and a
// fuzzy normalized scan second.
func (r *ImageResolver) findLocalImage(recipeName string) string {
	if r.cfg.LocalDir == "" {
		return ""
	}
	if info, err := os.Stat(r.cfg.LocalDir); err != nil || !info.IsDir() {
		return ""
	}

	lower := strings.ToLower(strings.TrimSpace(recipeName))
	variants := []string{
		lower,
		strings.ReplaceAll(lower, " ", "-"),
		strings.ReplaceAll(lower, " ", "_"),
		strings.ReplaceAll(lower, " ", ""),
	}
	exts := []string{".jpg", ".jpeg", ".png", ".webp"}
	for _, v := range variants {
		for _, ext := range exts {
			p := filepath.Join(r.cfg.LocalDir, v+ext)
			if _, err := os.Stat(p); err == nil {
				return "/images/recipes/" + filepath.Base(p)
			}
		}
	}

	target := imageNamePattern.ReplaceAllString(lower, "")
	entries, err := os.ReadDir(r.cfg.LocalDir)
	if err != nil {
		return ""
	}
	for _, entry := range entries {
		name := entry.Name()
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		normalized := imageNamePattern.ReplaceAllString(strings.ToLower(stem), "")
		if normalized != "" && (strings.Contains(normalized, target) || strings.Contains(target, normalized)) {
			return "/images/recipes/" + name
		}
	}
	return ""
}

// unsplashSearchResponse is the subset of the Unsplash search payload we read.
type unsplashSearchResponse struct {
	Results []struct {
		URLs struct {
			Regular string `json:"regular"`
		} `json:"urls"`
	} `json:"results"`
}

// searchUnsplash queries the Unsplash photo search API. Errors are logged
// and swallowed; the caller falls through to the next strategy.
func (r *ImageResolver) searchUnsplash(ctx context.Context, recipeName, cuisine string) string {
	query := recipeName + " food dish recipe"
	if strings.EqualFold(cuisine, "indian") {
		query = recipeName + " indian food recipe"
	}

	reqURL := fmt.Sprintf(
		"%s/search/photos?query=%s&per_page=1&orientation=landscape&client_id=%s",
		r.apiBaseURL, url.QueryEscape(query), url.QueryEscape(r.cfg.UnsplashAccessKey),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return ""
	}
	resp, err := r.client.Do(req)
	if err != nil {
		logging.Ctx(ctx).Debug().Err(err).Str("recipe", recipeName).Msg("unsplash lookup failed")
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ""
	}

	var payload unsplashSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		logging.Ctx(ctx).Debug().Err(err).Msg("unsplash response decode failed")
		return ""
	}
	if len(payload.Results) == 0 {
		return ""
	}
	return payload.Results[0].URLs.Regular
}
