// PantryChef - Ingredient-Driven Recipe Discovery
// Copyright 2026 PantryChef contributors
// SPDX-License-Identifier: MIT
// https://github.com/pantrychef/pantrychef

// Package enrich decorates recipes with presentation data the catalog does
// not carry: geographic origin, image URLs, and generation prompts.
package enrich

import "strings"

// indianRegions maps cuisine keywords to Indian regions.
var indianRegions = map[string]string{
	"north indian":  "North India",
	"punjabi":       "Punjab",
	"delhi":         "Delhi",
	"rajasthani":    "Rajasthan",
	"kashmiri":      "Kashmir",
	"south indian":  "South India",
	"tamil":         "Tamil Nadu",
	"kerala":        "Kerala",
	"andhra":        "Andhra Pradesh",
	"karnataka":     "Karnataka",
	"bengali":       "West Bengal",
	"kolkata":       "West Bengal",
	"maharashtrian": "Maharashtra",
	"mumbai":        "Maharashtra",
	"gujarati":      "Gujarat",
	"goan":          "Goa",
	"hyderabadi":    "Telangana",
	"bihari":        "Bihar",
	"awadhi":        "Uttar Pradesh",
	"lucknow":       "Uttar Pradesh",
}

// internationalRegions maps cuisine keywords to countries.
var internationalRegions = map[string]string{
	"italian":    "Italy",
	"chinese":    "China",
	"thai":       "Thailand",
	"mexican":    "Mexico",
	"japanese":   "Japan",
	"french":     "France",
	"greek":      "Greece",
	"spanish":    "Spain",
	"american":   "USA",
	"korean":     "South Korea",
	"vietnamese": "Vietnam",
	"lebanese":   "Lebanon",
	"turkish":    "Turkey",
	"moroccan":   "Morocco",
	"brazilian":  "Brazil",
}

// dishRegions maps dish-name keywords to regions, consulted when the
// cuisine field is too coarse to place the dish.
var dishRegions = []struct {
	keyword string
	region  string
}{
	{"dosa", "South India"},
	{"idli", "South India"},
	{"uttapam", "South India"},
	{"sambar", "South India"},
	{"paneer", "North India"},
	{"chole", "Punjab"},
	{"bhature", "Punjab"},
	{"tikka", "Punjab"},
	{"tandoori", "Punjab"},
	{"rogan josh", "Kashmir"},
	{"dhokla", "Gujarat"},
	{"thepla", "Gujarat"},
	{"vada pav", "Maharashtra"},
	{"pav bhaji", "Maharashtra"},
	{"misal pav", "Maharashtra"},
	{"rasgulla", "West Bengal"},
	{"sandesh", "West Bengal"},
	{"litti chokha", "Bihar"},
}

// Region derives a geographic origin from a dish's cuisine and name.
// Returns "" when nothing can be placed.
func Region(cuisine, name string) string {
	c := strings.ToLower(cuisine)
	title := strings.ToLower(name)

	for keyword, region := range indianRegions {
		if strings.Contains(c, keyword) {
			return region
		}
	}
	for keyword, country := range internationalRegions {
		if strings.Contains(c, keyword) {
			return country
		}
	}

	// Biryani is the one dish whose region depends on its cuisine prefix.
	if strings.Contains(title, "biryani") {
		if strings.Contains(title, "hyderabadi") {
			return "Hyderabad (Telangana)"
		}
		return "India"
	}
	for _, d := range dishRegions {
		if strings.Contains(title, d.keyword) {
			return d.region
		}
	}

	if strings.Contains(c, "indian") {
		return "India"
	}
	return ""
}
