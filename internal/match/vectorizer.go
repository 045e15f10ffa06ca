// PantryChef - Ingredient-Driven Recipe Discovery
// Copyright 2026 PantryChef contributors
// SPDX-License-Identifier: MIT
// https://github.com/pantrychef/pantrychef

// Package match scores recipes against a pantry using TF-IDF vectors over
// normalized ingredient text plus direct ingredient coverage checks.
package match

import (
	"math"
	"strings"
)

// Vectorizer converts ingredient documents into TF-IDF weighted vectors.
// Fit builds the vocabulary and inverse document frequencies from a corpus;
// Transform projects any document into that space. A Vectorizer is immutable
// after Fit and safe for concurrent Transform calls.
type Vectorizer struct {
	// vocabulary maps a term to its vector dimension.
	vocabulary map[string]int
	// idf holds the inverse document frequency per dimension.
	idf []float64
	// docCount is the corpus size used for fitting.
	docCount int
}

// NewVectorizer creates an unfitted vectorizer.
func NewVectorizer() *Vectorizer {
	return &Vectorizer{vocabulary: make(map[string]int)}
}

// Tokenize splits normalized ingredient phrases into word terms.
func Tokenize(phrases []string) []string {
	var terms []string
	for _, p := range phrases {
		for _, w := range strings.Fields(p) {
			terms = append(terms, w)
		}
	}
	return terms
}

// Fit learns the vocabulary and IDF weights from a corpus of documents,
// each given as a slice of terms. idf(t) = ln(N / (df(t) + 1)), which
// dampens terms present in nearly every document.
func (v *Vectorizer) Fit(docs [][]string) {
	v.vocabulary = make(map[string]int)
	v.docCount = len(docs)

	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool, len(doc))
		for _, term := range doc {
			if !seen[term] {
				seen[term] = true
				df[term]++
			}
		}
	}

	v.idf = make([]float64, 0, len(df))
	for _, doc := range docs {
		for _, term := range doc {
			if _, ok := v.vocabulary[term]; !ok {
				v.vocabulary[term] = len(v.idf)
				v.idf = append(v.idf, math.Log(float64(v.docCount)/float64(df[term]+1)))
			}
		}
	}
}

// VocabularySize returns the number of learned dimensions.
func (v *Vectorizer) VocabularySize() int {
	return len(v.vocabulary)
}

// Transform projects a document into the fitted TF-IDF space. Terms outside
// the vocabulary are ignored. The returned sparse vector is L2-normalized
// so dot products are cosine similarities.
func (v *Vectorizer) Transform(doc []string) map[int]float64 {
	vec := make(map[int]float64)
	if len(doc) == 0 {
		return vec
	}

	counts := make(map[int]int)
	known := 0
	for _, term := range doc {
		if dim, ok := v.vocabulary[term]; ok {
			counts[dim]++
			known++
		}
	}
	if known == 0 {
		return vec
	}

	var norm float64
	for dim, c := range counts {
		w := (float64(c) / float64(len(doc))) * v.idf[dim]
		vec[dim] = w
		norm += w * w
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for dim := range vec {
			vec[dim] /= norm
		}
	}
	return vec
}

// Cosine returns the cosine similarity of two L2-normalized sparse vectors.
func Cosine(a, b map[int]float64) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot float64
	for dim, w := range a {
		if bw, ok := b[dim]; ok {
			dot += w * bw
		}
	}
	return dot
}
