// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the term-overlap pipeline.
package types

// TermResult is the per-term output of an analysis run: the query string
// sent to PubMed, the phrases it was built from, and how many PMIDs came back.
type TermResult struct {
	// Term is the Boolean-joined, quoted query string.
	Term string `json:"term" yaml:"term"`

	// Components lists the phrases the term was built from, in combination order.
	Components []string `json:"components" yaml:"components"`

	// Count is the number of distinct PMIDs the query returned.
	Count int `json:"count" yaml:"count"`
}

// PairOverlap is one pairwise comparison between two term result sets.
type PairOverlap struct {
	// Term1 and Term2 are the compared query strings, in store order.
	Term1 string `json:"term1" yaml:"term1"`
	Term2 string `json:"term2" yaml:"term2"`

	// Shared is the number of PMIDs both terms returned.
	Shared int `json:"shared" yaml:"shared"`

	// Union is the number of distinct PMIDs across both terms.
	Union int `json:"union" yaml:"union"`

	// Jaccard is 100 * Shared / Union, or 0 when Union is 0.
	Jaccard float64 `json:"jaccard" yaml:"jaccard"`
}
