// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package overlap accumulates per-term PMID sets and computes pairwise
// overlap statistics between them.
package overlap

import (
	"fmt"

	"github.com/d-genk/pubmeb-ventilation-terminology/internal/pubmed"
)

// Entry is the stored outcome of one query: the phrases the term was built
// from and the PMIDs it returned.
type Entry struct {
	Components []string
	PMIDs      pubmed.ResultSet
}

// Store maps each search term to its query outcome, preserving insertion
// order. Both reports iterate terms in this order, which equals generation
// order, so a run is deterministic end to end.
type Store struct {
	order   []string
	entries map[string]Entry
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{entries: make(map[string]Entry)}
}

// Add inserts the outcome for term. Inserting the same term twice is a
// precondition violation (distinct combinations cannot collide under the
// quoting scheme), so it is reported rather than silently overwritten.
func (s *Store) Add(term string, components []string, pmids pubmed.ResultSet) error {
	if _, exists := s.entries[term]; exists {
		return fmt.Errorf("duplicate term %q in result store", term)
	}
	s.order = append(s.order, term)
	s.entries[term] = Entry{Components: components, PMIDs: pmids}
	return nil
}

// Terms returns the stored terms in insertion order.
func (s *Store) Terms() []string {
	return s.order
}

// Get returns the entry for term.
func (s *Store) Get(term string) (Entry, bool) {
	e, ok := s.entries[term]
	return e, ok
}

// Len returns the number of stored terms.
func (s *Store) Len() int {
	return len(s.order)
}
