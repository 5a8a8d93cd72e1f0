// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package overlap

import (
	"github.com/d-genk/pubmeb-ventilation-terminology/internal/pubmed"
	"github.com/d-genk/pubmeb-ventilation-terminology/pkg/types"
)

// Stats computes the overlap between two PMID sets: shared and union
// cardinalities plus the Jaccard percentage. An empty union yields 0, not
// a division error. The result is symmetric in its arguments.
func Stats(a, b pubmed.ResultSet) (shared, union int, jaccard float64) {
	small, large := a, b
	if len(large) < len(small) {
		small, large = large, small
	}
	for id := range small {
		if _, ok := large[id]; ok {
			shared++
		}
	}
	union = len(a) + len(b) - shared
	if union > 0 {
		jaccard = 100 * float64(shared) / float64(union)
	}
	return shared, union, jaccard
}

// Pairs computes overlap statistics for every unordered pair of stored
// terms, iterating the term list in store order and taking (i, j) with
// i < j. Zero or one stored term yields no pairs.
func (s *Store) Pairs() []types.PairOverlap {
	terms := s.Terms()
	var pairs []types.PairOverlap
	for i := 0; i < len(terms); i++ {
		for j := i + 1; j < len(terms); j++ {
			shared, union, jaccard := Stats(s.entries[terms[i]].PMIDs, s.entries[terms[j]].PMIDs)
			pairs = append(pairs, types.PairOverlap{
				Term1:   terms[i],
				Term2:   terms[j],
				Shared:  shared,
				Union:   union,
				Jaccard: jaccard,
			})
		}
	}
	return pairs
}

// Results returns the per-term counts in store order.
func (s *Store) Results() []types.TermResult {
	results := make([]types.TermResult, 0, len(s.order))
	for _, term := range s.order {
		e := s.entries[term]
		results = append(results, types.TermResult{
			Term:       term,
			Components: e.Components,
			Count:      len(e.PMIDs),
		})
	}
	return results
}
