// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package combine generates Boolean search term combinations from a phrase list.
package combine

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidOperator is returned when the Boolean operator is not AND or OR.
var ErrInvalidOperator = errors.New(`operator must be "AND" or "OR"`)

// Combination is an ordered subset of the configured phrases together with
// the query string derived from it. Term is the lookup key everywhere
// downstream, so two distinct combinations never share a Term (each phrase
// is individually quoted before joining).
type Combination struct {
	// Term is the Boolean-joined, quoted query string, e.g. `"a" AND "b"`.
	Term string

	// Phrases are the component phrases in source-list order.
	Phrases []string
}

// NormalizeOperator upper-cases op and validates it against AND/OR.
func NormalizeOperator(op string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(op))
	if normalized != "AND" && normalized != "OR" {
		return "", fmt.Errorf("%w, got %q", ErrInvalidOperator, op)
	}
	return normalized, nil
}

// Generate produces all combinations of 1..maxSize phrases, joined with the
// given operator. For each size r the combinations follow the lexicographic
// order of index positions in the input list, sizes ascending; this order is
// load-bearing: it fixes the row order of both reports and the pairwise
// iteration. Duplicate input phrases produce duplicate combinations; a
// maxSize larger than len(phrases) simply yields no combinations of the
// missing sizes.
func Generate(phrases []string, maxSize int, operator string) ([]Combination, error) {
	op, err := NormalizeOperator(operator)
	if err != nil {
		return nil, err
	}

	var combos []Combination
	for r := 1; r <= maxSize && r <= len(phrases); r++ {
		indexCombinations(len(phrases), r, func(idx []int) {
			subset := make([]string, r)
			for i, j := range idx {
				subset[i] = phrases[j]
			}
			combos = append(combos, Combination{
				Term:    BuildTerm(subset, op),
				Phrases: subset,
			})
		})
	}
	return combos, nil
}

// BuildTerm quotes each phrase and joins them with the operator padded by
// single spaces. The operator must already be normalized.
func BuildTerm(phrases []string, operator string) string {
	quoted := make([]string, len(phrases))
	for i, p := range phrases {
		quoted[i] = `"` + p + `"`
	}
	return strings.Join(quoted, " "+operator+" ")
}

// ParseTerm recovers the component phrases from a term built by BuildTerm.
// It is the inverse for phrases that contain no double quotes.
func ParseTerm(term, operator string) ([]string, error) {
	op, err := NormalizeOperator(operator)
	if err != nil {
		return nil, err
	}
	var phrases []string
	for _, part := range strings.Split(term, " "+op+" ") {
		if len(part) < 2 || part[0] != '"' || part[len(part)-1] != '"' {
			return nil, fmt.Errorf("malformed term component %q in %q", part, term)
		}
		phrases = append(phrases, part[1:len(part)-1])
	}
	return phrases, nil
}

// indexCombinations visits every size-r combination of indices 0..n-1 in
// lexicographic order, reusing one index buffer across calls.
func indexCombinations(n, r int, visit func(idx []int)) {
	if r > n {
		return
	}
	idx := make([]int, r)
	for i := range idx {
		idx[i] = i
	}
	for {
		visit(idx)

		// Advance to the next combination: find the rightmost index that
		// can still move, bump it, and reset everything after it.
		i := r - 1
		for i >= 0 && idx[i] == i+n-r {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < r; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}
