// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analyze sequences an analysis run: one esearch query per
// combination, in generation order, with a delay policy between calls.
package analyze

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/d-genk/pubmeb-ventilation-terminology/internal/combine"
	"github.com/d-genk/pubmeb-ventilation-terminology/internal/overlap"
	"github.com/d-genk/pubmeb-ventilation-terminology/internal/pubmed"
	"github.com/d-genk/pubmeb-ventilation-terminology/pkg/types"
)

// DelayPolicy pauses before the call at index i (the first call is index 0).
// Injectable so tests run with no sleeps.
type DelayPolicy func(i int)

// FixedDelay returns a policy that sleeps d before every call after the first.
func FixedDelay(d time.Duration) DelayPolicy {
	return func(i int) {
		if i > 0 && d > 0 {
			time.Sleep(d)
		}
	}
}

// RunSummary holds the outcome of an analysis run.
type RunSummary struct {
	Succeeded int
	Failed    int
}

// Total returns the number of terms queried.
func (s RunSummary) Total() int {
	return s.Succeeded + s.Failed
}

// Run queries PubMed for each combination in order and accumulates the
// results in a store. A failed query is reported on w and recorded as an
// empty set so the rest of the run proceeds; only a duplicate term (a
// generator precondition violation) aborts.
func Run(ctx context.Context, client *pubmed.Client, combos []combine.Combination, cfg types.PubMedConfig, delay DelayPolicy, w io.Writer) (*overlap.Store, RunSummary, error) {
	store := overlap.NewStore()
	var summary RunSummary

	for i, combo := range combos {
		delay(i)

		pmids, err := client.Fetch(ctx, combo.Term, cfg)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", combo.Term, err)
			pmids = pubmed.ResultSet{}
			summary.Failed++
		} else {
			fmt.Fprintf(w, "queried: %s -> %d results\n", combo.Term, len(pmids))
			summary.Succeeded++
		}

		if err := store.Add(combo.Term, combo.Phrases, pmids); err != nil {
			return nil, summary, err
		}
	}

	fmt.Fprintf(w, "\nRun summary: %d succeeded, %d failed (total: %d)\n",
		summary.Succeeded, summary.Failed, summary.Total())
	return store, summary, nil
}
