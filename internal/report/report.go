// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders analysis results as CSV files and console output.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/d-genk/pubmeb-ventilation-terminology/internal/overlap"
)

// WriteCounts writes one CSV row per term in store order: the term, its
// component phrases joined by "; ", and the result count.
func WriteCounts(store *overlap.Store, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating counts file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Search Term", "Component Phrases", "Result Count"}); err != nil {
		return fmt.Errorf("writing counts header: %w", err)
	}
	for _, r := range store.Results() {
		row := []string{r.Term, strings.Join(r.Components, "; "), strconv.Itoa(r.Count)}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing counts row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing counts file: %w", err)
	}
	return f.Close()
}

// WriteOverlap writes one CSV row per unordered term pair in store order.
// The Jaccard percentage is fixed to one decimal with no trailing % sign.
// Fewer than two stored terms produce a header-only file.
func WriteOverlap(store *overlap.Store, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating overlap file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Term 1", "Term 2", "Shared Count", "Union Count", "Jaccard %"}); err != nil {
		return fmt.Errorf("writing overlap header: %w", err)
	}
	for _, p := range store.Pairs() {
		row := []string{
			p.Term1,
			p.Term2,
			strconv.Itoa(p.Shared),
			strconv.Itoa(p.Union),
			fmt.Sprintf("%.1f", p.Jaccard),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing overlap row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing overlap file: %w", err)
	}
	return f.Close()
}

// FormatCountsTable writes per-term counts as a human-readable table to w.
func FormatCountsTable(store *overlap.Store, w io.Writer) {
	results := store.Results()
	if len(results) == 0 {
		fmt.Fprintln(w, "No terms queried.")
		return
	}

	fmt.Fprintf(w, "%-60s  %-8s  %s\n", "Search Term", "Results", "Components")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	for _, r := range results {
		term := r.Term
		if len(term) > 60 {
			term = term[:57] + "..."
		}
		fmt.Fprintf(w, "%-60s  %-8d  %s\n", term, r.Count, strings.Join(r.Components, "; "))
	}
	fmt.Fprintf(w, "\n%d terms\n", len(results))
}

// FormatOverlapTable writes pairwise overlaps as a human-readable table to w.
func FormatOverlapTable(store *overlap.Store, w io.Writer) {
	pairs := store.Pairs()
	if len(pairs) == 0 {
		fmt.Fprintln(w, "No term pairs to compare.")
		return
	}

	fmt.Fprintf(w, "%-40s  %-40s  %-7s  %-7s  %s\n", "Term 1", "Term 2", "Shared", "Union", "Jaccard %")
	fmt.Fprintln(w, strings.Repeat("-", 110))
	for _, p := range pairs {
		fmt.Fprintf(w, "%-40s  %-40s  %-7d  %-7d  %.1f\n",
			truncate(p.Term1, 40), truncate(p.Term2, 40), p.Shared, p.Union, p.Jaccard)
	}
	fmt.Fprintf(w, "\n%d pairs\n", len(pairs))
}

// FormatJSON writes the per-term results and pairwise overlaps as indented JSON.
func FormatJSON(store *overlap.Store, w io.Writer) error {
	out := struct {
		Terms    any `json:"terms"`
		Overlaps any `json:"overlaps"`
	}{
		Terms:    store.Results(),
		Overlaps: store.Pairs(),
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
