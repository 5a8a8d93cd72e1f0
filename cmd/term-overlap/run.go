// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/d-genk/pubmeb-ventilation-terminology/internal/analyze"
	"github.com/d-genk/pubmeb-ventilation-terminology/internal/combine"
	"github.com/d-genk/pubmeb-ventilation-terminology/internal/pubmed"
	"github.com/d-genk/pubmeb-ventilation-terminology/internal/report"
	"github.com/d-genk/pubmeb-ventilation-terminology/pkg/types"
)

const (
	defaultTimeout      = 30 * time.Second
	defaultDelay        = 340 * time.Millisecond
	defaultRetMax       = 1000
	defaultComboSize    = 2
	defaultOperator     = "AND"
	defaultTool         = "term_overlap_analyzer"
	defaultOutputPrefix = "pubmed_term_analysis"
	defaultUserAgent    = "term-overlap/0.1"
)

var runCmd = &cobra.Command{
	Use:   "run [phrases...]",
	Short: "Query PubMed for all phrase combinations and write overlap reports",
	Long: `Run generates Boolean combinations of the given phrases (from arguments
or a YAML phrase file), queries PubMed once per combination with a fixed
delay between calls, and writes two CSV files: per-term result counts and
pairwise overlap statistics. A query that fails is recorded as zero results
and the run continues.`,
	RunE: runAnalysis,
}

func init() {
	runCmd.Flags().String("phrases-file", "", "YAML file with phrases, operator, and max_combo_size")
	runCmd.Flags().String("operator", "", "Boolean operator joining phrases: AND or OR (default AND)")
	runCmd.Flags().Int("max-combo-size", 0, "largest combination of phrases to generate (default 2)")
	runCmd.Flags().Duration("delay", 0, "delay between consecutive esearch calls (default 340ms)")
	runCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
	runCmd.Flags().Int("retmax", 0, "maximum PMIDs requested per query (default 1000)")
	runCmd.Flags().String("tool", "", "tool name reported to NCBI")
	runCmd.Flags().String("email", "", "contact email reported to NCBI")
	runCmd.Flags().String("api-key", "", "NCBI API key for a higher request rate")
	runCmd.Flags().String("output-prefix", "", "base name for output CSV files (default pubmed_term_analysis)")
	runCmd.Flags().Bool("json", false, "print results as JSON instead of tables")
	runCmd.Flags().Bool("skip-csv", false, "print results without writing CSV files")

	rootCmd.AddCommand(runCmd)
}

func runAnalysis(cmd *cobra.Command, args []string) error {
	phrases, analysisCfg, err := gatherAnalysisConfig(cmd, args)
	if err != nil {
		return err
	}

	// Invalid operator or an empty phrase list aborts before any network call.
	combos, err := combine.Generate(phrases, analysisCfg.MaxComboSize, analysisCfg.Operator)
	if err != nil {
		return err
	}

	pubmedCfg := gatherPubMedConfig(cmd)
	if pubmedCfg.Email == "" {
		fmt.Fprintln(os.Stderr, "warning: no contact email configured; NCBI asks for one with every request")
	}

	client := &pubmed.Client{
		HTTP: &http.Client{Timeout: pubmedCfg.Timeout},
	}

	fmt.Fprintf(os.Stdout, "Running %d PubMed searches...\n", len(combos))
	store, _, err := analyze.Run(context.Background(), client, combos, pubmedCfg,
		analyze.FixedDelay(analysisCfg.CallDelay), os.Stdout)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		if err := report.FormatJSON(store, os.Stdout); err != nil {
			return err
		}
	} else {
		fmt.Fprintln(os.Stdout)
		report.FormatCountsTable(store, os.Stdout)
		fmt.Fprintln(os.Stdout)
		report.FormatOverlapTable(store, os.Stdout)
	}

	skipCSV, _ := cmd.Flags().GetBool("skip-csv")
	if skipCSV {
		return nil
	}

	countsPath := analysisCfg.OutputPrefix + "_counts.csv"
	overlapPath := analysisCfg.OutputPrefix + "_overlap.csv"
	if err := report.WriteCounts(store, countsPath); err != nil {
		return err
	}
	if err := report.WriteOverlap(store, overlapPath); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "\nWrote %s and %s\n", countsPath, overlapPath)
	return nil
}

// gatherAnalysisConfig merges phrases and combination settings from
// arguments, the optional phrase file, flags, and the viper config, in
// that precedence order.
func gatherAnalysisConfig(cmd *cobra.Command, args []string) ([]string, types.AnalysisConfig, error) {
	cfg := types.AnalysisConfig{
		Operator:     defaultOperator,
		MaxComboSize: defaultComboSize,
		CallDelay:    defaultDelay,
		OutputPrefix: defaultOutputPrefix,
	}

	phrases := args
	phrasesFile, _ := cmd.Flags().GetString("phrases-file")
	if phrasesFile != "" {
		pf, err := combine.ReadPhraseFile(phrasesFile)
		if err != nil {
			return nil, cfg, err
		}
		if len(phrases) == 0 {
			phrases = pf.Phrases
		}
		if pf.Operator != "" {
			cfg.Operator = pf.Operator
		}
		if pf.MaxComboSize > 0 {
			cfg.MaxComboSize = pf.MaxComboSize
		}
	}
	if len(phrases) == 0 {
		return nil, cfg, fmt.Errorf("provide phrases as arguments or via --phrases-file")
	}

	if op, _ := cmd.Flags().GetString("operator"); op != "" {
		cfg.Operator = op
	}
	if size, _ := cmd.Flags().GetInt("max-combo-size"); size > 0 {
		cfg.MaxComboSize = size
	}
	if delay, _ := cmd.Flags().GetDuration("delay"); delay > 0 {
		cfg.CallDelay = delay
	}
	if prefix, _ := cmd.Flags().GetString("output-prefix"); prefix != "" {
		cfg.OutputPrefix = prefix
	}

	return phrases, cfg, nil
}

// gatherPubMedConfig merges client settings from flags, secrets, and the
// viper config.
func gatherPubMedConfig(cmd *cobra.Command) types.PubMedConfig {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}
	retmax, _ := cmd.Flags().GetInt("retmax")
	if retmax == 0 {
		retmax = defaultRetMax
	}

	tool, _ := cmd.Flags().GetString("tool")
	email, _ := cmd.Flags().GetString("email")
	apiKey, _ := cmd.Flags().GetString("api-key")

	tool = secretDefault("ncbi-tool", tool)
	if tool == "" {
		tool = defaultTool
	}

	return types.PubMedConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		RetMax: retmax,
		Tool:   tool,
		Email:  secretDefault("ncbi-email", email),
		APIKey: secretDefault("ncbi-api-key", apiKey),
	}
}
