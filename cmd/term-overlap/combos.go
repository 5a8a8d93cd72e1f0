// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/d-genk/pubmeb-ventilation-terminology/internal/combine"
)

var combosCmd = &cobra.Command{
	Use:   "combos [phrases...]",
	Short: "Preview the generated search term combinations without querying",
	Long: `Combos prints every Boolean combination the run command would query,
in query order, without touching the network. Useful for checking the
query count before committing to a rate-limited run.`,
	RunE: runCombos,
}

func init() {
	combosCmd.Flags().String("phrases-file", "", "YAML file with phrases, operator, and max_combo_size")
	combosCmd.Flags().String("operator", "", "Boolean operator joining phrases: AND or OR (default AND)")
	combosCmd.Flags().Int("max-combo-size", 0, "largest combination of phrases to generate (default 2)")
	combosCmd.Flags().Bool("json", false, "output combinations as JSON")

	rootCmd.AddCommand(combosCmd)
}

func runCombos(cmd *cobra.Command, args []string) error {
	phrases, cfg, err := gatherAnalysisConfig(cmd, args)
	if err != nil {
		return err
	}

	combos, err := combine.Generate(phrases, cfg.MaxComboSize, cfg.Operator)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if jsonOutput {
		type comboOut struct {
			Term    string   `json:"term"`
			Phrases []string `json:"phrases"`
		}
		out := make([]comboOut, len(combos))
		for i, c := range combos {
			out[i] = comboOut{Term: c.Term, Phrases: c.Phrases}
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	for i, c := range combos {
		fmt.Fprintf(os.Stdout, "%-4d  %s\n", i+1, c.Term)
	}
	fmt.Fprintf(os.Stdout, "\n%d combinations from %d phrases (%s, sizes 1-%d)\n",
		len(combos), len(phrases), strings.ToUpper(cfg.Operator), cfg.MaxComboSize)
	return nil
}
