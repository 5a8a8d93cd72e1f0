// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the term-overlap CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/d-genk/pubmeb-ventilation-terminology/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds NCBI credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback if set, then the secret value for key,
// then the viper config value for key.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return viper.GetString(key)
}

// rootCmd is the base command for the term-overlap CLI.
var rootCmd = &cobra.Command{
	Use:   "term-overlap",
	Short: "Evaluate PubMed search phrase redundancy and coverage",
	Long: `term-overlap queries PubMed for a list of candidate search phrases and
their Boolean combinations, then reports per-term result counts and pairwise
overlap (shared PMIDs, union, Jaccard %) so redundant phrases and coverage
gaps stand out.

Use "combos" to preview the generated combinations offline and "run" to query
PubMed and write the counts and overlap CSV files.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./term-overlap.yaml or ~/.config/term-overlap/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("term-overlap")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "term-overlap"))
		}
	}

	viper.SetEnvPrefix("TERM_OVERLAP")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
