// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package combine

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"
)

// PhraseFile is the on-disk representation of a phrase list and its
// combination settings. The researcher keeps candidate terminology in a
// YAML file and reruns the analysis as the list evolves.
type PhraseFile struct {
	Phrases      []string `yaml:"phrases"`
	Operator     string   `yaml:"operator,omitempty"`
	MaxComboSize int      `yaml:"max_combo_size,omitempty"`
}

// ReadPhraseFile loads a phrase file from disk and drops blank entries.
// A file with no usable phrases is an error.
func ReadPhraseFile(path string) (*PhraseFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading phrase file: %w", err)
	}
	var pf PhraseFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parsing phrase file %s: %w", path, err)
	}

	kept := pf.Phrases[:0]
	for _, p := range pf.Phrases {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			kept = append(kept, trimmed)
		}
	}
	pf.Phrases = kept

	if len(pf.Phrases) == 0 {
		return nil, fmt.Errorf("phrase file %s contains no phrases", path)
	}
	return &pf, nil
}
