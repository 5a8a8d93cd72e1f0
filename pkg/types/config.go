package types

import "time"

// HTTPConfig holds shared HTTP settings for components that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "term-overlap/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// PubMedConfig holds settings for the PubMed esearch client.
type PubMedConfig struct {
	HTTPConfig `yaml:",inline"`

	// RetMax is the maximum number of PMIDs requested per query (default 1000).
	RetMax int `json:"retmax" yaml:"retmax"`

	// Tool identifies the calling tool to NCBI, per their usage policy.
	Tool string `json:"tool" yaml:"tool"`

	// Email is the contact address NCBI requires with every request.
	Email string `json:"email" yaml:"email"`

	// APIKey is an optional NCBI API key for a higher request rate.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

// AnalysisConfig holds settings for a term-overlap analysis run.
type AnalysisConfig struct {
	// MaxComboSize is the largest combination of phrases to generate (default 2).
	MaxComboSize int `json:"max_combo_size" yaml:"max_combo_size"`

	// Operator joins phrases within a combination: "AND" or "OR".
	Operator string `json:"operator" yaml:"operator"`

	// CallDelay is the pause between consecutive esearch calls (default 340ms).
	CallDelay time.Duration `json:"call_delay" yaml:"call_delay"`

	// OutputPrefix is the base name for the counts and overlap CSV files.
	OutputPrefix string `json:"output_prefix" yaml:"output_prefix"`
}
