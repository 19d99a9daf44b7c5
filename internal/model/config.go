package model

import "time"

// Config holds all engine and service settings
type Config struct {
	Vocabulary VocabularyConfig `json:"vocabulary" yaml:"vocabulary"`
	Matching   MatchingConfig   `json:"matching" yaml:"matching"`
	Scoring    ScoringConfig    `json:"scoring" yaml:"scoring"`
	Limits     LimitsConfig     `json:"limits" yaml:"limits"`
	Cache      CacheConfig      `json:"cache" yaml:"cache"`
	Output     OutputConfig     `json:"output" yaml:"output"`
}

// VocabularyConfig controls where domain terms come from
type VocabularyConfig struct {
	Path string `json:"path,omitempty" yaml:"path,omitempty"` // YAML file; empty = built-in tables
}

// MatchingConfig bounds fuzzy alias matching and entity resolution
type MatchingConfig struct {
	MaxEditRatio float64 `json:"max_edit_ratio" yaml:"max_edit_ratio"` // Normalized Levenshtein acceptance bound
	MaxNGram     int     `json:"max_ngram" yaml:"max_ngram"`           // Longest alias span in tokens
}

// ScoringConfig controls confidence scoring and candidate selection
type ScoringConfig struct {
	AcceptThreshold  float64 `json:"accept_threshold" yaml:"accept_threshold"`   // Minimum confidence to auto-accept
	TieWindow        float64 `json:"tie_window" yaml:"tie_window"`               // Confidence gap treated as a tie
	AmbiguityPenalty float64 `json:"ambiguity_penalty" yaml:"ambiguity_penalty"` // Per competing candidate
	AmbiguityCap     float64 `json:"ambiguity_cap" yaml:"ambiguity_cap"`
	MaxCandidates    int     `json:"max_candidates" yaml:"max_candidates"` // Clarification list length
	MaxInterpretations int   `json:"max_interpretations" yaml:"max_interpretations"`

	// Fallback TopN ranking field when no statistic appears in the query.
	// Empty disables the fallback and such queries become unsatisfiable.
	DefaultRankingField string `json:"default_ranking_field" yaml:"default_ranking_field"`
}

// LimitsConfig bounds input size
type LimitsConfig struct {
	MaxQueryChars int `json:"max_query_chars" yaml:"max_query_chars"`
}

// CacheConfig controls the service-level response memoizer
type CacheConfig struct {
	Enabled bool          `json:"enabled" yaml:"enabled"`
	TTL     time.Duration `json:"ttl" yaml:"ttl"`
}

// OutputConfig controls rendering
type OutputConfig struct {
	Verbose bool   `json:"verbose" yaml:"verbose"`
	Format  string `json:"format" yaml:"format"` // "yaml" or "json"
}

// DefaultConfig returns the standard configuration
func DefaultConfig() *Config {
	return &Config{
		Matching: MatchingConfig{
			MaxEditRatio: 0.25,
			MaxNGram:     4,
		},
		Scoring: ScoringConfig{
			AcceptThreshold:     0.55,
			TieWindow:           0.05,
			AmbiguityPenalty:    0.1,
			AmbiguityCap:        0.4,
			MaxCandidates:       3,
			MaxInterpretations:  8,
			DefaultRankingField: "disposals",
		},
		Limits: LimitsConfig{
			MaxQueryChars: 10000,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     10 * time.Minute,
		},
		Output: OutputConfig{
			Format: "yaml",
		},
	}
}
