// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "slr-curator/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// RetryPolicy bounds extraction attempts against a single source. It
// replaces ad hoc retry-via-sleep with an explicit schedule: up to
// MaxAttempts tries, waiting BaseDelay doubled per attempt between tries,
// each attempt capped at Timeout.
type RetryPolicy struct {
	// MaxAttempts is the number of extraction attempts per source (default 5).
	MaxAttempts int `json:"max_attempts" yaml:"max_attempts"`

	// BaseDelay is the wait before the second attempt; it doubles each retry.
	BaseDelay time.Duration `json:"base_delay" yaml:"base_delay"`

	// Timeout caps a single extraction attempt.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// Attempts returns MaxAttempts, defaulting to 5 when unset.
func (p RetryPolicy) Attempts() int {
	if p.MaxAttempts <= 0 {
		return 5
	}
	return p.MaxAttempts
}

// CacheConfig holds settings for the on-disk page cache.
type CacheConfig struct {
	// Dir is the directory holding cached HTML and BibTeX pages.
	Dir string `json:"dir" yaml:"dir"`
}

// ExtractConfig holds settings for the extraction stage.
type ExtractConfig struct {
	HTTPConfig `yaml:",inline"`

	// RatePerSecond is the sustained request rate against one site (default 1).
	RatePerSecond float64 `json:"rate_per_second" yaml:"rate_per_second"`

	// Burst is the rate limiter burst size (default 1).
	Burst int `json:"burst" yaml:"burst"`

	// APIKeys maps lowercase source names (e.g. "scopus") to publisher API
	// keys, sent as request headers when present.
	APIKeys map[string]string `json:"api_keys,omitempty" yaml:"api_keys,omitempty"`
}

// ReconcileConfig holds settings for the reconciliation stage.
type ReconcileConfig struct {
	// FallbackOrder lists source names (e.g. "ACM", "IEEE") tried, in
	// order, when a row carries no source or link hint. First accepted
	// match wins.
	FallbackOrder []string `json:"fallback_order" yaml:"fallback_order"`

	// Retry bounds extraction attempts per source.
	Retry RetryPolicy `json:"retry" yaml:"retry"`
}

// CatalogConfig holds settings for the curated-record catalog.
type CatalogConfig struct {
	// Dir is the directory containing the catalog database (catalog.db).
	Dir string `json:"dir" yaml:"dir"`

	// MaxResults is the default maximum number of search results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// LoggingConfig controls the structured logger.
type LoggingConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `json:"level" yaml:"level"`

	// Format is the output format: json or console.
	Format string `json:"format" yaml:"format"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Cache     CacheConfig     `json:"cache" yaml:"cache"`
	Extract   ExtractConfig   `json:"extract" yaml:"extract"`
	Reconcile ReconcileConfig `json:"reconcile" yaml:"reconcile"`
	Catalog   CatalogConfig   `json:"catalog" yaml:"catalog"`
	Logging   LoggingConfig   `json:"logging" yaml:"logging"`
}
