// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "biblioviz/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ScopusConfig holds settings for the Scopus Search API client.
type ScopusConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIKey is the Elsevier API key sent as X-ELS-APIKey.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// BaseURL overrides the Scopus Search endpoint; empty means the
	// production endpoint. Tests point this at an httptest server.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// View selects the Scopus response view (default STANDARD).
	View string `json:"view" yaml:"view"`

	// RequestsPerSecond paces outbound requests. The client performs no
	// retries: pacing is the only rate-limit mitigation, and an HTTP 429
	// is terminal for the invocation.
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`
}

// AnalysisConfig holds settings for the extraction and aggregation stages.
type AnalysisConfig struct {
	// MaxResults is the default number of results fetched per search (default 25).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// TopEntries limits bar-chart tables to the N most frequent entries (default 25).
	TopEntries int `json:"top_entries" yaml:"top_entries"`

	// DefaultWindow is the rolling window size in months used when the
	// caller does not choose one (default 6).
	DefaultWindow int `json:"default_window" yaml:"default_window"`
}

// ServerConfig holds settings for the dashboard HTTP server.
type ServerConfig struct {
	// Address is the listen address (default "127.0.0.1:8487").
	Address string `json:"address" yaml:"address"`

	ReadTimeout     time.Duration `json:"read_timeout" yaml:"read_timeout"`
	WriteTimeout    time.Duration `json:"write_timeout" yaml:"write_timeout"`
	IdleTimeout     time.Duration `json:"idle_timeout" yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// AppConfig groups all stage configurations.
type AppConfig struct {
	Scopus   ScopusConfig   `json:"scopus" yaml:"scopus"`
	Analysis AnalysisConfig `json:"analysis" yaml:"analysis"`
	Server   ServerConfig   `json:"server" yaml:"server"`
}
