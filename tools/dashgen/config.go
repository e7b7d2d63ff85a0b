package main

import "errors"

// KnownMetrics is the set of metric names exported by the wizishop SDK and
// its mock API, plus recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// Client calls.
	"wizishop_api_requests_total":          true,
	"wizishop_api_request_duration_seconds": true,

	// Sessions.
	"wizishop_logins_total": true,

	// Rate limit.
	"wizishop_ratelimit_remaining":      true,
	"wizishop_throttle_cooldowns_total": true,

	// Rejected writes.
	"wizishop_failures_recorded_total": true,

	// Mock API.
	"wizishop_mock_http_requests_total":           true,
	"wizishop_mock_http_request_duration_seconds": true,
	"wizishop_mock_ratelimit_rejections_total":    true,

	// Recording rules.
	"wizishop:api_requests:rate5m":       true,
	"wizishop:api_errors:rate5m":         true,
	"wizishop:throttle_cooldowns:rate5m": true,
	"wizishop:failures_recorded:rate5m":  true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
