package main

import "errors"

// KnownMetrics is the set of metric names exported by marketctl and
// marketweb plus recording rule names referenced in alert rules.
var KnownMetrics = map[string]bool{
	// Upstream API client metrics.
	"market_api_request_duration_seconds": true,
	"market_api_requests_total":           true,
	"market_token_refresh_total":          true,

	// Frontend HTTP metrics.
	"market_web_request_duration_seconds": true,
	"market_web_requests_total":           true,

	// Cart controller metrics.
	"market_cart_rollbacks_total": true,

	// Recording rules.
	"market:web_requests:rate5m":           true,
	"market:web_errors:rate5m":             true,
	"market:api_requests:rate5m":           true,
	"market:api_errors:rate5m":             true,
	"market:token_refresh_failures:rate5m": true,
	"market:cart_rollbacks:rate5m":         true,

	// Standard Prometheus metrics referenced in alerts.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into
// ../../deploy (relative to tools/dashgen/).
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
