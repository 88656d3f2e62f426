package main

import "errors"

const generatedHeader = "# Code generated by dashgen. DO NOT EDIT.\n"

// KnownMetrics is the set of metric names exported by the MWS client plus
// the recording rules referenced in the dashboard and alerts.
var KnownMetrics = map[string]bool{
	// Request metrics.
	"mws_requests_total":           true,
	"mws_request_duration_seconds": true,

	// Throttling and quota metrics.
	"mws_throttled_total":           true,
	"mws_quota_remaining":           true,
	"mws_quota_limit_hits_total":    true,
	"mws_rate_limiter_hourly_usage": true,

	// Status monitor metrics.
	"mws_service_status":                      true,
	"mws_service_status_errors_total":         true,
	"mws_service_status_last_check_timestamp": true,

	// Recording rules.
	"mws:requests:rate5m":  true,
	"mws:errors:rate5m":    true,
	"mws:throttled:rate5m": true,
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
