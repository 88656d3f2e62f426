// Package config handles loading and validating the client configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/amazon-mws/pkg/mws"
)

// Config is the top-level configuration of the mws command.
type Config struct {
	Credentials CredentialsConfig `yaml:"credentials"`
	Region      string            `yaml:"region"`
	Endpoint    string            `yaml:"endpoint"` // overrides the region endpoint
	HTTP        HTTPConfig        `yaml:"http"`
	RateLimit   RateLimitConfig   `yaml:"rate_limit"`
	Pagination  PaginationConfig  `yaml:"pagination"`
	Monitor     MonitorConfig     `yaml:"monitor"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// CredentialsConfig holds the MWS developer and seller credentials. Values
// are usually injected with ${ENV} references rather than written inline.
type CredentialsConfig struct {
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	AccountID string `yaml:"account_id"` // seller or merchant id
	AuthToken string `yaml:"auth_token"`
}

// Credentials converts c to client credentials.
func (c CredentialsConfig) Credentials() mws.Credentials {
	return mws.Credentials{
		AccessKey: c.AccessKey,
		SecretKey: c.SecretKey,
		AccountID: c.AccountID,
		AuthToken: c.AuthToken,
	}
}

// HTTPConfig defines HTTP transport settings.
type HTTPConfig struct {
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
}

// RateLimitConfig defines client-side throttling. PerSecond is the restore
// rate, Burst the maximum request quota and HourlyQuota the hourly cap
// (0 disables it).
type RateLimitConfig struct {
	Enabled     bool    `yaml:"enabled"`
	PerSecond   float64 `yaml:"per_second"`
	Burst       int     `yaml:"burst"`
	HourlyQuota int64   `yaml:"hourly_quota"`
}

// PaginationConfig bounds ByNextToken chains.
type PaginationConfig struct {
	MaxPages int `yaml:"max_pages"`
}

// MonitorConfig defines the service status watcher. Sections lists the
// sections to poll; empty means all of them.
type MonitorConfig struct {
	Interval    time.Duration `yaml:"interval"`
	MetricsAddr string        `yaml:"metrics_addr"`
	Sections    []string      `yaml:"sections"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Default returns a Config with every default applied and no credentials.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation. Credentials are not required here; call
// ValidateCredentials before sending requests.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Region == "" {
		cfg.Region = "US"
	}
	applyHTTPDefaults(&cfg.HTTP)
	applyRateLimitDefaults(&cfg.RateLimit)
	applyPaginationDefaults(&cfg.Pagination)
	applyMonitorDefaults(&cfg.Monitor)
	applyLoggingDefaults(&cfg.Logging)
}

func applyHTTPDefaults(h *HTTPConfig) {
	if h.Timeout == 0 {
		h.Timeout = 5 * time.Minute
	}
}

func applyRateLimitDefaults(r *RateLimitConfig) {
	if r.PerSecond == 0 {
		r.PerSecond = 1.0
	}
	if r.Burst == 0 {
		r.Burst = 10
	}
}

func applyPaginationDefaults(p *PaginationConfig) {
	if p.MaxPages == 0 {
		p.MaxPages = 20
	}
}

func applyMonitorDefaults(m *MonitorConfig) {
	if m.Interval == 0 {
		m.Interval = 5 * time.Minute
	}
	if m.MetricsAddr == "" {
		m.MetricsAddr = ":9090"
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

// Validate checks every setting except the credentials.
func (c *Config) Validate() error {
	var errs []error

	if _, err := mws.LookupRegion(c.Region); err != nil {
		errs = append(errs, fmt.Errorf("region: %w", err))
	}
	if c.HTTP.Timeout < 0 {
		errs = append(errs, fmt.Errorf("http.timeout must not be negative (got %s)", c.HTTP.Timeout))
	}
	if c.RateLimit.PerSecond < 0 {
		errs = append(errs, fmt.Errorf("rate_limit.per_second must be positive (got %g)", c.RateLimit.PerSecond))
	}
	if c.RateLimit.Burst < 0 {
		errs = append(errs, fmt.Errorf("rate_limit.burst must be positive (got %d)", c.RateLimit.Burst))
	}
	if c.RateLimit.HourlyQuota < 0 {
		errs = append(
			errs,
			fmt.Errorf("rate_limit.hourly_quota must not be negative (got %d)", c.RateLimit.HourlyQuota),
		)
	}
	if c.Pagination.MaxPages < 0 {
		errs = append(errs, fmt.Errorf("pagination.max_pages must be positive (got %d)", c.Pagination.MaxPages))
	}
	if c.Monitor.Interval < time.Second {
		errs = append(errs, fmt.Errorf("monitor.interval must be at least 1s (got %s)", c.Monitor.Interval))
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(
			errs,
			fmt.Errorf("logging.level must be one of: debug, info, warn, error (got %q)", c.Logging.Level),
		)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		errs = append(
			errs,
			fmt.Errorf("logging.format must be one of: text, json (got %q)", c.Logging.Format),
		)
	}

	return errors.Join(errs...)
}

// ValidateCredentials checks that the credentials needed to sign requests
// are present.
func (c *Config) ValidateCredentials() error {
	var errs []error

	if c.Credentials.AccessKey == "" {
		errs = append(errs, errors.New("credentials.access_key is required"))
	}
	if c.Credentials.SecretKey == "" {
		errs = append(errs, errors.New("credentials.secret_key is required"))
	}
	if c.Credentials.AccountID == "" {
		errs = append(errs, errors.New("credentials.account_id is required"))
	}

	return errors.Join(errs...)
}
