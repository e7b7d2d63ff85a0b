// Package config handles loading and validating the wizishop CLI profile
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/JWebCreation/wizishop-sdk/pkg/logger"
	"github.com/JWebCreation/wizishop-sdk/pkg/wizishop"
)

// Config is the top-level CLI configuration.
type Config struct {
	API      APIConfig      `yaml:"api"`
	Throttle ThrottleConfig `yaml:"throttle"`
	Failures FailuresConfig `yaml:"failures"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// APIConfig defines the WiziShop endpoint and session identity.
type APIConfig struct {
	Endpoint  string        `yaml:"endpoint"`
	Username  string        `yaml:"username"`
	Password  string        `yaml:"password"`
	Token     string        `yaml:"token"`
	AccountID string        `yaml:"account_id"`
	ShopID    string        `yaml:"shop_id"`
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
}

// HasCredentials reports whether a username and password are configured.
func (a *APIConfig) HasCredentials() bool {
	return a.Username != "" && a.Password != ""
}

// ThrottleConfig tunes the rate-limit cooldown and optional pacing.
type ThrottleConfig struct {
	Floor     int64         `yaml:"floor"`
	Cooldown  time.Duration `yaml:"cooldown"`
	PerSecond float64       `yaml:"per_second"` // 0 disables pacing
	Burst     int           `yaml:"burst"`
}

// FailuresConfig selects where rejected create payloads are written.
type FailuresConfig struct {
	Dir string `yaml:"dir"` // empty discards them
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json, pretty
}

// Default returns a configuration with every default applied, used when no
// config file is given.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

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
	applyAPIDefaults(&cfg.API)
	applyThrottleDefaults(&cfg.Throttle)
	applyLoggingDefaults(&cfg.Logging)
}

func applyAPIDefaults(a *APIConfig) {
	if a.Endpoint == "" {
		a.Endpoint = wizishop.DefaultEndpoint
	}
	if a.Timeout == 0 {
		a.Timeout = 30 * time.Second
	}
}

func applyThrottleDefaults(t *ThrottleConfig) {
	if t.Floor == 0 {
		t.Floor = wizishop.DefaultThrottleFloor
	}
	if t.Cooldown == 0 {
		t.Cooldown = wizishop.DefaultThrottleCooldown
	}
	if t.PerSecond > 0 && t.Burst == 0 {
		t.Burst = 1
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = logger.FormatText
	}
}

// Validate checks the configuration after flags and environment overrides
// have been merged in.
func (cfg *Config) Validate() error {
	var errs []error

	u, err := url.Parse(cfg.API.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("api.endpoint must be an absolute http(s) URL (got %q)", cfg.API.Endpoint))
	}
	if (cfg.API.Username == "") != (cfg.API.Password == "") {
		errs = append(errs, fmt.Errorf("api.username and api.password must be set together"))
	}
	if cfg.API.Timeout < 0 {
		errs = append(errs, fmt.Errorf("api.timeout must not be negative"))
	}

	if cfg.Throttle.Floor < 0 {
		errs = append(errs, fmt.Errorf("throttle.floor must not be negative"))
	}
	if cfg.Throttle.Cooldown < 0 {
		errs = append(errs, fmt.Errorf("throttle.cooldown must not be negative"))
	}
	if cfg.Throttle.PerSecond < 0 {
		errs = append(errs, fmt.Errorf("throttle.per_second must not be negative"))
	}

	if !logger.ValidLevel(cfg.Logging.Level) {
		errs = append(errs, fmt.Errorf(
			"logging.level must be one of: debug, info, warn, error (got %q)",
			cfg.Logging.Level,
		))
	}
	if !logger.ValidFormat(cfg.Logging.Format) {
		errs = append(errs, fmt.Errorf(
			"logging.format must be one of: text, json, pretty (got %q)",
			cfg.Logging.Format,
		))
	}

	return errors.Join(errs...)
}
