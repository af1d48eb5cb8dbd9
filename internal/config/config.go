// Package config provides configuration loading for screend.
//
// Configuration is loaded from a YAML file, then overridden by environment
// variables, then backfilled with defaults.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Config holds the complete screend configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Reasoner  ReasonerConfig  `koanf:"reasoner"`
	Suggester SuggesterConfig `koanf:"suggester"`
	Screening ScreeningConfig `koanf:"screening"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            int      `koanf:"http_port"`
	ShutdownTimeout Duration `koanf:"shutdown_timeout"`
	ReadTimeout     Duration `koanf:"read_timeout"`
	WriteTimeout    Duration `koanf:"write_timeout"`
	// MaxBodyBytes bounds request bodies on the screening endpoints.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`
}

// LoggingConfig holds structured-logging configuration.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `koanf:"level"`
	// Format is "json" or "console".
	Format string `koanf:"format"`
}

// ReasonerConfig holds the external reasoning client configuration.
type ReasonerConfig struct {
	// Provider is "anthropic", "openai", or "disabled".
	Provider  string   `koanf:"provider"`
	Model     string   `koanf:"model"`
	APIKey    Secret   `koanf:"api_key"`
	BaseURL   string   `koanf:"base_url"`
	MaxTokens int      `koanf:"max_tokens"`
	Timeout   Duration `koanf:"timeout"`
	// Retries is the number of extra attempts before the fallback cascade
	// takes over.
	Retries int `koanf:"retries"`
	// RequestsPerSecond rate-limits outbound reasoning calls.
	RequestsPerSecond float64 `koanf:"requests_per_second"`
}

// SuggesterConfig holds the similarity-suggestion configuration.
type SuggesterConfig struct {
	Enabled bool `koanf:"enabled"`
	// TopK is the number of nearest exemplars consulted per suggestion.
	TopK int `koanf:"top_k"`
}

// ScreeningConfig holds classification policy knobs.
type ScreeningConfig struct {
	// PreferNegativeAssertion breaks same-position assertion conflicts in
	// favor of the negation.
	PreferNegativeAssertion bool `koanf:"prefer_negative_assertion"`
}

// Default returns the configuration defaults applied before validation.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8170,
			ShutdownTimeout: Duration(10 * time.Second),
			ReadTimeout:     Duration(30 * time.Second),
			WriteTimeout:    Duration(60 * time.Second),
			MaxBodyBytes:    1 << 20,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Reasoner: ReasonerConfig{
			Provider:          "disabled",
			MaxTokens:         1024,
			Timeout:           Duration(20 * time.Second),
			Retries:           1,
			RequestsPerSecond: 2,
		},
		Suggester: SuggesterConfig{
			Enabled: true,
			TopK:    3,
		},
		Screening: ScreeningConfig{
			PreferNegativeAssertion: true,
		},
	}
}

// applyDefaults backfills zero values with the defaults.
func applyDefaults(cfg *Config) {
	def := Default()

	if cfg.Server.Port == 0 {
		cfg.Server.Port = def.Server.Port
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = def.Server.ShutdownTimeout
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = def.Server.ReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = def.Server.WriteTimeout
	}
	if cfg.Server.MaxBodyBytes == 0 {
		cfg.Server.MaxBodyBytes = def.Server.MaxBodyBytes
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = def.Logging.Level
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = def.Logging.Format
	}

	if cfg.Reasoner.Provider == "" {
		cfg.Reasoner.Provider = def.Reasoner.Provider
	}
	if cfg.Reasoner.MaxTokens == 0 {
		cfg.Reasoner.MaxTokens = def.Reasoner.MaxTokens
	}
	if cfg.Reasoner.Timeout == 0 {
		cfg.Reasoner.Timeout = def.Reasoner.Timeout
	}
	if cfg.Reasoner.RequestsPerSecond == 0 {
		cfg.Reasoner.RequestsPerSecond = def.Reasoner.RequestsPerSecond
	}

	if cfg.Suggester.TopK == 0 {
		cfg.Suggester.TopK = def.Suggester.TopK
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d (must be 1-65535)", c.Server.Port)
	}
	if c.Server.ShutdownTimeout.Duration() <= 0 {
		return errors.New("shutdown timeout must be positive")
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log format: %q", c.Logging.Format)
	}

	switch c.Reasoner.Provider {
	case "disabled", "anthropic", "openai":
	default:
		return fmt.Errorf("invalid reasoner provider: %q", c.Reasoner.Provider)
	}
	if c.Reasoner.Provider != "disabled" && !c.Reasoner.APIKey.IsSet() {
		return fmt.Errorf("reasoner provider %q requires an api key", c.Reasoner.Provider)
	}
	if c.Reasoner.Retries < 0 {
		return errors.New("reasoner retries cannot be negative")
	}

	if c.Suggester.TopK < 1 {
		return errors.New("suggester top_k must be at least 1")
	}

	return nil
}
