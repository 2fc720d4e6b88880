package config

import (
	"log/slog"
	"strings"
)

// ObservabilityConfig groups logging and metrics configuration.
type ObservabilityConfig struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// StatsdEnabled mirrors session metrics to a StatsD agent alongside /metrics.
	StatsdEnabled bool   `env:"OBSERVABILITY_METRICS_ENABLED"        envDefault:"false"`
	StatsdAddress string `env:"OBSERVABILITY_METRICS_STATSD_ADDRESS" envDefault:"127.0.0.1:8125"`
}

// Sanitize normalises the log level, falling back to info.
func (c *ObservabilityConfig) Sanitize() {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		c.LogLevel = "info"
	}

	c.StatsdAddress = strings.TrimSpace(c.StatsdAddress)
	if c.StatsdAddress == "" {
		c.StatsdEnabled = false
	}
}

// StatsdActive reports whether the StatsD mirror should be dialled.
func (c *ObservabilityConfig) StatsdActive() bool {
	return c.StatsdEnabled && c.StatsdAddress != ""
}

// SlogLevel maps LogLevel onto slog.
func (c *ObservabilityConfig) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
