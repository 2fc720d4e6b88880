package config

import (
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - api.go: Backend API endpoints and transport
//   - auth.go: Session and credential policy
//   - storage.go: Token store backend and Redis
//   - http.go: Console HTTP server configuration
//   - observability.go: Logging and metrics
type AppConfig struct {
	// IsDev controls development mode behavior (text logs, verbose errors).
	// Set DEV=true or NODE_ENV=development for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	// Backend API configuration
	API APIConfig

	// Session configuration
	Session SessionConfig

	// Token store configuration
	TokenStore TokenStoreConfig
	Redis      RedisConfig `envPrefix:"REDIS_"`

	// Console HTTP server configuration
	HTTP HTTPConfig

	// Observability configuration
	Observability ObservabilityConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.API.Sanitize()
	c.TokenStore.Sanitize()
	c.HTTP.Sanitize()
	c.Observability.Sanitize()

	// Check NODE_ENV for dev mode
	c.detectDevMode()
}

// detectDevMode checks both DEV and NODE_ENV environment variables.
// NODE_ENV is checked as a fallback (common in frontend tooling).
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		nodeEnv := strings.ToLower(os.Getenv("NODE_ENV"))
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
}
