package config

import (
	"strings"
	"time"
)

// HTTPConfig contains console HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the console to. The console serves a single
	// operator session, so it listens on loopback unless told otherwise.
	Addr string `env:"HTTP_ADDR" envDefault:"127.0.0.1:8080"`

	// MetricsEnabled exposes Prometheus metrics on /metrics.
	MetricsEnabled bool `env:"HTTP_METRICS_ENABLED" envDefault:"true"`

	// AdminRoles lists the backend roles allowed on the /api/admin routes. Super admins always pass.
	AdminRoles []string `env:"HTTP_ADMIN_ROLES" envDefault:"Admin" envSeparator:","`

	// ShutdownTimeout bounds graceful shutdown of in-flight requests.
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Sanitize applies guardrails to HTTP configuration values.
func (h *HTTPConfig) Sanitize() {
	h.Addr = strings.TrimSpace(h.Addr)
	if h.Addr == "" {
		h.Addr = "127.0.0.1:8080"
	}

	roles := h.AdminRoles[:0]
	for _, r := range h.AdminRoles {
		if r = strings.TrimSpace(r); r != "" {
			roles = append(roles, r)
		}
	}
	h.AdminRoles = roles

	if h.ShutdownTimeout <= 0 {
		h.ShutdownTimeout = 10 * time.Second
	}
}
