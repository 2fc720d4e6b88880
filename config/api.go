package config

import (
	"strings"
	"time"
)

// APIConfig describes the remote REST API the console consumes.
type APIConfig struct {
	// BaseURL is the main API (auth and admin endpoints).
	BaseURL string `env:"API_URL" envDefault:"http://localhost:8081/api"`

	// AcademicBaseURL serves front-office and academic-year resources.
	// Falls back to BaseURL when empty.
	AcademicBaseURL string `env:"ACADEMIC_SERVICE_URL"`

	// AcademicYearID is sent as X-Academic-Year-Id on front-office calls.
	// When empty the current academic year is looked up on demand.
	AcademicYearID string `env:"ACADEMIC_YEAR_ID"`

	// Timeout bounds every outbound request.
	Timeout time.Duration `env:"API_TIMEOUT" envDefault:"15s"`

	// UserAgent is sent on every outbound request.
	UserAgent string `env:"API_USER_AGENT" envDefault:"frontdesk-console"`
}

// Sanitize applies guardrails to API configuration values.
func (a *APIConfig) Sanitize() {
	a.BaseURL = strings.TrimRight(strings.TrimSpace(a.BaseURL), "/")
	a.AcademicBaseURL = strings.TrimRight(strings.TrimSpace(a.AcademicBaseURL), "/")
	if a.AcademicBaseURL == "" {
		a.AcademicBaseURL = a.BaseURL
	}
	a.AcademicYearID = strings.TrimSpace(a.AcademicYearID)
	if a.Timeout <= 0 {
		a.Timeout = 15 * time.Second
	}
	if strings.TrimSpace(a.UserAgent) == "" {
		a.UserAgent = "frontdesk-console"
	}
}
