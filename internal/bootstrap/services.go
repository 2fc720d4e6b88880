package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/target/frontdesk-console/config"
	"github.com/target/frontdesk-console/internal/adapters/apiclient"
	"github.com/target/frontdesk-console/internal/observability/metrics"
	"github.com/target/frontdesk-console/internal/observability/statsd"
	"github.com/target/frontdesk-console/internal/ports"
	"github.com/target/frontdesk-console/internal/service"
	"github.com/target/frontdesk-console/internal/session"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Store         *session.Store
	Session       *service.SessionCoordinator
	Accounts      *service.AccountService
	FrontOffice   *service.FrontOfficeService
	AcademicYears *service.AcademicYearService
	Admin         *service.AdminService
	Dashboard     *service.DashboardService

	// Registry collects the console's metrics; /metrics serves it.
	Registry *prometheus.Registry

	// StatsD is nil unless the mirror is enabled.
	StatsD *statsd.Client
}

// Close releases resources held by the container.
func (c ServiceContainer) Close() error {
	return c.StatsD.Close()
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config *config.AppConfig
	Tokens ports.TokenStore
	Logger *slog.Logger

	// HTTPClient overrides the outbound client built from Config.API.
	HTTPClient *http.Client

	// Registry overrides the metrics registry. When nil a fresh registry with the Go and
	// process collectors is created.
	Registry *prometheus.Registry
}

// NewServices wires the session coordinator and the resource services over one backend client.
func NewServices(deps ServiceDeps) (ServiceContainer, error) {
	if deps.Config == nil {
		return ServiceContainer{}, errors.New("service config is required")
	}
	if deps.Tokens == nil {
		return ServiceContainer{}, errors.New("token store is required")
	}
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	base := deps.HTTPClient
	if base == nil {
		var err error
		base, err = apiclient.NewHTTPClient(cfg.API.Timeout, cfg.API.UserAgent)
		if err != nil {
			return ServiceContainer{}, err
		}
	}

	registry := deps.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	gateway, err := apiclient.NewAuthGateway(apiclient.AuthGatewayConfig{
		BaseURL:    cfg.API.BaseURL,
		HTTPClient: base,
		Logger:     logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("auth gateway: %w", err)
	}

	sessionMetrics := metrics.NewSessionMetrics(registry)
	statsdClient := buildStatsd(&cfg.Observability, logger)
	if statsdClient != nil {
		sessionMetrics.Mirror = statsdClient
	}

	store := session.NewStore()
	coordinator, err := service.NewSessionCoordinator(service.SessionCoordinatorOptions{
		Gateway: gateway,
		Tokens:  deps.Tokens,
		Store:   store,
		Policy:  cfg.Session.CredentialPolicy,
		Metrics: sessionMetrics,
		Logger:  logger,
	})
	if err != nil {
		_ = statsdClient.Close()
		return ServiceContainer{}, fmt.Errorf("session coordinator: %w", err)
	}

	client, err := apiclient.NewClient(apiclient.ClientConfig{
		BaseURL:         cfg.API.BaseURL,
		AcademicBaseURL: cfg.API.AcademicBaseURL,
		AcademicYearID:  cfg.API.AcademicYearID,
		HTTPClient:      apiclient.AuthorizedHTTPClient(base, apiclient.SessionTokenSource(store)),
		Logger:          logger,
	})
	if err != nil {
		_ = statsdClient.Close()
		return ServiceContainer{}, fmt.Errorf("resource client: %w", err)
	}

	frontOffice := service.NewFrontOfficeService(service.FrontOfficeServiceOptions{API: client})
	academicYears := service.NewAcademicYearService(service.AcademicYearServiceOptions{API: client})

	return ServiceContainer{
		Store:         store,
		Session:       coordinator,
		Accounts:      service.NewAccountService(service.AccountServiceOptions{API: gateway}),
		FrontOffice:   frontOffice,
		AcademicYears: academicYears,
		Admin:         service.NewAdminService(service.AdminServiceOptions{API: client}),
		Dashboard: service.NewDashboardService(service.DashboardServiceOptions{
			FrontOffice:  frontOffice,
			AcademicYear: academicYears,
		}),
		Registry: registry,
		StatsD:   statsdClient,
	}, nil
}

// buildStatsd dials the StatsD mirror when enabled. Failures are logged and the console runs without it.
func buildStatsd(cfg *config.ObservabilityConfig, logger *slog.Logger) *statsd.Client {
	if !cfg.StatsdActive() {
		return nil
	}
	client, err := statsd.Dial(context.Background(), statsd.Config{
		Address: cfg.StatsdAddress,
		Prefix:  "frontdesk",
		Logger:  logger,
	})
	if err != nil {
		logger.Error("failed to initialise statsd client", "error", err)
		return nil
	}
	return client
}
