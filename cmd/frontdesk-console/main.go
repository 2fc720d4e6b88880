// Command frontdesk-console serves the front-office web console for one operator.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/target/frontdesk-console/config"
	"github.com/target/frontdesk-console/internal/bootstrap"
)

func main() {
	ctx := context.Background()
	if err := run(ctx); err != nil {
		slog.ErrorContext(ctx, "fatal error", "error", err)
		os.Exit(1) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func run(ctx context.Context) error {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return err
	}
	logger := bootstrap.InitLogger(os.Stdout, cfg.Observability.SlogLevel())

	logStartupInfo(ctx, logger, &cfg)

	tokens, closeTokens, err := bootstrap.BuildTokenStore(ctx, bootstrap.TokenStoreDeps{
		TokenStore: cfg.TokenStore,
		Redis:      cfg.Redis,
		Logger:     logger,
	})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeTokens(); cerr != nil {
			logger.ErrorContext(ctx, "close token store failed", "error", cerr)
		}
	}()

	services, err := bootstrap.NewServices(bootstrap.ServiceDeps{
		Config: &cfg,
		Tokens: tokens,
		Logger: logger,
	})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := services.Close(); cerr != nil {
			logger.ErrorContext(ctx, "close services failed", "error", cerr)
		}
	}()

	return bootstrap.RunConsole(ctx, bootstrap.HTTPServerConfig{
		Config:   &cfg,
		Services: services,
		Logger:   logger,
	})
}

func logStartupInfo(ctx context.Context, logger *slog.Logger, cfg *config.AppConfig) {
	logger.InfoContext(ctx, "starting frontdesk console",
		"addr", cfg.HTTP.Addr,
		"api_url", cfg.API.BaseURL,
		"academic_api_url", cfg.API.AcademicBaseURL,
		"academic_year_pinned", cfg.API.AcademicYearID != "",
		"token_store", cfg.TokenStore.Backend,
		"credential_policy", cfg.Session.CredentialPolicy,
		"metrics_enabled", cfg.HTTP.MetricsEnabled,
		"statsd_enabled", cfg.Observability.StatsdActive(),
		"dev", cfg.IsDev,
	)
}
