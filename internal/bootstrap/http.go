package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/target/frontdesk-console/config"
	domainauth "github.com/target/frontdesk-console/internal/domain/auth"
	httpx "github.com/target/frontdesk-console/internal/http"
	"github.com/target/frontdesk-console/internal/service"
	"golang.org/x/sync/errgroup"
)

// HTTPServerConfig contains configuration for HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger

	// Listener, when set, is served instead of binding Config.HTTP.Addr.
	Listener net.Listener
}

// BuildHTTPHandler builds the router and wraps it in the standard middleware.
// Order: Recover -> RequestID -> Logging -> Router.
func BuildHTTPHandler(cfg HTTPServerConfig) (http.Handler, error) {
	if cfg.Config == nil {
		return nil, errors.New("http server config missing AppConfig")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	roles := make([]domainauth.Role, 0, len(cfg.Config.HTTP.AdminRoles))
	for _, r := range cfg.Config.HTTP.AdminRoles {
		roles = append(roles, domainauth.Role(r))
	}

	var metricsHandler http.Handler
	if cfg.Config.HTTP.MetricsEnabled && cfg.Services.Registry != nil {
		metricsHandler = promhttp.HandlerFor(cfg.Services.Registry, promhttp.HandlerOpts{
			Registry: cfg.Services.Registry,
		})
	}

	router, err := httpx.NewRouter(httpx.RouterServices{
		Session:       cfg.Services.Session,
		Accounts:      cfg.Services.Accounts,
		FrontOffice:   cfg.Services.FrontOffice,
		AcademicYears: cfg.Services.AcademicYears,
		Admin:         cfg.Services.Admin,
		Dashboard:     cfg.Services.Dashboard,
		AdminRoles:    roles,
		Metrics:       metricsHandler,
		Logger:        logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build router: %w", err)
	}

	h := httpx.Logging(logger)(router)
	h = httpx.RequestID()(h)
	h = httpx.Recover(logger)(h)
	return h, nil
}

func newServer(handler http.Handler, addr string) *http.Server {
	// Guard against empty addr to avoid listening on every interface
	if addr == "" {
		addr = "127.0.0.1:8080"
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

// RunConsole serves the console until ctx is cancelled or SIGINT/SIGTERM arrives.
// The stored session is restored in the background; until that finishes protected pages
// answer with a placeholder and /readyz reports hydrating.
func RunConsole(ctx context.Context, cfg HTTPServerConfig) error {
	if cfg.Services.Session == nil {
		return errors.New("http server requires a session coordinator")
	}
	handler, err := BuildHTTPHandler(cfg)
	if err != nil {
		return err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := newServer(handler, cfg.Config.HTTP.Addr)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var serveErr error
		if cfg.Listener != nil {
			logger.InfoContext(gctx, "starting HTTP server", "addr", cfg.Listener.Addr().String())
			serveErr = server.Serve(cfg.Listener)
		} else {
			logger.InfoContext(gctx, "starting HTTP server", "addr", server.Addr)
			serveErr = server.ListenAndServe()
		}
		if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", serveErr)
		}
		return nil
	})

	g.Go(func() error {
		if hydrateErr := cfg.Services.Session.Hydrate(gctx); hydrateErr != nil &&
			!errors.Is(hydrateErr, service.ErrAlreadyHydrated) {
			return fmt.Errorf("restore session: %w", hydrateErr)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down HTTP server")

		timeout := cfg.Config.HTTP.ShutdownTimeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), timeout)
		defer cancel()
		if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
			return fmt.Errorf("shutdown http server: %w", shutdownErr)
		}
		logger.Info("HTTP server stopped")
		return nil
	})

	return g.Wait()
}
