package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net"

	"github.com/phrazzld/account-api/internal/config"
	"github.com/phrazzld/account-api/internal/platform/tracing"
	"github.com/phrazzld/account-api/internal/service"
	"github.com/phrazzld/account-api/internal/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// registry backs /metrics; each application gets its own.
	registry       *prometheus.Registry
	tracerProvider *sdktrace.TracerProvider

	accountStore        store.AccountStore
	registrationService service.RegistrationService
}

// newApplication wires stores and services on top of an open database.
// The caller keeps ownership of db until newApplication succeeds; after
// that, cleanup closes it.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	tp, err := tracing.NewProvider(ctx, cfg.Tracing)
	if err != nil {
		return nil, err
	}
	if cfg.Tracing.OTLPEndpoint != "" {
		logger.Info("Trace export enabled", "service_name", cfg.Tracing.ServiceName)
	}

	app := &application{
		config:         cfg,
		logger:         logger,
		db:             db,
		registry:       prometheus.NewRegistry(),
		tracerProvider: tp,
	}
	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	app.accountStore, err = newAccountStore(cfg.Database.Driver, db, logger)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, err
	}

	app.registrationService, err = service.NewRegistrationService(
		app.accountStore,
		logger,
		service.WithArgon2Params(cfg.Auth.Argon2.Params()),
		service.WithMetrics(service.NewRegistrationMetrics(app.registry)),
		service.WithTracerProvider(app.tracerProvider),
	)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, fmt.Errorf("failed to create registration service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run serves HTTP on the configured port until ctx is cancelled, then
// shuts down gracefully and releases resources.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()

	addr := fmt.Sprintf(":%d", app.config.Server.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	router, err := app.setupRouter()
	if err != nil {
		_ = ln.Close()
		return err
	}

	if err := app.serve(ctx, ln, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), app.config.Server.ShutdownTimeout)
	defer cancel()

	if app.tracerProvider != nil {
		if err := app.tracerProvider.Shutdown(ctx); err != nil {
			app.logger.Error("Error shutting down tracer provider", "error", err)
		}
	}
	if app.db != nil {
		closeDatabase(app.db, app.logger)
	}

	app.logger.Info("Application shutdown completed")
}
