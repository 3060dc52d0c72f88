package main

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/account-api/internal/api"
	apiMiddleware "github.com/phrazzld/account-api/internal/api/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() (http.Handler, error) {
	httpMetrics, err := apiMiddleware.NewHTTPMetrics(apiMiddleware.HTTPMetricsOptions{
		Registerer: app.registry,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP metrics: %w", err)
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.tracerProvider))
	r.Use(httpMetrics.Handler)

	accountHandler := api.NewAccountHandler(app.registrationService, app.logger)
	healthHandler := api.NewHealthHandler(app.db, app.config.Database.ConnectTimeout)

	r.Route("/api", func(r chi.Router) {
		r.Post("/accounts", accountHandler.Create)
	})

	r.Get("/health", healthHandler.Check)
	r.Handle("/metrics", promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{}))

	return r, nil
}
