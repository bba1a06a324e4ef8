// Package app provides the main application struct for centralized
// dependency management and lifecycle control of the aipulse server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"aipulse/config"
	"aipulse/internal/analytics"
	"aipulse/internal/displayname"
	"aipulse/internal/observability"
	"aipulse/internal/server"
)

// App bundles the analytics engine and the HTTP server behind a single
// lifecycle. The caller must call Shutdown to release resources.
type App struct {
	config  *config.Config
	engine  *analytics.Engine
	metrics *observability.Metrics
	server  *server.Server

	shutdownMu sync.Mutex
	shutdown   bool
}

// New creates a new App with all dependencies initialized.
func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	names, err := loadDisplayNames(cfg.Report.DisplayNamesFile)
	if err != nil {
		return nil, err
	}

	app := &App{
		config: cfg,
		engine: analytics.New(names),
	}
	if cfg.Metrics.Enabled {
		app.metrics = observability.New()
	}

	app.logStartupInfo()

	handler := server.NewHandler(app.engine, analytics.MetricParams{
		TotalLicensedUsers:           cfg.Report.LicensedUsers,
		SecondsPerAcceptance:         cfg.Report.SecondsPerAcceptance,
		EngagementThreshold:          cfg.Report.EngagementThreshold,
		PowerUserAcceptanceThreshold: cfg.Report.PowerUserAcceptanceThreshold,
		PowerUserActiveDays:          cfg.Report.PowerUserActiveDays,
	}, cfg.Report.CostPerHour, app.metrics)

	app.server = server.New(handler, app.metrics, &server.Config{
		MasterKey:       cfg.Server.MasterKey,
		BodySizeLimit:   cfg.Server.BodySizeLimit,
		MetricsEnabled:  cfg.Metrics.Enabled,
		MetricsEndpoint: cfg.Metrics.Endpoint,
		SwaggerEnabled:  cfg.Server.SwaggerEnabled,
	})

	return app, nil
}

// loadDisplayNames resolves the display name table, falling back to the
// built-in vocabulary when no file is configured.
func loadDisplayNames(path string) (displayname.Resolver, error) {
	if path == "" {
		return displayname.Default(), nil
	}
	table, err := displayname.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load display names: %w", err)
	}
	slog.Info("display names loaded", "file", path)
	return table, nil
}

// Engine returns the analytics engine backing the HTTP handlers.
func (a *App) Engine() *analytics.Engine {
	return a.engine
}

// Start starts the HTTP server on the given address.
// This is a blocking call that returns when the server stops.
func (a *App) Start(addr string) error {
	if a.server == nil {
		return fmt.Errorf("server is not initialized")
	}
	slog.Info("starting server", "address", addr)
	if err := a.server.Start(addr); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			slog.Info("server stopped gracefully")
			return nil
		}
		return fmt.Errorf("server failed to start: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the HTTP server, honoring the passed context
// timeout. It is idempotent; after the first call, subsequent calls are
// no-ops.
func (a *App) Shutdown(ctx context.Context) error {
	a.shutdownMu.Lock()
	if a.shutdown {
		a.shutdownMu.Unlock()
		return nil
	}
	a.shutdown = true
	a.shutdownMu.Unlock()

	slog.Info("shutting down application...")

	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			slog.Error("server shutdown error", "error", err)
			return fmt.Errorf("server shutdown: %w", err)
		}
	}

	slog.Info("application shutdown complete")
	return nil
}

// logStartupInfo logs the application configuration on startup.
func (a *App) logStartupInfo() {
	cfg := a.config

	// Security warnings
	if cfg.Server.MasterKey == "" {
		slog.Warn("SECURITY WARNING: AIPULSE_MASTER_KEY not set - server running in UNSAFE MODE",
			"security_risk", "unauthenticated access allowed",
			"recommendation", "set AIPULSE_MASTER_KEY environment variable to secure this API")
	} else {
		slog.Info("authentication enabled", "mode", "master_key")
	}

	if cfg.Metrics.Enabled {
		slog.Info("prometheus metrics enabled", "endpoint", cfg.Metrics.Endpoint)
	} else {
		slog.Info("prometheus metrics disabled")
	}

	if cfg.Server.SwaggerEnabled {
		slog.Info("swagger UI enabled", "path", "/swagger/index.html")
	}

	slog.Info("report defaults",
		"licensed_users", cfg.Report.LicensedUsers,
		"seconds_per_acceptance", cfg.Report.SecondsPerAcceptance,
		"engagement_threshold", cfg.Report.EngagementThreshold,
		"power_user_acceptance_threshold", cfg.Report.PowerUserAcceptanceThreshold,
		"power_user_active_days", cfg.Report.PowerUserActiveDays,
		"cost_per_hour", cfg.Report.CostPerHour,
	)
}
