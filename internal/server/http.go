package server

import (
	"context"
	"log/slog"
	"net/http"
	"path"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"aipulse/config"
	"aipulse/internal/observability"
)

// Server wraps the Echo server
type Server struct {
	echo    *echo.Echo
	handler *Handler
}

// Config holds server configuration options
type Config struct {
	MasterKey       string // Optional: Master key for authentication
	BodySizeLimit   string // Max request body size, e.g. "256M"
	MetricsEnabled  bool   // Whether to expose Prometheus metrics endpoint
	MetricsEndpoint string // HTTP path for metrics endpoint (default: /metrics)
	SwaggerEnabled  bool   // Whether to serve the swagger UI
}

// New creates a new HTTP server around handler. metrics may be nil,
// which disables the middleware and the scrape endpoint.
func New(handler *Handler, metrics *observability.Metrics, cfg *Config) *Server {
	e := echo.New()
	e.HideBanner = true

	// Build list of paths that skip authentication
	authSkipPaths := []string{"/health"}

	// Determine metrics path
	metricsPath := "/metrics"
	if cfg != nil && cfg.MetricsEnabled {
		if cfg.MetricsEndpoint != "" {
			// Normalize path to prevent traversal attacks
			metricsPath = path.Clean(cfg.MetricsEndpoint)
		}
		authSkipPaths = append(authSkipPaths, metricsPath)
	}
	if cfg != nil && cfg.SwaggerEnabled {
		authSkipPaths = append(authSkipPaths, "/swagger")
	}

	// Global middleware stack (order matters)
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger())
	e.Use(middleware.Recover())
	if metrics != nil {
		e.Use(metrics.Middleware())
	}

	bodySizeLimit := config.DefaultBodySizeLimit
	if cfg != nil && cfg.BodySizeLimit != "" {
		bodySizeLimit = cfg.BodySizeLimit
	}
	e.Use(middleware.BodyLimit(bodySizeLimit))

	// Authentication (skips public paths)
	if cfg != nil && cfg.MasterKey != "" {
		e.Use(AuthMiddleware(cfg.MasterKey, authSkipPaths))
	}

	// Public routes
	e.GET("/health", handler.Health)
	if cfg != nil && cfg.MetricsEnabled && metrics != nil {
		e.GET(metricsPath, echo.WrapHandler(metrics.Handler()))
	}
	if cfg != nil && cfg.SwaggerEnabled {
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	// API routes
	api := e.Group("/api/v1")
	api.POST("/ingest", handler.Ingest)
	api.GET("/filter", handler.GetFilter)
	api.PUT("/filter", handler.SetFilter)
	api.GET("/records", handler.Records)
	api.GET("/report/timeseries", handler.ReportTimeSeries)
	api.GET("/report/top-users", handler.ReportTopUsers)
	api.GET("/report/feature-mix", handler.ReportFeatureMix)
	api.GET("/report/model-mix", handler.ReportModelMix)
	api.GET("/report/model-usage/daily", handler.ReportDailyModelUsage)
	api.GET("/report/language-usage/daily", handler.ReportDailyLanguageUsage)
	api.GET("/report/adoption", handler.ReportAdoption)
	api.GET("/report/totals", handler.ReportTotals)
	api.GET("/report/aidei", handler.ReportAIDEI)
	api.GET("/report/engineering", handler.ReportEngineering)
	api.GET("/report/summary.csv", handler.SummaryCSV)
	api.GET("/users/:login/most-used", handler.MostUsed)

	return &Server{
		echo:    e,
		handler: handler,
	}
}

// requestLogger logs one line per request through the process slog
// logger.
func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				attrs = append(attrs, "error", v.Error)
				slog.Error("http request", attrs...)
				return nil
			}
			slog.Info("http request", attrs...)
			return nil
		},
	})
}

// Start starts the HTTP server on the given address
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// ServeHTTP implements the http.Handler interface, allowing Server to be used with httptest
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}
