// Package observability wires Prometheus instrumentation for the
// analytics service. Collectors live on a dedicated registry so tests
// can run side by side without double registration.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the service collectors.
type Metrics struct {
	registry *prometheus.Registry

	IngestRecords  prometheus.Counter
	IngestSkipped  prometheus.Counter
	IngestDuration prometheus.Histogram
	IngestProgress prometheus.Gauge

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// New builds a Metrics with all collectors registered on a fresh
// registry, including the standard Go and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		IngestRecords: factory.NewCounter(prometheus.CounterOpts{
			Name: "aipulse_ingest_records_total",
			Help: "Usage records parsed across all ingestion runs.",
		}),
		IngestSkipped: factory.NewCounter(prometheus.CounterOpts{
			Name: "aipulse_ingest_lines_skipped_total",
			Help: "Malformed lines dropped across all ingestion runs.",
		}),
		IngestDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "aipulse_ingest_duration_seconds",
			Help:    "Wall time of ingestion runs.",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
		IngestProgress: factory.NewGauge(prometheus.GaugeOpts{
			Name: "aipulse_ingest_progress_records",
			Help: "Records parsed so far by the in-flight ingestion run.",
		}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "aipulse_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "aipulse_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// Handler exposes the registry in Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency per route. Routes are
// labeled by their registered pattern, not the raw path, to keep
// cardinality bounded.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				} else {
					status = http.StatusInternalServerError
				}
			}

			method := c.Request().Method
			route := c.Path()
			m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
			m.httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}
