// Package server provides HTTP handlers and server setup for the usage
// analytics service.
package server

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"aipulse/internal/analytics"
	"aipulse/internal/core"
	"aipulse/internal/export"
	"aipulse/internal/ingest"
	"aipulse/internal/observability"
)

// statusClientClosedRequest is the nginx convention for requests the
// client abandoned before a response was written.
const statusClientClosedRequest = 499

// Paging bounds for the records listing.
const (
	defaultRecordsLimit = 100
	maxRecordsLimit     = 1000
)

// Handler holds the HTTP handlers. Its lock serializes dataset and
// criteria changes against concurrent report reads; the engine itself
// does not lock.
type Handler struct {
	mu          sync.RWMutex
	engine      *analytics.Engine
	params      analytics.MetricParams
	costPerHour float64
	metrics     *observability.Metrics
}

// NewHandler creates a new handler around engine. defaults supplies the
// report parameters applied when a request does not override them.
// metrics may be nil.
func NewHandler(engine *analytics.Engine, defaults analytics.MetricParams, costPerHour float64, metrics *observability.Metrics) *Handler {
	return &Handler{
		engine:      engine,
		params:      defaults,
		costPerHour: costPerHour,
		metrics:     metrics,
	}
}

// Health handles GET /health
//
// @Summary      Health check
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

type ingestResponse struct {
	IngestID   string `json:"ingest_id"`
	Records    int    `json:"records"`
	Skipped    int    `json:"skipped"`
	Bytes      int64  `json:"bytes"`
	DurationMS int64  `json:"duration_ms"`
}

// Ingest handles POST /api/v1/ingest. The NDJSON body replaces the
// loaded dataset in one swap; plain, gzip and brotli bodies are
// accepted. A failed or canceled upload leaves the previous dataset
// untouched.
//
// @Summary      Ingest usage records
// @Description  Replaces the loaded dataset with the newline-delimited JSON request body. gzip and brotli Content-Encoding are accepted.
// @Tags         ingest
// @Accept       plain
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  server.ingestResponse
// @Failure      400  {object}  core.AnalyticsError
// @Failure      401  {object}  core.AnalyticsError
// @Router       /api/v1/ingest [post]
func (h *Handler) Ingest(c echo.Context) error {
	reader, err := decodeBody(c.Request())
	if err != nil {
		return handleError(c, err)
	}

	raw, err := io.ReadAll(reader)
	if err != nil {
		if c.Request().Context().Err() != nil {
			return c.NoContent(statusClientClosedRequest)
		}
		return handleError(c, core.NewIngestError("failed to read request body", err))
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return handleError(c, core.NewInvalidRequestError("empty request body", nil))
	}

	ingestID := uuid.NewString()
	log := slog.With("ingest_id", ingestID)
	start := time.Now()

	h.mu.Lock()
	defer h.mu.Unlock()

	result, err := h.engine.Ingest(c.Request().Context(), bytes.NewReader(raw), func(p ingest.Progress) {
		if h.metrics != nil {
			h.metrics.IngestProgress.Set(float64(p.Records))
		}
		if !p.Done {
			log.Debug("ingest progress", "records", p.Records, "estimated_bytes", p.EstimatedBytes)
		}
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			log.Warn("ingest canceled", "records_parsed", result.Records)
			return c.NoContent(statusClientClosedRequest)
		}
		return handleError(c, core.NewIngestError("failed to parse usage records", err))
	}

	duration := time.Since(start)
	if h.metrics != nil {
		h.metrics.IngestRecords.Add(float64(result.Records))
		h.metrics.IngestSkipped.Add(float64(result.Skipped))
		h.metrics.IngestDuration.Observe(duration.Seconds())
	}
	log.Info("dataset replaced",
		"records", result.Records,
		"skipped", result.Skipped,
		"bytes", result.Bytes,
		"duration", duration,
	)

	return c.JSON(http.StatusOK, ingestResponse{
		IngestID:   ingestID,
		Records:    result.Records,
		Skipped:    result.Skipped,
		Bytes:      result.Bytes,
		DurationMS: duration.Milliseconds(),
	})
}

// decodeBody wraps the request body according to its Content-Encoding.
func decodeBody(r *http.Request) (io.Reader, error) {
	encoding := strings.ToLower(strings.TrimSpace(r.Header.Get("Content-Encoding")))
	switch encoding {
	case "", "identity":
		return r.Body, nil
	case "gzip":
		zr, err := gzip.NewReader(r.Body)
		if err != nil {
			return nil, core.NewInvalidRequestError("malformed gzip body", err)
		}
		return zr, nil
	case "br":
		return brotli.NewReader(r.Body), nil
	default:
		return nil, core.NewInvalidRequestError("unsupported content encoding: "+encoding, nil)
	}
}

// criteriaRequest is the wire form of the dataset filter. Dates use the
// canonical YYYY-MM-DD form; the lenient fallbacks are for ingested
// data, not the API.
type criteriaRequest struct {
	From     string   `json:"from"`
	To       string   `json:"to"`
	Users    []string `json:"users"`
	Features []string `json:"features"`
	Models   []string `json:"models"`
}

func (r *criteriaRequest) toCriteria() (analytics.Criteria, error) {
	var crit analytics.Criteria
	var err error
	if crit.From, err = parseFilterDay(r.From); err != nil {
		return crit, err
	}
	if crit.To, err = parseFilterDay(r.To); err != nil {
		return crit, err
	}
	crit.Users = r.Users
	crit.Features = r.Features
	crit.Models = r.Models
	return crit, nil
}

func parseFilterDay(s string) (core.Day, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return core.Day{}, nil
	}
	t, err := time.Parse(core.DayFormat, s)
	if err != nil {
		return core.Day{}, core.NewInvalidRequestError("invalid date "+strconv.Quote(s)+", expected YYYY-MM-DD", err)
	}
	return core.DayOf(t), nil
}

// GetFilter handles GET /api/v1/filter
//
// @Summary      Get the active filter criteria
// @Tags         filter
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  analytics.Criteria
// @Failure      401  {object}  core.AnalyticsError
// @Router       /api/v1/filter [get]
func (h *Handler) GetFilter(c echo.Context) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return c.JSON(http.StatusOK, h.engine.ActiveCriteria())
}

// SetFilter handles PUT /api/v1/filter, replacing the active criteria.
//
// @Summary      Replace the active filter criteria
// @Tags         filter
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        criteria  body      server.criteriaRequest  true  "Filter criteria; dates use YYYY-MM-DD"
// @Success      200       {object}  analytics.Criteria
// @Failure      400       {object}  core.AnalyticsError
// @Failure      401       {object}  core.AnalyticsError
// @Router       /api/v1/filter [put]
func (h *Handler) SetFilter(c echo.Context) error {
	var req criteriaRequest
	if err := c.Bind(&req); err != nil {
		return handleError(c, core.NewInvalidRequestError("invalid request body: "+err.Error(), err))
	}

	criteria, err := req.toCriteria()
	if err != nil {
		return handleError(c, err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.engine.SetCriteria(criteria)
	return c.JSON(http.StatusOK, h.engine.ActiveCriteria())
}

type recordsResponse struct {
	Total   int                `json:"total"`
	Limit   int                `json:"limit"`
	Offset  int                `json:"offset"`
	Records []core.UsageRecord `json:"records"`
}

// Records handles GET /api/v1/records, paging the filtered view.
//
// @Summary      List filtered usage records
// @Tags         records
// @Produce      json
// @Security     BearerAuth
// @Param        limit   query     int  false  "Page size (default 100, max 1000)"
// @Param        offset  query     int  false  "Records to skip"
// @Success      200     {object}  server.recordsResponse
// @Failure      400     {object}  core.AnalyticsError
// @Failure      401     {object}  core.AnalyticsError
// @Router       /api/v1/records [get]
func (h *Handler) Records(c echo.Context) error {
	limit, err := intQueryParam(c, "limit", defaultRecordsLimit)
	if err != nil {
		return handleError(c, err)
	}
	offset, err := intQueryParam(c, "offset", 0)
	if err != nil {
		return handleError(c, err)
	}
	if limit < 1 || limit > maxRecordsLimit {
		return handleError(c, core.NewInvalidRequestError("limit must be between 1 and 1000", nil))
	}
	if offset < 0 {
		return handleError(c, core.NewInvalidRequestError("offset must not be negative", nil))
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	records := h.engine.Filtered()
	total := len(records)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	return c.JSON(http.StatusOK, recordsResponse{
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		Records: records[offset:end],
	})
}

// report writes the computed payload with an ETag derived from the
// dataset revision and the request URI, honoring If-None-Match. Only
// inputs are fingerprinted; no computed result is ever stored.
func (h *Handler) report(c echo.Context, compute func() interface{}) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	etag := h.reportETag(c)
	c.Response().Header().Set("ETag", etag)
	if c.Request().Header.Get("If-None-Match") == etag {
		return c.NoContent(http.StatusNotModified)
	}
	return c.JSON(http.StatusOK, compute())
}

func (h *Handler) reportETag(c echo.Context) string {
	d := xxhash.New()
	_, _ = io.WriteString(d, strconv.FormatUint(h.engine.Revision(), 10))
	_, _ = io.WriteString(d, "\n")
	_, _ = io.WriteString(d, c.Request().URL.RequestURI())
	return `"` + strconv.FormatUint(d.Sum64(), 16) + `"`
}

// ReportTimeSeries handles GET /api/v1/report/timeseries
//
// @Summary      Daily activity totals
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   analytics.DayTotals
// @Failure      401  {object}  core.AnalyticsError
// @Router       /api/v1/report/timeseries [get]
func (h *Handler) ReportTimeSeries(c echo.Context) error {
	return h.report(c, func() interface{} { return h.engine.TimeSeries() })
}

// ReportTopUsers handles GET /api/v1/report/top-users
//
// @Summary      Rank users by generations
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        n    query     int  false  "Ranking size (default 10)"
// @Success      200  {array}   analytics.UserTotals
// @Failure      400  {object}  core.AnalyticsError
// @Failure      401  {object}  core.AnalyticsError
// @Router       /api/v1/report/top-users [get]
func (h *Handler) ReportTopUsers(c echo.Context) error {
	n, err := intQueryParam(c, "n", 0)
	if err != nil {
		return handleError(c, err)
	}
	return h.report(c, func() interface{} { return h.engine.TopUsers(n) })
}

// ReportFeatureMix handles GET /api/v1/report/feature-mix
//
// @Summary      Generations per feature
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   analytics.MixEntry
// @Failure      401  {object}  core.AnalyticsError
// @Router       /api/v1/report/feature-mix [get]
func (h *Handler) ReportFeatureMix(c echo.Context) error {
	return h.report(c, func() interface{} { return h.engine.FeatureMix() })
}

// ReportModelMix handles GET /api/v1/report/model-mix
//
// @Summary      Generations per model
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   analytics.MixEntry
// @Failure      401  {object}  core.AnalyticsError
// @Router       /api/v1/report/model-mix [get]
func (h *Handler) ReportModelMix(c echo.Context) error {
	return h.report(c, func() interface{} { return h.engine.ModelMix() })
}

// ReportDailyModelUsage handles GET /api/v1/report/model-usage/daily
//
// @Summary      Generations per model per day
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   analytics.DayUsage
// @Failure      401  {object}  core.AnalyticsError
// @Router       /api/v1/report/model-usage/daily [get]
func (h *Handler) ReportDailyModelUsage(c echo.Context) error {
	return h.report(c, func() interface{} { return h.engine.DailyModelUsage() })
}

// ReportDailyLanguageUsage handles GET /api/v1/report/language-usage/daily
//
// @Summary      Generations per language per day
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   analytics.DayUsage
// @Failure      401  {object}  core.AnalyticsError
// @Router       /api/v1/report/language-usage/daily [get]
func (h *Handler) ReportDailyLanguageUsage(c echo.Context) error {
	return h.report(c, func() interface{} { return h.engine.DailyLanguageUsage() })
}

// ReportAdoption handles GET /api/v1/report/adoption
//
// @Summary      Surface adoption counts
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  analytics.AdoptionStats
// @Failure      401  {object}  core.AnalyticsError
// @Router       /api/v1/report/adoption [get]
func (h *Handler) ReportAdoption(c echo.Context) error {
	return h.report(c, func() interface{} { return h.engine.Adoption() })
}

// ReportTotals handles GET /api/v1/report/totals
//
// @Summary      Aggregate activity totals
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  analytics.Totals
// @Failure      401  {object}  core.AnalyticsError
// @Router       /api/v1/report/totals [get]
func (h *Handler) ReportTotals(c echo.Context) error {
	return h.report(c, func() interface{} { return h.engine.AggregateTotals() })
}

// ReportAIDEI handles GET /api/v1/report/aidei
//
// @Summary      Blended adoption score
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        licensed_users                   query     int     false  "Licensed seat count override"
// @Param        seconds_per_acceptance           query     number  false  "Saved seconds per acceptance override"
// @Param        engagement_threshold             query     int     false  "Engaged-day activity threshold override"
// @Param        power_user_acceptance_threshold  query     number  false  "Power-user acceptance rate override"
// @Param        power_user_active_days           query     int     false  "Power-user active day count override"
// @Success      200  {object}  analytics.AIDEIResult
// @Failure      400  {object}  core.AnalyticsError
// @Failure      401  {object}  core.AnalyticsError
// @Router       /api/v1/report/aidei [get]
func (h *Handler) ReportAIDEI(c echo.Context) error {
	params, err := h.overriddenParams(c)
	if err != nil {
		return handleError(c, err)
	}
	return h.report(c, func() interface{} { return h.engine.AIDEI(params) })
}

// ReportEngineering handles GET /api/v1/report/engineering
//
// @Summary      Extended engineering metrics
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Param        licensed_users                   query     int     false  "Licensed seat count override"
// @Param        seconds_per_acceptance           query     number  false  "Saved seconds per acceptance override"
// @Param        engagement_threshold             query     int     false  "Engaged-day activity threshold override"
// @Param        power_user_acceptance_threshold  query     number  false  "Power-user acceptance rate override"
// @Param        power_user_active_days           query     int     false  "Power-user active day count override"
// @Success      200  {object}  analytics.EngineeringMetrics
// @Failure      400  {object}  core.AnalyticsError
// @Failure      401  {object}  core.AnalyticsError
// @Router       /api/v1/report/engineering [get]
func (h *Handler) ReportEngineering(c echo.Context) error {
	params, err := h.overriddenParams(c)
	if err != nil {
		return handleError(c, err)
	}
	return h.report(c, func() interface{} { return h.engine.Engineering(params) })
}

// SummaryCSV handles GET /api/v1/report/summary.csv, streaming every
// report section as one CSV document.
//
// @Summary      All report sections as CSV
// @Tags         reports
// @Produce      text/csv
// @Security     BearerAuth
// @Param        n    query     int  false  "Top-user ranking size (default 10)"
// @Success      200  {string}  string
// @Failure      400  {object}  core.AnalyticsError
// @Failure      401  {object}  core.AnalyticsError
// @Router       /api/v1/report/summary.csv [get]
func (h *Handler) SummaryCSV(c echo.Context) error {
	params, err := h.overriddenParams(c)
	if err != nil {
		return handleError(c, err)
	}
	n, err := intQueryParam(c, "n", 0)
	if err != nil {
		return handleError(c, err)
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	etag := h.reportETag(c)
	c.Response().Header().Set("ETag", etag)
	if c.Request().Header.Get("If-None-Match") == etag {
		return c.NoContent(http.StatusNotModified)
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="aipulse-summary.csv"`)
	c.Response().WriteHeader(http.StatusOK)

	return export.WriteSummary(c.Response(), h.engine, export.Options{
		Params:      params,
		CostPerHour: h.costPerHour,
		TopUsers:    n,
	})
}

// MostUsed handles GET /api/v1/users/:login/most-used
//
// @Summary      Most used language and model for a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        login  path      string  true  "User login"
// @Success      200    {object}  analytics.MostUsed
// @Failure      400    {object}  core.AnalyticsError
// @Failure      401    {object}  core.AnalyticsError
// @Router       /api/v1/users/{login}/most-used [get]
func (h *Handler) MostUsed(c echo.Context) error {
	login := strings.TrimSpace(c.Param("login"))
	if login == "" {
		return handleError(c, core.NewInvalidRequestError("login is required", nil))
	}
	return h.report(c, func() interface{} { return h.engine.MostUsedForUser(login) })
}

// overriddenParams starts from the configured defaults and applies any
// per-request query overrides.
func (h *Handler) overriddenParams(c echo.Context) (analytics.MetricParams, error) {
	p := h.params
	if err := overrideIntParam(c, "licensed_users", &p.TotalLicensedUsers); err != nil {
		return p, err
	}
	if err := overrideFloatParam(c, "seconds_per_acceptance", &p.SecondsPerAcceptance); err != nil {
		return p, err
	}
	if err := overrideIntParam(c, "engagement_threshold", &p.EngagementThreshold); err != nil {
		return p, err
	}
	if err := overrideFloatParam(c, "power_user_acceptance_threshold", &p.PowerUserAcceptanceThreshold); err != nil {
		return p, err
	}
	if err := overrideIntParam(c, "power_user_active_days", &p.PowerUserActiveDays); err != nil {
		return p, err
	}
	return p, nil
}

func overrideIntParam(c echo.Context, name string, dst *int) error {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return core.NewInvalidRequestError("invalid "+name+": "+strconv.Quote(raw), err)
	}
	*dst = v
	return nil
}

func overrideFloatParam(c echo.Context, name string, dst *float64) error {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return core.NewInvalidRequestError("invalid "+name+": "+strconv.Quote(raw), err)
	}
	*dst = v
	return nil
}

func intQueryParam(c echo.Context, name string, fallback int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, core.NewInvalidRequestError("invalid "+name+": "+strconv.Quote(raw), err)
	}
	return v, nil
}

// handleError converts analytics errors to appropriate HTTP responses
func handleError(c echo.Context, err error) error {
	var analyticsErr *core.AnalyticsError
	if errors.As(err, &analyticsErr) {
		return c.JSON(analyticsErr.HTTPStatusCode(), analyticsErr.ToJSON())
	}

	// Fallback for unexpected errors
	return c.JSON(http.StatusInternalServerError, map[string]interface{}{
		"error": map[string]interface{}{
			"type":    "internal_error",
			"message": "an unexpected error occurred",
		},
	})
}
