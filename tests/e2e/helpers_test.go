//go:build e2e

package e2e

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"aipulse/internal/analytics"
	"aipulse/internal/observability"
	"aipulse/internal/server"
)

// API endpoints
const (
	ingestPath  = "/api/v1/ingest"
	filterPath  = "/api/v1/filter"
	recordsPath = "/api/v1/records"
	reportPath  = "/api/v1/report"
	healthPath  = "/health"
	metricsPath = "/metrics"
)

// testMasterKey protects the API in the auth scenarios.
const testMasterKey = "e2e-master-key"

// usageExport is a small NDJSON export: two users on 2025-06-02, one of
// them again on 2025-06-03, plus one malformed line that ingestion must
// skip.
const usageExport = `{"day":"2025-06-02","user_login":"alice","user_initiated_interaction_count":1,"code_generation_activity_count":4,"code_acceptance_activity_count":2,"generated_loc_sum":80,"accepted_loc_sum":40,"used_chat":true,"totals_by_feature":[{"feature":"code_completion","code_generation_activity_count":4}],"totals_by_model_feature":[{"model":"gpt-4o","code_generation_activity_count":4}],"totals_by_language_feature":[{"language":"go","code_generation_activity_count":4}]}
{"day":"2025-06-02","user_login":"bob","user_initiated_interaction_count":2,"code_generation_activity_count":6,"code_acceptance_activity_count":4,"generated_loc_sum":60,"accepted_loc_sum":30,"totals_by_feature":[{"feature":"inline_chat","code_generation_activity_count":6}],"totals_by_model_feature":[{"model":"claude-3.5-sonnet","code_generation_activity_count":6}]}
not json at all
{"day":"2025-06-03","user_login":"alice","user_initiated_interaction_count":1,"code_generation_activity_count":5,"code_acceptance_activity_count":3,"generated_loc_sum":50,"accepted_loc_sum":20}
`

// startServer boots the full HTTP stack around a fresh engine and a
// dedicated metrics registry. Tests own the returned server and must
// close it.
func startServer(t *testing.T, cfg *server.Config) *httptest.Server {
	t.Helper()

	metrics := observability.New()
	engine := analytics.New(nil)
	params := analytics.MetricParams{
		TotalLicensedUsers:           4,
		SecondsPerAcceptance:         3600,
		EngagementThreshold:          5,
		PowerUserAcceptanceThreshold: 0.3,
		PowerUserActiveDays:          2,
	}
	handler := server.NewHandler(engine, params, 10, metrics)
	srv := server.New(handler, metrics, cfg)
	return httptest.NewServer(srv)
}

// sendRequest performs one HTTP request against the test server and
// returns the raw response.
func sendRequest(t *testing.T, ts *httptest.Server, method, path string, body io.Reader, headers map[string]string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, ts.URL+path, body)
	require.NoError(t, err)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	return resp
}

// ingestExport uploads the shared NDJSON fixture and asserts success.
func ingestExport(t *testing.T, ts *httptest.Server, headers map[string]string) {
	t.Helper()

	resp := sendRequest(t, ts, http.MethodPost, ingestPath, strings.NewReader(usageExport), headers)
	defer closeBody(resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

// decodeJSON reads the response body into v.
func decodeJSON(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, v), "body: %s", string(body))
}

// closeBody is a helper to close response body in defer statements.
func closeBody(resp *http.Response) {
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
}
