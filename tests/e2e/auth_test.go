//go:build e2e

package e2e

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aipulse/internal/server"
)

func TestMasterKeyAuth_E2E(t *testing.T) {
	ts := startServer(t, &server.Config{
		MasterKey:       testMasterKey,
		MetricsEnabled:  true,
		MetricsEndpoint: metricsPath,
	})
	defer ts.Close()

	t.Run("api rejects missing credentials", func(t *testing.T) {
		resp := sendRequest(t, ts, http.MethodGet, reportPath+"/totals", nil, nil)
		defer closeBody(resp)
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		var body struct {
			Error struct {
				Type string `json:"type"`
			} `json:"error"`
		}
		decodeJSON(t, resp, &body)
		assert.Equal(t, "authentication_error", body.Error.Type)
	})

	t.Run("api rejects wrong key", func(t *testing.T) {
		resp := sendRequest(t, ts, http.MethodGet, reportPath+"/totals", nil,
			map[string]string{"Authorization": "Bearer nope"})
		defer closeBody(resp)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("api accepts the master key", func(t *testing.T) {
		ingestExport(t, ts, map[string]string{"Authorization": "Bearer " + testMasterKey})

		resp := sendRequest(t, ts, http.MethodGet, reportPath+"/totals", nil,
			map[string]string{"Authorization": "Bearer " + testMasterKey})
		defer closeBody(resp)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("health stays public", func(t *testing.T) {
		resp := sendRequest(t, ts, http.MethodGet, healthPath, nil, nil)
		defer closeBody(resp)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("metrics stay public", func(t *testing.T) {
		resp := sendRequest(t, ts, http.MethodGet, metricsPath, nil, nil)
		defer closeBody(resp)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestOpenServerNeedsNoAuth_E2E(t *testing.T) {
	ts := startServer(t, &server.Config{})
	defer ts.Close()

	resp := sendRequest(t, ts, http.MethodGet, reportPath+"/totals", nil, nil)
	defer closeBody(resp)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
