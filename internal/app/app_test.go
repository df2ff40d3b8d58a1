package app

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"niftycli/internal/config"
)

const appCSV = `SYMBOL,%CHNG,LTP,52W H,52W L,30 D   %CHNG
ALPHA,2.50,100.00,150.00,80.00,5.00
BRAVO,-1.25,50.00,120.00,45.00,-3.00
`

func newTestApp(t *testing.T) *Application {
	t.Helper()

	paths := config.PathsFor(t.TempDir())
	require.NoError(t, paths.EnsureDirectories())
	require.NoError(t, os.WriteFile(paths.GetDownloadPath("equities.csv"), []byte(appCSV), 0o644))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewApplicationWith(config.Default(), paths, logger)
}

func TestRouter_Summary(t *testing.T) {
	a := newTestApp(t)

	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/summary", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.Contains(t, rec.Body.String(), "ALPHA")
}

func TestRouter_Health(t *testing.T) {
	a := newTestApp(t)

	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, VERSION, body["version"])
}

func TestRouter_Version(t *testing.T) {
	a := newTestApp(t)

	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/version", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), VERSION)
}

func TestRouter_Metrics(t *testing.T) {
	a := newTestApp(t)

	// Drive one summary request so both the HTTP and pipeline metrics have
	// something to report.
	a.Router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/summary", nil))

	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "niftycli_http_requests_total")
	assert.Contains(t, rec.Body.String(), "niftycli_pipeline_loads_total 1")
	assert.Contains(t, rec.Body.String(), "niftycli_pipeline_rows_dropped_total")
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestRouter_RateLimit(t *testing.T) {
	paths := config.PathsFor(t.TempDir())
	require.NoError(t, paths.EnsureDirectories())

	cfg := config.Default()
	cfg.Server.RateLimitRPS = 1
	cfg.Server.RateLimitBurst = 1

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	a := NewApplicationWith(cfg, paths, logger)

	first := httptest.NewRecorder()
	a.Router.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.Equal(t, http.StatusOK, first.Code)

	// Burst of 1 exhausted, second immediate request is rejected.
	second := httptest.NewRecorder()
	a.Router.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Contains(t, second.Body.String(), "RATE_LIMIT_EXCEEDED")
}

func TestRouter_RateLimitDisabledByDefault(t *testing.T) {
	a := newTestApp(t)

	for i := 0; i < 10; i++ {
		rec := httptest.NewRecorder()
		a.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	a := newTestApp(t)

	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
