package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"niftycli/internal/analysis"
	"niftycli/internal/config"
	"niftycli/internal/errors"
	"niftycli/internal/services"
)

const handlerCSV = `SYMBOL,%CHNG,LTP,52W H,52W L,30 D   %CHNG
ALPHA,2.50,100.00,120.00,80.00,5.00
BRAVO,-1.25,50.00,60.00,45.00,-3.00
`

func newTestRouter(t *testing.T, withData bool) chi.Router {
	t.Helper()

	paths := config.PathsFor(t.TempDir())
	require.NoError(t, paths.EnsureDirectories())

	if withData {
		require.NoError(t, os.WriteFile(paths.GetDownloadPath("equities.csv"), []byte(handlerCSV), 0o644))
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := services.NewSummaryService(paths, config.Default().Analysis, logger)
	handler := NewSummaryHandler(service, logger, errors.NewErrorHandler(logger))

	r := chi.NewRouter()
	r.Mount("/api/summary", handler.Routes())
	return r
}

func TestGetSummary(t *testing.T) {
	router := newTestRouter(t, true)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/summary", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var summary analysis.MarketSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	require.NotEmpty(t, summary.TopGainers)
	assert.Equal(t, "ALPHA", summary.TopGainers[0].Symbol)
	assert.Equal(t, "BRAVO", summary.TopLosers[0].Symbol)
}

func TestGetSummary_NoData(t *testing.T) {
	router := newTestRouter(t, false)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/summary", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)

	var apiErr errors.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Equal(t, "DATA_NOT_FOUND", apiErr.ErrorCode)
}

func TestGetExtract(t *testing.T) {
	router := newTestRouter(t, true)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/summary/top_gainers", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body extractResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "top_gainers", body.Name)
	assert.Equal(t, "Top Gainers", body.Title)
	require.NotEmpty(t, body.Records)
	assert.Equal(t, "ALPHA", body.Records[0].Symbol)
}

func TestGetExtract_EmptyIsNotNull(t *testing.T) {
	router := newTestRouter(t, true)

	// Neither test row trades at or under 70% of its 52-week high.
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/summary/below_52w_high", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"records":[]`)
}

func TestGetExtract_Unknown(t *testing.T) {
	router := newTestRouter(t, true)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/summary/top_widgets", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)

	var apiErr errors.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	assert.Equal(t, "EXTRACT_NOT_FOUND", apiErr.ErrorCode)
	assert.Equal(t, "top_widgets", apiErr.Details)
}
