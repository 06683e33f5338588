package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sysglance/internal/config"
	"sysglance/internal/logger"
	"sysglance/internal/stats"
	"sysglance/internal/transport/rest/middleware"
)

type stubStatusService struct {
	snap *stats.Snapshot
	err  error
}

func (s *stubStatusService) GetOrRefresh(ctx context.Context) (*stats.Snapshot, error) {
	return s.snap, s.err
}

func newTestRouter(svc StatusService) http.Handler {
	cfg := &config.Config{Address: ":0", TTLSeconds: 10}
	handler := NewStatusHandler(svc, cfg.TTLSeconds, logger.Noop())

	return NewRouter(cfg, logger.Noop(), &RouterDeps{Status: handler})
}

func TestPageServed(t *testing.T) {
	router := newTestRouter(&stubStatusService{snap: pageSnapshot()})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "public, max-age=10", rec.Header().Get("Cache-Control"))
	assert.Contains(t, rec.Body.String(), "web-01")
}

func TestPageRequestID(t *testing.T) {
	router := newTestRouter(&stubStatusService{snap: pageSnapshot()})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))

	// An upstream-supplied id is passed through.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.RequestIDHeader, "upstream-id")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, "upstream-id", rec.Header().Get(middleware.RequestIDHeader))
}

func TestPageSamplerFailure(t *testing.T) {
	router := newTestRouter(&stubStatusService{err: stats.ErrUnreadable})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHealthIndependentOfSampler(t *testing.T) {
	// Liveness must hold even while every sample fails.
	router := newTestRouter(&stubStatusService{err: stats.ErrUnreadable})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestUnknownPathNotFound(t *testing.T) {
	router := newTestRouter(&stubStatusService{snap: pageSnapshot()})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPostMethodNotAllowed(t *testing.T) {
	router := newTestRouter(&stubStatusService{snap: pageSnapshot()})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	cfg := &config.Config{Address: ":0", TTLSeconds: 10, AllowedOrigins: []string{"https://ok.example"}}
	handler := NewStatusHandler(&stubStatusService{snap: pageSnapshot()}, cfg.TTLSeconds, logger.Noop())
	router := NewRouter(cfg, logger.Noop(), &RouterDeps{Status: handler})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://ok.example")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, "https://ok.example", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
