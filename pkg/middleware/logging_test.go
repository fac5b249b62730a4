package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessLogLevel(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		status int
		want   slog.Level
	}{
		{"page ok", "/books", http.StatusOK, slog.LevelInfo},
		{"client error", "/books/nope", http.StatusNotFound, slog.LevelWarn},
		{"server error", "/cart", http.StatusBadGateway, slog.LevelError},
		{"liveness probe", "/health/live", http.StatusOK, slog.LevelDebug},
		{"metrics scrape", "/metrics", http.StatusOK, slog.LevelDebug},
		{"stylesheet", "/static/site.css", http.StatusOK, slog.LevelDebug},
		{"failing probe", "/health/ready", http.StatusServiceUnavailable, slog.LevelError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, accessLogLevel(tc.path, tc.status))
		})
	}
}

func TestRequestLogging_EchoesCorrelationID(t *testing.T) {
	l := slog.New(slog.NewJSONHandler(io.Discard, nil))
	h := RequestLogging(l)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/books", nil)
	req.Header.Set("X-Correlation-ID", "corr-42")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "corr-42", rec.Header().Get("X-Correlation-ID"))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRequestLogging_GeneratesCorrelationID(t *testing.T) {
	l := slog.New(slog.NewJSONHandler(io.Discard, nil))
	h := RequestLogging(l)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotEmpty(t, rec.Header().Get("X-Correlation-ID"))
}
