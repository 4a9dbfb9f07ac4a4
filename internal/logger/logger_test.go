package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"none", LevelNone},
		{" off ", LevelNone},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLogLevel(tt.in))
		})
	}
}

func TestContextRequestLoggerFallsBackToDefault(t *testing.T) {
	assert.Same(t, slog.Default(), ContextRequestLogger(context.Background()))

	l := slog.New(slog.DiscardHandler)
	ctx := ContextWithRequestLogger(context.Background(), l)
	assert.Same(t, l, ContextRequestLogger(ctx))
}

func TestContextWithLogAttrsOutsideMiddleware(t *testing.T) {
	// must not panic when there is no attribute holder
	ContextWithLogAttrs(context.Background(), slog.String("k", "v"))
	assert.Empty(t, contextLogAttrs(context.Background()))
}

func TestRequestLogging(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(RequestLogging(base))
	router.Get("/posts/{id}", func(w http.ResponseWriter, r *http.Request) {
		ContextRequestLogger(r.Context()).Debug("handler called")
		ContextWithLogAttrs(r.Context(), slog.String("post_id", chi.URLParam(r, "id")))
		w.WriteHeader(http.StatusNotFound)
	})

	req := httptest.NewRequest(http.MethodGet, "/posts/abc", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var handlerLine map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &handlerLine))
	assert.Equal(t, "handler called", handlerLine["msg"])
	assert.Equal(t, "/posts/abc", handlerLine["path"])
	assert.NotEmpty(t, handlerLine["request_id"])

	var completed map[string]any
	require.NoError(t, json.Unmarshal(lines[1], &completed))
	assert.Equal(t, "Request completed", completed["msg"])
	assert.Equal(t, "WARN", completed["level"])
	assert.Equal(t, float64(http.StatusNotFound), completed["status"])
	assert.Equal(t, "abc", completed["post_id"])
}
