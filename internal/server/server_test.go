package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LarissaMorrell/blog-app-mongoose-challenge-solution/internal/blog"
	"github.com/LarissaMorrell/blog-app-mongoose-challenge-solution/internal/config"
	"github.com/LarissaMorrell/blog-app-mongoose-challenge-solution/internal/seed"
	"github.com/LarissaMorrell/blog-app-mongoose-challenge-solution/internal/store/memstore"
)

func testConfig() *config.ServerEnvironment {
	return &config.ServerEnvironment{
		Environment:           "test",
		Host:                  "127.0.0.1",
		ServerShutdownTimeout: 5 * time.Second,
		ReadTimeout:           5 * time.Second,
		WriteTimeout:          5 * time.Second,
		IdleTimeout:           5 * time.Second,
		RequestTimeout:        5 * time.Second,
		RateLimitRPS:          0,
		MaxRequestBodyBytes:   1024,
		DatabasePingTimeout:   time.Second,
		DatabaseURL:           "memory://",
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestRoutes(t *testing.T) {
	s := memstore.New()
	posts, err := seed.Seed(context.Background(), s, seed.DefaultCount, seed.WithLogger(quietLogger()))
	require.NoError(t, err)

	ts := httptest.NewServer(NewServer(s, testConfig(), quietLogger()).Router())
	t.Cleanup(ts.Close)

	tests := []struct {
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{http.MethodGet, "/health/live", "", http.StatusOK},
		{http.MethodGet, "/health/ready", "", http.StatusOK},
		{http.MethodGet, "/version", "", http.StatusOK},
		{http.MethodGet, "/posts", "", http.StatusOK},
		{http.MethodGet, "/posts/" + posts[0].ID, "", http.StatusOK},
		{http.MethodPut, "/posts/" + posts[0].ID, `{"title":"updated"}`, http.StatusOK},
		{http.MethodPost, "/posts", `{"author":{"firstName":"A","lastName":"B"},"title":"t","content":"c"}`, http.StatusCreated},
		{http.MethodDelete, "/posts/" + posts[1].ID, "", http.StatusNoContent},
		{http.MethodGet, "/posts/" + posts[1].ID, "", http.StatusNotFound},
		{http.MethodPatch, "/posts/" + posts[0].ID, `{}`, http.StatusMethodNotAllowed},
		{http.MethodGet, "/nothing-here", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, ts.URL+tt.path, strings.NewReader(tt.body))
			require.NoError(t, err)

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
		})
	}
}

func TestErrorResponseCarriesRequestID(t *testing.T) {
	ts := httptest.NewServer(NewServer(memstore.New(), testConfig(), quietLogger()).Router())
	t.Cleanup(ts.Close)

	resp, err := http.Get(ts.URL + "/posts/missing")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	var errResp blog.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
	assert.NotEmpty(t, errResp.RequestID)
	assert.Equal(t, http.MethodGet, errResp.HTTPMethod)
	assert.Equal(t, "/posts/missing", errResp.RequestURI)
	assert.Equal(t, "Not Found", errResp.StatusCodeText)
}

func TestReadinessWhenStoreClosed(t *testing.T) {
	s := memstore.New()
	require.NoError(t, s.Close(context.Background()))

	ts := httptest.NewServer(NewServer(s, testConfig(), quietLogger()).Router())
	t.Cleanup(ts.Close)

	resp, err := http.Get(ts.URL + "/health/ready")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestStartAndGracefulShutdown(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())

	cfg := testConfig()
	cfg.Port = port
	srv := NewServer(memstore.New(), cfg, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Start(ctx) }()

	liveURL := fmt.Sprintf("http://127.0.0.1:%d/health/live", port)
	require.Eventually(t, func() bool {
		resp, err := http.Get(liveURL)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 50*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}

	srv.DatabaseShutdown()
}
