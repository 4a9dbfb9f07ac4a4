package contract

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LarissaMorrell/blog-app-mongoose-challenge-solution/internal/blog"
	"github.com/LarissaMorrell/blog-app-mongoose-challenge-solution/internal/client"
	"github.com/LarissaMorrell/blog-app-mongoose-challenge-solution/internal/config"
	"github.com/LarissaMorrell/blog-app-mongoose-challenge-solution/internal/server"
	"github.com/LarissaMorrell/blog-app-mongoose-challenge-solution/internal/store/memstore"
)

func testServer(s *memstore.Store) http.Handler {
	cfg := &config.ServerEnvironment{
		Environment:         "test",
		RequestTimeout:      5 * time.Second,
		MaxRequestBodyBytes: 1 << 16,
		DatabasePingTimeout: time.Second,
	}
	return server.NewServer(s, cfg, slog.New(slog.DiscardHandler)).Router()
}

func newHarness(t *testing.T) (*client.Client, *StoreFixture, *memstore.Store) {
	t.Helper()

	s := memstore.New()
	ts := httptest.NewServer(testServer(s))
	t.Cleanup(ts.Close)

	c, err := client.New(ts.URL)
	require.NoError(t, err)

	return c, &StoreFixture{Store: s, Logger: slog.New(slog.DiscardHandler)}, s
}

func TestRunAllChecksPass(t *testing.T) {
	c, fixture, s := newHarness(t)

	var out bytes.Buffer
	results := Run(context.Background(), c, fixture, nil, &ConsoleLogger{Out: &out})

	for _, f := range results.Failures {
		t.Errorf("%s: %v", f.CheckID, f.Errors)
	}
	assert.True(t, results.OK())
	assert.Len(t, results.Checks, len(Checks()))

	// every check tears down after itself
	count, err := s.CountPosts(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)

	assert.Contains(t, out.String(), "PASSED: update/scenario")
}

func TestRunWithFilters(t *testing.T) {
	c, fixture, _ := newHarness(t)

	var sel CheckSelector
	require.NoError(t, sel.Include.Set("^list/"))
	require.NoError(t, sel.Exclude.Set("fields"))

	results := Run(context.Background(), c, fixture, sel.Selects, nil)
	require.True(t, results.OK())

	passed, failed, skipped := results.Counts()
	assert.Equal(t, 2, passed)
	assert.Zero(t, failed)
	assert.Equal(t, len(Checks())-2, skipped)
	assert.Contains(t, sel.Describe(), `"^list/"`)
}

func TestPatternListRejectsBadPattern(t *testing.T) {
	var l PatternList
	assert.Error(t, l.Set("("))
	assert.True(t, l.Empty())
}

func TestCheckSelector(t *testing.T) {
	var sel CheckSelector
	assert.True(t, sel.Selects(CheckID{Name: "update/scenario"}))
	assert.Empty(t, sel.Describe())

	require.NoError(t, sel.Include.Set("^update/"))
	require.NoError(t, sel.Exclude.Set("scenario"))

	assert.True(t, sel.Selects(CheckID{Name: "update/partial"}))
	assert.False(t, sel.Selects(CheckID{Name: "update/scenario"}))
	assert.False(t, sel.Selects(CheckID{Name: "list/fields"}))
	assert.Equal(t, "  only checks matching \"^update/\"\n  no checks matching \"scenario\"", sel.Describe())
}

// a service that ignores updates must fail the update checks
func TestRunDetectsBrokenService(t *testing.T) {
	s := memstore.New()
	api := testServer(s)

	broken := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{}`))
			return
		}
		api.ServeHTTP(w, r)
	})

	ts := httptest.NewServer(broken)
	t.Cleanup(ts.Close)
	c, err := client.New(ts.URL)
	require.NoError(t, err)
	fixture := &StoreFixture{Store: s, Logger: slog.New(slog.DiscardHandler)}

	var sel CheckSelector
	require.NoError(t, sel.Include.Set("^update/"))

	results := Run(context.Background(), c, fixture, sel.Selects, nil)
	assert.False(t, results.OK())
	assert.Error(t, results.Err())

	var failedNames []string
	for _, f := range results.Failures {
		failedNames = append(failedNames, f.CheckID.String())
	}
	assert.Contains(t, failedNames, "update/partial")
	assert.Contains(t, failedNames, "update/scenario")

	var out bytes.Buffer
	PrintResults(&out, results)
	assert.Contains(t, out.String(), "FAILED CHECKS:")
}

// failingFixture inserts part of the seed data before failing, and counts teardowns
type failingFixture struct {
	*StoreFixture
	teardowns int
}

func (f *failingFixture) Seed(ctx context.Context) ([]blog.Post, error) {
	if _, err := f.Store.InsertPosts(ctx, []blog.NewPost{{
		Author:  blog.Author{FirstName: "Half", LastName: "Seeded"},
		Title:   "left behind",
		Content: "inserted before the failure",
	}}); err != nil {
		return nil, err
	}
	return nil, errors.New("store offline")
}

func (f *failingFixture) Teardown(ctx context.Context) error {
	f.teardowns++
	return f.StoreFixture.Teardown(ctx)
}

func TestRunReportsSeedFailure(t *testing.T) {
	c, fixture, _ := newHarness(t)

	var sel CheckSelector
	require.NoError(t, sel.Include.Set("^isolation$"))

	results := Run(context.Background(), c, &failingFixture{StoreFixture: fixture}, sel.Selects, nil)
	require.Len(t, results.Failures, 1)
	assert.ErrorContains(t, results.Failures[0].Errors[0], "store offline")
}

func TestRunTearsDownAfterFailedSeed(t *testing.T) {
	c, fixture, s := newHarness(t)
	failing := &failingFixture{StoreFixture: fixture}

	results := Run(context.Background(), c, failing, nil, nil)

	assert.Len(t, results.Failures, len(Checks()))
	assert.Equal(t, len(Checks()), failing.teardowns)

	count, err := s.CountPosts(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count, "partially seeded data survived the run")
}

func TestTRecoversUnexpectedPanic(t *testing.T) {
	ct := &T{id: CheckID{Name: "panics"}, logger: nullLogger{}}
	ct.run(func(*T) { panic("boom") })

	assert.True(t, ct.failed)
	require.Len(t, ct.errors, 1)
	assert.Contains(t, ct.errors[0].Error(), "boom")
}
