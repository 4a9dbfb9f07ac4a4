package seed

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LarissaMorrell/blog-app-mongoose-challenge-solution/internal/blog"
	"github.com/LarissaMorrell/blog-app-mongoose-challenge-solution/internal/store/memstore"
)

var quiet = WithLogger(slog.New(slog.DiscardHandler))

func TestGeneratePostsAreValidAndPastDated(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	posts := GeneratePosts(50, WithNow(func() time.Time { return now }))
	require.Len(t, posts, 50)

	for _, p := range posts {
		require.NoError(t, p.Validate())
		require.NotNil(t, p.Created)
		assert.True(t, p.Created.Before(now), "created %s is not before %s", p.Created, now)
		assert.True(t, p.Created.After(now.AddDate(-1, 0, -1)))
	}
}

func TestGeneratePostsWithSeedIsReproducible(t *testing.T) {
	now := func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }

	a := GeneratePosts(5, WithSeed(42), WithNow(now))
	b := GeneratePosts(5, WithSeed(42), WithNow(now))
	assert.Equal(t, a, b)
}

func TestSeedAndTeardown(t *testing.T) {
	ctx := context.Background()
	s := memstore.New()

	posts, err := Seed(ctx, s, DefaultCount, quiet)
	require.NoError(t, err)
	assert.Len(t, posts, DefaultCount)

	count, err := s.CountPosts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(DefaultCount), count)

	require.NoError(t, Teardown(ctx, s, quiet))

	count, err = s.CountPosts(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSeedRejectsZeroCount(t *testing.T) {
	_, err := Seed(context.Background(), memstore.New(), 0, quiet)
	assert.Error(t, err)
}

type failingStore struct{}

func (failingStore) InsertPosts(context.Context, []blog.NewPost) ([]blog.Post, error) {
	return nil, errors.New("insert failed")
}

func (failingStore) Reset(context.Context) error { return errors.New("drop failed") }

func TestSeedAndTeardownPropagateErrors(t *testing.T) {
	_, err := Seed(context.Background(), failingStore{}, 3, quiet)
	assert.ErrorContains(t, err, "insert failed")

	err = Teardown(context.Background(), failingStore{}, quiet)
	assert.ErrorContains(t, err, "drop failed")
}
