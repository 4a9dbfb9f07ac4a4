// Package seed populates a store with synthetic posts and wipes it again.
//
// Seed and Teardown both block until the store has finished, so a test body
// never runs against a partially seeded store and the next test never sees
// residue from the previous one.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/LarissaMorrell/blog-app-mongoose-challenge-solution/internal/blog"
)

// DefaultCount is the number of posts seeded before each test
const DefaultCount = 10

// Inserter is the part of the store used for seeding
type Inserter interface {
	InsertPosts(ctx context.Context, newPosts []blog.NewPost) ([]blog.Post, error)
}

// Resetter is the part of the store used for teardown
type Resetter interface {
	Reset(ctx context.Context) error
}

type options struct {
	seed   uint64
	now    func() time.Time
	logger *slog.Logger
}

type Option func(*options)

// WithSeed makes the generated data reproducible. 0 (the default) uses a random seed.
func WithSeed(seed uint64) Option {
	return func(o *options) { o.seed = seed }
}

// WithNow sets the reference time used to backdate the created timestamps
func WithNow(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

func newOptions(opts []Option) *options {
	o := &options{
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// GeneratePost returns a post with a random author name, a one sentence title,
// a paragraph of content and a created time within the year before now.
func GeneratePost(f *gofakeit.Faker, now time.Time) blog.NewPost {
	created := f.DateRange(now.AddDate(-1, 0, 0), now.Add(-time.Second))

	return blog.NewPost{
		Author: blog.Author{
			FirstName: f.FirstName(),
			LastName:  f.LastName(),
		},
		Title:   f.LoremIpsumSentence(f.IntRange(3, 8)),
		Content: f.LoremIpsumParagraph(1, f.IntRange(3, 6), f.IntRange(6, 12), " "),
		Created: &created,
	}
}

// GeneratePosts returns n generated posts
func GeneratePosts(n int, opts ...Option) []blog.NewPost {
	o := newOptions(opts)
	f := gofakeit.New(o.seed)
	now := o.now()

	posts := make([]blog.NewPost, 0, n)
	for range n {
		posts = append(posts, GeneratePost(f, now))
	}
	return posts
}

// Seed inserts n generated posts and returns them as stored
func Seed(ctx context.Context, s Inserter, n int, opts ...Option) ([]blog.Post, error) {
	if n < 1 {
		return nil, fmt.Errorf("seed count must be at least 1, got %d", n)
	}

	o := newOptions(opts)
	o.logger.Info("seeding blog post data", slog.Int("count", n))

	posts, err := s.InsertPosts(ctx, GeneratePosts(n, opts...))
	if err != nil {
		return nil, fmt.Errorf("failed to seed posts: %w", err)
	}
	if len(posts) != n {
		return nil, fmt.Errorf("seeded %d posts, expected %d", len(posts), n)
	}
	return posts, nil
}

// Teardown removes all data from the store
func Teardown(ctx context.Context, s Resetter, opts ...Option) error {
	o := newOptions(opts)
	o.logger.Warn("deleting database")

	if err := s.Reset(ctx); err != nil {
		return fmt.Errorf("failed to tear down store: %w", err)
	}
	return nil
}
