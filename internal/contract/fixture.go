package contract

import (
	"context"
	"log/slog"

	"github.com/LarissaMorrell/blog-app-mongoose-challenge-solution/internal/blog"
	"github.com/LarissaMorrell/blog-app-mongoose-challenge-solution/internal/seed"
)

// Fixture gives the checks direct access to the store behind the service,
// so API responses can be compared with what is actually stored.
type Fixture interface {
	Seed(ctx context.Context) ([]blog.Post, error)
	Teardown(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
	Get(ctx context.Context, id string) (blog.Post, error)
}

// FixtureStore is the part of store.Store a StoreFixture uses
type FixtureStore interface {
	seed.Inserter
	seed.Resetter
	CountPosts(ctx context.Context) (int64, error)
	GetPost(ctx context.Context, id string) (blog.Post, error)
}

// StoreFixture seeds a store with generated posts and wipes it on teardown
type StoreFixture struct {
	Store FixtureStore

	// SeedCount defaults to seed.DefaultCount
	SeedCount int

	Logger *slog.Logger
}

func (f *StoreFixture) Seed(ctx context.Context) ([]blog.Post, error) {
	n := f.SeedCount
	if n == 0 {
		n = seed.DefaultCount
	}
	return seed.Seed(ctx, f.Store, n, f.options()...)
}

func (f *StoreFixture) Teardown(ctx context.Context) error {
	return seed.Teardown(ctx, f.Store, f.options()...)
}

func (f *StoreFixture) Count(ctx context.Context) (int64, error) {
	return f.Store.CountPosts(ctx)
}

func (f *StoreFixture) Get(ctx context.Context, id string) (blog.Post, error) {
	return f.Store.GetPost(ctx, id)
}

func (f *StoreFixture) options() []seed.Option {
	if f.Logger == nil {
		return nil
	}
	return []seed.Option{seed.WithLogger(f.Logger)}
}
