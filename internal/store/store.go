// Package store defines the post store used by the API and the test harnesses,
// and opens the backend named by the DATABASE_URL scheme:
//
//	mongodb://, mongodb+srv://   MongoDB (mongostore)
//	postgres://, postgresql://   PostgreSQL (pgstore)
//	memory://                    in-process map (memstore)
package store

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/LarissaMorrell/blog-app-mongoose-challenge-solution/internal/blog"
	"github.com/LarissaMorrell/blog-app-mongoose-challenge-solution/internal/store/memstore"
	"github.com/LarissaMorrell/blog-app-mongoose-challenge-solution/internal/store/mongostore"
	"github.com/LarissaMorrell/blog-app-mongoose-challenge-solution/internal/store/pgstore"
)

// Store holds blog posts.
//
// Lookups by an identifier the backend can not parse return a not found error,
// as such an id can not reference a stored post.
type Store interface {
	ListPosts(ctx context.Context) ([]blog.Post, error)
	GetPost(ctx context.Context, id string) (blog.Post, error)
	CreatePost(ctx context.Context, newPost blog.NewPost) (blog.Post, error)

	// InsertPosts stores all posts before returning
	InsertPosts(ctx context.Context, newPosts []blog.NewPost) ([]blog.Post, error)

	UpdatePost(ctx context.Context, id string, update blog.PostUpdate) (blog.Post, error)
	DeletePost(ctx context.Context, id string) error
	CountPosts(ctx context.Context) (int64, error)
	Ping(ctx context.Context) error

	// Reset removes all stored data
	Reset(ctx context.Context) error

	Close(ctx context.Context) error
}

var (
	_ Store = (*memstore.Store)(nil)
	_ Store = (*mongostore.Store)(nil)
	_ Store = (*pgstore.Store)(nil)
)

type Options struct {
	MaxConnections int32
	MinConnections int32
	ConnectTimeout time.Duration
	Logger         *slog.Logger
}

// Open connects to the store named by databaseURL.
// Connections are verified before Open returns, so a store that can't be reached is reported immediately.
func Open(ctx context.Context, databaseURL string, opts Options) (Store, error) {
	u, err := url.Parse(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid database URL: %w", err)
	}

	switch u.Scheme {
	case "mongodb", "mongodb+srv":
		return mongostore.New(ctx, databaseURL, mongostore.Config{
			MaxPoolSize:    uint64(max(opts.MaxConnections, 0)),
			MinPoolSize:    uint64(max(opts.MinConnections, 0)),
			ConnectTimeout: opts.ConnectTimeout,
			Logger:         opts.Logger,
		})
	case "postgres", "postgresql":
		return pgstore.New(ctx, databaseURL, pgstore.Config{
			MaxConnections: opts.MaxConnections,
			MinConnections: opts.MinConnections,
			ConnectTimeout: opts.ConnectTimeout,
			Logger:         opts.Logger,
		})
	case "memory":
		return memstore.New(), nil
	default:
		return nil, fmt.Errorf("unsupported database URL scheme %q (use mongodb, postgres or memory)", u.Scheme)
	}
}

// Backend returns the backend name for a database URL, for logging
func Backend(databaseURL string) string {
	u, err := url.Parse(databaseURL)
	if err != nil {
		return "unknown"
	}
	return u.Scheme
}
