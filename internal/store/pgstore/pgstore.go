// Package pgstore stores posts in PostgreSQL.
//
// The schema is embedded and applied with goose when the store is opened,
// so a fresh database is usable straight away.
package pgstore

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/LarissaMorrell/blog-app-mongoose-challenge-solution/internal/blog"
)

//go:embed schema/*.sql
var schemaFS embed.FS

const postColumns = `id, author_first_name, author_last_name, title, content, created`

type Config struct {
	MaxConnections int32
	MinConnections int32
	ConnectTimeout time.Duration
	Logger         *slog.Logger
}

type Store struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
	now    func() time.Time
}

// New creates a connection pool, pings the database and applies the schema migrations
func New(ctx context.Context, databaseURL string, cfg Config) (*Store, error) {
	poolConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	if cfg.MaxConnections > 0 {
		poolConfig.MaxConns = cfg.MaxConnections
	}
	poolConfig.MinConns = cfg.MinConnections
	if cfg.ConnectTimeout > 0 {
		poolConfig.ConnConfig.ConnectTimeout = cfg.ConnectTimeout
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error pinging database via pool: %w", err)
	}

	l := cfg.Logger
	if l == nil {
		l = slog.Default()
	}

	if err := runMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	l.Info("connected to PostgreSQL", slog.String("database", poolConfig.ConnConfig.Database))

	return &Store{pool: pool, logger: l, now: time.Now}, nil
}

// runMigrations applies all pending goose migrations from the embedded schema directory
func runMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	// Convert pgx pool to database/sql interface that Goose expects
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	goose.SetBaseFS(schemaFS)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "schema"); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

func (s *Store) ListPosts(ctx context.Context) ([]blog.Post, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+postColumns+` FROM blog_posts ORDER BY created DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	posts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (blog.Post, error) {
		return scanPost(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read posts: %w", err)
	}
	return posts, nil
}

func (s *Store) GetPost(ctx context.Context, id string) (blog.Post, error) {
	postID, err := uuid.Parse(id)
	if err != nil {
		return blog.Post{}, notFound(id)
	}

	row := s.pool.QueryRow(ctx, `SELECT `+postColumns+` FROM blog_posts WHERE id = $1`, postID)
	p, err := scanPost(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return blog.Post{}, notFound(id)
		}
		return blog.Post{}, fmt.Errorf("failed to get post %s: %w", id, err)
	}
	return p, nil
}

func (s *Store) CreatePost(ctx context.Context, newPost blog.NewPost) (blog.Post, error) {
	p := newPost.ToPost(uuid.NewString(), s.now())

	_, err := s.pool.Exec(ctx,
		`INSERT INTO blog_posts (`+postColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.Author.FirstName, p.Author.LastName, p.Title, p.Content, p.Created,
	)
	if err != nil {
		return blog.Post{}, fmt.Errorf("failed to create post: %w", err)
	}
	return p, nil
}

// InsertPosts bulk loads the posts with COPY; it returns after the copy has committed.
func (s *Store) InsertPosts(ctx context.Context, newPosts []blog.NewPost) ([]blog.Post, error) {
	if len(newPosts) == 0 {
		return nil, nil
	}

	now := s.now()
	posts := make([]blog.Post, 0, len(newPosts))
	rows := make([][]any, 0, len(newPosts))
	for _, np := range newPosts {
		id := uuid.New()
		p := np.ToPost(id.String(), now)
		posts = append(posts, p)
		rows = append(rows, []any{id, p.Author.FirstName, p.Author.LastName, p.Title, p.Content, p.Created})
	}

	_, err := s.pool.CopyFrom(ctx,
		pgx.Identifier{"blog_posts"},
		[]string{"id", "author_first_name", "author_last_name", "title", "content", "created"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert posts: %w", err)
	}
	return posts, nil
}

// UpdatePost overwrites the supplied fields; NULL parameters keep the current column value
func (s *Store) UpdatePost(ctx context.Context, id string, update blog.PostUpdate) (blog.Post, error) {
	postID, err := uuid.Parse(id)
	if err != nil {
		return blog.Post{}, notFound(id)
	}

	var firstName, lastName *string
	if update.Author != nil {
		firstName = &update.Author.FirstName
		lastName = &update.Author.LastName
	}
	var created *time.Time
	if update.Created != nil {
		c := blog.NormalizeTime(*update.Created)
		created = &c
	}

	row := s.pool.QueryRow(ctx, `
		UPDATE blog_posts SET
			author_first_name = COALESCE($2, author_first_name),
			author_last_name = COALESCE($3, author_last_name),
			title = COALESCE($4, title),
			content = COALESCE($5, content),
			created = COALESCE($6, created)
		WHERE id = $1
		RETURNING `+postColumns,
		postID, firstName, lastName, update.Title, update.Content, created,
	)

	p, err := scanPost(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return blog.Post{}, notFound(id)
		}
		return blog.Post{}, fmt.Errorf("failed to update post %s: %w", id, err)
	}
	return p, nil
}

func (s *Store) DeletePost(ctx context.Context, id string) error {
	postID, err := uuid.Parse(id)
	if err != nil {
		return notFound(id)
	}

	tag, err := s.pool.Exec(ctx, `DELETE FROM blog_posts WHERE id = $1`, postID)
	if err != nil {
		return fmt.Errorf("failed to delete post %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return notFound(id)
	}
	return nil
}

func (s *Store) CountPosts(ctx context.Context) (int64, error) {
	var count int64
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM blog_posts`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return count, nil
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return blog.WrapStoreUnavailableError(err, "PostgreSQL ping failed")
	}
	return nil
}

// Reset truncates the posts table (the schema is kept)
func (s *Store) Reset(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, `TRUNCATE TABLE blog_posts`); err != nil {
		return fmt.Errorf("failed to truncate blog_posts: %w", err)
	}
	return nil
}

func (s *Store) Close(ctx context.Context) error {
	s.pool.Close()
	s.logger.Info("database connection closed")
	return nil
}

func notFound(id string) error {
	return blog.NewNotFoundError(fmt.Sprintf("post %s not found", id))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(row rowScanner) (blog.Post, error) {
	var (
		id uuid.UUID
		p  blog.Post
	)
	if err := row.Scan(&id, &p.Author.FirstName, &p.Author.LastName, &p.Title, &p.Content, &p.Created); err != nil {
		return blog.Post{}, err
	}
	p.ID = id.String()
	p.Created = p.Created.UTC()
	return p, nil
}
