// Package memstore is an in-process post store.
//
// It backs the handler tests and `DATABASE_URL=memory://` development runs;
// nothing is persisted across restarts.
package memstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/LarissaMorrell/blog-app-mongoose-challenge-solution/internal/blog"
)

type Store struct {
	mu     sync.RWMutex
	posts  map[string]blog.Post
	closed bool
	now    func() time.Time
}

func New() *Store {
	return &Store{
		posts: make(map[string]blog.Post),
		now:   time.Now,
	}
}

func (s *Store) ListPosts(ctx context.Context) ([]blog.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	posts := make([]blog.Post, 0, len(s.posts))
	for _, p := range s.posts {
		posts = append(posts, p)
	}
	blog.SortNewestFirst(posts)
	return posts, nil
}

func (s *Store) GetPost(ctx context.Context, id string) (blog.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen(); err != nil {
		return blog.Post{}, err
	}

	p, ok := s.posts[id]
	if !ok {
		return blog.Post{}, blog.NewNotFoundError(fmt.Sprintf("post %s not found", id))
	}
	return p, nil
}

func (s *Store) CreatePost(ctx context.Context, newPost blog.NewPost) (blog.Post, error) {
	posts, err := s.InsertPosts(ctx, []blog.NewPost{newPost})
	if err != nil {
		return blog.Post{}, err
	}
	return posts[0], nil
}

func (s *Store) InsertPosts(ctx context.Context, newPosts []blog.NewPost) ([]blog.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return nil, err
	}

	now := s.now()
	posts := make([]blog.Post, 0, len(newPosts))
	for _, np := range newPosts {
		p := np.ToPost(uuid.NewString(), now)
		s.posts[p.ID] = p
		posts = append(posts, p)
	}
	return posts, nil
}

func (s *Store) UpdatePost(ctx context.Context, id string, update blog.PostUpdate) (blog.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return blog.Post{}, err
	}

	p, ok := s.posts[id]
	if !ok {
		return blog.Post{}, blog.NewNotFoundError(fmt.Sprintf("post %s not found", id))
	}
	p = update.Apply(p)
	s.posts[id] = p
	return p, nil
}

func (s *Store) DeletePost(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return err
	}

	if _, ok := s.posts[id]; !ok {
		return blog.NewNotFoundError(fmt.Sprintf("post %s not found", id))
	}
	delete(s.posts, id)
	return nil
}

func (s *Store) CountPosts(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := s.checkOpen(); err != nil {
		return 0, err
	}
	return int64(len(s.posts)), nil
}

func (s *Store) Ping(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.checkOpen()
}

// Reset removes every post
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkOpen(); err != nil {
		return err
	}
	clear(s.posts)
	return nil
}

func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// caller must hold the lock
func (s *Store) checkOpen() error {
	if s.closed {
		return blog.WrapStoreUnavailableError(fmt.Errorf("memstore: closed"), "store is closed")
	}
	return nil
}
