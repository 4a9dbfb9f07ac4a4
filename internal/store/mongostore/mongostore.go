// Package mongostore stores posts as documents in a MongoDB collection.
//
// The database name is taken from the connection string path
// (mongodb://host:27017/blog-test uses the "blog-test" database), defaulting to "blog".
// Reset drops the whole database, so test runs must use a dedicated database.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"

	"github.com/LarissaMorrell/blog-app-mongoose-challenge-solution/internal/blog"
)

const (
	DefaultDatabase = "blog"
	postsCollection = "posts"
)

type Config struct {
	MaxPoolSize    uint64
	MinPoolSize    uint64
	ConnectTimeout time.Duration
	Logger         *slog.Logger
}

type Store struct {
	client *mongo.Client
	db     *mongo.Database
	posts  *mongo.Collection
	logger *slog.Logger
	now    func() time.Time
}

type authorDocument struct {
	FirstName string `bson:"firstName"`
	LastName  string `bson:"lastName"`
}

type postDocument struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	Author  authorDocument     `bson:"author"`
	Title   string             `bson:"title"`
	Content string             `bson:"content"`
	Created time.Time          `bson:"created"`
}

// New connects to MongoDB and verifies the connection with a ping
func New(ctx context.Context, uri string, cfg Config) (*Store, error) {
	cs, err := connstring.ParseAndValidate(uri)
	if err != nil {
		return nil, fmt.Errorf("invalid MongoDB connection string: %w", err)
	}

	dbName := cs.Database
	if dbName == "" {
		dbName = DefaultDatabase
	}

	clientOpts := options.Client().ApplyURI(uri)
	if cfg.MaxPoolSize > 0 {
		clientOpts.SetMaxPoolSize(cfg.MaxPoolSize)
	}
	if cfg.MinPoolSize > 0 {
		clientOpts.SetMinPoolSize(cfg.MinPoolSize)
	}
	if cfg.ConnectTimeout > 0 {
		clientOpts.SetConnectTimeout(cfg.ConnectTimeout)
		clientOpts.SetServerSelectionTimeout(cfg.ConnectTimeout)
	}

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	l := cfg.Logger
	if l == nil {
		l = slog.Default()
	}

	db := client.Database(dbName)
	l.Info("connected to MongoDB", slog.String("database", dbName))

	return &Store{
		client: client,
		db:     db,
		posts:  db.Collection(postsCollection),
		logger: l,
		now:    time.Now,
	}, nil
}

func (s *Store) ListPosts(ctx context.Context) ([]blog.Post, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "created", Value: -1},
		{Key: "_id", Value: -1},
	})

	cursor, err := s.posts.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []postDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode posts: %w", err)
	}

	posts := make([]blog.Post, 0, len(docs))
	for _, d := range docs {
		posts = append(posts, d.toPost())
	}
	return posts, nil
}

func (s *Store) GetPost(ctx context.Context, id string) (blog.Post, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return blog.Post{}, notFound(id)
	}

	var doc postDocument
	err = s.posts.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return blog.Post{}, notFound(id)
		}
		return blog.Post{}, fmt.Errorf("failed to find post %s: %w", id, err)
	}
	return doc.toPost(), nil
}

func (s *Store) CreatePost(ctx context.Context, newPost blog.NewPost) (blog.Post, error) {
	doc := newDocument(newPost, s.now())

	if _, err := s.posts.InsertOne(ctx, doc); err != nil {
		return blog.Post{}, fmt.Errorf("failed to create post: %w", err)
	}
	return doc.toPost(), nil
}

// InsertPosts inserts all posts with a single InsertMany call.
// The call returns once the server has acknowledged every insert.
func (s *Store) InsertPosts(ctx context.Context, newPosts []blog.NewPost) ([]blog.Post, error) {
	if len(newPosts) == 0 {
		return nil, nil
	}

	now := s.now()
	docs := make([]interface{}, 0, len(newPosts))
	posts := make([]blog.Post, 0, len(newPosts))
	for _, np := range newPosts {
		doc := newDocument(np, now)
		docs = append(docs, doc)
		posts = append(posts, doc.toPost())
	}

	if _, err := s.posts.InsertMany(ctx, docs); err != nil {
		return nil, fmt.Errorf("failed to insert posts: %w", err)
	}
	return posts, nil
}

func (s *Store) UpdatePost(ctx context.Context, id string, update blog.PostUpdate) (blog.Post, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return blog.Post{}, notFound(id)
	}

	set := updateDocument(update)
	if len(set) == 0 {
		return s.GetPost(ctx, id)
	}

	var doc postDocument
	err = s.posts.FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return blog.Post{}, notFound(id)
		}
		return blog.Post{}, fmt.Errorf("failed to update post %s: %w", id, err)
	}
	return doc.toPost(), nil
}

func (s *Store) DeletePost(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return notFound(id)
	}

	result, err := s.posts.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete post %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return notFound(id)
	}
	return nil
}

func (s *Store) CountPosts(ctx context.Context) (int64, error) {
	count, err := s.posts.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return count, nil
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return blog.WrapStoreUnavailableError(err, "MongoDB ping failed")
	}
	return nil
}

// Reset drops the database
func (s *Store) Reset(ctx context.Context) error {
	if err := s.db.Drop(ctx); err != nil {
		return fmt.Errorf("failed to drop database %s: %w", s.db.Name(), err)
	}
	return nil
}

func (s *Store) Close(ctx context.Context) error {
	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from MongoDB: %w", err)
	}
	s.logger.Info("MongoDB connection closed")
	return nil
}

func notFound(id string) error {
	return blog.NewNotFoundError(fmt.Sprintf("post %s not found", id))
}

func newDocument(np blog.NewPost, now time.Time) postDocument {
	p := np.ToPost("", now)
	return postDocument{
		ID: primitive.NewObjectID(),
		Author: authorDocument{
			FirstName: p.Author.FirstName,
			LastName:  p.Author.LastName,
		},
		Title:   p.Title,
		Content: p.Content,
		Created: p.Created,
	}
}

func (d postDocument) toPost() blog.Post {
	return blog.Post{
		ID: d.ID.Hex(),
		Author: blog.Author{
			FirstName: d.Author.FirstName,
			LastName:  d.Author.LastName,
		},
		Title:   d.Title,
		Content: d.Content,
		Created: d.Created.UTC(),
	}
}

// updateDocument builds the $set document for the supplied fields only
func updateDocument(u blog.PostUpdate) bson.M {
	set := bson.M{}
	if u.Author != nil {
		set["author.firstName"] = u.Author.FirstName
		set["author.lastName"] = u.Author.LastName
	}
	if u.Title != nil {
		set["title"] = *u.Title
	}
	if u.Content != nil {
		set["content"] = *u.Content
	}
	if u.Created != nil {
		set["created"] = blog.NormalizeTime(*u.Created)
	}
	return set
}
