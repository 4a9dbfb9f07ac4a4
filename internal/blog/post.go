package blog

// post.go defines the BlogPost record and the request/response payloads

import (
	"cmp"
	"slices"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// TimePrecision is the precision timestamps are stored with.
// Mongo stores milliseconds, so created values are truncated before they are persisted
// to keep round trips exact across the store backends.
const TimePrecision = time.Millisecond

// Author is the composite author name held on each post
type Author struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// DisplayName is the author as presented to API clients
func (a Author) DisplayName() string {
	return a.FirstName + " " + a.LastName
}

func (a Author) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.FirstName, validation.Required),
		validation.Field(&a.LastName, validation.Required),
	)
}

// Post is a persisted blog post. ID is assigned by the store.
type Post struct {
	ID      string
	Author  Author
	Title   string
	Content string
	Created time.Time
}

// PostResponse is the wire representation of a post.
type PostResponse struct {
	ID      string    `json:"id" example:"65f1c2a9e4b0a1b2c3d4e5f6"`
	Author  string    `json:"author" example:"Callie Walsh"`
	Content string    `json:"content" example:"Lorem ipsum dolor sit amet."`
	Title   string    `json:"title" example:"My new title is right here"`
	Created time.Time `json:"created" example:"2024-01-28T10:00:00Z"`
}

// ResponseKeys are the keys present on every serialized post
var ResponseKeys = []string{"id", "author", "content", "title", "created"}

func NewPostResponse(p Post) PostResponse {
	return PostResponse{
		ID:      p.ID,
		Author:  p.Author.DisplayName(),
		Content: p.Content,
		Title:   p.Title,
		Created: p.Created,
	}
}

func NewPostResponses(posts []Post) []PostResponse {
	responses := make([]PostResponse, 0, len(posts))
	for _, p := range posts {
		responses = append(responses, NewPostResponse(p))
	}
	return responses
}

// NewPost is the payload used to create a post.
// Created is optional and defaults to the time the post is stored.
type NewPost struct {
	Author  Author     `json:"author"`
	Title   string     `json:"title"`
	Content string     `json:"content"`
	Created *time.Time `json:"created,omitempty"`
}

func (p NewPost) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Author),
		validation.Field(&p.Title, validation.Required),
		validation.Field(&p.Content, validation.Required),
		validation.Field(&p.Created, validation.NilOrNotEmpty),
	)
}

// ToPost builds the record to persist. now is used when Created was not supplied.
func (p NewPost) ToPost(id string, now time.Time) Post {
	created := now
	if p.Created != nil {
		created = *p.Created
	}
	return Post{
		ID:      id,
		Author:  p.Author,
		Title:   p.Title,
		Content: p.Content,
		Created: NormalizeTime(created),
	}
}

// PostUpdate is a partial update: nil fields are left unchanged.
//
// ID is accepted so clients can send back a full post, but it must match the
// id in the request path (it is never written).
type PostUpdate struct {
	ID      *string    `json:"id,omitempty"`
	Author  *Author    `json:"author,omitempty"`
	Title   *string    `json:"title,omitempty"`
	Content *string    `json:"content,omitempty"`
	Created *time.Time `json:"created,omitempty"`
}

// IsEmpty reports whether the update changes no fields
func (u PostUpdate) IsEmpty() bool {
	return u.Author == nil && u.Title == nil && u.Content == nil && u.Created == nil
}

func (u PostUpdate) Validate() error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.Author),
		validation.Field(&u.Title, validation.NilOrNotEmpty),
		validation.Field(&u.Content, validation.NilOrNotEmpty),
		validation.Field(&u.Created, validation.NilOrNotEmpty),
	)
}

// Apply returns p with the supplied fields overwritten
func (u PostUpdate) Apply(p Post) Post {
	if u.Author != nil {
		p.Author = *u.Author
	}
	if u.Title != nil {
		p.Title = *u.Title
	}
	if u.Content != nil {
		p.Content = *u.Content
	}
	if u.Created != nil {
		p.Created = NormalizeTime(*u.Created)
	}
	return p
}

// NormalizeTime converts t to UTC at the stored precision
func NormalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(TimePrecision)
}

// SortNewestFirst orders posts by created time, newest first, breaking ties by id
func SortNewestFirst(posts []Post) {
	slices.SortFunc(posts, func(a, b Post) int {
		if c := b.Created.Compare(a.Created); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
}
