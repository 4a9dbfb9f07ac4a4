package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/LarissaMorrell/blog-app-mongoose-challenge-solution/internal/blog"
	"github.com/LarissaMorrell/blog-app-mongoose-challenge-solution/internal/logger"
)

// PostStore is the subset of the store used by the post handlers
type PostStore interface {
	ListPosts(ctx context.Context) ([]blog.Post, error)
	GetPost(ctx context.Context, id string) (blog.Post, error)
	CreatePost(ctx context.Context, newPost blog.NewPost) (blog.Post, error)
	UpdatePost(ctx context.Context, id string, update blog.PostUpdate) (blog.Post, error)
	DeletePost(ctx context.Context, id string) error
}

// HandleListPosts godoc
//
//	@Summary		List posts
//	@Description	Returns every stored post, newest first.
//	@Tags			Posts
//	@Produce		json
//	@Success		200	{array}		blog.PostResponse
//	@Failure		500	{object}	blog.ErrorResponse
//	@Failure		503	{object}	blog.ErrorResponse
//	@Router			/posts [get]
func HandleListPosts(store PostStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		posts, err := store.ListPosts(r.Context())
		if err != nil {
			respondWithStoreError(w, r, err, "failed to list posts")
			return
		}

		logger.ContextWithLogAttrs(r.Context(), slog.Int("post_count", len(posts)))
		blog.RespondWithJSONPayload(w, http.StatusOK, blog.NewPostResponses(posts))
	}
}

// HandleGetPost godoc
//
//	@Summary	Get a post
//	@Tags		Posts
//	@Produce	json
//	@Param		id	path		string	true	"Post ID"
//	@Success	200	{object}	blog.PostResponse
//	@Failure	404	{object}	blog.ErrorResponse	"unknown or malformed id"
//	@Router		/posts/{id} [get]
func HandleGetPost(store PostStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		logger.ContextWithLogAttrs(r.Context(), slog.String("post_id", id))

		post, err := store.GetPost(r.Context(), id)
		if err != nil {
			respondWithStoreError(w, r, err, "failed to get post")
			return
		}

		blog.RespondWithJSONPayload(w, http.StatusOK, blog.NewPostResponse(post))
	}
}

// HandleCreatePost godoc
//
//	@Summary		Create a post
//	@Description	created is optional and defaults to the time the post is stored.
//	@Tags			Posts
//	@Accept			json
//	@Produce		json
//	@Param			post	body		blog.NewPost	true	"Post"
//	@Success		201		{object}	blog.PostResponse
//	@Header			201		{string}	Location	"/posts/{id}"
//	@Failure		400		{object}	blog.ErrorResponse
//	@Failure		413		{object}	blog.ErrorResponse
//	@Router			/posts [post]
func HandleCreatePost(store PostStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var newPost blog.NewPost
		if err := decodeJSON(r, &newPost); err != nil {
			blog.RespondWithErrorResponse(w, r, err)
			return
		}

		if err := newPost.Validate(); err != nil {
			blog.RespondWithErrorResponse(w, r, blog.WrapValidationError(err, "invalid post"))
			return
		}

		post, err := store.CreatePost(r.Context(), newPost)
		if err != nil {
			respondWithStoreError(w, r, err, "failed to create post")
			return
		}

		logger.ContextWithLogAttrs(r.Context(), slog.String("post_id", post.ID))
		w.Header().Set("Location", "/posts/"+post.ID)
		blog.RespondWithJSONPayload(w, http.StatusCreated, blog.NewPostResponse(post))
	}
}

// HandleUpdatePost godoc
//
//	@Summary		Update a post
//	@Description	Partial update: only the supplied fields are changed.
//	@Description	An id in the body must match the id in the path.
//	@Tags			Posts
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string			true	"Post ID"
//	@Param			post	body		blog.PostUpdate	true	"Fields to change"
//	@Success		200		{object}	blog.PostResponse
//	@Failure		400		{object}	blog.ErrorResponse
//	@Failure		404		{object}	blog.ErrorResponse
//	@Failure		413		{object}	blog.ErrorResponse
//	@Router			/posts/{id} [put]
func HandleUpdatePost(store PostStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		logger.ContextWithLogAttrs(r.Context(), slog.String("post_id", id))

		var update blog.PostUpdate
		if err := decodeJSON(r, &update); err != nil {
			blog.RespondWithErrorResponse(w, r, err)
			return
		}

		if update.ID != nil && *update.ID != id {
			err := blog.NewValidationError(fmt.Sprintf("request path id (%s) and request body id (%s) must match", id, *update.ID))
			blog.RespondWithErrorResponse(w, r, err)
			return
		}

		if update.IsEmpty() {
			blog.RespondWithErrorResponse(w, r, blog.NewValidationError("no fields to update"))
			return
		}

		if err := update.Validate(); err != nil {
			blog.RespondWithErrorResponse(w, r, blog.WrapValidationError(err, "invalid update"))
			return
		}

		post, err := store.UpdatePost(r.Context(), id, update)
		if err != nil {
			respondWithStoreError(w, r, err, "failed to update post")
			return
		}

		blog.RespondWithJSONPayload(w, http.StatusOK, blog.NewPostResponse(post))
	}
}

// HandleDeletePost godoc
//
//	@Summary	Delete a post
//	@Tags		Posts
//	@Param		id	path	string	true	"Post ID"
//	@Success	204
//	@Failure	404	{object}	blog.ErrorResponse
//	@Router		/posts/{id} [delete]
func HandleDeletePost(store PostStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		logger.ContextWithLogAttrs(r.Context(), slog.String("post_id", id))

		if err := store.DeletePost(r.Context(), id); err != nil {
			respondWithStoreError(w, r, err, "failed to delete post")
			return
		}

		blog.RespondWithStatusCodeOnly(w, http.StatusNoContent)
	}
}

// decodeJSON decodes the request body into v. The body must hold exactly one JSON value.
// The returned error is a BlogError ready to be sent to the client.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return blog.NewMalformedRequestError("request body is required")
		}
		return bodyDecodeError(err)
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			return blog.NewMalformedRequestError("request body must contain a single JSON value")
		}
		return bodyDecodeError(err)
	}
	return nil
}

func bodyDecodeError(err error) error {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		return blog.NewRequestTooLargeError(fmt.Sprintf("request body exceeds the %d byte limit", maxBytesErr.Limit))
	}
	return blog.WrapMalformedRequestError(err, "invalid JSON in request body")
}

// respondWithStoreError passes store BlogErrors (not found, store unavailable) through unchanged
// and reports anything else as an internal error.
func respondWithStoreError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	var blogErr *blog.BlogError
	if !errors.As(err, &blogErr) {
		err = blog.WrapInternalError(err, msg)
	}
	blog.RespondWithErrorResponse(w, r, err)
}
