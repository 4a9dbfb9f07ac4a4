// Package client is an HTTP client for the blog API.
//
// Responses outside the 2xx range are returned as *APIError, carrying the
// decoded ErrorResponse when the server sent one.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/LarissaMorrell/blog-app-mongoose-challenge-solution/internal/blog"
)

const defaultTimeout = 10 * time.Second

// Client calls the blog API at baseURL
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpClient = c }
}

func WithTimeout(d time.Duration) Option {
	return func(cl *Client) { cl.httpClient.Timeout = d }
}

func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base URL must be http or https, got %q", baseURL)
	}

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL is the API root the client was created with
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// APIError is returned for responses with a non 2xx status
type APIError struct {
	StatusCode int

	// Response is nil when the body was not an ErrorResponse
	Response *blog.ErrorResponse

	Body string
}

func (e *APIError) Error() string {
	if e.Response != nil {
		return fmt.Sprintf("blog API returned %d: %s", e.StatusCode, e.Response.ErrorMessage)
	}
	return fmt.Sprintf("blog API returned %d: %s", e.StatusCode, e.Body)
}

// IsNotFound reports whether err is a 404 from the API
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// StatusCode returns the HTTP status of an APIError, or 0 for any other error
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// ListPosts calls GET /posts
func (c *Client) ListPosts(ctx context.Context) ([]blog.PostResponse, error) {
	var posts []blog.PostResponse
	if err := c.do(ctx, http.MethodGet, "/posts", nil, http.StatusOK, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// ListPostObjects calls GET /posts and returns the posts as generic JSON objects,
// for checks on the exact set of keys the API sends.
func (c *Client) ListPostObjects(ctx context.Context) ([]map[string]any, error) {
	var objects []map[string]any
	if err := c.do(ctx, http.MethodGet, "/posts", nil, http.StatusOK, &objects); err != nil {
		return nil, err
	}
	return objects, nil
}

func (c *Client) GetPost(ctx context.Context, id string) (blog.PostResponse, error) {
	var post blog.PostResponse
	err := c.do(ctx, http.MethodGet, "/posts/"+url.PathEscape(id), nil, http.StatusOK, &post)
	return post, err
}

func (c *Client) CreatePost(ctx context.Context, newPost blog.NewPost) (blog.PostResponse, error) {
	var post blog.PostResponse
	err := c.do(ctx, http.MethodPost, "/posts", newPost, http.StatusCreated, &post)
	return post, err
}

func (c *Client) UpdatePost(ctx context.Context, id string, update blog.PostUpdate) (blog.PostResponse, error) {
	var post blog.PostResponse
	err := c.do(ctx, http.MethodPut, "/posts/"+url.PathEscape(id), update, http.StatusOK, &post)
	return post, err
}

func (c *Client) DeletePost(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/posts/"+url.PathEscape(id), nil, http.StatusNoContent, nil)
}

// Health calls the liveness endpoint
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health/live", nil, http.StatusOK, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body any, wantStatus int, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	// #nosec G704 -- the base URL comes from configuration and ids are path escaped
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		return newAPIError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

func newAPIError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		Body:       string(data),
	}

	var errResp blog.ErrorResponse
	if json.Unmarshal(data, &errResp) == nil && errResp.StatusCode != 0 {
		apiErr.Response = &errResp
	}
	return apiErr
}
