// Package api is the HTTP client for the portfolio backend. All reads are
// unauthenticated GETs returning JSON; responses are converted into typed
// models once, here.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	siteerrors "buildwith.dev/internal/errors"
	"buildwith.dev/internal/models"
)

const maxBodySize = 8 << 20

// Client talks to the backend REST API.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	logger  *zap.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the client logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client for the API rooted at baseURL, e.g.
// "https://api.example.com/api".
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing api base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, siteerrors.NewConfig("api.base_url", fmt.Sprintf("unsupported scheme %q", u.Scheme))
	}

	c := &Client{
		baseURL: u,
		http:    &http.Client{Timeout: 10 * time.Second},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Projects handles GET /projects/
func (c *Client) Projects(ctx context.Context) ([]models.ProjectSummary, error) {
	var projects []models.ProjectSummary
	if err := c.getList(ctx, "list projects", "/projects/", nil, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// Project handles GET /projects/{slug}/
func (c *Client) Project(ctx context.Context, slug string) (*models.Project, error) {
	op := "get project"
	body, err := c.get(ctx, op, slug, "/projects/"+url.PathEscape(slug)+"/", nil)
	if err != nil {
		return nil, err
	}
	if isEmptyEntity(body) {
		return nil, siteerrors.NewNotFound(op, slug)
	}

	var p models.Project
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, siteerrors.NewFetchFailed(op, 0, fmt.Errorf("decoding project: %w", err))
	}
	if p.Title == "" && p.Slug == "" {
		return nil, siteerrors.NewNotFound(op, slug)
	}
	return &p, nil
}

// Blogs handles GET /blogposts/?ordering=-created_at[&limit=N]. A limit of
// zero or less asks for every post.
func (c *Client) Blogs(ctx context.Context, limit int) ([]models.Blog, error) {
	q := url.Values{"ordering": {"-created_at"}}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var blogs []models.Blog
	if err := c.getList(ctx, "list blogs", "/blogposts/", q, &blogs); err != nil {
		return nil, err
	}
	if limit > 0 && len(blogs) > limit {
		blogs = blogs[:limit]
	}
	return blogs, nil
}

// Blog handles GET /blogposts/{slug}/
func (c *Client) Blog(ctx context.Context, slug string) (*models.Blog, error) {
	op := "get blog"
	body, err := c.get(ctx, op, slug, "/blogposts/"+url.PathEscape(slug)+"/", nil)
	if err != nil {
		return nil, err
	}
	if isEmptyEntity(body) {
		return nil, siteerrors.NewNotFound(op, slug)
	}

	var b models.Blog
	if err := json.Unmarshal(body, &b); err != nil {
		return nil, siteerrors.NewFetchFailed(op, 0, fmt.Errorf("decoding blog: %w", err))
	}
	return &b, nil
}

// getList decodes either a bare array or a paginated {"results": [...]}
// envelope into out.
func (c *Client) getList(ctx context.Context, op, path string, q url.Values, out interface{}) error {
	body, err := c.get(ctx, op, "", path, q)
	if err != nil {
		return err
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var page struct {
			Results json.RawMessage `json:"results"`
		}
		if err := json.Unmarshal(trimmed, &page); err != nil {
			return siteerrors.NewFetchFailed(op, 0, fmt.Errorf("decoding page: %w", err))
		}
		trimmed = page.Results
	}
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	if err := json.Unmarshal(trimmed, out); err != nil {
		return siteerrors.NewFetchFailed(op, 0, fmt.Errorf("decoding list: %w", err))
	}
	return nil
}

// get fetches path below the base URL. path is already escaped.
func (c *Client) get(ctx context.Context, op, slug, path string, q url.Values) ([]byte, error) {
	u := *c.baseURL
	u.RawPath = c.baseURL.EscapedPath() + path
	unescaped, err := url.PathUnescape(u.RawPath)
	if err != nil {
		return nil, siteerrors.NewFetchFailed(op, 0, err)
	}
	u.Path = unescaped
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, siteerrors.NewFetchFailed(op, 0, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, siteerrors.NewFetchFailed(op, 0, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("api request",
		zap.String("op", op),
		zap.String("url", u.String()),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	if resp.StatusCode == http.StatusNotFound {
		return nil, siteerrors.NewNotFound(op, slug)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, siteerrors.NewFetchFailed(op, resp.StatusCode, nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, siteerrors.NewFetchFailed(op, resp.StatusCode, err)
	}
	return body, nil
}

func isEmptyEntity(body []byte) bool {
	t := bytes.TrimSpace(body)
	return len(t) == 0 || bytes.Equal(t, []byte("null")) || bytes.Equal(t, []byte("{}"))
}
