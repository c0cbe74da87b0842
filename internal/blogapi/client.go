package blogapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Client talks to the blog HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	logger    *slog.Logger
}

const (
	// DefaultAPIURL is the deployment the client talks to when none is configured.
	DefaultAPIURL    = "https://blog-api.srengchipor.dev"
	defaultUserAgent = "quill/0.1"
	authorPageSize   = 50
)

// Option customizes a Client.
type Option func(*Client)

// WithTimeout bounds every request. Zero leaves requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithLogger sets the logger used for per-request debug records.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// NewClient builds a Client for the API rooted at apiURL.
func NewClient(apiURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(apiURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		http:      &http.Client{},
		userAgent: defaultUserAgent,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the API root the client resolves paths against.
func (c *Client) BaseURL() string {
	if c == nil {
		return ""
	}
	return c.baseURL.String()
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, reg Registration) (*User, error) {
	var user User
	if err := c.do(ctx, request{method: http.MethodPost, path: "/register", body: reg}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, creds Credentials) (string, error) {
	var payload loginResponse
	if err := c.do(ctx, request{method: http.MethodPost, path: "/login", body: creds}, &payload); err != nil {
		return "", err
	}
	token := strings.TrimSpace(payload.AccessToken)
	if token == "" {
		return "", fmt.Errorf("login response missing access_token")
	}
	return token, nil
}

// Profile returns the token owner's profile.
func (c *Client) Profile(ctx context.Context, token string) (*User, error) {
	var user User
	if err := c.do(ctx, request{method: http.MethodGet, path: "/users/profile", token: token}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile replaces the token owner's editable profile fields.
func (c *Client) UpdateProfile(ctx context.Context, token string, update ProfileUpdate) (*User, error) {
	var user User
	req := request{method: http.MethodPut, path: "/users/profile", token: token, body: update}
	if err := c.do(ctx, req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// User returns a public profile by id.
func (c *Client) User(ctx context.Context, id ID) (*User, error) {
	if id == "" {
		return nil, fmt.Errorf("user id required")
	}
	var user User
	if err := c.do(ctx, request{method: http.MethodGet, path: "/users/" + url.PathEscape(id.String())}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListBlogs fetches one page of blogs. Empty filters are omitted from the query.
func (c *Client) ListBlogs(ctx context.Context, query ListQuery) (BlogPage, error) {
	q := query.Normalized()
	if q.AuthorID != "" && query.PageSize < 1 {
		q.PageSize = authorPageSize
	}

	values := url.Values{}
	values.Set("page", strconv.Itoa(q.Page))
	values.Set("page_size", strconv.Itoa(q.PageSize))
	values.Set("sort_by", q.SortBy)
	if q.Search != "" {
		values.Set("search", q.Search)
	}
	if q.Category != "" {
		values.Set("category", q.Category)
	}
	if q.CategoryID != "" {
		values.Set("category_id", q.CategoryID.String())
	}
	if q.AuthorID != "" {
		values.Set("author_id", q.AuthorID.String())
	}

	var payload blogList
	if err := c.do(ctx, request{method: http.MethodGet, path: "/blogs", query: values}, &payload); err != nil {
		return BlogPage{}, err
	}
	return payload.page(q), nil
}

// Blog fetches a single blog.
func (c *Client) Blog(ctx context.Context, id ID) (*Blog, error) {
	if id == "" {
		return nil, fmt.Errorf("blog id required")
	}
	var blog Blog
	if err := c.do(ctx, request{method: http.MethodGet, path: blogPath(id)}, &blog); err != nil {
		return nil, err
	}
	return &blog, nil
}

// CreateBlog publishes a new blog.
func (c *Client) CreateBlog(ctx context.Context, token string, input BlogInput) (*Blog, error) {
	var blog Blog
	req := request{method: http.MethodPost, path: "/blogs", token: token, body: input}
	if err := c.do(ctx, req, &blog); err != nil {
		return nil, err
	}
	return &blog, nil
}

// UpdateBlog sends the non-empty fields of input to PUT /blogs/{id}.
func (c *Client) UpdateBlog(ctx context.Context, token string, id ID, input BlogInput) (*Blog, error) {
	if id == "" {
		return nil, fmt.Errorf("blog id required")
	}
	var blog Blog
	req := request{method: http.MethodPut, path: blogPath(id), token: token, body: input}
	if err := c.do(ctx, req, &blog); err != nil {
		return nil, err
	}
	return &blog, nil
}

// DeleteBlog removes a blog.
func (c *Client) DeleteBlog(ctx context.Context, token string, id ID) error {
	if id == "" {
		return fmt.Errorf("blog id required")
	}
	return c.do(ctx, request{method: http.MethodDelete, path: blogPath(id), token: token}, nil)
}

// BookmarkedBlogs lists the token owner's bookmarks.
func (c *Client) BookmarkedBlogs(ctx context.Context, token string) ([]Blog, error) {
	var payload blogList
	req := request{method: http.MethodGet, path: "/users/bookmarked-blogs", token: token}
	if err := c.do(ctx, req, &payload); err != nil {
		return nil, err
	}
	if payload.Blogs == nil {
		return []Blog{}, nil
	}
	return payload.Blogs, nil
}

// Categories lists every category.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var payload categoryList
	if err := c.do(ctx, request{method: http.MethodGet, path: "/categories"}, &payload); err != nil {
		return nil, err
	}
	if payload == nil {
		return []Category{}, nil
	}
	return payload, nil
}

// Upload posts file as multipart field "files" and returns the stored URL.
func (c *Client) Upload(ctx context.Context, token string, file File) (string, error) {
	var payload uploadResponse
	req := request{method: http.MethodPost, path: "/upload", token: token, file: &file}
	if err := c.do(ctx, req, &payload); err != nil {
		return "", err
	}
	link := payload.url()
	if link == "" {
		return "", &UploadError{Message: "No image URL received from server"}
	}
	return link, nil
}

// ToggleLike flips the token owner's like on a blog.
func (c *Client) ToggleLike(ctx context.Context, token string, id ID) (Engagement, error) {
	if id == "" {
		return Engagement{}, fmt.Errorf("blog id required")
	}
	var payload likeResponse
	req := request{method: http.MethodPost, path: blogPath(id) + "/like", token: token}
	if err := c.do(ctx, req, &payload); err != nil {
		return Engagement{}, err
	}
	return payload.engagement(), nil
}

// ToggleBookmark flips the token owner's bookmark on a blog.
func (c *Client) ToggleBookmark(ctx context.Context, token string, id ID) (Engagement, error) {
	if id == "" {
		return Engagement{}, fmt.Errorf("blog id required")
	}
	var payload bookmarkResponse
	req := request{method: http.MethodPost, path: blogPath(id) + "/bookmark", token: token}
	if err := c.do(ctx, req, &payload); err != nil {
		return Engagement{}, err
	}
	return payload.engagement(), nil
}

type request struct {
	method string
	path   string
	query  url.Values
	token  string
	body   any
	file   *File
}

func (r request) encode() (io.Reader, string, error) {
	switch {
	case r.file != nil:
		var buf bytes.Buffer
		writer := multipart.NewWriter(&buf)
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files"; filename=%q`, r.file.Name))
		contentType := r.file.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header.Set("Content-Type", contentType)
		part, err := writer.CreatePart(header)
		if err != nil {
			return nil, "", fmt.Errorf("create form part: %w", err)
		}
		if _, err := part.Write(r.file.Data); err != nil {
			return nil, "", fmt.Errorf("write form part: %w", err)
		}
		if err := writer.Close(); err != nil {
			return nil, "", fmt.Errorf("close form: %w", err)
		}
		return &buf, writer.FormDataContentType(), nil
	case r.body != nil:
		payload, err := json.Marshal(r.body)
		if err != nil {
			return nil, "", fmt.Errorf("encode request: %w", err)
		}
		return bytes.NewReader(payload), "application/json", nil
	default:
		return nil, "", nil
	}
}

func (c *Client) do(ctx context.Context, r request, dest any) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	reqURL := c.baseURL.JoinPath(r.path)
	if len(r.query) > 0 {
		reqURL.RawQuery = r.query.Encode()
	}

	body, contentType, err := r.encode()
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, r.method, reqURL.String(), body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Err != nil {
			return &NetworkError{Err: urlErr.Err}
		}
		return &NetworkError{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.Debug("api request",
		"method", r.method,
		"path", r.path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func blogPath(id ID) string {
	return "/blogs/" + url.PathEscape(id.String())
}

func parseBaseURL(apiURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiURL)
	if trimmed == "" {
		trimmed = DefaultAPIURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api_url %q: %w", apiURL, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api_url %q: missing host", apiURL)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
