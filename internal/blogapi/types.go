package blogapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// DefaultPageSize matches the page size the web client requests.
	DefaultPageSize = 12
	// DefaultSortBy is the server-side sort key used when none is given.
	DefaultSortBy = "created_at"

	wordsPerMinute = 200
	apiTimeLayout  = "2006-01-02 15:04:05"
)

// ID is a server-assigned identifier. The API sends some ids as JSON strings
// (UUIDs) and some as numbers, so both decode into ID.
type ID string

// UnmarshalJSON accepts a JSON string, number or null.
func (id *ID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*id = ""
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return fmt.Errorf("decode id: %w", err)
		}
		*id = ID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return fmt.Errorf("decode id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON writes integer ids as JSON numbers and everything else as strings.
func (id ID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// String returns the raw identifier.
func (id ID) String() string {
	return string(id)
}

// User mirrors /users/profile and /users/{id}.
type User struct {
	ID         ID     `json:"id"`
	Username   string `json:"username"`
	Email      string `json:"email,omitempty"`
	Bio        string `json:"bio,omitempty"`
	ProfileURL string `json:"profileUrl,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
}

// Clone returns a copy of u, or nil for a nil user.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	dup := *u
	return &dup
}

// Author is the denormalized author embedded in blog payloads.
type Author struct {
	ID         ID     `json:"id"`
	Username   string `json:"username"`
	ProfileURL string `json:"profileUrl,omitempty"`
	Bio        string `json:"bio,omitempty"`
}

// Category is a blog category. Categories are read-only for the client.
type Category struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Blog is a post as returned by the /blogs endpoints.
type Blog struct {
	ID                ID         `json:"id"`
	Title             string     `json:"title"`
	Content           string     `json:"content"`
	Thumbnail         string     `json:"thumbnail,omitempty"`
	Author            *Author    `json:"author,omitempty"`
	AuthorID          ID         `json:"author_id,omitempty"`
	Categories        []Category `json:"categories,omitempty"`
	CreatedAt         string     `json:"created_at,omitempty"`
	UpdatedAt         string     `json:"updated_at,omitempty"`
	NumberOfLikes     int        `json:"number_of_likes"`
	NumberOfBookmarks int        `json:"number_of_bookmarks"`
	IsLiked           bool       `json:"is_liked"`
	IsBookmarked      bool       `json:"is_bookmarked"`
}

// Clone returns a deep copy of b.
func (b Blog) Clone() Blog {
	dup := b
	if b.Author != nil {
		author := *b.Author
		dup.Author = &author
	}
	if b.Categories != nil {
		dup.Categories = make([]Category, len(b.Categories))
		copy(dup.Categories, b.Categories)
	}
	return dup
}

// AuthorName returns the author's username when the payload embeds one.
func (b Blog) AuthorName() string {
	if b.Author != nil && strings.TrimSpace(b.Author.Username) != "" {
		return b.Author.Username
	}
	return ""
}

// AuthorRef returns the author id from the embedded author or author_id.
func (b Blog) AuthorRef() ID {
	if b.Author != nil && b.Author.ID != "" {
		return b.Author.ID
	}
	return b.AuthorID
}

// ReadingTime estimates minutes to read the content at 200 words per minute.
func (b Blog) ReadingTime() int {
	words := len(strings.Fields(b.Content))
	if words == 0 {
		return 0
	}
	return int(math.Ceil(float64(words) / wordsPerMinute))
}

// Excerpt returns at most limit runes of the content with whitespace collapsed.
func (b Blog) Excerpt(limit int) string {
	collapsed := strings.Join(strings.Fields(b.Content), " ")
	if limit <= 0 || utf8.RuneCountInString(collapsed) <= limit {
		return collapsed
	}
	runes := []rune(collapsed)
	return strings.TrimSpace(string(runes[:limit])) + "…"
}

// ParsedCreatedAt returns the parsed CreatedAt timestamp.
func (b Blog) ParsedCreatedAt() time.Time {
	return parseTime(b.CreatedAt)
}

// CategoryNames returns the names of the blog's categories in order.
func (b Blog) CategoryNames() []string {
	names := make([]string, 0, len(b.Categories))
	for _, c := range b.Categories {
		if name := strings.TrimSpace(c.Name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// Credentials are posted to /login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is posted to /register.
type Registration struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Bio        string `json:"bio,omitempty"`
	ProfileURL string `json:"profileUrl,omitempty"`
}

// ProfileUpdate is sent to PUT /users/profile.
type ProfileUpdate struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	Bio        string `json:"bio"`
	ProfileURL string `json:"profileUrl,omitempty"`
}

// BlogInput carries the fields for creating or updating a blog. Empty fields
// are omitted so an update only sends what changed.
type BlogInput struct {
	Title       string `json:"title,omitempty"`
	Content     string `json:"content,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	CategoryIDs []ID   `json:"category_ids,omitempty"`
}

// ListQuery configures GET /blogs requests. Zero values fall back to the
// defaults; empty filters are not sent.
type ListQuery struct {
	Page       int
	PageSize   int
	SortBy     string
	Search     string
	Category   string
	CategoryID ID
	AuthorID   ID
}

// Normalized returns q with defaults applied and filters trimmed.
func (q ListQuery) Normalized() ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}
	q.SortBy = strings.TrimSpace(q.SortBy)
	if q.SortBy == "" {
		q.SortBy = DefaultSortBy
	}
	q.Search = strings.TrimSpace(q.Search)
	q.Category = strings.TrimSpace(q.Category)
	q.CategoryID = ID(strings.TrimSpace(string(q.CategoryID)))
	q.AuthorID = ID(strings.TrimSpace(string(q.AuthorID)))
	return q
}

// BlogPage is one page of a blog listing with derived pagination values.
type BlogPage struct {
	Blogs      []Blog
	Page       int
	TotalPages int
	TotalBlogs int
	HasMore    bool
}

// Engagement is the server's authoritative like or bookmark state for a blog.
type Engagement struct {
	Count  int
	Active bool
}

// File is an image to upload through POST /upload.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// blogList decodes both the {blogs, total, ...} envelope and a bare array.
type blogList struct {
	Blogs      []Blog `json:"blogs"`
	Total      int    `json:"total"`
	TotalPages int    `json:"total_pages"`
	HasMore    bool   `json:"has_more"`
	bare       bool
}

func (l *blogList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		l.bare = true
		return json.Unmarshal(trimmed, &l.Blogs)
	}
	type envelope blogList
	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return err
	}
	*l = blogList(env)
	return nil
}

func (l blogList) page(q ListQuery) BlogPage {
	blogs := l.Blogs
	if blogs == nil {
		blogs = []Blog{}
	}
	total := l.Total
	if total == 0 {
		total = len(blogs)
	}
	totalPages := l.TotalPages
	if totalPages == 0 {
		totalPages = int(math.Ceil(float64(l.Total) / float64(q.PageSize)))
	}
	if totalPages < 1 {
		totalPages = 1
	}
	return BlogPage{
		Blogs:      blogs,
		Page:       q.Page,
		TotalPages: totalPages,
		TotalBlogs: total,
		HasMore:    l.HasMore || (!l.bare && len(blogs) == q.PageSize),
	}
}

// categoryList decodes {categories: [...]} or a bare array.
type categoryList []Category

func (c *categoryList) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return json.Unmarshal(trimmed, (*[]Category)(c))
	}
	var env struct {
		Categories []Category `json:"categories"`
	}
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return err
	}
	*c = env.Categories
	return nil
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

type likeResponse struct {
	Likes         int  `json:"likes"`
	NumberOfLikes int  `json:"number_of_likes"`
	IsLiked       bool `json:"is_liked"`
}

func (r likeResponse) engagement() Engagement {
	return Engagement{Count: firstNonZero(r.Likes, r.NumberOfLikes), Active: r.IsLiked}
}

type bookmarkResponse struct {
	Bookmarks         int  `json:"bookmarks"`
	NumberOfBookmarks int  `json:"number_of_bookmarks"`
	IsBookmarked      bool `json:"is_bookmarked"`
}

func (r bookmarkResponse) engagement() Engagement {
	return Engagement{Count: firstNonZero(r.Bookmarks, r.NumberOfBookmarks), Active: r.IsBookmarked}
}

type uploadResponse struct {
	Files []struct {
		URL string `json:"url"`
	} `json:"files"`
}

func (r uploadResponse) url() string {
	if len(r.Files) == 0 {
		return ""
	}
	return strings.TrimSpace(r.Files[0].URL)
}

func firstNonZero(values ...int) int {
	for _, v := range values {
		if v != 0 {
			return v
		}
	}
	return 0
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	if t, err := time.ParseInLocation(apiTimeLayout, value, time.Local); err == nil {
		return t
	}
	return time.Time{}
}
