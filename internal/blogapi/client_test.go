package blogapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != DefaultAPIURL {
		t.Fatalf("url = %q, want %q", u.String(), DefaultAPIURL)
	}

	u, err = parseBaseURL("example.com:1234/api/?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "https" {
		t.Fatalf("scheme = %q, want https", u.Scheme)
	}
	if u.Path != "/api" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}

	if _, err := parseBaseURL("http://"); err == nil {
		t.Fatalf("parseBaseURL accepted url without host")
	}
}

func TestClient_ListBlogsEncodesQueryAndDerivesPagination(t *testing.T) {
	t.Parallel()

	var gotQuery url.Values
	var gotUserAgent, gotRequestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/blogs" {
			http.NotFound(w, r)
			return
		}
		gotQuery = r.URL.Query()
		gotUserAgent = r.Header.Get("User-Agent")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"blogs":[{"id":1,"title":"a"},{"id":"2","title":"b"}],"total":25}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL + "/api")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	page, err := c.ListBlogs(ctx, ListQuery{Page: 3, PageSize: 2, Search: " go ", CategoryID: "7"})
	if err != nil {
		t.Fatalf("ListBlogs returned error: %v", err)
	}
	if gotQuery.Get("page") != "3" ||
		gotQuery.Get("page_size") != "2" ||
		gotQuery.Get("sort_by") != DefaultSortBy ||
		gotQuery.Get("search") != "go" ||
		gotQuery.Get("category_id") != "7" {
		t.Fatalf("query = %v, want params encoded", gotQuery)
	}
	if gotQuery.Has("category") || gotQuery.Has("author_id") {
		t.Fatalf("query = %v, want empty filters omitted", gotQuery)
	}
	if page.TotalPages != 13 || page.TotalBlogs != 25 || !page.HasMore || page.Page != 3 {
		t.Fatalf("page = %+v, want 13 pages, 25 blogs, more", page)
	}
	if len(page.Blogs) != 2 || page.Blogs[0].ID != "1" || page.Blogs[1].ID != "2" {
		t.Fatalf("blogs = %#v, want ids 1 and 2", page.Blogs)
	}
	if !strings.HasPrefix(gotUserAgent, "quill/") {
		t.Fatalf("User-Agent = %q, want quill/*", gotUserAgent)
	}
	if _, err := uuid.Parse(gotRequestID); err != nil {
		t.Fatalf("X-Request-ID = %q, want uuid: %v", gotRequestID, err)
	}
}

func TestClient_ListBlogsBareArray(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":1},{"id":2}]`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	page, err := c.ListBlogs(context.Background(), ListQuery{PageSize: 2})
	if err != nil {
		t.Fatalf("ListBlogs returned error: %v", err)
	}
	if page.HasMore {
		t.Fatalf("bare array page should not report more")
	}
	if page.TotalPages != 1 || page.Page != 1 {
		t.Fatalf("page = %+v, want single page", page)
	}
}

func TestClient_AuthorListingUsesLargePage(t *testing.T) {
	t.Parallel()

	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{"blogs":[]}`))
	}))
	t.Cleanup(server.Close)

	c, _ := NewClient(server.URL)
	if _, err := c.ListBlogs(context.Background(), ListQuery{AuthorID: "9"}); err != nil {
		t.Fatalf("ListBlogs returned error: %v", err)
	}
	if gotQuery.Get("author_id") != "9" || gotQuery.Get("page_size") != "50" {
		t.Fatalf("query = %v, want author_id=9 page_size=50", gotQuery)
	}
}

func TestClient_LoginAndAuthorizedRequests(t *testing.T) {
	t.Parallel()

	var gotCreds Credentials
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/login":
			if r.Method != http.MethodPost {
				t.Errorf("login method = %s, want POST", r.Method)
			}
			_ = json.NewDecoder(r.Body).Decode(&gotCreds)
			_, _ = w.Write([]byte(`{"access_token":"tok-1"}`))
		case "/users/profile":
			gotAuth = r.Header.Get("Authorization")
			_, _ = w.Write([]byte(`{"id":5,"username":"ann","email":"ann@example.com"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, _ := NewClient(server.URL)
	token, err := c.Login(context.Background(), Credentials{Email: "ann@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if token != "tok-1" {
		t.Fatalf("token = %q, want tok-1", token)
	}
	if gotCreds.Email != "ann@example.com" || gotCreds.Password != "pw" {
		t.Fatalf("credentials = %+v, want posted", gotCreds)
	}

	user, err := c.Profile(context.Background(), token)
	if err != nil {
		t.Fatalf("Profile returned error: %v", err)
	}
	if gotAuth != "Bearer tok-1" {
		t.Fatalf("Authorization = %q, want bearer token", gotAuth)
	}
	if user.ID != "5" || user.Username != "ann" {
		t.Fatalf("user = %+v, want ann/5", user)
	}
}

func TestClient_LoginWithoutTokenFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(server.Close)

	c, _ := NewClient(server.URL)
	if _, err := c.Login(context.Background(), Credentials{}); err == nil {
		t.Fatalf("Login returned nil error for empty token")
	}
}

func TestClient_ToggleEngagementReadsEitherCountField(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/blogs/3/like":
			_, _ = w.Write([]byte(`{"number_of_likes":4,"is_liked":true}`))
		case "/blogs/4/like":
			_, _ = w.Write([]byte(`{"likes":9,"is_liked":false}`))
		case "/blogs/3/bookmark":
			_, _ = w.Write([]byte(`{"number_of_bookmarks":2,"is_bookmarked":true}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, _ := NewClient(server.URL)
	ctx := context.Background()

	got, err := c.ToggleLike(ctx, "t", "3")
	if err != nil || got != (Engagement{Count: 4, Active: true}) {
		t.Fatalf("ToggleLike(3) = %+v, %v", got, err)
	}
	got, err = c.ToggleLike(ctx, "t", "4")
	if err != nil || got != (Engagement{Count: 9, Active: false}) {
		t.Fatalf("ToggleLike(4) = %+v, %v", got, err)
	}
	got, err = c.ToggleBookmark(ctx, "t", "3")
	if err != nil || got != (Engagement{Count: 2, Active: true}) {
		t.Fatalf("ToggleBookmark(3) = %+v, %v", got, err)
	}
	if _, err := c.ToggleLike(ctx, "t", ""); err == nil {
		t.Fatalf("ToggleLike with empty id returned nil error")
	}
}

func TestClient_UploadSendsMultipartFiles(t *testing.T) {
	t.Parallel()

	var gotName, gotType string
	var gotData []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("files")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()
		gotName = header.Filename
		gotType = header.Header.Get("Content-Type")
		gotData, _ = io.ReadAll(file)
		_, _ = w.Write([]byte(`{"files":[{"url":"https://cdn.example.com/a.png"}]}`))
	}))
	t.Cleanup(server.Close)

	c, _ := NewClient(server.URL)
	link, err := c.Upload(context.Background(), "t", File{Name: "a.png", ContentType: "image/png", Data: []byte("png")})
	if err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}
	if link != "https://cdn.example.com/a.png" {
		t.Fatalf("link = %q", link)
	}
	if gotName != "a.png" || gotType != "image/png" || string(gotData) != "png" {
		t.Fatalf("multipart = %q %q %q", gotName, gotType, gotData)
	}
}

func TestClient_UploadWithoutURLFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"files":[]}`))
	}))
	t.Cleanup(server.Close)

	c, _ := NewClient(server.URL)
	_, err := c.Upload(context.Background(), "t", File{Name: "a.png", Data: []byte("x")})
	var uploadErr *UploadError
	if !errors.As(err, &uploadErr) {
		t.Fatalf("Upload error = %v, want UploadError", err)
	}
	if uploadErr.Error() != "No image URL received from server" {
		t.Fatalf("message = %q", uploadErr.Error())
	}
}

func TestClient_HTTPErrorMessages(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/blogs/1":
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"Blog not found","error":"ignored"}`))
		case "/blogs/2":
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"bad id"}`))
		case "/blogs/3":
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"errors":"title required"}`))
		case "/blogs/4":
			w.WriteHeader(http.StatusInternalServerError)
		case "/blogs/5":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{not-json"))
		case "/users/profile":
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"token expired"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, _ := NewClient(server.URL)
	ctx := context.Background()

	tests := []struct {
		id   ID
		want string
	}{
		{"1", "Blog not found"},
		{"2", "bad id"},
		{"3", "title required"},
		{"4", "HTTP 500"},
	}
	for _, tt := range tests {
		t.Run(tt.id.String(), func(t *testing.T) {
			_, err := c.Blog(ctx, tt.id)
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("Blog(%s) error = %v, want APIError", tt.id, err)
			}
			if apiErr.Error() != tt.want {
				t.Fatalf("Blog(%s) message = %q, want %q", tt.id, apiErr.Error(), tt.want)
			}
		})
	}

	_, err := c.Blog(ctx, "5")
	if err == nil || !strings.Contains(err.Error(), "decode response") {
		t.Fatalf("Blog(5) error = %v, want decode response error", err)
	}

	_, err = c.Profile(ctx, "stale")
	if !IsUnauthorized(err) {
		t.Fatalf("Profile error = %v, want unauthorized", err)
	}
}

func TestClient_NetworkAndContextErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := server.URL
	server.Close()

	c, _ := NewClient(addr)
	_, err := c.Categories(context.Background())
	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("Categories error = %v, want NetworkError", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.Categories(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Categories error = %v, want context.Canceled", err)
	}
}

func TestClient_CategoriesAndBookmarksAcceptBothShapes(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/categories":
			_, _ = w.Write([]byte(`{"categories":[{"id":1,"name":"Go"}]}`))
		case "/users/bookmarked-blogs":
			_, _ = w.Write([]byte(`[{"id":8,"is_bookmarked":true}]`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, _ := NewClient(server.URL)
	cats, err := c.Categories(context.Background())
	if err != nil || len(cats) != 1 || cats[0].Name != "Go" {
		t.Fatalf("Categories = %+v, %v", cats, err)
	}
	blogs, err := c.BookmarkedBlogs(context.Background(), "t")
	if err != nil || len(blogs) != 1 || blogs[0].ID != "8" || !blogs[0].IsBookmarked {
		t.Fatalf("BookmarkedBlogs = %+v, %v", blogs, err)
	}
}

func TestClient_DeleteAndUpdate(t *testing.T) {
	t.Parallel()

	var gotMethods []string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethods = append(gotMethods, r.Method+" "+r.URL.Path)
		switch r.Method {
		case http.MethodPut:
			_ = json.NewDecoder(r.Body).Decode(&gotBody)
			_, _ = w.Write([]byte(`{"id":4,"title":"new"}`))
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	t.Cleanup(server.Close)

	c, _ := NewClient(server.URL)
	blog, err := c.UpdateBlog(context.Background(), "t", "4", BlogInput{Title: "new"})
	if err != nil || blog.Title != "new" {
		t.Fatalf("UpdateBlog = %+v, %v", blog, err)
	}
	if _, ok := gotBody["content"]; ok {
		t.Fatalf("update body = %v, want empty fields omitted", gotBody)
	}
	if err := c.DeleteBlog(context.Background(), "t", "4"); err != nil {
		t.Fatalf("DeleteBlog returned error: %v", err)
	}
	if len(gotMethods) != 2 || gotMethods[0] != "PUT /blogs/4" || gotMethods[1] != "DELETE /blogs/4" {
		t.Fatalf("requests = %v", gotMethods)
	}
}
