package blogapi

import (
	"encoding/json"
	"testing"
	"time"
)

func TestIDDecodesStringsAndNumbers(t *testing.T) {
	var payload struct {
		A ID `json:"a"`
		B ID `json:"b"`
		C ID `json:"c"`
	}
	if err := json.Unmarshal([]byte(`{"a":12,"b":" 3f2a ","c":null}`), &payload); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if payload.A != "12" || payload.B != "3f2a" || payload.C != "" {
		t.Fatalf("ids = %+v", payload)
	}

	out, err := json.Marshal([]ID{"12", "3f2a"})
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	if string(out) != `[12,"3f2a"]` {
		t.Fatalf("Marshal = %s", out)
	}
}

func TestBlogHelpers(t *testing.T) {
	b := Blog{
		Content:    "one two  three\nfour",
		Author:     &Author{ID: "1", Username: "ann"},
		AuthorID:   "2",
		Categories: []Category{{Name: "Go"}, {Name: " "}, {Name: "Web"}},
	}
	if b.AuthorName() != "ann" || b.AuthorRef() != "1" {
		t.Fatalf("author = %q/%q", b.AuthorName(), b.AuthorRef())
	}
	if b.ReadingTime() != 1 {
		t.Fatalf("ReadingTime = %d, want 1", b.ReadingTime())
	}
	if got := b.Excerpt(7); got != "one two…" {
		t.Fatalf("Excerpt = %q", got)
	}
	if got := b.Excerpt(0); got != "one two three four" {
		t.Fatalf("Excerpt(0) = %q", got)
	}
	if names := b.CategoryNames(); len(names) != 2 || names[1] != "Web" {
		t.Fatalf("CategoryNames = %v", names)
	}

	dup := b.Clone()
	dup.Author.Username = "bob"
	dup.Categories[0].Name = "Rust"
	if b.Author.Username != "ann" || b.Categories[0].Name != "Go" {
		t.Fatalf("Clone shares memory with original")
	}

	if (Blog{AuthorID: "2"}).AuthorRef() != "2" {
		t.Fatalf("AuthorRef should fall back to author_id")
	}
	if (Blog{}).ReadingTime() != 0 {
		t.Fatalf("empty content should read in 0 minutes")
	}
}

func TestParseTimeLayouts(t *testing.T) {
	if parseTime("2025-12-13T10:11:12Z").IsZero() {
		t.Fatalf("parseTime should parse RFC3339")
	}
	got := parseTime("2025-12-13 10:11:12")
	if got.Year() != 2025 || got.Month() != time.December || got.Day() != 13 {
		t.Fatalf("parseTime = %v, want 2025-12-13", got)
	}
	if !parseTime("yesterday").IsZero() {
		t.Fatalf("parseTime should return zero for unknown layouts")
	}
}

func TestListQueryNormalized(t *testing.T) {
	q := ListQuery{Page: -1, SortBy: " ", Search: "  rust "}.Normalized()
	if q.Page != 1 || q.PageSize != DefaultPageSize || q.SortBy != DefaultSortBy || q.Search != "rust" {
		t.Fatalf("Normalized = %+v", q)
	}
}

func TestBlogListPagination(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		size     int
		pages    int
		hasMore  bool
		wantBlog int
	}{
		{"explicit", `{"blogs":[{"id":1}],"total":40,"total_pages":7,"has_more":true}`, 12, 7, true, 1},
		{"derived", `{"blogs":[{"id":1},{"id":2}],"total":5}`, 2, 3, true, 2},
		{"empty", `{"blogs":[],"total":0}`, 12, 1, false, 0},
		{"bare", `[{"id":1}]`, 1, 1, false, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var list blogList
			if err := json.Unmarshal([]byte(tt.body), &list); err != nil {
				t.Fatalf("Unmarshal returned error: %v", err)
			}
			page := list.page(ListQuery{Page: 1, PageSize: tt.size})
			if page.TotalPages != tt.pages || page.HasMore != tt.hasMore || len(page.Blogs) != tt.wantBlog {
				t.Fatalf("page = %+v", page)
			}
		})
	}
}
