package state

import (
	"context"
	"strings"

	"github.com/five82/quill/internal/blogapi"
)

// ListBlogs fetches one page of the main listing and replaces the list with
// it. The query's filters become the listing's current filters.
func (s *Store) ListBlogs(ctx context.Context, query blogapi.ListQuery) (blogapi.BlogPage, error) {
	q := query.Normalized()
	q.AuthorID = ""

	ctx, req := s.begin(ctx, OpListBlogs)
	page, err := s.api.ListBlogs(ctx, q)
	err = s.finish(ctx, OpListBlogs, req, err, func() {
		s.blogs = s.putAllLocked(page.Blogs)
		p := &s.pagination
		p.PageSize = q.PageSize
		p.SortBy = q.SortBy
		p.SearchQuery = q.Search
		p.SelectedCategory = q.Category
		p.CategoryID = q.CategoryID
		p.apply(page)
		s.pruneLocked()
	})
	if err != nil {
		return blogapi.BlogPage{}, err
	}
	return page, nil
}

// ReloadBlogs re-issues the main listing with its current page and filters.
func (s *Store) ReloadBlogs(ctx context.Context) (blogapi.BlogPage, error) {
	s.mu.RLock()
	q := s.pagination.query()
	s.mu.RUnlock()
	return s.ListBlogs(ctx, q)
}

// ListBlogsByCategory fetches one page of a category listing. It has its own
// pagination and lifecycle slot so it never disturbs the main list.
func (s *Store) ListBlogsByCategory(ctx context.Context, categoryID blogapi.ID, query blogapi.ListQuery) (blogapi.BlogPage, error) {
	if strings.TrimSpace(categoryID.String()) == "" {
		return blogapi.BlogPage{}, s.reject(OpCategoryBlogs, &ValidationError{Field: "category", Message: "Category ID is required"})
	}
	q := query.Normalized()
	q.CategoryID = categoryID
	q.AuthorID = ""

	ctx, req := s.begin(ctx, OpCategoryBlogs)
	page, err := s.api.ListBlogs(ctx, q)
	err = s.finish(ctx, OpCategoryBlogs, req, err, func() {
		s.categoryBlogs = s.putAllLocked(page.Blogs)
		p := &s.categoryPagination
		p.PageSize = q.PageSize
		p.SortBy = q.SortBy
		p.SearchQuery = q.Search
		p.SelectedCategory = q.Category
		p.CategoryID = categoryID
		p.apply(page)
		s.pruneLocked()
	})
	if err != nil {
		return blogapi.BlogPage{}, err
	}
	return page, nil
}

// GetBlog fetches a single blog and makes it the current blog.
func (s *Store) GetBlog(ctx context.Context, id blogapi.ID) (blogapi.Blog, error) {
	if id == "" {
		return blogapi.Blog{}, s.reject(OpGetBlog, &ValidationError{Field: "id", Message: "Blog ID is required"})
	}
	ctx, req := s.begin(ctx, OpGetBlog)
	blog, err := s.api.Blog(ctx, id)
	err = s.finish(ctx, OpGetBlog, req, err, func() {
		s.current = s.putLocked(*blog)
		s.pruneLocked()
	})
	if err != nil {
		return blogapi.Blog{}, err
	}
	return blog.Clone(), nil
}

// CreateBlog publishes a blog. Title, content, at least one category and an
// uploaded thumbnail URL are required. The new blog becomes the current blog.
func (s *Store) CreateBlog(ctx context.Context, input blogapi.BlogInput) (blogapi.Blog, error) {
	token, err := s.requireToken("create blog")
	if err != nil {
		return blogapi.Blog{}, s.reject(OpCreateBlog, err)
	}
	input.Title = strings.TrimSpace(input.Title)
	input.Thumbnail = strings.TrimSpace(input.Thumbnail)
	if err := validateNewBlog(input); err != nil {
		return blogapi.Blog{}, s.reject(OpCreateBlog, err)
	}

	ctx, req := s.begin(ctx, OpCreateBlog)
	blog, err := s.api.CreateBlog(ctx, token, input)
	err = s.finish(ctx, OpCreateBlog, req, err, func() {
		if blog.ID == "" {
			return
		}
		s.current = s.putLocked(*blog)
		s.pruneLocked()
	})
	if err != nil {
		return blogapi.Blog{}, err
	}
	return blog.Clone(), nil
}

// UpdateBlog sends a partial update. Ownership is enforced by the server. The
// server's copy replaces the blog everywhere it is shown and becomes current.
func (s *Store) UpdateBlog(ctx context.Context, id blogapi.ID, input blogapi.BlogInput) (blogapi.Blog, error) {
	token, err := s.requireToken("update blog")
	if err != nil {
		return blogapi.Blog{}, s.reject(OpUpdateBlog, err)
	}
	if id == "" {
		return blogapi.Blog{}, s.reject(OpUpdateBlog, &ValidationError{Field: "id", Message: "Blog ID is required"})
	}

	ctx, req := s.begin(ctx, OpUpdateBlog)
	blog, err := s.api.UpdateBlog(ctx, token, id, input)
	err = s.finish(ctx, OpUpdateBlog, req, err, func() {
		updated := *blog
		if updated.ID == "" {
			updated.ID = id
		}
		s.current = s.putLocked(updated)
		s.pruneLocked()
	})
	if err != nil {
		return blogapi.Blog{}, err
	}
	return blog.Clone(), nil
}

// DeleteBlog deletes a blog and removes it from every view.
func (s *Store) DeleteBlog(ctx context.Context, id blogapi.ID) error {
	token, err := s.requireToken("delete blog")
	if err != nil {
		return s.reject(OpDeleteBlog, err)
	}
	if id == "" {
		return s.reject(OpDeleteBlog, &ValidationError{Field: "id", Message: "Blog ID is required"})
	}

	ctx, req := s.begin(ctx, OpDeleteBlog)
	err = s.api.DeleteBlog(ctx, token, id)
	return s.finish(ctx, OpDeleteBlog, req, err, func() {
		s.blogs = removeID(s.blogs, id)
		s.categoryBlogs = removeID(s.categoryBlogs, id)
		s.bookmarked = removeID(s.bookmarked, id)
		s.authorBlogs = removeID(s.authorBlogs, id)
		if s.current == id {
			s.current = ""
		}
		delete(s.table, id)
	})
}

// Categories returns the category list, fetching it on first use only.
func (s *Store) Categories(ctx context.Context) ([]blogapi.Category, error) {
	s.mu.RLock()
	if s.categoriesLoaded {
		cached := cloneCategories(s.categories)
		s.mu.RUnlock()
		return cached, nil
	}
	s.mu.RUnlock()

	ctx, req := s.begin(ctx, OpCategories)
	categories, err := s.api.Categories(ctx)
	err = s.finish(ctx, OpCategories, req, err, func() {
		s.categories = cloneCategories(categories)
		s.categoriesLoaded = true
	})
	if err != nil {
		return nil, err
	}
	return cloneCategories(categories), nil
}

// UploadAsset validates and uploads an image, returning its URL.
func (s *Store) UploadAsset(ctx context.Context, file blogapi.File) (string, error) {
	token, err := s.requireToken("upload image")
	if err != nil {
		return "", s.reject(OpUpload, err)
	}
	contentType, err := validateImage(file)
	if err != nil {
		return "", s.reject(OpUpload, err)
	}
	file.ContentType = contentType

	ctx, req := s.begin(ctx, OpUpload)
	link, err := s.api.Upload(ctx, token, file)
	err = s.finish(ctx, OpUpload, req, err, func() {
		s.lastUpload = link
	})
	if err != nil {
		return "", err
	}
	return link, nil
}

// FetchBookmarkedBlogs loads the session user's bookmarks.
func (s *Store) FetchBookmarkedBlogs(ctx context.Context) ([]blogapi.Blog, error) {
	token, err := s.requireToken("view bookmarks")
	if err != nil {
		return nil, s.reject(OpBookmarkedBlogs, err)
	}
	ctx, req := s.begin(ctx, OpBookmarkedBlogs)
	blogs, err := s.api.BookmarkedBlogs(ctx, token)
	err = s.finish(ctx, OpBookmarkedBlogs, req, err, func() {
		if s.token != token {
			return
		}
		s.bookmarked = s.putAllLocked(blogs)
		s.pruneLocked()
	})
	if err != nil {
		return nil, err
	}
	return blogs, nil
}

// SetSearchQuery sets the main listing's search filter for the next reload.
func (s *Store) SetSearchQuery(query string) {
	s.mutate(func() { s.pagination.SearchQuery = strings.TrimSpace(query) })
}

// SetSelectedCategory sets the main listing's category name filter.
func (s *Store) SetSelectedCategory(category string) {
	s.mutate(func() { s.pagination.SelectedCategory = strings.TrimSpace(category) })
}

// SetCurrentPage sets the page the next reload fetches.
func (s *Store) SetCurrentPage(page int) {
	if page < 1 {
		page = 1
	}
	s.mutate(func() { s.pagination.CurrentPage = page })
}

// SetPageSize sets the page size of both listings.
func (s *Store) SetPageSize(size int) {
	if size < 1 {
		size = blogapi.DefaultPageSize
	}
	s.mutate(func() {
		s.pagination.PageSize = size
		s.categoryPagination.PageSize = size
	})
}

// ClearFilters resets search and category filters and returns to page 1.
func (s *Store) ClearFilters() {
	s.mutate(func() {
		s.pagination.SearchQuery = ""
		s.pagination.SelectedCategory = ""
		s.pagination.CategoryID = ""
		s.pagination.CurrentPage = 1
	})
}

// ClearCurrentBlog drops the current blog.
func (s *Store) ClearCurrentBlog() {
	s.mutate(func() {
		s.cancelLaneLocked(OpGetBlog)
		s.current = ""
		s.pruneLocked()
	})
}

// ClearCategoryBlogs drops the category listing and its error.
func (s *Store) ClearCategoryBlogs() {
	s.mutate(func() {
		s.cancelLaneLocked(OpCategoryBlogs)
		s.categoryBlogs = nil
		size := s.categoryPagination.PageSize
		s.categoryPagination = defaultPagination()
		s.categoryPagination.PageSize = size
		s.ops[OpCategoryBlogs].reset()
		s.pruneLocked()
	})
}

// ClearCategories forgets the cached category list.
func (s *Store) ClearCategories() {
	s.mutate(func() {
		s.categories = nil
		s.categoriesLoaded = false
	})
}

// ClearBookmarkedBlogs drops the bookmark list and its error.
func (s *Store) ClearBookmarkedBlogs() {
	s.mutate(func() {
		s.cancelLaneLocked(OpBookmarkedBlogs)
		s.bookmarked = nil
		s.ops[OpBookmarkedBlogs].reset()
		s.pruneLocked()
	})
}

func cloneCategories(in []blogapi.Category) []blogapi.Category {
	out := make([]blogapi.Category, len(in))
	copy(out, in)
	return out
}
