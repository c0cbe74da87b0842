package state

import "github.com/five82/quill/internal/blogapi"

// Snapshot is an independent copy of the store for rendering. Every view
// holds its own copies of the blogs it shows.
type Snapshot struct {
	Version uint64

	Token         string
	User          *blogapi.User
	AuthorProfile *blogapi.User
	AuthorBlogs   []blogapi.Blog
	needsProfile  bool

	Blogs              []blogapi.Blog
	Pagination         Pagination
	CategoryBlogs      []blogapi.Blog
	CategoryPagination Pagination
	BookmarkedBlogs    []blogapi.Blog
	CurrentBlog        *blogapi.Blog
	Categories         []blogapi.Category
	CategoriesLoaded   bool
	LastUpload         string

	Liking      map[blogapi.ID]bool
	Bookmarking map[blogapi.ID]bool

	ops [opCount]OpState
}

// LoggedIn reports whether the session holds a token.
func (s Snapshot) LoggedIn() bool {
	return s.Token != ""
}

// NeedsProfile reports whether a token is held but the profile has not been
// loaded yet.
func (s Snapshot) NeedsProfile() bool {
	return s.needsProfile && s.Token != ""
}

// Op returns the lifecycle of op.
func (s Snapshot) Op(op Op) OpState {
	if op < 0 || op >= opCount {
		return OpState{Op: op}
	}
	return s.ops[op]
}

// Pending reports whether any operation is in flight.
func (s Snapshot) Pending() bool {
	for _, st := range s.ops {
		if st.Pending {
			return true
		}
	}
	return false
}

// Errors returns the lifecycle of every operation currently holding an error.
func (s Snapshot) Errors() []OpState {
	var out []OpState
	for _, st := range s.ops {
		if st.Err != nil {
			out = append(out, st)
		}
	}
	return out
}

// IsLiking reports whether a like toggle on id is in flight.
func (s Snapshot) IsLiking(id blogapi.ID) bool {
	return s.Liking[id]
}

// IsBookmarking reports whether a bookmark toggle on id is in flight.
func (s Snapshot) IsBookmarking(id blogapi.ID) bool {
	return s.Bookmarking[id]
}

// FindBlog returns the first copy of id across the snapshot's views.
func (s Snapshot) FindBlog(id blogapi.ID) (blogapi.Blog, bool) {
	if s.CurrentBlog != nil && s.CurrentBlog.ID == id {
		return *s.CurrentBlog, true
	}
	for _, view := range [][]blogapi.Blog{s.Blogs, s.CategoryBlogs, s.BookmarkedBlogs, s.AuthorBlogs} {
		for _, b := range view {
			if b.ID == id {
				return b, true
			}
		}
	}
	return blogapi.Blog{}, false
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Version:            s.version,
		Token:              s.token,
		User:               s.user.Clone(),
		AuthorProfile:      s.authorProfile.Clone(),
		AuthorBlogs:        s.viewLocked(s.authorBlogs),
		needsProfile:       s.needsProfile,
		Blogs:              s.viewLocked(s.blogs),
		Pagination:         s.pagination,
		CategoryBlogs:      s.viewLocked(s.categoryBlogs),
		CategoryPagination: s.categoryPagination,
		BookmarkedBlogs:    s.viewLocked(s.bookmarked),
		Categories:         cloneCategories(s.categories),
		CategoriesLoaded:   s.categoriesLoaded,
		LastUpload:         s.lastUpload,
		Liking:             inflightSet(s.liking),
		Bookmarking:        inflightSet(s.bookmarking),
	}
	if s.current != "" {
		if b, ok := s.table[s.current]; ok {
			dup := b.Clone()
			snap.CurrentBlog = &dup
		}
	}
	for op := Op(0); op < opCount; op++ {
		snap.ops[op] = s.ops[op].state(op)
	}
	return snap
}

func inflightSet(m map[blogapi.ID]int) map[blogapi.ID]bool {
	out := make(map[blogapi.ID]bool, len(m))
	for id, n := range m {
		if n > 0 {
			out[id] = true
		}
	}
	return out
}
