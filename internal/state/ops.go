package state

import "strings"

// Op identifies an asynchronous store operation. Each Op owns one lifecycle
// slot in the Snapshot.
type Op int

const (
	OpRegister Op = iota
	OpLogin
	OpProfile
	OpUpdateProfile
	OpAuthorProfile
	OpAuthorBlogs
	OpListBlogs
	OpCategoryBlogs
	OpGetBlog
	OpCreateBlog
	OpUpdateBlog
	OpDeleteBlog
	OpCategories
	OpUpload
	OpBookmarkedBlogs
	OpLike
	OpBookmark
	opCount
)

var opNames = [opCount]string{
	OpRegister:        "register",
	OpLogin:           "login",
	OpProfile:         "profile",
	OpUpdateProfile:   "update_profile",
	OpAuthorProfile:   "author_profile",
	OpAuthorBlogs:     "author_blogs",
	OpListBlogs:       "list_blogs",
	OpCategoryBlogs:   "category_blogs",
	OpGetBlog:         "get_blog",
	OpCreateBlog:      "create_blog",
	OpUpdateBlog:      "update_blog",
	OpDeleteBlog:      "delete_blog",
	OpCategories:      "categories",
	OpUpload:          "upload",
	OpBookmarkedBlogs: "bookmarked_blogs",
	OpLike:            "like",
	OpBookmark:        "bookmark",
}

var opFallbacks = [opCount]string{
	OpRegister:        "Registration failed",
	OpLogin:           "Login failed",
	OpProfile:         "Failed to load profile",
	OpUpdateProfile:   "Failed to update profile",
	OpAuthorProfile:   "Failed to load user profile",
	OpAuthorBlogs:     "Failed to load user blogs",
	OpListBlogs:       "Failed to load blogs",
	OpCategoryBlogs:   "Failed to load category blogs",
	OpGetBlog:         "Failed to load blog",
	OpCreateBlog:      "Failed to create blog",
	OpUpdateBlog:      "Failed to update blog",
	OpDeleteBlog:      "Failed to delete blog",
	OpCategories:      "Failed to load categories",
	OpUpload:          "Failed to upload image",
	OpBookmarkedBlogs: "Failed to load bookmarked blogs",
	OpLike:            "Failed to like blog",
	OpBookmark:        "Failed to bookmark blog",
}

func (o Op) String() string {
	if o < 0 || o >= opCount {
		return "unknown"
	}
	return opNames[o]
}

func (o Op) fallback() string {
	if o < 0 || o >= opCount {
		return "Request failed"
	}
	return opFallbacks[o]
}

// supersedes reports whether a new request of this kind replaces any
// in-flight one. Only reads that overwrite a single view qualify.
func (o Op) supersedes() bool {
	switch o {
	case OpListBlogs, OpCategoryBlogs, OpGetBlog, OpAuthorProfile, OpAuthorBlogs, OpBookmarkedBlogs:
		return true
	default:
		return false
	}
}

// OpState is the request lifecycle of one operation. Pending and a settled
// outcome (Err or Success) never hold at the same time.
type OpState struct {
	Op      Op
	Pending bool
	Err     error
	Success bool
}

// Message returns the user-facing error text, or "" when there is no error.
func (s OpState) Message() string {
	if s.Err == nil {
		return ""
	}
	if msg := strings.TrimSpace(s.Err.Error()); msg != "" {
		return msg
	}
	return s.Op.fallback()
}

// slot tracks one operation. Several requests of the same op may be in flight
// (toggles on different blogs); the outcome is published once all settle.
// reset starts a new epoch: requests begun before it no longer count toward
// inflight and their settlements are ignored.
type slot struct {
	epoch    uint64
	inflight int
	settled  bool
	batchErr error
	err      error
	success  bool
}

// start registers a request and returns the epoch it belongs to.
func (s *slot) start() uint64 {
	if s.inflight == 0 {
		s.batchErr = nil
		s.settled = false
	}
	s.inflight++
	s.err = nil
	s.success = false
	return s.epoch
}

func (s *slot) settle(epoch uint64, err error) {
	if epoch != s.epoch {
		return
	}
	if s.inflight > 0 {
		s.inflight--
	}
	s.settled = true
	if err != nil {
		s.batchErr = err
	}
	s.publish()
}

// abandon drops a request without recording an outcome.
func (s *slot) abandon(epoch uint64) {
	if epoch != s.epoch {
		return
	}
	if s.inflight > 0 {
		s.inflight--
	}
	s.publish()
}

// reset forgets every outcome and every request in flight.
func (s *slot) reset() {
	*s = slot{epoch: s.epoch + 1}
}

func (s *slot) publish() {
	if s.inflight > 0 || !s.settled {
		return
	}
	s.err = s.batchErr
	s.success = s.batchErr == nil
	s.batchErr = nil
	s.settled = false
}

func (s *slot) state(op Op) OpState {
	return OpState{
		Op:      op,
		Pending: s.inflight > 0,
		Err:     s.err,
		Success: s.inflight == 0 && s.success,
	}
}
