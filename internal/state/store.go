package state

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/five82/quill/internal/blogapi"
	"github.com/five82/quill/internal/keystore"
)

// TokenKey is the key store entry holding the bearer token.
const TokenKey = "token"

// Pagination is the cursor and filter state of one blog listing.
type Pagination struct {
	CurrentPage      int
	TotalPages       int
	TotalBlogs       int
	HasMore          bool
	PageSize         int
	SortBy           string
	SearchQuery      string
	SelectedCategory string
	CategoryID       blogapi.ID
}

func defaultPagination() Pagination {
	return Pagination{
		CurrentPage: 1,
		TotalPages:  1,
		HasMore:     true,
		PageSize:    blogapi.DefaultPageSize,
		SortBy:      blogapi.DefaultSortBy,
	}
}

func (p Pagination) query() blogapi.ListQuery {
	return blogapi.ListQuery{
		Page:       p.CurrentPage,
		PageSize:   p.PageSize,
		SortBy:     p.SortBy,
		Search:     p.SearchQuery,
		Category:   p.SelectedCategory,
		CategoryID: p.CategoryID,
	}
}

func (p *Pagination) apply(page blogapi.BlogPage) {
	p.CurrentPage = page.Page
	p.TotalPages = page.TotalPages
	p.TotalBlogs = page.TotalBlogs
	p.HasMore = page.HasMore
}

type lane struct {
	gen    uint64
	cancel context.CancelFunc
}

// Store is the client state store. All methods are safe for concurrent use;
// reads go through Snapshot.
type Store struct {
	api    blogapi.Service
	keys   keystore.Store
	logger *slog.Logger

	mu    sync.RWMutex
	// keyMu orders key store writes with the session changes they mirror.
	keyMu sync.Mutex

	token         string
	user          *blogapi.User
	needsProfile  bool
	authorProfile *blogapi.User
	authorBlogs   []blogapi.ID

	table         map[blogapi.ID]blogapi.Blog
	blogs         []blogapi.ID
	categoryBlogs []blogapi.ID
	bookmarked    []blogapi.ID
	current       blogapi.ID

	pagination         Pagination
	categoryPagination Pagination

	categories       []blogapi.Category
	categoriesLoaded bool
	lastUpload       string

	liking      map[blogapi.ID]int
	bookmarking map[blogapi.ID]int

	ops     [opCount]slot
	lanes   [opCount]lane
	version uint64
	changes chan struct{}
}

// Option customizes a Store.
type Option func(*Store)

// WithLogger sets the logger for operation failures and rollbacks.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New builds an empty store. A nil key store keeps the token in memory only.
func New(api blogapi.Service, keys keystore.Store, opts ...Option) *Store {
	if keys == nil {
		keys = keystore.NewMemory()
	}
	s := &Store{
		api:                api,
		keys:               keys,
		logger:             slog.New(slog.NewTextHandler(io.Discard, nil)),
		table:              make(map[blogapi.ID]blogapi.Blog),
		pagination:         defaultPagination(),
		categoryPagination: defaultPagination(),
		liking:             make(map[blogapi.ID]int),
		bookmarking:        make(map[blogapi.ID]int),
		changes:            make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Changes returns a channel that receives a signal after state changes.
// Signals are coalesced; readers call Snapshot after each receive.
func (s *Store) Changes() <-chan struct{} {
	return s.changes
}

// Version increases with every state change.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

func (s *Store) notifyLocked() {
	s.version++
	select {
	case s.changes <- struct{}{}:
	default:
	}
}

// mutate applies fn under the write lock and notifies subscribers.
func (s *Store) mutate(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
	s.notifyLocked()
}

// request identifies one begun request: its lane generation (superseding ops
// only) and the slot epoch it was counted in.
type request struct {
	gen   uint64
	epoch uint64
}

// begin marks op pending. Superseding ops cancel the previous request on the
// same lane and return a derived context.
func (s *Store) begin(ctx context.Context, op Op) (context.Context, request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ctx, req := s.beginLocked(ctx, op)
	s.notifyLocked()
	return ctx, req
}

func (s *Store) beginLocked(ctx context.Context, op Op) (context.Context, request) {
	req := request{epoch: s.ops[op].start()}
	if !op.supersedes() {
		return ctx, req
	}
	l := &s.lanes[op]
	if l.cancel != nil {
		l.cancel()
	}
	l.gen++
	ctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	req.gen = l.gen
	return ctx, req
}

// finish settles a request started with begin. apply runs under the write
// lock only when err is nil and the request is still current. A request that
// was superseded, cleared, or whose caller's context ended leaves no outcome
// behind.
func (s *Store) finish(ctx context.Context, op Op, req request, err error, apply func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if req.epoch != s.ops[op].epoch {
		return ErrSuperseded
	}
	if op.supersedes() {
		l := &s.lanes[op]
		if l.gen != req.gen {
			s.ops[op].abandon(req.epoch)
			s.notifyLocked()
			return ErrSuperseded
		}
		canceled := err != nil && ctx.Err() != nil
		if l.cancel != nil {
			l.cancel()
			l.cancel = nil
		}
		if canceled {
			s.ops[op].abandon(req.epoch)
			s.notifyLocked()
			return err
		}
	} else if err != nil && ctx.Err() != nil {
		s.ops[op].abandon(req.epoch)
		s.notifyLocked()
		return err
	}

	if err != nil {
		s.logger.Warn("operation failed", "op", op.String(), "error", err)
	} else if apply != nil {
		apply()
	}
	s.ops[op].settle(req.epoch, err)
	s.notifyLocked()
	return err
}

// reject records an error for op without issuing a request.
func (s *Store) reject(op Op, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ops[op].settle(s.ops[op].start(), err)
	s.logger.Info("operation rejected", "op", op.String(), "error", err)
	s.notifyLocked()
	return err
}

// requireToken returns the session token or an AuthRequiredError for action.
func (s *Store) requireToken(action string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return "", &AuthRequiredError{Action: action}
	}
	return s.token, nil
}

// ClearError resets op's error without touching its success flag.
func (s *Store) ClearError(op Op) {
	if op < 0 || op >= opCount {
		return
	}
	s.mutate(func() { s.ops[op].err = nil })
}

// ClearSuccess resets op's one-shot success flag without touching its error.
func (s *Store) ClearSuccess(op Op) {
	if op < 0 || op >= opCount {
		return
	}
	s.mutate(func() { s.ops[op].success = false })
}

// putLocked stores a copy of b in the entity table and returns its id.
func (s *Store) putLocked(b blogapi.Blog) blogapi.ID {
	b = b.Clone()
	b.NumberOfLikes = clamp(b.NumberOfLikes)
	b.NumberOfBookmarks = clamp(b.NumberOfBookmarks)
	s.table[b.ID] = b
	return b.ID
}

func (s *Store) putAllLocked(blogs []blogapi.Blog) []blogapi.ID {
	ids := make([]blogapi.ID, 0, len(blogs))
	for _, b := range blogs {
		if b.ID == "" {
			continue
		}
		ids = append(ids, s.putLocked(b))
	}
	return ids
}

// pruneLocked drops entities that no view references.
func (s *Store) pruneLocked() {
	live := make(map[blogapi.ID]struct{}, len(s.table))
	for _, view := range [][]blogapi.ID{s.blogs, s.categoryBlogs, s.bookmarked, s.authorBlogs} {
		for _, id := range view {
			live[id] = struct{}{}
		}
	}
	if s.current != "" {
		live[s.current] = struct{}{}
	}
	for id := range s.table {
		if _, ok := live[id]; ok {
			continue
		}
		if s.liking[id] > 0 || s.bookmarking[id] > 0 {
			continue
		}
		delete(s.table, id)
	}
}

func (s *Store) viewLocked(ids []blogapi.ID) []blogapi.Blog {
	out := make([]blogapi.Blog, 0, len(ids))
	for _, id := range ids {
		if b, ok := s.table[id]; ok {
			out = append(out, b.Clone())
		}
	}
	return out
}

func removeID(ids []blogapi.ID, id blogapi.ID) []blogapi.ID {
	out := ids[:0:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func clamp(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
