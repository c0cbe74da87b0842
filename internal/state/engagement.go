package state

import (
	"context"

	"github.com/google/uuid"

	"github.com/five82/quill/internal/blogapi"
)

// field selects the like or bookmark pair of a blog.
type field struct {
	op       Op
	action   string
	inflight func(*Store) map[blogapi.ID]int
	get      func(blogapi.Blog) blogapi.Engagement
	set      func(*blogapi.Blog, blogapi.Engagement)
	call     func(blogapi.Service, context.Context, string, blogapi.ID) (blogapi.Engagement, error)
}

var likeField = field{
	op:       OpLike,
	action:   "like blog",
	inflight: func(s *Store) map[blogapi.ID]int { return s.liking },
	get: func(b blogapi.Blog) blogapi.Engagement {
		return blogapi.Engagement{Count: b.NumberOfLikes, Active: b.IsLiked}
	},
	set: func(b *blogapi.Blog, e blogapi.Engagement) {
		b.NumberOfLikes = clamp(e.Count)
		b.IsLiked = e.Active
	},
	call: blogapi.Service.ToggleLike,
}

var bookmarkField = field{
	op:       OpBookmark,
	action:   "bookmark blog",
	inflight: func(s *Store) map[blogapi.ID]int { return s.bookmarking },
	get: func(b blogapi.Blog) blogapi.Engagement {
		return blogapi.Engagement{Count: b.NumberOfBookmarks, Active: b.IsBookmarked}
	},
	set: func(b *blogapi.Blog, e blogapi.Engagement) {
		b.NumberOfBookmarks = clamp(e.Count)
		b.IsBookmarked = e.Active
	},
	call: blogapi.Service.ToggleBookmark,
}

// ToggleLike flips the like on a blog optimistically, then reconciles with
// the server. On failure the blog's prior like state is restored.
func (s *Store) ToggleLike(ctx context.Context, id blogapi.ID) (blogapi.Engagement, error) {
	return s.toggle(ctx, likeField, id)
}

// ToggleBookmark flips the bookmark on a blog optimistically, then reconciles
// with the server. On failure the blog's prior bookmark state is restored.
// The bookmark list itself is only refreshed by FetchBookmarkedBlogs.
func (s *Store) ToggleBookmark(ctx context.Context, id blogapi.ID) (blogapi.Engagement, error) {
	return s.toggle(ctx, bookmarkField, id)
}

func (s *Store) toggle(ctx context.Context, f field, id blogapi.ID) (blogapi.Engagement, error) {
	opID := uuid.NewString()

	s.mu.Lock()
	token := s.token
	if token == "" {
		s.mu.Unlock()
		return blogapi.Engagement{}, s.reject(f.op, &AuthRequiredError{Action: f.action})
	}

	// The prior pair belongs to this call alone; rollback never reads shared state.
	prior, known := blogapi.Engagement{}, false
	if b, ok := s.table[id]; ok {
		prior, known = f.get(b), true
		next := blogapi.Engagement{Active: !prior.Active, Count: prior.Count + 1}
		if prior.Active {
			next.Count = prior.Count - 1
		}
		f.set(&b, next)
		s.table[id] = b
	}
	f.inflight(s)[id]++
	ctx, req := s.beginLocked(ctx, f.op)
	s.notifyLocked()
	s.mu.Unlock()

	s.logger.Debug("toggle started", "op", f.op.String(), "op_id", opID, "blog_id", id.String())

	result, err := f.call(s.api, ctx, token, id)

	s.mu.Lock()
	defer s.mu.Unlock()

	m := f.inflight(s)
	if m[id] <= 1 {
		delete(m, id)
	} else {
		m[id]--
	}

	b, present := s.table[id]
	switch {
	case err == nil:
		if present {
			f.set(&b, result)
			s.table[id] = b
		}
		s.ops[f.op].settle(req.epoch, nil)
	default:
		if present && known {
			f.set(&b, prior)
			s.table[id] = b
			s.logger.Info("toggle rolled back",
				"op", f.op.String(),
				"op_id", opID,
				"blog_id", id.String(),
				"count", prior.Count,
				"active", prior.Active,
			)
		}
		if ctx.Err() != nil {
			s.ops[f.op].abandon(req.epoch)
		} else {
			s.logger.Warn("operation failed", "op", f.op.String(), "op_id", opID, "error", err)
			s.ops[f.op].settle(req.epoch, err)
		}
	}
	s.pruneLocked()
	s.notifyLocked()

	if err != nil {
		return blogapi.Engagement{}, err
	}
	result.Count = clamp(result.Count)
	return result, nil
}
