package state

import (
	"context"
	"fmt"
	"strings"

	"github.com/five82/quill/internal/blogapi"
)

const authorPageSize = 50

// Restore loads a persisted token into the session. The profile is not
// fetched; callers check Snapshot().NeedsProfile().
func (s *Store) Restore(ctx context.Context) error {
	token, err := s.keys.Get(ctx, TokenKey)
	if err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	s.mutate(func() {
		s.token = token
		s.needsProfile = true
	})
	return nil
}

// Register creates an account. On success the returned user becomes the
// session user; registering does not log in.
func (s *Store) Register(ctx context.Context, reg blogapi.Registration) (*blogapi.User, error) {
	reg.Username = strings.TrimSpace(reg.Username)
	reg.Email = strings.TrimSpace(reg.Email)
	if err := validateRegistration(reg); err != nil {
		return nil, s.reject(OpRegister, err)
	}

	ctx, req := s.begin(ctx, OpRegister)
	user, err := s.api.Register(ctx, reg)
	err = s.finish(ctx, OpRegister, req, err, func() {
		s.user = user.Clone()
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Login exchanges credentials for a token, persists it and marks the session
// as waiting for its profile.
func (s *Store) Login(ctx context.Context, creds blogapi.Credentials) (string, error) {
	creds.Email = strings.TrimSpace(creds.Email)
	if err := validateCredentials(creds); err != nil {
		return "", s.reject(OpLogin, err)
	}

	ctx, req := s.begin(ctx, OpLogin)
	token, err := s.api.Login(ctx, creds)
	err = s.finish(ctx, OpLogin, req, err, func() {
		s.token = token
		s.user = nil
		s.needsProfile = true
	})
	if err != nil {
		return "", err
	}
	s.persistToken(ctx, token)
	return token, nil
}

// persistToken writes token to the key store unless the session moved on
// since it was set, for example through a Logout that raced the login.
func (s *Store) persistToken(ctx context.Context, token string) {
	s.keyMu.Lock()
	defer s.keyMu.Unlock()

	s.mu.RLock()
	current := s.token
	s.mu.RUnlock()
	if current != token {
		return
	}
	if err := s.keys.Set(ctx, TokenKey, token); err != nil {
		s.logger.Warn("persist token failed", "error", err)
	}
}

// FetchProfile loads the session user. A token the server rejects is
// discarded from the store and the key store.
func (s *Store) FetchProfile(ctx context.Context) (*blogapi.User, error) {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()
	if token == "" {
		return nil, s.reject(OpProfile, ErrNoToken)
	}

	ctx, req := s.begin(ctx, OpProfile)
	user, err := s.api.Profile(ctx, token)
	invalidate := blogapi.IsUnauthorized(err)
	err = s.finish(ctx, OpProfile, req, err, func() {
		if s.token != token {
			return
		}
		s.user = user.Clone()
		s.needsProfile = false
	})
	if err != nil {
		if invalidate {
			s.invalidate(ctx, token)
		}
		return nil, err
	}
	return user, nil
}

// invalidate ends the session if it still holds token.
func (s *Store) invalidate(ctx context.Context, token string) {
	s.keyMu.Lock()
	defer s.keyMu.Unlock()

	cleared := false
	s.mutate(func() {
		if s.token != token {
			return
		}
		s.clearSessionLocked()
		cleared = true
	})
	if !cleared {
		return
	}
	s.logger.Info("session token rejected, logged out")
	if err := s.keys.Delete(context.WithoutCancel(ctx), TokenKey); err != nil {
		s.logger.Warn("delete token failed", "error", err)
	}
}

// Logout clears the session. It never fails; a key store error is logged.
// Session requests still in flight are discarded when they return, so a
// racing Login cannot sign the user back in.
func (s *Store) Logout(ctx context.Context) {
	s.keyMu.Lock()
	defer s.keyMu.Unlock()

	s.mutate(func() {
		s.clearSessionLocked()
		for _, op := range []Op{OpLogin, OpRegister, OpProfile, OpUpdateProfile, OpBookmarkedBlogs} {
			s.ops[op].reset()
		}
	})
	if err := s.keys.Delete(ctx, TokenKey); err != nil {
		s.logger.Warn("delete token failed", "error", err)
	}
}

func (s *Store) clearSessionLocked() {
	s.token = ""
	s.user = nil
	s.needsProfile = false
	s.authorProfile = nil
	s.authorBlogs = nil
	s.bookmarked = nil
	for _, op := range []Op{OpAuthorProfile, OpAuthorBlogs, OpBookmarkedBlogs} {
		s.cancelLaneLocked(op)
	}
	s.pruneLocked()
}

// cancelLaneLocked cancels and invalidates any in-flight request on op's lane.
func (s *Store) cancelLaneLocked(op Op) {
	l := &s.lanes[op]
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.gen++
}

// UpdateProfile sends the profile update and replaces the session user with
// the server's copy.
func (s *Store) UpdateProfile(ctx context.Context, update blogapi.ProfileUpdate) (*blogapi.User, error) {
	token, err := s.requireToken("update profile")
	if err != nil {
		return nil, s.reject(OpUpdateProfile, err)
	}
	update.Username = strings.TrimSpace(update.Username)
	update.Email = strings.TrimSpace(update.Email)
	if err := validateProfile(update); err != nil {
		return nil, s.reject(OpUpdateProfile, err)
	}

	ctx, req := s.begin(ctx, OpUpdateProfile)
	user, err := s.api.UpdateProfile(ctx, token, update)
	err = s.finish(ctx, OpUpdateProfile, req, err, func() {
		if s.token == token {
			s.user = user.Clone()
		}
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// FetchAuthorProfile loads another user's public profile into the author view.
func (s *Store) FetchAuthorProfile(ctx context.Context, id blogapi.ID) (*blogapi.User, error) {
	if id == "" {
		return nil, s.reject(OpAuthorProfile, &ValidationError{Field: "id", Message: "User ID is required"})
	}
	ctx, req := s.begin(ctx, OpAuthorProfile)
	user, err := s.api.User(ctx, id)
	err = s.finish(ctx, OpAuthorProfile, req, err, func() {
		s.authorProfile = user.Clone()
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// FetchAuthorBlogs loads the blogs written by the given user into the author view.
func (s *Store) FetchAuthorBlogs(ctx context.Context, id blogapi.ID) ([]blogapi.Blog, error) {
	if id == "" {
		return nil, s.reject(OpAuthorBlogs, &ValidationError{Field: "id", Message: "User ID is required"})
	}
	ctx, req := s.begin(ctx, OpAuthorBlogs)
	page, err := s.api.ListBlogs(ctx, blogapi.ListQuery{AuthorID: id, PageSize: authorPageSize})
	err = s.finish(ctx, OpAuthorBlogs, req, err, func() {
		s.authorBlogs = s.putAllLocked(page.Blogs)
		s.pruneLocked()
	})
	if err != nil {
		return nil, err
	}
	return page.Blogs, nil
}

// ClearAuthor drops the author view.
func (s *Store) ClearAuthor() {
	s.mutate(func() {
		s.cancelLaneLocked(OpAuthorProfile)
		s.cancelLaneLocked(OpAuthorBlogs)
		s.authorProfile = nil
		s.authorBlogs = nil
		s.ops[OpAuthorProfile].reset()
		s.ops[OpAuthorBlogs].reset()
		s.pruneLocked()
	})
}
