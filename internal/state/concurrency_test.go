package state

import (
	"context"
	"sync/atomic"

	"go.uber.org/mock/gomock"

	"github.com/five82/quill/internal/blogapi"
)

// gate holds mocked calls until the test releases them, indexed by arrival.
type gate struct {
	n       atomic.Int32
	entered chan int
	release []chan error
}

func newGate(n int) *gate {
	g := &gate{entered: make(chan int, n), release: make([]chan error, n)}
	for i := range g.release {
		g.release[i] = make(chan error, 1)
	}
	return g
}

// wait blocks the calling request until release[i] fires and returns the
// error it was released with.
func (g *gate) wait() error {
	i := int(g.n.Add(1)) - 1
	g.entered <- i
	return <-g.release[i]
}

func engagementOf(b blogapi.Blog) blogapi.Engagement {
	return blogapi.Engagement{Count: b.NumberOfLikes, Active: b.IsLiked}
}

// overlappingLikeFailures starts two likes on the same blog, then fails them
// in order, checking the blog after each failure.
func (s *StoreTestSuite) overlappingLikeFailures(order []int, want []blogapi.Engagement) {
	s.signIn()
	s.seedList(testBlog("a", 3, false))

	g := newGate(2)
	s.api.EXPECT().ToggleLike(gomock.Any(), "tok", blogapi.ID("a")).DoAndReturn(
		func(context.Context, string, blogapi.ID) (blogapi.Engagement, error) {
			return blogapi.Engagement{}, g.wait()
		},
	).Times(2)

	errs := []chan error{make(chan error, 1), make(chan error, 1)}
	for i := range errs {
		go func() {
			_, err := s.store.ToggleLike(s.ctx, "a")
			errs[i] <- err
		}()
		<-g.entered
	}

	snap := s.store.Snapshot()
	s.Equal(blogapi.Engagement{Count: 3, Active: false}, engagementOf(snap.Blogs[0]))
	s.True(snap.IsLiking("a"))
	s.True(snap.Op(OpLike).Pending)

	for k, i := range order {
		g.release[i] <- &blogapi.APIError{Status: 500, Message: "boom"}
		s.Require().Error(<-errs[i])

		snap = s.store.Snapshot()
		s.Equal(want[k], engagementOf(snap.Blogs[0]), "after failure %d", k+1)
		if k == 0 {
			s.True(snap.IsLiking("a"))
			s.True(snap.Op(OpLike).Pending)
			s.NoError(snap.Op(OpLike).Err)
		}
	}

	s.False(snap.IsLiking("a"))
	s.False(snap.Op(OpLike).Pending)
	s.Equal("boom", snap.Op(OpLike).Message())
}

func (s *StoreTestSuite) TestOverlappingLikesRollBackEarlierCallFirst() {
	// First call saw (3,false), second saw (4,true).
	s.overlappingLikeFailures([]int{0, 1}, []blogapi.Engagement{
		{Count: 3, Active: false},
		{Count: 4, Active: true},
	})
}

func (s *StoreTestSuite) TestOverlappingLikesRollBackLaterCallFirst() {
	s.overlappingLikeFailures([]int{1, 0}, []blogapi.Engagement{
		{Count: 4, Active: true},
		{Count: 3, Active: false},
	})
}

func (s *StoreTestSuite) TestConcurrentLikesShareOneOutcome() {
	s.signIn()
	s.seedList(testBlog("a", 0, false), testBlog("b", 5, false))

	g := newGate(2)
	s.api.EXPECT().ToggleLike(gomock.Any(), "tok", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, id blogapi.ID) (blogapi.Engagement, error) {
			if err := g.wait(); err != nil {
				return blogapi.Engagement{}, err
			}
			if id == "b" {
				return blogapi.Engagement{Count: 6, Active: true}, nil
			}
			return blogapi.Engagement{Count: 1, Active: true}, nil
		},
	).Times(2)

	errA, errB := make(chan error, 1), make(chan error, 1)
	go func() {
		_, err := s.store.ToggleLike(s.ctx, "a")
		errA <- err
	}()
	<-g.entered
	go func() {
		_, err := s.store.ToggleLike(s.ctx, "b")
		errB <- err
	}()
	<-g.entered

	snap := s.store.Snapshot()
	s.Len(snap.Liking, 2)
	s.True(snap.IsLiking("a"))
	s.True(snap.IsLiking("b"))
	s.True(snap.Op(OpLike).Pending)
	s.Equal(blogapi.Engagement{Count: 1, Active: true}, engagementOf(snap.Blogs[0]))
	s.Equal(blogapi.Engagement{Count: 6, Active: true}, engagementOf(snap.Blogs[1]))

	g.release[0] <- &blogapi.APIError{Status: 500, Message: "boom"}
	s.Require().Error(<-errA)

	snap = s.store.Snapshot()
	s.False(snap.IsLiking("a"))
	s.True(snap.IsLiking("b"))
	s.True(snap.Op(OpLike).Pending)
	s.NoError(snap.Op(OpLike).Err)
	s.False(snap.Op(OpLike).Success)
	s.Equal(blogapi.Engagement{Count: 0, Active: false}, engagementOf(snap.Blogs[0]))

	g.release[1] <- nil
	s.Require().NoError(<-errB)

	snap = s.store.Snapshot()
	s.Empty(snap.Liking)
	s.False(snap.Op(OpLike).Pending)
	s.Equal("boom", snap.Op(OpLike).Message())
	s.False(snap.Op(OpLike).Success)
	s.Equal(blogapi.Engagement{Count: 6, Active: true}, engagementOf(snap.Blogs[1]))
}

func (s *StoreTestSuite) TestClearedAuthorRequestDoesNotSettleNewerOne() {
	g := newGate(2)
	s.api.EXPECT().User(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, id blogapi.ID) (*blogapi.User, error) {
			if err := g.wait(); err != nil {
				return nil, err
			}
			return &blogapi.User{ID: id, Username: "user " + string(id)}, nil
		},
	).Times(2)

	first := make(chan error, 1)
	go func() {
		_, err := s.store.FetchAuthorProfile(s.ctx, "1")
		first <- err
	}()
	<-g.entered

	s.store.ClearAuthor()
	s.False(s.store.Snapshot().Op(OpAuthorProfile).Pending)

	second := make(chan error, 1)
	go func() {
		_, err := s.store.FetchAuthorProfile(s.ctx, "2")
		second <- err
	}()
	<-g.entered

	g.release[0] <- nil
	s.ErrorIs(<-first, ErrSuperseded)

	snap := s.store.Snapshot()
	s.True(snap.Op(OpAuthorProfile).Pending)
	s.True(snap.Pending())
	s.False(snap.Op(OpAuthorProfile).Success)
	s.Nil(snap.AuthorProfile)

	g.release[1] <- nil
	s.Require().NoError(<-second)

	snap = s.store.Snapshot()
	s.False(snap.Op(OpAuthorProfile).Pending)
	s.True(snap.Op(OpAuthorProfile).Success)
	s.Require().NotNil(snap.AuthorProfile)
	s.Equal(blogapi.ID("2"), snap.AuthorProfile.ID)
}

func (s *StoreTestSuite) TestLogoutDuringLoginStaysLoggedOut() {
	creds := blogapi.Credentials{Email: "ann@example.com", Password: "pw"}
	g := newGate(1)
	s.api.EXPECT().Login(gomock.Any(), creds).DoAndReturn(
		func(context.Context, blogapi.Credentials) (string, error) {
			return "tok-late", g.wait()
		},
	)

	done := make(chan error, 1)
	go func() {
		_, err := s.store.Login(s.ctx, creds)
		done <- err
	}()
	<-g.entered

	s.store.Logout(s.ctx)
	g.release[0] <- nil
	s.ErrorIs(<-done, ErrSuperseded)

	snap := s.store.Snapshot()
	s.False(snap.LoggedIn())
	s.False(snap.NeedsProfile())
	s.False(snap.Op(OpLogin).Pending)
	s.False(snap.Op(OpLogin).Success)

	token, err := s.keys.Get(s.ctx, TokenKey)
	s.Require().NoError(err)
	s.Empty(token)
}

func (s *StoreTestSuite) TestProfileReturningAfterLogoutPublishesNothing() {
	s.signIn()
	g := newGate(1)
	s.api.EXPECT().Profile(gomock.Any(), "tok").DoAndReturn(
		func(context.Context, string) (*blogapi.User, error) {
			if err := g.wait(); err != nil {
				return nil, err
			}
			return &blogapi.User{ID: "1", Username: "ann"}, nil
		},
	)

	done := make(chan error, 1)
	go func() {
		_, err := s.store.FetchProfile(s.ctx)
		done <- err
	}()
	<-g.entered

	s.store.Logout(s.ctx)
	g.release[0] <- nil
	s.ErrorIs(<-done, ErrSuperseded)

	snap := s.store.Snapshot()
	s.Nil(snap.User)
	s.False(snap.Op(OpProfile).Pending)
	s.False(snap.Op(OpProfile).Success)
	s.NoError(snap.Op(OpProfile).Err)
}

func (s *StoreTestSuite) TestUpdateBlogPrunesPreviousCurrent() {
	s.signIn()
	s.seedList(testBlog("a", 0, false))
	s.seedCurrent(testBlog("c", 0, false))

	input := blogapi.BlogInput{Title: "renamed"}
	updated := testBlog("a", 0, false)
	updated.Title = "renamed"
	s.api.EXPECT().UpdateBlog(gomock.Any(), "tok", blogapi.ID("a"), input).Return(&updated, nil)

	_, err := s.store.UpdateBlog(s.ctx, "a", input)
	s.Require().NoError(err)

	s.store.mu.RLock()
	_, kept := s.store.table["c"]
	s.store.mu.RUnlock()
	s.False(kept)
	s.Equal(blogapi.ID("a"), s.store.Snapshot().CurrentBlog.ID)
}
