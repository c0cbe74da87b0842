package state

import (
	"errors"
	"testing"
)

func TestSlotPublishesOutcomeWhenBatchSettles(t *testing.T) {
	var s slot
	boom := errors.New("boom")

	e1 := s.start()
	e2 := s.start()
	s.settle(e1, boom)

	st := s.state(OpLike)
	if !st.Pending || st.Err != nil {
		t.Fatalf("state = %+v, want pending without error while a request is in flight", st)
	}

	s.settle(e2, nil)
	st = s.state(OpLike)
	if st.Pending || !errors.Is(st.Err, boom) || st.Success {
		t.Fatalf("state = %+v, want settled with boom", st)
	}

	e3 := s.start()
	st = s.state(OpLike)
	if st.Err != nil {
		t.Fatalf("start should clear previous error, got %v", st.Err)
	}
	s.settle(e3, nil)
	if st = s.state(OpLike); !st.Success {
		t.Fatalf("state = %+v, want success", st)
	}
}

func TestSlotAbandonLeavesIdle(t *testing.T) {
	var s slot
	s.abandon(s.start())
	st := s.state(OpGetBlog)
	if st.Pending || st.Err != nil || st.Success {
		t.Fatalf("state = %+v, want idle", st)
	}

	e1 := s.start()
	e2 := s.start()
	s.settle(e1, nil)
	s.abandon(e2)
	if st = s.state(OpGetBlog); !st.Success {
		t.Fatalf("state = %+v, want success from the settled request", st)
	}
}

func TestSlotResetIgnoresEarlierRequests(t *testing.T) {
	var s slot
	old := s.start()
	s.reset()

	if st := s.state(OpAuthorProfile); st.Pending || st.Err != nil || st.Success {
		t.Fatalf("state after reset = %+v, want idle", st)
	}

	cur := s.start()
	s.settle(old, errors.New("stale"))
	s.abandon(old)

	st := s.state(OpAuthorProfile)
	if !st.Pending || st.Err != nil || st.Success {
		t.Fatalf("state = %+v, want the newer request still pending", st)
	}

	s.settle(cur, nil)
	if st = s.state(OpAuthorProfile); st.Pending || !st.Success {
		t.Fatalf("state = %+v, want success from the newer request", st)
	}
}

func TestOpStateMessageFallsBack(t *testing.T) {
	tests := []struct {
		name string
		st   OpState
		want string
	}{
		{"none", OpState{Op: OpLogin}, ""},
		{"message", OpState{Op: OpLogin, Err: errors.New("Invalid credentials")}, "Invalid credentials"},
		{"empty", OpState{Op: OpLogin, Err: errors.New(" ")}, "Login failed"},
		{"list", OpState{Op: OpListBlogs, Err: errors.New("")}, "Failed to load blogs"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.st.Message(); got != tt.want {
				t.Fatalf("Message() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOpSupersedes(t *testing.T) {
	for _, op := range []Op{OpListBlogs, OpCategoryBlogs, OpGetBlog, OpAuthorProfile, OpAuthorBlogs, OpBookmarkedBlogs} {
		if !op.supersedes() {
			t.Fatalf("%s should supersede", op)
		}
	}
	for _, op := range []Op{OpLike, OpBookmark, OpCreateBlog, OpDeleteBlog, OpLogin} {
		if op.supersedes() {
			t.Fatalf("%s should not supersede", op)
		}
	}
	if Op(99).String() != "unknown" {
		t.Fatalf("out of range op should be unknown")
	}
}
