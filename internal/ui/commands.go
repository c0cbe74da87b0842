package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/quill/internal/blogapi"
	"github.com/five82/quill/internal/logtail"
	"github.com/five82/quill/internal/state"
)

// Messages

// changeMsg reports that the store mutated since the last snapshot.
type changeMsg struct{}

type snapshotMsg state.Snapshot

// opDoneMsg is sent when a store call issued by the UI returns. Outcomes are
// read from the snapshot; this only releases UI-side bookkeeping.
type opDoneMsg struct {
	op  state.Op
	id  blogapi.ID
	err error
}

// toastMsg shows a message that did not come from a store operation.
type toastMsg struct {
	text   string
	danger bool
}

type toastExpiredMsg struct{ seq int }

type activityMsg struct {
	entries []logtail.Entry
	err     error
}

type activityTickMsg time.Time

// Commands

// waitForChange blocks until the store signals a change or ctx ends.
func waitForChange(ctx context.Context, changes <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-changes:
			if !ok {
				return nil
			}
			return changeMsg{}
		}
	}
}

func fetchSnapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

// run calls a store operation off the UI goroutine.
func (m Model) run(op state.Op, id blogapi.ID, fn func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return opDoneMsg{op: op, id: id, err: fn(ctx)}
	}
}

// reloadFeed re-issues the main listing with its current filters and page.
func (m Model) reloadFeed() tea.Cmd {
	store := m.store
	return m.run(state.OpListBlogs, "", func(ctx context.Context) error {
		_, err := store.ReloadBlogs(ctx)
		return err
	})
}

func (m Model) readActivity() tea.Cmd {
	path := ""
	if m.config != nil {
		path = m.config.LogFile
	}
	return func() tea.Msg {
		if path == "" {
			return activityMsg{}
		}
		entries, err := logtail.ReadEntries(path, ActivityFetchLimit)
		return activityMsg{entries: entries, err: err}
	}
}

func activityTickCmd() tea.Cmd {
	return tea.Tick(ActivityRefreshInterval, func(t time.Time) tea.Msg {
		return activityTickMsg(t)
	})
}

func toggleKey(op state.Op, id blogapi.ID) string {
	if op == state.OpBookmark {
		return "bookmark:" + id.String()
	}
	return "like:" + id.String()
}
