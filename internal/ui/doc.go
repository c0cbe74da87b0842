// Package ui provides the terminal user interface for quill.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. It never talks to the blog API directly:
// every action calls a state.Store operation off the UI goroutine, and every
// screen is drawn from the latest state.Snapshot. The model re-reads the
// snapshot whenever Store.Changes() fires, so optimistic updates and
// rollbacks from other views show up without polling.
//
// # Package Structure
//
//   - app.go: Model, Update loop, view switching, toasts and Run
//   - commands.go: messages and tea.Cmd helpers wrapping store calls
//   - feed.go: blog listings (feed, category feed, bookmarks, author blogs)
//   - detail.go: the single blog view
//   - categories.go: category picker
//   - profile.go: own profile and author pages
//   - activity.go: tail of the JSON log file
//   - forms.go, modal.go: login, register, search, compose, profile and delete dialogs
//   - header.go: header, command bar and status line
//   - theme.go, style_helpers.go, layout.go, strings.go: rendering helpers
//
// # Views
//
//   - Feed (1): the main paginated listing with search and category filter
//   - Categories (2): category list; enter opens that category's feed
//   - Bookmarks (3): the signed-in user's bookmarked blogs
//   - Profile (4): own profile, login and registration
//   - Activity (5): recent log records, refreshed while visible
//
// Detail, Category and Author views are drill-downs; esc returns to the view
// they were opened from and clears what they held in the store.
//
// # Errors and Feedback
//
// Failed operations are recorded by the store per operation. The UI shows
// the first recorded error as a toast and clears it from the store when the
// toast expires, so queued errors surface one at a time. One-shot success
// flags (login, publish, delete) are consumed the same way.
//
// # Usage
//
//	err := ui.Run(ui.Options{
//		Context:   ctx,
//		Store:     store,
//		Config:    &cfg,
//		PrefsPath: prefs.DefaultPath(),
//	})
package ui
