// Package app provides the orchestration layer for quill.
//
// # Overview
//
// This package wires together configuration, logging, session persistence,
// the blog API client, the state store and the UI. It is the composition
// root: the one place where a state.Store is constructed.
//
// # Architecture
//
//  1. Load config from ~/.config/quill/config.toml (plus .env and QUILL_* overrides)
//  2. Load UI preferences (theme, page size)
//  3. Open the JSON log file; the TUI owns stdout
//  4. Open the sqlite session store, falling back to memory
//  5. Build the blogapi.Client and the state.Store
//  6. Restore a persisted token
//  7. Start the initial load and run the TUI until exit or cancellation
//
// # Components
//
//   - app.go: Open, Env, Run and logger setup
//   - bootstrap.go: concurrent initial load of categories, blogs and profile
//   - session.go: login and logout for the CLI subcommands
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       │
//	       ├─────> Open()             config, prefs, logger, keystore, client, store
//	       ├─────> go bootstrap()     Categories / ReloadBlogs / FetchProfile
//	       └─────> ui.Run()           TUI (blocks)
//
// The UI never polls. It waits on Store.Changes() and renders Store.Snapshot().
//
// # Error Handling
//
// Configuration errors abort startup. A log file or session store that cannot
// be opened degrades (discarded logs, in-memory token). Initial load failures
// are recorded in the store's lifecycle slots, logged, and shown by the UI.
package app
