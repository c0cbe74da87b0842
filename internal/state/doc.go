// Package state is quill's client state store.
//
// # Overview
//
// The Store keeps everything the UI renders (session, blog listings, the
// current blog, categories, bookmarks, the author view) consistent with the
// blog API while requests are in flight, fail, or arrive out of order. It is
// constructed once by internal/app and shared by the TUI and the CLI.
//
// # Architecture
//
//	UI intent ──→ Store method ──→ blogapi.Service ──→ HTTP
//	                  │                    │
//	                  │ begin(op)          │ settle
//	                  ↓                    ↓
//	            lifecycle slot ←── finish(op, apply) ──→ Changes() signal
//	                                                          ↓
//	                                                   UI: Snapshot()
//
// The store is split by concern:
//
//   - session.go: token, user, login/register/profile, author view
//   - content.go: listings, current blog, CRUD, categories, uploads, bookmarks
//   - engagement.go: optimistic like and bookmark toggles
//   - ops.go: Op identifiers and the per-operation lifecycle
//   - snapshot.go: materialized, independent copies for rendering
//
// # Entity Table
//
// Blogs live once in an id-keyed table. The main list, the category list,
// the bookmark list, the author list and the current blog hold ids only, so
// one update is visible in every view. Snapshot materializes each view as
// independent copies. Entities no view references are pruned.
//
// A listing payload replaces the whole entity, including like and bookmark
// fields. Counters are clamped at zero on every write.
//
// # Request Lifecycle
//
// Every operation has an OpState with Pending, Err and Success. Starting an
// operation clears its previous outcome. Pending and a settled outcome are
// never reported together; when several requests of one op overlap (toggles
// on different blogs) the outcome is published once the last one settles.
// ClearError and ClearSuccess reset each half independently.
//
// Validation and missing-token failures never reach the network. They are
// returned and recorded in the op's slot like any other error.
//
// # Superseding Reads
//
// ListBlogs, ListBlogsByCategory, GetBlog, the author fetches and
// FetchBookmarkedBlogs run on lanes. Starting a request cancels the previous
// one on the same lane, and a response from an older generation is dropped
// with ErrSuperseded. A request whose caller's context ends is dropped
// without recording an error.
//
// # Optimistic Toggles
//
//  1. Without a token: AuthRequiredError, no data changes.
//  2. Flip the flag and move the counter by one, capturing the prior pair on
//     the call's own stack.
//  3. Call the API.
//  4. Success: write the server's count and flag.
//  5. Failure: write back the captured pair and record the error.
//
// In-flight toggles are tracked per blog id in sets (Snapshot.Liking,
// Snapshot.Bookmarking). The store does not refuse a second toggle on the
// same blog; the UI disables it.
//
// # Change Notification
//
// Changes returns a channel with a one-slot buffer. Every mutation does a
// non-blocking send, so a slow reader sees at least one signal after the
// latest change and then reads Snapshot.
package state
