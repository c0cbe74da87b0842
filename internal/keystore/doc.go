// Package keystore persists small string values across runs.
//
// quill keeps its session token here so a restart resumes the session
// without prompting for credentials. SQLite backs the on-disk store; Memory
// is used by tests and when no data directory is available.
package keystore
