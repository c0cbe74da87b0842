// Package logtail reads the tail of quill's own log file.
//
// # Overview
//
// quill writes structured JSON records through log/slog to a file, because
// the TUI owns the terminal. The activity view shows the most recent records
// by reading the file back with this package.
//
// # Reading Log Files
//
// Read returns the last maxLines lines using a ring buffer of size maxLines:
// one sequential pass, O(maxLines) memory, lines in chronological order. A
// missing file yields nil, nil.
//
// # Decoding
//
// ReadEntries and ParseLine decode slog's JSON handler output:
//
//	{"time":"...","level":"WARN","msg":"operation failed","op":"like","error":"boom"}
//
// time, level, msg and op become fields of Entry; every other key becomes an
// Attr, sorted by key. Lines that are not JSON keep their text as Message.
package logtail
