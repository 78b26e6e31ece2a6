// Package record defines the journal record type shared by every topic log.
//
// This package contains the record model, its line framing and id
// generation. All other internal packages import record; record imports
// nothing internal.
//
// # Line Format
//
// Each record occupies exactly one newline-terminated line:
//
//	<id: 36 bytes><action: 1 byte><content: remaining bytes>\n
//
// The id is a hyphenated UUID string, the action is one of A (add),
// U (update) or D (delete). Content is NFC-normalized on write and may not
// contain a newline.
//
// Parsing is defensive: a short line, a malformed id or an unknown action
// yields a *FormatError carrying the 1-based line number, never a panic.
package record
