// Package store implements the per-topic record log.
//
// A topic is an append-only journal of records (see package record). The
// visible state of a topic is the result of replaying that journal in file
// order:
//   - Add and Update upsert the record for their id
//   - Delete removes the id (the tombstone line stays on disk)
//   - the last entry per id wins
//
// # Critical Patterns
//
// Replay Determinism
//   - Visible state always equals a full in-order replay of the file
//   - Refresh discards memory and replays again; a failed replay keeps the
//     previous state
//
// Append-Only Writes
//   - Add, Update and Delete each append exactly one line and nothing else
//   - Update and Delete of an unknown id append nothing (ErrNotFound)
//   - No file handle is held between calls; the backend opens, appends and
//     closes per write
//
// Compaction Swap
//   - The compacted log is written to "<path>.compact" first
//   - The original is renamed to "<path>.bkp_<YYYYMMDD_HHMMSSffffff>"
//   - The temp file is renamed into place, then the log is replayed
//   - Any failure before the final rename leaves the original untouched
//
// The store is single-writer: no locking is done and concurrent external
// writers to the same file are unsupported.
package store
