// Package fsys provides the storage capabilities consumed by topic logs and
// resource controllers.
//
// The core never touches a concrete filesystem. It works against Backend,
// which exposes exactly the operations the record store needs:
//
//   - Mkdir: create one directory
//   - ReadDir: list the names of entries of one kind (files or directories)
//   - Rename: move an entry; the target must not exist
//   - Create: create an empty file; the file must not exist
//   - Append: append bytes to an existing file
//   - ReadFile: read a whole file
//   - Stat: existence check reporting the entry kind
//   - Remove: delete a file or an empty directory
//
// Paths are slash-separated and relative to the backend root. The empty path
// (or ".") names the root itself.
//
// # Implementations
//
//   - OS: a directory on the local filesystem
//   - SQLite: a single database file (or ":memory:") holding every entry as a row
//
// Both return ErrNotExist for missing entries and ErrExist for occupied
// targets, so callers can match with errors.Is regardless of backend.
package fsys
