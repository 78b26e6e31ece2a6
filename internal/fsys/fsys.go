package fsys

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

var (
	// ErrNotExist reports a missing entry. It matches io/fs.ErrNotExist.
	ErrNotExist = fs.ErrNotExist

	// ErrExist reports that a target is already occupied. It matches io/fs.ErrExist.
	ErrExist = fs.ErrExist

	// ErrNotEmpty reports an attempt to remove a directory that has entries.
	ErrNotEmpty = errors.New("fsys: directory not empty")
)

// Kind classifies backend entries.
type Kind int

const (
	// KindFile is a regular file.
	KindFile Kind = iota + 1

	// KindDir is a directory.
	KindDir
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDir:
		return "directory"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Backend is the storage capability set.
type Backend interface {
	Mkdir(name string) error
	ReadDir(name string, kind Kind) ([]string, error)
	Rename(oldName, newName string) error
	Create(name string) error
	Append(name string, data []byte) error
	ReadFile(name string) ([]byte, error)
	Stat(name string) (Kind, error)
	Remove(name string) error

	// Root describes where the backend keeps its data (directory or database path).
	Root() string

	Close() error
}

// Exists reports whether name exists with the given kind.
// Any error other than ErrNotExist is returned to the caller.
func Exists(b Backend, name string, kind Kind) (bool, error) {
	k, err := b.Stat(name)
	if errors.Is(err, ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return k == kind, nil
}

// Clean canonicalizes a backend path: slash-separated, no leading slash,
// "" for the root.
func Clean(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	cleaned := path.Clean("/" + name)
	return strings.TrimPrefix(cleaned, "/")
}

// Join joins path elements into a cleaned backend path.
func Join(elem ...string) string {
	return Clean(path.Join(elem...))
}

// Split returns the cleaned parent directory and base name of name.
func Split(name string) (dir, base string) {
	name = Clean(name)
	if name == "" {
		return "", ""
	}
	dir, base = path.Split(name)
	return Clean(dir), base
}

func pathError(op, name string, err error) error {
	return &fs.PathError{Op: op, Path: name, Err: err}
}
