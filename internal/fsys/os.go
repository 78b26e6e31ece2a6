package fsys

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"syscall"
)

// OS is a Backend rooted at a local directory.
type OS struct {
	root string
}

// NewOS returns a backend rooted at dir, creating the directory if needed.
func NewOS(dir string) (*OS, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("fsys: resolve root %s: %w", dir, err)
	}
	if err := os.MkdirAll(abs, 0o750); err != nil {
		return nil, fmt.Errorf("fsys: init root %s: %w", abs, err)
	}
	return &OS{root: abs}, nil
}

func (o *OS) Root() string { return o.root }

func (o *OS) Close() error { return nil }

// native maps a backend path below the root. Clean strips any "..", so the
// result never escapes the root.
func (o *OS) native(name string) string {
	return filepath.Join(o.root, filepath.FromSlash(Clean(name)))
}

func (o *OS) Mkdir(name string) error {
	return os.Mkdir(o.native(name), 0o750)
}

// ReadDir lists entry names of one kind, sorted by name.
func (o *OS) ReadDir(name string, kind Kind) ([]string, error) {
	entries, err := os.ReadDir(o.native(name))
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		isDir := e.IsDir()
		if (kind == KindDir && isDir) || (kind == KindFile && e.Type().IsRegular()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Rename refuses to replace an existing target so a rename can never
// silently destroy a log.
func (o *OS) Rename(oldName, newName string) error {
	if _, err := os.Lstat(o.native(newName)); err == nil {
		return pathError("rename", newName, ErrExist)
	}
	return os.Rename(o.native(oldName), o.native(newName))
}

func (o *OS) Create(name string) error {
	f, err := os.OpenFile(o.native(name), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	return f.Close()
}

// Append opens, writes and closes the file; nothing is held open across calls.
func (o *OS) Append(name string, data []byte) (err error) {
	f, err := os.OpenFile(o.native(name), os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()
	_, err = f.Write(data)
	return err
}

func (o *OS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(o.native(name))
}

func (o *OS) Stat(name string) (Kind, error) {
	info, err := os.Stat(o.native(name))
	if err != nil {
		return 0, err
	}
	if info.IsDir() {
		return KindDir, nil
	}
	return KindFile, nil
}

func (o *OS) Remove(name string) error {
	err := os.Remove(o.native(name))
	if err != nil && isNotEmpty(err) {
		return pathError("remove", name, ErrNotEmpty)
	}
	return err
}

func isNotEmpty(err error) bool {
	var pe *fs.PathError
	if !errors.As(err, &pe) {
		return false
	}
	return errors.Is(pe.Err, syscall.ENOTEMPTY) || errors.Is(pe.Err, syscall.EEXIST)
}
