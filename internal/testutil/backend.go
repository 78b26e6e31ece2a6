package testutil

import (
	"errors"
	"sync"

	"github.com/roach88/topicdb/internal/fsys"
)

// ErrInjected is returned by FaultyBackend for every injected failure.
var ErrInjected = errors.New("testutil: injected failure")

// FaultyBackend wraps a Backend and fails selected operations.
//
// Faults are keyed by operation name ("append", "rename", "create", "read",
// "remove", "mkdir", "readdir", "stat") and matched against the first path
// argument. An empty path in a fault matches every path.
type FaultyBackend struct {
	fsys.Backend

	mu     sync.Mutex
	faults map[string][]string
	calls  map[string]int
}

// NewFaultyBackend wraps b with no faults installed.
func NewFaultyBackend(b fsys.Backend) *FaultyBackend {
	return &FaultyBackend{
		Backend: b,
		faults:  make(map[string][]string),
		calls:   make(map[string]int),
	}
}

// Fail makes op fail for name ("" = any path).
func (f *FaultyBackend) Fail(op, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.faults[op] = append(f.faults[op], fsys.Clean(name))
}

// Reset removes all faults.
func (f *FaultyBackend) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.faults = make(map[string][]string)
}

// Calls returns how many times op was attempted.
func (f *FaultyBackend) Calls(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *FaultyBackend) check(op, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
	name = fsys.Clean(name)
	for _, target := range f.faults[op] {
		if target == "" || target == name {
			return ErrInjected
		}
	}
	return nil
}

func (f *FaultyBackend) Mkdir(name string) error {
	if err := f.check("mkdir", name); err != nil {
		return err
	}
	return f.Backend.Mkdir(name)
}

func (f *FaultyBackend) ReadDir(name string, kind fsys.Kind) ([]string, error) {
	if err := f.check("readdir", name); err != nil {
		return nil, err
	}
	return f.Backend.ReadDir(name, kind)
}

func (f *FaultyBackend) Rename(oldName, newName string) error {
	if err := f.check("rename", oldName); err != nil {
		return err
	}
	return f.Backend.Rename(oldName, newName)
}

func (f *FaultyBackend) Create(name string) error {
	if err := f.check("create", name); err != nil {
		return err
	}
	return f.Backend.Create(name)
}

func (f *FaultyBackend) Append(name string, data []byte) error {
	if err := f.check("append", name); err != nil {
		return err
	}
	return f.Backend.Append(name, data)
}

func (f *FaultyBackend) ReadFile(name string) ([]byte, error) {
	if err := f.check("read", name); err != nil {
		return nil, err
	}
	return f.Backend.ReadFile(name)
}

func (f *FaultyBackend) Stat(name string) (fsys.Kind, error) {
	if err := f.check("stat", name); err != nil {
		return 0, err
	}
	return f.Backend.Stat(name)
}

func (f *FaultyBackend) Remove(name string) error {
	if err := f.check("remove", name); err != nil {
		return err
	}
	return f.Backend.Remove(name)
}
