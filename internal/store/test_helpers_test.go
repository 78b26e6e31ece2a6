package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/topicdb/internal/fsys"
	"github.com/roach88/topicdb/internal/record"
	"github.com/roach88/topicdb/internal/testutil"
)

const topicPath = "notes.tpc"

// newBackend returns an OS backend rooted in a temp dir.
func newBackend(t *testing.T) fsys.Backend {
	t.Helper()
	b, err := fsys.NewOS(filepath.Join(t.TempDir(), "home"))
	if err != nil {
		t.Fatalf("NewOS() failed: %v", err)
	}
	return b
}

// createTopic creates an empty log file and opens it with deterministic ids
// and a frozen clock.
func createTopic(t *testing.T, b fsys.Backend) *Log {
	t.Helper()
	if err := b.Create(topicPath); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	return openTopic(t, b, record.NewSequenceGenerator())
}

func openTopic(t *testing.T, b fsys.Backend, ids record.IDGenerator) *Log {
	t.Helper()
	clock := testutil.NewClock(testutil.FixedTime(), 0)
	l, err := Open(b, topicPath, WithIDGenerator(ids), WithClock(clock.Now))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	return l
}

func mustAdd(t *testing.T, l *Log, content string) string {
	t.Helper()
	id, err := l.Add(content)
	if err != nil {
		t.Fatalf("Add(%q) failed: %v", content, err)
	}
	return id
}

func readFile(t *testing.T, b fsys.Backend, name string) string {
	t.Helper()
	data, err := b.ReadFile(name)
	if err != nil {
		t.Fatalf("ReadFile(%s) failed: %v", name, err)
	}
	return string(data)
}
