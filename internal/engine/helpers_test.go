package engine

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/topicdb/internal/fsys"
	"github.com/roach88/topicdb/internal/record"
	"github.com/roach88/topicdb/internal/testutil"
)

// newOSBackend returns an OS backend rooted in a temp dir.
func newOSBackend(t *testing.T) fsys.Backend {
	t.Helper()
	b, err := fsys.NewOS(filepath.Join(t.TempDir(), "home"))
	require.NoError(t, err)
	return b
}

// newTestEngine builds an engine with sequential ids and a frozen clock.
func newTestEngine(t *testing.T, b fsys.Backend) *Engine {
	t.Helper()
	return New(b,
		WithIDGenerator(record.NewSequenceGenerator()),
		WithClock(testutil.FixedTime),
		WithHome("testhome"),
	)
}

// mustOK sends line and requires an OK response.
func mustOK(t *testing.T, e *Engine, line string) OK {
	t.Helper()
	resp := e.Request(line)
	ok, isOK := resp.(OK)
	require.Truef(t, isOK, "%q: want OK, got %T: %s", line, resp, resp)
	return ok
}

// mustOpen sends line and requires an OpenContext response.
func mustOpen(t *testing.T, e *Engine, line string) OpenContext {
	t.Helper()
	resp := e.Request(line)
	open, ok := resp.(OpenContext)
	require.Truef(t, ok, "%q: want OpenContext, got %T: %s", line, resp, resp)
	return open
}

func id(n int64) string {
	return record.SequenceID(n)
}
