package store

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/roach88/topicdb/internal/fsys"
	"github.com/roach88/topicdb/internal/record"
)

// ErrNotFound is returned by Update and Delete for ids that are not visible.
var ErrNotFound = errors.New("store: record not found")

// Log is one topic's journal plus its materialized state.
type Log struct {
	backend fsys.Backend
	path    string
	ids     record.IDGenerator
	now     func() time.Time
	logger  *slog.Logger

	// records maps id -> latest visible record.
	records map[string]*entry

	// lines is the number of lines in the file.
	lines int

	// tombstones counts Delete lines still present in the file.
	tombstones int

	// unterminated is set while the file's last line lacks its newline.
	unterminated bool
}

type entry struct {
	rec record.Record

	// first is the 0-based line index where the id became visible; List
	// orders by it.
	first int
}

// Option configures a Log.
type Option func(*Log)

// WithIDGenerator sets the id source for Add. Default: record.UUIDv7Generator.
func WithIDGenerator(g record.IDGenerator) Option {
	return func(l *Log) {
		l.ids = g
	}
}

// WithClock sets the time source used for backup names. Default: time.Now.
func WithClock(now func() time.Time) Option {
	return func(l *Log) {
		l.now = now
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Log) {
		l.logger = logger
	}
}

// Open replays the log file at path into memory.
//
// Returns a wrapped *record.FormatError for a malformed line and a wrapped
// backend error if the file cannot be read.
func Open(backend fsys.Backend, path string, opts ...Option) (*Log, error) {
	l := &Log{
		backend: backend,
		path:    fsys.Clean(path),
		ids:     record.UUIDv7Generator{},
		now:     time.Now,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}

	if err := l.Refresh(); err != nil {
		return nil, err
	}
	return l, nil
}

// Path returns the backend path of the log file.
func (l *Log) Path() string {
	return l.path
}

// Len returns the number of lines physically present in the log.
func (l *Log) Len() int {
	return l.lines
}

// Stats summarizes the physical log against its visible state.
type Stats struct {
	Lines      int `json:"lines"`
	Records    int `json:"records"`
	Tombstones int `json:"tombstones"`
	Superseded int `json:"superseded"`
}

// Stats reports line counts. After Compact, Lines == Records.
func (l *Log) Stats() Stats {
	return Stats{
		Lines:      l.lines,
		Records:    len(l.records),
		Tombstones: l.tombstones,
		Superseded: l.lines - len(l.records) - l.tombstones,
	}
}

func (l *Log) readErr(op string, err error) error {
	return fmt.Errorf("%s %s: %w", op, l.path, err)
}
