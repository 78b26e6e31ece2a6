package engine

import (
	"log/slog"
	"time"

	"github.com/roach88/topicdb/internal/fsys"
	"github.com/roach88/topicdb/internal/record"
	"github.com/roach88/topicdb/internal/store"
)

// Controller performs navigation operations for one resource kind, relative
// to the directory of the context that owns it.
type Controller interface {
	// Create makes a new resource. Returns *ResourceError with
	// CodeAlreadyExists when id is taken.
	Create(id string) (string, error)

	// List returns one row per resource of this kind, sorted by name.
	List() ([]Row, error)

	// Drop removes a resource. Returns *ResourceError with CodeNotFound when
	// id is absent.
	Drop(id string) (string, error)

	// Open returns OpenContext for an existing resource, or Error.
	Open(id string) Response

	// Compact returns OK, Invalid or Error.
	Compact(id string) Response
}

// env is the session-wide state shared by every context and controller.
type env struct {
	backend fsys.Backend
	home    string
	ext     string
	ids     record.IDGenerator
	now     func() time.Time
	logger  *slog.Logger
}

// openLog replays the topic file at path with the session's generators.
func (e *env) openLog(path string) (*store.Log, error) {
	return store.Open(e.backend, path,
		store.WithIDGenerator(e.ids),
		store.WithClock(e.now),
		store.WithLogger(e.logger),
	)
}

// controllers builds the fixed TOPIC/DIRECTORY table for a directory.
func (e *env) controllers(dir string) map[Target]Controller {
	return map[Target]Controller{
		TargetTopic:     &TopicController{env: e, dir: dir},
		TargetDirectory: &DirectoryController{env: e, dir: dir},
	}
}

func nameRows(names []string) []Row {
	rows := make([]Row, len(names))
	for i, n := range names {
		rows[i] = Row{Value: n}
	}
	return rows
}
