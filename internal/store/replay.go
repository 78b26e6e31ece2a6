package store

import (
	"github.com/roach88/topicdb/internal/record"
)

// Refresh discards the in-memory state and replays the whole file.
// On error the previous state is kept.
func (l *Log) Refresh() error {
	data, err := l.backend.ReadFile(l.path)
	if err != nil {
		return l.readErr("read", err)
	}

	parsed, err := record.ParseLog(data)
	if err != nil {
		return l.readErr("replay", err)
	}
	if parsed.Unterminated {
		l.logger.Warn("log does not end with a newline",
			"path", l.path,
			"line", len(parsed.Records),
		)
	}

	records, tombstones := fold(parsed.Records)

	l.records = records
	l.lines = len(parsed.Records)
	l.tombstones = tombstones
	l.unterminated = parsed.Unterminated

	l.logger.Debug("log replayed",
		"path", l.path,
		"lines", l.lines,
		"records", len(l.records),
	)
	return nil
}

// fold replays records in order into the visible state.
// It returns the state and the number of tombstones seen.
func fold(records []record.Record) (map[string]*entry, int) {
	state := make(map[string]*entry, len(records))
	tombstones := 0

	for i, rec := range records {
		apply(state, rec, i)
		if rec.IsTombstone() {
			tombstones++
		}
	}
	return state, tombstones
}

// apply folds one record at line index pos into state.
func apply(state map[string]*entry, rec record.Record, pos int) {
	switch rec.Action {
	case record.ActionDelete:
		delete(state, rec.ID)
	default:
		if e, ok := state[rec.ID]; ok {
			e.rec = rec
			return
		}
		state[rec.ID] = &entry{rec: rec, first: pos}
	}
}
