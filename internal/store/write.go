package store

import (
	"fmt"

	"github.com/roach88/topicdb/internal/record"
)

// appendRecord writes one line and bumps the line count. If the file ends
// without a newline, one is written first so the new line stands alone.
// The in-memory state is only touched by callers after this succeeds.
func (l *Log) appendRecord(rec record.Record) error {
	line, err := record.MarshalLine(rec)
	if err != nil {
		return err
	}
	if l.unterminated {
		line = append([]byte{'\n'}, line...)
	}
	if err := l.backend.Append(l.path, line); err != nil {
		return l.readErr("append to", err)
	}
	l.unterminated = false
	l.lines++
	return nil
}

// Add appends a new record and returns its generated id.
func (l *Log) Add(content string) (string, error) {
	if err := record.ValidateContent(content); err != nil {
		return "", fmt.Errorf("add: %w", err)
	}
	rec := record.Record{
		ID:      l.ids.NewID(),
		Action:  record.ActionAdd,
		Content: record.NormalizeContent(content),
	}
	if err := l.appendRecord(rec); err != nil {
		return "", fmt.Errorf("add: %w", err)
	}
	l.records[rec.ID] = &entry{rec: rec, first: l.lines - 1}
	return rec.ID, nil
}

// Update replaces the content of a visible record.
// Returns ErrNotFound, and appends nothing, if id is not visible.
func (l *Log) Update(id, content string) error {
	e, ok := l.records[id]
	if !ok {
		return fmt.Errorf("update %s: %w", id, ErrNotFound)
	}

	rec := record.Record{
		ID:      id,
		Action:  record.ActionUpdate,
		Content: record.NormalizeContent(content),
	}
	if err := l.appendRecord(rec); err != nil {
		return fmt.Errorf("update %s: %w", id, err)
	}
	e.rec = rec
	return nil
}

// Delete appends a tombstone for a visible record and hides it.
// Returns ErrNotFound, and appends nothing, if id is not visible.
func (l *Log) Delete(id string) error {
	if _, ok := l.records[id]; !ok {
		return fmt.Errorf("delete %s: %w", id, ErrNotFound)
	}

	rec := record.Record{ID: id, Action: record.ActionDelete}
	if err := l.appendRecord(rec); err != nil {
		return fmt.Errorf("delete %s: %w", id, err)
	}
	delete(l.records, id)
	l.tombstones++
	return nil
}
