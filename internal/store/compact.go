package store

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/roach88/topicdb/internal/fsys"
	"github.com/roach88/topicdb/internal/record"
)

const (
	// compactSuffix names the temp file the compacted log is built in.
	compactSuffix = ".compact"

	// backupInfix separates the log path from the backup timestamp.
	backupInfix = ".bkp_"
)

// CompactResult describes a finished compaction.
type CompactResult struct {
	Backup      string `json:"backup"`
	LinesBefore int    `json:"lines_before"`
	LinesAfter  int    `json:"lines_after"`
}

// BackupName formats the backup path for a log compacted at t:
// "<path>.bkp_<YYYYMMDD_HHMMSSffffff>" in local time.
func BackupName(path string, t time.Time) string {
	t = t.Local()
	return fmt.Sprintf("%s%s%s%06d", path, backupInfix, t.Format("20060102_150405"), t.Nanosecond()/1000)
}

// Compact rewrites the log so it holds one Add line per visible record.
//
// Steps:
//  1. write the live records to "<path>.compact"
//  2. rename the log to its backup name
//  3. rename the temp file to the log path
//  4. replay the new file
//
// A failure in steps 1-2 leaves the original log in place. A failure in
// step 3 moves the backup back. The temp file is removed in every failure case.
func (l *Log) Compact() (CompactResult, error) {
	var buf bytes.Buffer
	for _, e := range l.List() {
		line, err := record.MarshalLine(record.Record{
			ID:      e.ID,
			Action:  record.ActionAdd,
			Content: e.Content,
		})
		if err != nil {
			return CompactResult{}, fmt.Errorf("compact %s: %w", l.path, err)
		}
		buf.Write(line)
	}

	tmp := l.path + compactSuffix
	if err := l.writeTemp(tmp, buf.Bytes()); err != nil {
		return CompactResult{}, fmt.Errorf("compact %s: %w", l.path, err)
	}

	backup, err := l.backupPath()
	if err != nil {
		l.discard(tmp)
		return CompactResult{}, fmt.Errorf("compact %s: %w", l.path, err)
	}

	if err := l.backend.Rename(l.path, backup); err != nil {
		l.discard(tmp)
		return CompactResult{}, fmt.Errorf("compact %s: backup: %w", l.path, err)
	}

	if err := l.backend.Rename(tmp, l.path); err != nil {
		if restoreErr := l.backend.Rename(backup, l.path); restoreErr != nil {
			l.logger.Error("failed to restore log from backup",
				"path", l.path,
				"backup", backup,
				"error", restoreErr,
			)
		}
		l.discard(tmp)
		return CompactResult{}, fmt.Errorf("compact %s: swap: %w", l.path, err)
	}

	before := l.lines
	if err := l.Refresh(); err != nil {
		return CompactResult{}, fmt.Errorf("compact %s: %w", l.path, err)
	}

	l.logger.Info("log compacted",
		"path", l.path,
		"backup", backup,
		"lines_before", before,
		"lines_after", l.lines,
	)

	return CompactResult{
		Backup:      backup,
		LinesBefore: before,
		LinesAfter:  l.lines,
	}, nil
}

// writeTemp creates tmp holding data, replacing a stale temp file left by an
// interrupted compaction.
func (l *Log) writeTemp(tmp string, data []byte) error {
	if err := l.backend.Remove(tmp); err != nil && !errors.Is(err, fsys.ErrNotExist) {
		return fmt.Errorf("remove stale %s: %w", tmp, err)
	}
	if err := l.backend.Create(tmp); err != nil {
		return fmt.Errorf("create %s: %w", tmp, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := l.backend.Append(tmp, data); err != nil {
		l.discard(tmp)
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	return nil
}

// discard removes a temp file, best effort.
func (l *Log) discard(tmp string) {
	if err := l.backend.Remove(tmp); err != nil && !errors.Is(err, fsys.ErrNotExist) {
		l.logger.Warn("failed to remove temp file", "path", tmp, "error", err)
	}
}

// backupPath returns the first free backup name. Compactions within the same
// microsecond get a "_<n>" counter suffix.
func (l *Log) backupPath() (string, error) {
	base := BackupName(l.path, l.now())
	candidate := base
	for n := 1; ; n++ {
		_, err := l.backend.Stat(candidate)
		if errors.Is(err, fsys.ErrNotExist) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("stat %s: %w", candidate, err)
		}
		candidate = fmt.Sprintf("%s_%d", base, n)
	}
}
