package fsys

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Schema version tracking:
// 0 - no schema
// 1 - entries table with parent index
const currentSchemaVersion = 1

// SQLite is a Backend storing every entry as a row of one SQLite database.
// Appends are single UPDATE statements, so each is durable on its own.
type SQLite struct {
	db   *sql.DB
	path string
}

// OpenSQLite creates or opens the database at path. ":memory:" gives a
// private in-memory backend that lives as long as the returned value.
//
// The database is configured with:
//   - WAL mode (file databases only)
//   - NORMAL synchronous mode
//   - 5-second busy timeout
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("fsys: open database: %w", err)
	}

	// One connection: keeps ":memory:" databases alive and serializes writers.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("fsys: connect to database: %w", err)
	}

	if err := applyPragmas(db, path == ":memory:"); err != nil {
		db.Close()
		return nil, fmt.Errorf("fsys: apply pragmas: %w", err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("fsys: apply schema: %w", err)
	}

	return &SQLite{db: db, path: path}, nil
}

func applyPragmas(db *sql.DB, memory bool) error {
	pragmas := []string{
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	if !memory {
		pragmas = append([]string{"PRAGMA journal_mode = WAL"}, pragmas...)
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}

func applySchema(db *sql.DB) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("get user_version: %w", err)
	}
	if version >= currentSchemaVersion {
		return nil
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}
	return nil
}

func (s *SQLite) Root() string { return s.path }

// Close closes the database connection.
func (s *SQLite) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// stat looks up name; the root always exists as a directory.
func (s *SQLite) stat(q querier, name string) (Kind, error) {
	if name == "" {
		return KindDir, nil
	}
	var kind Kind
	err := q.QueryRow(`SELECT kind FROM entries WHERE path = ?`, name).Scan(&kind)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotExist
	}
	if err != nil {
		return 0, err
	}
	return kind, nil
}

type querier interface {
	QueryRow(query string, args ...any) *sql.Row
}

func (s *SQLite) Stat(name string) (Kind, error) {
	name = Clean(name)
	kind, err := s.stat(s.db, name)
	if errors.Is(err, ErrNotExist) {
		return 0, pathError("stat", name, ErrNotExist)
	}
	return kind, err
}

func (s *SQLite) Mkdir(name string) error {
	return s.insert("mkdir", name, KindDir)
}

func (s *SQLite) Create(name string) error {
	return s.insert("create", name, KindFile)
}

// insert adds a new entry after checking that the parent is a directory and
// the name is free, inside one transaction.
func (s *SQLite) insert(op, name string, kind Kind) error {
	name = Clean(name)
	if name == "" {
		return pathError(op, name, ErrExist)
	}
	parent, base := Split(name)

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("fsys: %s %s: begin tx: %w", op, name, err)
	}
	defer tx.Rollback() // No-op if committed

	parentKind, err := s.stat(tx, parent)
	if errors.Is(err, ErrNotExist) {
		return pathError(op, name, ErrNotExist)
	}
	if err != nil {
		return fmt.Errorf("fsys: %s %s: %w", op, name, err)
	}
	if parentKind != KindDir {
		return pathError(op, name, fmt.Errorf("parent %q is not a directory", parent))
	}

	if _, err := s.stat(tx, name); err == nil {
		return pathError(op, name, ErrExist)
	} else if !errors.Is(err, ErrNotExist) {
		return fmt.Errorf("fsys: %s %s: %w", op, name, err)
	}

	if _, err := tx.Exec(
		`INSERT INTO entries (path, parent, name, kind) VALUES (?, ?, ?, ?)`,
		name, parent, base, kind,
	); err != nil {
		return fmt.Errorf("fsys: %s %s: %w", op, name, err)
	}

	return tx.Commit()
}

// ReadDir lists entry names of one kind, sorted by name.
func (s *SQLite) ReadDir(name string, kind Kind) ([]string, error) {
	name = Clean(name)
	k, err := s.stat(s.db, name)
	if errors.Is(err, ErrNotExist) {
		return nil, pathError("readdir", name, ErrNotExist)
	}
	if err != nil {
		return nil, err
	}
	if k != KindDir {
		return nil, pathError("readdir", name, fmt.Errorf("not a directory"))
	}

	rows, err := s.db.Query(
		`SELECT name FROM entries WHERE parent = ? AND kind = ? ORDER BY name ASC`,
		name, kind,
	)
	if err != nil {
		return nil, fmt.Errorf("fsys: readdir %s: %w", name, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("fsys: readdir %s: %w", name, err)
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

// Rename moves a file. Directories are not renamed by the record store, so
// renaming one is refused rather than rewriting every descendant path.
func (s *SQLite) Rename(oldName, newName string) error {
	oldName, newName = Clean(oldName), Clean(newName)
	newParent, newBase := Split(newName)

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("fsys: rename %s: begin tx: %w", oldName, err)
	}
	defer tx.Rollback()

	kind, err := s.stat(tx, oldName)
	if errors.Is(err, ErrNotExist) {
		return pathError("rename", oldName, ErrNotExist)
	}
	if err != nil {
		return fmt.Errorf("fsys: rename %s: %w", oldName, err)
	}
	if kind != KindFile {
		return pathError("rename", oldName, fmt.Errorf("only files can be renamed"))
	}

	if parentKind, err := s.stat(tx, newParent); err != nil || parentKind != KindDir {
		return pathError("rename", newName, ErrNotExist)
	}
	if _, err := s.stat(tx, newName); err == nil {
		return pathError("rename", newName, ErrExist)
	}

	if _, err := tx.Exec(
		`UPDATE entries SET path = ?, parent = ?, name = ? WHERE path = ?`,
		newName, newParent, newBase, oldName,
	); err != nil {
		return fmt.Errorf("fsys: rename %s: %w", oldName, err)
	}

	return tx.Commit()
}

// Append concatenates data onto the file's blob in a single statement.
func (s *SQLite) Append(name string, data []byte) error {
	name = Clean(name)
	if data == nil {
		data = []byte{}
	}
	result, err := s.db.Exec(
		`UPDATE entries SET data = CAST(data || ? AS BLOB) WHERE path = ? AND kind = ?`,
		data, name, KindFile,
	)
	if err != nil {
		return fmt.Errorf("fsys: append %s: %w", name, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("fsys: append %s: rows affected: %w", name, err)
	}
	if n == 0 {
		return pathError("append", name, ErrNotExist)
	}
	return nil
}

func (s *SQLite) ReadFile(name string) ([]byte, error) {
	name = Clean(name)
	var data []byte
	err := s.db.QueryRow(
		`SELECT data FROM entries WHERE path = ? AND kind = ?`, name, KindFile,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pathError("read", name, ErrNotExist)
	}
	if err != nil {
		return nil, fmt.Errorf("fsys: read %s: %w", name, err)
	}
	return data, nil
}

func (s *SQLite) Remove(name string) error {
	name = Clean(name)
	if name == "" {
		return pathError("remove", name, fmt.Errorf("cannot remove root"))
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("fsys: remove %s: begin tx: %w", name, err)
	}
	defer tx.Rollback()

	kind, err := s.stat(tx, name)
	if errors.Is(err, ErrNotExist) {
		return pathError("remove", name, ErrNotExist)
	}
	if err != nil {
		return fmt.Errorf("fsys: remove %s: %w", name, err)
	}

	if kind == KindDir {
		var children int
		if err := tx.QueryRow(`SELECT COUNT(*) FROM entries WHERE parent = ?`, name).Scan(&children); err != nil {
			return fmt.Errorf("fsys: remove %s: %w", name, err)
		}
		if children > 0 {
			return pathError("remove", name, ErrNotEmpty)
		}
	}

	if _, err := tx.Exec(`DELETE FROM entries WHERE path = ?`, name); err != nil {
		return fmt.Errorf("fsys: remove %s: %w", name, err)
	}
	return tx.Commit()
}
