package store

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/roach88/topicdb/internal/fsys"
	"github.com/roach88/topicdb/internal/record"
)

func TestOpen_EmptyTopic(t *testing.T) {
	l := createTopic(t, newBackend(t))

	if got := len(l.List()); got != 0 {
		t.Errorf("List() returned %d entries, want 0", got)
	}
	if l.Len() != 0 {
		t.Errorf("Len() = %d, want 0", l.Len())
	}
	if l.Path() != topicPath {
		t.Errorf("Path() = %q, want %q", l.Path(), topicPath)
	}
}

func TestOpen_MissingFile(t *testing.T) {
	_, err := Open(newBackend(t), "absent.tpc")
	if err == nil {
		t.Fatal("Open() on missing file succeeded")
	}
	if !errors.Is(err, fsys.ErrNotExist) {
		t.Errorf("error = %v, want ErrNotExist", err)
	}
}

func TestOpen_FormatError(t *testing.T) {
	b := newBackend(t)
	if err := b.Create(topicPath); err != nil {
		t.Fatal(err)
	}
	data := record.SequenceID(1) + "Afine\nshort\n"
	if err := b.Append(topicPath, []byte(data)); err != nil {
		t.Fatal(err)
	}

	_, err := Open(b, topicPath)

	var fe *record.FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("error = %v, want *record.FormatError", err)
	}
	if fe.Line != 2 {
		t.Errorf("FormatError.Line = %d, want 2", fe.Line)
	}
}

func TestOpen_TornTailIsFormatError(t *testing.T) {
	b := newBackend(t)
	if err := b.Create(topicPath); err != nil {
		t.Fatal(err)
	}
	data := record.SequenceID(1) + "Akept\n" + record.SequenceID(2)[:20]
	if err := b.Append(topicPath, []byte(data)); err != nil {
		t.Fatal(err)
	}

	_, err := Open(b, topicPath)

	var fe *record.FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("error = %v, want *record.FormatError", err)
	}
	if fe.Line != 2 {
		t.Errorf("FormatError.Line = %d, want 2", fe.Line)
	}
}

func TestAdd_AfterUnterminatedLine(t *testing.T) {
	b := newBackend(t)
	if err := b.Create(topicPath); err != nil {
		t.Fatal(err)
	}
	data := record.SequenceID(98) + "Abuy milk\n" + record.SequenceID(99) + "Acall"
	if err := b.Append(topicPath, []byte(data)); err != nil {
		t.Fatal(err)
	}

	l := openTopic(t, b, record.NewSequenceGenerator())
	if l.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", l.Len())
	}
	id := mustAdd(t, l, "call mom")

	wantFile := data + "\n" + id + "Acall mom\n"
	if got := readFile(t, b, topicPath); got != wantFile {
		t.Errorf("file = %q, want %q", got, wantFile)
	}

	want := []Entry{
		{ID: record.SequenceID(98), Content: "buy milk"},
		{ID: record.SequenceID(99), Content: "call"},
		{ID: id, Content: "call mom"},
	}
	if diff := cmp.Diff(want, l.List()); diff != "" {
		t.Errorf("List() after Add mismatch (-want +got):\n%s", diff)
	}

	reopened := openTopic(t, b, record.NewSequenceGenerator())
	if diff := cmp.Diff(l.List(), reopened.List()); diff != "" {
		t.Errorf("List() after reopen mismatch (-before +after):\n%s", diff)
	}
	if reopened.Len() != 3 {
		t.Errorf("Len() after reopen = %d, want 3", reopened.Len())
	}
}

func TestOpen_ReplaysExistingHistory(t *testing.T) {
	b := newBackend(t)
	if err := b.Create(topicPath); err != nil {
		t.Fatal(err)
	}
	history := record.SequenceID(1) + "Afirst\n" +
		record.SequenceID(2) + "Asecond\n" +
		record.SequenceID(1) + "Ufirst edited\n" +
		record.SequenceID(3) + "Athird\n" +
		record.SequenceID(2) + "D\n"
	if err := b.Append(topicPath, []byte(history)); err != nil {
		t.Fatal(err)
	}

	l, err := Open(b, topicPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	want := []Entry{
		{ID: record.SequenceID(1), Content: "first edited"},
		{ID: record.SequenceID(3), Content: "third"},
	}
	if diff := cmp.Diff(want, l.List()); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}

	stats := l.Stats()
	wantStats := Stats{Lines: 5, Records: 2, Tombstones: 1, Superseded: 2}
	if stats != wantStats {
		t.Errorf("Stats() = %+v, want %+v", stats, wantStats)
	}
}

func TestOpen_SQLiteBackend(t *testing.T) {
	b, err := fsys.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("OpenSQLite() failed: %v", err)
	}
	defer b.Close()

	l := createTopic(t, b)
	id := mustAdd(t, l, "stored in sqlite")

	reopened := openTopic(t, b, record.NewSequenceGenerator())
	got, ok := reopened.Get(id)
	if !ok {
		t.Fatalf("Get(%s) not found after reopen", id)
	}
	if got.Content != "stored in sqlite" {
		t.Errorf("content = %q, want %q", got.Content, "stored in sqlite")
	}
}
