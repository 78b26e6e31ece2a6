package store

import (
	"errors"
	"testing"

	"github.com/roach88/topicdb/internal/record"
	"github.com/roach88/topicdb/internal/testutil"
)

func TestAdd_AppendsOneLine(t *testing.T) {
	b := newBackend(t)
	l := createTopic(t, b)

	id := mustAdd(t, l, "buy milk")

	if id != record.SequenceID(1) {
		t.Errorf("id = %q, want %q", id, record.SequenceID(1))
	}
	want := record.SequenceID(1) + "Abuy milk\n"
	if got := readFile(t, b, topicPath); got != want {
		t.Errorf("file = %q, want %q", got, want)
	}
	if l.Len() != 1 {
		t.Errorf("Len() = %d, want 1", l.Len())
	}
}

func TestAdd_RejectsNewline(t *testing.T) {
	b := newBackend(t)
	l := createTopic(t, b)

	_, err := l.Add("two\nlines")
	if !errors.Is(err, record.ErrInvalidContent) {
		t.Fatalf("Add() error = %v, want ErrInvalidContent", err)
	}
	if got := readFile(t, b, topicPath); got != "" {
		t.Errorf("file = %q, want empty", got)
	}
}

func TestAdd_IOFailureLeavesStateUnchanged(t *testing.T) {
	inner := newBackend(t)
	fb := testutil.NewFaultyBackend(inner)
	l := createTopic(t, fb)

	fb.Fail("append", topicPath)
	if _, err := l.Add("lost"); !errors.Is(err, testutil.ErrInjected) {
		t.Fatalf("Add() error = %v, want ErrInjected", err)
	}
	if len(l.List()) != 0 || l.Len() != 0 {
		t.Errorf("state changed after failed append: %d records, %d lines", len(l.List()), l.Len())
	}
}

func TestUpdate(t *testing.T) {
	b := newBackend(t)
	l := createTopic(t, b)
	id := mustAdd(t, l, "draft")

	if err := l.Update(id, "final"); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}

	got, ok := l.Get(id)
	if !ok || got.Content != "final" {
		t.Errorf("Get() = %+v, %v; want content %q", got, ok, "final")
	}

	want := id + "Adraft\n" + id + "Ufinal\n"
	if file := readFile(t, b, topicPath); file != want {
		t.Errorf("file = %q, want %q", file, want)
	}
}

func TestUpdateDelete_NotFoundAppendsNothing(t *testing.T) {
	b := newBackend(t)
	l := createTopic(t, b)
	id := mustAdd(t, l, "only")
	before := readFile(t, b, topicPath)

	missing := record.SequenceID(99)
	if err := l.Update(missing, "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update() error = %v, want ErrNotFound", err)
	}
	if err := l.Delete(missing); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() error = %v, want ErrNotFound", err)
	}

	// A deleted id is no longer addressable either.
	if err := l.Delete(id); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	lines := l.Len()
	if err := l.Delete(id); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
	if err := l.Update(id, "revived"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update() of deleted id error = %v, want ErrNotFound", err)
	}

	if l.Len() != lines {
		t.Errorf("Len() = %d after failed ops, want %d", l.Len(), lines)
	}
	if got := readFile(t, b, topicPath); got != before+id+"D\n" {
		t.Errorf("file = %q, want only the one tombstone appended", got)
	}
}

func TestDelete_TombstoneStaysOnDisk(t *testing.T) {
	b := newBackend(t)
	l := createTopic(t, b)
	milk := mustAdd(t, l, "buy milk")
	mom := mustAdd(t, l, "call mom")

	if err := l.Delete(milk); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}

	for _, e := range l.List() {
		if e.ID == milk {
			t.Fatalf("List() still contains deleted id %s", milk)
		}
	}
	if _, ok := l.Get(mom); !ok {
		t.Errorf("Get(%s) missing", mom)
	}

	want := milk + "Abuy milk\n" + mom + "Acall mom\n" + milk + "D\n"
	if got := readFile(t, b, topicPath); got != want {
		t.Errorf("file = %q, want %q", got, want)
	}
	if s := l.Stats(); s.Tombstones != 1 || s.Records != 1 || s.Lines != 3 {
		t.Errorf("Stats() = %+v", s)
	}
}
