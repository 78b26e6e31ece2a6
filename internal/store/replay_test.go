package store

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/roach88/topicdb/internal/record"
)

// randomHistory drives l through n random add/update/delete operations and
// returns the visible state the caller should expect.
func randomHistory(t *testing.T, l *Log, rng *rand.Rand, n int) map[string]string {
	t.Helper()
	want := make(map[string]string)
	var live []string

	for i := 0; i < n; i++ {
		switch op := rng.Intn(3); {
		case op == 0 || len(live) == 0:
			content := fmt.Sprintf("item %d", i)
			id := mustAdd(t, l, content)
			want[id] = content
			live = append(live, id)
		case op == 1:
			id := live[rng.Intn(len(live))]
			content := fmt.Sprintf("item %d (edited)", i)
			if err := l.Update(id, content); err != nil {
				t.Fatalf("Update() failed: %v", err)
			}
			want[id] = content
		default:
			idx := rng.Intn(len(live))
			id := live[idx]
			if err := l.Delete(id); err != nil {
				t.Fatalf("Delete() failed: %v", err)
			}
			delete(want, id)
			live = append(live[:idx], live[idx+1:]...)
		}
	}
	return want
}

func asMap(entries []Entry) map[string]string {
	m := make(map[string]string, len(entries))
	for _, e := range entries {
		m[e.ID] = e.Content
	}
	return m
}

func TestReplay_Determinism(t *testing.T) {
	for _, seed := range []int64{1, 7, 42, 1337} {
		t.Run(fmt.Sprintf("seed=%d", seed), func(t *testing.T) {
			b := newBackend(t)
			l := createTopic(t, b)
			want := randomHistory(t, l, rand.New(rand.NewSource(seed)), 200)

			if diff := cmp.Diff(want, asMap(l.List())); diff != "" {
				t.Fatalf("in-memory state mismatch (-want +got):\n%s", diff)
			}

			// Close (drop the handle) and reopen from disk.
			reopened := openTopic(t, b, record.NewSequenceGenerator())
			if diff := cmp.Diff(l.List(), reopened.List()); diff != "" {
				t.Errorf("reopened state mismatch (-before +after):\n%s", diff)
			}
			if reopened.Stats() != l.Stats() {
				t.Errorf("Stats() = %+v after reopen, want %+v", reopened.Stats(), l.Stats())
			}
		})
	}
}

func TestRefresh_Idempotent(t *testing.T) {
	b := newBackend(t)
	l := createTopic(t, b)
	randomHistory(t, l, rand.New(rand.NewSource(3)), 50)

	if err := l.Refresh(); err != nil {
		t.Fatalf("first Refresh() failed: %v", err)
	}
	first := l.List()

	if err := l.Refresh(); err != nil {
		t.Fatalf("second Refresh() failed: %v", err)
	}
	if diff := cmp.Diff(first, l.List()); diff != "" {
		t.Errorf("Refresh() not idempotent (-first +second):\n%s", diff)
	}
}

func TestRefresh_PicksUpExternalAppends(t *testing.T) {
	b := newBackend(t)
	l := createTopic(t, b)
	mustAdd(t, l, "ours")

	external := record.SequenceID(500) + "Atheirs\n"
	if err := b.Append(topicPath, []byte(external)); err != nil {
		t.Fatal(err)
	}
	if _, ok := l.Get(record.SequenceID(500)); ok {
		t.Fatal("external record visible before Refresh()")
	}

	if err := l.Refresh(); err != nil {
		t.Fatalf("Refresh() failed: %v", err)
	}
	got, ok := l.Get(record.SequenceID(500))
	if !ok || got.Content != "theirs" {
		t.Errorf("Get() = %+v, %v after Refresh()", got, ok)
	}
	if l.Len() != 2 {
		t.Errorf("Len() = %d, want 2", l.Len())
	}
}

func TestRefresh_FormatErrorKeepsState(t *testing.T) {
	b := newBackend(t)
	l := createTopic(t, b)
	id := mustAdd(t, l, "safe")

	if err := b.Append(topicPath, []byte("garbage\n")); err != nil {
		t.Fatal(err)
	}

	if err := l.Refresh(); err == nil {
		t.Fatal("Refresh() succeeded on corrupt log")
	}
	if _, ok := l.Get(id); !ok {
		t.Errorf("state lost after failed Refresh()")
	}
}

func TestFold_LastWriteWins(t *testing.T) {
	id := record.SequenceID(1)
	records := []record.Record{
		{ID: id, Action: record.ActionAdd, Content: "v1"},
		{ID: id, Action: record.ActionUpdate, Content: "v2"},
		{ID: id, Action: record.ActionDelete},
		{ID: id, Action: record.ActionAdd, Content: "v3"},
		{ID: record.SequenceID(2), Action: record.ActionDelete},
	}

	state, tombstones := fold(records)

	if tombstones != 2 {
		t.Errorf("tombstones = %d, want 2", tombstones)
	}
	if len(state) != 1 {
		t.Fatalf("state has %d ids, want 1", len(state))
	}
	if got := state[id]; got.rec.Content != "v3" || got.first != 3 {
		t.Errorf("state[%s] = %+v, want content v3 first 3", id, got)
	}
}
