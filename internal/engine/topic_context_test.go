package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/topicdb/internal/fsys"
)

// openNotes creates and opens topic "notes" and returns its context.
func openNotes(t *testing.T, b fsys.Backend) (*Engine, *TopicContext) {
	t.Helper()
	e := newTestEngine(t, b)
	mustOK(t, e, "CREATE TOPIC notes")
	open := mustOpen(t, e, "OPEN TOPIC notes")
	tc, ok := open.Context.(*TopicContext)
	require.True(t, ok)
	return e, tc
}

func TestTopicContext_Commands(t *testing.T) {
	tests := []struct {
		name string
		seq  []string
		want Response
	}{
		{
			name: "add",
			seq:  []string{"ADD hello world"},
			want: OK{Message: "Record " + id(1) + " added."},
		},
		{
			name: "add without content",
			seq:  []string{"ADD"},
			want: Invalid{Message: "Add requires content"},
		},
		{
			name: "add escaped newline",
			seq:  []string{`ADD "a\nb"`},
			want: Invalid{Message: "Content must be a single line"},
		},
		{
			name: "update",
			seq:  []string{"ADD a", "UPDATE " + id(1) + " b"},
			want: OK{Message: "Record " + id(1) + " updated."},
		},
		{
			name: "update missing content",
			seq:  []string{"ADD a", "UPDATE " + id(1)},
			want: Invalid{Message: "Update requires an id and content"},
		},
		{
			name: "update to empty quoted content",
			seq:  []string{"ADD a", "UPDATE " + id(1) + ` ""`},
			want: Invalid{Message: "Update requires an id and content"},
		},
		{
			name: "update unknown id",
			seq:  []string{"UPDATE " + id(9) + " b"},
			want: Error{Message: "No record found with id " + id(9)},
		},
		{
			name: "delete",
			seq:  []string{"ADD a", "DELETE " + id(1)},
			want: OK{Message: "Record " + id(1) + " deleted."},
		},
		{
			name: "delete twice",
			seq:  []string{"ADD a", "DELETE " + id(1), "DELETE " + id(1)},
			want: Error{Message: "No record found with id " + id(1)},
		},
		{
			name: "delete without id",
			seq:  []string{"DELETE"},
			want: Invalid{Message: "Delete requires an id"},
		},
		{
			name: "list empty",
			seq:  []string{"LIST"},
			want: Data{Rows: []Row{}},
		},
		{
			name: "list order",
			seq:  []string{"ADD x", "ADD y", "UPDATE " + id(1) + " z", "LIST"},
			want: Data{Rows: []Row{{Label: id(1), Value: "z"}, {Label: id(2), Value: "y"}}},
		},
		{
			name: "refresh",
			seq:  []string{"ADD x", "ADD y", "REFRESH"},
			want: OK{Message: "Topic notes refreshed (2 records)."},
		},
		{
			name: "navigation commands are unknown",
			seq:  []string{"CREATE TOPIC x"},
			want: Unknown{Command: "CREATE"},
		},
		{
			name: "empty",
			seq:  []string{""},
			want: Invalid{Message: "nothing to parse"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := openNotes(t, newOSBackend(t))
			var got Response
			for _, line := range tt.seq {
				got = e.Request(line)
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, 2, e.Depth())
		})
	}
}

// Update and Delete on a missing id append nothing.
func TestTopicContext_MissingIDAppendsNothing(t *testing.T) {
	e, tc := openNotes(t, newOSBackend(t))
	mustOK(t, e, "ADD a")
	before := tc.Log().Len()

	e.Request("UPDATE " + id(7) + " b")
	e.Request("DELETE " + id(7))

	assert.Equal(t, before, tc.Log().Len())
}

// REFRESH picks up lines appended by another writer.
func TestTopicContext_RefreshSeesExternalAppends(t *testing.T) {
	b := newOSBackend(t)
	e, _ := openNotes(t, b)
	mustOK(t, e, "ADD mine")

	require.NoError(t, b.Append("notes.tpc", []byte(id(50)+"Atheirs\n")))
	assert.Len(t, e.Request("LIST").(Data).Rows, 1)

	mustOK(t, e, "REFRESH")
	assert.Equal(t,
		Data{Rows: []Row{{Label: id(1), Value: "mine"}, {Label: id(50), Value: "theirs"}}},
		e.Request("LIST"))
}

func TestTopicContext_Status(t *testing.T) {
	e, _ := openNotes(t, newOSBackend(t))
	mustOK(t, e, "ADD a")
	mustOK(t, e, "ADD b")
	mustOK(t, e, "DELETE "+id(2))

	assert.Equal(t,
		Data{Rows: []Row{
			{Label: "topic", Value: "notes"},
			{Label: "path", Value: "/notes.tpc"},
			{Label: "records", Value: "1"},
			{Label: "lines", Value: "3"},
			{Label: "tombstones", Value: "1"},
		}},
		e.Request("STATUS"))
}

func TestTopicContext_QuotedUpdate(t *testing.T) {
	e, tc := openNotes(t, newOSBackend(t))
	mustOK(t, e, `ADD "  padded  "`)
	mustOK(t, e, `UPDATE "`+id(1)+`" "buy  oat milk"`)

	got, ok := tc.Log().Get(id(1))
	require.True(t, ok)
	assert.Equal(t, "buy  oat milk", got.Content)
}

func TestTopicContext_ContentKeepsSpacing(t *testing.T) {
	e, tc := openNotes(t, newOSBackend(t))
	mustOK(t, e, "ADD a   b")
	mustOK(t, e, `ADD "  padded  "`)

	got, ok := tc.Log().Get(id(1))
	require.True(t, ok)
	assert.Equal(t, "a   b", got.Content)

	got, ok = tc.Log().Get(id(2))
	require.True(t, ok)
	assert.Equal(t, "  padded  ", got.Content)

	mustOK(t, e, "UPDATE "+id(1)+"   c  d  ")
	got, ok = tc.Log().Get(id(1))
	require.True(t, ok)
	assert.Equal(t, "c  d", got.Content)
}

// An empty update is refused before anything is appended.
func TestTopicContext_EmptyUpdateAppendsNothing(t *testing.T) {
	e, tc := openNotes(t, newOSBackend(t))
	mustOK(t, e, "ADD a")
	before := tc.Log().Len()

	assert.Equal(t,
		Invalid{Message: "Update requires an id and content"},
		e.Request("UPDATE "+id(1)+` ""`))

	assert.Equal(t, before, tc.Log().Len())
	got, ok := tc.Log().Get(id(1))
	require.True(t, ok)
	assert.Equal(t, "a", got.Content)
}
