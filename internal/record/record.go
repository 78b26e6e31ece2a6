package record

import "fmt"

// Action is the one-byte operation code stored with every record.
type Action byte

const (
	// ActionAdd introduces a new id.
	ActionAdd Action = 'A'

	// ActionUpdate replaces the content of an existing id.
	ActionUpdate Action = 'U'

	// ActionDelete is a tombstone: the id is no longer visible.
	ActionDelete Action = 'D'
)

// Valid reports whether a is one of the known action codes.
func (a Action) Valid() bool {
	switch a {
	case ActionAdd, ActionUpdate, ActionDelete:
		return true
	}
	return false
}

func (a Action) String() string {
	switch a {
	case ActionAdd:
		return "add"
	case ActionUpdate:
		return "update"
	case ActionDelete:
		return "delete"
	default:
		return fmt.Sprintf("action(%q)", byte(a))
	}
}

// Record is a single journal entry.
//
// ID is assigned once on Add and reused by later Update and Delete entries
// for the same logical item.
type Record struct {
	ID      string `json:"id"`
	Action  Action `json:"action"`
	Content string `json:"content"`
}

// IsTombstone reports whether r removes its id from the visible state.
func (r Record) IsTombstone() bool {
	return r.Action == ActionDelete
}
