package engine

import (
	"fmt"
	"strings"
)

// Status names the outcome carried by a Response.
type Status string

const (
	StatusOK      Status = "ok"
	StatusData    Status = "data"
	StatusInvalid Status = "invalid"
	StatusError   Status = "error"
	StatusOpen    Status = "open"
	StatusClose   Status = "close"
	StatusExit    Status = "exit"
	StatusUnknown Status = "unknown"
)

// Response is the closed set of outcomes a context can produce.
// The unexported marker method keeps implementations inside this package.
type Response interface {
	Status() Status

	// String renders the response payload as plain text.
	String() string

	response()
}

// Row is one (label, value) pair of a Data response.
type Row struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// OK reports a successful mutation.
type OK struct {
	Message string
}

// Data carries the rows of a successful query.
type Data struct {
	Rows []Row
}

// Invalid reports a malformed or unsupported request. The session continues.
type Invalid struct {
	Message string
}

// Error reports an operation-level failure (missing resource, I/O, format).
type Error struct {
	Message string
}

// OpenContext asks the engine to push Context.
type OpenContext struct {
	Context Context
	Label   string
}

// CloseContext asks the engine to pop the current context.
type CloseContext struct{}

// Exit asks the caller to end the session. The stack is left untouched.
type Exit struct{}

// Unknown reports an unrecognized command keyword.
type Unknown struct {
	Command string
}

func (OK) Status() Status           { return StatusOK }
func (Data) Status() Status         { return StatusData }
func (Invalid) Status() Status      { return StatusInvalid }
func (Error) Status() Status        { return StatusError }
func (OpenContext) Status() Status  { return StatusOpen }
func (CloseContext) Status() Status { return StatusClose }
func (Exit) Status() Status         { return StatusExit }
func (Unknown) Status() Status      { return StatusUnknown }

func (r OK) String() string      { return r.Message }
func (r Invalid) String() string { return r.Message }
func (r Error) String() string   { return r.Message }

// String renders one row per line as "label: value", or just the value
// when the label is empty.
func (r Data) String() string {
	if len(r.Rows) == 0 {
		return "(no rows)"
	}
	lines := make([]string, len(r.Rows))
	for i, row := range r.Rows {
		if row.Label == "" {
			lines[i] = row.Value
		} else {
			lines[i] = row.Label + ": " + row.Value
		}
	}
	return strings.Join(lines, "\n")
}

func (r OpenContext) String() string { return "Opened " + r.Label }
func (CloseContext) String() string  { return "Closed" }
func (Exit) String() string          { return "Bye" }
func (r Unknown) String() string     { return fmt.Sprintf("Unknown command %q", r.Command) }

func (OK) response()           {}
func (Data) response()         {}
func (Invalid) response()      {}
func (Error) response()        {}
func (OpenContext) response()  {}
func (CloseContext) response() {}
func (Exit) response()         {}
func (Unknown) response()      {}
