package record

import (
	"errors"
	"fmt"
)

// ErrFormat is matched by every *FormatError via errors.Is.
var ErrFormat = errors.New("record: malformed log line")

// ErrInvalidContent is returned when content cannot be framed on one line.
var ErrInvalidContent = errors.New("record: content must not contain a newline")

// FormatError describes a log line that cannot be decoded.
type FormatError struct {
	// Line is the 1-based line number within the log file.
	Line int

	// Reason is a human-readable description of the defect.
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// Is makes errors.Is(err, ErrFormat) true for any FormatError.
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}
