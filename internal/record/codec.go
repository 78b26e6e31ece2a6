package record

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

const (
	// IDWidth is the fixed byte width of the id field.
	IDWidth = 36

	// HeaderWidth is the id field plus the action byte.
	HeaderWidth = IDWidth + 1
)

// NormalizeContent returns content in Unicode NFC form.
// Replay compares content byte-wise, so equivalent strings must share one encoding.
func NormalizeContent(content string) string {
	return norm.NFC.String(content)
}

// ValidateContent reports ErrInvalidContent if content cannot be stored on
// a single line.
func ValidateContent(content string) error {
	if strings.ContainsAny(content, "\n\r") {
		return ErrInvalidContent
	}
	return nil
}

// MarshalLine encodes r as one newline-terminated log line.
func MarshalLine(r Record) ([]byte, error) {
	if len(r.ID) != IDWidth {
		return nil, fmt.Errorf("record: id %q is %d bytes, want %d", r.ID, len(r.ID), IDWidth)
	}
	if !r.Action.Valid() {
		return nil, fmt.Errorf("record: invalid action %s", r.Action)
	}
	if err := ValidateContent(r.Content); err != nil {
		return nil, err
	}

	content := NormalizeContent(r.Content)
	buf := make([]byte, 0, HeaderWidth+len(content)+1)
	buf = append(buf, r.ID...)
	buf = append(buf, byte(r.Action))
	buf = append(buf, content...)
	buf = append(buf, '\n')
	return buf, nil
}

// ParseLine decodes a single line (without its trailing newline).
// lineNo is only used for error reporting.
func ParseLine(line []byte, lineNo int) (Record, error) {
	if len(line) < HeaderWidth {
		return Record{}, &FormatError{
			Line:   lineNo,
			Reason: fmt.Sprintf("%d bytes is shorter than the %d byte header", len(line), HeaderWidth),
		}
	}

	id := string(line[:IDWidth])
	if _, err := uuid.Parse(id); err != nil {
		return Record{}, &FormatError{Line: lineNo, Reason: fmt.Sprintf("malformed id %q", id)}
	}

	action := Action(line[IDWidth])
	if !action.Valid() {
		return Record{}, &FormatError{Line: lineNo, Reason: fmt.Sprintf("unknown action code %q", line[IDWidth])}
	}

	return Record{
		ID:      id,
		Action:  action,
		Content: string(line[HeaderWidth:]),
	}, nil
}

// ParseResult is the outcome of decoding a whole log file.
type ParseResult struct {
	// Records in physical file order.
	Records []Record

	// Unterminated reports that the final line is not followed by a
	// newline. The next append must write one first.
	Unterminated bool
}

// ParseLog decodes every line of data in file order.
// The final empty segment produced by the trailing newline is discarded. A
// final segment without a newline is parsed like any other line.
func ParseLog(data []byte) (ParseResult, error) {
	var result ParseResult
	if len(data) == 0 {
		return result, nil
	}

	lines := bytes.Split(data, []byte{'\n'})
	if last := lines[len(lines)-1]; len(last) == 0 {
		lines = lines[:len(lines)-1]
	} else {
		result.Unterminated = true
	}

	result.Records = make([]Record, 0, len(lines))
	for i, line := range lines {
		rec, err := ParseLine(line, i+1)
		if err != nil {
			return ParseResult{}, err
		}
		result.Records = append(result.Records, rec)
	}
	return result, nil
}
