package engine

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// request is a tokenized command line.
type request struct {
	command string
	target  Target

	// tail is the raw text after the command, or after the KIND token when
	// one was recognized. Leading whitespace is removed; inner whitespace is
	// kept.
	tail string
}

// parseRequest splits the command keyword off line and upper-cases it.
// withTarget enables KIND recognition for navigation contexts.
func parseRequest(line string, withTarget bool) (request, bool) {
	command, tail := cut(line)
	if command == "" {
		return request{}, false
	}

	req := request{command: strings.ToUpper(command), tail: tail}
	if !withTarget {
		return req, true
	}

	if word, after := cut(tail); word != "" {
		if t, ok := ParseTarget(word); ok {
			req.target = t
			req.tail = after
		}
	}
	return req, true
}

// cut returns the first whitespace-delimited token of s and the remainder
// with its leading whitespace removed.
func cut(s string) (token, remainder string) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimLeftFunc(s[i:], unicode.IsSpace)
}

// text trims s and strips one pair of surrounding double quotes, so
// `ADD "buy milk"` and `ADD buy milk` store the same text. Whitespace
// between words is kept as typed.
func text(s string) string {
	return unquote(strings.TrimSpace(s))
}

func unquote(s string) string {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return s
	}
	if u, err := strconv.Unquote(s); err == nil {
		return u
	}
	return s[1 : len(s)-1]
}

// validateName checks a topic or directory id before it becomes a path
// element.
func validateName(id string) error {
	switch {
	case id == "":
		return fmt.Errorf("id must not be empty")
	case id == "." || id == "..":
		return fmt.Errorf("id %q is reserved", id)
	case strings.ContainsAny(id, "/\\"):
		return fmt.Errorf("id %q must not contain a path separator", id)
	}
	return nil
}
