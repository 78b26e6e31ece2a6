package harness

import (
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/topicdb/internal/engine"
	"github.com/roach88/topicdb/internal/fsys"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	return fmt.Sprintf("Assertion failed: %s\n  Expected: %s\n  Actual: %s", e.Type, e.Expected, e.Actual)
}

// EvaluateAssertions checks every assertion and returns one message per
// failure.
func EvaluateAssertions(b fsys.Backend, e *engine.Engine, assertions []Assertion) []string {
	var errs []string
	for i, a := range assertions {
		if err := evaluateAssertion(b, e, a); err != nil {
			errs = append(errs, fmt.Sprintf("assertion %d: %v", i, err))
		}
	}
	return errs
}

func evaluateAssertion(b fsys.Backend, e *engine.Engine, a Assertion) error {
	switch a.Type {
	case AssertFileContent:
		return assertFileContent(b, a)
	case AssertFileExists:
		return assertFileExists(b, a, true)
	case AssertFileMissing:
		return assertFileExists(b, a, false)
	case AssertPrompt:
		if got := e.Prompt(); got != a.Prompt {
			return &AssertionError{Type: a.Type, Expected: a.Prompt, Actual: got}
		}
		return nil
	default:
		return fmt.Errorf("unknown assertion type: %s", a.Type)
	}
}

func assertFileContent(b fsys.Backend, a Assertion) error {
	data, err := b.ReadFile(a.Path)
	if err != nil {
		return &AssertionError{Type: a.Type, Expected: a.Path + " readable", Actual: err.Error()}
	}

	want := ""
	if len(a.Lines) > 0 {
		want = strings.Join(a.Lines, "\n") + "\n"
	}
	if string(data) != want {
		return &AssertionError{Type: a.Type, Expected: fmt.Sprintf("%q", want), Actual: fmt.Sprintf("%q", data)}
	}
	return nil
}

func assertFileExists(b fsys.Backend, a Assertion, want bool) error {
	_, err := b.Stat(a.Path)
	exists := err == nil
	if err != nil && !errors.Is(err, fsys.ErrNotExist) {
		return &AssertionError{Type: a.Type, Expected: a.Path, Actual: err.Error()}
	}
	if exists != want {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("%s exists=%t", a.Path, want),
			Actual:   fmt.Sprintf("exists=%t", exists),
		}
	}
	return nil
}
