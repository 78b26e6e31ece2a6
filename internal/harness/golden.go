package harness

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// FormatTranscript renders a result as plain text:
//
//	# scenario: notes
//	/ > CREATE TOPIC notes
//	[ok] Topic notes created.
//	/ > LIST TOPIC
//	[data]
//	  notes
//
// Data rows are indented on their own lines. The rendering is stable so it
// can be stored as a golden file.
func FormatTranscript(name string, result *Result) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# scenario: %s\n", name)
	for _, ex := range result.Transcript {
		fmt.Fprintf(&buf, "%s > %s\n", ex.Prompt, ex.Command)
		if ex.Status == "data" {
			buf.WriteString("[data]\n")
			for _, line := range strings.Split(ex.Output, "\n") {
				fmt.Fprintf(&buf, "  %s\n", line)
			}
			continue
		}
		fmt.Fprintf(&buf, "[%s] %s\n", ex.Status, ex.Output)
	}
	return buf.Bytes()
}

// RunWithGolden executes a scenario and compares the transcript against a
// golden file stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if the transcript doesn't match.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	AssertGolden(t, scenario.Name, result)
	return result, nil
}

// AssertGolden compares an existing result against its golden file.
func AssertGolden(t *testing.T, name string, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, FormatTranscript(name, result))
}
