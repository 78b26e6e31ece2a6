package harness

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/roach88/topicdb/internal/engine"
	"github.com/roach88/topicdb/internal/fsys"
	"github.com/roach88/topicdb/internal/record"
	"github.com/roach88/topicdb/internal/testutil"
)

// Home is the database.home label reported by STATUS in every scenario.
const Home = "scenario"

// Harness holds the session of one running scenario.
type Harness struct {
	backend fsys.Backend
	engine  *engine.Engine
	logger  *slog.Logger
}

// Run executes a test scenario and returns the result.
//
// Each scenario runs in a fresh backend for isolation.
//
// Execution flow:
//  1. Open the backend (in-memory SQLite or a temp directory)
//  2. Build an engine with sequential ids and a frozen clock
//  3. Send each step and validate its expect clause
//  4. Evaluate assertions against the backend
func Run(scenario *Scenario) (*Result, error) {
	backend, cleanup, err := openBackend(scenario.Backend)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil)) // Suppress logs in tests
	h := &Harness{
		backend: backend,
		logger:  logger,
		engine: engine.New(backend,
			engine.WithHome(Home),
			engine.WithIDGenerator(record.NewSequenceGenerator()),
			engine.WithClock(testutil.FixedTime),
			engine.WithLogger(logger),
		),
	}

	result := NewResult()
	h.executeSteps(scenario.Steps, result)

	for _, msg := range EvaluateAssertions(h.backend, h.engine, scenario.Assertions) {
		result.AddError(msg)
	}
	return result, nil
}

func openBackend(name string) (fsys.Backend, func(), error) {
	switch name {
	case BackendOS:
		dir, err := os.MkdirTemp("", "topicdb-scenario-*")
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create scenario directory: %w", err)
		}
		b, err := fsys.NewOS(dir)
		if err != nil {
			os.RemoveAll(dir)
			return nil, nil, err
		}
		return b, func() { os.RemoveAll(dir) }, nil
	default:
		b, err := fsys.OpenSQLite(":memory:")
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create in-memory backend: %w", err)
		}
		return b, func() { b.Close() }, nil
	}
}

// executeSteps sends every step, even after a failed expectation, so the
// transcript is always complete.
func (h *Harness) executeSteps(steps []Step, result *Result) {
	for i, step := range steps {
		prompt := h.engine.Prompt()
		resp := h.engine.Request(step.Command)

		result.Transcript = append(result.Transcript, Exchange{
			Prompt:  prompt,
			Command: step.Command,
			Status:  string(resp.Status()),
			Output:  resp.String(),
		})

		if step.Expect != nil {
			for _, msg := range checkExpect(step.Expect, resp, h.engine.Prompt()) {
				result.AddError(fmt.Sprintf("step %d (%s): %s", i, step.Command, msg))
			}
		}

		h.logger.Debug("scenario step",
			"step", i,
			"command", step.Command,
			"status", resp.Status(),
		)
	}
}

func checkExpect(want *Expect, resp engine.Response, prompt string) []string {
	var errs []string
	if got := string(resp.Status()); got != want.Status {
		errs = append(errs, fmt.Sprintf("expected status %s, got %s (%s)", want.Status, got, resp))
	}
	if want.Message != "" && resp.String() != want.Message {
		errs = append(errs, fmt.Sprintf("expected message %q, got %q", want.Message, resp.String()))
	}
	if want.Contains != "" && !strings.Contains(resp.String(), want.Contains) {
		errs = append(errs, fmt.Sprintf("expected output containing %q, got %q", want.Contains, resp.String()))
	}
	if want.Rows != nil {
		data, ok := resp.(engine.Data)
		if !ok || !slices.Equal(data.Rows, want.Rows) {
			errs = append(errs, fmt.Sprintf("expected rows %v, got %s", want.Rows, resp))
		}
	}
	if want.Prompt != "" && prompt != want.Prompt {
		errs = append(errs, fmt.Sprintf("expected prompt %s, got %s", want.Prompt, prompt))
	}
	return errs
}
