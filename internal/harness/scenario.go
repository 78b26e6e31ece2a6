package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/topicdb/internal/engine"
)

// Scenario is one scripted session.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Backend selects the storage backend: "sqlite" (in-memory, default)
	// or "os" (temp directory).
	Backend string `yaml:"backend,omitempty"`

	// Steps are sent to the engine in order.
	Steps []Step `yaml:"steps"`

	// Assertions are checked after the last step.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Step sends one command line.
type Step struct {
	Command string `yaml:"command"`

	// Expect validates the response. If nil, any response is accepted.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect describes the expected response to a step.
type Expect struct {
	// Status is the response status (ok, data, invalid, error, open, close,
	// exit, unknown).
	Status string `yaml:"status"`

	// Message is matched exactly against the rendered response.
	Message string `yaml:"message,omitempty"`

	// Contains is matched as a substring of the rendered response.
	Contains string `yaml:"contains,omitempty"`

	// Rows is matched exactly against Data rows.
	Rows []engine.Row `yaml:"rows,omitempty"`

	// Prompt is the expected prompt after the step.
	Prompt string `yaml:"prompt,omitempty"`
}

// Assertion validates backend state after the session.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Path is a backend path (used by file_content, file_exists, file_missing).
	Path string `yaml:"path,omitempty"`

	// Lines is the exact file content, one entry per line (used by file_content).
	Lines []string `yaml:"lines,omitempty"`

	// Prompt is the expected final prompt (used by prompt).
	Prompt string `yaml:"prompt,omitempty"`
}

// Assertion type constants.
const (
	AssertFileContent = "file_content"
	AssertFileExists  = "file_exists"
	AssertFileMissing = "file_missing"
	AssertPrompt      = "prompt"
)

// Backend names accepted in Scenario.Backend.
const (
	BackendSQLite = "sqlite"
	BackendOS     = "os"
)

var validStatuses = map[string]bool{
	string(engine.StatusOK):      true,
	string(engine.StatusData):    true,
	string(engine.StatusInvalid): true,
	string(engine.StatusError):   true,
	string(engine.StatusOpen):    true,
	string(engine.StatusClose):   true,
	string(engine.StatusExit):    true,
	string(engine.StatusUnknown): true,
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML with strict field validation.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	switch s.Backend {
	case "", BackendSQLite, BackendOS:
	default:
		return fmt.Errorf("backend %q is not supported (expected %q or %q)", s.Backend, BackendSQLite, BackendOS)
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if step.Command == "" {
			return fmt.Errorf("step %d: command is required", i)
		}
		if step.Expect != nil && !validStatuses[step.Expect.Status] {
			return fmt.Errorf("step %d: unknown expect status %q", i, step.Expect.Status)
		}
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(a); err != nil {
			return fmt.Errorf("assertion %d: %w", i, err)
		}
	}
	return nil
}

func validateAssertion(a Assertion) error {
	switch a.Type {
	case AssertFileContent, AssertFileExists, AssertFileMissing:
		if a.Path == "" {
			return fmt.Errorf("%s requires path", a.Type)
		}
	case AssertPrompt:
		if a.Prompt == "" {
			return fmt.Errorf("prompt requires prompt")
		}
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
	return nil
}
