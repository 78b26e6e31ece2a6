package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/roach88/topicdb/internal/engine"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Failed responses in --strict mode, invalid topics, failed scenarios, non-deterministic replay
	ExitCommandError = 2 // Command error (bad config, missing home, unreadable files)
)

// Error codes for JSON output.
const (
	ErrCodeGeneric    = "E001" // Generic/unknown error
	ErrCodeConfig     = "E002" // Config load or validation failed
	ErrCodeBackend    = "E003" // Backend could not be opened
	ErrCodeNotFound   = "E004" // Topic or path not found
	ErrCodeFormat     = "E005" // Malformed log line
	ErrCodeResponse   = "E006" // A command returned Invalid, Error or Unknown
	ErrCodeTestFailed = "E007" // Scenario failed
)

// ExitError represents an error with a specific exit code.
// Use this to return errors with meaningful exit codes from CLI commands.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for verbose/diagnostic output (defaults to Writer)
	Verbose   bool
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string    `json:"status"`          // "ok" or "error"
	Data   any       `json:"data,omitempty"`  // success payload
	Error  *CLIError `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`              // "E001", "E002", etc.
	Message string `json:"message"`           // human-readable message
	Details any    `json:"details,omitempty"` // additional context
}

// ResponseView is the JSON form of one engine response.
type ResponseView struct {
	Command string       `json:"command"`
	Status  string       `json:"status"`
	Message string       `json:"message,omitempty"`
	Rows    []engine.Row `json:"rows,omitempty"`
	Prompt  string       `json:"prompt"`
}

// NewResponseView captures resp together with the prompt after it.
func NewResponseView(command string, resp engine.Response, prompt string) ResponseView {
	view := ResponseView{
		Command: command,
		Status:  string(resp.Status()),
		Prompt:  prompt,
	}
	if data, ok := resp.(engine.Data); ok {
		view.Rows = data.Rows
		if view.Rows == nil {
			view.Rows = []engine.Row{}
		}
	} else {
		view.Message = resp.String()
	}
	return view
}

// Success outputs a successful result in the configured format.
func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}

	// Human-readable text output
	fmt.Fprintln(f.Writer, data)
	return nil
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
		})
	}

	// Human-readable error
	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if f.Verbose && details != nil {
		fmt.Fprintf(f.Writer, "Details: %v\n", details)
	}
	return nil
}

// Response writes one engine response. Text output prefixes failures so
// they stand out in a transcript; JSON output writes one ResponseView per
// line.
func (f *OutputFormatter) Response(view ResponseView, resp engine.Response) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(view)
	}
	_, err := fmt.Fprintln(f.Writer, RenderText(resp))
	return err
}

// RenderText renders a response for a terminal.
func RenderText(resp engine.Response) string {
	switch resp.Status() {
	case engine.StatusInvalid:
		return "Invalid: " + resp.String()
	case engine.StatusError:
		return "Error: " + resp.String()
	default:
		return resp.String()
	}
}

// Failed reports whether resp should fail a --strict run.
func Failed(resp engine.Response) bool {
	switch resp.Status() {
	case engine.StatusInvalid, engine.StatusError, engine.StatusUnknown:
		return true
	}
	return false
}

// VerboseLog outputs a message only if verbose mode is enabled.
// Uses ErrWriter if set, otherwise falls back to Writer.
// When format is JSON, verbose logs go to ErrWriter to avoid corrupting JSON output.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	fmt.Fprintf(f.GetErrWriter(), format+"\n", args...)
}

// GetErrWriter returns the appropriate writer for diagnostic output.
// Returns ErrWriter if set, otherwise Writer.
func (f *OutputFormatter) GetErrWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}
