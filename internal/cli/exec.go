package cli

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/topicdb/internal/engine"
)

// ExecOptions holds flags for the exec command.
type ExecOptions struct {
	*RootOptions
	File   string // script file, one command per line
	Strict bool   // exit 1 if any response is Invalid, Error or Unknown
}

// ExecResult is the JSON payload of the exec command.
type ExecResult struct {
	Responses []ResponseView `json:"responses"`
	Failed    int            `json:"failed"`
}

// NewExecCommand creates the exec command.
func NewExecCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExecOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "exec [command...]",
		Short: "Run commands non-interactively",
		Long: `Run a sequence of commands in one session.

Each argument is one command line. With --file, commands are read from a
script: one per line, blank lines and lines starting with '#' are skipped.
File commands run after argument commands. EXIT stops the run.

Exit codes:
  0 - All commands ran (or no failures with --strict)
  1 - --strict and a command returned Invalid, Error or Unknown
  2 - Command error (bad config, unreadable script, etc.)

Examples:
  topicdb exec "CREATE TOPIC notes" "OPEN TOPIC notes" "ADD buy milk"
  topicdb exec --file setup.tdb --strict
  topicdb exec --format json "LIST TOPIC"`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExec(opts, args, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "read commands from a script file")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "exit 1 if any command fails")

	return cmd
}

func runExec(opts *ExecOptions, args []string, cmd *cobra.Command) error {
	lines := append([]string(nil), args...)
	if opts.File != "" {
		script, err := readScript(opts.File)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to read script", err)
		}
		lines = append(lines, script...)
	}
	if len(lines) == 0 {
		return NewExitError(ExitCommandError, "no commands given (pass commands as arguments or use --file)")
	}

	sess, err := opts.openSession(cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	eng := sess.newEngine()
	result := ExecResult{Responses: make([]ResponseView, 0, len(lines))}
	w := cmd.OutOrStdout()

	for _, line := range lines {
		resp := eng.Request(line)
		result.Responses = append(result.Responses, NewResponseView(line, resp, eng.Prompt()))
		if Failed(resp) {
			result.Failed++
		}

		if opts.Format != "json" {
			fmt.Fprintf(w, "topicdb:%s> %s\n", promptBefore(result.Responses), line)
			fmt.Fprintln(w, RenderText(resp))
		}
		if _, ok := resp.(engine.Exit); ok {
			break
		}
	}

	if opts.Format == "json" {
		response := CLIResponse{Status: "ok", Data: result}
		if opts.Strict && result.Failed > 0 {
			response.Status = "error"
			response.Error = &CLIError{
				Code:    ErrCodeResponse,
				Message: fmt.Sprintf("%d command(s) failed", result.Failed),
			}
		}
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}
	}

	if opts.Strict && result.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d command(s) failed", result.Failed))
	}
	return nil
}

// promptBefore returns the prompt the last command was typed at.
func promptBefore(views []ResponseView) string {
	if len(views) < 2 {
		return "/"
	}
	return views[len(views)-2].Prompt
}

// readScript reads non-blank, non-comment lines from path.
func readScript(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}
