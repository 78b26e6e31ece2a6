package cli

import (
	"encoding/json"
	"fmt"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"

	"github.com/roach88/topicdb/internal/store"
)

// ReplayResult holds the replay result for one topic.
type ReplayResult struct {
	Topic         string      `json:"topic"`
	Path          string      `json:"path"`
	Stats         store.Stats `json:"stats"`
	Deterministic bool        `json:"deterministic"`
	Diff          string      `json:"diff,omitempty"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay <topic>",
		Short: "Replay a topic log and verify determinism",
		Long: `Replay a topic log twice, verify both replays produce the same state,
and report line statistics.

The topic is given relative to the home, e.g. "archive/notes".

Exit codes:
  0 - Replay is deterministic
  1 - Replays differ
  2 - Command error (topic not found, malformed log, etc.)

Examples:
  topicdb replay notes
  topicdb replay archive/notes --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runReplay(opts *RootOptions, topic string, cmd *cobra.Command) error {
	sess, err := opts.openSession(cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	path := sess.topicFile(topic)
	first, err := store.Open(sess.backend, path, store.WithLogger(sess.logger))
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("failed to replay %s", topic), err)
	}
	second, err := store.Open(sess.backend, path, store.WithLogger(sess.logger))
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("failed to replay %s", topic), err)
	}

	diff := cmp.Diff(first.List(), second.List())
	if diff == "" {
		diff = cmp.Diff(first.Stats(), second.Stats())
	}

	result := ReplayResult{
		Topic:         topic,
		Path:          path,
		Stats:         first.Stats(),
		Deterministic: diff == "",
		Diff:          diff,
	}

	if opts.Format == "json" {
		return outputReplayJSON(cmd, result)
	}
	return outputReplayText(cmd, result, opts.Verbose)
}

func outputReplayJSON(cmd *cobra.Command, result ReplayResult) error {
	response := CLIResponse{Status: "ok", Data: result}
	if !result.Deterministic {
		response.Status = "error"
		response.Error = &CLIError{Code: ErrCodeGeneric, Message: "replay is not deterministic"}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(response); err != nil {
		return err
	}

	if !result.Deterministic {
		return NewExitError(ExitFailure, "replay is not deterministic")
	}
	return nil
}

func outputReplayText(cmd *cobra.Command, result ReplayResult, verbose bool) error {
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "Topic: %s (%s)\n", result.Topic, result.Path)
	fmt.Fprintf(w, "  Lines: %d\n", result.Stats.Lines)
	fmt.Fprintf(w, "  Records: %d\n", result.Stats.Records)
	fmt.Fprintf(w, "  Tombstones: %d\n", result.Stats.Tombstones)
	fmt.Fprintf(w, "  Superseded: %d\n", result.Stats.Superseded)

	if !result.Deterministic {
		fmt.Fprintln(w, "✗ Replay is not deterministic")
		if verbose {
			fmt.Fprintln(w, result.Diff)
		}
		return NewExitError(ExitFailure, "replay is not deterministic")
	}

	fmt.Fprintln(w, "✓ Replay is deterministic")
	return nil
}
