package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/topicdb/internal/fsys"
	"github.com/roach88/topicdb/internal/record"
	"github.com/roach88/topicdb/internal/store"
)

// TopicIssue describes one topic that failed to replay.
type TopicIssue struct {
	Path   string `json:"path"`
	Line   int    `json:"line,omitempty"`
	Reason string `json:"reason"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool         `json:"valid"`
	Topics int          `json:"topics"`
	Issues []TopicIssue `json:"issues,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check every topic log under the home",
		Long: `Replay every topic log under the home and report malformed lines.

Exit codes:
  0 - All topics replay
  1 - One or more topics are malformed
  2 - Command error (bad config, unreadable home, etc.)`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, cmd)
		},
	}
	return cmd
}

func runValidate(opts *RootOptions, cmd *cobra.Command) error {
	sess, err := opts.openSession(cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	topics, err := findTopics(sess.backend, "", sess.cfg.TopicExtension)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to scan home", err)
	}

	result := ValidationResult{Valid: true, Topics: len(topics), Issues: []TopicIssue{}}
	for _, path := range topics {
		_, err := store.Open(sess.backend, path, store.WithLogger(sess.logger))
		if err == nil {
			continue
		}

		issue := TopicIssue{Path: path, Reason: err.Error()}
		var ferr *record.FormatError
		if errors.As(err, &ferr) {
			issue.Line = ferr.Line
			issue.Reason = ferr.Reason
		}
		result.Issues = append(result.Issues, issue)
		result.Valid = false
	}

	if opts.Format == "json" {
		return outputValidateJSON(cmd.OutOrStdout(), result)
	}
	return outputValidateText(cmd.OutOrStdout(), result)
}

// findTopics lists topic files below dir, depth first, sorted per directory.
func findTopics(b fsys.Backend, dir, ext string) ([]string, error) {
	files, err := b.ReadDir(dir, fsys.KindFile)
	if err != nil {
		return nil, err
	}

	var topics []string
	for _, name := range files {
		if strings.HasSuffix(name, ext) && name != ext {
			topics = append(topics, fsys.Join(dir, name))
		}
	}

	dirs, err := b.ReadDir(dir, fsys.KindDir)
	if err != nil {
		return nil, err
	}
	for _, name := range dirs {
		sub, err := findTopics(b, fsys.Join(dir, name), ext)
		if err != nil {
			return nil, err
		}
		topics = append(topics, sub...)
	}
	return topics, nil
}

func outputValidateJSON(w io.Writer, result ValidationResult) error {
	response := CLIResponse{Status: "ok", Data: result}
	if !result.Valid {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    ErrCodeFormat,
			Message: fmt.Sprintf("%d topic(s) failed validation", len(result.Issues)),
			Details: result.Issues,
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(response); err != nil {
		return err
	}
	if !result.Valid {
		return NewExitError(ExitFailure, "validation failed")
	}
	return nil
}

func outputValidateText(w io.Writer, result ValidationResult) error {
	for _, issue := range result.Issues {
		if issue.Line > 0 {
			fmt.Fprintf(w, "✗ %s:%d: %s\n", issue.Path, issue.Line, issue.Reason)
		} else {
			fmt.Fprintf(w, "✗ %s: %s\n", issue.Path, issue.Reason)
		}
	}

	if !result.Valid {
		fmt.Fprintf(w, "%d of %d topic(s) failed validation\n", len(result.Issues), result.Topics)
		return NewExitError(ExitFailure, "validation failed")
	}

	fmt.Fprintf(w, "✓ %d topic(s) valid\n", result.Topics)
	return nil
}
