package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/topicdb/internal/fsys"
	"github.com/roach88/topicdb/internal/record"
	"github.com/roach88/topicdb/internal/store"
)

// CompactOutput is the payload of the compact command.
type CompactOutput struct {
	Topic string `json:"topic"`
	Path  string `json:"path"`
	store.CompactResult
}

func (o CompactOutput) String() string {
	return fmt.Sprintf("Compacted %s: %d -> %d lines (backup %s)", o.Topic, o.LinesBefore, o.LinesAfter, o.Backup)
}

// NewCompactCommand creates the compact command.
func NewCompactCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compact <topic>",
		Short: "Compact a topic log",
		Long: `Rewrite a topic log so it holds one line per visible record.

The previous log is kept next to it as <topic>.tpc.bkp_<timestamp>.

Examples:
  topicdb compact notes
  topicdb compact archive/notes --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompact(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runCompact(opts *RootOptions, topic string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	sess, err := opts.openSession(cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	path := sess.topicFile(topic)
	log, err := store.Open(sess.backend, path, store.WithLogger(sess.logger))
	if err != nil {
		_ = formatter.Error(openErrorCode(err), fmt.Sprintf("failed to open %s", topic), err.Error())
		return WrapExitError(ExitCommandError, fmt.Sprintf("failed to open %s", topic), err)
	}

	res, err := log.Compact()
	if err != nil {
		_ = formatter.Error(ErrCodeGeneric, fmt.Sprintf("failed to compact %s", topic), err.Error())
		return WrapExitError(ExitFailure, fmt.Sprintf("failed to compact %s", topic), err)
	}

	return formatter.Success(CompactOutput{Topic: topic, Path: path, CompactResult: res})
}

// openErrorCode classifies a store.Open failure.
func openErrorCode(err error) string {
	switch {
	case errors.Is(err, fsys.ErrNotExist):
		return ErrCodeNotFound
	case errors.Is(err, record.ErrFormat):
		return ErrCodeFormat
	default:
		return ErrCodeGeneric
	}
}
