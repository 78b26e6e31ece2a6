package cli

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/topicdb/internal/engine"
)

// NewShellCommand creates the shell command.
func NewShellCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive session",
		Long: `Start an interactive session on the configured home.

Commands are read one per line from standard input until EXIT or end of
input. Malformed commands are reported and the session continues.

Example:
  topicdb shell --home ./data
  topicdb shell --backend sqlite --home ./topics.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(rootOpts, cmd)
		},
	}
	return cmd
}

func runShell(opts *RootOptions, cmd *cobra.Command) error {
	sess, err := opts.openSession(cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	formatter := newFormatter(opts, cmd)
	eng := sess.newEngine()
	out := cmd.OutOrStdout()

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		if opts.Format != "json" {
			fmt.Fprintf(out, "topicdb:%s> ", eng.Prompt())
		}
		if !scanner.Scan() {
			break
		}

		line := scanner.Text()
		resp := eng.Request(line)
		if err := formatter.Response(NewResponseView(line, resp, eng.Prompt()), resp); err != nil {
			return err
		}
		if _, ok := resp.(engine.Exit); ok {
			return nil
		}
	}

	if opts.Format != "json" {
		fmt.Fprintln(out)
	}
	if err := scanner.Err(); err != nil {
		return WrapExitError(ExitCommandError, "failed to read input", err)
	}
	return nil
}
