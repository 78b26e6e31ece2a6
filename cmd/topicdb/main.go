// Command topicdb is the command-line front end of the topic record store.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/topicdb/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(cli.GetExitCode(err))
	}
}
