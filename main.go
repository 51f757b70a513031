package main

import (
	"fmt"
	"os"

	"github.com/heathj/gozebra/cli"
	"github.com/pkg/errors"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			// unknown commands fail before any command can report them
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
