package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/sadopc/cockpit/internal/cli"
)

func main() {
	app := &cli.App{
		// Detect interactive terminal for the dashboard entrypoint.
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}

	if err := cli.NewRootCmd(app).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
