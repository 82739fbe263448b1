package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mdakit/mdaseq/internal/cli"
)

// main is the entrypoint for the mdaseq command.
func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}

// run executes the root command and normalizes errors for exit handling.
func run() error {
	return cli.NewRootCommand().Execute()
}
