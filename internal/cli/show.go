package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mdakit/mdaseq/internal/mda"
	"github.com/mdakit/mdaseq/internal/store"
)

// NewShowCommand creates the show command, which lists recorded runs or
// replays one run's recorded event stream.
func NewShowCommand(opts *RootOptions) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:           "show [run-id]",
		Short:         "List recorded runs, or show one run's events",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{
				Format:    opts.Format,
				Writer:    cmd.OutOrStdout(),
				ErrWriter: cmd.ErrOrStderr(),
				Verbose:   opts.Verbose,
			}
			if len(args) == 0 {
				return runShowList(cmd, formatter, dbPath)
			}
			return runShowRun(cmd, formatter, dbPath, args[0])
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "mdaseq.db", "path to the run database")
	return cmd
}

func runShowList(cmd *cobra.Command, f *OutputFormatter, dbPath string) error {
	db, err := store.Open(dbPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "opening run database", err)
	}
	defer db.Close()

	runs, err := db.ListRuns(cmd.Context())
	if err != nil {
		return WrapExitError(ExitFailure, "listing runs", err)
	}

	if f.Format == "json" {
		return f.Success(runs)
	}
	if len(runs) == 0 {
		fmt.Fprintln(f.Writer, "no recorded runs")
		return nil
	}
	for _, r := range runs {
		fmt.Fprintf(f.Writer, "%s  %s  %6d events  %s\n", r.ID, r.CreatedAt, r.EventCount, r.SequencePath)
	}
	return nil
}

func runShowRun(cmd *cobra.Command, f *OutputFormatter, dbPath, runID string) error {
	db, err := store.Open(dbPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "opening run database", err)
	}
	defer db.Close()

	ctx := cmd.Context()
	run, err := db.GetRun(ctx, runID)
	if err != nil {
		if errors.Is(err, store.ErrRunNotFound) {
			f.Error("RUN_NOT_FOUND", fmt.Sprintf("no run with id %s", runID), nil)
			return NewExitError(ExitCommandError, "run not found")
		}
		return WrapExitError(ExitFailure, "reading run", err)
	}

	events, err := db.ReadEvents(ctx, runID)
	if err != nil {
		return WrapExitError(ExitFailure, "reading events", err)
	}

	if f.Format == "json" {
		for i := range events {
			line, err := mda.MarshalCanonical(&events[i])
			if err != nil {
				return WrapExitError(ExitFailure, "encoding event", err)
			}
			fmt.Fprintf(f.Writer, "%s\n", line)
		}
		return nil
	}

	fmt.Fprintf(f.Writer, "run %s  %s  %s\n", run.ID, run.CreatedAt, run.SequencePath)
	for i := range events {
		fmt.Fprintf(f.Writer, "%4d  %s\n", i, formatEvent(&events[i]))
	}
	return nil
}
