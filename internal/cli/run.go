package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mdakit/mdaseq/internal/engine"
	"github.com/mdakit/mdaseq/internal/mda"
	"github.com/mdakit/mdaseq/internal/store"
)

// appendBatchSize bounds memory while recording long (or dynamic) streams.
const appendBatchSize = 256

// NewRunCommand creates the run command, which generates a sequence's event
// stream and records it to the store.
func NewRunCommand(opts *RootOptions) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:           "run <sequence.yaml>",
		Short:         "Generate a sequence and record its event stream",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{
				Format:    opts.Format,
				Writer:    cmd.OutOrStdout(),
				ErrWriter: cmd.ErrOrStderr(),
				Verbose:   opts.Verbose,
			}
			return runRun(cmd, formatter, args[0], dbPath)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "mdaseq.db", "path to the run database")
	return cmd
}

type runResult struct {
	RunID      string `json:"run_id"`
	EventCount int    `json:"event_count"`
}

func runRun(cmd *cobra.Command, f *OutputFormatter, path, dbPath string) error {
	ctx := cmd.Context()

	seq, err := loadSequence(f, path)
	if err != nil {
		return err
	}

	st, err := engine.Iterate(seq)
	if err != nil {
		return reportEngineError(f, err)
	}

	db, err := store.Open(dbPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "opening run database", err)
	}
	defer db.Close()

	runID, err := db.CreateRun(ctx, path)
	if err != nil {
		return WrapExitError(ExitFailure, "creating run", err)
	}
	slog.Info("run created", "run_id", runID, "sequence", path)

	total := 0
	batch := make([]mda.MDAEvent, 0, appendBatchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := db.AppendEvents(ctx, runID, batch); err != nil {
			return WrapExitError(ExitFailure, "recording events", err)
		}
		total += len(batch)
		batch = batch[:0]
		return nil
	}

	for st.Next() {
		batch = append(batch, *st.Event())
		if len(batch) >= appendBatchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	if err := st.Err(); err != nil {
		// Events pulled before the failure stay recorded.
		if ferr := flush(); ferr != nil {
			return ferr
		}
		slog.Error("iteration aborted", "run_id", runID, "events", total, "error", err)
		return reportEngineError(f, err)
	}
	if err := flush(); err != nil {
		return err
	}
	slog.Info("run recorded", "run_id", runID, "events", total)

	result := runResult{RunID: runID, EventCount: total}
	if f.Format == "json" {
		return f.Success(result)
	}
	fmt.Fprintf(f.Writer, "run %s: %d events recorded\n", result.RunID, result.EventCount)
	return nil
}
