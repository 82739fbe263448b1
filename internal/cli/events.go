package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mdakit/mdaseq/internal/engine"
	"github.com/mdakit/mdaseq/internal/mda"
)

// NewEventsCommand creates the events command, which enumerates the event
// stream of a sequence document without recording anything.
func NewEventsCommand(opts *RootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:           "events <sequence.yaml>",
		Short:         "Enumerate the event stream of a sequence",
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
			return runEvents(formatter, args[0], limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "stop after N events (0 = no limit)")
	return cmd
}

func runEvents(f *OutputFormatter, path string, limit int) error {
	seq, err := loadSequence(f, path)
	if err != nil {
		return err
	}

	st, err := engine.Iterate(seq)
	if err != nil {
		return reportEngineError(f, err)
	}

	// Events stream out as they are generated; dynamic-length sequences can
	// be arbitrarily long, so nothing is buffered.
	n := 0
	for st.Next() {
		ev := st.Event()
		if f.Format == "json" {
			line, err := mda.MarshalCanonical(ev)
			if err != nil {
				return WrapExitError(ExitFailure, "encoding event", err)
			}
			fmt.Fprintf(f.Writer, "%s\n", line)
		} else {
			fmt.Fprintf(f.Writer, "%4d  %s\n", n, formatEvent(ev))
		}
		n++
		if limit > 0 && n >= limit {
			break
		}
	}
	if err := st.Err(); err != nil {
		return reportEngineError(f, err)
	}

	f.VerboseLog("%d events", n)
	return nil
}

// formatEvent renders one event as a single text line.
func formatEvent(ev *mda.MDAEvent) string {
	var b strings.Builder
	b.WriteString("index=")
	b.WriteString(ev.Index.Key())

	if ev.Channel != nil {
		fmt.Fprintf(&b, " channel=%s", ev.Channel.Config)
	}
	if ev.Exposure > 0 {
		fmt.Fprintf(&b, " exposure=%g", ev.Exposure)
	}
	if ev.X != nil {
		fmt.Fprintf(&b, " x=%g", *ev.X)
	}
	if ev.Y != nil {
		fmt.Fprintf(&b, " y=%g", *ev.Y)
	}
	if ev.Z != nil {
		fmt.Fprintf(&b, " z=%g", *ev.Z)
	}
	if ev.MinStartTime != nil {
		fmt.Fprintf(&b, " t_min=%gs", *ev.MinStartTime)
	}
	if ev.PosName != "" {
		fmt.Fprintf(&b, " pos=%s", ev.PosName)
	}
	if ev.Autofocus {
		b.WriteString(" af")
	}
	if ev.KeepShutterOpen {
		b.WriteString(" shutter-open")
	}
	return b.String()
}
