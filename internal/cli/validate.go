package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mdakit/mdaseq/internal/engine"
	"github.com/mdakit/mdaseq/internal/loader"
	"github.com/mdakit/mdaseq/internal/mda"
)

// NewValidateCommand creates the validate command.
//
// Validation covers both the document (YAML shape, schema) and the
// configuration (axis order, dynamic axis placement, cyclic nesting), so a
// sequence that validates cleanly is guaranteed to iterate without
// configuration errors.
func NewValidateCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "validate <sequence.yaml>",
		Short:         "Validate a sequence document",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := &OutputFormatter{
				Format:    opts.Format,
				Writer:    cmd.OutOrStdout(),
				ErrWriter: cmd.ErrOrStderr(),
				Verbose:   opts.Verbose,
			}
			return runValidate(formatter, args[0])
		},
	}
	return cmd
}

func runValidate(f *OutputFormatter, path string) error {
	seq, err := loader.LoadFile(path)
	if err != nil {
		return reportLoadError(f, err)
	}

	if _, err := engine.Iterate(seq); err != nil {
		var cfgErr *engine.ConfigError
		if errors.As(err, &cfgErr) {
			f.Error(string(cfgErr.Code), cfgErr.Message, nil)
			return NewExitError(ExitFailure, "sequence configuration invalid")
		}
		return WrapExitError(ExitFailure, "sequence invalid", err)
	}

	summary := summarizeSequence(seq)
	if f.Format == "json" {
		return f.Success(summary)
	}
	fmt.Fprintf(f.Writer, "%s: valid\n", path)
	for _, a := range summary.Axes {
		fmt.Fprintf(f.Writer, "  axis %s: %s\n", a.Axis, a.Length)
	}
	return nil
}

// axisSummary describes one present axis for validate output.
type axisSummary struct {
	Axis   string `json:"axis"`
	Length string `json:"length"` // step count, or "dynamic"
}

type sequenceSummary struct {
	Axes []axisSummary `json:"axes"`
}

func summarizeSequence(seq *mda.MDASequence) sequenceSummary {
	var s sequenceSummary
	for _, a := range seq.PresentAxes() {
		n, known := seq.AxisLength(a)
		length := "dynamic"
		if known {
			length = fmt.Sprintf("%d", n)
		}
		s.Axes = append(s.Axes, axisSummary{Axis: string(a), Length: length})
	}
	return s
}

// reportLoadError prints a load failure and maps it to an exit code:
// schema and build problems are validation failures, everything else
// (missing file, unreadable YAML) is a command error.
func reportLoadError(f *OutputFormatter, err error) error {
	var loadErr *loader.LoadError
	if errors.As(err, &loadErr) {
		f.Error(loadErr.Code, loadErr.Message, loadErr.Path)
		switch loadErr.Code {
		case loader.ErrCodeSchema, loader.ErrCodeBuild:
			return NewExitError(ExitFailure, "sequence document invalid")
		default:
			return NewExitError(ExitCommandError, "cannot load sequence document")
		}
	}
	return WrapExitError(ExitCommandError, "cannot load sequence document", err)
}
