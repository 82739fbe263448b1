package cli

import (
	"errors"

	"github.com/mdakit/mdaseq/internal/engine"
	"github.com/mdakit/mdaseq/internal/loader"
	"github.com/mdakit/mdaseq/internal/mda"
)

// loadSequence loads a sequence document, reporting any failure through the
// formatter and mapping it to an exit code.
func loadSequence(f *OutputFormatter, path string) (*mda.MDASequence, error) {
	seq, err := loader.LoadFile(path)
	if err != nil {
		return nil, reportLoadError(f, err)
	}
	return seq, nil
}

// reportEngineError prints a generation failure and maps it to an exit code.
// Configuration and domain errors carry structured codes; anything else is
// reported as-is.
func reportEngineError(f *OutputFormatter, err error) error {
	var cfgErr *engine.ConfigError
	if errors.As(err, &cfgErr) {
		f.Error(string(cfgErr.Code), cfgErr.Message, nil)
		return NewExitError(ExitFailure, "sequence configuration invalid")
	}
	var domErr *mda.DomainError
	if errors.As(err, &domErr) {
		f.Error(string(domErr.Code), domErr.Error(), nil)
		return NewExitError(ExitFailure, "event generation failed")
	}
	return WrapExitError(ExitFailure, "event generation failed", err)
}
