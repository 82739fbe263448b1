package harness

import (
	"errors"
	"fmt"

	"github.com/mdakit/mdaseq/internal/engine"
	"github.com/mdakit/mdaseq/internal/loader"
	"github.com/mdakit/mdaseq/internal/mda"
)

// Result holds the outcome of one scenario execution.
type Result struct {
	// Events is the generated stream, in emission order.
	Events []mda.MDAEvent

	// ErrorCode is the structured code of the failure that terminated
	// generation, empty on success.
	ErrorCode string

	// Failures lists expectation violations. Empty means the scenario
	// passed.
	Failures []string
}

// Passed reports whether every expectation held.
func (r *Result) Passed() bool { return len(r.Failures) == 0 }

// AddFailure records one expectation violation.
func (r *Result) AddFailure(format string, args ...any) {
	r.Failures = append(r.Failures, fmt.Sprintf(format, args...))
}

// Run executes a scenario: parse the inline sequence, generate its event
// stream, and evaluate the expectations. A returned error means the harness
// itself could not run the scenario; expectation violations are reported in
// the Result.
func Run(scenario *Scenario) (*Result, error) {
	result := &Result{}

	data, err := scenario.sequenceYAML()
	if err != nil {
		return nil, fmt.Errorf("encoding inline sequence: %w", err)
	}

	seq, err := loader.Parse(data)
	if err != nil {
		var loadErr *loader.LoadError
		if errors.As(err, &loadErr) {
			result.ErrorCode = loadErr.Code
			evaluateExpectations(result, scenario)
			return result, nil
		}
		return nil, fmt.Errorf("parsing inline sequence: %w", err)
	}

	events, code, err := generate(seq, scenario.MaxEvents)
	if err != nil {
		return nil, err
	}
	result.Events = events
	result.ErrorCode = code

	evaluateExpectations(result, scenario)
	return result, nil
}

// generate drains one iteration of seq, up to limit events when limit > 0.
// A structured engine failure comes back as a code; any other failure is a
// harness error.
func generate(seq *mda.MDASequence, limit int) ([]mda.MDAEvent, string, error) {
	st, err := engine.Iterate(seq)
	if err != nil {
		if code := errorCode(err); code != "" {
			return nil, code, nil
		}
		return nil, "", err
	}

	var events []mda.MDAEvent
	for st.Next() {
		events = append(events, *st.Event())
		if limit > 0 && len(events) >= limit {
			return events, "", nil
		}
	}
	if err := st.Err(); err != nil {
		if code := errorCode(err); code != "" {
			return events, code, nil
		}
		return events, "", err
	}
	return events, "", nil
}

// errorCode extracts the structured code from engine and domain errors.
func errorCode(err error) string {
	var cfgErr *engine.ConfigError
	if errors.As(err, &cfgErr) {
		return string(cfgErr.Code)
	}
	var domErr *mda.DomainError
	if errors.As(err, &domErr) {
		return string(domErr.Code)
	}
	return ""
}
