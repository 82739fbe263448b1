package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario.
// Scenarios pair an inline sequence document with expectations over the
// event stream it generates.
type Scenario struct {
	// Name uniquely identifies this scenario. Also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Sequence is the inline sequence document, in the same shape the
	// loader accepts from a standalone file.
	Sequence map[string]any `yaml:"sequence"`

	// MaxEvents caps generation for dynamic-length sequences.
	// Zero means no cap; required when the sequence has a dynamic time plan.
	MaxEvents int `yaml:"max_events,omitempty"`

	// Expect holds the assertions evaluated against the generated stream.
	Expect Expectations `yaml:"expect"`
}

// Expectations describes the asserted properties of a generated stream.
type Expectations struct {
	// Count is the expected total number of events. Nil skips the check.
	Count *int `yaml:"count,omitempty"`

	// UniqueIndices asserts that no two events share an axis index.
	UniqueIndices bool `yaml:"unique_indices,omitempty"`

	// MonotonicStartTimes asserts that min_start_time never decreases
	// across the stream.
	MonotonicStartTimes bool `yaml:"monotonic_start_times,omitempty"`

	// Events spot-checks individual events by position in the stream.
	Events []EventExpectation `yaml:"events,omitempty"`

	// ErrorCode is the code of the expected failure (a configuration or
	// domain error code). When set, generation must fail with that code
	// and the stream expectations above are not evaluated.
	ErrorCode string `yaml:"error_code,omitempty"`
}

// EventExpectation spot-checks one event. Only set fields are compared.
type EventExpectation struct {
	// At is the zero-based position of the event in the stream.
	At int `yaml:"at"`

	// Index is the expected axis index, as axis name to step.
	// Subset match - only listed axes are checked.
	Index map[string]int `yaml:"index,omitempty"`

	// Channel is the expected channel config name.
	Channel string `yaml:"channel,omitempty"`

	// Exposure is the expected exposure in milliseconds.
	Exposure *float64 `yaml:"exposure,omitempty"`

	// X, Y, Z are expected stage coordinates.
	X *float64 `yaml:"x,omitempty"`
	Y *float64 `yaml:"y,omitempty"`
	Z *float64 `yaml:"z,omitempty"`

	// MinStartTime is the expected earliest start, in seconds.
	MinStartTime *float64 `yaml:"min_start_time,omitempty"`

	// PosName is the expected position name.
	PosName string `yaml:"pos_name,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file.
// Unknown fields are rejected so typos in expectation names fail loudly
// instead of silently skipping a check.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse scenario YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and coherent.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Sequence == nil {
		return fmt.Errorf("sequence is required")
	}
	if s.MaxEvents < 0 {
		return fmt.Errorf("max_events must be non-negative")
	}
	if s.Expect.ErrorCode != "" {
		if s.Expect.Count != nil || s.Expect.UniqueIndices ||
			s.Expect.MonotonicStartTimes || len(s.Expect.Events) > 0 {
			return fmt.Errorf("error_code excludes stream expectations")
		}
		return nil
	}
	if s.Expect.Count != nil && *s.Expect.Count < 0 {
		return fmt.Errorf("expect.count must be non-negative")
	}
	for i, e := range s.Expect.Events {
		if e.At < 0 {
			return fmt.Errorf("expect.events[%d]: at must be non-negative", i)
		}
	}
	return nil
}

// sequenceYAML re-encodes the inline sequence document so the loader sees
// exactly what a standalone sequence file would contain.
func (s *Scenario) sequenceYAML() ([]byte, error) {
	return yaml.Marshal(s.Sequence)
}
