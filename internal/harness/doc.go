// Package harness provides a conformance testing framework for the sequence
// engine.
//
// Scenarios are YAML documents pairing an inline sequence with expectations
// over the generated event stream: event counts, index uniqueness, start-time
// monotonicity, spot checks on individual events, or an expected failure
// code. A scenario either passes against its expectations or, via
// RunWithGolden, against a golden file holding the canonical event stream.
//
// Because generation is deterministic, golden files are stable across runs
// and platforms, and a golden mismatch always means the engine's output
// changed.
package harness
