// Package engine turns a declarative MDASequence into a deterministic,
// ordered stream of acquisition events.
//
// ARCHITECTURE:
//
// Stateless-pull generation:
// Iteration is a pure CPU-bound enumeration driven by the caller pulling one
// event at a time. The engine holds no resources and no shared mutable
// state; all iteration state lives on the Stream, so independent streams
// over the same sequence never need synchronization. Cancellation is simply
// ceasing to pull.
//
// Event generation flow:
//  1. Iterate() resolves the axis nesting order, verifies that a
//     dynamic-length time plan is outermost, and rejects cyclic
//     sub-sequence nesting before any event is produced.
//  2. The composer runs an odometer over the active axes: the innermost
//     axis varies fastest, wrapping and cascading outward.
//  3. Every raw combination is screened by the per-axis skip predicates;
//     discarded combinations advance the odometer silently.
//  4. Surviving combinations are materialized into MDAEvent values with
//     absolute coordinates, channel settings and a minimum start time.
//  5. Positions carrying a nested sequence splice a recursive child stream
//     into the parent stream in place of a single event.
//
// CRITICAL PATTERNS:
//
// Running acquisition clock:
// The clock advances to max(clock, time_plan offset) whenever the time axis
// advances, and every event emitted at that time step carries the clock as
// its minimum start time. The clock is local to one Stream, never global.
//
// Deterministic enumeration:
// Plans are pure value generators and the odometer order is fixed, so
// re-iterating the same sequence yields a byte-identical event stream.
package engine
