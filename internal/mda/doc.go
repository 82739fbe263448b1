// Package mda provides the foundational data model for multi-dimensional
// acquisition sequences.
//
// This package contains type definitions only. All other internal packages
// import mda; mda imports nothing internal. This keeps the data model the
// foundational layer with no circular dependencies.
//
// Key design constraints:
//   - Plans are pure value generators: StepAt/ValueAt are total functions of
//     the plan's parameters, never of external mutable state.
//   - ZPlan and the grid traversal modes are closed variant sets, sealed with
//     marker methods so the engine can switch over them exhaustively.
//   - An MDASequence is immutable once constructed. Iteration cursors live in
//     the engine, never on the sequence itself, so concurrent readers may
//     drive independent iterations over the same sequence without locks.
//   - AxisIndex is an ordered list of (axis, step) pairs, not a map, so
//     insertion order (outer loop to inner loop) is preserved and composed
//     indices from nested sequences stay well formed.
package mda
