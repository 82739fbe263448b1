// Package store provides SQLite-backed recording of generated event streams.
//
// The engine itself holds no state and persists nothing; the store is a
// downstream collaborator used by the CLI to record a generated stream so it
// can be inspected, diffed, or handed to an acquisition engine later.
//
// The store keeps:
//   - Runs: one row per recorded generation (UUID id, source document path)
//   - Events: the full ordered stream of a run, one row per event, with the
//     canonical JSON payload alongside a few queryable columns
//
// # Determinism
//
// Events are keyed by (run_id, idx) where idx is the emission order, and all
// reads use ORDER BY idx ASC so a recorded stream reads back in exactly the
// order it was generated.
//
// # Database configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: enforce referential integrity
package store
