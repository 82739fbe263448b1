package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mdakit/mdaseq/internal/mda"
)

// CreateRun registers a new recorded run and returns its identifier.
func (s *Store) CreateRun(ctx context.Context, sequencePath string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, sequence_path) VALUES (?, ?)
	`, id, sequencePath)
	if err != nil {
		return "", fmt.Errorf("create run: %w", err)
	}
	return id, nil
}

// AppendEvents records a batch of events for a run, in emission order,
// continuing from the run's current event count. The whole batch is written
// in one transaction.
//
// Each event row stores the canonical JSON payload plus a few queryable
// columns extracted from it.
func (s *Store) AppendEvents(ctx context.Context, runID string, events []mda.MDAEvent) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("append events: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	var base int
	if err := tx.QueryRowContext(ctx,
		`SELECT event_count FROM runs WHERE id = ?`, runID,
	).Scan(&base); err != nil {
		return fmt.Errorf("append events: run %s: %w", runID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO events
		(run_id, idx, axis_index, channel, exposure, x, y, z, min_start_time, pos_name, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("append events: %w", err)
	}
	defer stmt.Close()

	for i := range events {
		ev := &events[i]
		payload, err := mda.MarshalCanonical(ev)
		if err != nil {
			return fmt.Errorf("append events: event %d: %w", base+i, err)
		}
		indexJSON, err := ev.Index.MarshalJSON()
		if err != nil {
			return fmt.Errorf("append events: event %d index: %w", base+i, err)
		}

		var channel any
		if ev.Channel != nil {
			channel = ev.Channel.Config
		}

		_, err = stmt.ExecContext(ctx,
			runID,
			base+i,
			string(indexJSON),
			channel,
			ev.Exposure,
			nullable(ev.X),
			nullable(ev.Y),
			nullable(ev.Z),
			nullable(ev.MinStartTime),
			ev.PosName,
			string(payload),
		)
		if err != nil {
			return fmt.Errorf("append events: event %d: %w", base+i, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE runs SET event_count = event_count + ? WHERE id = ?`,
		len(events), runID,
	); err != nil {
		return fmt.Errorf("append events: update count: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("append events: commit: %w", err)
	}
	return nil
}

// nullable maps a nil float pointer to SQL NULL.
func nullable(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
