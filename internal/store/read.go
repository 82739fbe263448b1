package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mdakit/mdaseq/internal/mda"
)

// Run describes one recorded generation.
type Run struct {
	ID           string `json:"id"`
	SequencePath string `json:"sequence_path"`
	CreatedAt    string `json:"created_at"`
	EventCount   int    `json:"event_count"`
}

// ErrRunNotFound is returned when a run id does not exist.
var ErrRunNotFound = errors.New("run not found")

// GetRun returns one recorded run by id.
func (s *Store) GetRun(ctx context.Context, runID string) (Run, error) {
	var r Run
	err := s.db.QueryRowContext(ctx, `
		SELECT id, sequence_path, created_at, event_count
		FROM runs WHERE id = ?
	`, runID).Scan(&r.ID, &r.SequencePath, &r.CreatedAt, &r.EventCount)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return Run{}, fmt.Errorf("get run: %w", err)
	}
	return r, nil
}

// ListRuns returns every recorded run, newest first, id as tiebreaker.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, sequence_path, created_at, event_count
		FROM runs
		ORDER BY created_at DESC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.SequencePath, &r.CreatedAt, &r.EventCount); err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// ReadEvents returns the recorded stream of a run in emission order.
// Events are decoded from their canonical payloads, so a read-back stream is
// value-identical to the stream that was recorded.
func (s *Store) ReadEvents(ctx context.Context, runID string) ([]mda.MDAEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT payload FROM events
		WHERE run_id = ?
		ORDER BY idx ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}
	defer rows.Close()

	events := []mda.MDAEvent{}
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("read events: %w", err)
		}
		var ev mda.MDAEvent
		if err := json.Unmarshal([]byte(payload), &ev); err != nil {
			return nil, fmt.Errorf("read events: decode: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}
	return events, nil
}
