package journal

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/craftkit/internal/crafting"
)

// ReadExecution returns one execution.
// Returns sql.ErrNoRows if not found.
func (s *Store) ReadExecution(ctx context.Context, id string) (Execution, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, recipe_id, recipe_digest, machine, seq, start_tick, status, end_tick
		FROM executions
		WHERE id = ?
	`, id)
	return scanExecution(row)
}

// ListExecutions returns every execution ordered by seq.
// Returns an empty slice (not nil) for an empty journal.
func (s *Store) ListExecutions(ctx context.Context) ([]Execution, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, recipe_id, recipe_digest, machine, seq, start_tick, status, end_tick
		FROM executions
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query executions: %w", err)
	}
	defer rows.Close()

	executions := []Execution{}
	for rows.Next() {
		e, err := scanExecution(rows)
		if err != nil {
			return nil, err
		}
		executions = append(executions, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate executions: %w", err)
	}
	return executions, nil
}

// ReadEvents returns the events of one execution ordered by seq.
// Returns an empty slice (not nil) if there are none.
func (s *Store) ReadEvents(ctx context.Context, executionID string) ([]crafting.Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT execution_id, seq, tick, phase, requirement_index, requirement, component, outcome, seed
		FROM events
		WHERE execution_id = ?
		ORDER BY seq ASC
	`, executionID)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	events := []crafting.Event{}
	for rows.Next() {
		var ev crafting.Event
		var phase string
		if err := rows.Scan(
			&ev.ExecutionID,
			&ev.Seq,
			&ev.Tick,
			&phase,
			&ev.Index,
			&ev.Requirement,
			&ev.Component,
			&ev.Outcome,
			&ev.Seed,
		); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		ev.Phase = crafting.Phase(phase)
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return events, nil
}

// LastSeq returns the highest seq recorded in the journal, 0 when empty.
// A clock resumed with crafting.NewClockAt(LastSeq) continues the order.
func (s *Store) LastSeq(ctx context.Context) (int64, error) {
	var seq sql.NullInt64
	err := s.db.QueryRowContext(ctx, `
		SELECT MAX(m) FROM (
			SELECT MAX(seq) AS m FROM events
			UNION ALL
			SELECT MAX(seq) AS m FROM executions
		)
	`).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("last seq: %w", err)
	}
	return seq.Int64, nil
}

// Summary aggregates the journal.
type Summary struct {
	Executions int            `json:"executions"`
	ByStatus   map[string]int `json:"by_status"`
	Events     int            `json:"events"`
	ByOutcome  map[string]int `json:"by_outcome"`
}

// Summarize counts executions by status and events by outcome.
func (s *Store) Summarize(ctx context.Context) (Summary, error) {
	sum := Summary{ByStatus: map[string]int{}, ByOutcome: map[string]int{}}

	if err := s.countInto(ctx, `SELECT status, COUNT(*) FROM executions GROUP BY status`, sum.ByStatus, &sum.Executions); err != nil {
		return Summary{}, err
	}
	if err := s.countInto(ctx, `SELECT outcome, COUNT(*) FROM events GROUP BY outcome`, sum.ByOutcome, &sum.Events); err != nil {
		return Summary{}, err
	}
	return sum, nil
}

func (s *Store) countInto(ctx context.Context, query string, into map[string]int, total *int) error {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("summarize: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key string
		var n int
		if err := rows.Scan(&key, &n); err != nil {
			return fmt.Errorf("summarize: %w", err)
		}
		into[key] = n
		*total += n
	}
	return rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanExecution(row scanner) (Execution, error) {
	var e Execution
	var endTick sql.NullInt64
	if err := row.Scan(
		&e.ID,
		&e.RecipeID,
		&e.RecipeDigest,
		&e.Machine,
		&e.Seq,
		&e.StartTick,
		&e.Status,
		&endTick,
	); err != nil {
		return Execution{}, err
	}
	if endTick.Valid {
		v := endTick.Int64
		e.EndTick = &v
	}
	return e, nil
}
