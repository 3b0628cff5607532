package journal

import (
	"context"
	"fmt"

	"github.com/roach88/craftkit/internal/crafting"
)

// Execution statuses.
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusAborted   = "aborted"
)

// Execution is one recorded craft.
type Execution struct {
	ID           string `json:"id"`
	RecipeID     string `json:"recipe_id"`
	RecipeDigest string `json:"recipe_digest"`
	Machine      string `json:"machine"`
	Seq          int64  `json:"seq"`
	StartTick    int64  `json:"start_tick"`
	Status       string `json:"status"`
	// EndTick is set once the execution is completed or aborted.
	EndTick *int64 `json:"end_tick,omitempty"`
}

// WriteExecution inserts an execution record.
// Uses ON CONFLICT(id) DO NOTHING for idempotency.
func (s *Store) WriteExecution(ctx context.Context, e Execution) error {
	status := e.Status
	if status == "" {
		status = StatusRunning
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO executions
		(id, recipe_id, recipe_digest, machine, seq, start_tick, status, end_tick)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		e.ID,
		e.RecipeID,
		e.RecipeDigest,
		e.Machine,
		e.Seq,
		e.StartTick,
		status,
		e.EndTick,
	)
	if err != nil {
		return fmt.Errorf("write execution: %w", err)
	}
	return nil
}

// FinishExecution sets the final status and tick of an execution.
func (s *Store) FinishExecution(ctx context.Context, id, status string, endTick int64) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE executions SET status = ?, end_tick = ? WHERE id = ?
	`, status, endTick, id)
	if err != nil {
		return fmt.Errorf("finish execution: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish execution: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("finish execution: unknown execution %q", id)
	}
	return nil
}

// WriteEvent inserts a phase event. The execution must already exist.
// Duplicate (execution, seq) pairs are ignored.
func (s *Store) WriteEvent(ctx context.Context, ev crafting.Event) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO events
		(execution_id, seq, tick, phase, requirement_index, requirement, component, outcome, seed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`,
		ev.ExecutionID,
		ev.Seq,
		ev.Tick,
		string(ev.Phase),
		ev.Index,
		ev.Requirement,
		ev.Component,
		ev.Outcome,
		ev.Seed,
	)
	if err != nil {
		return fmt.Errorf("write event: %w", err)
	}
	return nil
}
