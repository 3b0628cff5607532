package journal

import (
	"path/filepath"
	"testing"

	"github.com/roach88/craftkit/internal/crafting"
)

// createTestStore creates a new file-backed journal for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "journal.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestExecution creates an execution with minimal required fields.
func createTestExecution(id string, seq int64) Execution {
	return Execution{
		ID:           id,
		RecipeID:     "craftkit:gear",
		RecipeDigest: "test-digest",
		Machine:      "assembler",
		Seq:          seq,
	}
}

// createTestEvent creates a handled start event.
func createTestEvent(executionID string, seq int64) crafting.Event {
	return crafting.Event{
		Seq:         seq,
		ExecutionID: executionID,
		Tick:        0,
		Phase:       crafting.PhaseStart,
		Index:       0,
		Requirement: "item input iron_ingot x2",
		Component:   "input-bus",
		Outcome:     crafting.OutcomeHandled,
		Seed:        42,
	}
}
