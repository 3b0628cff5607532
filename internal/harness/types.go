package harness

import (
	"github.com/roach88/craftkit/internal/crafting"
	"github.com/roach88/craftkit/internal/journal"
	"github.com/roach88/craftkit/internal/machine"
)

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall scenario success.
	// True if every assertion holds.
	Pass bool `json:"pass"`

	// Trace contains every event of every craft in seq order, including
	// failed probes.
	Trace []crafting.Event `json:"trace"`

	// Executions lists the crafts the journal recorded.
	Executions []journal.Execution `json:"executions"`

	// Stats are the machine counters after the last tick.
	Stats machine.Stats `json:"stats"`

	// FirstProbe is the outcome of the first probe: "success" or "failure".
	FirstProbe string `json:"first_probe"`

	// Aborted holds the error that aborted the run, if any.
	Aborted string `json:"aborted,omitempty"`

	// Stock maps component name to key to count for item and fluid
	// components.
	Stock map[string]map[string]int64 `json:"stock"`

	// Energy maps component name to stored energy.
	Energy map[string]int64 `json:"energy"`

	// Errors contains assertion failure messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:       true,
		Trace:      []crafting.Event{},
		Executions: []journal.Execution{},
		Stock:      make(map[string]map[string]int64),
		Energy:     make(map[string]int64),
		Errors:     []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
