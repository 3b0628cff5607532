package crafting

import (
	"fmt"

	"github.com/roach88/craftkit/internal/ir"
)

// Phase names a crafting pass.
type Phase string

const (
	PhaseProbe      Phase = "probe"
	PhaseStart      Phase = "start"
	PhaseFinish     Phase = "finish"
	PhaseTickInput  Phase = "tick_input"
	PhaseTickOutput Phase = "tick_output"
	// PhaseTick covers duration computation shared by both tick passes.
	PhaseTick Phase = "tick"
)

// Event records how one requirement fared in one pass.
type Event struct {
	Seq         int64  `json:"seq"`
	ExecutionID string `json:"execution_id"`
	Tick        int64  `json:"tick"`
	Phase       Phase  `json:"phase"`
	// Index is the requirement's position in the recipe.
	Index       int    `json:"index"`
	Requirement string `json:"requirement"`
	// Component is the component that served the requirement, empty when
	// none did.
	Component string `json:"component,omitempty"`
	Outcome   string `json:"outcome"`
	// Seed is the chance seed of start and finish passes.
	Seed int64 `json:"seed,omitempty"`
}

// Observer receives phase events. Observe is called synchronously from
// the pass that produced the event.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

// Observe calls f(e).
func (f ObserverFunc) Observe(e Event) { f(e) }

// Outcomes recorded for start and finish passes.
const (
	OutcomeHandled   = "HANDLED"
	OutcomeUnhandled = "UNHANDLED"
)

func (c *Context) emit(phase Phase, index int, req any, comp string, outcome string, seed int64) {
	if c.observer == nil {
		return
	}
	c.observer.Observe(Event{
		Seq:         c.clock.Next(),
		ExecutionID: c.executionID,
		Tick:        c.tick,
		Phase:       phase,
		Index:       index,
		Requirement: fmt.Sprint(req),
		Component:   comp,
		Outcome:     outcome,
		Seed:        seed,
	})
}

func checkOutcome(ok bool) string {
	if ok {
		return ir.Success.String()
	}
	return ir.FailureMissingInput.String()
}
