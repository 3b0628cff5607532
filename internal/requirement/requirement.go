package requirement

import (
	"github.com/roach88/craftkit/internal/chance"
	"github.com/roach88/craftkit/internal/component"
	"github.com/roach88/craftkit/internal/ir"
)

// Context is the view of a crafting execution that requirements see.
type Context interface {
	// RecipeID identifies the recipe being crafted.
	RecipeID() string
	// CurrentTick is the driver-set tick counter.
	CurrentTick() int64
	// ApplyModifiers adjusts value by the modifiers recorded for target.
	ApplyModifiers(target string, io ir.IOType, value float64, isChance bool) (float64, error)
	// Provider returns the container provider of a registered component.
	Provider(c component.Component) (any, bool)
	// Scratch returns the per-execution scratch state of r, creating it
	// on first use.
	Scratch(r Requirement) *Scratch
}

// Scratch is the per-execution state of one requirement.
type Scratch struct {
	// Chance is the chance state of the open check, nil outside a check.
	Chance *chance.Chance
	// Amount is the modified amount computed when the check opened.
	Amount int64
	// Probability is the modified chance computed when the check opened.
	Probability float64
	// Remaining is what the current tick window still has to move.
	Remaining int64
	// Armed is set between StartTick and ResetTick.
	Armed bool
}

// Requirement is one entry of a recipe's ordered requirement list.
//
// Implementations must be comparable (typically a pointer) because
// contexts key scratch state on requirement identity.
type Requirement interface {
	ResourceType() ir.ResourceType
	IOType() ir.IOType

	// StartCheck opens a requirement-scoped check with the given chance
	// state. It is called before any component is scanned.
	StartCheck(ctx Context, ch *chance.Chance) error
	// EndCheck closes the check opened by StartCheck. It is always called,
	// whatever the scan outcome.
	EndCheck(ctx Context)

	// CanStart reports whether c could serve this requirement without
	// moving any resources. Output requirements may claim capacity by
	// adding to rs.
	CanStart(ctx Context, c component.Component, rs *Restrictions) (ir.CraftCheck, error)
	// Start performs the start-of-craft transfer through c.
	// It returns true if c handled the requirement.
	Start(ctx Context, c component.Component, ch *chance.Chance) (bool, error)
	// Finish performs the end-of-craft transfer through c.
	// It returns true if c handled the requirement.
	Finish(ctx Context, c component.Component, ch *chance.Chance) (bool, error)
}

// PerTick is a requirement that also transfers on every tick.
type PerTick interface {
	Requirement

	// ResetTick disarms the tick window and drops any remainder.
	// It is instantaneous and idempotent.
	ResetTick(ctx Context)
	// StartTick arms the tick window, scaling the per-tick amount by
	// scale (the duration scale of the execution).
	StartTick(ctx Context, scale float64) error
	// DoTick transfers the armed amount through c.
	DoTick(ctx Context, c component.Component) (ir.CraftCheck, error)
}

// Serves reports whether a component of direction c can serve a
// requirement of direction r. Bidirectional requirements are served by
// components of either direction.
func Serves(r ir.IOType, c ir.IOType) bool {
	return r == ir.IOAny || r == c
}

// Target returns the modifier target for a requirement of type t.
func Target(t ir.ResourceType) string {
	return string(t.Canonical())
}
