package requirement

import (
	"fmt"
	"math"

	"github.com/roach88/craftkit/internal/chance"
	"github.com/roach88/craftkit/internal/component"
	"github.com/roach88/craftkit/internal/ir"
)

// Energy consumes (input) or produces (output) PerTick energy on every
// tick of the craft. It moves nothing at start or finish.
type Energy struct {
	PerTick int64
	IO      ir.IOType
}

// NewEnergy returns an energy requirement.
func NewEnergy(perTick int64, io ir.IOType) *Energy {
	return &Energy{PerTick: perTick, IO: io}
}

func (e *Energy) String() string {
	return fmt.Sprintf("energy %s %d/t", e.IO, e.PerTick)
}

// ResourceType returns ir.ResourceEnergy.
func (e *Energy) ResourceType() ir.ResourceType { return ir.ResourceEnergy }

// IOType returns the requirement direction.
func (e *Energy) IOType() ir.IOType { return e.IO }

func (e *Energy) modified(ctx Context) (float64, error) {
	return ctx.ApplyModifiers(Target(ir.ResourceEnergy), e.IO, float64(e.PerTick), false)
}

func (e *Energy) buffer(ctx Context, c component.Component) (EnergyBuffer, bool) {
	if !Serves(e.IO, c.IOType()) || !c.ResourceType().Is(ir.ResourceEnergy) {
		return nil, false
	}
	p, ok := ctx.Provider(c)
	if !ok {
		return nil, false
	}
	buf, ok := p.(EnergyBuffer)
	return buf, ok
}

// StartCheck records the modified per-tick amount.
func (e *Energy) StartCheck(ctx Context, ch *chance.Chance) error {
	v, err := e.modified(ctx)
	if err != nil {
		return err
	}
	s := ctx.Scratch(e)
	s.Chance = ch
	s.Amount = quantity(v)
	return nil
}

// EndCheck clears the check state.
func (e *Energy) EndCheck(ctx Context) {
	s := ctx.Scratch(e)
	s.Chance = nil
	s.Amount = 0
}

// CanStart succeeds on an input buffer holding at least one tick's worth
// of energy. Output buffers always succeed; capacity is not checked.
func (e *Energy) CanStart(ctx Context, c component.Component, _ *Restrictions) (ir.CraftCheck, error) {
	buf, ok := e.buffer(ctx, c)
	if !ok {
		return ir.InvalidSkip, nil
	}
	if c.IOType() == ir.IOOutput {
		return ir.Success, nil
	}
	if buf.Stored() >= ctx.Scratch(e).Amount {
		return ir.Success, nil
	}
	return ir.FailureMissingInput, nil
}

// Start accepts the first buffer that can serve the requirement.
func (e *Energy) Start(ctx Context, c component.Component, _ *chance.Chance) (bool, error) {
	_, ok := e.buffer(ctx, c)
	return ok, nil
}

// Finish accepts the first buffer that can serve the requirement.
func (e *Energy) Finish(ctx Context, c component.Component, _ *chance.Chance) (bool, error) {
	_, ok := e.buffer(ctx, c)
	return ok, nil
}

// ResetTick disarms the tick window.
func (e *Energy) ResetTick(ctx Context) {
	s := ctx.Scratch(e)
	s.Remaining = 0
	s.Armed = false
}

// StartTick arms the window with round(modified per-tick * scale).
func (e *Energy) StartTick(ctx Context, scale float64) error {
	v, err := e.modified(ctx)
	if err != nil {
		return err
	}
	s := ctx.Scratch(e)
	s.Remaining = quantity(v * scale)
	s.Armed = true
	return nil
}

// DoTick moves the armed amount through c.
//
// Input buffers are drained all-or-nothing: a buffer that cannot cover the
// whole remainder is left untouched. Output buffers take what fits and the
// rest stays pending for the next buffer.
func (e *Energy) DoTick(ctx Context, c component.Component) (ir.CraftCheck, error) {
	buf, ok := e.buffer(ctx, c)
	if !ok {
		return ir.InvalidSkip, nil
	}
	s := ctx.Scratch(e)
	if !s.Armed {
		return ir.InvalidSkip, nil
	}
	if s.Remaining <= 0 {
		return ir.Success, nil
	}

	if c.IOType() == ir.IOInput {
		if buf.Extract(s.Remaining, true) < s.Remaining {
			return ir.FailureMissingInput, nil
		}
		buf.Extract(s.Remaining, false)
		s.Remaining = 0
		return ir.Success, nil
	}

	moved := buf.Receive(s.Remaining, false)
	s.Remaining -= moved
	switch {
	case s.Remaining <= 0:
		return ir.Success, nil
	case moved > 0:
		return ir.PartialSuccess, nil
	default:
		return ir.FailureMissingInput, nil
	}
}

// quantity rounds a modified amount to whole units. Negative and
// non-finite amounts move nothing.
func quantity(v float64) int64 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(math.Round(v))
}
