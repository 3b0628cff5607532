package crafting

import (
	"github.com/roach88/craftkit/internal/chance"
	"github.com/roach88/craftkit/internal/component"
	"github.com/roach88/craftkit/internal/ir"
	"github.com/roach88/craftkit/internal/requirement"
)

// CanStartCrafting reports whether every requirement can be served by a
// registered component. It moves no resources.
//
// An energy OUTPUT requirement only needs some OUTPUT energy component to
// exist; its capacity is not checked. Every other requirement is checked
// with the guaranteed chance state, scanning its components until one
// reports ir.Success. The first requirement without such a component ends
// the probe with ir.FailureMissingInput.
//
// The restriction set is cleared on entry and on every exit path.
// When err is non-nil the returned check is meaningless.
func (c *Context) CanStartCrafting() (ir.CraftCheck, error) {
	c.restrictions.Clear()
	defer c.restrictions.Clear()

	for i, req := range c.requirements {
		if req.ResourceType().Is(ir.ResourceEnergy) && req.IOType() == ir.IOOutput {
			comp, ok := c.firstOutputEnergy()
			c.emit(PhaseProbe, i, req, comp, checkOutcome(ok), 0)
			if !ok {
				c.logger.Debug("probe failed: no output energy component", "requirement", i)
				return ir.FailureMissingInput, nil
			}
			continue
		}

		comp, ok, err := c.probe(req)
		if err != nil {
			return ir.FailureMissingInput, newRuntimeError(c.RecipeID(), c.executionID, PhaseProbe, err)
		}
		c.emit(PhaseProbe, i, req, comp, checkOutcome(ok), 0)
		if !ok {
			c.logger.Debug("probe failed: requirement not satisfied",
				"requirement", i,
				"resource", req.ResourceType(),
				"io", req.IOType())
			return ir.FailureMissingInput, nil
		}
	}
	return ir.Success, nil
}

func (c *Context) firstOutputEnergy() (string, bool) {
	for _, comp := range c.components.ComponentsOf(ir.ResourceEnergy) {
		if comp.IOType() == ir.IOOutput {
			return comp.Name(), true
		}
	}
	return "", false
}

// probe runs one requirement-scoped check and returns the first component
// reporting ir.Success.
func (c *Context) probe(req requirement.Requirement) (string, bool, error) {
	if err := req.StartCheck(c, chance.Guaranteed()); err != nil {
		return "", false, err
	}
	defer req.EndCheck(c)

	for _, comp := range c.components.ComponentsOf(req.ResourceType()) {
		result, err := req.CanStart(c, comp, &c.restrictions)
		if err != nil {
			return "", false, err
		}
		if result == ir.Success {
			return comp.Name(), true, nil
		}
	}
	return "", false, nil
}

// StartCrafting runs the start transfer of every requirement that is not
// OUTPUT, with one chance state seeded from seed for the whole pass.
//
// It assumes a successful CanStartCrafting; it does not probe again.
func (c *Context) StartCrafting(seed int64) error {
	ch := chance.New(seed)
	for i, req := range c.requirements {
		if !req.IOType().IsInput() {
			continue
		}
		if err := c.transfer(PhaseStart, i, req, ch, req.Start); err != nil {
			return err
		}
	}
	return nil
}

// Start runs StartCrafting with the next seed of the seed source.
func (c *Context) Start() error {
	return c.StartCrafting(c.seeds.NextSeed())
}

// FinishCrafting runs the finish transfer of every requirement that is not
// INPUT, with one chance state seeded from seed for the whole pass.
func (c *Context) FinishCrafting(seed int64) error {
	ch := chance.New(seed)
	for i, req := range c.requirements {
		if !req.IOType().IsOutput() {
			continue
		}
		if err := c.transfer(PhaseFinish, i, req, ch, req.Finish); err != nil {
			return err
		}
	}
	return nil
}

// Finish runs FinishCrafting with the next seed of the seed source.
func (c *Context) Finish() error {
	return c.FinishCrafting(c.seeds.NextSeed())
}

type transferFunc func(requirement.Context, component.Component, *chance.Chance) (bool, error)

// transfer opens a check, hands the requirement to the first component
// that accepts it and closes the check whatever happened.
func (c *Context) transfer(phase Phase, i int, req requirement.Requirement, ch *chance.Chance, fn transferFunc) error {
	if err := req.StartCheck(c, ch); err != nil {
		return newRuntimeError(c.RecipeID(), c.executionID, phase, err)
	}
	defer req.EndCheck(c)

	for _, comp := range c.components.ComponentsOf(req.ResourceType()) {
		ok, err := fn(c, comp, ch)
		if err != nil {
			return newRuntimeError(c.RecipeID(), c.executionID, phase, err)
		}
		if ok {
			c.emit(phase, i, req, comp.Name(), OutcomeHandled, ch.Seed())
			return nil
		}
	}
	c.emit(phase, i, req, "", OutcomeUnhandled, ch.Seed())
	c.logger.Debug("no component accepted requirement", "phase", phase, "requirement", i)
	return nil
}

// EnergyTick moves per-tick resources for the current tick.
//
// The duration scale is computed once. The input pass covers per-tick
// requirements that are not OUTPUT; the first one no component can serve
// stalls the tick and EnergyTick returns false. The output pass then covers
// per-tick requirements that are not INPUT; its outcomes never affect the
// result.
//
// Each requirement's tick window is reset before it is armed and again
// after its scan, on every path, so no window stays armed after return.
func (c *Context) EnergyTick() (bool, error) {
	scale, err := c.DurationScale()
	if err != nil {
		return false, err
	}

	for i, req := range c.requirements {
		pt, ok := perTick(req)
		if !ok || !req.IOType().IsInput() {
			continue
		}
		result, comp, err := c.tickOne(pt, scale)
		if err != nil {
			return false, newRuntimeError(c.RecipeID(), c.executionID, PhaseTickInput, err)
		}
		c.emit(PhaseTickInput, i, req, comp, result.String(), 0)
		if result != ir.Success {
			c.logger.Debug("tick stalled", "tick", c.tick, "requirement", i, "outcome", result)
			return false, nil
		}
	}

	for i, req := range c.requirements {
		pt, ok := perTick(req)
		if !ok || !req.IOType().IsOutput() {
			continue
		}
		result, comp, err := c.tickOne(pt, scale)
		if err != nil {
			return false, newRuntimeError(c.RecipeID(), c.executionID, PhaseTickOutput, err)
		}
		c.emit(PhaseTickOutput, i, req, comp, result.String(), 0)
	}
	return true, nil
}

func perTick(req requirement.Requirement) (requirement.PerTick, bool) {
	switch r := req.(type) {
	case requirement.PerTick:
		return r, true
	default:
		return nil, false
	}
}

// tickOne scans components until one reports ir.Success. The returned
// check is the last outcome seen (ir.InvalidSkip when there were no
// components).
func (c *Context) tickOne(pt requirement.PerTick, scale float64) (ir.CraftCheck, string, error) {
	pt.ResetTick(c)
	defer pt.ResetTick(c)

	if err := pt.StartTick(c, scale); err != nil {
		return ir.InvalidSkip, "", err
	}

	last := ir.InvalidSkip
	for _, comp := range c.components.ComponentsOf(pt.ResourceType()) {
		result, err := pt.DoTick(c, comp)
		if err != nil {
			return ir.InvalidSkip, "", err
		}
		if result == ir.Success {
			return ir.Success, comp.Name(), nil
		}
		last = result
	}
	return last, "", nil
}
