package requirement

import (
	"fmt"

	"github.com/roach88/craftkit/internal/chance"
	"github.com/roach88/craftkit/internal/component"
	"github.com/roach88/craftkit/internal/ir"
)

// Stock moves Amount of Key once: out of an input container when the craft
// starts, or into an output container when it finishes. Each transfer
// happens with probability Chance; a failed roll still counts as handled.
type Stock struct {
	Type   ir.ResourceType
	Key    string
	Amount int64
	IO     ir.IOType
	Chance float64
}

// NewStock returns a stock requirement that always transfers.
func NewStock(t ir.ResourceType, key string, amount int64, io ir.IOType) *Stock {
	return &Stock{Type: t, Key: key, Amount: amount, IO: io, Chance: 1}
}

func (r *Stock) String() string {
	return fmt.Sprintf("%s %s %s x%d", r.Type, r.IO, r.Key, r.Amount)
}

// ResourceType returns the declared resource type.
func (r *Stock) ResourceType() ir.ResourceType { return r.Type }

// IOType returns the requirement direction.
func (r *Stock) IOType() ir.IOType { return r.IO }

func (r *Stock) container(ctx Context, c component.Component) (Container, bool) {
	if !Serves(r.IO, c.IOType()) || !c.ResourceType().Is(r.Type) {
		return nil, false
	}
	p, ok := ctx.Provider(c)
	if !ok {
		return nil, false
	}
	box, ok := p.(Container)
	return box, ok
}

// StartCheck records the modified amount and chance.
func (r *Stock) StartCheck(ctx Context, ch *chance.Chance) error {
	target := Target(r.Type)
	amount, err := ctx.ApplyModifiers(target, r.IO, float64(r.Amount), false)
	if err != nil {
		return err
	}
	p, err := ctx.ApplyModifiers(target, r.IO, r.Chance, true)
	if err != nil {
		return err
	}
	s := ctx.Scratch(r)
	s.Chance = ch
	s.Amount = quantity(amount)
	s.Probability = p
	return nil
}

// EndCheck clears the check state.
func (r *Stock) EndCheck(ctx Context) {
	s := ctx.Scratch(r)
	s.Chance = nil
	s.Amount = 0
	s.Probability = 0
}

// CanStart checks stock on input containers and free space on output
// containers. Space claimed by earlier output requirements of the same
// probe counts as used; a successful output check claims its own share.
func (r *Stock) CanStart(ctx Context, c component.Component, rs *Restrictions) (ir.CraftCheck, error) {
	box, ok := r.container(ctx, c)
	if !ok {
		return ir.InvalidSkip, nil
	}
	need := ctx.Scratch(r).Amount
	if need <= 0 {
		return ir.Success, nil
	}

	if c.IOType() == ir.IOInput {
		have := box.Count(r.Key)
		switch {
		case have >= need:
			return ir.Success, nil
		case have > 0:
			return ir.PartialSuccess, nil
		default:
			return ir.FailureMissingInput, nil
		}
	}

	free := box.Space(r.Key) - rs.Claimed(c)
	switch {
	case free >= need:
		rs.Add(Claim{On: c, Key: r.Key, Amount: need})
		return ir.Success, nil
	case free > 0:
		return ir.PartialSuccess, nil
	default:
		return ir.FailureMissingInput, nil
	}
}

// Start extracts from the first input container holding enough stock.
func (r *Stock) Start(ctx Context, c component.Component, ch *chance.Chance) (bool, error) {
	if c.IOType() != ir.IOInput {
		return false, nil
	}
	box, ok := r.container(ctx, c)
	if !ok {
		return false, nil
	}
	s := ctx.Scratch(r)
	if s.Amount <= 0 {
		return true, nil
	}
	if box.Count(r.Key) < s.Amount {
		return false, nil
	}
	if !ch.CanWork(s.Probability) {
		return true, nil
	}
	box.Extract(r.Key, s.Amount, false)
	return true, nil
}

// Finish inserts into the first output container with enough space.
func (r *Stock) Finish(ctx Context, c component.Component, ch *chance.Chance) (bool, error) {
	if c.IOType() != ir.IOOutput {
		return false, nil
	}
	box, ok := r.container(ctx, c)
	if !ok {
		return false, nil
	}
	s := ctx.Scratch(r)
	if s.Amount <= 0 {
		return true, nil
	}
	if box.Insert(r.Key, s.Amount, true) < s.Amount {
		return false, nil
	}
	if !ch.CanWork(s.Probability) {
		return true, nil
	}
	box.Insert(r.Key, s.Amount, false)
	return true, nil
}
