// Package modifier holds the per-execution table of recipe modifiers.
//
// A modifier adjusts one numeric value of a recipe: a requirement amount
// (target is the requirement's resource type), a requirement chance
// (AffectsChance set), or the recipe duration (target "duration").
//
// Modifiers for one target accumulate as
//
//	adjusted = (raw + sum of ADD amounts) * product of MULTIPLY amounts
//
// Both the sum and the product are commutative, so the order in which
// modifiers are recorded has no observable effect.
package modifier

import (
	"errors"
	"fmt"
	"math"

	"github.com/roach88/craftkit/internal/ir"
)

// TargetDuration is the modifier target that scales total craft time.
const TargetDuration = "duration"

// Op is the arithmetic a modifier applies.
type Op int

const (
	// OpAdd adds Amount before multiplication.
	OpAdd Op = 0
	// OpMultiply multiplies the summed value by Amount.
	OpMultiply Op = 1
)

// String returns the op name used in definitions.
func (o Op) String() string {
	switch o {
	case OpAdd:
		return "add"
	case OpMultiply:
		return "multiply"
	default:
		return fmt.Sprintf("Op(%d)", int(o))
	}
}

// Modifier adjusts the value of Target for requirements of direction IO.
type Modifier struct {
	Target        string
	IO            ir.IOType
	Op            Op
	Amount        float64
	AffectsChance bool
}

// ErrDegenerateDuration is returned when modifiers reduce the recipe
// duration to zero, a negative value, or a non-finite value.
var ErrDegenerateDuration = errors.New("modified duration is not positive")

// OperationError reports a modifier whose Op is neither add nor multiply.
type OperationError struct {
	Target string
	Op     Op
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("unknown modifier operation %d on target %q", int(e.Op), e.Target)
}

// Table stores modifiers by target in insertion order.
//
// Table is not safe for concurrent use. It is owned by one crafting
// context and mutated only by that context's driver.
type Table struct {
	byTarget map[string][]Modifier
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{byTarget: make(map[string][]Modifier)}
}

// Record appends m to the list for m.Target.
// Unknown operations are accepted here and reported when applied.
func (t *Table) Record(m Modifier) {
	t.byTarget[m.Target] = append(t.byTarget[m.Target], m)
}

// Modifiers returns a copy of the modifiers recorded for target.
// Returns an empty slice (not nil) if none are recorded.
func (t *Table) Modifiers(target string) []Modifier {
	mods := t.byTarget[target]
	out := make([]Modifier, len(mods))
	copy(out, mods)
	return out
}

// Len returns the total number of recorded modifiers.
func (t *Table) Len() int {
	n := 0
	for _, mods := range t.byTarget {
		n += len(mods)
	}
	return n
}

// Apply returns raw adjusted by the modifiers of target that match io and
// isChance. io == ir.IOAny matches modifiers of every direction, and a
// modifier recorded with ir.IOAny matches every io.
//
// Returns *OperationError if a matching modifier has an unknown Op.
func (t *Table) Apply(target string, io ir.IOType, raw float64, isChance bool) (float64, error) {
	add := 0.0
	mul := 1.0
	for _, m := range t.byTarget[target] {
		if io != ir.IOAny && m.IO != ir.IOAny && m.IO != io {
			continue
		}
		if m.AffectsChance != isChance {
			continue
		}
		switch m.Op {
		case OpAdd:
			add += m.Amount
		case OpMultiply:
			mul *= m.Amount
		default:
			return 0, &OperationError{Target: target, Op: m.Op}
		}
	}
	return (raw + add) * mul, nil
}

// DurationScale returns nominal / adjusted, where adjusted is nominal run
// through the "duration" modifiers. Per-tick transfer rates are multiplied
// by this factor so that a shorter craft moves the same total amount.
//
// With no duration modifiers the scale is exactly 1.
func (t *Table) DurationScale(nominal float64) (float64, error) {
	adjusted, err := t.AdjustedDuration(nominal)
	if err != nil {
		return 0, err
	}
	return nominal / adjusted, nil
}

// AdjustedDuration returns nominal run through the "duration" modifiers.
// Returns ErrDegenerateDuration if the result is not a positive finite value.
func (t *Table) AdjustedDuration(nominal float64) (float64, error) {
	adjusted, err := t.Apply(TargetDuration, ir.IOAny, nominal, false)
	if err != nil {
		return 0, err
	}
	if adjusted <= 0 || math.IsNaN(adjusted) || math.IsInf(adjusted, 0) {
		return 0, fmt.Errorf("%w: %s -> %s", ErrDegenerateDuration, ir.FormatFloat(nominal), ir.FormatFloat(adjusted))
	}
	return adjusted, nil
}
