package modifier

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roach88/craftkit/internal/ir"
)

// Definition is the YAML form of a modifier, as declared by machine
// configs and craft scenarios.
//
//	- target: energy
//	  io: input
//	  op: multiply
//	  amount: 0.5
type Definition struct {
	Target string  `yaml:"target" json:"target"`
	IO     string  `yaml:"io,omitempty" json:"io,omitempty"`
	Op     string  `yaml:"op" json:"op"`
	Amount float64 `yaml:"amount" json:"amount"`
	Chance bool    `yaml:"chance,omitempty" json:"chance,omitempty"`
}

// ParseOp parses "add"/"multiply" (also "mul", "0", "1"). Other numeric
// values are returned as-is so the table can report them when applied.
func ParseOp(s string) (Op, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "add", "+":
		return OpAdd, nil
	case "multiply", "mul", "*":
		return OpMultiply, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("unknown modifier op %q", s)
	}
	return Op(n), nil
}

// Modifier converts the definition into a Modifier.
func (d Definition) Modifier() (Modifier, error) {
	if d.Target == "" {
		return Modifier{}, fmt.Errorf("modifier target is required")
	}
	io, err := ir.ParseIOType(d.IO)
	if err != nil {
		return Modifier{}, fmt.Errorf("modifier %s: %w", d.Target, err)
	}
	op, err := ParseOp(d.Op)
	if err != nil {
		return Modifier{}, fmt.Errorf("modifier %s: %w", d.Target, err)
	}
	return Modifier{
		Target:        d.Target,
		IO:            io,
		Op:            op,
		Amount:        d.Amount,
		AffectsChance: d.Chance,
	}, nil
}

// FromDefinitions converts definitions in order, failing on the first
// invalid entry.
func FromDefinitions(defs []Definition) ([]Modifier, error) {
	mods := make([]Modifier, 0, len(defs))
	for i, d := range defs {
		m, err := d.Modifier()
		if err != nil {
			return nil, fmt.Errorf("modifiers[%d]: %w", i, err)
		}
		mods = append(mods, m)
	}
	return mods, nil
}
