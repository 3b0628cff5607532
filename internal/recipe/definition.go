package recipe

import (
	"github.com/roach88/craftkit/internal/ir"
)

// Definition is the declarative form of a recipe.
type Definition struct {
	ID           string                  `yaml:"id" json:"id"`
	TimeTicks    int64                   `yaml:"time_ticks" json:"time_ticks"`
	Requirements []RequirementDefinition `yaml:"requirements" json:"requirements"`
}

// RequirementDefinition declares one requirement.
//
// Energy requirements use PerTick. Item, fluid and gas requirements use
// Key, Amount and optionally Chance (default 1).
type RequirementDefinition struct {
	Type    string   `yaml:"type" json:"type"`
	IO      string   `yaml:"io" json:"io"`
	Key     string   `yaml:"key,omitempty" json:"key,omitempty"`
	Amount  int64    `yaml:"amount,omitempty" json:"amount,omitempty"`
	PerTick int64    `yaml:"per_tick,omitempty" json:"per_tick,omitempty"`
	Chance  *float64 `yaml:"chance,omitempty" json:"chance,omitempty"`
}

// ChanceOrDefault returns Chance, or 1 when unset.
func (d RequirementDefinition) ChanceOrDefault() float64 {
	if d.Chance == nil {
		return 1
	}
	return *d.Chance
}

// canonical returns d as a canonical-JSON value. Chances are encoded as
// strings since canonical JSON forbids floats.
func (d Definition) canonical() map[string]any {
	reqs := make([]any, 0, len(d.Requirements))
	for _, r := range d.Requirements {
		io, err := ir.ParseIOType(r.IO)
		ioName := r.IO
		if err == nil {
			ioName = io.String()
		}
		entry := map[string]any{
			"type": string(ir.ResourceType(r.Type).Canonical()),
			"io":   ioName,
		}
		if ir.ResourceType(r.Type).Is(ir.ResourceEnergy) {
			entry["per_tick"] = r.PerTick
		} else {
			entry["key"] = r.Key
			entry["amount"] = r.Amount
			entry["chance"] = ir.FormatFloat(r.ChanceOrDefault())
		}
		reqs = append(reqs, entry)
	}
	return map[string]any{
		"id":           d.ID,
		"time_ticks":   d.TimeTicks,
		"requirements": reqs,
	}
}

// Digest returns the content digest of d.
func (d Definition) Digest() (string, error) {
	return ir.Digest(ir.DomainRecipe, d.canonical())
}
