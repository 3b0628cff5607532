package recipe

import (
	"errors"
	"fmt"

	"github.com/roach88/craftkit/internal/ir"
	"github.com/roach88/craftkit/internal/requirement"
)

// Recipe is a validated, immutable recipe. It implements crafting.Recipe.
type Recipe struct {
	def          Definition
	digest       string
	requirements []requirement.Requirement
}

// Build validates d and constructs its requirements.
// Validation problems are joined into a single error.
func Build(d Definition) (*Recipe, error) {
	if verrs := Validate(d); len(verrs) > 0 {
		errs := make([]error, len(verrs))
		for i, v := range verrs {
			errs[i] = v
		}
		return nil, fmt.Errorf("recipe %q: %w", d.ID, errors.Join(errs...))
	}

	digest, err := d.Digest()
	if err != nil {
		return nil, fmt.Errorf("recipe %q: %w", d.ID, err)
	}

	reqs := make([]requirement.Requirement, 0, len(d.Requirements))
	for _, r := range d.Requirements {
		io, _ := ir.ParseIOType(r.IO)
		rt := ir.ResourceType(r.Type)
		if rt.Is(ir.ResourceEnergy) {
			reqs = append(reqs, requirement.NewEnergy(r.PerTick, io))
			continue
		}
		reqs = append(reqs, &requirement.Stock{
			Type:   rt,
			Key:    r.Key,
			Amount: r.Amount,
			IO:     io,
			Chance: r.ChanceOrDefault(),
		})
	}

	return &Recipe{def: d, digest: digest, requirements: reqs}, nil
}

// MustBuild is Build that panics on error. Use only in tests.
func MustBuild(d Definition) *Recipe {
	r, err := Build(d)
	if err != nil {
		panic(err)
	}
	return r
}

// ID returns the recipe id.
func (r *Recipe) ID() string { return r.def.ID }

// TotalTicks returns the nominal duration.
func (r *Recipe) TotalTicks() int64 { return r.def.TimeTicks }

// Requirements returns the ordered requirement list. The same slice is
// returned on every call; callers must not modify it.
func (r *Recipe) Requirements() []requirement.Requirement { return r.requirements }

// Digest returns the content digest of the recipe definition.
func (r *Recipe) Digest() string { return r.digest }

// Definition returns the definition the recipe was built from.
func (r *Recipe) Definition() Definition { return r.def }
