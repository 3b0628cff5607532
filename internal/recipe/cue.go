package recipe

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"
)

// CompileError is a CUE recipe that could not be decoded.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// CompileCUE decodes one recipe struct, e.g. the value at "recipe.gear".
// The id defaults to the struct label when the id field is absent.
func CompileCUE(v cue.Value) (Definition, error) {
	if err := v.Err(); err != nil {
		return Definition{}, formatCUEError(err)
	}

	var d Definition

	idVal := v.LookupPath(cue.ParsePath("id"))
	if idVal.Exists() {
		id, err := idVal.String()
		if err != nil {
			return Definition{}, formatCUEError(err)
		}
		d.ID = id
	} else if sels := v.Path().Selectors(); len(sels) > 0 {
		d.ID = sels[len(sels)-1].String()
	}

	ticksVal := v.LookupPath(cue.ParsePath("time_ticks"))
	if !ticksVal.Exists() {
		return Definition{}, &CompileError{Field: "time_ticks", Message: "time_ticks is required", Pos: v.Pos()}
	}
	ticks, err := ticksVal.Int64()
	if err != nil {
		return Definition{}, formatCUEError(err)
	}
	d.TimeTicks = ticks

	reqsVal := v.LookupPath(cue.ParsePath("requirements"))
	if !reqsVal.Exists() {
		return Definition{}, &CompileError{Field: "requirements", Message: "requirements is required", Pos: v.Pos()}
	}
	list, err := reqsVal.List()
	if err != nil {
		return Definition{}, formatCUEError(err)
	}
	for list.Next() {
		r, err := compileRequirement(list.Value())
		if err != nil {
			return Definition{}, err
		}
		d.Requirements = append(d.Requirements, r)
	}

	return d, nil
}

func compileRequirement(v cue.Value) (RequirementDefinition, error) {
	var r RequirementDefinition

	strField := func(name string, dst *string) error {
		f := v.LookupPath(cue.ParsePath(name))
		if !f.Exists() {
			return nil
		}
		s, err := f.String()
		if err != nil {
			return formatCUEError(err)
		}
		*dst = s
		return nil
	}
	intField := func(name string, dst *int64) error {
		f := v.LookupPath(cue.ParsePath(name))
		if !f.Exists() {
			return nil
		}
		n, err := f.Int64()
		if err != nil {
			return formatCUEError(err)
		}
		*dst = n
		return nil
	}

	for _, step := range []error{
		strField("type", &r.Type),
		strField("io", &r.IO),
		strField("key", &r.Key),
		intField("amount", &r.Amount),
		intField("per_tick", &r.PerTick),
	} {
		if step != nil {
			return RequirementDefinition{}, step
		}
	}

	if chanceVal := v.LookupPath(cue.ParsePath("chance")); chanceVal.Exists() {
		c, err := chanceVal.Float64()
		if err != nil {
			return RequirementDefinition{}, formatCUEError(err)
		}
		r.Chance = &c
	}

	if r.Type == "" {
		return RequirementDefinition{}, &CompileError{Field: "type", Message: "requirement type is required", Pos: v.Pos()}
	}
	return r, nil
}

// CompileCUEValue decodes every recipe under the top-level "recipe" struct
// of v, in declaration order.
func CompileCUEValue(v cue.Value) ([]Definition, error) {
	recipesVal := v.LookupPath(cue.ParsePath("recipe"))
	if !recipesVal.Exists() {
		return []Definition{}, nil
	}
	iter, err := recipesVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	defs := []Definition{}
	for iter.Next() {
		d, err := CompileCUE(iter.Value())
		if err != nil {
			return nil, fmt.Errorf("recipe.%s: %w", iter.Selector(), err)
		}
		defs = append(defs, d)
	}
	return defs, nil
}

// CompileCUEString compiles CUE source and decodes its recipes.
func CompileCUEString(src string) ([]Definition, error) {
	ctx := cuecontext.New()
	v := ctx.CompileString(src)
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	return CompileCUEValue(v)
}

// LoadCUEDir loads the CUE package in dir and decodes its recipes.
func LoadCUEDir(dir string) ([]Definition, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("accessing recipe directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dir)
	}

	ctx := cuecontext.New()
	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, fmt.Errorf("no CUE instances loaded from %s", dir)
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, fmt.Errorf("loading CUE files: %w", inst.Err)
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	return CompileCUEValue(value)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}
	return err
}
