package requirement

import (
	"github.com/roach88/craftkit/internal/component"
	"github.com/roach88/craftkit/internal/ir"
	"github.com/roach88/craftkit/internal/modifier"
)

// testContext is a minimal Context over a modifier table and a component
// index.
type testContext struct {
	mods    *modifier.Table
	index   *component.Index
	scratch map[Requirement]*Scratch
}

func newTestContext() *testContext {
	return &testContext{
		mods:    modifier.NewTable(),
		index:   component.NewIndex(),
		scratch: make(map[Requirement]*Scratch),
	}
}

func (c *testContext) RecipeID() string   { return "test:recipe" }
func (c *testContext) CurrentTick() int64 { return 0 }

func (c *testContext) ApplyModifiers(target string, io ir.IOType, v float64, isChance bool) (float64, error) {
	return c.mods.Apply(target, io, v, isChance)
}

func (c *testContext) Provider(comp component.Component) (any, bool) {
	return c.index.Provider(comp)
}

func (c *testContext) Scratch(r Requirement) *Scratch {
	s, ok := c.scratch[r]
	if !ok {
		s = &Scratch{}
		c.scratch[r] = s
	}
	return s
}

func (c *testContext) register(comps ...component.Component) {
	for _, comp := range comps {
		c.index.Register(comp)
	}
}
