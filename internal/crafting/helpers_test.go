package crafting

import (
	"io"
	"log/slog"

	"github.com/roach88/craftkit/internal/chance"
	"github.com/roach88/craftkit/internal/component"
	"github.com/roach88/craftkit/internal/ir"
	"github.com/roach88/craftkit/internal/requirement"
	"github.com/roach88/craftkit/internal/testutil"
)

type testRecipe struct {
	id    string
	reqs  []requirement.Requirement
	ticks int64
}

func (r *testRecipe) ID() string                              { return r.id }
func (r *testRecipe) Requirements() []requirement.Requirement { return r.reqs }
func (r *testRecipe) TotalTicks() int64                       { return r.ticks }

func recipeOf(ticks int64, reqs ...requirement.Requirement) *testRecipe {
	return &testRecipe{id: "test:recipe", reqs: reqs, ticks: ticks}
}

func newTestContext(r Recipe, opts ...Option) *Context {
	base := []Option{
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithExecutionID("exec-test"),
		WithSeedSource(chance.NewFixedSeeds(1)),
	}
	return New(r, append(base, opts...)...)
}

// callLog records requirement calls in order.
type callLog struct {
	calls []string
}

func (l *callLog) add(s string) { l.calls = append(l.calls, s) }

// fakeReq is a scripted requirement. Outcomes are looked up by component
// name and default to ir.Success.
type fakeReq struct {
	name     string
	rt       ir.ResourceType
	io       ir.IOType
	outcomes map[string]ir.CraftCheck
	log      *callLog
	checkErr error
}

func (f *fakeReq) String() string                { return f.name }
func (f *fakeReq) ResourceType() ir.ResourceType { return f.rt }
func (f *fakeReq) IOType() ir.IOType             { return f.io }

func (f *fakeReq) outcome(c component.Component) ir.CraftCheck {
	if o, ok := f.outcomes[c.Name()]; ok {
		return o
	}
	return ir.Success
}

func (f *fakeReq) StartCheck(requirement.Context, *chance.Chance) error {
	f.log.add(f.name + ":check")
	return f.checkErr
}

func (f *fakeReq) EndCheck(requirement.Context) {
	f.log.add(f.name + ":end")
}

func (f *fakeReq) CanStart(_ requirement.Context, c component.Component, _ *requirement.Restrictions) (ir.CraftCheck, error) {
	f.log.add(f.name + ":can:" + c.Name())
	return f.outcome(c), nil
}

func (f *fakeReq) Start(_ requirement.Context, c component.Component, _ *chance.Chance) (bool, error) {
	f.log.add(f.name + ":start:" + c.Name())
	return f.outcome(c) == ir.Success, nil
}

func (f *fakeReq) Finish(_ requirement.Context, c component.Component, _ *chance.Chance) (bool, error) {
	f.log.add(f.name + ":finish:" + c.Name())
	return f.outcome(c) == ir.Success, nil
}

// fakeTick is a scripted per-tick requirement.
type fakeTick struct {
	fakeReq
}

func (f *fakeTick) ResetTick(ctx requirement.Context) {
	f.log.add(f.name + ":reset")
	ctx.Scratch(f).Armed = false
}

func (f *fakeTick) StartTick(ctx requirement.Context, _ float64) error {
	f.log.add(f.name + ":arm")
	ctx.Scratch(f).Armed = true
	return nil
}

func (f *fakeTick) DoTick(_ requirement.Context, c component.Component) (ir.CraftCheck, error) {
	f.log.add(f.name + ":tick:" + c.Name())
	return f.outcome(c), nil
}

func port(name string, rt ir.ResourceType, dir ir.IOType) *testutil.Port {
	return testutil.NewPort(name, rt, dir, nil)
}
