package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/roach88/craftkit/internal/chance"
	"github.com/roach88/craftkit/internal/crafting"
	"github.com/roach88/craftkit/internal/ir"
	"github.com/roach88/craftkit/internal/journal"
	"github.com/roach88/craftkit/internal/machine"
	"github.com/roach88/craftkit/internal/modifier"
	"github.com/roach88/craftkit/internal/recipe"
	"github.com/roach88/craftkit/internal/testutil"
)

// Options configures Run.
type Options struct {
	// Journal records the run. Default: a private in-memory journal.
	Journal *journal.Store
	// Logger receives machine logs. Default: discarded.
	Logger *slog.Logger
	// IDs generates execution ids. Default: "<name>-1", "<name>-2", ...
	IDs crafting.IDGenerator
}

// Run executes a scenario and returns the result.
//
// Each scenario runs against fresh containers and, unless opts supplies
// one, a fresh in-memory journal. Execution ids are "<name>-1",
// "<name>-2", ... and chance seeds count up from the scenario seed.
//
// A craft aborted by the stall quota ends the run without an error; it is
// reported in Result.Aborted. Misconfiguration errors are returned.
func Run(ctx context.Context, scenario *Scenario, opts ...Options) (*Result, error) {
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}

	r, err := loadRecipe(scenario)
	if err != nil {
		return nil, err
	}

	mods, err := modifier.FromDefinitions(scenario.Modifiers)
	if err != nil {
		return nil, err
	}

	store := o.Journal
	if store == nil {
		store, err = journal.Open(":memory:")
		if err != nil {
			return nil, fmt.Errorf("failed to create in-memory journal: %w", err)
		}
		defer store.Close()
	}

	// A shared journal may already hold events; continue its order.
	lastSeq, err := store.LastSeq(ctx)
	if err != nil {
		return nil, err
	}

	ids := o.IDs
	if ids == nil {
		ids = crafting.NewSequenceGenerator(scenario.Name)
	}

	logger := o.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	result := NewResult()
	mopts := []machine.Option{
		machine.WithJournal(store),
		machine.WithClock(crafting.NewClockAt(lastSeq)),
		machine.WithIDGenerator(ids),
		machine.WithSeedSource(chance.NewSequenceSeeds(scenario.Seed)),
		machine.WithLogger(logger),
		machine.WithObserver(crafting.ObserverFunc(func(ev crafting.Event) {
			result.Trace = append(result.Trace, ev)
		})),
	}
	if scenario.MaxStalls != 0 {
		mopts = append(mopts, machine.WithMaxStalls(scenario.MaxStalls))
	}

	name := scenario.Machine
	if name == "" {
		name = "machine"
	}
	m := machine.New(name, r, mopts...)

	rig, err := buildRig(scenario.Components)
	if err != nil {
		return nil, err
	}
	for _, p := range rig.ports {
		m.AddComponent(p)
	}
	for _, mod := range mods {
		m.AddModifier(mod)
	}

	for i := 0; i < scenario.Ticks; i++ {
		res, err := m.Step(ctx)
		if i == 0 {
			result.FirstProbe = "success"
			if res == machine.StepWaiting {
				result.FirstProbe = "failure"
			}
		}
		if machine.IsStallError(err) {
			result.Aborted = err.Error()
			break
		}
		if err != nil {
			return nil, fmt.Errorf("tick %d: %w", i+1, err)
		}
	}

	result.Stats = m.Stats()
	rig.snapshot(result)

	execs, err := store.ListExecutions(ctx)
	if err != nil {
		return nil, err
	}
	for _, e := range execs {
		if e.Seq > lastSeq {
			result.Executions = append(result.Executions, e)
		}
	}

	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(errMsg)
	}
	return result, nil
}

func loadRecipe(s *Scenario) (*recipe.Recipe, error) {
	info, err := os.Stat(s.Recipe)
	if err != nil {
		return nil, fmt.Errorf("recipe not found: %w", err)
	}
	if !info.IsDir() {
		return recipe.LoadYAMLFile(s.Recipe)
	}

	reg, errs := recipe.LoadDir(s.Recipe)
	if len(errs) > 0 {
		return nil, fmt.Errorf("load recipes: %w", errs[0])
	}
	r, ok := reg.Get(s.RecipeID)
	if !ok {
		return nil, fmt.Errorf("recipe %q not found in %s", s.RecipeID, s.Recipe)
	}
	return r, nil
}

// rig holds the in-memory containers behind the scenario's components.
type rig struct {
	ports       []*testutil.Port
	order       []string
	buffers     map[string]*testutil.EnergyBuffer
	inventories map[string]*testutil.Inventory
}

func buildRig(specs []ComponentSpec) (*rig, error) {
	g := &rig{
		buffers:     make(map[string]*testutil.EnergyBuffer),
		inventories: make(map[string]*testutil.Inventory),
	}
	for i, c := range specs {
		dir, err := ir.ParseIOType(c.IO)
		if err != nil {
			return nil, fmt.Errorf("components[%d]: %w", i, err)
		}
		rt := ir.ResourceType(c.Type)
		g.order = append(g.order, c.Name)

		if rt.Is(ir.ResourceEnergy) {
			port, buf := testutil.EnergyPort(c.Name, dir, c.Capacity, c.Energy)
			g.ports = append(g.ports, port)
			g.buffers[c.Name] = buf
			continue
		}

		port, inv := testutil.InventoryPort(c.Name, rt, dir, c.Capacity)
		for _, key := range sortedKeys(c.Stock) {
			inv.Put(key, c.Stock[key])
		}
		g.ports = append(g.ports, port)
		g.inventories[c.Name] = inv
	}
	return g, nil
}

func (g *rig) snapshot(r *Result) {
	for _, name := range g.order {
		if buf, ok := g.buffers[name]; ok {
			r.Energy[name] = buf.Stored()
			continue
		}
		r.Stock[name] = g.inventories[name].Snapshot()
	}
}
