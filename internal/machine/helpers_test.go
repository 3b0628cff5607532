package machine

import (
	"io"
	"log/slog"
	"testing"

	"github.com/roach88/craftkit/internal/chance"
	"github.com/roach88/craftkit/internal/crafting"
	"github.com/roach88/craftkit/internal/ir"
	"github.com/roach88/craftkit/internal/recipe"
	"github.com/roach88/craftkit/internal/testutil"
)

// gearRecipe takes 10 energy per tick for ticks ticks, 2 iron in and
// 1 gear out.
func gearRecipe(ticks int64) *recipe.Recipe {
	return recipe.MustBuild(recipe.Definition{
		ID:        "craftkit:gear",
		TimeTicks: ticks,
		Requirements: []recipe.RequirementDefinition{
			{Type: "energy", IO: "input", PerTick: 10},
			{Type: "item", IO: "input", Key: "iron_ingot", Amount: 2},
			{Type: "item", IO: "output", Key: "gear", Amount: 1},
		},
	})
}

// rig is a machine with one battery, one input bus and one output bus.
type rig struct {
	m       *Machine
	battery *testutil.EnergyBuffer
	in      *testutil.Inventory
	out     *testutil.Inventory
}

func newRig(t *testing.T, r crafting.Recipe, stored int64, opts ...Option) *rig {
	t.Helper()
	base := []Option{
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithIDGenerator(crafting.NewFixedGenerator("exec-1", "exec-2", "exec-3", "exec-4")),
		WithSeedSource(chance.NewFixedSeeds(7)),
	}
	m := New("assembler", r, append(base, opts...)...)

	batteryPort, battery := testutil.EnergyPort("battery", ir.IOInput, 10_000, stored)
	inPort, in := testutil.InventoryPort("input-bus", ir.ResourceItem, ir.IOInput, 0)
	outPort, out := testutil.InventoryPort("output-bus", ir.ResourceItem, ir.IOOutput, 0)
	m.AddComponent(batteryPort)
	m.AddComponent(inPort)
	m.AddComponent(outPort)

	return &rig{m: m, battery: battery, in: in, out: out}
}

func steps(t *testing.T, m *Machine, n int) []StepResult {
	t.Helper()
	out := make([]StepResult, 0, n)
	for i := 0; i < n; i++ {
		res, err := m.Step(t.Context())
		if err != nil {
			t.Fatalf("step %d: %v", i+1, err)
		}
		out = append(out, res)
	}
	return out
}
