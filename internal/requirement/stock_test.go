package requirement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/craftkit/internal/chance"
	"github.com/roach88/craftkit/internal/ir"
	"github.com/roach88/craftkit/internal/modifier"
	"github.com/roach88/craftkit/internal/testutil"
)

func TestStockIsNotPerTick(t *testing.T) {
	var r Requirement = NewStock(ir.ResourceItem, "iron", 1, ir.IOInput)
	_, ok := r.(PerTick)
	assert.False(t, ok)
}

func TestStockCanStartInput(t *testing.T) {
	ctx := newTestContext()
	port, inv := testutil.InventoryPort("in", ir.ResourceItem, ir.IOInput, 0)
	ctx.register(port)

	r := NewStock(ir.ResourceItem, "iron", 4, ir.IOInput)
	require.NoError(t, r.StartCheck(ctx, chance.Guaranteed()))

	check := func() ir.CraftCheck {
		got, err := r.CanStart(ctx, port, &Restrictions{})
		require.NoError(t, err)
		return got
	}

	assert.Equal(t, ir.FailureMissingInput, check())
	inv.Put("iron", 2)
	assert.Equal(t, ir.PartialSuccess, check())
	inv.Put("iron", 4)
	assert.Equal(t, ir.Success, check())
	assert.Equal(t, int64(4), inv.Count("iron"), "probe moves nothing")
}

func TestStockCanStartOutputClaims(t *testing.T) {
	ctx := newTestContext()
	port, _ := testutil.InventoryPort("out", ir.ResourceItem, ir.IOOutput, 10)
	ctx.register(port)

	a := NewStock(ir.ResourceItem, "gear", 6, ir.IOOutput)
	b := NewStock(ir.ResourceItem, "plate", 6, ir.IOOutput)
	rs := &Restrictions{}

	require.NoError(t, a.StartCheck(ctx, chance.Guaranteed()))
	got, err := a.CanStart(ctx, port, rs)
	require.NoError(t, err)
	assert.Equal(t, ir.Success, got)
	assert.Equal(t, 1, rs.Len())
	assert.Equal(t, int64(6), rs.Claimed(port))

	require.NoError(t, b.StartCheck(ctx, chance.Guaranteed()))
	got, err = b.CanStart(ctx, port, rs)
	require.NoError(t, err)
	assert.Equal(t, ir.PartialSuccess, got, "only 4 left after the first claim")
	assert.Equal(t, 1, rs.Len())
}

func TestStockGasServedByFluidPort(t *testing.T) {
	ctx := newTestContext()
	port, inv := testutil.InventoryPort("tank", ir.ResourceFluid, ir.IOInput, 0)
	inv.Put("steam", 100)
	ctx.register(port)

	r := NewStock(ir.ResourceGas, "steam", 50, ir.IOInput)
	require.NoError(t, r.StartCheck(ctx, chance.Guaranteed()))
	got, err := r.CanStart(ctx, port, &Restrictions{})
	require.NoError(t, err)
	assert.Equal(t, ir.Success, got)
}

func TestStockStartExtracts(t *testing.T) {
	ctx := newTestContext()
	short, shortInv := testutil.InventoryPort("short", ir.ResourceItem, ir.IOInput, 0)
	full, fullInv := testutil.InventoryPort("full", ir.ResourceItem, ir.IOInput, 0)
	shortInv.Put("iron", 1)
	fullInv.Put("iron", 5)
	ctx.register(short, full)

	r := NewStock(ir.ResourceItem, "iron", 3, ir.IOInput)
	ch := chance.New(1)
	require.NoError(t, r.StartCheck(ctx, ch))

	ok, err := r.Start(ctx, short, ch)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = r.Start(ctx, full, ch)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(2), fullInv.Count("iron"))
	assert.Equal(t, int64(1), shortInv.Count("iron"))
}

func TestStockFinishInserts(t *testing.T) {
	ctx := newTestContext()
	port, inv := testutil.InventoryPort("out", ir.ResourceItem, ir.IOOutput, 0)
	ctx.register(port)

	r := NewStock(ir.ResourceItem, "gear", 2, ir.IOOutput)
	ch := chance.New(1)
	require.NoError(t, r.StartCheck(ctx, ch))

	ok, err := r.Finish(ctx, port, ch)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(2), inv.Count("gear"))

	ok, err = r.Start(ctx, port, ch)
	require.NoError(t, err)
	assert.False(t, ok, "outputs are never served at start")
}

func TestStockFinishNoSpace(t *testing.T) {
	ctx := newTestContext()
	port, inv := testutil.InventoryPort("out", ir.ResourceItem, ir.IOOutput, 1)
	ctx.register(port)

	r := NewStock(ir.ResourceItem, "gear", 2, ir.IOOutput)
	ch := chance.New(1)
	require.NoError(t, r.StartCheck(ctx, ch))

	ok, err := r.Finish(ctx, port, ch)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, int64(0), inv.Total())
}

func TestStockZeroChanceHandledWithoutTransfer(t *testing.T) {
	ctx := newTestContext()
	port, inv := testutil.InventoryPort("out", ir.ResourceItem, ir.IOOutput, 0)
	ctx.register(port)

	r := &Stock{Type: ir.ResourceItem, Key: "gem", Amount: 1, IO: ir.IOOutput, Chance: 0}
	ch := chance.New(3)
	require.NoError(t, r.StartCheck(ctx, ch))

	ok, err := r.Finish(ctx, port, ch)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(0), inv.Count("gem"))
}

func TestStockGuaranteedIgnoresChance(t *testing.T) {
	ctx := newTestContext()
	port, inv := testutil.InventoryPort("out", ir.ResourceItem, ir.IOOutput, 0)
	ctx.register(port)

	r := &Stock{Type: ir.ResourceItem, Key: "gem", Amount: 1, IO: ir.IOOutput, Chance: 0}
	ch := chance.Guaranteed()
	require.NoError(t, r.StartCheck(ctx, ch))

	ok, err := r.Finish(ctx, port, ch)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(1), inv.Count("gem"))
}

func TestStockChanceModifier(t *testing.T) {
	ctx := newTestContext()
	ctx.mods.Record(modifier.Modifier{Target: "item", IO: ir.IOOutput, Op: modifier.OpMultiply, Amount: 0, AffectsChance: true})
	ctx.mods.Record(modifier.Modifier{Target: "item", IO: ir.IOOutput, Op: modifier.OpAdd, Amount: 2})

	r := NewStock(ir.ResourceItem, "gem", 1, ir.IOOutput)
	require.NoError(t, r.StartCheck(ctx, chance.New(1)))

	s := ctx.Scratch(r)
	assert.Equal(t, int64(3), s.Amount)
	assert.Equal(t, 0.0, s.Probability)

	r.EndCheck(ctx)
	assert.Nil(t, s.Chance)
	assert.Equal(t, int64(0), s.Amount)
}

func TestStockWrongTypeSkips(t *testing.T) {
	ctx := newTestContext()
	port, _ := testutil.InventoryPort("tank", ir.ResourceFluid, ir.IOInput, 0)
	ctx.register(port)

	r := NewStock(ir.ResourceItem, "iron", 1, ir.IOInput)
	require.NoError(t, r.StartCheck(ctx, chance.Guaranteed()))
	got, err := r.CanStart(ctx, port, &Restrictions{})
	require.NoError(t, err)
	assert.Equal(t, ir.InvalidSkip, got)
}
