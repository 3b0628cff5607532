package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/roach88/craftkit/internal/ir"
)

func TestEnergyBuffer_ExtractReceive(t *testing.T) {
	buf := NewEnergyBuffer(100, 40)

	assert.Equal(t, int64(40), buf.Extract(50, true))
	assert.Equal(t, int64(40), buf.Stored(), "simulate leaves the buffer untouched")

	assert.Equal(t, int64(30), buf.Extract(30, false))
	assert.Equal(t, int64(10), buf.Stored())

	assert.Equal(t, int64(90), buf.Receive(500, false))
	assert.Equal(t, int64(100), buf.Stored())
	assert.Equal(t, int64(0), buf.Receive(1, true))
}

func TestEnergyBuffer_ClampsInitialStored(t *testing.T) {
	buf := NewEnergyBuffer(10, 50)
	assert.Equal(t, int64(10), buf.Stored())
	assert.Equal(t, int64(10), buf.Capacity())
}

func TestEnergyBuffer_NegativeAmounts(t *testing.T) {
	buf := NewEnergyBuffer(10, 5)
	assert.Equal(t, int64(0), buf.Extract(-3, false))
	assert.Equal(t, int64(0), buf.Receive(-3, false))
	assert.Equal(t, int64(5), buf.Stored())
}

func TestInventory_SharedCapacity(t *testing.T) {
	inv := NewInventory(10)
	inv.Put("iron", 4)

	assert.Equal(t, int64(6), inv.Space("copper"))
	assert.Equal(t, int64(6), inv.Insert("copper", 8, false))
	assert.Equal(t, int64(0), inv.Space("iron"))
	assert.Equal(t, int64(10), inv.Total())
}

func TestInventory_Extract(t *testing.T) {
	inv := NewInventory(0).Put("iron", 3)

	assert.Equal(t, int64(3), inv.Extract("iron", 5, true))
	assert.Equal(t, int64(3), inv.Count("iron"))

	assert.Equal(t, int64(3), inv.Extract("iron", 5, false))
	assert.Equal(t, int64(0), inv.Count("iron"))
	assert.Empty(t, inv.Keys())
	assert.NotNil(t, inv.Snapshot())
}

func TestInventory_Unlimited(t *testing.T) {
	inv := NewInventory(-1)
	assert.Equal(t, Unlimited, inv.Space("anything"))
}

func TestInventory_KeysSorted(t *testing.T) {
	inv := NewInventory(0).Put("b", 1).Put("a", 2).Put("c", 3)
	assert.Equal(t, []string{"a", "b", "c"}, inv.Keys())
	assert.Equal(t, map[string]int64{"a": 2, "b": 1, "c": 3}, inv.Snapshot())
}

func TestPorts(t *testing.T) {
	p, buf := EnergyPort("battery", ir.IOInput, 100, 50)
	assert.Equal(t, "battery", p.Name())
	assert.Equal(t, ir.IOInput, p.IOType())
	assert.Equal(t, ir.ResourceEnergy, p.ResourceType())
	assert.Same(t, buf, p.Provider())

	q, inv := InventoryPort("tank", ir.ResourceFluid, ir.IOOutput, 1000)
	assert.Equal(t, ir.ResourceFluid, q.ResourceType())
	assert.Same(t, inv, q.Provider())
}
