package testutil

import "github.com/roach88/craftkit/internal/ir"

// Port is a component handle over an in-memory container.
//
// Port implements component.Component. Ports are compared by pointer, so
// two ports with the same name are still distinct components.
type Port struct {
	name     string
	io       ir.IOType
	resource ir.ResourceType
	provider any
}

// NewPort creates a port of the given type and direction over provider.
func NewPort(name string, resource ir.ResourceType, io ir.IOType, provider any) *Port {
	return &Port{name: name, io: io, resource: resource, provider: provider}
}

// EnergyPort creates an energy port over a new buffer.
func EnergyPort(name string, io ir.IOType, capacity, stored int64) (*Port, *EnergyBuffer) {
	buf := NewEnergyBuffer(capacity, stored)
	return NewPort(name, ir.ResourceEnergy, io, buf), buf
}

// InventoryPort creates an item or fluid port over a new inventory.
func InventoryPort(name string, resource ir.ResourceType, io ir.IOType, capacity int64) (*Port, *Inventory) {
	inv := NewInventory(capacity)
	return NewPort(name, resource, io, inv), inv
}

// Name returns the port name.
func (p *Port) Name() string { return p.name }

// IOType returns the port direction.
func (p *Port) IOType() ir.IOType { return p.io }

// ResourceType returns the port resource type.
func (p *Port) ResourceType() ir.ResourceType { return p.resource }

// Provider returns the wrapped container.
func (p *Port) Provider() any { return p.provider }
