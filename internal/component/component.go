// Package component indexes the resource endpoints registered for one
// crafting execution.
//
// A Component is a named handle to a physical resource container (an
// energy buffer, an inventory, a tank). The index never owns components;
// it maps each canonical resource type to the components of that type in
// registration order, plus the opaque provider object each component
// exposes for requirements to transfer through.
//
// Iteration order is registration order. Requirement scans take the first
// component that succeeds, so a stable order makes outcomes reproducible.
package component

import (
	"github.com/roach88/craftkit/internal/ir"
)

// Component is a typed handle to a resource endpoint.
//
// Implementations must be comparable (typically a pointer) because the
// index keys on component identity.
type Component interface {
	// Name identifies the component in traces and logs.
	Name() string
	// IOType is the fixed direction of the component.
	IOType() ir.IOType
	// ResourceType is the fixed resource type of the component.
	ResourceType() ir.ResourceType
	// Provider returns the container object requirements transfer through.
	Provider() any
}

type bucket struct {
	order     []Component
	providers map[Component]any
}

// Index maps resource types to registered components.
//
// Index is not safe for concurrent use, and registration must not be
// interleaved with an in-progress scan over ComponentsOf.
type Index struct {
	buckets map[ir.ResourceType]*bucket
	types   []ir.ResourceType
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{buckets: make(map[ir.ResourceType]*bucket)}
}

// Register adds c under its canonical resource type and records
// c.Provider(). Registering the same component again replaces its provider
// and keeps its original position.
func (x *Index) Register(c Component) {
	key := c.ResourceType().Canonical()
	b, ok := x.buckets[key]
	if !ok {
		b = &bucket{providers: make(map[Component]any)}
		x.buckets[key] = b
		x.types = append(x.types, key)
	}
	if _, seen := b.providers[c]; !seen {
		b.order = append(b.order, c)
	}
	b.providers[c] = c.Provider()
}

// ComponentsOf returns the components registered for t in registration
// order. Lookups for "gas" return the "fluid" bucket.
// Returns an empty slice (not nil) if none are registered.
func (x *Index) ComponentsOf(t ir.ResourceType) []Component {
	b, ok := x.buckets[t.Canonical()]
	if !ok {
		return []Component{}
	}
	out := make([]Component, len(b.order))
	copy(out, b.order)
	return out
}

// Provider returns the provider recorded for c.
// The second result is false if c was never registered.
func (x *Index) Provider(c Component) (any, bool) {
	b, ok := x.buckets[c.ResourceType().Canonical()]
	if !ok {
		return nil, false
	}
	p, ok := b.providers[c]
	return p, ok
}

// Len returns the number of distinct registered components.
func (x *Index) Len() int {
	n := 0
	for _, b := range x.buckets {
		n += len(b.order)
	}
	return n
}

// Types returns the canonical resource types with at least one component,
// in the order they were first registered.
func (x *Index) Types() []ir.ResourceType {
	out := make([]ir.ResourceType, len(x.types))
	copy(out, x.types)
	return out
}
