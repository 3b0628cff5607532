package testutil

import (
	"sort"
	"sync"
)

// EnergyBuffer is an in-memory energy store with a fixed capacity.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type EnergyBuffer struct {
	mu       sync.Mutex
	stored   int64
	capacity int64
}

// NewEnergyBuffer creates a buffer holding stored energy, clamped to capacity.
func NewEnergyBuffer(capacity, stored int64) *EnergyBuffer {
	if stored > capacity {
		stored = capacity
	}
	return &EnergyBuffer{stored: stored, capacity: capacity}
}

// Stored returns the buffered energy.
func (b *EnergyBuffer) Stored() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stored
}

// Capacity returns the buffer size.
func (b *EnergyBuffer) Capacity() int64 {
	return b.capacity
}

// Extract removes up to amount and returns what was (or would be) removed.
func (b *EnergyBuffer) Extract(amount int64, simulate bool) int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := min(max(amount, 0), b.stored)
	if !simulate {
		b.stored -= n
	}
	return n
}

// Receive adds up to amount and returns what was (or would be) added.
func (b *EnergyBuffer) Receive(amount int64, simulate bool) int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := min(max(amount, 0), b.capacity-b.stored)
	if !simulate {
		b.stored += n
	}
	return n
}

// Unlimited is the capacity of an inventory created with capacity <= 0.
const Unlimited int64 = 1 << 40

// Inventory is an in-memory keyed store (items or fluids) with one shared
// capacity across all keys.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type Inventory struct {
	mu       sync.Mutex
	capacity int64
	stock    map[string]int64
}

// NewInventory creates an empty inventory. A capacity <= 0 is Unlimited.
func NewInventory(capacity int64) *Inventory {
	if capacity <= 0 {
		capacity = Unlimited
	}
	return &Inventory{capacity: capacity, stock: make(map[string]int64)}
}

// Put sets the stored amount of key, ignoring capacity. Used for setup.
func (v *Inventory) Put(key string, amount int64) *Inventory {
	v.mu.Lock()
	defer v.mu.Unlock()
	if amount <= 0 {
		delete(v.stock, key)
	} else {
		v.stock[key] = amount
	}
	return v
}

// Count returns the stored amount of key.
func (v *Inventory) Count(key string) int64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.stock[key]
}

// Space returns the free capacity. Every key shares the same capacity.
func (v *Inventory) Space(string) int64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return max(v.capacity-v.total(), 0)
}

// Extract removes up to amount of key.
func (v *Inventory) Extract(key string, amount int64, simulate bool) int64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	n := min(max(amount, 0), v.stock[key])
	if !simulate && n > 0 {
		v.stock[key] -= n
		if v.stock[key] == 0 {
			delete(v.stock, key)
		}
	}
	return n
}

// Insert adds up to amount of key, bounded by free capacity.
func (v *Inventory) Insert(key string, amount int64, simulate bool) int64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	n := min(max(amount, 0), max(v.capacity-v.total(), 0))
	if !simulate && n > 0 {
		v.stock[key] += n
	}
	return n
}

// Total returns the summed amount of every key.
func (v *Inventory) Total() int64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.total()
}

func (v *Inventory) total() int64 {
	var n int64
	for _, a := range v.stock {
		n += a
	}
	return n
}

// Snapshot returns a copy of the stored amounts.
// Returns an empty map (not nil) for an empty inventory.
func (v *Inventory) Snapshot() map[string]int64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make(map[string]int64, len(v.stock))
	for k, a := range v.stock {
		out[k] = a
	}
	return out
}

// Keys returns the stored keys in sorted order.
func (v *Inventory) Keys() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	keys := make([]string, 0, len(v.stock))
	for k := range v.stock {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
