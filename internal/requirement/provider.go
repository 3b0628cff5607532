package requirement

// EnergyBuffer is the provider interface of energy components.
//
// Extract and Receive return the amount actually moved; with simulate set
// they report what would move without changing the buffer.
type EnergyBuffer interface {
	Stored() int64
	Capacity() int64
	Extract(amount int64, simulate bool) int64
	Receive(amount int64, simulate bool) int64
}

// Container is the provider interface of item and fluid components.
// Keys name the item or fluid (for example "iron_ingot", "water").
type Container interface {
	// Count returns the stored amount of key.
	Count(key string) int64
	// Space returns how much of key could still be inserted.
	Space(key string) int64
	Extract(key string, amount int64, simulate bool) int64
	Insert(key string, amount int64, simulate bool) int64
}
