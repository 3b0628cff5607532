// Package crafting implements the per-execution recipe crafting context.
//
// A Context is created by a driver for one in-progress craft. The driver
// registers components and modifiers, then calls the phase operations:
//
//  1. CanStartCrafting probes whether every requirement can be served,
//     without moving resources.
//  2. StartCrafting consumes inputs once, with a seeded chance state.
//  3. EnergyTick runs on every tick while the craft is active, moving
//     per-tick resources. A false result means the craft stalled.
//  4. FinishCrafting produces outputs once, with a fresh chance state.
//
// DETERMINISM:
//
// Requirements are evaluated in recipe order. Components are scanned in
// registration order and the first component that succeeds wins. Chance
// outcomes depend only on the seed. Given the same registrations, modifiers
// and seeds, every pass produces the same outcome.
//
// THREAD-SAFETY:
//
// A Context is owned by one driver goroutine and is not safe for concurrent
// use. Registration must not happen while a pass is running.
package crafting
