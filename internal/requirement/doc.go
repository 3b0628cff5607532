// Package requirement defines what a recipe asks of its components and how
// a crafting context calls into it.
//
// Requirements are immutable and may be shared by any number of concurrent
// executions of the same recipe. They never store per-execution state.
// Everything a requirement needs to remember between calls (the chance
// state of the current pass, modified amounts, per-tick remainders) lives
// in a Scratch owned by the Context and handed back through
// Context.Scratch.
//
// Two variants exist:
//
//   - Discrete requirements (Requirement) move resources once, when the
//     craft starts (inputs) or finishes (outputs).
//   - Per-tick requirements (PerTick) additionally move resources on every
//     tick while the craft runs.
//
// A context dispatches on the variant with a type switch on PerTick.
package requirement
