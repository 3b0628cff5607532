// Package machine drives a recipe through repeated crafts, one tick per
// Step.
//
// A Machine owns the components and modifiers of one crafting station and
// builds a fresh crafting.Context for every craft. While idle each Step
// probes the recipe and starts it when the probe succeeds. While running
// each Step performs one energy tick; a tick that cannot be served is a
// stall and does not advance progress. The craft finishes when progress
// reaches the recipe duration after "duration" modifiers, rounded to the
// nearest tick.
//
// Too many consecutive stalls abort the craft with a StallError. Resources
// taken by the start pass are not refunded.
//
// Thread-safety: a Machine must be driven from one goroutine.
package machine
