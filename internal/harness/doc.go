// Package harness runs craft scenarios against a real machine.
//
// A scenario is a YAML file naming a recipe, the components attached to
// the machine with their initial contents, optional modifiers, a seed and
// a number of ticks. Run builds the machine over in-memory containers and
// an in-memory journal, steps it, and evaluates the scenario's assertions
// against the final state and the event trace.
//
// Execution ids and chance seeds are derived from the scenario, so a
// scenario always produces the same trace. RunWithGolden compares that
// trace, as canonical JSON, with testdata/golden/<name>.golden.
//
// Example scenario:
//
//	name: gear_basic
//	description: one gear from two ingots
//	recipe: ../recipes/gear.yaml
//	seed: 42
//	ticks: 21
//	components:
//	  - name: battery
//	    type: energy
//	    io: input
//	    capacity: 10000
//	    energy: 1000
//	  - name: input-bus
//	    type: item
//	    io: input
//	    stock: {iron_ingot: 2}
//	  - name: output-bus
//	    type: item
//	    io: output
//	assertions:
//	  - type: crafts_completed
//	    count: 1
//	  - type: stock
//	    component: output-bus
//	    key: gear
//	    amount: 1
package harness
