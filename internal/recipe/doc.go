// Package recipe loads, validates and registers recipe definitions.
//
// Recipes are declared in YAML (one recipe per file) or CUE (any number of
// recipes under a top-level "recipe" struct). Both forms decode into the
// same Definition, which Build turns into a Recipe the crafting context can
// run.
//
// YAML:
//
//	id: craftkit:gear
//	time_ticks: 20
//	requirements:
//	  - type: energy
//	    io: input
//	    per_tick: 10
//	  - type: item
//	    io: input
//	    key: iron_ingot
//	    amount: 2
//	  - type: item
//	    io: output
//	    key: gear
//	    amount: 1
//
// CUE:
//
//	recipe: gear: {
//		id:         "craftkit:gear"
//		time_ticks: 20
//		requirements: [{type: "energy", io: "input", per_tick: 10}]
//	}
//
// A recipe's digest is the SHA-256 of its canonical definition, so two
// files declaring the same recipe share a digest whatever their format.
package recipe
