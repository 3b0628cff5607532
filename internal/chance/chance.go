// Package chance resolves chance-weighted requirement outcomes.
//
// A Chance is created fresh for each crafting start pass and each finish
// pass and is never shared between passes. Given the same seed, a Chance
// produces the same sequence of outcomes.
package chance

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
)

// Chance is either a seeded generator or the guaranteed sentinel.
// The zero value is not usable; use New or Guaranteed.
type Chance struct {
	rng        *rand.Rand
	seed       int64
	guaranteed bool
}

// New returns a Chance seeded from seed.
func New(seed int64) *Chance {
	// Non-cryptographic PRNG: outcomes must be reproducible from the seed.
	// #nosec G404
	rng := rand.New(rand.NewPCG(seedWord(seed, "a"), seedWord(seed, "b")))
	return &Chance{rng: rng, seed: seed}
}

// Guaranteed returns the sentinel that always rolls the maximum chance.
// The capability probe uses it so chance never decides whether a craft
// can start.
func Guaranteed() *Chance {
	return &Chance{guaranteed: true}
}

func seedWord(seed int64, salt string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(fmt.Sprintf("%d:%s", seed, salt)))
	return h.Sum64()
}

// Seed returns the seed c was built from (0 for the sentinel).
func (c *Chance) Seed() int64 {
	return c.seed
}

// Roll returns the next value in [0, 1). The sentinel always returns 0.
func (c *Chance) Roll() float64 {
	if c.guaranteed {
		return 0
	}
	return c.rng.Float64()
}

// CanWork reports whether an outcome with probability p happens.
// The sentinel always returns true. For a seeded Chance, p >= 1 is always
// true and p <= 0 is always false; neither consumes a roll.
func (c *Chance) CanWork(p float64) bool {
	if c.guaranteed || p >= 1 {
		return true
	}
	if p <= 0 {
		return false
	}
	return c.Roll() < p
}
