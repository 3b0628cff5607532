package chance

import (
	"math/rand/v2"
	"sync"
)

// SeedSource supplies seeds for start and finish passes.
type SeedSource interface {
	NextSeed() int64
}

// RandomSeeds draws seeds from the auto-seeded math/rand/v2 source.
type RandomSeeds struct{}

// NextSeed returns a random seed.
func (RandomSeeds) NextSeed() int64 {
	// #nosec G404
	return rand.Int64()
}

// FixedSeeds returns a fixed sequence of seeds. Once the sequence is
// exhausted the last seed repeats; an empty sequence yields 0.
// Safe for concurrent use.
type FixedSeeds struct {
	mu    sync.Mutex
	seeds []int64
	next  int
}

// NewFixedSeeds returns a source yielding seeds in order.
func NewFixedSeeds(seeds ...int64) *FixedSeeds {
	cp := make([]int64, len(seeds))
	copy(cp, seeds)
	return &FixedSeeds{seeds: cp}
}

// NextSeed returns the next seed in the sequence.
func (f *FixedSeeds) NextSeed() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.seeds) == 0 {
		return 0
	}
	if f.next >= len(f.seeds) {
		return f.seeds[len(f.seeds)-1]
	}
	s := f.seeds[f.next]
	f.next++
	return s
}

// SequenceSeeds yields base, base+1, base+2, ...
// Safe for concurrent use.
type SequenceSeeds struct {
	mu   sync.Mutex
	next int64
}

// NewSequenceSeeds returns a source starting at base.
func NewSequenceSeeds(base int64) *SequenceSeeds {
	return &SequenceSeeds{next: base}
}

// NextSeed returns the next seed and advances the counter.
func (s *SequenceSeeds) NextSeed() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.next
	s.next++
	return v
}
