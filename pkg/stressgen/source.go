package stressgen

import "math/rand/v2"

// Source is the randomness a Generator consumes.
type Source interface {
	// IntRange returns a uniform integer in [lo, hi].
	IntRange(lo, hi int) int

	// Choose returns a uniform index in [0, n), used to pick from a set.
	Choose(n int) int
}

// seedStream is the fixed second PCG word; the seed alone selects the stream.
const seedStream = 0x9e3779b97f4a7c15

// RandSource is a Source backed by a PCG generator
type RandSource struct {
	seed uint64
	rand *rand.Rand
}

// NewSource returns a Source that always yields the same sequence for seed.
func NewSource(seed uint64) *RandSource {
	return &RandSource{
		seed: seed,
		rand: rand.New(rand.NewPCG(seed, seedStream)),
	}
}

// NewRandomSource seeds a Source from the process-wide generator.
// Seed reports the value used so the run can be replayed.
func NewRandomSource() *RandSource {
	return NewSource(rand.Uint64())
}

// Seed returns the seed this source was created with
func (s *RandSource) Seed() uint64 {
	return s.seed
}

// IntRange returns a uniform integer in [lo, hi]. It panics if hi < lo.
func (s *RandSource) IntRange(lo, hi int) int {
	if hi < lo {
		panic("stressgen: IntRange called with hi < lo")
	}
	return lo + s.rand.IntN(hi-lo+1)
}

// Choose returns a uniform index in [0, n)
func (s *RandSource) Choose(n int) int {
	return s.rand.IntN(n)
}
