package netrange

import "math/rand/v2"

// Rand is the source behind every sampling decision in the service.
// A seeded *rand.Rand from math/rand/v2 satisfies it, which is what tests use.
type Rand interface {
	IntN(n int) int
	Uint64() uint64
	Uint64N(n uint64) uint64
}

type globalRand struct{}

func (globalRand) IntN(n int) int          { return rand.IntN(n) }
func (globalRand) Uint64() uint64          { return rand.Uint64() }
func (globalRand) Uint64N(n uint64) uint64 { return rand.Uint64N(n) }

// DefaultRand returns the process-wide generator. It is safe for concurrent use.
func DefaultRand() Rand {
	return globalRand{}
}
