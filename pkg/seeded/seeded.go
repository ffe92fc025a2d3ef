// Package seeded provides deterministic pseudo-random streams derived from integer seeds.
//
// A Generator is a plain value: copying it forks the stream, and there is no
// package-level source. Every caller that needs randomness receives one explicitly.
package seeded

import "github.com/braunma/rackfloor/internal/constants"

// Generator is a mulberry32 stream
type Generator struct {
	state uint32
}

// New creates a generator from an integer seed. The high 32 bits are folded into
// the low ones, so seeds that differ only above bit 31 give different streams.
// Seeds in [0, 2^32) keep their plain mulberry32 stream.
func New(seed int64) Generator {
	u := uint64(seed)
	return Generator{state: uint32(u ^ u>>32)}
}

// ForRack derives the per-rack stream for index i of a batch generated with seed
func ForRack(seed int64, rackIndex int) Generator {
	return New(seed + int64(rackIndex)*constants.PerRackSeedStride)
}

// Next returns the next float in [0, 1)
func (g *Generator) Next() float64 {
	g.state += 0x6D2B79F5
	t := g.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296.0
}

// Intn returns an int in [0, n); n <= 0 yields 0
func (g *Generator) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	i := int(g.Next() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}

// Range returns a float in [lo, hi)
func (g *Generator) Range(lo, hi float64) float64 {
	return lo + g.Next()*(hi-lo)
}

// Chance returns true with probability p
func (g *Generator) Chance(p float64) bool {
	return g.Next() < p
}

// Clone returns an independent copy positioned at the same point in the stream
func (g Generator) Clone() Generator {
	return g
}
