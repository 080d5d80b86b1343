package systems

import "math/rand"

// RandomSource supplies bounded uniform integers for jitter and log placement.
type RandomSource interface {
	// IntRange returns a uniform integer in [lo, hi). Returns lo if hi <= lo.
	IntRange(lo, hi int) int
}

// RandSource adapts a seeded *rand.Rand to RandomSource.
type RandSource struct {
	rng *rand.Rand
}

// NewRandSource creates a RandomSource seeded once with the given seed.
func NewRandSource(seed int64) *RandSource {
	return &RandSource{rng: rand.New(rand.NewSource(seed))}
}

// IntRange returns a uniform integer in [lo, hi).
func (r *RandSource) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.rng.Intn(hi-lo)
}

// ConstantSource always returns the same value, clamped into the requested range.
// Used to make turbulence and placement deterministic.
type ConstantSource int

// IntRange returns the constant clamped to [lo, hi-1].
func (c ConstantSource) IntRange(lo, hi int) int {
	v := int(c)
	if hi <= lo || v < lo {
		return lo
	}
	if v >= hi {
		return hi - 1
	}
	return v
}
