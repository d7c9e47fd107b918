package engine

import "math"

// Rand is the random source a Task draws from. *RNG implements it, and so
// does *rand.Rand from math/rand/v2.
type Rand interface {
	Float64() float64
	IntN(n int) int
	NormFloat64() float64
	ExpFloat64() float64
}

// ---------------------------------------------------------------------------
// xorshift64 RNG
// ---------------------------------------------------------------------------

// RNG is a small deterministic xorshift64 generator. It is a value type with
// no hidden state beyond the 8-byte register, so a copy replays the same
// stream.
type RNG struct {
	State uint64
}

// NewRNG returns a generator seeded with seed. A zero seed is corrected to 1
// (xorshift can't start at 0).
func NewRNG(seed uint64) *RNG {
	if seed == 0 {
		seed = 1
	}
	return &RNG{State: seed}
}

// Uint64 advances the generator and returns the next raw value.
func (r *RNG) Uint64() uint64 {
	x := r.State
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	r.State = x
	return x
}

// Float64 returns a uniform value in [0, 1) using the top 53 bits.
func (r *RNG) Float64() float64 {
	return float64(r.Uint64()>>11) / (1 << 53)
}

// IntN returns a uniform value in [0, n). It panics if n <= 0, like
// math/rand/v2.
func (r *RNG) IntN(n int) int {
	if n <= 0 {
		panic("engine: RNG.IntN called with n <= 0")
	}
	return int(r.Uint64() % uint64(n))
}

// NormFloat64 returns a standard normal draw (Box-Muller, one value per call).
func (r *RNG) NormFloat64() float64 {
	u1 := r.Float64()
	for u1 == 0 {
		u1 = r.Float64()
	}
	u2 := r.Float64()
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

// ExpFloat64 returns an exponential draw with rate 1 (mean 1).
func (r *RNG) ExpFloat64() float64 {
	return -math.Log(1 - r.Float64())
}
