package rng

import (
	"math/rand/v2"
)

// Random wraps a seedable PCG stream and exposes the draws the grid worlds
// need. It is not safe for concurrent use; fork a child stream per worker
// instead of sharing one.
type Random struct {
	r *rand.Rand
}

// New returns a Random seeded from the process-wide entropy source.
func New() *Random {
	return NewSeeded(rand.Uint64(), rand.Uint64())
}

// NewSeeded returns a deterministic Random for the given seed pair.
func NewSeeded(seed1, seed2 uint64) *Random {
	return &Random{r: rand.New(rand.NewPCG(seed1, seed2))}
}

// Fork derives an independent child stream from the current state. The draw
// of the child's seed advances the parent, so repeated forks never alias.
func (r *Random) Fork() *Random {
	return NewSeeded(r.r.Uint64(), r.r.Uint64())
}

// Bool reports true with probability odds. odds <= 0 always yields false and
// odds >= 1 always yields true; callers use the extremes as on/off switches.
func (r *Random) Bool(odds float64) bool {
	if odds <= 0 {
		return false
	}
	if odds >= 1 {
		return true
	}
	return r.r.Float64() < odds
}

// IntN returns a uniform int in [0, n). It panics if n <= 0.
func (r *Random) IntN(n int) int {
	return r.r.IntN(n)
}

// IntBetween returns a uniform int in [lo, hi). It panics if hi <= lo.
func (r *Random) IntBetween(lo, hi int) int {
	if hi <= lo {
		panic("rng: empty int range")
	}
	return lo + r.r.IntN(hi-lo)
}

// Float64 returns a uniform float64 in [0, 1).
func (r *Random) Float64() float64 {
	return r.r.Float64()
}

// FloatBetween returns a uniform float64 in [lo, hi). It panics if hi <= lo.
func (r *Random) FloatBetween(lo, hi float64) float64 {
	if hi <= lo {
		panic("rng: empty float range")
	}
	return lo + r.r.Float64()*(hi-lo)
}

// Normal returns a Gaussian draw with the given mean and standard deviation.
func (r *Random) Normal(mean, stdev float64) float64 {
	return mean + r.r.NormFloat64()*stdev
}

// TruncatedNormal rejection-samples Normal until the draw lands in
// [lo, hi]. The loop is unbounded in the worst case; callers keep stdev
// small relative to the bounds, so in practice it terminates quickly.
func (r *Random) TruncatedNormal(mean, stdev, lo, hi float64) float64 {
	for {
		sample := r.Normal(mean, stdev)
		if lo <= sample && sample <= hi {
			return sample
		}
	}
}

// ShuffleColorRGB returns the three channels in random order.
func (r *Random) ShuffleColorRGB(color [3]uint8) [3]uint8 {
	r.r.Shuffle(3, func(i, j int) {
		color[i], color[j] = color[j], color[i]
	})
	return color
}
