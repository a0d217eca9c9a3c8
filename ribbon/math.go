package ribbon

import (
	"golang.org/x/exp/constraints"
)

// Mix is GLSL's mix. Unlike a+(b-a)*t it returns b exactly at t == 1.
func Mix[F constraints.Float](a, b, t F) F {
	return a*(1-t) + b*t
}

func Clamp[N constraints.Integer | constraints.Float](n, minN, maxN N) N {
	n = min(n, maxN)
	n = max(n, minN)

	return n
}

// Sampler is the uniform random source used while building a scene.
// *rand.Rand from math/rand/v2 satisfies it.
type Sampler interface {
	Float64() float64
}

// RandFloat returns a value uniformly distributed in [lo, hi).
func RandFloat(r Sampler, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}
