// Package sampler draws point sets distributed according to a density
// spec, using inverse-CDF radial sampling plus angular rejection
// sampling. All randomness flows through an injected source, so output
// is reproducible given a seed and safe to parallelize with one source
// per request.
package sampler

import "math/rand"

// defaultSeed is the fixed seed used when callers pass seed 0 or a nil
// source. Arbitrary but stable, to keep reproducible defaults.
const defaultSeed int64 = 1

// NewRNG returns a deterministic source for the given seed, applying
// the seed-zero default policy. math/rand.Rand is not goroutine-safe;
// create one per sampling request.
func NewRNG(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultSeed
	}
	return rand.New(rand.NewSource(seed))
}

func ensureRNG(rng *rand.Rand) *rand.Rand {
	if rng == nil {
		return NewRNG(0)
	}
	return rng
}
