package sampler

import (
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/atomview/atomview/density"
)

// drawIsotropic samples the spherically averaged, weight-summed
// density of a set of radial terms. Radii follow the combined marginal
// (per-term CDFs chosen by normalized weight); directions are uniform
// on the sphere, so no rejection is needed and no points drop.
func drawIsotropic(set *Set, orbitals []density.Orbital, opts Options, rng *rand.Rand) {
	cdfs := make([]radialCDF, 0, len(orbitals))
	terms := make([]density.Orbital, 0, len(orbitals))
	weightCum := make([]float64, 0, len(orbitals))
	totalWeight := 0.0

	for _, orb := range orbitals {
		if orb.Weight <= 0 {
			continue
		}
		cdf := buildRadialCDF(orb.Radial, opts.MaxRadius)
		if cdf.empty() {
			continue
		}
		totalWeight += orb.Weight
		weightCum = append(weightCum, totalWeight)
		cdfs = append(cdfs, cdf)
		terms = append(terms, orb)
	}
	if len(cdfs) == 0 || totalWeight <= 0 {
		return // structurally degenerate: empty set, not an error
	}
	floats.Scale(1/totalWeight, weightCum)

	set.Samples = make([]Sample, 0, opts.Count)
	for len(set.Samples) < opts.Count {
		idx := sort.SearchFloat64s(weightCum, rng.Float64())
		if idx >= len(cdfs) {
			idx = len(cdfs) - 1
		}
		r := cdfs[idx].sample(rng)
		theta, phi := drawAngles(rng)
		x, y, z := toCartesian(r, theta, phi)

		set.Samples = append(set.Samples, Sample{
			X: x, Y: y, Z: z,
			Weight: isotropicDensity(terms, r),
			Phase:  math.NaN(),
		})
	}
}

// isotropicDensity is the occupancy-weighted radial density
// sum(w_i * R_i(r)^2), the scalar attached to isotropic samples.
func isotropicDensity(orbitals []density.Orbital, r float64) float64 {
	total := 0.0
	for _, orb := range orbitals {
		R := orb.Radial.Eval(r)
		total += orb.Weight * R * R
	}
	return total
}

// drawWeightedOrbitals samples valence lobe mode: each term keeps its
// |Y_l0|^2 angular shape and receives a share of the request
// proportional to its occupancy. m is already forced to 0 upstream
// because tabulated data is not m-resolved.
func drawWeightedOrbitals(set *Set, orbitals []density.Orbital, opts Options, rng *rand.Rand) {
	totalWeight := 0.0
	for _, orb := range orbitals {
		totalWeight += orb.Weight
	}
	if totalWeight <= 0 || len(orbitals) == 0 {
		return
	}

	set.Samples = make([]Sample, 0, opts.Count)
	remaining := opts.Count
	for idx, orb := range orbitals {
		if remaining == 0 {
			break
		}
		count := int(math.Round(float64(opts.Count) * orb.Weight / totalWeight))
		if idx == len(orbitals)-1 || count > remaining {
			count = remaining
		}
		if count == 0 {
			continue
		}
		remaining -= count

		sub := density.SingleOrbital{Orbital: orb}
		subOpts := opts
		subOpts.Count = count
		part := &Set{Requested: count, MaxRadius: opts.MaxRadius}
		drawOrbital(part, sub, subOpts, rng)
		set.Samples = append(set.Samples, part.Samples...)
		set.Dropped += part.Dropped
	}
}
