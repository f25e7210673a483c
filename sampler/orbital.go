package sampler

import (
	"math"
	"math/rand"

	"github.com/atomview/atomview/density"
	"github.com/atomview/atomview/physics"
)

// drawOrbital samples a single orbital: radius through the term's
// inverse CDF, direction by rejection against the angular density's
// scanned maximum. Points whose angular rejection exceeds the retry
// cap are dropped and counted, never silently lost.
func drawOrbital(set *Set, spec density.SingleOrbital, opts Options, rng *rand.Rand) {
	orb := spec.Orbital
	cdf := buildRadialCDF(orb.Radial, opts.MaxRadius)
	if cdf.empty() {
		return
	}
	maxAng := maxAngularDensity(orb.L, orb.M, spec.Basis)
	retryCap := opts.retryCap()

	set.Samples = make([]Sample, 0, opts.Count)
	for i := 0; i < opts.Count; i++ {
		r := cdf.sample(rng)

		accepted := false
		var theta, phi, ang float64
		for attempt := 0; attempt < retryCap; attempt++ {
			theta, phi = drawAngles(rng)
			ang = physics.AngularAmplitude(theta, phi, orb.L, orb.M, spec.Basis)
			if rng.Float64() < (ang*ang)/maxAng {
				accepted = true
				break
			}
		}
		if !accepted {
			set.Dropped++
			continue
		}

		x, y, z := toCartesian(r, theta, phi)
		amp := orb.Radial.Eval(r) * ang

		s := Sample{X: x, Y: y, Z: z, Phase: math.NaN()}
		if spec.Basis == physics.BasisReal {
			// Real basis carries sign: the lobes alternate phase.
			s.Weight = amp
			if opts.WithSigns {
				s.Sign = signOf(amp)
			}
		} else {
			s.Weight = amp * amp
			if opts.WithSigns {
				// Complex-basis sign comes from the real part of psi,
				// which the surface reconstruction uses to split lobes.
				re, _ := physics.SphericalHarmonic(theta, phi, orb.L, orb.M)
				s.Sign = signOf(orb.Radial.Eval(r) * re)
			}
		}
		set.Samples = append(set.Samples, s)
	}
}

func signOf(v float64) int8 {
	if v >= 0 {
		return 1
	}
	return -1
}
