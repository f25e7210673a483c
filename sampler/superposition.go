package sampler

import (
	"math"
	"math/rand"

	"github.com/atomview/atomview/density"
	"github.com/atomview/atomview/physics"
)

// drawSuperposition samples |a psiA + b psiB e^(-i dE t)|^2 with a
// mixture proposal: a component is chosen by the mixing fraction, a
// radius drawn from that component's CDF and a direction accepted
// against its angular bound, then the candidate is accepted with
// probability |psi|^2 / (2 * proposal). The factor 2 bounds the
// interference term: |psi|^2 <= 2 (a^2|psiA|^2 + b^2|psiB|^2) by the
// parallelogram inequality, so the acceptance ratio never exceeds 1.
func drawSuperposition(set *Set, spec density.Superposition, opts Options, rng *rand.Rand) {
	set.DeltaE = spec.DeltaE
	set.Static = spec.Static()

	cdfA := buildRadialCDF(spec.A.Radial, opts.MaxRadius)
	cdfB := buildRadialCDF(spec.B.Radial, opts.MaxRadius)
	if cdfA.empty() || cdfB.empty() {
		return
	}
	maxAngA := maxAngularDensity(spec.A.L, spec.A.M, physics.BasisComplex)
	maxAngB := maxAngularDensity(spec.B.L, spec.B.M, physics.BasisComplex)
	retryCap := opts.retryCap()

	set.Samples = make([]Sample, 0, opts.Count)
	for i := 0; i < opts.Count; i++ {
		accepted := false
		var r, theta, phi, psiRe, psiIm float64

		for attempt := 0; attempt < retryCap; attempt++ {
			pickA := rng.Float64() < spec.Mix
			if pickA {
				r = cdfA.sample(rng)
				theta, phi = drawAngles(rng)
				ang := physics.AngularMagnitude(theta, phi, spec.A.L, spec.A.M)
				if rng.Float64() >= (ang*ang)/maxAngA {
					continue
				}
			} else {
				r = cdfB.sample(rng)
				theta, phi = drawAngles(rng)
				ang := physics.AngularMagnitude(theta, phi, spec.B.L, spec.B.M)
				if rng.Float64() >= (ang*ang)/maxAngB {
					continue
				}
			}

			dA, dB := spec.ComponentDensities(r, theta, phi)
			proposal := spec.Mix*dA + (1-spec.Mix)*dB
			if proposal <= 0 {
				continue
			}
			psiRe, psiIm = spec.Psi(r, theta, phi)
			prob := psiRe*psiRe + psiIm*psiIm
			accept := math.Min(prob/(2*proposal), 1)
			if rng.Float64() < accept {
				accepted = true
				break
			}
		}
		if !accepted {
			set.Dropped++
			continue
		}

		x, y, z := toCartesian(r, theta, phi)
		s := Sample{
			X: x, Y: y, Z: z,
			// Signed amplitude: the real part of the combined psi,
			// which carries the interference pattern.
			Weight: psiRe,
			Phase:  math.Atan2(psiIm, psiRe),
		}
		if opts.WithSigns {
			s.Sign = signOf(psiRe)
		}
		set.Samples = append(set.Samples, s)
	}
}
