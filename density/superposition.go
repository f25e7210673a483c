package density

import (
	"math"

	"github.com/atomview/atomview/physics"
)

// degenerateDeltaE is the threshold below which an energy gap is
// treated as exactly zero: the cross term is then time-invariant and
// callers must not pretend the density evolves.
const degenerateDeltaE = 1e-6

// Superposition is the instantaneous density of a normalized two-state
// mix a*psiA + b*psiB*exp(-i*DeltaE*t) with a^2 = Mix, b^2 = 1-Mix:
//
//	|psi|^2 = a^2|psiA|^2 + b^2|psiB|^2 + 2ab Re[psiA conj(psiB) e^(i DeltaE t)]
//
// The time parameter is caller-supplied; the engine never samples a
// clock.
type Superposition struct {
	A, B Orbital
	// Mix is the probability weight a^2 of state A, in (0, 1).
	Mix float64
	// Time is the evolution phase parameter t.
	Time float64
	// DeltaE is E_B - E_A. Zero makes the density static.
	DeltaE float64
}

// Mode implements Spec.
func (Superposition) Mode() Mode { return ModeSuperposition }

// Static reports whether the density is time-invariant (degenerate
// energies). Animation of a static superposition is a presentation
// concern, never performed here.
func (s Superposition) Static() bool {
	return math.Abs(s.DeltaE) < degenerateDeltaE
}

// Coefficients returns the state amplitudes a = sqrt(mix),
// b = sqrt(1-mix).
func (s Superposition) Coefficients() (a, b float64) {
	return math.Sqrt(s.Mix), math.Sqrt(1 - s.Mix)
}

// Psi evaluates the combined complex amplitude at a spherical
// coordinate for the spec's time parameter.
func (s Superposition) Psi(r, theta, phi float64) (re, im float64) {
	a, b := s.Coefficients()
	phaseRe := math.Cos(s.DeltaE * s.Time)
	phaseIm := -math.Sin(s.DeltaE * s.Time)

	r1 := s.A.Radial.Eval(r)
	r2 := s.B.Radial.Eval(r)
	y1Re, y1Im := physics.SphericalHarmonic(theta, phi, s.A.L, s.A.M)
	y2Re, y2Im := physics.SphericalHarmonic(theta, phi, s.B.L, s.B.M)

	// Rotate psiB by the relative phase before summing.
	y2pRe := y2Re*phaseRe - y2Im*phaseIm
	y2pIm := y2Re*phaseIm + y2Im*phaseRe

	re = a*r1*y1Re + b*r2*y2pRe
	im = a*r1*y1Im + b*r2*y2pIm
	return re, im
}

// Density returns |psi|^2 at a spherical coordinate.
func (s Superposition) Density(r, theta, phi float64) float64 {
	re, im := s.Psi(r, theta, phi)
	return re*re + im*im
}

// ComponentDensities returns the per-state densities |psiA|^2 and
// |psiB|^2 without mixing weights, used as the mixture proposal in
// rejection sampling.
func (s Superposition) ComponentDensities(r, theta, phi float64) (da, db float64) {
	r1 := s.A.Radial.Eval(r)
	r2 := s.B.Radial.Eval(r)
	y1 := physics.AngularMagnitude(theta, phi, s.A.L, s.A.M)
	y2 := physics.AngularMagnitude(theta, phi, s.B.L, s.B.M)
	return r1 * r1 * y1 * y1, r2 * r2 * y2 * y2
}
