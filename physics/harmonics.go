package physics

import (
	"math"
	"strings"
)

// Basis selects the angular representation of an orbital.
type Basis int

const (
	// BasisComplex uses the complex spherical harmonics Y_lm. Their
	// density |Y_lm|^2 is azimuthally symmetric.
	BasisComplex Basis = iota
	// BasisReal uses the real combinations of +/-m harmonics, producing
	// the textbook p/d/f lobes with explicit phi dependence and sign.
	BasisReal
)

// ParseBasis maps a query string to a Basis. Anything other than
// "real" selects the complex basis, mirroring the sampling endpoint's
// lenient parameter handling.
func ParseBasis(value string) Basis {
	if strings.EqualFold(value, "real") {
		return BasisReal
	}
	return BasisComplex
}

// String returns the query-parameter spelling of the basis.
func (b Basis) String() string {
	if b == BasisReal {
		return "real"
	}
	return "complex"
}

// SphericalHarmonic evaluates the complex spherical harmonic
// Y_lm(theta, phi) with the Condon-Shortley phase and returns its real
// and imaginary parts.
func SphericalHarmonic(theta, phi float64, l, m int) (re, im float64) {
	mAbs := m
	if mAbs < 0 {
		mAbs = -mAbs
	}
	cosTheta := math.Cos(theta)

	leg := associatedLegendre(cosTheta, l, mAbs)
	norm := math.Sqrt((2*float64(l)+1)/(4*math.Pi)) *
		math.Sqrt(factorial(l-mAbs)/factorial(l+mAbs))

	sin, cos := math.Sincos(float64(mAbs) * phi)
	baseRe := norm * leg * cos
	baseIm := norm * leg * sin

	// associatedLegendre already carries (-1)^m; undo or keep it so the
	// result matches the Y_lm convention for either sign of m.
	cs := 1.0
	if mAbs%2 != 0 {
		cs = -1.0
	}
	if m >= 0 {
		return cs * baseRe, cs * baseIm
	}
	return cs * baseRe, -cs * baseIm
}

// RealSphericalHarmonic evaluates the real-basis harmonic used for
// chemistry-style orbital lobes: m > 0 maps to the cosine combination,
// m < 0 to the sine combination, and m = 0 is Y_l0 itself.
func RealSphericalHarmonic(theta, phi float64, l, m int) float64 {
	if m == 0 {
		re, _ := SphericalHarmonic(theta, phi, l, 0)
		return re
	}
	mAbs := m
	if mAbs < 0 {
		mAbs = -mAbs
	}
	re, im := SphericalHarmonic(theta, phi, l, mAbs)
	if m > 0 {
		return math.Sqrt2 * re
	}
	return math.Sqrt2 * im
}

// AngularMagnitude returns |Y_lm(theta, phi)| in the complex basis.
// Independent of phi for any fixed (l, m).
func AngularMagnitude(theta, phi float64, l, m int) float64 {
	re, im := SphericalHarmonic(theta, phi, l, m)
	return math.Hypot(re, im)
}

// AngularAmplitude returns the basis-dependent angular factor: the
// magnitude |Y_lm| in the complex basis, or the signed real harmonic in
// the real basis. For m = 0 the two agree up to sign and |result| is
// identical in both bases.
func AngularAmplitude(theta, phi float64, l, m int, basis Basis) float64 {
	if basis == BasisReal {
		return RealSphericalHarmonic(theta, phi, l, m)
	}
	return AngularMagnitude(theta, phi, l, m)
}
