package physics

import "math"

// RadialWavefunction evaluates the hydrogenic radial wavefunction
// R_nl(r) for Z=1, in units of the Bohr radius:
//
//	R_nl(r) = (2/n)^(3/2) sqrt((n-l-1)! / (2n (n+l)!)) rho^l e^(-rho/2) L_{n-l-1}^{2l+1}(rho)
//
// with rho = 2r/n. Charge scaling for Z > 1 is applied by callers as a
// 1/Z coordinate scale, which keeps the sampled shape element-agnostic.
// Returns 0 for negative r; the caller guarantees 0 <= l < n.
func RadialWavefunction(r float64, n, l int) float64 {
	if r < 0 {
		return 0
	}

	nf := float64(n)
	rho := 2 * r / nf

	norm := math.Pow(2/nf, 1.5) *
		math.Sqrt(factorial(n-l-1)/(2*nf*factorial(n+l)))

	return norm * math.Pow(rho, float64(l)) * math.Exp(-rho/2) *
		laguerre(rho, n-l-1, 2*l+1)
}

// RadialProbability returns the radial probability density
// P(r) = r^2 R_nl(r)^2, the marginal used for CDF-based sampling.
func RadialProbability(r float64, n, l int) float64 {
	R := RadialWavefunction(r, n, l)
	return r * r * R * R
}
