package sampler

import (
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/atomview/atomview/density"
	"github.com/atomview/atomview/physics"
)

// angularScanSteps is the theta resolution used to bound |Y_lm|^2 for
// rejection sampling. The densities are smooth low-order polynomials in
// cos(theta), so this comfortably brackets the true maximum.
const angularScanSteps = 720

// radialCDF is the normalized cumulative radial probability of one
// term, piecewise linear on the term's mesh. Monotonically
// non-decreasing from 0 to 1 when mass > 0.
type radialCDF struct {
	rs   []float64
	cum  []float64
	mass float64
}

// buildRadialCDF integrates the term's radial probability
// (weight(r) * F(r)^2, trapezoidal) up to maxRadius and normalizes.
// Mass beyond maxRadius is excluded so sampling never leaves the
// requested bound.
func buildRadialCDF(t density.RadialTable, maxRadius float64) radialCDF {
	n := len(t.R)
	if n < 2 {
		return radialCDF{}
	}
	cum := make([]float64, n)
	total := 0.0
	for i := 1; i < n; i++ {
		if t.R[i] <= maxRadius {
			dr := t.R[i] - t.R[i-1]
			v0, v1 := t.F[i-1], t.F[i]
			area := 0.5 * (v0*v0*t.WeightAt(t.R[i-1]) + v1*v1*t.WeightAt(t.R[i])) * dr
			total += area
		}
		cum[i] = total
	}
	if total > 0 {
		floats.Scale(1/total, cum)
	}
	return radialCDF{rs: t.R, cum: cum, mass: total}
}

// empty reports a structurally degenerate distribution (zero mass
// inside the search radius).
func (c radialCDF) empty() bool {
	return len(c.cum) == 0 || c.mass <= 0
}

// sample maps a uniform variate through the inverse CDF, with linear
// interpolation inside the bracketing mesh interval.
func (c radialCDF) sample(rng *rand.Rand) float64 {
	u := rng.Float64()
	idx := sort.SearchFloat64s(c.cum, u)
	if idx >= len(c.cum) {
		idx = len(c.cum) - 1
	}
	if idx == 0 {
		return c.rs[0]
	}
	c0, c1 := c.cum[idx-1], c.cum[idx]
	r0, r1 := c.rs[idx-1], c.rs[idx]
	if c1 <= c0 {
		return r0
	}
	return r0 + (r1-r0)*(u-c0)/(c1-c0)
}

// maxAngularDensity scans theta for the maximum of the angular density
// used as the rejection bound. The complex-basis density is
// phi-independent, so a phi=0 scan suffices; real-basis terms with
// m != 0 carry an extra factor 2 from the sqrt(2) cos/sin combination,
// whose extremum in phi is 1.
func maxAngularDensity(l, m int, basis physics.Basis) float64 {
	maxVal := 0.0
	for i := 0; i < angularScanSteps; i++ {
		theta := (float64(i) + 0.5) / angularScanSteps * math.Pi
		y := physics.AngularMagnitude(theta, 0, l, m)
		if p := y * y; p > maxVal {
			maxVal = p
		}
	}
	if basis == physics.BasisReal && m != 0 {
		maxVal *= 2
	}
	return math.Max(maxVal, 1e-8)
}
