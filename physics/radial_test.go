package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRadialWavefunction_KnownValues(t *testing.T) {
	// R_10(r) = 2 e^-r
	assert.InDelta(t, 2.0, RadialWavefunction(0, 1, 0), 1e-12)
	assert.InDelta(t, 2*math.Exp(-1), RadialWavefunction(1, 1, 0), 1e-12)

	// R_21(r) = r e^(-r/2) / (2 sqrt(6))
	want := 2 * math.Exp(-1) / (2 * math.Sqrt(6))
	assert.InDelta(t, want, RadialWavefunction(2, 2, 1), 1e-12)

	// R_20(r) = (1/sqrt(2)) (1 - r/2) e^(-r/2) has its node at r = 2.
	assert.InDelta(t, 0, RadialWavefunction(2, 2, 0), 1e-12)
	assert.InDelta(t, 1/math.Sqrt2, RadialWavefunction(0, 2, 0), 1e-12)
}

func TestRadialWavefunction_NegativeRadius(t *testing.T) {
	assert.Zero(t, RadialWavefunction(-0.5, 1, 0))
}

// The radial probability r^2 R^2 must integrate to one over [0, inf)
// for any bound state.
func TestRadialProbability_Normalization(t *testing.T) {
	states := []struct{ n, l int }{
		{1, 0}, {2, 0}, {2, 1}, {3, 1}, {3, 2}, {4, 2},
	}
	for _, st := range states {
		const steps = 20000
		// n^2 Bohr radii scales the orbital extent; 40 n covers the tail.
		rMax := 40.0 * float64(st.n)
		dr := rMax / steps
		sum := 0.0
		for i := 0; i <= steps; i++ {
			r := float64(i) * dr
			w := 1.0
			if i == 0 || i == steps {
				w = 0.5
			}
			sum += w * RadialProbability(r, st.n, st.l) * dr
		}
		assert.InDelta(t, 1.0, sum, 1e-4, "n=%d l=%d", st.n, st.l)
	}
}

func TestRadialProbability_PeakOf1s(t *testing.T) {
	// The 1s radial probability peaks at exactly one Bohr radius.
	peak := RadialProbability(1, 1, 0)
	assert.Greater(t, peak, RadialProbability(0.8, 1, 0))
	assert.Greater(t, peak, RadialProbability(1.2, 1, 0))
}
