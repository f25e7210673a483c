package sampler

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomview/atomview/density"
	"github.com/atomview/atomview/physics"
)

func TestBuildRadialCDF_Monotone(t *testing.T) {
	table := density.NewHydrogenicTable(2, 0, 30, 500)
	cdf := buildRadialCDF(table, 30)
	require.False(t, cdf.empty())

	assert.Equal(t, 0.0, cdf.cum[0])
	last := 0.0
	for _, c := range cdf.cum {
		assert.GreaterOrEqual(t, c, last)
		last = c
	}
	assert.InDelta(t, 1.0, cdf.cum[len(cdf.cum)-1], 1e-12)
}

func TestBuildRadialCDF_ExcludesMassBeyondBound(t *testing.T) {
	table := density.NewHydrogenicTable(1, 0, 40, 800)

	full := buildRadialCDF(table, 40)
	truncated := buildRadialCDF(table, 2)
	require.False(t, truncated.empty())

	// About 76% of the 1s mass sits inside two Bohr radii.
	assert.Less(t, truncated.mass, full.mass)

	rng := NewRNG(9)
	for i := 0; i < 2000; i++ {
		r := truncated.sample(rng)
		assert.LessOrEqual(t, r, 2.0+1e-9)
	}
}

func TestBuildRadialCDF_ZeroMass(t *testing.T) {
	table, err := density.NewRadialTable(
		[]float64{0, 1, 2}, []float64{0, 0, 0}, density.KindR)
	require.NoError(t, err)
	assert.True(t, buildRadialCDF(table, 2).empty())

	short := density.RadialTable{}
	assert.True(t, buildRadialCDF(short, 2).empty())
}

func TestRadialCDF_SampleMatchesDistribution(t *testing.T) {
	table := density.NewHydrogenicTable(1, 0, 20, 1000)
	cdf := buildRadialCDF(table, 20)
	require.False(t, cdf.empty())

	rng := NewRNG(17)
	const n = 50000
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += cdf.sample(rng)
	}
	assert.InDelta(t, 1.5, sum/n, 0.02)
}

func TestMaxAngularDensity_KnownBounds(t *testing.T) {
	// |Y_00|^2 = 1/(4 pi) everywhere.
	assert.InDelta(t, 1/(4*math.Pi), maxAngularDensity(0, 0, physics.BasisComplex), 1e-6)

	// |Y_10|^2 peaks at 3/(4 pi) on the poles.
	assert.InDelta(t, 3/(4*math.Pi), maxAngularDensity(1, 0, physics.BasisComplex), 1e-4)

	// The real-basis m != 0 bound doubles the complex scan maximum.
	c := maxAngularDensity(2, 1, physics.BasisComplex)
	r := maxAngularDensity(2, 1, physics.BasisReal)
	assert.InDelta(t, 2*c, r, 1e-12)
}

func TestMaxAngularDensity_Floor(t *testing.T) {
	// The bound never collapses to zero, keeping acceptance ratios
	// finite.
	assert.GreaterOrEqual(t, maxAngularDensity(0, 0, physics.BasisComplex), 1e-8)
}
