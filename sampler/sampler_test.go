package sampler

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomview/atomview/density"
	"github.com/atomview/atomview/physics"
)

func hydrogenicOrbital(n, l, m int, maxRadius float64) density.Orbital {
	return density.Orbital{
		N: n, L: l, M: m,
		Radial: density.NewHydrogenicTable(n, l, maxRadius, 800),
		Weight: 1,
	}
}

func TestDraw_OptionValidation(t *testing.T) {
	spec := density.SingleOrbital{Orbital: hydrogenicOrbital(1, 0, 0, 20)}

	_, err := Draw(spec, Options{Count: 0, MaxRadius: 20}, nil)
	require.Error(t, err)

	_, err = Draw(spec, Options{Count: 100, MaxRadius: 0}, nil)
	require.Error(t, err)

	_, err = Draw(spec, Options{Count: 100, MaxRadius: -1}, nil)
	require.Error(t, err)
}

func TestDraw_Deterministic(t *testing.T) {
	spec := density.SingleOrbital{Orbital: hydrogenicOrbital(2, 1, 0, 25)}
	opts := Options{Count: 500, MaxRadius: 25}

	a, err := Draw(spec, opts, NewRNG(42))
	require.NoError(t, err)
	b, err := Draw(spec, opts, NewRNG(42))
	require.NoError(t, err)

	require.Equal(t, len(a.Samples), len(b.Samples))
	for i := range a.Samples {
		// Phase is NaN outside superpositions, so compare field-wise.
		assert.Equal(t, a.Samples[i].X, b.Samples[i].X)
		assert.Equal(t, a.Samples[i].Y, b.Samples[i].Y)
		assert.Equal(t, a.Samples[i].Z, b.Samples[i].Z)
		assert.Equal(t, a.Samples[i].Weight, b.Samples[i].Weight)
	}
}

func TestDraw_CountNeverExceeded(t *testing.T) {
	spec := density.SingleOrbital{Orbital: hydrogenicOrbital(3, 2, 1, 40)}
	opts := Options{Count: 1000, MaxRadius: 40}

	set, err := Draw(spec, opts, NewRNG(7))
	require.NoError(t, err)
	assert.LessOrEqual(t, len(set.Samples), opts.Count)
	assert.Equal(t, opts.Count, len(set.Samples)+set.Dropped)
	assert.Equal(t, opts.Count, set.Requested)
}

func TestDraw_BoundedByMaxRadius(t *testing.T) {
	spec := density.SingleOrbital{Orbital: hydrogenicOrbital(3, 0, 0, 15)}
	set, err := Draw(spec, Options{Count: 2000, MaxRadius: 15}, NewRNG(3))
	require.NoError(t, err)
	require.NotEmpty(t, set.Samples)

	for _, s := range set.Samples {
		r := math.Sqrt(s.X*s.X + s.Y*s.Y + s.Z*s.Z)
		assert.LessOrEqual(t, r, 15.0+1e-9)
	}
}

// A table that is zero everywhere has no mass to sample; the draw
// returns an empty set rather than failing.
func TestDraw_ZeroDensityEmptySet(t *testing.T) {
	table, err := density.NewRadialTable(
		[]float64{0, 1, 2}, []float64{0, 0, 0}, density.KindR)
	require.NoError(t, err)
	spec := density.SingleOrbital{
		Orbital: density.Orbital{N: 1, L: 0, Radial: table, Weight: 1},
	}

	set, err := Draw(spec, Options{Count: 100, MaxRadius: 2}, NewRNG(1))
	require.NoError(t, err)
	assert.Empty(t, set.Samples)
}

// End to end: the sampled 1s radial distribution must match
// 4 r^2 e^(-2r). Its mean radius is 1.5 Bohr radii.
func TestDraw_1sRadialDistribution(t *testing.T) {
	spec := density.SingleOrbital{Orbital: hydrogenicOrbital(1, 0, 0, 20)}
	set, err := Draw(spec, Options{Count: 40000, MaxRadius: 20}, NewRNG(11))
	require.NoError(t, err)
	require.NotEmpty(t, set.Samples)

	sum := 0.0
	for _, s := range set.Samples {
		sum += math.Sqrt(s.X*s.X + s.Y*s.Y + s.Z*s.Z)
	}
	mean := sum / float64(len(set.Samples))
	assert.InDelta(t, 1.5, mean, 0.05)
}

// A p_z orbital in the complex basis concentrates along the z axis:
// the mean of cos^2(theta) over samples is 3/5 for |Y_10|^2 weighting.
func TestDraw_2pAngularDistribution(t *testing.T) {
	spec := density.SingleOrbital{Orbital: hydrogenicOrbital(2, 1, 0, 30)}
	set, err := Draw(spec, Options{Count: 40000, MaxRadius: 30}, NewRNG(13))
	require.NoError(t, err)
	require.NotEmpty(t, set.Samples)

	sum := 0.0
	for _, s := range set.Samples {
		r2 := s.X*s.X + s.Y*s.Y + s.Z*s.Z
		sum += s.Z * s.Z / r2
	}
	mean := sum / float64(len(set.Samples))
	assert.InDelta(t, 0.6, mean, 0.02)
}

func TestDraw_RealBasisSigns(t *testing.T) {
	spec := density.SingleOrbital{
		Orbital: hydrogenicOrbital(2, 1, 0, 30),
		Basis:   physics.BasisReal,
	}
	set, err := Draw(spec, Options{Count: 5000, MaxRadius: 30, WithSigns: true}, NewRNG(5))
	require.NoError(t, err)
	require.NotEmpty(t, set.Samples)

	pos, neg := 0, 0
	for _, s := range set.Samples {
		switch {
		case s.Sign > 0:
			pos++
			assert.GreaterOrEqual(t, s.Weight, 0.0)
			// Positive p_z lobe lives in the upper half space.
			assert.GreaterOrEqual(t, s.Z, -1e-9)
		case s.Sign < 0:
			neg++
			assert.Less(t, s.Weight, 0.0)
			assert.LessOrEqual(t, s.Z, 1e-9)
		}
	}
	// Both lobes are populated roughly evenly.
	assert.Greater(t, pos, len(set.Samples)/4)
	assert.Greater(t, neg, len(set.Samples)/4)
}

func TestDraw_SamplePhaseNaNOutsideSuperposition(t *testing.T) {
	spec := density.SingleOrbital{Orbital: hydrogenicOrbital(1, 0, 0, 20)}
	set, err := Draw(spec, Options{Count: 50, MaxRadius: 20}, NewRNG(2))
	require.NoError(t, err)
	for _, s := range set.Samples {
		assert.True(t, math.IsNaN(s.Phase))
	}
}

func TestSet_ScaleCoordinates(t *testing.T) {
	set := &Set{
		Samples:   []Sample{{X: 2, Y: -4, Z: 6}},
		MaxRadius: 20,
	}
	set.ScaleCoordinates(0.5)
	assert.Equal(t, Sample{X: 1, Y: -2, Z: 3}, set.Samples[0])
	assert.Equal(t, 10.0, set.MaxRadius)
}

func TestNewRNG_SeedZeroPolicy(t *testing.T) {
	a := NewRNG(0)
	b := NewRNG(0)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}
	// Distinct explicit seeds give distinct streams.
	assert.NotEqual(t, NewRNG(1).Float64(), NewRNG(99).Float64())
}
