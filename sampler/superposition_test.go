package sampler

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomview/atomview/density"
)

func superposition1s2p(mix, tm, deltaE float64) density.Superposition {
	return density.Superposition{
		A:      hydrogenicOrbital(1, 0, 0, 30),
		B:      hydrogenicOrbital(2, 1, 0, 30),
		Mix:    mix,
		Time:   tm,
		DeltaE: deltaE,
	}
}

func TestDrawSuperposition_SetMetadata(t *testing.T) {
	spec := superposition1s2p(0.5, 0, 0.375)

	set, err := Draw(spec, Options{Count: 200, MaxRadius: 30}, NewRNG(3))
	require.NoError(t, err)

	assert.Equal(t, density.ModeSuperposition, set.Mode)
	assert.Equal(t, 0.375, set.DeltaE)
	assert.False(t, set.Static)
}

func TestDrawSuperposition_StaticFlag(t *testing.T) {
	// Degenerate levels never evolve in time.
	spec := density.Superposition{
		A:      hydrogenicOrbital(2, 0, 0, 30),
		B:      hydrogenicOrbital(2, 1, 0, 30),
		Mix:    0.5,
		DeltaE: 0,
	}

	set, err := Draw(spec, Options{Count: 100, MaxRadius: 30}, NewRNG(3))
	require.NoError(t, err)
	assert.True(t, set.Static)
}

func TestDrawSuperposition_PhaseIsFinite(t *testing.T) {
	spec := superposition1s2p(0.5, 1.0, 0.375)

	set, err := Draw(spec, Options{Count: 500, MaxRadius: 30}, NewRNG(11))
	require.NoError(t, err)
	require.NotEmpty(t, set.Samples)

	for _, s := range set.Samples {
		require.False(t, math.IsNaN(s.Phase))
		assert.GreaterOrEqual(t, s.Phase, -math.Pi)
		assert.LessOrEqual(t, s.Phase, math.Pi)
	}
}

func TestDrawSuperposition_TimeEvolution(t *testing.T) {
	// A 1s/2p pair interferes through the cross term, shifting density
	// along z as the relative phase advances. Half a beat period flips
	// the lobe, so the mean z changes sign between the two snapshots.
	deltaE := 0.375
	halfPeriod := math.Pi / deltaE

	meanZ := func(tm float64) float64 {
		spec := superposition1s2p(0.5, tm, deltaE)
		set, err := Draw(spec, Options{Count: 20000, MaxRadius: 30}, NewRNG(21))
		require.NoError(t, err)
		require.NotEmpty(t, set.Samples)
		sum := 0.0
		for _, s := range set.Samples {
			sum += s.Z
		}
		return sum / float64(len(set.Samples))
	}

	z0 := meanZ(0)
	z1 := meanZ(halfPeriod)
	assert.Greater(t, math.Abs(z0), 0.1)
	assert.InDelta(t, -z0, z1, 0.1)
}

func TestDrawSuperposition_SignsTrackRealPart(t *testing.T) {
	spec := superposition1s2p(0.5, 0, 0.375)

	set, err := Draw(spec, Options{Count: 2000, MaxRadius: 30, WithSigns: true}, NewRNG(5))
	require.NoError(t, err)
	require.NotEmpty(t, set.Samples)

	for _, s := range set.Samples {
		if s.Weight > 0 {
			assert.Equal(t, int8(1), s.Sign)
		} else if s.Weight < 0 {
			assert.Equal(t, int8(-1), s.Sign)
		}
	}
}

func TestDrawSuperposition_EmptyComponent(t *testing.T) {
	flat, err := density.NewRadialTable(
		[]float64{0, 1, 2}, []float64{0, 0, 0}, density.KindR)
	require.NoError(t, err)

	spec := density.Superposition{
		A:      density.Orbital{N: 1, L: 0, Radial: flat, Weight: 1},
		B:      hydrogenicOrbital(2, 1, 0, 30),
		Mix:    0.5,
		DeltaE: 0.375,
	}

	set, err := Draw(spec, Options{Count: 100, MaxRadius: 30}, NewRNG(1))
	require.NoError(t, err)
	assert.Empty(t, set.Samples)
}
