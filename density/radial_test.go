package density

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomview/atomview/physics"
)

func TestNewRadialTable_Validation(t *testing.T) {
	_, err := NewRadialTable([]float64{1}, []float64{2}, KindR)
	require.Error(t, err)

	_, err = NewRadialTable([]float64{0, 1, 2}, []float64{1, 2}, KindR)
	require.Error(t, err)

	// Non-increasing mesh.
	_, err = NewRadialTable([]float64{0, 2, 1}, []float64{1, 2, 3}, KindR)
	require.Error(t, err)

	table, err := NewRadialTable([]float64{0, 1, 2}, []float64{1, 2, 3}, KindR)
	require.NoError(t, err)
	assert.Equal(t, 2.0, table.MaxRadius())
}

func TestRadialTable_EvalInterpolates(t *testing.T) {
	table, err := NewRadialTable([]float64{0, 1, 2}, []float64{0, 2, 0}, KindR)
	require.NoError(t, err)

	assert.InDelta(t, 0.0, table.Eval(0), 1e-12)
	assert.InDelta(t, 1.0, table.Eval(0.5), 1e-12)
	assert.InDelta(t, 2.0, table.Eval(1), 1e-12)
	assert.InDelta(t, 1.0, table.Eval(1.5), 1e-12)
}

func TestRadialTable_ZeroOutsideMesh(t *testing.T) {
	table, err := NewRadialTable([]float64{0.5, 1, 2}, []float64{1, 1, 1}, KindR)
	require.NoError(t, err)

	assert.Zero(t, table.Eval(0.4))
	assert.Zero(t, table.Eval(2.1))
	assert.NotZero(t, table.Eval(1.5))
}

func TestRadialTable_ChiKind(t *testing.T) {
	// chi(r) = r means R(r) = 1 everywhere on the mesh.
	table, err := NewRadialTable([]float64{0, 1, 2}, []float64{0, 1, 2}, KindChi)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, table.Eval(0.5), 1e-12)
	assert.InDelta(t, 1.0, table.Eval(1.7), 1e-12)
	// The axis singularity is cut off rather than divided through.
	assert.Zero(t, table.Eval(0))

	assert.Equal(t, 1.0, table.WeightAt(3.0))
}

func TestRadialTable_WeightAt(t *testing.T) {
	table, err := NewRadialTable([]float64{0, 1}, []float64{1, 1}, KindR)
	require.NoError(t, err)
	assert.Equal(t, 4.0, table.WeightAt(2))
}

func TestNewHydrogenicTable_MatchesClosedForm(t *testing.T) {
	table := NewHydrogenicTable(2, 1, 20, 2000)

	for _, r := range []float64{0.5, 2, 5, 11.3} {
		want := physics.RadialWavefunction(r, 2, 1)
		assert.InDelta(t, want, table.Eval(r), 1e-4, "r=%v", r)
	}
	assert.InDelta(t, 20.0, table.MaxRadius(), 1e-9)
}

func TestNewHydrogenicTable_DegenerateSteps(t *testing.T) {
	// A step count below two still yields a usable two-point mesh.
	table := NewHydrogenicTable(1, 0, 10, 0)
	assert.NotZero(t, table.Eval(0))
	assert.Equal(t, 10.0, table.MaxRadius())
}
