package dataset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// berylliumLog mimics the shape of an OpenMX .alog file: scalar keys,
// the occupied-electrons block (the dataset's own spelling), per-shell
// eigenvalues, and the radial wave function table with one amplitude
// column per l.
const berylliumLog = `
***  Input data  ***

total.electron      4.0
valence.electron    2.0

<ocupied.electrons
 1  2.0
 2  2.0
ocupied.electrons>

***  Eigenvalues (Hartree)  ***

n= 1 l= 0 -3.856411
n= 2 l= 0 -0.205744

***  Radial wave functions  ***

n= 1
    1  0.000000e+00  3.200000e+00
    2  5.000000e-01  1.500000e+00
    3  1.000000e+00  6.000000e-01
    4  2.000000e+00  9.000000e-02
n= 2
    1  0.000000e+00 -8.000000e-01
    2  5.000000e-01 -2.000000e-01
    3  1.000000e+00  2.500000e-01
    4  2.000000e+00  3.100000e-01

***  Charge density  ***
`

func TestParseLDA(t *testing.T) {
	elem, err := ParseLDA(berylliumLog, "Be")
	require.NoError(t, err)

	assert.Equal(t, "Be", elem.Symbol)
	assert.Equal(t, 4.0, elem.TotalElectrons)
	assert.Equal(t, 2.0, elem.ValenceElectrons)
	assert.Equal(t, 2.0, elem.RMax)

	require.Len(t, elem.Orbitals, 2)
	assert.Equal(t, "1s", elem.Orbitals[0].Label)
	assert.Equal(t, "2s", elem.Orbitals[1].Label)
	assert.Equal(t, []float64{0, 0.5, 1, 2}, elem.Orbitals[0].R)
	assert.Equal(t, []float64{3.2, 1.5, 0.6, 0.09}, elem.Orbitals[0].F)
	assert.Equal(t, []float64{-0.8, -0.2, 0.25, 0.31}, elem.Orbitals[1].F)

	assert.Equal(t, 2.0, elem.Occupancy[NL{N: 1, L: 0}])
	assert.Equal(t, 2.0, elem.Occupancy[NL{N: 2, L: 0}])
	assert.InDelta(t, -3.856411, elem.Eigenvalues[NL{N: 1, L: 0}], 1e-12)
	assert.InDelta(t, -0.205744, elem.Eigenvalues[NL{N: 2, L: 0}], 1e-12)
}

func TestParseLDA_MultipleLColumns(t *testing.T) {
	log := `
total.electron     10.0
valence.electron    8.0

<ocupied.electrons
 1  2.0
 2  2.0  6.0
ocupied.electrons>

Radial wave functions
n= 2
    1  0.0  1.00  0.50
    2  1.0  0.40  0.80
    3  3.0  0.05  0.20
Charge density
`
	elem, err := ParseLDA(log, "Ne")
	require.NoError(t, err)

	// Two amplitude columns under one shell header give 2s and 2p.
	require.Len(t, elem.Orbitals, 2)
	assert.Equal(t, 0, elem.Orbitals[0].L)
	assert.Equal(t, 1, elem.Orbitals[1].L)
	assert.Equal(t, "2p", elem.Orbitals[1].Label)
	assert.Equal(t, []float64{0.5, 0.8, 0.2}, elem.Orbitals[1].F)
	assert.Equal(t, 6.0, elem.Occupancy[NL{N: 2, L: 1}])
	assert.Equal(t, 3.0, elem.RMax)
}

func TestParseLDA_MissingValenceCountFallsBackToTotal(t *testing.T) {
	log := `
total.electron      2.0

Radial wave functions
n= 1
    1  0.0  1.0
    2  1.0  0.5
Charge density
`
	elem, err := ParseLDA(log, "He")
	require.NoError(t, err)
	assert.Equal(t, 2.0, elem.ValenceElectrons)
}

func TestParseLDA_MissingRadialSection(t *testing.T) {
	_, err := ParseLDA("total.electron 2.0\n", "He")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "radial wave function")
}

func TestParseLDA_NoDataRows(t *testing.T) {
	log := `
Radial wave functions
n= 1
Charge density
`
	_, err := ParseLDA(log, "H")
	require.Error(t, err)
}
