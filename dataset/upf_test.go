package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atomview/atomview/errors"
)

const carbonUPF = `<UPF version="2.0.1">
  <PP_MESH>
    <PP_R type="real" size="4">
      0.000000E+00 5.000000E-01
      1.000000E+00 2.000000E+00
    </PP_R>
  </PP_MESH>
  <PP_PSWFC>
    <PP_CHI.1 type="real" size="4" label="2S" l="0">
      0.000000E+00 4.000000E-01
      6.000000E-01 1.000000E-01
    </PP_CHI.1>
    <PP_CHI.2 type="real" size="4" label="2P" l="1">
      0.000000E+00 2.000000E-01
      5.000000E-01 3.000000E-01
    </PP_CHI.2>
  </PP_PSWFC>
</UPF>`

func TestParseUPF(t *testing.T) {
	elem, err := ParseUPF(strings.NewReader(carbonUPF), "C")
	require.NoError(t, err)

	assert.Equal(t, "C", elem.Symbol)
	assert.Equal(t, 2.0, elem.RMax)
	require.Len(t, elem.Orbitals, 2)

	s := elem.Orbitals[0]
	assert.Equal(t, "2S", s.Label)
	assert.Equal(t, 2, s.N)
	assert.Equal(t, 0, s.L)
	assert.Equal(t, []float64{0, 0.5, 1, 2}, s.R)
	assert.Equal(t, []float64{0, 0.4, 0.6, 0.1}, s.F)

	p := elem.Orbitals[1]
	assert.Equal(t, "2P", p.Label)
	assert.Equal(t, 2, p.N)
	assert.Equal(t, 1, p.L)
	assert.Equal(t, []float64{0, 0.2, 0.5, 0.3}, p.F)
}

func TestParseUPF_MissingWavefunctions(t *testing.T) {
	doc := `<UPF><PP_MESH><PP_R>0.0 1.0</PP_R></PP_MESH></UPF>`
	_, err := ParseUPF(strings.NewReader(doc), "X")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedState))
}

func TestParseUPF_SkipsChiWithoutL(t *testing.T) {
	doc := `<UPF>
  <PP_R>0.0 1.0 2.0</PP_R>
  <PP_CHI.1 label="2S">0.1 0.2 0.3</PP_CHI.1>
  <PP_CHI.2 label="2P" l="1">0.0 0.4 0.2</PP_CHI.2>
</UPF>`
	elem, err := ParseUPF(strings.NewReader(doc), "C")
	require.NoError(t, err)
	require.Len(t, elem.Orbitals, 1)
	assert.Equal(t, 1, elem.Orbitals[0].L)
}

func TestParsePrincipalN(t *testing.T) {
	assert.Equal(t, 3, parsePrincipalN("3S"))
	assert.Equal(t, 4, parsePrincipalN("4d"))
	assert.Equal(t, 0, parsePrincipalN("S"))
	assert.Equal(t, 0, parsePrincipalN(""))
}
