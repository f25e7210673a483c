// Package density composes radial and angular models into the sampled
// probability densities: single orbitals, occupancy-weighted LDA sums,
// and two-state superpositions.
package density

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"

	"github.com/atomview/atomview/errors"
	"github.com/atomview/atomview/physics"
)

// RadialKind says what a radial table stores, which determines the
// weight used when building the radial probability mass.
type RadialKind int

const (
	// KindR tables store R(r); the radial probability is r^2 R^2.
	KindR RadialKind = iota
	// KindChi tables store chi(r) = r*R(r), as found in UPF
	// pseudo-wavefunction blocks; the radial probability is chi^2.
	KindChi
)

// RadialTable is a read-only view of a tabulated radial function on an
// increasing mesh. The mesh is owned by the dataset layer; the table
// never mutates it.
type RadialTable struct {
	R    []float64
	F    []float64
	Kind RadialKind

	pl interp.PiecewiseLinear
}

// NewRadialTable wraps a dataset mesh. The mesh must hold at least two
// strictly increasing points.
func NewRadialTable(r, f []float64, kind RadialKind) (RadialTable, error) {
	t := RadialTable{R: r, F: f, Kind: kind}
	if len(r) < 2 || len(r) != len(f) {
		return RadialTable{}, errors.Newf(
			"density: radial table needs matching meshes of >= 2 points, got %d/%d",
			len(r), len(f))
	}
	if err := t.pl.Fit(r, f); err != nil {
		return RadialTable{}, errors.Wrap(err, "density: radial table mesh not increasing")
	}
	return t, nil
}

// NewHydrogenicTable tabulates the closed-form hydrogenic R_nl on a
// uniform grid of the given resolution over [0, maxRadius]. Sampling
// superpositions and CDF construction both work from such grids, the
// same way tabulated datasets are consumed.
func NewHydrogenicTable(n, l int, maxRadius float64, steps int) RadialTable {
	if steps < 2 {
		steps = 2
	}
	rs := make([]float64, steps)
	floats.Span(rs, 0, maxRadius)
	fs := make([]float64, steps)
	for i, r := range rs {
		fs[i] = physics.RadialWavefunction(r, n, l)
	}
	t, _ := NewRadialTable(rs, fs, KindR)
	return t
}

// Eval returns the radial amplitude R(r). Outside the table's mesh the
// amplitude is zero. Chi-kind tables are converted back to R = chi/r.
func (t RadialTable) Eval(r float64) float64 {
	n := len(t.R)
	if n == 0 || r < t.R[0] || r > t.R[n-1] {
		return 0
	}
	v := t.pl.Predict(r)
	if t.Kind == KindChi {
		if r <= 1e-8 {
			return 0
		}
		return v / r
	}
	return v
}

// MaxRadius reports the outer edge of the mesh.
func (t RadialTable) MaxRadius() float64 {
	if len(t.R) == 0 {
		return 0
	}
	return t.R[len(t.R)-1]
}

// WeightAt is the r-dependent factor turning F^2 into the radial
// probability integrand: r^2 for R-kind tables, 1 for chi-kind.
func (t RadialTable) WeightAt(r float64) float64 {
	if t.Kind == KindChi {
		return 1
	}
	return r * r
}
