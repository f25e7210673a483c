package density

import (
	"strings"

	"github.com/atomview/atomview/physics"
)

// Mode names the four density families the sampling endpoint exposes.
type Mode int

const (
	ModeTotal Mode = iota
	ModeValence
	ModeOrbital
	ModeSuperposition
)

// ParseMode maps a query string to a Mode, defaulting to total.
func ParseMode(value string) Mode {
	switch strings.ToLower(value) {
	case "valence":
		return ModeValence
	case "orbital":
		return ModeOrbital
	case "superposition":
		return ModeSuperposition
	default:
		return ModeTotal
	}
}

// String returns the query-parameter spelling of the mode.
func (m Mode) String() string {
	switch m {
	case ModeValence:
		return "valence"
	case ModeOrbital:
		return "orbital"
	case ModeSuperposition:
		return "superposition"
	default:
		return "total"
	}
}

// Source identifies where radial data came from.
type Source int

const (
	SourceHydrogenic Source = iota
	SourceLDA
	SourcePSLibrary
)

// String returns the dataset identifier reported in responses.
func (s Source) String() string {
	switch s {
	case SourceLDA:
		return "openmx_lda"
	case SourcePSLibrary:
		return "pslibrary"
	default:
		return "hydrogenic"
	}
}

// Orbital is one radial term with its angular quantum numbers and a
// non-negative weight (occupancy for dataset sums, 1 for single
// orbitals).
type Orbital struct {
	N, L, M int
	Radial  RadialTable
	Weight  float64
	Label   string
}

// Spec is the closed set of density variants. Exactly one variant is
// active per sampling request; specs are request-scoped values.
type Spec interface {
	Mode() Mode
}

// Total is the occupancy-weighted, spherically averaged density of all
// occupied orbitals of an element.
type Total struct {
	Orbitals []Orbital
}

// Mode implements Spec.
func (Total) Mode() Mode { return ModeTotal }

// Valence restricts the occupancy-weighted sum to the valence shell.
// Spherical averages uniformly over angles; otherwise each term keeps
// its |Y_l0|^2 lobe shape. Tabulated data is not m-resolved, so lobe
// projection deliberately forces m = 0 for every term.
type Valence struct {
	Orbitals  []Orbital
	Spherical bool
}

// Mode implements Spec.
func (Valence) Mode() Mode { return ModeValence }

// SingleOrbital is the density of one orbital in the chosen angular
// basis.
type SingleOrbital struct {
	Orbital Orbital
	Basis   physics.Basis
}

// Mode implements Spec.
func (SingleOrbital) Mode() Mode { return ModeOrbital }

// Amplitude returns the signed wavefunction amplitude at a spherical
// coordinate. Non-negative in the complex basis; signed in the real
// basis, which is what gives lobes their phase coloring.
func (o SingleOrbital) Amplitude(r, theta, phi float64) float64 {
	return o.Orbital.Radial.Eval(r) *
		physics.AngularAmplitude(theta, phi, o.Orbital.L, o.Orbital.M, o.Basis)
}

// Density returns |psi|^2 at a spherical coordinate.
func (o SingleOrbital) Density(r, theta, phi float64) float64 {
	a := o.Amplitude(r, theta, phi)
	return a * a
}
