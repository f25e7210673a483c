// Package physics implements the quantum mechanics of hydrogen-like
// atoms: quantum number validation, the closed-form hydrogenic radial
// wavefunction, and complex/real spherical harmonics.
//
// All distances are measured in Bohr radii and all energies in Hartree
// atomic units, matching the conventions of the tabulated datasets the
// rest of the system consumes.
package physics

import (
	"fmt"

	"github.com/atomview/atomview/errors"
)

// ErrInvalidQuantumState indicates quantum numbers outside the allowed
// ranges (n >= 1, 0 <= l < n, -l <= m <= l, Z >= 1).
var ErrInvalidQuantumState = errors.New("physics: invalid quantum state")

// QuantumState identifies a single orbital of a hydrogen-like atom.
type QuantumState struct {
	// N is the principal quantum number (1, 2, 3, ...).
	N int
	// L is the azimuthal quantum number (0 to N-1).
	L int
	// M is the magnetic quantum number (-L to L).
	M int
	// Z is the atomic number the state belongs to.
	Z int
}

// NewState validates the quantum numbers and returns the state.
// Z defaults to 1 when zero.
func NewState(n, l, m, z int) (QuantumState, error) {
	if z == 0 {
		z = 1
	}
	s := QuantumState{N: n, L: l, M: m, Z: z}
	if err := s.Validate(); err != nil {
		return QuantumState{}, err
	}
	return s, nil
}

// Validate checks the quantum number ranges.
func (s QuantumState) Validate() error {
	if s.N < 1 || s.L < 0 || s.L >= s.N || s.M < -s.L || s.M > s.L || s.Z < 1 {
		return errors.Wrapf(ErrInvalidQuantumState,
			"n=%d l=%d m=%d z=%d", s.N, s.L, s.M, s.Z)
	}
	return nil
}

// Energy returns the hydrogenic orbital energy E_n = -Z^2 / (2 n^2) in
// Hartree. Degenerate in l and m, as for any pure Coulomb potential.
func (s QuantumState) Energy() float64 {
	n := float64(s.N)
	z := float64(s.Z)
	return -z * z / (2 * n * n)
}

// Label returns the spectroscopic label of the state, e.g. "2p".
func (s QuantumState) Label() string {
	return fmt.Sprintf("%d%s", s.N, ShellLetter(s.L))
}

// ShellLetter maps an azimuthal quantum number to its spectroscopic
// letter (s, p, d, f, ...).
func ShellLetter(l int) string {
	letters := []string{"s", "p", "d", "f", "g", "h", "i"}
	if l >= 0 && l < len(letters) {
		return letters[l]
	}
	return "?"
}
