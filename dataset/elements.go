// Package dataset loads and serves the tabulated radial-wavefunction
// datasets (OpenMX LDA logs and PSLibrary UPF pseudopotential files)
// that the density engine consumes. Parsed elements live in an
// in-memory store that is safe for concurrent readers; reloads replace
// entries by atomic swap, never by in-place mutation.
package dataset

import "github.com/atomview/atomview/errors"

// ErrUnsupportedState indicates the requested element or orbital has
// no data in the available datasets and no hydrogenic fallback
// applies.
var ErrUnsupportedState = errors.New("dataset: element or state not available")

// elementSymbols lists the periodic table in atomic-number order.
var elementSymbols = [...]string{
	"H", "He", "Li", "Be", "B", "C", "N", "O", "F", "Ne",
	"Na", "Mg", "Al", "Si", "P", "S", "Cl", "Ar", "K", "Ca",
	"Sc", "Ti", "V", "Cr", "Mn", "Fe", "Co", "Ni", "Cu", "Zn",
	"Ga", "Ge", "As", "Se", "Br", "Kr", "Rb", "Sr", "Y", "Zr",
	"Nb", "Mo", "Tc", "Ru", "Rh", "Pd", "Ag", "Cd", "In", "Sn",
	"Sb", "Te", "I", "Xe", "Cs", "Ba", "La", "Ce", "Pr", "Nd",
	"Pm", "Sm", "Eu", "Gd", "Tb", "Dy", "Ho", "Er", "Tm", "Yb",
	"Lu", "Hf", "Ta", "W", "Re", "Os", "Ir", "Pt", "Au", "Hg",
	"Tl", "Pb", "Bi", "Po", "At", "Rn", "Fr", "Ra", "Ac", "Th",
	"Pa", "U", "Np", "Pu", "Am", "Cm", "Bk", "Cf", "Es", "Fm",
	"Md", "No", "Lr", "Rf", "Db", "Sg", "Bh", "Hs", "Mt", "Ds",
	"Rg", "Cn", "Nh", "Fl", "Mc", "Lv", "Ts", "Og",
}

// SymbolForZ returns the element symbol for an atomic number, or
// false when Z is outside the periodic table.
func SymbolForZ(z int) (string, bool) {
	if z < 1 || z > len(elementSymbols) {
		return "", false
	}
	return elementSymbols[z-1], true
}
