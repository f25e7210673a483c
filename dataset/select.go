package dataset

import (
	"math"
	"sort"
)

// WeightedOrbital pairs an orbital with its electron occupancy.
type WeightedOrbital struct {
	Orbital   Orbital
	Occupancy float64
}

// SelectOrbital finds the best available orbital for a requested
// (n, l): the exact match if present, otherwise the first orbital with
// the same l, otherwise the first orbital at all. exact reports
// whether the request was matched precisely.
func SelectOrbital(orbitals []Orbital, n, l int) (orb Orbital, exact, ok bool) {
	var sameL *Orbital
	for i := range orbitals {
		o := &orbitals[i]
		if o.L == l && o.N == n {
			return *o, true, true
		}
		if o.L == l && sameL == nil {
			sameL = o
		}
	}
	if sameL != nil {
		return *sameL, false, true
	}
	if len(orbitals) > 0 {
		return orbitals[0], false, true
	}
	return Orbital{}, false, false
}

// SelectPair picks two distinct orbitals for a superposition. When the
// second request resolves to the same orbital as the first, the first
// differing orbital in the dataset substitutes for it.
func (e *LDAElement) SelectPair(n1, l1, n2, l2 int) (a Orbital, exactA bool, b Orbital, exactB bool, ok bool) {
	a, exactA, ok = SelectOrbital(e.Orbitals, n1, l1)
	if !ok {
		return
	}
	b, exactB, ok = SelectOrbital(e.Orbitals, n2, l2)
	if ok && (b.N != a.N || b.L != a.L) {
		return
	}
	for _, o := range e.Orbitals {
		if o.N != a.N || o.L != a.L {
			return a, exactA, o, false, true
		}
	}
	return a, exactA, Orbital{}, false, false
}

// Occupied returns the orbitals carrying electrons, in dataset order.
func (e *LDAElement) Occupied() []WeightedOrbital {
	var out []WeightedOrbital
	for _, orb := range e.Orbitals {
		if occ := e.Occupancy[NL{N: orb.N, L: orb.L}]; occ > 0 {
			out = append(out, WeightedOrbital{Orbital: orb, Occupancy: occ})
		}
	}
	return out
}

// ValenceShell selects the outermost occupied orbitals until the
// element's valence electron count is exhausted, ordering by
// eigenvalue (highest first) when eigenvalues are available and by
// (n, l) otherwise. A non-empty note explains an empty selection.
func (e *LDAElement) ValenceShell() (shell []WeightedOrbital, note string) {
	type ranked struct {
		WeightedOrbital
		energy float64
	}
	var occupied []ranked
	for _, w := range e.Occupied() {
		energy := math.Inf(-1)
		if ev, ok := e.Eigenvalues[NL{N: w.Orbital.N, L: w.Orbital.L}]; ok {
			energy = ev
		}
		occupied = append(occupied, ranked{WeightedOrbital: w, energy: energy})
	}
	if len(occupied) == 0 {
		return nil, "no occupied orbitals in dataset"
	}

	useEnergy := false
	for _, o := range occupied {
		if !math.IsInf(o.energy, -1) {
			useEnergy = true
			break
		}
	}
	sort.SliceStable(occupied, func(i, j int) bool {
		if useEnergy {
			return occupied[i].energy > occupied[j].energy
		}
		a, b := occupied[i].Orbital, occupied[j].Orbital
		if a.N != b.N {
			return a.N > b.N
		}
		return a.L > b.L
	})

	remaining := e.ValenceElectrons
	if remaining <= 0 {
		return nil, "valence electron count missing"
	}
	for _, o := range occupied {
		if remaining <= 0 {
			break
		}
		shell = append(shell, o.WeightedOrbital)
		remaining -= o.Occupancy
	}
	return shell, ""
}

// AvailableOrbitals lists occupied orbital labels for client pickers.
func (e *LDAElement) AvailableOrbitals() []Orbital {
	var out []Orbital
	for _, w := range e.Occupied() {
		out = append(out, w.Orbital)
	}
	return out
}
