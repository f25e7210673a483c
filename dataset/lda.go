package dataset

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/atomview/atomview/errors"
	"github.com/atomview/atomview/physics"
)

// NL keys occupancy and eigenvalue maps by (n, l).
type NL struct {
	N, L int
}

// Orbital is one tabulated radial function. For LDA logs F holds
// R(r); for UPF files it holds chi(r) = r*R(r).
type Orbital struct {
	N, L  int
	Label string
	R     []float64
	F     []float64
}

// LDAElement is a parsed OpenMX LDA atomic calculation.
type LDAElement struct {
	Symbol           string
	Orbitals         []Orbital
	Occupancy        map[NL]float64
	Eigenvalues      map[NL]float64
	TotalElectrons   float64
	ValenceElectrons float64
	RMax             float64
}

var (
	ldaValueRe = regexp.MustCompile(`(?m)^\s*([A-Za-z.]+)\s+([0-9Ee+\-.]+)`)
	eigenRe    = regexp.MustCompile(`n=\s*(\d+)\s*l=\s*(\d+)\s*([\-0-9Ee+.]+)`)
)

// ParseLDA parses the content of an OpenMX .alog file: electron
// counts, the occupied-electrons block, per-(n,l) eigenvalues, and the
// radial wave function table.
func ParseLDA(content, symbol string) (*LDAElement, error) {
	elem := &LDAElement{
		Symbol:      symbol,
		Occupancy:   parseOccupancy(content),
		Eigenvalues: parseEigenvalues(content),
	}
	elem.TotalElectrons = extractValue(content, "total.electron")
	elem.ValenceElectrons = extractValue(content, "valence.electron")
	if elem.ValenceElectrons == 0 {
		elem.ValenceElectrons = elem.TotalElectrons
	}

	orbitals, rMax, err := parseRadialWavefunctions(content)
	if err != nil {
		return nil, errors.Wrapf(err, "dataset: LDA data for %s", symbol)
	}
	elem.Orbitals = orbitals
	elem.RMax = rMax
	return elem, nil
}

// extractValue finds "key  <number>" anywhere in the log. Returns 0
// when the key is absent.
func extractValue(content, key string) float64 {
	for _, m := range ldaValueRe.FindAllStringSubmatch(content, -1) {
		if m[1] == key {
			if v, err := strconv.ParseFloat(m[2], 64); err == nil {
				return v
			}
		}
	}
	return 0
}

// parseOccupancy reads the <ocupied.electrons ... ocupied.electrons>
// block (the dataset's own spelling): each row is n followed by
// occupancies per l.
func parseOccupancy(content string) map[NL]float64 {
	occ := make(map[NL]float64)
	inBlock := false
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "<ocupied.electrons") {
			inBlock = true
			continue
		}
		if !inBlock {
			continue
		}
		if strings.HasPrefix(trimmed, "ocupied.electrons>") {
			break
		}
		fields := strings.Fields(trimmed)
		if len(fields) < 2 {
			continue
		}
		n, err := strconv.Atoi(fields[0])
		if err != nil {
			continue
		}
		for l, field := range fields[1:] {
			if v, err := strconv.ParseFloat(field, 64); err == nil && v > 0 {
				occ[NL{N: n, L: l}] = v
			}
		}
	}
	return occ
}

func parseEigenvalues(content string) map[NL]float64 {
	eigen := make(map[NL]float64)
	for _, m := range eigenRe.FindAllStringSubmatch(content, -1) {
		n, err1 := strconv.Atoi(m[1])
		l, err2 := strconv.Atoi(m[2])
		e, err3 := strconv.ParseFloat(m[3], 64)
		if err1 == nil && err2 == nil && err3 == nil {
			eigen[NL{N: n, L: l}] = e
		}
	}
	return eigen
}

// parseRadialWavefunctions reads the block between "Radial wave
// functions" and "Charge density". Each "n= X" header starts a new
// shell; data rows are index, r, then one amplitude per l.
func parseRadialWavefunctions(content string) ([]Orbital, float64, error) {
	lines := strings.Split(content, "\n")
	start, end := -1, len(lines)
	for i, line := range lines {
		if strings.Contains(line, "Radial wave functions") {
			start = i
		}
		if start >= 0 && strings.Contains(line, "Charge density") {
			end = i
			break
		}
	}
	if start < 0 {
		return nil, 0, errors.New("missing radial wave function section")
	}

	currentN := 0
	radialR := make(map[NL][]float64)
	radialF := make(map[NL][]float64)

	for _, line := range lines[start:end] {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "n=") {
			fields := strings.Fields(trimmed)
			if len(fields) >= 2 {
				if n, err := strconv.Atoi(fields[1]); err == nil {
					currentN = n
				}
			}
			continue
		}
		if currentN == 0 || trimmed == "" {
			continue
		}
		c := trimmed[0]
		if !(c >= '0' && c <= '9') && c != '-' && c != '+' {
			continue
		}

		vals := parseFloats(trimmed)
		if len(vals) < 3 {
			continue
		}
		r := vals[1]
		for l, v := range vals[2:] {
			key := NL{N: currentN, L: l}
			radialR[key] = append(radialR[key], r)
			radialF[key] = append(radialF[key], v)
		}
	}

	var orbitals []Orbital
	rMax := 0.0
	for key, rs := range radialR {
		fs := radialF[key]
		if len(rs) == 0 || len(fs) == 0 {
			continue
		}
		if last := rs[len(rs)-1]; last > rMax {
			rMax = last
		}
		orbitals = append(orbitals, Orbital{
			N:     key.N,
			L:     key.L,
			Label: strconv.Itoa(key.N) + physics.ShellLetter(key.L),
			R:     rs,
			F:     fs,
		})
	}
	if len(orbitals) == 0 {
		return nil, 0, errors.New("no radial tables found")
	}

	sort.Slice(orbitals, func(i, j int) bool {
		if orbitals[i].N != orbitals[j].N {
			return orbitals[i].N < orbitals[j].N
		}
		return orbitals[i].L < orbitals[j].L
	})
	return orbitals, rMax, nil
}

func parseFloats(text string) []float64 {
	fields := strings.Fields(text)
	vals := make([]float64, 0, len(fields))
	for _, f := range fields {
		if v, err := strconv.ParseFloat(f, 64); err == nil {
			vals = append(vals, v)
		}
	}
	return vals
}
