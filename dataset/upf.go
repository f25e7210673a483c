package dataset

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"github.com/atomview/atomview/errors"
)

// UPFElement is a parsed PSLibrary UPF pseudopotential: the shared
// radial mesh (PP_R) and the pseudo-wavefunctions chi(r) = r*R(r)
// from the PP_CHI blocks.
type UPFElement struct {
	Symbol   string
	Orbitals []Orbital
	RMax     float64
}

// ParseUPF parses a UPF (XML) document. UPF files in the wild are not
// always well-formed XML, so the decoder runs in lenient mode.
func ParseUPF(r io.Reader, symbol string) (*UPFElement, error) {
	dec := xml.NewDecoder(r)
	dec.Strict = false
	dec.AutoClose = xml.HTMLAutoClose

	var (
		mesh        []float64
		orbitals    []Orbital
		inMesh      bool
		currentL    = -1
		currentName string
		currentVals []float64
	)

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "dataset: UPF parse for %s", symbol)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch {
			case t.Name.Local == "PP_R":
				inMesh = true
			case strings.HasPrefix(t.Name.Local, "PP_CHI"):
				currentName = ""
				currentL = -1
				currentVals = nil
				for _, attr := range t.Attr {
					switch attr.Name.Local {
					case "label":
						currentName = attr.Value
					case "l":
						if v, err := strconv.Atoi(strings.TrimSpace(attr.Value)); err == nil {
							currentL = v
						}
					}
				}
			}
		case xml.CharData:
			if inMesh {
				mesh = append(mesh, parseFloats(string(t))...)
			} else if currentName != "" {
				currentVals = append(currentVals, parseFloats(string(t))...)
			}
		case xml.EndElement:
			switch {
			case t.Name.Local == "PP_R":
				inMesh = false
			case strings.HasPrefix(t.Name.Local, "PP_CHI"):
				if currentName != "" && currentL >= 0 {
					orbitals = append(orbitals, Orbital{
						N:     parsePrincipalN(currentName),
						L:     currentL,
						Label: currentName,
						R:     mesh,
						F:     currentVals,
					})
				}
				currentName = ""
				currentVals = nil
			}
		}
	}

	if len(mesh) == 0 || len(orbitals) == 0 {
		return nil, errors.Wrapf(ErrUnsupportedState, "UPF missing wavefunction data for %s", symbol)
	}

	// PP_CHI blocks can appear before PP_R in some files; attach the
	// mesh to every orbital once fully read.
	for i := range orbitals {
		if len(orbitals[i].R) == 0 {
			orbitals[i].R = mesh
		}
	}

	return &UPFElement{
		Symbol:   symbol,
		Orbitals: orbitals,
		RMax:     mesh[len(mesh)-1],
	}, nil
}

// parsePrincipalN extracts the leading digits of an orbital label like
// "3S" or "4d". Returns 0 when the label carries no shell number.
func parsePrincipalN(label string) int {
	end := 0
	for end < len(label) && label[end] >= '0' && label[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, _ := strconv.Atoi(label[:end])
	return n
}
