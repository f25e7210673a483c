package server

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strconv"

	"github.com/atomview/atomview/dataset"
	"github.com/atomview/atomview/density"
	"github.com/atomview/atomview/internal/util"
	"github.com/atomview/atomview/physics"
	"github.com/atomview/atomview/render"
)

// SampleQuery is a sampling request after parsing and clamping.
type SampleQuery struct {
	N, L, M    int
	N2, L2, M2 int
	Z          int
	Count      int
	MaxRadius  float64
	Mode       density.Mode
	// ValenceSpherical selects the spherically averaged valence shell
	// instead of m=0 lobe projection.
	ValenceSpherical bool
	Mix              float64
	Time             float64
	Basis            physics.Basis
	Signs            bool
	Color            render.ColorMode
}

// parseQuery reads the request parameters, filling defaults and
// clamping everything into the configured envelope. Unparseable
// values fall back to their defaults rather than erroring; the
// response metadata reports what was actually used.
func (s *Server) parseQuery(values url.Values) SampleQuery {
	sc := s.cfg.Sampling
	q := SampleQuery{
		N:                intParam(values, "n", 2),
		L:                intParam(values, "l", 1),
		M:                intParam(values, "m", 0),
		Z:                clampInt(intParam(values, "z", 1), 1, 118),
		Count:            clampInt(intParam(values, "count", sc.DefaultCount), sc.MinCount, sc.MaxCount),
		MaxRadius:        math.Max(floatParam(values, "max", sc.DefaultMaxRadius), 1.0),
		Mode:             density.ParseMode(values.Get("mode")),
		ValenceSpherical: values.Get("valence_style") != "orbitals",
		Mix:              clampFloat(floatParam(values, "mix", 0.5), 0.05, 0.95),
		Time:             floatParam(values, "t", 0),
		Basis:            physics.ParseBasis(values.Get("basis")),
		Signs:            boolParam(values, "signs"),
		Color:            render.ParseColorMode(values.Get("color")),
	}
	if q.N < 1 {
		q.N = 1
	}
	q.N2 = intParam(values, "n2", q.N)
	q.L2 = intParam(values, "l2", q.L)
	q.M2 = intParam(values, "m2", 0)
	return q
}

// resolved is a fully decided sampling plan: the density spec to draw
// from plus the metadata the response reports about how the request
// was satisfied.
type resolved struct {
	Spec      density.Spec
	Source    density.Source
	Note      string
	MaxRadius float64
	// Scale is applied to sample coordinates after drawing; the 1/Z
	// hydrogenic charge approximation shrinks the cloud.
	Scale float64

	N, L, M    int
	N2, L2, M2 *int

	Selected  string
	SelectedB string
	Available []dataset.Orbital

	Mix    *float64
	Time   *float64
	DeltaE *float64

	// Empty means the request cannot produce samples at all (invalid
	// quantum numbers, orbital absent from the only usable dataset).
	Empty bool
}

// resolve walks the dataset fallback chain: OpenMX LDA, then
// PSLibrary pseudo-wavefunctions for single orbitals, then the
// analytic hydrogenic model. Each stage that cannot serve the request
// leaves a note explaining the handoff.
func (s *Server) resolve(ctx context.Context, q SampleQuery) *resolved {
	note := ""

	if _, ok := dataset.SymbolForZ(q.Z); ok {
		// Hydrogen orbital and superposition requests go straight to
		// the exact analytic model.
		useLDA := !(q.Z == 1 && (q.Mode == density.ModeOrbital || q.Mode == density.ModeSuperposition))
		if useLDA {
			data, err := s.store.LDA(ctx, q.Z)
			if err == nil {
				res, fallNote := s.resolveLDA(data, q)
				if res != nil {
					return res
				}
				note = fallNote
			} else {
				s.logger.Debugw("LDA dataset unavailable", "z", q.Z, "error", err)
				note = "OpenMX LDA unavailable; trying fallback"
			}
		}
	}

	if q.Mode == density.ModeOrbital && q.Z != 1 {
		res, fallNote := s.resolvePSLibrary(ctx, q)
		if res != nil {
			return res
		}
		note = fallNote
	}

	if q.Mode == density.ModeSuperposition {
		res := s.resolveHydrogenicSuperposition(q)
		if res != nil {
			return res
		}
		note = "invalid quantum numbers for superposition"
	}

	if q.Mode != density.ModeOrbital {
		note = "density dataset unavailable; using single orbital"
	} else if q.Z == 1 {
		note = "hydrogenic (exact)"
	}
	return s.resolveHydrogenic(q, note)
}

func (s *Server) resolveLDA(data *dataset.LDAElement, q SampleQuery) (*resolved, string) {
	maxR := math.Min(data.RMax, q.MaxRadius)
	available := data.AvailableOrbitals()

	switch q.Mode {
	case density.ModeTotal:
		occupied := data.Occupied()
		if len(occupied) == 0 {
			return nil, "no occupied orbitals in LDA dataset"
		}
		orbitals, err := ldaTerms(occupied)
		if err != nil {
			s.logger.Warnw("Bad LDA radial table", "symbol", data.Symbol, "error", err)
			return nil, "OpenMX LDA unavailable; trying fallback"
		}
		return &resolved{
			Spec:      density.Total{Orbitals: orbitals},
			Source:    density.SourceLDA,
			Note:      fmt.Sprintf("OpenMX LDA spherical total density (%.0fe)", data.TotalElectrons),
			MaxRadius: maxR,
			Scale:     1,
			N:         q.N, L: q.L, M: q.M,
			Available: available,
		}, ""

	case density.ModeValence:
		shell, shellNote := data.ValenceShell()
		carried := ""
		if len(shell) == 0 {
			if shellNote == "" {
				shellNote = "valence set unavailable; using total density"
			}
			carried = shellNote
			shell = data.Occupied()
		}
		if len(shell) == 0 {
			return nil, "no occupied orbitals in LDA dataset"
		}
		orbitals, err := ldaTerms(shell)
		if err != nil {
			s.logger.Warnw("Bad LDA radial table", "symbol", data.Symbol, "error", err)
			return nil, "OpenMX LDA unavailable; trying fallback"
		}
		note := carried
		if note == "" {
			if q.ValenceSpherical {
				note = fmt.Sprintf("OpenMX LDA spherical valence density (%.0fe)", data.ValenceElectrons)
			} else {
				note = "OpenMX LDA valence orbitals (m=0 projection)"
			}
		}
		return &resolved{
			Spec:      density.Valence{Orbitals: orbitals, Spherical: q.ValenceSpherical},
			Source:    density.SourceLDA,
			Note:      note,
			MaxRadius: maxR,
			Scale:     1,
			N:         q.N, L: q.L, M: q.M,
			Available: available,
		}, ""

	case density.ModeOrbital:
		orb, exact, ok := dataset.SelectOrbital(data.Orbitals, q.N, q.L)
		if !ok {
			return nil, "orbital not available in LDA dataset"
		}
		m := clampInt(q.M, -orb.L, orb.L)
		table, err := density.NewRadialTable(orb.R, orb.F, density.KindR)
		if err != nil {
			s.logger.Warnw("Bad LDA radial table", "symbol", data.Symbol, "orbital", orb.Label, "error", err)
			return nil, "OpenMX LDA unavailable; trying fallback"
		}
		note := fmt.Sprintf("OpenMX LDA %s", orb.Label)
		if !exact {
			note = fmt.Sprintf("requested n/l not in dataset; using %s", orb.Label)
		}
		return &resolved{
			Spec: density.SingleOrbital{
				Orbital: density.Orbital{N: orb.N, L: orb.L, M: m, Radial: table, Weight: 1, Label: orb.Label},
				Basis:   q.Basis,
			},
			Source:    density.SourceLDA,
			Note:      note,
			MaxRadius: maxR,
			Scale:     1,
			N:         orb.N, L: orb.L, M: m,
			Selected:  orb.Label,
			Available: available,
		}, ""

	case density.ModeSuperposition:
		a, exactA, b, exactB, ok := data.SelectPair(q.N, q.L, q.N2, q.L2)
		if !ok {
			return nil, "superposition orbitals not available"
		}
		mA := clampInt(q.M, -a.L, a.L)
		mB := clampInt(q.M2, -b.L, b.L)
		eA, okA := data.Eigenvalues[dataset.NL{N: a.N, L: a.L}]
		eB, okB := data.Eigenvalues[dataset.NL{N: b.N, L: b.L}]
		deltaE := 0.0
		if okA && okB {
			deltaE = eB - eA
		}
		tableA, errA := density.NewRadialTable(a.R, a.F, density.KindR)
		tableB, errB := density.NewRadialTable(b.R, b.F, density.KindR)
		if errA != nil || errB != nil {
			s.logger.Warnw("Bad LDA radial table", "symbol", data.Symbol)
			return nil, "OpenMX LDA unavailable; trying fallback"
		}
		spec := density.Superposition{
			A:      density.Orbital{N: a.N, L: a.L, M: mA, Radial: tableA, Weight: 1, Label: a.Label},
			B:      density.Orbital{N: b.N, L: b.L, M: mB, Radial: tableB, Weight: 1, Label: b.Label},
			Mix:    q.Mix,
			Time:   q.Time,
			DeltaE: deltaE,
		}
		note := "OpenMX LDA superposition"
		if !exactA || !exactB {
			note += " (closest orbitals used)"
		}
		if !okA || !okB {
			note += " | missing eigenvalues, static phase"
		}
		if spec.Static() {
			note += " | degenerate energies, static density"
		}
		return &resolved{
			Spec:      spec,
			Source:    density.SourceLDA,
			Note:      note,
			MaxRadius: maxR,
			Scale:     1,
			N:         a.N, L: a.L, M: mA,
			N2: util.Ptr(b.N), L2: util.Ptr(b.L), M2: util.Ptr(mB),
			Selected:  a.Label,
			SelectedB: b.Label,
			Available: available,
			Mix:       util.Ptr(q.Mix),
			Time:      util.Ptr(q.Time),
			DeltaE:    util.Ptr(deltaE),
		}, ""
	}
	return nil, ""
}

func (s *Server) resolvePSLibrary(ctx context.Context, q SampleQuery) (*resolved, string) {
	data, err := s.store.UPF(ctx, q.Z)
	if err != nil {
		s.logger.Debugw("PSLibrary dataset unavailable", "z", q.Z, "error", err)
		return nil, "dataset unavailable; using hydrogenic"
	}

	orb, exact, ok := dataset.SelectOrbital(data.Orbitals, q.N, q.L)
	if !ok {
		return &resolved{
			Source:    density.SourcePSLibrary,
			Note:      "orbital not available in dataset",
			MaxRadius: q.MaxRadius,
			Scale:     1,
			N:         q.N, L: q.L, M: q.M,
			Available: data.Orbitals,
			Empty:     true,
		}, ""
	}
	m := clampInt(q.M, -orb.L, orb.L)
	table, err := density.NewRadialTable(orb.R, orb.F, density.KindChi)
	if err != nil {
		s.logger.Warnw("Bad UPF radial table", "symbol", data.Symbol, "orbital", orb.Label, "error", err)
		return nil, "dataset unavailable; using hydrogenic"
	}
	note := fmt.Sprintf("PSlibrary %s", orb.Label)
	if !exact {
		note = fmt.Sprintf("requested n/l not in dataset; using %s", orb.Label)
	}
	return &resolved{
		Spec: density.SingleOrbital{
			Orbital: density.Orbital{N: orb.N, L: orb.L, M: m, Radial: table, Weight: 1, Label: orb.Label},
			Basis:   q.Basis,
		},
		Source:    density.SourcePSLibrary,
		Note:      note,
		MaxRadius: math.Min(data.RMax, q.MaxRadius),
		Scale:     1,
		N:         orb.N, L: orb.L, M: m,
		Selected:  orb.Label,
		Available: data.Orbitals,
	}, ""
}

func (s *Server) resolveHydrogenicSuperposition(q SampleQuery) *resolved {
	stateA, errA := physics.NewState(q.N, q.L, q.M, 1)
	stateB, errB := physics.NewState(q.N2, q.L2, q.M2, 1)
	if errA != nil || errB != nil {
		return nil
	}

	deltaE := stateB.Energy() - stateA.Energy()
	steps := s.gridSteps()
	spec := density.Superposition{
		A: density.Orbital{
			N: stateA.N, L: stateA.L, M: stateA.M,
			Radial: density.NewHydrogenicTable(stateA.N, stateA.L, q.MaxRadius, steps),
			Weight: 1, Label: stateA.Label(),
		},
		B: density.Orbital{
			N: stateB.N, L: stateB.L, M: stateB.M,
			Radial: density.NewHydrogenicTable(stateB.N, stateB.L, q.MaxRadius, steps),
			Weight: 1, Label: stateB.Label(),
		},
		Mix:    q.Mix,
		Time:   q.Time,
		DeltaE: deltaE,
	}

	scale := 1.0
	note := "Hydrogenic superposition (time-dependent)"
	if spec.Static() {
		note += " | same n -> no time evolution"
	}
	if q.Z > 1 {
		scale = 1 / float64(q.Z)
		note += " | hydrogenic approximation scaled by Z"
	}
	return &resolved{
		Spec:      spec,
		Source:    density.SourceHydrogenic,
		Note:      note,
		MaxRadius: q.MaxRadius,
		Scale:     scale,
		N:         stateA.N, L: stateA.L, M: stateA.M,
		N2: util.Ptr(stateB.N), L2: util.Ptr(stateB.L), M2: util.Ptr(stateB.M),
		Mix:    util.Ptr(q.Mix),
		Time:   util.Ptr(q.Time),
		DeltaE: util.Ptr(deltaE),
	}
}

func (s *Server) resolveHydrogenic(q SampleQuery, note string) *resolved {
	state, err := physics.NewState(q.N, q.L, q.M, 1)
	if err != nil {
		return &resolved{
			Source:    density.SourceHydrogenic,
			Note:      note,
			MaxRadius: q.MaxRadius,
			Scale:     1,
			N:         q.N, L: q.L, M: q.M,
			Empty:     true,
		}
	}
	return &resolved{
		Spec: density.SingleOrbital{
			Orbital: density.Orbital{
				N: state.N, L: state.L, M: state.M,
				Radial: density.NewHydrogenicTable(state.N, state.L, q.MaxRadius, s.gridSteps()),
				Weight: 1, Label: state.Label(),
			},
			Basis: q.Basis,
		},
		Source:    density.SourceHydrogenic,
		Note:      note,
		MaxRadius: q.MaxRadius,
		Scale:     1 / float64(q.Z),
		N:         state.N, L: state.L, M: state.M,
	}
}

func (s *Server) gridSteps() int {
	if s.cfg.Sampling.GridSteps > 0 {
		return s.cfg.Sampling.GridSteps
	}
	return 800
}

func ldaTerms(weighted []dataset.WeightedOrbital) ([]density.Orbital, error) {
	out := make([]density.Orbital, 0, len(weighted))
	for _, w := range weighted {
		table, err := density.NewRadialTable(w.Orbital.R, w.Orbital.F, density.KindR)
		if err != nil {
			return nil, err
		}
		out = append(out, density.Orbital{
			N: w.Orbital.N, L: w.Orbital.L, M: 0,
			Radial: table,
			Weight: w.Occupancy,
			Label:  w.Orbital.Label,
		})
	}
	return out, nil
}

func intParam(values url.Values, key string, def int) int {
	if v := values.Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func floatParam(values url.Values, key string, def float64) float64 {
	if v := values.Get(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func boolParam(values url.Values, key string) bool {
	v := values.Get(key)
	return v == "1" || v == "true"
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
