package server

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/atomview/atomview/dataset"
	"github.com/atomview/atomview/density"
	"github.com/atomview/atomview/internal/util"
	"github.com/atomview/atomview/render"
	"github.com/atomview/atomview/sampler"
	"github.com/atomview/atomview/version"
)

// OrbitalInfo describes one orbital a dataset can serve.
type OrbitalInfo struct {
	Label string `json:"label"`
	N     int    `json:"n"`
	L     int    `json:"l"`
}

// SampleResponse is the JSON body of a sampling request.
type SampleResponse struct {
	N  int  `json:"n"`
	L  int  `json:"l"`
	M  int  `json:"m"`
	N2 *int `json:"n2,omitempty"`
	L2 *int `json:"l2,omitempty"`
	M2 *int `json:"m2,omitempty"`
	Z  int  `json:"z"`

	Count     int     `json:"count"`
	Dropped   int     `json:"dropped,omitempty"`
	MaxRadius float64 `json:"max_radius"`

	Samples [][3]float64 `json:"samples"`
	Colors  [][3]float64 `json:"colors"`
	Signs   []int8       `json:"signs,omitempty"`

	Mode   string `json:"mode"`
	Source string `json:"source"`
	Note   string `json:"note,omitempty"`

	AvailableOrbitals []OrbitalInfo `json:"available_orbitals"`
	SelectedOrbital   string        `json:"selected_orbital,omitempty"`
	SelectedOrbitalB  string        `json:"selected_orbital_b,omitempty"`

	Mix    *float64 `json:"mix,omitempty"`
	Time   *float64 `json:"time,omitempty"`
	DeltaE *float64 `json:"delta_e,omitempty"`
	Static *bool    `json:"static,omitempty"`
}

// DrawCloud resolves a query against the dataset fallback chain and
// draws one point cloud. A zero seed picks a time-based stream; a
// fixed seed makes the output reproducible. Shared by the HTTP
// handler and the one-shot CLI command.
func (s *Server) DrawCloud(ctx context.Context, values url.Values, seed int64) (*SampleResponse, error) {
	q := s.parseQuery(values)
	res := s.resolve(ctx, q)
	resp := s.baseResponse(q, res)

	if res.Empty {
		return resp, nil
	}

	opts := sampler.Options{
		Count:     q.Count,
		MaxRadius: res.MaxRadius,
		RetryCap:  s.cfg.Sampling.RetryCap,
		WithSigns: q.Signs,
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	set, err := sampler.Draw(res.Spec, opts, sampler.NewRNG(seed))
	if err != nil {
		return nil, err
	}
	if res.Scale != 1 {
		set.ScaleCoordinates(res.Scale)
	}

	s.fillSamples(resp, set, q)
	s.logger.Debugw("Drew samples",
		"mode", resp.Mode,
		"source", resp.Source,
		"z", q.Z,
		"count", len(set.Samples),
		"dropped", set.Dropped)
	return resp, nil
}

// HandleSamples draws a point cloud for the requested density and
// returns it with per-point colors.
func (s *Server) HandleSamples(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	resp, err := s.DrawCloud(r.Context(), r.URL.Query(), 0)
	if err != nil {
		s.logger.Errorw("Sampling failed", "error", err)
		writeError(w, statusForError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// HandleHealth reports liveness and the running version.
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version.Get().Version,
	})
}

// baseResponse carries the resolution metadata into the response
// shell, before any samples are drawn.
func (s *Server) baseResponse(q SampleQuery, res *resolved) *SampleResponse {
	resp := &SampleResponse{
		N: res.N, L: res.L, M: res.M,
		N2: res.N2, L2: res.L2, M2: res.M2,
		Z:                 q.Z,
		MaxRadius:         res.MaxRadius,
		Samples:           [][3]float64{},
		Colors:            [][3]float64{},
		Mode:              q.Mode.String(),
		Source:            res.Source.String(),
		Note:              res.Note,
		AvailableOrbitals: orbitalInfos(res.Available),
		SelectedOrbital:   res.Selected,
		SelectedOrbitalB:  res.SelectedB,
		Mix:               res.Mix,
		Time:              res.Time,
		DeltaE:            res.DeltaE,
	}
	if sup, ok := res.Spec.(density.Superposition); ok {
		resp.Static = util.Ptr(sup.Static())
	}
	return resp
}

func (s *Server) fillSamples(resp *SampleResponse, set *sampler.Set, q SampleQuery) {
	resp.Count = len(set.Samples)
	resp.Dropped = set.Dropped
	resp.MaxRadius = set.MaxRadius
	resp.Samples = make([][3]float64, len(set.Samples))
	for i, p := range set.Samples {
		resp.Samples[i] = [3]float64{p.X, p.Y, p.Z}
	}
	colors := render.Encode(set, q.Color)
	resp.Colors = make([][3]float64, len(colors))
	for i, c := range colors {
		resp.Colors[i] = [3]float64(c)
	}
	if q.Signs {
		resp.Signs = make([]int8, len(set.Samples))
		for i, p := range set.Samples {
			resp.Signs[i] = p.Sign
		}
	}
}

func orbitalInfos(orbitals []dataset.Orbital) []OrbitalInfo {
	out := make([]OrbitalInfo, len(orbitals))
	for i, o := range orbitals {
		out[i] = OrbitalInfo{Label: o.Label, N: o.N, L: o.L}
	}
	return out
}
