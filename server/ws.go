package server

import (
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/atomview/atomview/density"
	"github.com/atomview/atomview/render"
	"github.com/atomview/atomview/sampler"
)

const (
	// One beat period of the superposition is spread over this many
	// frames, sent at frameInterval.
	framesPerPeriod = 120
	frameInterval   = 100 * time.Millisecond

	wsWriteTimeout = 10 * time.Second
)

// wsFrame is one animation step of a time-evolving superposition.
type wsFrame struct {
	Time    float64      `json:"time"`
	DeltaE  float64      `json:"delta_e"`
	Static  bool         `json:"static,omitempty"`
	Note    string       `json:"note,omitempty"`
	Samples [][3]float64 `json:"samples"`
	Colors  [][3]float64 `json:"colors"`
	Signs   []int8       `json:"signs,omitempty"`
	Dropped int          `json:"dropped,omitempty"`
}

// HandleWS streams superposition frames over a WebSocket. Each frame
// is an independent sampling pass at an advanced time parameter; a
// degenerate pair gets a single static frame instead of an animation.
func (s *Server) HandleWS(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warnw("WebSocket upgrade failed", "error", err)
		return
	}

	q := s.parseQuery(r.URL.Query())
	q.Mode = density.ModeSuperposition
	res := s.resolve(r.Context(), q)
	sup, ok := res.Spec.(density.Superposition)
	if res.Empty || !ok {
		conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		conn.WriteJSON(map[string]string{"error": res.Note})
		conn.Close()
		return
	}

	if s.ctx.Err() != nil {
		conn.Close()
		return
	}
	s.wg.Add(1)
	go s.streamSuperposition(conn, q, res, sup)
}

func (s *Server) streamSuperposition(conn *websocket.Conn, q SampleQuery, res *resolved, sup density.Superposition) {
	defer s.wg.Done()
	defer conn.Close()

	// Reader loop exists only to observe the peer closing.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	opts := sampler.Options{
		Count:     q.Count,
		MaxRadius: res.MaxRadius,
		RetryCap:  s.cfg.Sampling.RetryCap,
		WithSigns: q.Signs,
	}
	if sup.Static() {
		s.sendFrame(conn, sup, opts, q, res.Scale, res.Note)
		select {
		case <-closed:
		case <-s.ctx.Done():
		}
		return
	}

	timeStep := 2 * math.Pi / math.Abs(sup.DeltaE) / framesPerPeriod
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	note := res.Note
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-closed:
			return
		case <-ticker.C:
			if !s.sendFrame(conn, sup, opts, q, res.Scale, note) {
				return
			}
			note = ""
			sup.Time += timeStep
		}
	}
}

// sendFrame draws one sampling pass at the spec's current time and
// writes it out. Returns false when the connection is gone.
func (s *Server) sendFrame(conn *websocket.Conn, sup density.Superposition, opts sampler.Options, q SampleQuery, scale float64, note string) bool {
	set, err := sampler.Draw(sup, opts, sampler.NewRNG(time.Now().UnixNano()))
	if err != nil {
		s.logger.Errorw("Superposition frame failed", "error", err)
		return false
	}
	if scale != 1 {
		set.ScaleCoordinates(scale)
	}

	frame := wsFrame{
		Time:    sup.Time,
		DeltaE:  sup.DeltaE,
		Static:  sup.Static(),
		Note:    note,
		Samples: make([][3]float64, len(set.Samples)),
		Colors:  make([][3]float64, len(set.Samples)),
		Dropped: set.Dropped,
	}
	for i, p := range set.Samples {
		frame.Samples[i] = [3]float64{p.X, p.Y, p.Z}
	}
	for i, c := range render.Encode(set, q.Color) {
		frame.Colors[i] = [3]float64(c)
	}
	if q.Signs {
		frame.Signs = make([]int8, len(set.Samples))
		for i, p := range set.Samples {
			frame.Signs[i] = p.Sign
		}
	}

	conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	if err := conn.WriteJSON(frame); err != nil {
		return false
	}
	return true
}

func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range s.cfg.Server.AllowedOrigins {
		if strings.HasPrefix(origin, allowed) {
			return true
		}
	}
	return false
}
