package sampler

import (
	"math"
	"math/rand"

	"github.com/atomview/atomview/density"
	"github.com/atomview/atomview/errors"
)

// DefaultRetryCap bounds the rejection attempts spent on a single
// point before it is counted as dropped. The cap is a sampling policy,
// not part of the physical model, so it is configurable.
const DefaultRetryCap = 200

// Options configures a sampling run.
type Options struct {
	// Count is the number of points requested. Must be >= 1.
	Count int
	// MaxRadius bounds the sampled region. Must be > 0.
	MaxRadius float64
	// RetryCap overrides DefaultRetryCap when > 0.
	RetryCap int
	// WithSigns requests per-sample sign flags where the model defines
	// them (real basis, superpositions).
	WithSigns bool
}

func (o Options) retryCap() int {
	if o.RetryCap > 0 {
		return o.RetryCap
	}
	return DefaultRetryCap
}

// Sample is a single drawn point. Weight is the density magnitude at
// the point, or the signed amplitude in modes that define a sign.
// Phase is the continuous phase angle where the model has one
// (superpositions); NaN otherwise. Samples are immutable once
// produced.
type Sample struct {
	X, Y, Z float64
	Weight  float64
	Sign    int8
	Phase   float64
}

// Set is the result of one sampling run.
type Set struct {
	Samples   []Sample
	Mode      density.Mode
	Requested int
	// Dropped counts points abandoned after the rejection retry cap.
	// The run still succeeds with a partial set.
	Dropped   int
	MaxRadius float64
	// DeltaE and Static describe superposition time behavior; Static
	// means the density provably does not vary with the time
	// parameter, so any animation of it is non-physical.
	DeltaE float64
	Static bool
}

// ScaleCoordinates multiplies all positions and the recorded max
// radius by f, used for the 1/Z hydrogenic charge approximation.
func (s *Set) ScaleCoordinates(f float64) {
	for i := range s.Samples {
		s.Samples[i].X *= f
		s.Samples[i].Y *= f
		s.Samples[i].Z *= f
	}
	s.MaxRadius *= f
}

// Draw samples opts.Count points from the spec. A density that is zero
// everywhere inside the search radius yields an empty set, not an
// error. Passing rng == nil selects the deterministic default stream.
func Draw(spec density.Spec, opts Options, rng *rand.Rand) (*Set, error) {
	if opts.Count < 1 {
		return nil, errors.Newf("sampler: count must be >= 1, got %d", opts.Count)
	}
	if !(opts.MaxRadius > 0) {
		return nil, errors.Newf("sampler: max radius must be > 0, got %v", opts.MaxRadius)
	}
	rng = ensureRNG(rng)

	set := &Set{
		Mode:      spec.Mode(),
		Requested: opts.Count,
		MaxRadius: opts.MaxRadius,
	}

	switch d := spec.(type) {
	case density.Total:
		drawIsotropic(set, d.Orbitals, opts, rng)
	case density.Valence:
		if d.Spherical {
			drawIsotropic(set, d.Orbitals, opts, rng)
		} else {
			drawWeightedOrbitals(set, d.Orbitals, opts, rng)
		}
	case density.SingleOrbital:
		drawOrbital(set, d, opts, rng)
	case density.Superposition:
		drawSuperposition(set, d, opts, rng)
	default:
		return nil, errors.Newf("sampler: unknown density spec %T", spec)
	}
	return set, nil
}

// toCartesian converts a spherical draw into Cartesian coordinates.
func toCartesian(r, theta, phi float64) (x, y, z float64) {
	sinTheta := math.Sin(theta)
	return r * sinTheta * math.Cos(phi),
		r * sinTheta * math.Sin(phi),
		r * math.Cos(theta)
}

// drawAngles returns a uniform direction proposal: cos(theta) uniform
// in [-1, 1], phi uniform in [0, 2pi).
func drawAngles(rng *rand.Rand) (theta, phi float64) {
	cosTheta := rng.Float64()*2 - 1
	return math.Acos(cosTheta), rng.Float64() * 2 * math.Pi
}
