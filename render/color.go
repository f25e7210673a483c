// Package render maps drawn samples to RGB colors for the consuming
// point-cloud renderer. Pure functions, no side effects.
package render

import (
	"math"
	"strings"

	"github.com/atomview/atomview/sampler"
)

// ColorMode selects the sample attribute encoded as color.
type ColorMode int

const (
	// ColorRadial grades points by distance from the nucleus.
	ColorRadial ColorMode = iota
	// ColorPhase grades points by wavefunction sign or phase angle.
	ColorPhase
)

// ParseColorMode maps a query string to a ColorMode, defaulting to
// radial.
func ParseColorMode(value string) ColorMode {
	if strings.EqualFold(value, "phase") {
		return ColorPhase
	}
	return ColorRadial
}

// String returns the query-parameter spelling of the mode.
func (m ColorMode) String() string {
	if m == ColorPhase {
		return "phase"
	}
	return "radial"
}

// RGB is a color triple with components in [0, 1].
type RGB [3]float64

// Neutral hue for samples that carry neither sign nor phase.
var neutral = RGB{0.75, 0.78, 0.82}

// Encode returns one RGB per sample in the set.
func Encode(set *sampler.Set, mode ColorMode) []RGB {
	colors := make([]RGB, len(set.Samples))
	// Structure concentrates near the nucleus; the gradient saturates
	// at a tenth of the sampling radius.
	gradientMax := set.MaxRadius * 0.1
	for i, s := range set.Samples {
		switch mode {
		case ColorPhase:
			colors[i] = phaseColor(s)
		default:
			d := math.Sqrt(s.X*s.X + s.Y*s.Y + s.Z*s.Z)
			colors[i] = radialColor(d, gradientMax)
		}
	}
	return colors
}

// radialColor maps normalized distance through the fixed gradient
// blue -> cyan -> green -> yellow by linear interpolation between the
// nearest stops.
func radialColor(d, max float64) RGB {
	t := 1.0
	if max > 0 {
		t = math.Min(d/max, 1)
	}
	switch {
	case t < 0.25:
		k := t / 0.25
		return RGB{0, k, 1}
	case t < 0.5:
		k := (t - 0.25) / 0.25
		return RGB{0, 1, 1 - k}
	case t < 0.75:
		k := (t - 0.5) / 0.25
		return RGB{k, 1, 0}
	default:
		k := (t - 0.75) / 0.25
		return RGB{1, 1 - k, 0}
	}
}

// phaseColor maps sign or continuous phase to red (positive) / blue
// (negative). Samples without sign or phase get the neutral hue.
func phaseColor(s sampler.Sample) RGB {
	if !math.IsNaN(s.Phase) {
		// Continuous phase: blend red <-> blue through cos(phase).
		k := (1 + math.Cos(s.Phase)) / 2
		return RGB{k, 0.1, 1 - k}
	}
	switch {
	case s.Sign > 0:
		return RGB{1, 0.23, 0.29}
	case s.Sign < 0:
		return RGB{0.23, 0.36, 1}
	default:
		return neutral
	}
}
