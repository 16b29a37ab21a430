package schematic

import "math"

// Zoom bounds and step size. Zoom is presentation-only: it scales how a
// scene is displayed, never the coordinate data used for export.
const (
	MinZoom  = 0.5
	MaxZoom  = 3.0
	ZoomStep = 0.1
)

// Zoom is a clamped display scale factor adjustable in fixed steps.
// The zero value is invalid; use [NewZoom].
type Zoom struct {
	// tenths holds the factor ×10 so repeated stepping cannot drift.
	tenths int
}

// NewZoom returns a zoom at factor 1.0.
func NewZoom() Zoom {
	return Zoom{tenths: 10}
}

// Factor returns the current scale factor.
func (z Zoom) Factor() float64 {
	return float64(z.tenths) / 10
}

// In increases the factor by one step, saturating at MaxZoom, and returns
// the new factor.
func (z *Zoom) In() float64 {
	z.tenths = clampTenths(z.tenths + 1)
	return z.Factor()
}

// Out decreases the factor by one step, saturating at MinZoom, and returns
// the new factor.
func (z *Zoom) Out() float64 {
	z.tenths = clampTenths(z.tenths - 1)
	return z.Factor()
}

// Set snaps f to the nearest step and clamps it into range, returning the
// resulting factor.
func (z *Zoom) Set(f float64) float64 {
	z.tenths = clampTenths(int(math.Round(f * 10)))
	return z.Factor()
}

func clampTenths(t int) int {
	const minT, maxT = int(MinZoom * 10), int(MaxZoom * 10)
	if t < minT {
		return minT
	}
	if t > maxT {
		return maxT
	}
	return t
}

// ClampZoom clamps an arbitrary factor into the zoom range without snapping
// it to a step.
func ClampZoom(f float64) float64 {
	if f < MinZoom {
		return MinZoom
	}
	if f > MaxZoom {
		return MaxZoom
	}
	return f
}
