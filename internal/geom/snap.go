package geom

import "math"

// Default snapping parameters, in centimetres.
const (
	DefaultGridStep        = 0.5
	DefaultMagnetThreshold = 1.5
)

// SnapToGrid rounds value to the nearest multiple of step.
// A non-positive or non-finite step leaves value unchanged.
func SnapToGrid(value, step float64) float64 {
	if !ValidLength(step) || !Finite(value) {
		return value
	}
	return math.Round(value/step) * step
}

// gridEps absorbs float noise so values already on the grid stay put.
const gridEps = 1e-9

// SnapUp rounds value up to the next multiple of step.
func SnapUp(value, step float64) float64 {
	if !ValidLength(step) || !Finite(value) {
		return value
	}
	return math.Ceil(value/step-gridEps) * step
}

// SnapDown rounds value down to the previous multiple of step.
func SnapDown(value, step float64) float64 {
	if !ValidLength(step) || !Finite(value) {
		return value
	}
	return math.Floor(value/step+gridEps) * step
}

// SnapWithMagnet returns the first target within threshold of value,
// or value itself when none is close enough.
func SnapWithMagnet(value float64, targets []float64, threshold float64) float64 {
	for _, t := range targets {
		if math.Abs(value-t) <= threshold {
			return t
		}
	}
	return value
}

// NearestWithin returns the candidate closest to value among those within
// threshold. ok is false when no candidate qualifies.
func NearestWithin(value float64, candidates []float64, threshold float64) (best float64, ok bool) {
	bestDist := math.Inf(1)
	for _, c := range candidates {
		d := math.Abs(value - c)
		if d <= threshold && d < bestDist {
			best, bestDist, ok = c, d, true
		}
	}
	return best, ok
}
