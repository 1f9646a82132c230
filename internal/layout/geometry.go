package layout

import (
	"math"

	"github.com/piwi3910/FrameShop/internal/geom"
	"github.com/piwi3910/FrameShop/internal/model"
)

// MaxOvalRatio bounds how elongated an oval opening may become.
const MaxOvalRatio = 1.5

// Constraints are the area and snapping rules applied to every update.
type Constraints struct {
	Width     float64 // visible mat area, cm
	Height    float64
	GridStep  float64
	Magnet    float64
	MinWidth  float64
	MinHeight float64
}

// DefaultConstraints returns constraints for a w x h visible area with the
// default grid and magnet.
func DefaultConstraints(w, h float64) Constraints {
	return Constraints{
		Width:     w,
		Height:    h,
		GridStep:  geom.DefaultGridStep,
		Magnet:    geom.DefaultMagnetThreshold,
		MinWidth:  model.MinOpeningWidthCm,
		MinHeight: model.MinOpeningHeightCm,
	}
}

// MoveOpening translates o by (dx, dy) cm, then clamps, grid snaps, magnet
// snaps to the centrelines or edges, and clamps again.
func MoveOpening(o model.Opening, dx, dy float64, c Constraints) model.Opening {
	x := geom.Clamp(o.XCm+dx, 0, c.Width-o.WidthCm)
	y := geom.Clamp(o.YCm+dy, 0, c.Height-o.HeightCm)

	x = geom.SnapToGrid(x, c.GridStep)
	y = geom.SnapToGrid(y, c.GridStep)

	x = magnetAxis(x, o.WidthCm, c.Width, c.Magnet)
	y = magnetAxis(y, o.HeightCm, c.Height, c.Magnet)

	o.XCm = geom.Clamp(x, 0, c.Width-o.WidthCm)
	o.YCm = geom.Clamp(y, 0, c.Height-o.HeightCm)
	return o
}

// magnetAxis pulls pos so the span's centre meets the area's centreline.
// Only when that does not engage are the two edges tried, closest first.
func magnetAxis(pos, size, extent, threshold float64) float64 {
	if c, ok := geom.NearestWithin(pos+size/2, []float64{extent / 2}, threshold); ok {
		return c - size/2
	}
	if p, ok := geom.NearestWithin(pos, []float64{0, extent - size}, threshold); ok {
		return p
	}
	return pos
}

// ResizeOpening moves the edges selected by h by (dx, dy) cm and applies the
// per-shape rules. The result always lies inside the area and above the
// minimum size.
func ResizeOpening(o model.Opening, h Handle, dx, dy float64, c Constraints) model.Opening {
	left, top := o.XCm, o.YCm
	right, bottom := o.XCm+o.WidthCm, o.YCm+o.HeightCm

	if h.West() {
		left = geom.Clamp(geom.SnapToGrid(left+dx, c.GridStep), 0, right-c.MinWidth)
	}
	if h.East() {
		right = geom.Clamp(geom.SnapToGrid(right+dx, c.GridStep), left+c.MinWidth, c.Width)
	}
	if h.North() {
		top = geom.Clamp(geom.SnapToGrid(top+dy, c.GridStep), 0, bottom-c.MinHeight)
	}
	if h.South() {
		bottom = geom.Clamp(geom.SnapToGrid(bottom+dy, c.GridStep), top+c.MinHeight, c.Height)
	}

	switch o.Shape {
	case model.ShapeCircle:
		limit := math.Min(available(left, right, h.West(), c.Width), available(top, bottom, h.North(), c.Height))
		size := geom.SnapToGrid(math.Min(math.Max(right-left, bottom-top), limit), c.GridStep)
		if size > limit {
			size = geom.SnapDown(limit, c.GridStep)
		}
		size = math.Max(size, math.Max(c.MinWidth, c.MinHeight))
		left, right = span(left, right, size, h.West())
		top, bottom = span(top, bottom, size, h.North())
	case model.ShapeOval:
		w, ht := right-left, bottom-top
		if w > MaxOvalRatio*ht {
			w, ht = boundRatio(w, available(top, bottom, h.North(), c.Height), c.GridStep)
		} else if ht > MaxOvalRatio*w {
			ht, w = boundRatio(ht, available(left, right, h.West(), c.Width), c.GridStep)
		}
		left, right = span(left, right, w, h.West())
		top, bottom = span(top, bottom, ht, h.North())
	}

	o.XCm, o.YCm = left, top
	o.WidthCm, o.HeightCm = right-left, bottom-top
	return o
}

// boundRatio grows the short side of an oval, into at most room, until long
// is within MaxOvalRatio of it. When short cannot grow far enough long gives
// way. Both sides stay on the grid unless that would break the ratio.
func boundRatio(long, room, step float64) (float64, float64) {
	short := math.Min(geom.SnapUp(long/MaxOvalRatio, step), room)
	l := math.Min(long, geom.SnapDown(MaxOvalRatio*short, step))
	if short <= MaxOvalRatio*l+1e-9 {
		return l, short
	}
	short = math.Min(long/MaxOvalRatio, room)
	return math.Min(long, MaxOvalRatio*short), short
}

// available is the room a span may grow into while its anchored edge stays
// put. anchorHigh keeps hi fixed.
func available(lo, hi float64, anchorHigh bool, extent float64) float64 {
	if anchorHigh {
		return hi
	}
	return extent - lo
}

// span resizes [lo, hi] to size, keeping hi fixed when anchorHigh is set and
// lo fixed otherwise.
func span(lo, hi, size float64, anchorHigh bool) (float64, float64) {
	if anchorHigh {
		return hi - size, hi
	}
	return lo, lo + size
}

// FitOpening forces o back inside a w x h area, shrinking it when needed and
// restoring the shape rules.
func FitOpening(o model.Opening, c Constraints) model.Opening {
	w := geom.Clamp(o.WidthCm, c.MinWidth, c.Width)
	h := geom.Clamp(o.HeightCm, c.MinHeight, c.Height)
	switch o.Shape {
	case model.ShapeCircle:
		s := math.Min(w, h)
		w, h = s, s
	case model.ShapeOval:
		if w > MaxOvalRatio*h {
			w = MaxOvalRatio * h
		} else if h > MaxOvalRatio*w {
			h = MaxOvalRatio * w
		}
	}
	o.WidthCm, o.HeightCm = w, h
	o.XCm = geom.Clamp(o.XCm, 0, c.Width-w)
	o.YCm = geom.Clamp(o.YCm, 0, c.Height-h)
	return o
}
