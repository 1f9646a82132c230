package render

import (
	"image"
	"image/color"
	"math"

	"github.com/piwi3910/FrameShop/internal/geom"
	"github.com/piwi3910/FrameShop/internal/model"
)

// shapeMask is an alpha mask covering an opening's clip shape. When ring is
// positive only the band of that width inside the outline is opaque.
type shapeMask struct {
	shape  model.Shape
	r      geom.Rect
	radius float64
	ring   float64
}

func newShapeMask(shape model.Shape, r geom.Rect) *shapeMask {
	return &shapeMask{shape: shape, r: r, radius: math.Min(r.W, r.H) * 0.04}
}

func (m *shapeMask) ColorModel() color.Model { return color.AlphaModel }

func (m *shapeMask) Bounds() image.Rectangle { return pixelRect(m.r) }

func (m *shapeMask) At(x, y int) color.Color {
	px, py := float64(x)+0.5, float64(y)+0.5
	if !inside(m.shape, m.r, m.radius, px, py) {
		return color.Transparent
	}
	if m.ring > 0 && inside(m.shape, m.r.Inset(m.ring), math.Max(m.radius-m.ring, 0), px, py) {
		return color.Transparent
	}
	return color.Opaque
}

func inside(shape model.Shape, r geom.Rect, radius, px, py float64) bool {
	if r.W <= 0 || r.H <= 0 || !r.Contains(px, py) {
		return false
	}
	switch shape {
	case model.ShapeOval, model.ShapeCircle:
		cx, cy := r.Center()
		nx, ny := (px-cx)/(r.W/2), (py-cy)/(r.H/2)
		return nx*nx+ny*ny <= 1
	default:
		return insideRounded(r, radius, px, py)
	}
}

func insideRounded(r geom.Rect, radius, px, py float64) bool {
	if radius <= 0 {
		return true
	}
	// distance from the inner rectangle the corner arcs are centred on
	dx := math.Max(math.Max(r.X+radius-px, px-(r.Right()-radius)), 0)
	dy := math.Max(math.Max(r.Y+radius-py, py-(r.Bottom()-radius)), 0)
	return dx*dx+dy*dy <= radius*radius
}

// ringMask is an axis-aligned frame of width t just outside inner.
type ringMask struct {
	inner geom.Rect
	t     float64
}

func (m ringMask) ColorModel() color.Model { return color.AlphaModel }

func (m ringMask) Bounds() image.Rectangle { return pixelRect(m.inner.Inset(-m.t)) }

func (m ringMask) At(x, y int) color.Color {
	px, py := float64(x)+0.5, float64(y)+0.5
	if m.inner.Inset(-m.t).Contains(px, py) && !m.inner.Contains(px, py) {
		return color.Opaque
	}
	return color.Transparent
}

func pixelRect(r geom.Rect) image.Rectangle {
	return image.Rect(
		int(math.Floor(r.X)), int(math.Floor(r.Y)),
		int(math.Ceil(r.Right())), int(math.Ceil(r.Bottom())),
	)
}
