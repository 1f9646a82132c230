// Package render turns a configuration into pixels: the build preview in
// basic and pro mode, and the room mockup composite.
package render

import (
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/piwi3910/FrameShop/internal/geom"
	"github.com/piwi3910/FrameShop/internal/model"
)

// Fallback colours for items missing from the catalog.
var (
	NeutralFrame = color.RGBA{R: 0x8a, G: 0x8a, B: 0x8a, A: 0xff}
	NeutralMat   = color.RGBA{R: 0xf2, G: 0xf2, B: 0xf2, A: 0xff}
	BevelColor   = color.RGBA{R: 0xfa, G: 0xf6, B: 0xea, A: 0xff}
)

// PixelsPerCm derives the render scale so the larger outer dimension fills
// budgetPx. It returns 0 when no sensible scale exists.
func PixelsPerCm(outerW, outerH, budgetPx float64) float64 {
	longest := math.Max(outerW, outerH)
	if !geom.Positive(longest) || !geom.Positive(budgetPx) {
		return 0
	}
	return budgetPx / longest
}

// Band is one coloured ring of the scene: the frame moulding or a mat.
// Rect is the band's outer edge in pixels.
type Band struct {
	ItemID string
	Rect   geom.Rect
	Color  color.RGBA
}

// PlacedOpening is an opening with its pixel rectangle.
type PlacedOpening struct {
	Opening model.Opening
	Rect    geom.Rect
}

// Scene is the pixel geometry of one render pass, derived from a single
// scale so every surface lines up.
type Scene struct {
	Mode     model.LayoutMode
	Scale    float64 // px per cm
	Outer    geom.Rect
	Frame    Band
	Visible  geom.Rect
	Mats     []Band // outermost first
	Window   geom.Rect
	Board    color.RGBA // pro-mode mat board colour
	Openings []PlacedOpening
}

// BuildScene lays out a configuration for a pixel budget.
func BuildScene(cfg model.Configuration, cat model.Catalog, budgetPx float64) Scene {
	outerW, outerH := cfg.OuterSize()
	scale := PixelsPerCm(outerW, outerH, budgetPx)
	return BuildSceneAt(cfg, cat, scale)
}

// BuildSceneAt lays out a configuration at a fixed scale. The mat stack is
// folded outermost first, each layer insetting the rectangle left by the
// previous one.
func BuildSceneAt(cfg model.Configuration, cat model.Catalog, scale float64) Scene {
	outerW, outerH := cfg.OuterSize()
	s := Scene{
		Mode:  cfg.Mode(),
		Scale: scale,
		Outer: geom.Rect{W: outerW * scale, H: outerH * scale},
		Board: NeutralMat,
	}

	s.Frame = Band{ItemID: cfg.FrameID, Rect: s.Outer, Color: NeutralFrame}
	if f, ok := cat.Frame(cfg.FrameID); ok {
		s.Frame.Color = ParseHexColor(f.Color, NeutralFrame)
	}

	rect := s.Outer.Inset(cfg.FaceWidthCm * scale)
	s.Visible = rect
	for _, layer := range cfg.ActiveMats() {
		band := Band{ItemID: layer.MatID, Rect: rect, Color: NeutralMat}
		if m, ok := cat.Mat(layer.MatID); ok {
			band.Color = ParseHexColor(m.Color, NeutralMat)
		}
		s.Mats = append(s.Mats, band)
		rect = rect.Inset(layer.BorderCm * scale)
	}
	s.Window = rect

	if len(s.Mats) > 0 {
		s.Board = s.Mats[0].Color
	}
	for _, o := range cfg.OpeningList() {
		s.Openings = append(s.Openings, PlacedOpening{
			Opening: o,
			Rect: geom.Rect{
				X: s.Visible.X + o.XCm*scale,
				Y: s.Visible.Y + o.YCm*scale,
				W: o.WidthCm * scale,
				H: o.HeightCm * scale,
			},
		})
	}
	return s
}

// CmAt converts a pixel position in the scene to cm relative to the
// visible area's top-left corner.
func (s Scene) CmAt(px, py float64) (float64, float64) {
	if s.Scale <= 0 {
		return 0, 0
	}
	return (px - s.Visible.X) / s.Scale, (py - s.Visible.Y) / s.Scale
}

// ParseHexColor parses "#RRGGBB" or "RRGGBB", returning fallback when the
// string is not a colour.
func ParseHexColor(s string, fallback color.RGBA) color.RGBA {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return fallback
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fallback
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}
