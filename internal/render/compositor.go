package render

import (
	"image"
	"image/color"
	"image/draw"
	"io"
	"math"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	"github.com/piwi3910/FrameShop/internal/geom"
	"github.com/piwi3910/FrameShop/internal/model"
)

// Diagnostics receives render warnings and debug traces. A
// *zap.SugaredLogger satisfies it.
type Diagnostics interface {
	Warnw(msg string, keysAndValues ...interface{})
	Debugw(msg string, keysAndValues ...interface{})
}

// Compositor paints scenes. It never fails: images that cannot be loaded
// are replaced by placeholders and reported through Diagnostics.
type Compositor struct {
	diag   Diagnostics
	images ImageSource
}

// NewCompositor creates a compositor. A nil diag discards diagnostics.
func NewCompositor(diag Diagnostics, images ImageSource) *Compositor {
	if diag == nil {
		diag = zap.NewNop().Sugar()
	}
	if images == nil {
		images = NewFileLoader(16)
	}
	return &Compositor{diag: diag, images: images}
}

// Render builds the scene for a configuration and paints it.
func (c *Compositor) Render(cfg model.Configuration, cat model.Catalog, budgetPx float64) (*image.RGBA, Scene) {
	s := BuildScene(cfg, cat, budgetPx)
	return c.Paint(s, cfg.ArtworkRef), s
}

// Paint draws a prepared scene. artworkRef fills the basic-mode window.
func (c *Compositor) Paint(s Scene, artworkRef string) *image.RGBA {
	bounds := pixelRect(s.Outer)
	if s.Scale <= 0 || bounds.Empty() {
		c.diag.Warnw("nothing to render", "scale", s.Scale, "outer_w", s.Outer.W, "outer_h", s.Outer.H)
		return image.NewRGBA(image.Rect(0, 0, 1, 1))
	}
	dst := image.NewRGBA(bounds)
	c.paintFrame(dst, s)

	switch s.Mode {
	case model.ModePro:
		c.paintOpenings(dst, s)
	default:
		c.paintMats(dst, s)
		c.fillRect(dst, s.Window, artworkRef, "artwork")
	}

	c.diag.Debugw("rendered preview",
		"mode", s.Mode,
		"px_per_cm", s.Scale,
		"width", bounds.Dx(),
		"height", bounds.Dy(),
		"mats", len(s.Mats),
		"openings", len(s.Openings),
	)
	return dst
}

func (c *Compositor) paintFrame(dst *image.RGBA, s Scene) {
	fill(dst, s.Frame.Rect, s.Frame.Color)
	// inner shadow where the moulding meets the glazing
	edge := math.Max(1, s.Scale*0.15)
	draw.DrawMask(dst, dst.Bounds(), image.NewUniform(shade(s.Frame.Color, 0.6)), image.Point{},
		ringMask{inner: s.Visible, t: edge}, image.Point{}, draw.Over)
}

func (c *Compositor) paintMats(dst *image.RGBA, s Scene) {
	bevel := math.Max(1, s.Scale*0.3)
	for i, band := range s.Mats {
		fill(dst, band.Rect, band.Color)
		inner := s.Window
		if i+1 < len(s.Mats) {
			inner = s.Mats[i+1].Rect
		}
		draw.DrawMask(dst, dst.Bounds(), image.NewUniform(BevelColor), image.Point{},
			ringMask{inner: inner, t: bevel}, image.Point{}, draw.Over)
	}
	if len(s.Mats) == 0 {
		fill(dst, s.Visible, s.Board)
	}
}

func (c *Compositor) paintOpenings(dst *image.RGBA, s Scene) {
	fill(dst, s.Visible, s.Board)
	bevel := math.Max(1, s.Scale*0.3)
	for _, p := range s.Openings {
		r := pixelRect(p.Rect)
		if r.Empty() {
			continue
		}
		img := c.loadFitted(p.Opening.ImageRef, r.Dx(), r.Dy(), "opening", p.Opening.ID)
		mask := newShapeMask(p.Opening.Shape, p.Rect)
		draw.DrawMask(dst, r, img, image.Point{}, mask, r.Min, draw.Over)

		ring := newShapeMask(p.Opening.Shape, p.Rect)
		ring.ring = bevel
		draw.DrawMask(dst, r, image.NewUniform(BevelColor), image.Point{}, ring, r.Min, draw.Over)
	}
}

func (c *Compositor) fillRect(dst *image.RGBA, rect geom.Rect, ref, what string) {
	r := pixelRect(rect)
	if r.Empty() {
		return
	}
	img := c.loadFitted(ref, r.Dx(), r.Dy(), what, "")
	draw.Draw(dst, r, img, image.Point{}, draw.Over)
}

// loadFitted returns the referenced image cropped to fill w x h, or a
// placeholder when there is none or it cannot be loaded.
func (c *Compositor) loadFitted(ref string, w, h int, what, id string) image.Image {
	if ref == "" {
		return Placeholder(w, h, "No image")
	}
	img, err := c.images.Load(ref)
	if err != nil {
		c.diag.Warnw("image load failed, using placeholder", "what", what, "id", id, "ref", ref, "error", err)
		return Placeholder(w, h, "Image unavailable")
	}
	return imaging.Fill(img, w, h, imaging.Center, imaging.Lanczos)
}

func fill(dst *image.RGBA, r geom.Rect, col color.RGBA) {
	draw.Draw(dst, pixelRect(r), image.NewUniform(col), image.Point{}, draw.Src)
}

func shade(c color.RGBA, f float64) color.RGBA {
	return color.RGBA{R: uint8(float64(c.R) * f), G: uint8(float64(c.G) * f), B: uint8(float64(c.B) * f), A: c.A}
}

// EncodePNG writes a rendered surface as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	return imaging.Encode(w, img, imaging.PNG)
}

// SavePNG writes a rendered surface to a PNG file.
func SavePNG(path string, img image.Image) error {
	return imaging.Save(img, path)
}
