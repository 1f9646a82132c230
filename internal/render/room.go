package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"math/rand"

	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"
)

// BackgroundKind selects the source of a room mockup background.
type BackgroundKind int

const (
	BackgroundTexture BackgroundKind = iota // generated wall and floor
	BackgroundStock                         // bundled stock photo
	BackgroundPhoto                         // photo supplied by the user
)

// RoomBackground describes the backdrop of a room mockup. Ref is a file
// path for stock and uploaded photos and ignored for textures.
type RoomBackground struct {
	Kind BackgroundKind
	Ref  string
	Seed int64
}

// RoomPlacement positions the framed piece on the room canvas.
type RoomPlacement struct {
	CenterX     float64 // canvas px
	CenterY     float64
	Scale       float64 // canvas px per frame px
	RotationDeg float64 // counter-clockwise
}

// DefaultPlacement centres the frame in the upper part of the canvas at
// half the canvas width.
func DefaultPlacement(canvasW, canvasH, frameW int) RoomPlacement {
	s := 1.0
	if frameW > 0 {
		s = float64(canvasW) * 0.5 / float64(frameW)
	}
	return RoomPlacement{CenterX: float64(canvasW) / 2, CenterY: float64(canvasH) * 0.4, Scale: s}
}

// RoomTransform maps between frame-local pixels (as rendered by Paint) and
// room canvas pixels.
type RoomTransform struct {
	Placement RoomPlacement
	FrameW    float64
	FrameH    float64
}

func (t RoomTransform) sinCos() (float64, float64) {
	return math.Sincos(t.Placement.RotationDeg * math.Pi / 180)
}

// ToCanvas maps a frame-local point to the canvas.
func (t RoomTransform) ToCanvas(x, y float64) (float64, float64) {
	sin, cos := t.sinCos()
	dx := (x - t.FrameW/2) * t.Placement.Scale
	dy := (y - t.FrameH/2) * t.Placement.Scale
	return t.Placement.CenterX + dx*cos + dy*sin, t.Placement.CenterY - dx*sin + dy*cos
}

// FromCanvas maps a canvas point back into frame-local pixels.
func (t RoomTransform) FromCanvas(cx, cy float64) (float64, float64) {
	lx, ly := t.DeltaToLocal(cx-t.Placement.CenterX, cy-t.Placement.CenterY)
	return lx + t.FrameW/2, ly + t.FrameH/2
}

// DeltaToLocal converts a canvas pointer delta to a frame-local delta, so a
// drag in the room scene can drive the same layout gestures.
func (t RoomTransform) DeltaToLocal(dx, dy float64) (float64, float64) {
	if t.Placement.Scale == 0 {
		return 0, 0
	}
	sin, cos := t.sinCos()
	return (dx*cos - dy*sin) / t.Placement.Scale, (dx*sin + dy*cos) / t.Placement.Scale
}

// RenderRoom composites a rendered frame onto a background of the given
// canvas size. Background failures fall back to the generated texture.
func (c *Compositor) RenderRoom(frame image.Image, bg RoomBackground, p RoomPlacement, canvasW, canvasH int) (*image.NRGBA, RoomTransform) {
	fb := frame.Bounds()
	t := RoomTransform{Placement: p, FrameW: float64(fb.Dx()), FrameH: float64(fb.Dy())}
	canvas := c.background(bg, canvasW, canvasH)

	w := int(math.Round(float64(fb.Dx()) * p.Scale))
	h := int(math.Round(float64(fb.Dy()) * p.Scale))
	if w < 1 || h < 1 {
		c.diag.Warnw("frame too small for room mockup", "scale", p.Scale)
		return canvas, t
	}
	scaled := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), frame, fb, xdraw.Src, nil)

	var placed image.Image = scaled
	if p.RotationDeg != 0 {
		placed = imaging.Rotate(scaled, p.RotationDeg, color.Transparent)
	}
	pb := placed.Bounds()
	pos := image.Pt(
		int(math.Round(p.CenterX-float64(pb.Dx())/2)),
		int(math.Round(p.CenterY-float64(pb.Dy())/2)),
	)
	return imaging.Overlay(canvas, placed, pos, 1.0), t
}

func (c *Compositor) background(bg RoomBackground, w, h int) *image.NRGBA {
	if bg.Kind != BackgroundTexture {
		img, err := c.images.Load(bg.Ref)
		if err == nil {
			return imaging.Fill(img, w, h, imaging.Center, imaging.Lanczos)
		}
		c.diag.Warnw("room background failed, using texture", "ref", bg.Ref, "error", err)
	}
	return WallTexture(w, h, bg.Seed)
}

// WallTexture generates a plaster wall over a skirting board and wooden
// floor. The same seed yields the same image.
func WallTexture(w, h int, seed int64) *image.NRGBA {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	rng := rand.New(rand.NewSource(seed))
	wall := color.NRGBA{R: 0xe9, G: 0xe3, B: 0xd6, A: 0xff}
	floorTop := int(float64(h) * 0.82)
	skirting := floorTop - int(math.Max(2, float64(h)*0.02))

	draw.Draw(img, image.Rect(0, 0, w, skirting), image.NewUniform(wall), image.Point{}, draw.Src)
	for y := 0; y < skirting; y++ {
		for x := 0; x < w; x++ {
			n := uint8(rng.Intn(7))
			px := img.NRGBAAt(x, y)
			img.SetNRGBA(x, y, color.NRGBA{R: px.R - n, G: px.G - n, B: px.B - n, A: 0xff})
		}
	}
	draw.Draw(img, image.Rect(0, skirting, w, floorTop), image.NewUniform(color.NRGBA{R: 0xf7, G: 0xf5, B: 0xf0, A: 0xff}), image.Point{}, draw.Src)

	plank := int(math.Max(8, float64(w)/9))
	for x := 0; x < w; x += plank {
		tone := uint8(0x80 + rng.Intn(0x20))
		col := color.NRGBA{R: tone + 0x20, G: tone, B: tone - 0x30, A: 0xff}
		draw.Draw(img, image.Rect(x, floorTop, x+plank-1, h), image.NewUniform(col), image.Point{}, draw.Src)
	}
	return imaging.Blur(img, 0.6)
}
