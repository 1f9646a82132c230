// Package widgets holds the custom fyne widgets of the configurator.
package widgets

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

var (
	outlineColor = color.NRGBA{R: 33, G: 150, B: 243, A: 255}
	handleFill   = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

const handleSize = 8

// Surface shows a rendered image at one image pixel per unit and reports
// pointer activity in image pixel coordinates. Outlines and handles are
// drawn on top, also in image pixels.
//
// The surface asks only for its configured minimum size. Owners that want
// the image to fit render it for the size passed to OnResize.
//
// A press is reported once per gesture: by MouseDown on desktop, or by the
// first Dragged event where there is no mouse.
type Surface struct {
	widget.BaseWidget

	img      image.Image
	outlines [][]fyne.Position
	handles  []fyne.Position
	minSize  fyne.Size
	offset   fyne.Position

	pressed bool

	OnPress   func(x, y float32)
	OnDrag    func(dx, dy float32)
	OnRelease func()
	OnTapped  func(x, y float32)
	OnScroll  func(dy float32)
	OnResize  func(size fyne.Size)
}

// NewSurface creates an empty surface with a minimum size.
func NewSurface(minW, minH float32) *Surface {
	s := &Surface{minSize: fyne.NewSize(minW, minH)}
	s.ExtendBaseWidget(s)
	return s
}

// SetImage replaces the displayed image.
func (s *Surface) SetImage(img image.Image) {
	s.img = img
	s.Refresh()
}

// Image returns the displayed image.
func (s *Surface) Image() image.Image { return s.img }

// SetOverlay replaces the outlines (closed polygons) and handle markers.
func (s *Surface) SetOverlay(outlines [][]fyne.Position, handles []fyne.Position) {
	s.outlines = outlines
	s.handles = handles
	s.Refresh()
}

func (s *Surface) toImage(p fyne.Position) (float32, float32) {
	return p.X - s.offset.X, p.Y - s.offset.Y
}

// MouseDown starts a gesture on desktop.
func (s *Surface) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	s.press(ev.Position)
}

// MouseUp ends a gesture that did not turn into a drag.
func (s *Surface) MouseUp(*desktop.MouseEvent) {
	s.release()
}

// Dragged reports the pointer delta since the previous event.
func (s *Surface) Dragged(ev *fyne.DragEvent) {
	if !s.pressed {
		s.press(ev.Position.SubtractXY(ev.Dragged.DX, ev.Dragged.DY))
	}
	if s.OnDrag != nil {
		s.OnDrag(ev.Dragged.DX, ev.Dragged.DY)
	}
}

// DragEnd ends the gesture.
func (s *Surface) DragEnd() {
	s.release()
}

// Tapped reports a click without movement.
func (s *Surface) Tapped(ev *fyne.PointEvent) {
	if s.OnTapped != nil {
		x, y := s.toImage(ev.Position)
		s.OnTapped(x, y)
	}
}

// Scrolled reports wheel movement, used for zooming.
func (s *Surface) Scrolled(ev *fyne.ScrollEvent) {
	if s.OnScroll != nil {
		s.OnScroll(ev.Scrolled.DY)
	}
}

func (s *Surface) press(p fyne.Position) {
	if s.pressed {
		return
	}
	s.pressed = true
	if s.OnPress != nil {
		x, y := s.toImage(p)
		s.OnPress(x, y)
	}
}

func (s *Surface) release() {
	if !s.pressed {
		return
	}
	s.pressed = false
	if s.OnRelease != nil {
		s.OnRelease()
	}
}

func (s *Surface) CreateRenderer() fyne.WidgetRenderer {
	r := &surfaceRenderer{s: s}
	r.rebuild()
	return r
}

type surfaceRenderer struct {
	s       *Surface
	objects []fyne.CanvasObject
	size    fyne.Size
}

func (r *surfaceRenderer) imageSize() fyne.Size {
	if r.s.img == nil {
		return fyne.NewSize(0, 0)
	}
	b := r.s.img.Bounds()
	return fyne.NewSize(float32(b.Dx()), float32(b.Dy()))
}

func (r *surfaceRenderer) rebuild() {
	r.objects = nil

	bg := canvas.NewRectangle(color.NRGBA{R: 236, G: 236, B: 236, A: 255})
	bg.Resize(r.size)
	r.objects = append(r.objects, bg)

	is := r.imageSize()
	off := fyne.NewPos(0, 0)
	if r.size.Width > is.Width {
		off.X = (r.size.Width - is.Width) / 2
	}
	if r.size.Height > is.Height {
		off.Y = (r.size.Height - is.Height) / 2
	}
	r.s.offset = off

	if r.s.img != nil {
		img := canvas.NewImageFromImage(r.s.img)
		img.FillMode = canvas.ImageFillStretch
		img.Resize(is)
		img.Move(off)
		r.objects = append(r.objects, img)
	}

	for _, poly := range r.s.outlines {
		for i := range poly {
			a, b := poly[i], poly[(i+1)%len(poly)]
			line := canvas.NewLine(outlineColor)
			line.StrokeWidth = 1.5
			line.Position1 = a.Add(off)
			line.Position2 = b.Add(off)
			r.objects = append(r.objects, line)
		}
	}

	for _, h := range r.s.handles {
		m := canvas.NewRectangle(handleFill)
		m.StrokeColor = outlineColor
		m.StrokeWidth = 1
		m.Resize(fyne.NewSize(handleSize, handleSize))
		m.Move(h.Add(off).SubtractXY(handleSize/2, handleSize/2))
		r.objects = append(r.objects, m)
	}
}

func (r *surfaceRenderer) Layout(size fyne.Size) {
	changed := size != r.size
	r.size = size
	r.rebuild()
	if changed && r.s.OnResize != nil {
		r.s.OnResize(size)
	}
}

func (r *surfaceRenderer) MinSize() fyne.Size {
	return r.s.minSize
}

func (r *surfaceRenderer) Refresh() {
	r.rebuild()
	canvas.Refresh(r.s)
}

func (r *surfaceRenderer) Destroy()                     {}
func (r *surfaceRenderer) Objects() []fyne.CanvasObject { return r.objects }

// RectOutline returns the corners of an axis-aligned rectangle.
func RectOutline(x, y, w, h float32) []fyne.Position {
	return []fyne.Position{
		fyne.NewPos(x, y),
		fyne.NewPos(x+w, y),
		fyne.NewPos(x+w, y+h),
		fyne.NewPos(x, y+h),
	}
}
