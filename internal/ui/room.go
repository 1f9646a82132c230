package ui

import (
	"image"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/piwi3910/FrameShop/internal/render"
	"github.com/piwi3910/FrameShop/internal/ui/widgets"
)

// Room mockup canvas size in pixels.
const (
	roomW = 900
	roomH = 600

	minRoomScale = 0.05
	maxRoomScale = 8.0
)

// StockRoomDir is the folder under the data directory holding stock room
// photos.
const StockRoomDir = "rooms"

const (
	textureOption = "Wall texture"
	uploadOption  = "Your photo"
)

// roomDrag is what a pointer drag on the room canvas manipulates.
type roomDrag int

const (
	roomDragNone roomDrag = iota
	roomDragFrame
	roomDragOpening
)

type roomState struct {
	visible   bool
	guard     render.SnapshotGuard
	surface   *widgets.Surface
	bg        render.RoomBackground
	placement render.RoomPlacement
	placed    bool
	transform render.RoomTransform
	image     image.Image
	drag      roomDrag
}

// stockRooms lists the image files of a stock room folder, sorted by name.
// A missing folder yields nothing.
func stockRooms(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".jpg", ".jpeg", ".png":
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(out)
	return out
}

// zoomScale applies a wheel movement to a placement scale.
func zoomScale(scale, dy float64) float64 {
	s := scale * math.Pow(1.0015, dy)
	return math.Max(minRoomScale, math.Min(maxRoomScale, s))
}

// insideFrame reports whether a frame-local point lies on the frame.
func insideFrame(t render.RoomTransform, x, y float64) bool {
	return x >= 0 && y >= 0 && x < t.FrameW && y < t.FrameH
}

// roomOverlay maps frame-local outlines and handles onto the room canvas.
func roomOverlay(t render.RoomTransform, outlines [][]fyne.Position, handles []fyne.Position) ([][]fyne.Position, []fyne.Position) {
	toCanvas := func(p fyne.Position) fyne.Position {
		x, y := t.ToCanvas(float64(p.X), float64(p.Y))
		return fyne.NewPos(float32(x), float32(y))
	}
	var outs [][]fyne.Position
	for _, poly := range outlines {
		mapped := make([]fyne.Position, len(poly))
		for i, p := range poly {
			mapped[i] = toCanvas(p)
		}
		outs = append(outs, mapped)
	}
	var hs []fyne.Position
	for _, h := range handles {
		hs = append(hs, toCanvas(h))
	}
	return outs, hs
}

func (a *App) buildRoomPanel() fyne.CanvasObject {
	r := &a.room
	r.surface = widgets.NewSurface(roomW, roomH)
	r.surface.OnPress = func(x, y float32) { a.roomPress(float64(x), float64(y)) }
	r.surface.OnDrag = func(dx, dy float32) { a.roomDragBy(float64(dx), float64(dy)) }
	r.surface.OnRelease = a.roomRelease
	r.surface.OnScroll = func(dy float32) {
		r.placement.Scale = zoomScale(r.placement.Scale, float64(dy))
		a.scheduleRoom()
	}

	stockDir := filepath.Join(a.config.DataDir, StockRoomDir)
	stock := stockRooms(stockDir)
	options := []string{textureOption}
	for _, p := range stock {
		options = append(options, shortPath(p))
	}
	options = append(options, uploadOption)

	bgSelect := widget.NewSelect(options, nil)
	bgSelect.SetSelected(textureOption)
	bgSelect.OnChanged = func(choice string) {
		switch choice {
		case textureOption:
			r.bg = render.RoomBackground{Kind: render.BackgroundTexture, Seed: r.bg.Seed}
			a.scheduleRoom()
		case uploadOption:
			a.pickImage(func(path string) {
				r.bg = render.RoomBackground{Kind: render.BackgroundPhoto, Ref: path, Seed: r.bg.Seed}
				a.scheduleRoom()
			})
		default:
			r.bg = render.RoomBackground{Kind: render.BackgroundStock, Ref: filepath.Join(stockDir, choice), Seed: r.bg.Seed}
			a.scheduleRoom()
		}
	}

	shuffle := toolButton(theme.ViewRefreshIcon(), "New wall texture", func() {
		r.bg.Seed++
		if r.bg.Kind == render.BackgroundTexture {
			a.scheduleRoom()
		}
	})

	rotation := widget.NewSlider(-45, 45)
	rotation.Step = 0.5
	rotation.OnChanged = func(v float64) {
		r.placement.RotationDeg = v
		a.scheduleRoom()
	}

	reset := toolButton(theme.ZoomFitIcon(), "Reset placement", func() {
		r.placed = false
		rotation.SetValue(0)
		a.scheduleRoom()
	})
	save := toolButton(theme.DocumentSaveIcon(), "Save mockup as PNG", a.exportRoomPNG)

	toolbar := container.NewBorder(nil, nil,
		container.NewHBox(widget.NewLabel("Background"), bgSelect, shuffle),
		container.NewHBox(reset, save),
		container.NewBorder(nil, nil, widget.NewLabel("Tilt"), nil, rotation),
	)
	hint := widget.NewLabelWithStyle("Drag the frame to move it, scroll to resize, drag an opening to edit the layout.",
		fyne.TextAlignCenter, fyne.TextStyle{Italic: true})

	return container.NewBorder(toolbar, hint, nil, nil, container.NewScroll(r.surface))
}

// scheduleRoom re-renders the room mockup in the background. A render that
// is overtaken by a newer one is dropped.
func (a *App) scheduleRoom() {
	r := &a.room
	if !r.visible || r.surface == nil || a.frameImg == nil {
		return
	}
	frame := a.frameImg
	if !r.placed {
		r.placement = render.DefaultPlacement(roomW, roomH, frame.Bounds().Dx())
		r.placed = true
	}
	token := r.guard.Begin()
	bg, p := r.bg, r.placement
	outlines, handles := overlayFor(a.scene, a.editor.Selected())

	go func() {
		img, t := a.compositor.RenderRoom(frame, bg, p, roomW, roomH)
		fyne.Do(func() {
			if !r.guard.Current(token) {
				return
			}
			r.transform, r.image = t, img
			r.surface.SetImage(img)
			r.surface.SetOverlay(roomOverlay(t, outlines, handles))
		})
	}()
}

func (a *App) roomPress(x, y float64) {
	r := &a.room
	r.drag = roomDragNone
	lx, ly := r.transform.FromCanvas(x, y)
	if !insideFrame(r.transform, lx, ly) {
		return
	}
	if a.beginGestureAt(lx, ly) {
		r.drag = roomDragOpening
		return
	}
	r.drag = roomDragFrame
}

func (a *App) roomDragBy(dx, dy float64) {
	r := &a.room
	switch r.drag {
	case roomDragOpening:
		a.dragGesture(r.transform.DeltaToLocal(dx, dy))
	case roomDragFrame:
		r.placement.CenterX += dx
		r.placement.CenterY += dy
		a.scheduleRoom()
	}
}

func (a *App) roomRelease() {
	r := &a.room
	if r.drag == roomDragOpening {
		a.endGesture()
	}
	if r.drag == roomDragFrame {
		a.log.Debug("frame placed",
			zap.Float64("x", r.placement.CenterX),
			zap.Float64("y", r.placement.CenterY),
			zap.Float64("scale", r.placement.Scale))
	}
	r.drag = roomDragNone
}
