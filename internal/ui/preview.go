package ui

import (
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/piwi3910/FrameShop/internal/layout"
	"github.com/piwi3910/FrameShop/internal/model"
	"github.com/piwi3910/FrameShop/internal/render"
	"github.com/piwi3910/FrameShop/internal/ui/widgets"
)

// handlePx is the grab distance around a resize handle, in screen pixels.
const handlePx = 8.0

const (
	previewMinPx    = 240  // smallest preview widget
	previewFloorPx  = 120  // smallest rendered frame
	previewMarginPx = 12.0 // kept free around the frame
)

// ─── Preview rendering ─────────────────────────────────────

// previewBudget is the longest rendered side for a preview area of the
// given size: the shorter side less a margin, never below previewFloorPx
// and never above the configured budget. An area that has not been laid out
// yet uses the configured budget.
func previewBudget(size fyne.Size, configured float64) float64 {
	if size.Width <= 0 || size.Height <= 0 {
		return configured
	}
	side := math.Max(float64(min(size.Width, size.Height))-2*previewMarginPx, previewFloorPx)
	return math.Min(side, configured)
}

func (a *App) renderPreview() {
	if a.preview == nil {
		return
	}
	img, scene := a.compositor.Render(a.cfg, a.catalog, previewBudget(a.previewSize, a.config.PreviewBudgetPx))
	a.frameImg, a.scene = img, scene
	a.preview.SetImage(img)
	outlines, handles := overlayFor(scene, a.editor.Selected())
	a.preview.SetOverlay(outlines, handles)
}

// overlayFor outlines every opening of a pro-mode scene and places the
// resize handles of the selected one, all in scene pixels.
func overlayFor(s render.Scene, selected string) ([][]fyne.Position, []fyne.Position) {
	if s.Mode != model.ModePro {
		return nil, nil
	}
	var outlines [][]fyne.Position
	var handles []fyne.Position
	for _, po := range s.Openings {
		r := po.Rect
		outlines = append(outlines, widgets.RectOutline(float32(r.X), float32(r.Y), float32(r.W), float32(r.H)))
		if po.Opening.ID != selected {
			continue
		}
		for _, h := range layout.AllHandles {
			fx, fy := h.Anchor()
			handles = append(handles, fyne.NewPos(float32(r.X+fx*r.W), float32(r.Y+fy*r.H)))
		}
	}
	return outlines, handles
}

// ─── Layout gestures ───────────────────────────────────────

// resizePreview re-renders for a new preview size. The room placement is
// rescaled so the frame keeps its size on the wall.
func (a *App) resizePreview(size fyne.Size) {
	before := previewBudget(a.previewSize, a.config.PreviewBudgetPx)
	a.previewSize = size
	if previewBudget(size, a.config.PreviewBudgetPx) == before {
		return
	}
	oldW := 0
	if a.frameImg != nil {
		oldW = a.frameImg.Bounds().Dx()
	}
	a.renderPreview()
	if r := &a.room; r.placed && oldW > 0 && a.frameImg != nil {
		if newW := a.frameImg.Bounds().Dx(); newW > 0 {
			r.placement.Scale *= float64(oldW) / float64(newW)
		}
	}
	a.scheduleRoom()
}

func (a *App) bindPreview() {
	a.preview.OnResize = a.resizePreview
	a.preview.OnPress = func(x, y float32) {
		a.beginGestureAt(float64(x), float64(y))
	}
	a.preview.OnDrag = func(dx, dy float32) {
		a.dragGesture(float64(dx), float64(dy))
	}
	a.preview.OnRelease = a.endGesture
	a.preview.OnTapped = func(x, y float32) {
		a.selectAt(float64(x), float64(y))
	}
}

// hitAt finds the opening under a scene pixel.
func (a *App) hitAt(px, py float64) (string, layout.Handle, bool) {
	if a.cfg.Mode() != model.ModePro || a.scene.Scale <= 0 {
		return "", layout.HandleNone, false
	}
	xCm, yCm := a.scene.CmAt(px, py)
	return a.editor.Board.HitTest(xCm, yCm, handlePx/a.scene.Scale)
}

// beginGestureAt starts a move or resize at a scene pixel and reports
// whether an opening was hit.
func (a *App) beginGestureAt(px, py float64) bool {
	id, h, ok := a.hitAt(px, py)
	if !ok {
		return false
	}
	if err := a.editor.Begin(id, h, a.scene.Scale); err != nil {
		a.log.Warn("could not start gesture", zap.String("opening", id), zap.Error(err))
		return false
	}
	a.log.Debug("gesture started", zap.String("opening", id), zap.Stringer("handle", h))
	return true
}

// dragGesture feeds a scene-pixel delta to the active gesture.
func (a *App) dragGesture(dx, dy float64) {
	if _, ok := a.editor.Gesture.Drag(dx, dy); ok {
		a.refresh()
	}
}

func (a *App) endGesture() {
	if a.editor.Gesture.State() == layout.Idle {
		return
	}
	if a.editor.EndGesture() {
		a.setStatus("%s", "Layout changed")
	}
	a.refresh()
}

// cancelGesture abandons a drag in progress and restores the opening.
func (a *App) cancelGesture() {
	if a.editor.Gesture.State() == layout.Idle {
		return
	}
	a.editor.Gesture.Cancel()
	a.setStatus("%s", "Change cancelled")
	a.refresh()
}

func (a *App) selectAt(px, py float64) {
	id, _, _ := a.hitAt(px, py)
	a.editor.Select(id)
	a.renderPreview()
}

// ─── Editor toolbar ────────────────────────────────────────

func (a *App) buildEditorToolbar() fyne.CanvasObject {
	addShape := func(shape model.Shape) func() {
		return func() {
			if a.cfg.Mode() != model.ModePro {
				dialog.ShowInformation("Basic mode", "Switch the mat layout to Pro to add openings.", a.window)
				return
			}
			o := a.editor.Add(shape)
			a.setStatus("Added %s opening", o.Shape)
			a.refresh()
		}
	}

	return container.NewHBox(
		toolButton(theme.CheckButtonIcon(), "Add rectangle opening", addShape(model.ShapeRect)),
		toolButton(theme.RadioButtonIcon(), "Add oval opening", addShape(model.ShapeOval)),
		toolButton(theme.RadioButtonCheckedIcon(), "Add circle opening", addShape(model.ShapeCircle)),
		widget.NewSeparator(),
		toolButton(theme.FileImageIcon(), "Set image of selected opening", a.setOpeningImage),
		toolButton(theme.DeleteIcon(), "Delete selected opening", a.deleteSelected),
		widget.NewSeparator(),
		toolButton(theme.ContentUndoIcon(), "Undo", a.undo),
		toolButton(theme.ContentRedoIcon(), "Redo", a.redo),
	)
}

func (a *App) selectedOpening() (string, bool) {
	id := a.editor.Selected()
	if id == "" || a.cfg.Mode() != model.ModePro {
		dialog.ShowInformation("No opening selected", "Click an opening in the preview first.", a.window)
		return "", false
	}
	return id, true
}

func (a *App) deleteSelected() {
	id, ok := a.selectedOpening()
	if !ok {
		return
	}
	if err := a.editor.Delete(id); err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	a.refresh()
}

func (a *App) setOpeningImage() {
	id, ok := a.selectedOpening()
	if !ok {
		return
	}
	a.pickImage(func(path string) {
		if err := a.editor.SetImage(id, path); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.refresh()
	})
}

func (a *App) undo() {
	label := a.editor.History.UndoLabel()
	if a.editor.Undo() {
		a.setStatus("Undone: %s", label)
		a.refresh()
	}
}

func (a *App) redo() {
	label := a.editor.History.RedoLabel()
	if a.editor.Redo() {
		a.setStatus("Redone: %s", label)
		a.refresh()
	}
}
