// Package layout maintains the openings of a pro-mode mat board and applies
// pointer-driven move and resize operations under geometric constraints.
package layout

import (
	"errors"
	"fmt"
	"math"

	"github.com/piwi3910/FrameShop/internal/geom"
	"github.com/piwi3910/FrameShop/internal/model"
)

// ErrNoOpening is returned when an opening id is not on the board.
var ErrNoOpening = errors.New("opening not found")

// Board holds the visible mat area and the openings cut into it.
type Board struct {
	c        Constraints
	openings []model.Opening
}

// NewBoard creates a board for a w x h cm visible area. The given openings
// are copied and fitted into the area.
func NewBoard(w, h float64, openings []model.Opening) *Board {
	b := &Board{c: DefaultConstraints(w, h)}
	b.Replace(openings)
	return b
}

// Constraints returns the rules currently applied to updates.
func (b *Board) Constraints() Constraints { return b.c }

// Size returns the visible area in cm.
func (b *Board) Size() (float64, float64) { return b.c.Width, b.c.Height }

// SetSnap changes the grid step and magnet threshold. Invalid values keep
// the previous setting.
func (b *Board) SetSnap(gridStep, magnet float64) {
	if geom.ValidLength(gridStep) {
		b.c.GridStep = gridStep
	}
	if geom.Finite(magnet) && magnet >= 0 {
		b.c.Magnet = magnet
	}
}

// SetVisibleArea changes the area and re-fits every opening into it.
func (b *Board) SetVisibleArea(w, h float64) {
	if !geom.Positive(w) || !geom.Positive(h) {
		return
	}
	b.c.Width, b.c.Height = w, h
	for i := range b.openings {
		b.openings[i] = FitOpening(b.openings[i], b.c)
	}
}

// Openings returns a copy of the openings in stacking order.
func (b *Board) Openings() []model.Opening {
	return model.CopyOpenings(b.openings)
}

// Replace swaps in a new set of openings, fitted into the area.
func (b *Board) Replace(openings []model.Opening) {
	b.openings = model.CopyOpenings(openings)
	if b.openings == nil {
		b.openings = []model.Opening{}
	}
	for i := range b.openings {
		b.openings[i] = FitOpening(b.openings[i], b.c)
	}
}

// Get returns the opening with the given id.
func (b *Board) Get(id string) (model.Opening, bool) {
	i := b.index(id)
	if i < 0 {
		return model.Opening{}, false
	}
	return b.openings[i], true
}

// Add creates a centred opening a quarter of the smaller visible dimension
// in size (never below the minimum) and returns it.
func (b *Board) Add(shape model.Shape) model.Opening {
	size := math.Max(math.Min(b.c.Width, b.c.Height)/4, math.Max(b.c.MinWidth, b.c.MinHeight))
	size = geom.SnapToGrid(size, b.c.GridStep)
	w, h := size, size
	if shape == model.ShapeOval {
		w = math.Min(size*1.4, b.c.Width)
	}
	o := model.NewOpening(shape, (b.c.Width-w)/2, (b.c.Height-h)/2, w, h)
	o = FitOpening(o, b.c)
	b.openings = append(b.openings, o)
	return o
}

// Delete removes an opening.
func (b *Board) Delete(id string) error {
	i := b.index(id)
	if i < 0 {
		return fmt.Errorf("delete %s: %w", id, ErrNoOpening)
	}
	b.openings = append(b.openings[:i], b.openings[i+1:]...)
	return nil
}

// SetImage attaches a picture to an opening. An empty ref clears it.
func (b *Board) SetImage(id, ref string) error {
	i := b.index(id)
	if i < 0 {
		return fmt.Errorf("set image on %s: %w", id, ErrNoOpening)
	}
	b.openings[i].ImageRef = ref
	return nil
}

// Move translates an opening by (dxCm, dyCm) from its current position.
func (b *Board) Move(id string, dxCm, dyCm float64) (model.Opening, error) {
	i := b.index(id)
	if i < 0 {
		return model.Opening{}, fmt.Errorf("move %s: %w", id, ErrNoOpening)
	}
	if !geom.Finite(dxCm) || !geom.Finite(dyCm) {
		return b.openings[i], nil
	}
	b.openings[i] = MoveOpening(b.openings[i], dxCm, dyCm, b.c)
	return b.openings[i], nil
}

// Resize drags a handle of an opening by (dxCm, dyCm).
func (b *Board) Resize(id string, h Handle, dxCm, dyCm float64) (model.Opening, error) {
	i := b.index(id)
	if i < 0 {
		return model.Opening{}, fmt.Errorf("resize %s: %w", id, ErrNoOpening)
	}
	if h == HandleNone || !geom.Finite(dxCm) || !geom.Finite(dyCm) {
		return b.openings[i], nil
	}
	b.openings[i] = ResizeOpening(b.openings[i], h, dxCm, dyCm, b.c)
	return b.openings[i], nil
}

// restore puts back a previously captured geometry, keeping the image.
func (b *Board) restore(o model.Opening) {
	if i := b.index(o.ID); i >= 0 {
		o.ImageRef = b.openings[i].ImageRef
		b.openings[i] = FitOpening(o, b.c)
	}
}

// HitTest finds the topmost opening under the point (cm). A point within
// tol of a handle returns that handle; inside the body returns HandleNone.
func (b *Board) HitTest(x, y, tol float64) (string, Handle, bool) {
	for i := len(b.openings) - 1; i >= 0; i-- {
		o := b.openings[i]
		for _, h := range AllHandles {
			fx, fy := h.Anchor()
			hx, hy := o.XCm+fx*o.WidthCm, o.YCm+fy*o.HeightCm
			if math.Abs(x-hx) <= tol && math.Abs(y-hy) <= tol {
				return o.ID, h, true
			}
		}
		r := geom.Rect{X: o.XCm, Y: o.YCm, W: o.WidthCm, H: o.HeightCm}
		if r.Contains(x, y) {
			return o.ID, HandleNone, true
		}
	}
	return "", HandleNone, false
}

func (b *Board) index(id string) int {
	for i := range b.openings {
		if b.openings[i].ID == id {
			return i
		}
	}
	return -1
}
