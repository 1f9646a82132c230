package layout

import (
	"fmt"

	"github.com/piwi3910/FrameShop/internal/geom"
	"github.com/piwi3910/FrameShop/internal/model"
)

// GestureState is the phase of a pointer manipulation.
type GestureState int

const (
	Idle GestureState = iota
	Moving
	Resizing
)

func (s GestureState) String() string {
	switch s {
	case Moving:
		return "moving"
	case Resizing:
		return "resizing"
	default:
		return "idle"
	}
}

// Gesture tracks the single opening being dragged. Pointer deltas arrive in
// pixels and are converted with the scale captured when the gesture began.
// Every drag update re-applies the accumulated delta to the geometry the
// opening had at the start, so snapping never drifts.
type Gesture struct {
	board   *Board
	state   GestureState
	id      string
	handle  Handle
	origin  model.Opening
	before  []model.Opening
	pxPerCm float64
	dxPx    float64
	dyPx    float64
}

// NewGesture creates an idle gesture tracker for a board.
func NewGesture(b *Board) *Gesture {
	return &Gesture{board: b}
}

// State returns the current phase.
func (g *Gesture) State() GestureState { return g.state }

// Target returns the id and handle of the opening being manipulated.
func (g *Gesture) Target() (string, Handle) { return g.id, g.handle }

// BeginMove starts moving an opening. Any gesture already in progress is
// ended first.
func (g *Gesture) BeginMove(id string, pxPerCm float64) error {
	return g.begin(Moving, id, HandleNone, pxPerCm)
}

// BeginResize starts dragging one of an opening's handles.
func (g *Gesture) BeginResize(id string, h Handle, pxPerCm float64) error {
	if h == HandleNone {
		return g.BeginMove(id, pxPerCm)
	}
	return g.begin(Resizing, id, h, pxPerCm)
}

func (g *Gesture) begin(state GestureState, id string, h Handle, pxPerCm float64) error {
	g.End()
	if !geom.Positive(pxPerCm) {
		return fmt.Errorf("begin %s gesture: invalid scale %v", state, pxPerCm)
	}
	o, ok := g.board.Get(id)
	if !ok {
		return fmt.Errorf("begin %s gesture on %s: %w", state, id, ErrNoOpening)
	}
	g.state = state
	g.id = id
	g.handle = h
	g.origin = o
	g.before = g.board.Openings()
	g.pxPerCm = pxPerCm
	g.dxPx, g.dyPx = 0, 0
	return nil
}

// Drag adds a pointer delta in pixels and updates the opening. It returns
// the new geometry, or false when no gesture is active.
func (g *Gesture) Drag(dxPx, dyPx float64) (model.Opening, bool) {
	if g.state == Idle {
		return model.Opening{}, false
	}
	if !geom.Finite(dxPx) || !geom.Finite(dyPx) {
		o, ok := g.board.Get(g.id)
		return o, ok
	}
	g.dxPx += dxPx
	g.dyPx += dyPx
	dx, dy := g.dxPx/g.pxPerCm, g.dyPx/g.pxPerCm

	var next model.Opening
	if g.state == Moving {
		next = MoveOpening(g.origin, dx, dy, g.board.c)
	} else {
		next = ResizeOpening(g.origin, g.handle, dx, dy, g.board.c)
	}
	g.board.restore(next)
	o, ok := g.board.Get(g.id)
	return o, ok
}

// End commits the gesture and returns to Idle. It returns the openings as
// they were before the gesture and whether anything changed.
func (g *Gesture) End() ([]model.Opening, bool) {
	if g.state == Idle {
		return nil, false
	}
	before := g.before
	cur, ok := g.board.Get(g.id)
	changed := ok && geometryDiffers(cur, g.origin)
	g.reset()
	return before, changed
}

// Cancel abandons the gesture, restoring the geometry captured at begin.
func (g *Gesture) Cancel() {
	if g.state == Idle {
		return
	}
	g.board.restore(g.origin)
	g.reset()
}

func (g *Gesture) reset() {
	g.state = Idle
	g.id = ""
	g.handle = HandleNone
	g.origin = model.Opening{}
	g.before = nil
	g.dxPx, g.dyPx = 0, 0
}

func geometryDiffers(a, b model.Opening) bool {
	return a.XCm != b.XCm || a.YCm != b.YCm || a.WidthCm != b.WidthCm || a.HeightCm != b.HeightCm
}
