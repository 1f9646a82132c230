package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/FrameShop/internal/model"
)

func boardWith(openings ...model.Opening) *Board {
	return NewBoard(50, 40, openings)
}

func TestGestureMoveAccumulatesWithoutDrift(t *testing.T) {
	b := boardWith(rectAt(model.ShapeRect, 5, 5, 10, 10))
	g := NewGesture(b)
	require.NoError(t, g.BeginMove("o1", 10))
	assert.Equal(t, Moving, g.State())

	// 3px steps are 0.3cm, each below half a grid step
	var o model.Opening
	for i := 0; i < 10; i++ {
		o, _ = g.Drag(3, 0)
	}
	assert.Equal(t, 8.0, o.XCm)
	assert.Equal(t, 5.0, o.YCm)

	before, changed := g.End()
	assert.True(t, changed)
	assert.Equal(t, 5.0, before[0].XCm)
	assert.Equal(t, Idle, g.State())
}

func TestGestureResizeUsesCapturedScale(t *testing.T) {
	b := boardWith(rectAt(model.ShapeRect, 5, 5, 10, 10))
	g := NewGesture(b)
	require.NoError(t, g.BeginResize("o1", HandleE, 20))

	o, ok := g.Drag(40, 0)
	require.True(t, ok)
	assert.Equal(t, 12.0, o.WidthCm)
	assert.Equal(t, Resizing, g.State())
	id, h := g.Target()
	assert.Equal(t, "o1", id)
	assert.Equal(t, HandleE, h)
}

func TestGestureCancelRestoresGeometry(t *testing.T) {
	b := boardWith(rectAt(model.ShapeRect, 5, 5, 10, 10))
	g := NewGesture(b)
	require.NoError(t, g.BeginResize("o1", HandleSE, 10))
	g.Drag(80, 60)

	g.Cancel()
	o, _ := b.Get("o1")
	assert.Equal(t, rectAt(model.ShapeRect, 5, 5, 10, 10), o)
	assert.Equal(t, Idle, g.State())

	_, ok := g.Drag(10, 10)
	assert.False(t, ok, "drag after cancel is ignored")
}

func TestGestureBeginEndsPrevious(t *testing.T) {
	a := rectAt(model.ShapeRect, 5, 5, 10, 10)
	c := rectAt(model.ShapeRect, 30, 20, 5, 5)
	c.ID = "o2"
	b := boardWith(a, c)
	g := NewGesture(b)

	require.NoError(t, g.BeginMove("o1", 10))
	g.Drag(50, 0)
	require.NoError(t, g.BeginMove("o2", 10))

	moved, _ := b.Get("o1")
	assert.Equal(t, 10.0, moved.XCm, "first gesture kept its result")
	id, _ := g.Target()
	assert.Equal(t, "o2", id)
}

func TestGestureBeginErrors(t *testing.T) {
	g := NewGesture(boardWith(rectAt(model.ShapeRect, 5, 5, 10, 10)))
	assert.ErrorIs(t, g.BeginMove("missing", 10), ErrNoOpening)
	assert.Error(t, g.BeginMove("o1", 0))
	assert.Equal(t, Idle, g.State())
}

func TestGestureEndWithoutChange(t *testing.T) {
	g := NewGesture(boardWith(rectAt(model.ShapeRect, 5, 5, 10, 10)))
	require.NoError(t, g.BeginMove("o1", 10))
	_, changed := g.End()
	assert.False(t, changed)

	_, changed = g.End()
	assert.False(t, changed, "end while idle is a no-op")
}

func TestEditorUndoRedoAcrossGestures(t *testing.T) {
	e := NewEditor(50, 40, nil)
	o := e.Add(model.ShapeRect)
	assert.Equal(t, o.ID, e.Selected())

	require.NoError(t, e.Begin(o.ID, HandleNone, 10))
	e.Gesture.Drag(-150, 0)
	assert.True(t, e.EndGesture())

	moved, _ := e.Board.Get(o.ID)
	assert.Equal(t, 5.0, moved.XCm)

	require.True(t, e.Undo())
	back, _ := e.Board.Get(o.ID)
	assert.Equal(t, 20.0, back.XCm)

	require.True(t, e.Redo())
	again, _ := e.Board.Get(o.ID)
	assert.Equal(t, 5.0, again.XCm)

	require.NoError(t, e.Delete(o.ID))
	assert.Empty(t, e.Selected())
	require.Equal(t, "Delete opening", e.History.UndoLabel())
	require.True(t, e.Undo())
	_, ok := e.Board.Get(o.ID)
	assert.True(t, ok)
	assert.Equal(t, o.ID, e.Selected(), "undo restores the selection")
	assert.Equal(t, "Delete opening", e.History.RedoLabel())
}

func TestEditorResetClearsHistory(t *testing.T) {
	e := NewEditor(50, 40, nil)
	e.Add(model.ShapeCircle)
	e.Reset(nil)
	assert.False(t, e.History.CanUndo())
	assert.Empty(t, e.Board.Openings())
}
