package layout

import "github.com/piwi3910/FrameShop/internal/model"

// Editor bundles a board with its gesture tracker and undo history. It is
// what the preview widget drives.
type Editor struct {
	Board    *Board
	Gesture  *Gesture
	History  *History
	selected string
}

// NewEditor creates an editor for a w x h cm visible area.
func NewEditor(w, h float64, openings []model.Opening) *Editor {
	b := NewBoard(w, h, openings)
	return &Editor{
		Board:   b,
		Gesture: NewGesture(b),
		History: NewHistory(DefaultHistoryDepth),
	}
}

// Selected returns the id of the selected opening, if any.
func (e *Editor) Selected() string { return e.selected }

// Select marks an opening as selected. Unknown ids clear the selection.
func (e *Editor) Select(id string) {
	if _, ok := e.Board.Get(id); ok {
		e.selected = id
		return
	}
	e.selected = ""
}

// Add creates a centred opening, selects it and records an undo step.
func (e *Editor) Add(shape model.Shape) model.Opening {
	e.Gesture.End()
	e.History.Push(e.snapshot(e.Board.Openings(), "Add opening"))
	o := e.Board.Add(shape)
	e.selected = o.ID
	return o
}

// Delete removes an opening and records an undo step.
func (e *Editor) Delete(id string) error {
	e.Gesture.Cancel()
	before := e.Board.Openings()
	if err := e.Board.Delete(id); err != nil {
		return err
	}
	e.History.Push(e.snapshot(before, "Delete opening"))
	if e.selected == id {
		e.selected = ""
	}
	return nil
}

// SetImage attaches a picture to an opening and records an undo step.
func (e *Editor) SetImage(id, ref string) error {
	before := e.Board.Openings()
	if err := e.Board.SetImage(id, ref); err != nil {
		return err
	}
	e.History.Push(e.snapshot(before, "Set opening image"))
	return nil
}

// Begin starts a move (HandleNone) or resize gesture and selects the opening.
func (e *Editor) Begin(id string, h Handle, pxPerCm float64) error {
	e.EndGesture()
	if err := e.Gesture.BeginResize(id, h, pxPerCm); err != nil {
		return err
	}
	e.selected = id
	return nil
}

// EndGesture commits the active gesture, recording an undo step when the
// geometry changed.
func (e *Editor) EndGesture() bool {
	label := "Move opening"
	if e.Gesture.State() == Resizing {
		label = "Resize opening"
	}
	before, changed := e.Gesture.End()
	if changed {
		e.History.Push(e.snapshot(before, label))
	}
	return changed
}

// Undo restores the previous openings. It returns false when there is
// nothing to undo.
func (e *Editor) Undo() bool {
	e.Gesture.Cancel()
	s, ok := e.History.Undo(e.snapshot(e.Board.Openings(), ""))
	if ok {
		e.apply(s)
	}
	return ok
}

// Redo re-applies an undone change.
func (e *Editor) Redo() bool {
	e.Gesture.Cancel()
	s, ok := e.History.Redo(e.snapshot(e.Board.Openings(), ""))
	if ok {
		e.apply(s)
	}
	return ok
}

// Reset replaces all openings and forgets the history, as when a preset is
// loaded.
func (e *Editor) Reset(openings []model.Opening) {
	e.Gesture.Cancel()
	e.Board.Replace(openings)
	e.History.Clear()
	e.selected = ""
}

func (e *Editor) snapshot(openings []model.Opening, label string) Snapshot {
	s := MakeSnapshot(openings, label)
	s.Selected = e.selected
	return s
}

func (e *Editor) apply(s Snapshot) {
	e.Board.Replace(s.Openings)
	e.Select(s.Selected)
}
