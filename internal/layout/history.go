package layout

import "github.com/piwi3910/FrameShop/internal/model"

// DefaultHistoryDepth bounds how many edits can be undone.
const DefaultHistoryDepth = 50

// Snapshot is the opening list as it was before an edit, together with the
// selection at that moment.
type Snapshot struct {
	Openings []model.Opening
	Selected string
	Label    string // edit that followed, e.g. "Move opening"
}

// MakeSnapshot copies openings into a labelled snapshot.
func MakeSnapshot(openings []model.Opening, label string) Snapshot {
	return Snapshot{Openings: model.CopyOpenings(openings), Label: label}
}

type snapStack []Snapshot

func (s *snapStack) push(v Snapshot, limit int) {
	*s = append(*s, v)
	if over := len(*s) - limit; over > 0 {
		*s = append(snapStack(nil), (*s)[over:]...)
	}
}

func (s *snapStack) pop() (Snapshot, bool) {
	n := len(*s)
	if n == 0 {
		return Snapshot{}, false
	}
	v := (*s)[n-1]
	*s = (*s)[:n-1]
	return v, true
}

func (s snapStack) peekLabel() string {
	if len(s) == 0 {
		return ""
	}
	return s[len(s)-1].Label
}

// History is a bounded undo/redo log of opening edits.
type History struct {
	undo  snapStack
	redo  snapStack
	depth int
}

// NewHistory creates a history keeping at most depth undo steps. A
// non-positive depth uses DefaultHistoryDepth.
func NewHistory(depth int) *History {
	if depth <= 0 {
		depth = DefaultHistoryDepth
	}
	return &History{depth: depth}
}

// Push records the state from before an edit. Any redo steps are dropped.
func (h *History) Push(s Snapshot) {
	h.undo.push(s, h.depth)
	h.redo = nil
}

// Undo returns the state to restore and files current for Redo.
func (h *History) Undo(current Snapshot) (Snapshot, bool) {
	return h.step(&h.undo, &h.redo, current)
}

// Redo is the inverse of Undo.
func (h *History) Redo(current Snapshot) (Snapshot, bool) {
	return h.step(&h.redo, &h.undo, current)
}

func (h *History) step(from, to *snapStack, current Snapshot) (Snapshot, bool) {
	s, ok := from.pop()
	if !ok {
		return Snapshot{}, false
	}
	current.Label = s.Label
	to.push(current, h.depth)
	return s, true
}

func (h *History) CanUndo() bool { return len(h.undo) > 0 }
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// UndoLabel names the edit Undo would revert, or "" when there is none.
func (h *History) UndoLabel() string { return h.undo.peekLabel() }

// RedoLabel names the edit Redo would re-apply.
func (h *History) RedoLabel() string { return h.redo.peekLabel() }

// Clear forgets every step.
func (h *History) Clear() {
	h.undo, h.redo = nil, nil
}
