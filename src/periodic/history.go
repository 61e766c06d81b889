package periodic

// History is an unbounded linear undo/redo log of collection snapshots.
//
// Snapshots are copied on the way in and on the way out, so callers can
// keep mutating the slices they pass and receive.
type History struct {
	past   [][]Element
	future [][]Element
}

// Push records the state before a mutation and drops the redo branch.
func (h *History) Push(snapshot []Element) {
	h.past = append(h.past, cloneElements(snapshot))
	h.future = nil
}

// Undo moves current onto the future stack and returns the most recent
// past snapshot. ok is false when there is nothing to undo.
func (h *History) Undo(current []Element) (prev []Element, ok bool) {
	if len(h.past) == 0 {
		return nil, false
	}
	last := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	h.future = append(h.future, cloneElements(current))
	return cloneElements(last), true
}

// Redo is the mirror of Undo.
func (h *History) Redo(current []Element) (next []Element, ok bool) {
	if len(h.future) == 0 {
		return nil, false
	}
	last := h.future[len(h.future)-1]
	h.future = h.future[:len(h.future)-1]
	h.past = append(h.past, cloneElements(current))
	return cloneElements(last), true
}

func (h *History) Clear() {
	h.past = nil
	h.future = nil
}

func (h *History) CanUndo() bool { return len(h.past) > 0 }
func (h *History) CanRedo() bool { return len(h.future) > 0 }

func (h *History) PastLen() int   { return len(h.past) }
func (h *History) FutureLen() int { return len(h.future) }

// restore replaces both stacks, used when loading persisted state.
func (h *History) restore(past, future [][]Element) {
	h.past = past
	h.future = future
}

// stacks exposes the raw stacks for persistence. The result must not be
// modified.
func (h *History) stacks() (past, future [][]Element) {
	return h.past, h.future
}
