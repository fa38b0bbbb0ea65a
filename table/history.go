package table

import "sync"

// History is an undo stack of grid snapshots with a cursor. It is safe for
// concurrent use, though a table editing session normally has one owner.
type History struct {
	mu    sync.Mutex
	snaps []Grid
	idx   int
	limit int
}

// NewHistory starts a history at g0. limit caps the number of snapshots kept;
// zero or less means unlimited.
func NewHistory(g0 Grid, limit int) *History {
	return &History{snaps: []Grid{g0.Clone()}, limit: limit}
}

// Push records g as the newest snapshot. A grid equal to the current one is
// ignored. Pushing after an undo discards the redo tail.
func (h *History) Push(g Grid) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.snaps[h.idx].Equal(g) {
		return false
	}
	h.snaps = append(h.snaps[:h.idx+1], g.Clone())
	h.idx++
	if h.limit > 0 && len(h.snaps) > h.limit {
		drop := len(h.snaps) - h.limit
		h.snaps = append([]Grid(nil), h.snaps[drop:]...)
		h.idx -= drop
	}
	return true
}

// Undo moves the cursor back and returns a copy of that snapshot. At the
// oldest snapshot it returns a copy of the current one and false.
func (h *History) Undo() (Grid, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.idx == 0 {
		return h.snaps[h.idx].Clone(), false
	}
	h.idx--
	return h.snaps[h.idx].Clone(), true
}

// Redo moves the cursor forward. At the newest snapshot it returns a copy of
// the current one and false.
func (h *History) Redo() (Grid, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.idx == len(h.snaps)-1 {
		return h.snaps[h.idx].Clone(), false
	}
	h.idx++
	return h.snaps[h.idx].Clone(), true
}

// Current returns a copy of the snapshot at the cursor.
func (h *History) Current() Grid {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.snaps[h.idx].Clone()
}

func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.idx > 0
}

func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.idx < len(h.snaps)-1
}

// Len returns the number of snapshots.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.snaps)
}

// Index returns the cursor position.
func (h *History) Index() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.idx
}
