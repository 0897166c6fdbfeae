package paint

// UndoBatch is how many recorded steps a single Undo rewinds.
const UndoBatch = 10

// DefaultHistoryLimit caps the number of undo entries.
const DefaultHistoryLimit = 500

// DefaultHistoryBytes caps the memory held by both stacks together. Every
// entry is a full raster, so on large surfaces this bound bites long before
// the entry limit does.
const DefaultHistoryBytes = 256 << 20

// History is the undo/redo log. Both stacks are ordered oldest to newest.
//
// Undo does not step back one entry: it takes the newest UndoBatch entries
// (or fewer), restores the oldest of them and discards the whole batch. One
// Undo therefore rewinds up to ten recorded steps, which matches how
// pointer-move recording produces many snapshots per gesture.
type History struct {
	undo     []*Snapshot
	redo     []*Snapshot
	limit    int
	maxBytes int
	bytes    int
}

// NewHistory returns an empty history holding at most limit undo entries
// and at most maxBytes of snapshots. A bound <= 0 is no bound. The newest
// undo entry is always kept, even if it alone exceeds maxBytes.
func NewHistory(limit, maxBytes int) *History {
	return &History{limit: limit, maxBytes: maxBytes}
}

// Record pushes the surface's current state and invalidates redo.
func (h *History) Record(s *Surface) {
	h.bytes -= h.sizeOf(h.redo)
	h.redo = nil
	h.push(s.Snapshot())
}

func (h *History) push(snap *Snapshot) {
	h.undo = append(h.undo, snap)
	h.bytes += snap.Size()
	h.trim()
}

// trim evicts the oldest undo entries until both bounds hold.
func (h *History) trim() {
	drop := 0
	for drop < len(h.undo)-1 {
		overCount := h.limit > 0 && len(h.undo)-drop > h.limit
		overBytes := h.maxBytes > 0 && h.bytes > h.maxBytes
		if !overCount && !overBytes {
			break
		}
		h.bytes -= h.undo[drop].Size()
		drop++
	}
	if drop > 0 {
		clear(h.undo[:drop])
		h.undo = h.undo[drop:]
	}
}

func (h *History) sizeOf(stack []*Snapshot) int {
	n := 0
	for _, s := range stack {
		n += s.Size()
	}
	return n
}

// Bytes is the memory held by both stacks.
func (h *History) Bytes() int { return h.bytes }

// Undo rewinds one batch. It reports false when there is nothing to undo.
func (h *History) Undo(s *Surface) bool {
	if len(h.undo) == 0 {
		return false
	}
	cur := s.Snapshot()
	h.redo = append(h.redo, cur)
	cut := max(len(h.undo)-UndoBatch, 0)
	target := h.undo[cut]
	h.bytes += cur.Size() - h.sizeOf(h.undo[cut:])
	clear(h.undo[cut:])
	h.undo = h.undo[:cut]
	s.Restore(target)
	return true
}

// Redo reapplies the most recent undone state. It reports false when there
// is nothing to redo.
func (h *History) Redo(s *Surface) bool {
	if len(h.redo) == 0 {
		return false
	}
	next := h.redo[len(h.redo)-1]
	h.redo[len(h.redo)-1] = nil
	h.redo = h.redo[:len(h.redo)-1]
	h.bytes -= next.Size()
	h.push(s.Snapshot())
	s.Restore(next)
	return true
}

// Clear drops both stacks.
func (h *History) Clear() {
	h.undo = nil
	h.redo = nil
	h.bytes = 0
}

func (h *History) UndoLen() int { return len(h.undo) }
func (h *History) RedoLen() int { return len(h.redo) }
