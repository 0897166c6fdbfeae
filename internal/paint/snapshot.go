package paint

// Snapshot is an immutable copy of a surface's pixel grid.
type Snapshot struct {
	width, height int
	pix           []uint8
}

func (s *Snapshot) Width() int  { return s.width }
func (s *Snapshot) Height() int { return s.height }

// Size is the number of bytes the snapshot holds.
func (s *Snapshot) Size() int { return len(s.pix) }

// Equal reports whether two snapshots hold identical pixels.
func (s *Snapshot) Equal(o *Snapshot) bool {
	if s == nil || o == nil {
		return s == o
	}
	if s.width != o.width || s.height != o.height {
		return false
	}
	for i := range s.pix {
		if s.pix[i] != o.pix[i] {
			return false
		}
	}
	return true
}
