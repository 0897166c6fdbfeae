package paint

// FloodFill recolours the 4-connected region of (x, y) whose pixels match
// the colour originally found there. It returns the number of pixels
// written; zero when the seed already has the fill colour or lies outside
// the surface.
//
// Pending coordinates live on an explicit stack so very large regions cannot
// exhaust the goroutine stack.
func FloodFill(s *Surface, x, y int, fill Pixel) int {
	target := s.GetPixel(x, y)
	if target == fill || target.IsSentinel() {
		return 0
	}

	filled := 0
	pending := [][2]int{{x, y}}
	for len(pending) > 0 {
		p := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		px, py := p[0], p[1]

		cur := s.GetPixel(px, py)
		if cur != target || cur == fill {
			continue
		}
		s.SetPixel(px, py, fill)
		filled++

		if px > 0 {
			pending = append(pending, [2]int{px - 1, py})
		}
		if py > 0 {
			pending = append(pending, [2]int{px, py - 1})
		}
		if px < s.width-1 {
			pending = append(pending, [2]int{px + 1, py})
		}
		if py < s.height-1 {
			pending = append(pending, [2]int{px, py + 1})
		}
	}
	return filled
}
