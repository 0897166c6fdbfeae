package paint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red   = Pixel{255, 0, 0, 255}
	green = Pixel{0, 255, 0, 255}
)

// box draws a one pixel border with corners (x0, y0) and (x1, y1).
func box(s *Surface, x0, y0, x1, y1 int, p Pixel) {
	for x := x0; x <= x1; x++ {
		s.SetPixel(x, y0, p)
		s.SetPixel(x, y1, p)
	}
	for y := y0; y <= y1; y++ {
		s.SetPixel(x0, y, p)
		s.SetPixel(x1, y, p)
	}
}

func TestFloodFill_Enclosed(t *testing.T) {
	assert := assert.New(t)
	s, err := NewSurface(50, 50)
	require.NoError(t, err)
	box(s, 10, 10, 40, 40, red)

	n := FloodFill(s, 25, 25, green)
	assert.Equal(29*29, n)

	for y := 0; y < 50; y++ {
		for x := 0; x < 50; x++ {
			got := s.GetPixel(x, y)
			switch {
			case x > 10 && x < 40 && y > 10 && y < 40:
				assert.Equal(green, got, "interior (%d,%d)", x, y)
			case x == 10 || x == 40 || y == 10 || y == 40:
				if x >= 10 && x <= 40 && y >= 10 && y <= 40 {
					assert.Equal(red, got, "border (%d,%d)", x, y)
				}
			default:
				assert.Equal(Transparent, got, "exterior (%d,%d)", x, y)
			}
		}
	}
}

func TestFloodFill_NoOp(t *testing.T) {
	assert := assert.New(t)
	s, err := NewSurface(8, 8)
	require.NoError(t, err)

	assert.Equal(0, FloodFill(s, 3, 3, Transparent), "seed already has the fill colour")
	assert.Equal(0, FloodFill(s, -1, 3, green))
	assert.Equal(0, FloodFill(s, 3, 8, green))
	assert.True(s.Snapshot().Equal(mustBlank(t, 8, 8)))
}

func TestFloodFill_DiagonalGap(t *testing.T) {
	assert := assert.New(t)
	s, err := NewSurface(3, 3)
	require.NoError(t, err)
	// A diagonal wall does not leak: fills are 4-connected.
	s.SetPixel(1, 0, red)
	s.SetPixel(0, 1, red)

	assert.Equal(1, FloodFill(s, 0, 0, green))
	assert.Equal(Transparent, s.GetPixel(2, 2))
}

func TestFloodFill_Large(t *testing.T) {
	s, err := NewSurface(1000, 1000)
	require.NoError(t, err)

	n := FloodFill(s, 500, 500, green)
	assert.Equal(t, 1000*1000, n)
	assert.Equal(t, green, s.GetPixel(0, 0))
	assert.Equal(t, green, s.GetPixel(999, 999))
	assert.Equal(t, 0, FloodFill(s, 10, 10, green))
}
