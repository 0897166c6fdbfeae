package paint

import "math"

// Point is a pointer position in surface pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// IsZero reports whether p is the origin, which the line tool treats as "no
// anchor yet".
func (p Point) IsZero() bool { return p.X == 0 && p.Y == 0 }

// Pixel returns the integer pixel containing p.
func (p Point) Pixel() (int, int) {
	return int(math.Floor(p.X)), int(math.Floor(p.Y))
}

// Gesture is the transient state of the pointer interaction in progress.
// Last survives between gestures: it is the line tool's polyline anchor.
type Gesture struct {
	Drawing bool
	Start   Point
	Last    Point

	// pre is the raster as it was at pointer-down. Shape and line previews
	// restore it before redrawing so only the newest frame remains.
	pre *Snapshot
}
