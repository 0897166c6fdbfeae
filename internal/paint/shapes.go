package paint

import (
	"math"

	"github.com/gogpu/gg"
)

// Path builders for the shape tools. start and end are opposite corners of
// the bounding box spanned by the drag; either may be the larger one.

func segmentPath(a, b Point) func(*gg.Context) {
	return func(dc *gg.Context) {
		dc.MoveTo(a.X, a.Y)
		dc.LineTo(b.X, b.Y)
	}
}

func rectanglePath(start, end Point) func(*gg.Context) {
	return func(dc *gg.Context) {
		dc.DrawRectangle(start.X, start.Y, end.X-start.X, end.Y-start.Y)
	}
}

func ellipsePath(start, end Point) func(*gg.Context) {
	return func(dc *gg.Context) {
		rx := (end.X - start.X) / 2
		ry := (end.Y - start.Y) / 2
		dc.DrawEllipse(start.X+rx, start.Y+ry, math.Abs(rx), math.Abs(ry))
	}
}

// trianglePath inscribes an isosceles triangle in the central 80% of the box,
// apex at the top.
func trianglePath(start, end Point) func(*gg.Context) {
	return func(dc *gg.Context) {
		w := end.X - start.X
		h := end.Y - start.Y
		cx, cy := start.X+w/2, start.Y+h/2
		tw, th := w*0.8, h*0.8
		dc.MoveTo(cx, cy-th/2)
		dc.LineTo(cx-tw/2, cy+th/2)
		dc.LineTo(cx+tw/2, cy+th/2)
		dc.ClosePath()
	}
}

// heartPath draws the two lobes of a heart meeting at a notch 30% down the
// box and at a point on its bottom edge. The outline stays inside the box.
func heartPath(start, end Point) func(*gg.Context) {
	return func(dc *gg.Context) {
		x0, y0 := start.X, start.Y
		w := end.X - start.X
		h := end.Y - start.Y
		x1 := x0 + w
		cx := x0 + w/2
		notch := y0 + h*0.3

		dc.MoveTo(cx, notch)
		dc.CubicTo(cx, y0, x0, y0, x0, notch)
		dc.CubicTo(x0, y0+h*0.6, cx, y0+h*0.8, cx, y0+h)
		dc.CubicTo(cx, y0+h*0.8, x1, y0+h*0.6, x1, notch)
		dc.CubicTo(x1, y0, cx, y0, cx, notch)
		dc.ClosePath()
	}
}

var shapePaths = map[Mode]func(start, end Point) func(*gg.Context){
	Rectangle: rectanglePath,
	Ellipse:   ellipsePath,
	Triangle:  trianglePath,
	Heart:     heartPath,
}
