package paint

// tool is one row of the interpreter's dispatch table: what each gesture
// phase does under a mode. records marks modes whose move phase mutates the
// surface and therefore pushes an undo step before running.
type tool struct {
	down    func(s *Session, at Point)
	move    func(s *Session, at Point)
	up      func(s *Session, at Point)
	records bool
}

func noop(*Session, Point) {}

var tools = map[Mode]tool{
	Draw:      {down: noop, move: drawMove, up: noop, records: true},
	Erase:     {down: noop, move: eraseMove, up: noop, records: true},
	Line:      {down: lineDown, move: lineMove, up: lineUp, records: true},
	Text:      {down: textDown, move: textMove, up: noop},
	Bucket:    {down: bucketDown, move: bucketMove, up: noop, records: true},
	Rectangle: {down: noop, move: shapeMove(Rectangle), up: noop, records: true},
	Ellipse:   {down: noop, move: shapeMove(Ellipse), up: noop, records: true},
	Triangle:  {down: noop, move: shapeMove(Triangle), up: noop, records: true},
	Heart:     {down: noop, move: shapeMove(Heart), up: noop, records: true},
	Picker:    {down: pickerSample, move: pickerSample, up: noop},
}

func drawMove(s *Session, at Point) {
	s.stroke(segmentPath(s.gesture.Start, at))
	s.gesture.Start = at
}

func eraseMove(s *Session, at Point) {
	w := s.surface.LineWidth()
	s.surface.ClearRect(at.X-w/2, at.Y-w/2, w, w)
}

// lineDown keeps an existing anchor so repeated drags build a polyline.
func lineDown(s *Session, at Point) {
	if s.gesture.Last.IsZero() {
		s.gesture.Last = at
	}
}

func lineMove(s *Session, at Point) {
	s.surface.Restore(s.gesture.pre)
	s.stroke(segmentPath(s.gesture.Last, at))
}

func lineUp(s *Session, at Point) {
	s.gesture.Last = at
}

func textDown(s *Session, at Point) {
	s.gesture.Drawing = false
	s.requestText(at)
}

// textMove only runs if a move arrives while a text gesture is still open.
// It asks for text again at the new position.
func textMove(s *Session, at Point) {
	s.gesture.Drawing = false
	s.requestText(at)
}

// bucketDown fills at the press position. Moves in the same gesture keep
// filling wherever the pointer goes.
func bucketDown(s *Session, at Point) {
	x, y := at.Pixel()
	target := s.surface.GetPixel(x, y)
	if target.IsSentinel() || target == s.surface.StrokeColor() {
		return
	}
	s.history.Record(s.surface)
	bucketMove(s, at)
}

func bucketMove(s *Session, at Point) {
	x, y := at.Pixel()
	n := FloodFill(s.surface, x, y, s.surface.StrokeColor())
	s.log.Debug("flood fill", "x", x, "y", y, "pixels", n)
}

func shapeMove(m Mode) func(*Session, Point) {
	path := shapePaths[m]
	return func(s *Session, at Point) {
		s.surface.Restore(s.gesture.pre)
		s.stroke(path(s.gesture.Start, at))
	}
}

// pickerSample adopts the colour under the pointer unless it is fully
// transparent. It never changes the raster.
func pickerSample(s *Session, at Point) {
	p := s.surface.GetPixel(at.Pixel())
	if p.IsSentinel() || p.A == 0 {
		return
	}
	s.surface.SetStrokeColor(p)
}
