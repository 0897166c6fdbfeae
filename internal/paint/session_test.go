package paint

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T, w, h int, opts ...Option) *Session {
	t.Helper()
	s := NewSession(opts...)
	require.NoError(t, s.Init(w, h))
	return s
}

// inked reports whether p is an opaque pixel of colour c.
func inked(p, c Pixel) bool {
	return p.R == c.R && p.G == c.G && p.B == c.B && p.A >= 250
}

func drag(s *Session, pts ...Point) {
	s.PointerDown(pts[0])
	for _, p := range pts[1:] {
		s.PointerMove(p)
	}
	s.PointerUp(pts[len(pts)-1])
}

func TestSession_FreehandSegment(t *testing.T) {
	assert := assert.New(t)
	s := newTestSession(t, 100, 100)

	drag(s, Pt(10, 10), Pt(10, 50))

	surf := s.Surface()
	for y := 12; y <= 48; y++ {
		assert.True(inked(surf.GetPixel(9, y), Black), "left half at y=%d: %v", y, surf.GetPixel(9, y))
		assert.True(inked(surf.GetPixel(10, y), Black), "right half at y=%d: %v", y, surf.GetPixel(10, y))
		assert.Equal(Transparent, surf.GetPixel(20, y))
	}
	assert.Equal(Transparent, surf.GetPixel(10, 70))
	assert.NotZero(s.History().UndoLen())
	assert.Zero(s.History().RedoLen())
	assert.False(s.Gesture().Drawing)
}

func TestSession_BucketFill(t *testing.T) {
	assert := assert.New(t)
	s := newTestSession(t, 50, 50)
	require.NoError(t, s.SetStrokeColor("#00ff00"))
	s.SetMode(Bucket)

	s.PointerDown(Pt(25, 25))
	s.PointerUp(Pt(25, 25))

	for y := 0; y < 50; y++ {
		for x := 0; x < 50; x++ {
			assert.Equal(green, s.Surface().GetPixel(x, y))
		}
	}
	assert.Equal(1, s.History().UndoLen())

	// Filling with the colour already there changes nothing and is not
	// recorded.
	s.PointerDown(Pt(3, 3))
	s.PointerUp(Pt(3, 3))
	assert.Equal(1, s.History().UndoLen())
}

func TestSession_BucketFillEnclosed(t *testing.T) {
	assert := assert.New(t)
	s := newTestSession(t, 50, 50)
	box(s.Surface(), 10, 10, 40, 40, red)
	require.NoError(t, s.SetStrokeColor("#00ff00"))
	s.SetMode(Bucket)

	s.PointerDown(Pt(25.6, 25.2))
	s.PointerUp(Pt(25.6, 25.2))

	assert.Equal(green, s.Surface().GetPixel(11, 11))
	assert.Equal(green, s.Surface().GetPixel(39, 39))
	assert.Equal(red, s.Surface().GetPixel(10, 25))
	assert.Equal(Transparent, s.Surface().GetPixel(5, 5))
	assert.Equal(Transparent, s.Surface().GetPixel(45, 45))
}

func TestSession_ClearCanvas(t *testing.T) {
	assert := assert.New(t)
	s := newTestSession(t, 40, 40)
	drag(s, Pt(5, 5), Pt(30, 30), Pt(30, 5))
	s.Undo()
	drag(s, Pt(5, 20), Pt(35, 20))
	require.NotZero(t, s.History().UndoLen())

	s.ClearCanvas()
	assert.True(s.Surface().Snapshot().Equal(mustBlank(t, 40, 40)))
	assert.Zero(s.History().UndoLen())
	assert.Zero(s.History().RedoLen())
}

func TestSession_RectanglePreview(t *testing.T) {
	assert := assert.New(t)
	s := newTestSession(t, 60, 60)
	s.SetMode(Rectangle)

	drag(s, Pt(5, 5), Pt(20, 20), Pt(30, 25), Pt(40, 30))
	surf := s.Surface()

	// Edges of width 2 centred on the rectangle's outline.
	for x := 10; x <= 35; x++ {
		assert.True(inked(surf.GetPixel(x, 4), Black), "top (%d,4)", x)
		assert.True(inked(surf.GetPixel(x, 5), Black), "top (%d,5)", x)
		assert.True(inked(surf.GetPixel(x, 29), Black), "bottom (%d,29)", x)
		assert.True(inked(surf.GetPixel(x, 30), Black), "bottom (%d,30)", x)
	}
	for y := 10; y <= 25; y++ {
		assert.True(inked(surf.GetPixel(4, y), Black), "left (4,%d)", y)
		assert.True(inked(surf.GetPixel(5, y), Black), "left (5,%d)", y)
		assert.True(inked(surf.GetPixel(39, y), Black), "right (39,%d)", y)
		assert.True(inked(surf.GetPixel(40, y), Black), "right (40,%d)", y)
	}

	// Earlier preview frames are gone.
	assert.Equal(Transparent, surf.GetPixel(19, 12))
	assert.Equal(Transparent, surf.GetPixel(20, 12))
	assert.Equal(Transparent, surf.GetPixel(12, 19))
	assert.Equal(Transparent, surf.GetPixel(29, 24))
	assert.Equal(Transparent, surf.GetPixel(22, 17))
	assert.Equal(Transparent, surf.GetPixel(50, 50))
}

func TestSession_ShapeUndo(t *testing.T) {
	assert := assert.New(t)
	s := newTestSession(t, 60, 60)
	blank := s.Surface().Snapshot()

	for _, m := range []Mode{Rectangle, Ellipse, Triangle, Heart} {
		s.SetMode(m)
		drag(s, Pt(5, 5), Pt(30, 30), Pt(50, 45))
		assert.False(blank.Equal(s.Surface().Snapshot()), "%s drew nothing", m)
		assert.Equal(2, s.History().UndoLen())

		s.Undo()
		assert.True(blank.Equal(s.Surface().Snapshot()), "%s left a trace", m)
		assert.Zero(s.History().UndoLen())
		assert.Equal(1, s.History().RedoLen())

		s.Redo()
		assert.False(blank.Equal(s.Surface().Snapshot()))
		s.ClearCanvas()
	}
}

func TestSession_LinePolyline(t *testing.T) {
	assert := assert.New(t)
	s := newTestSession(t, 60, 60)
	s.SetMode(Line)

	drag(s, Pt(10, 10), Pt(50, 50), Pt(50, 10))
	surf := s.Surface()
	assert.Equal(Pt(50, 10), s.Gesture().Last)
	assert.True(inked(surf.GetPixel(30, 9), Black))
	assert.True(inked(surf.GetPixel(30, 10), Black))
	// The diagonal preview was replaced by the final segment.
	assert.Equal(Transparent, surf.GetPixel(30, 30))

	// The next gesture continues from the previous end point.
	drag(s, Pt(5, 55), Pt(50, 40))
	assert.True(inked(surf.GetPixel(49, 25), Black))
	assert.True(inked(surf.GetPixel(50, 25), Black))
	assert.Equal(Transparent, surf.GetPixel(5, 55))
	assert.Equal(Pt(50, 40), s.Gesture().Last)
}

func TestSession_Erase(t *testing.T) {
	assert := assert.New(t)
	s := newTestSession(t, 40, 40)
	FloodFill(s.Surface(), 0, 0, Black)
	s.SetMode(Erase)
	s.SetStrokeWidth(10)

	drag(s, Pt(20, 20), Pt(20, 20))
	surf := s.Surface()
	assert.Equal(Transparent, surf.GetPixel(15, 15))
	assert.Equal(Transparent, surf.GetPixel(24, 24))
	assert.Equal(Black, surf.GetPixel(14, 20))
	assert.Equal(Black, surf.GetPixel(25, 20))
	assert.Equal(1, s.History().UndoLen())

	s.Undo()
	assert.Equal(Black, surf.GetPixel(20, 20))
}

func TestSession_PointerLeaveEndsGesture(t *testing.T) {
	assert := assert.New(t)
	s := newTestSession(t, 30, 30)

	s.PointerDown(Pt(5, 5))
	s.PointerLeave(Pt(29, 5))
	s.PointerMove(Pt(20, 20))
	assert.False(s.Gesture().Drawing)
	assert.Zero(s.History().UndoLen())
	assert.True(s.Surface().Snapshot().Equal(mustBlank(t, 30, 30)))
}

func TestSession_MoveWithoutDown(t *testing.T) {
	s := newTestSession(t, 30, 30)
	s.PointerMove(Pt(5, 5))
	s.PointerMove(Pt(20, 20))
	s.PointerUp(Pt(20, 20))
	assert.Zero(t, s.History().UndoLen())
}

type promptRecorder struct {
	asked []Point
}

func (p *promptRecorder) RequestText(at Point) { p.asked = append(p.asked, at) }

func TestSession_TextSubmit(t *testing.T) {
	assert := assert.New(t)
	prompts := &promptRecorder{}
	s := newTestSession(t, 120, 60, WithPrompter(prompts))
	s.SetMode(Text)

	s.PointerDown(Pt(10, 40))
	assert.Equal([]Point{Pt(10, 40)}, prompts.asked)
	assert.True(s.PromptPending())
	assert.False(s.Gesture().Drawing)

	// Input is ignored until the prompt is answered.
	s.PointerDown(Pt(50, 50))
	s.PointerMove(Pt(60, 50))
	assert.Len(prompts.asked, 1)

	assert.True(s.SubmitText("Hi"))
	assert.False(s.PromptPending())
	assert.False(s.Surface().Snapshot().Equal(mustBlank(t, 120, 60)))
	assert.Equal(1, s.History().UndoLen())

	s.Undo()
	assert.True(s.Surface().Snapshot().Equal(mustBlank(t, 120, 60)))
	assert.False(s.SubmitText("again"), "no prompt is open")
}

func TestSession_TextCancel(t *testing.T) {
	assert := assert.New(t)
	prompts := &promptRecorder{}
	s := newTestSession(t, 60, 60, WithPrompter(prompts))
	s.SetMode(Text)

	s.PointerDown(Pt(10, 40))
	s.CancelText()
	assert.False(s.PromptPending())

	s.PointerDown(Pt(10, 40))
	assert.False(s.SubmitText(""), "empty text cancels")

	assert.Len(prompts.asked, 2)
	assert.True(s.Surface().Snapshot().Equal(mustBlank(t, 60, 60)))
	assert.Zero(s.History().UndoLen())
}

func TestSession_TextWithoutPrompter(t *testing.T) {
	s := newTestSession(t, 60, 60)
	s.SetMode(Text)
	s.PointerDown(Pt(10, 40))
	assert.False(t, s.PromptPending())
}

func TestSession_Picker(t *testing.T) {
	assert := assert.New(t)
	s := newTestSession(t, 20, 20)
	s.Surface().SetPixel(5, 5, Pixel{12, 34, 56, 255})
	before := s.Surface().Snapshot()
	s.SetMode(Picker)

	s.PointerDown(Pt(15, 15))
	assert.Equal(Black, s.Surface().StrokeColor(), "transparent pixels are not picked")

	s.PointerMove(Pt(5.5, 5.5))
	s.PointerUp(Pt(5.5, 5.5))
	assert.Equal(Pixel{12, 34, 56, 255}, s.Surface().StrokeColor())
	assert.Equal("#0c2238", s.Surface().StrokeColor().Hex())
	assert.True(before.Equal(s.Surface().Snapshot()))
	assert.Zero(s.History().UndoLen())
}

func TestSession_AntialiasedEdge(t *testing.T) {
	assert := assert.New(t)
	s := newTestSession(t, 60, 40)
	require.NoError(t, s.SetStrokeColor("#ff0000"))
	drag(s, Pt(10, 10), Pt(50, 33))

	surf := s.Surface()
	img := s.Image()
	ex, ey := -1, -1
	for y := 0; y < 40 && ex < 0; y++ {
		for x := 0; x < 60; x++ {
			if p := surf.GetPixel(x, y); p.A > 0 && p.A < 255 {
				ex, ey = x, y
				break
			}
		}
	}
	require.True(t, ex >= 0, "stroke has no anti-aliased edge")

	edge := surf.GetPixel(ex, ey)
	assert.Equal(255, edge.R, "edge at (%d,%d): %v", ex, ey, edge)
	assert.Zero(edge.G)
	assert.Zero(edge.B)
	c := color.NRGBAModel.Convert(img.At(ex, ey)).(color.NRGBA)
	assert.Equal(uint8(255), c.R)

	require.NoError(t, s.SetStrokeColor("black"))
	s.SetMode(Picker)
	s.PointerDown(Pt(float64(ex)+0.5, float64(ey)+0.5))
	s.PointerUp(Pt(float64(ex)+0.5, float64(ey)+0.5))
	assert.Equal("#ff0000", surf.StrokeColor().Hex())
}

func TestSession_NoSurface(t *testing.T) {
	assert := assert.New(t)
	calls := 0
	s := NewSession(WithOnChange(func() { calls++ }))

	assert.False(s.Active())
	s.PointerDown(Pt(1, 1))
	s.PointerMove(Pt(2, 2))
	s.PointerUp(Pt(2, 2))
	s.PointerLeave(Pt(2, 2))
	s.Undo()
	s.Redo()
	s.ClearCanvas()
	s.SetStrokeWidth(10)
	assert.NoError(s.SetStrokeColor("red"))
	assert.Nil(s.Image())
	assert.ErrorIs(s.Export(&bytes.Buffer{}), ErrNoSurface)
	assert.Zero(calls)
}

func TestSession_Style(t *testing.T) {
	assert := assert.New(t)
	s := newTestSession(t, 10, 10)

	s.SetStrokeWidth(0)
	assert.Equal(1.0, s.Surface().LineWidth())
	s.SetStrokeWidth(250)
	assert.Equal(100.0, s.Surface().LineWidth())

	err := s.SetStrokeColor("not-a-colour")
	assert.True(errors.Is(err, ErrBadColor))
	assert.Equal(Black, s.Surface().StrokeColor())
	assert.NoError(s.SetStrokeColor("red"))
	assert.Equal(red, s.Surface().StrokeColor())

	s.SetMode(Mode(99))
	assert.Equal(Draw, s.Mode())
	s.SetMode(Heart)
	assert.Equal(Heart, s.Mode())
}

func TestSession_OnChange(t *testing.T) {
	assert := assert.New(t)
	calls := 0
	s := newTestSession(t, 30, 30, WithOnChange(func() { calls++ }))
	assert.Equal(1, calls, "init")

	drag(s, Pt(5, 5), Pt(10, 10), Pt(15, 15))
	assert.Equal(3, calls)

	s.Undo()
	assert.Equal(4, calls)
	s.Undo()
	assert.Equal(4, calls, "nothing left to undo")
}

type pageSource struct {
	img   image.Image
	scale float64
}

func (p *pageSource) PageCount() int { return 1 }

func (p *pageSource) RenderPage(index int, scale float64) (image.Image, error) {
	p.scale = scale
	return p.img, nil
}

func TestSession_LoadPage(t *testing.T) {
	assert := assert.New(t)
	s := newTestSession(t, 10, 10)
	drag(s, Pt(1, 1), Pt(8, 8))
	s.PointerDown(Pt(2, 2))

	img := image.NewNRGBA(image.Rect(0, 0, 30, 20))
	img.SetNRGBA(29, 19, color.NRGBA{R: 1, G: 2, B: 3, A: 255})
	src := &pageSource{img: img}
	require.NoError(t, s.LoadPage(src))

	assert.Equal(DefaultPageScale, src.scale)
	assert.Equal(30, s.Surface().Width())
	assert.Equal(20, s.Surface().Height())
	assert.Equal(Pixel{1, 2, 3, 255}, s.Surface().GetPixel(29, 19))
	assert.Zero(s.History().UndoLen())
	assert.False(s.Gesture().Drawing)

	assert.Error(s.LoadPage(nil))
}

func TestSession_Export(t *testing.T) {
	s := newTestSession(t, 40, 30)
	drag(s, Pt(5, 5), Pt(35, 25))
	before := s.History().UndoLen()

	var buf bytes.Buffer
	require.NoError(t, s.Export(&buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Equal(t, before, s.History().UndoLen())
}

func TestTools_Table(t *testing.T) {
	assert := assert.New(t)
	for _, m := range Modes() {
		tl, ok := tools[m]
		if !assert.True(ok, "%s has no tool", m) {
			continue
		}
		assert.NotNil(tl.down, m.String())
		assert.NotNil(tl.move, m.String())
		assert.NotNil(tl.up, m.String())
	}
	assert.False(tools[Text].records)
	assert.False(tools[Picker].records)
	assert.True(tools[Draw].records)
}

func TestTools_TextMove(t *testing.T) {
	assert := assert.New(t)
	prompts := &promptRecorder{}
	s := newTestSession(t, 20, 20, WithPrompter(prompts))
	s.gesture.Drawing = true

	tools[Text].move(s, Pt(3, 4))
	assert.False(s.gesture.Drawing)
	assert.True(s.PromptPending())
	assert.Equal([]Point{Pt(3, 4)}, prompts.asked)
}
