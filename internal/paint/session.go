package paint

import (
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"

	"LocalPaint/internal/export"

	"github.com/gogpu/gg"
)

// ErrNoSurface is returned by operations that need a raster before one has
// been initialised.
var ErrNoSurface = errors.New("paint: no active surface")

// DefaultPageScale is the scale page 1 of a loaded document is rendered at.
const DefaultPageScale = 1.5

// PageSource yields rasterised pages of an external document.
type PageSource interface {
	PageCount() int
	RenderPage(index int, scale float64) (image.Image, error)
}

// TextPrompter asks the user for text without blocking. The host answers
// later through Session.SubmitText or Session.CancelText.
type TextPrompter interface {
	RequestText(at Point)
}

// PrompterFunc adapts a function to TextPrompter.
type PrompterFunc func(at Point)

func (f PrompterFunc) RequestText(at Point) { f(at) }

// Option configures a Session.
type Option func(*Session)

func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithHistoryLimit caps the undo stack depth; n <= 0 removes the cap.
func WithHistoryLimit(n int) Option {
	return func(s *Session) { s.historyLimit = n }
}

// WithHistoryBytes caps the memory held by undo and redo snapshots;
// n <= 0 removes the cap.
func WithHistoryBytes(n int) Option {
	return func(s *Session) { s.historyBytes = n }
}

func WithPrompter(p TextPrompter) Option {
	return func(s *Session) { s.prompter = p }
}

// WithOnChange registers a callback run after every operation that changed
// pixels on the surface.
func WithOnChange(fn func()) Option {
	return func(s *Session) { s.onChange = fn }
}

func WithPageScale(scale float64) Option {
	return func(s *Session) {
		if scale > 0 {
			s.pageScale = scale
		}
	}
}

// Session is the paint engine: it owns the surface, the undo history and the
// gesture in progress, and interprets pointer input under the current mode.
//
// A Session is not safe for concurrent use. Hosts with more than one event
// source serialise calls through an Actor.
type Session struct {
	surface *Surface
	history *History
	gesture Gesture
	mode    Mode

	// prompt is the position of an open text request, nil when none.
	prompt *Point

	prompter     TextPrompter
	onChange     func()
	historyLimit int
	historyBytes int
	pageScale    float64
	log          *slog.Logger
}

// NewSession returns a session without a surface. Until Init or LoadPage
// succeeds every operation is a no-op.
func NewSession(opts ...Option) *Session {
	s := &Session{
		historyLimit: DefaultHistoryLimit,
		historyBytes: DefaultHistoryBytes,
		pageScale:    DefaultPageScale,
		log:          newNopLogger(),
	}
	for _, o := range opts {
		o(s)
	}
	s.history = NewHistory(s.historyLimit, s.historyBytes)
	return s
}

// Init starts the session over on a blank width×height surface.
func (s *Session) Init(width, height int) error {
	surf, err := NewSurface(width, height)
	if err != nil {
		return err
	}
	s.start(surf)
	s.log.Info("session initialised", "width", width, "height", height)
	return nil
}

// LoadPage starts the session over on a surface sized to the first page of
// src and painted with it.
func (s *Session) LoadPage(src PageSource) error {
	if src == nil || src.PageCount() < 1 {
		return errors.New("paint: document has no pages")
	}
	img, err := src.RenderPage(0, s.pageScale)
	if err != nil {
		return fmt.Errorf("render page 1: %w", err)
	}
	b := img.Bounds()
	surf, err := NewSurface(b.Dx(), b.Dy())
	if err != nil {
		return err
	}
	surf.DrawImage(img)
	s.start(surf)
	s.log.Info("page loaded", "width", b.Dx(), "height", b.Dy(), "pages", src.PageCount())
	return nil
}

func (s *Session) start(surf *Surface) {
	s.surface = surf
	s.Reset()
	s.changed()
}

// Reset drops history, any open gesture and any pending text request. The
// raster, mode and stroke style are kept.
func (s *Session) Reset() {
	s.history.Clear()
	s.gesture = Gesture{}
	s.prompt = nil
}

func (s *Session) Surface() *Surface   { return s.surface }
func (s *Session) History() *History   { return s.history }
func (s *Session) Gesture() Gesture    { return s.gesture }
func (s *Session) Mode() Mode          { return s.mode }
func (s *Session) Active() bool        { return s.surface != nil }
func (s *Session) PromptPending() bool { return s.prompt != nil }

// Image returns a copy of the current raster, or nil without a surface.
func (s *Session) Image() *image.RGBA {
	if s.surface == nil {
		return nil
	}
	return s.surface.Image()
}

// SetMode selects the tool for the next gesture. Invalid modes are ignored.
func (s *Session) SetMode(m Mode) {
	if !m.Valid() {
		return
	}
	s.mode = m
}

func (s *Session) SetStrokeWidth(w float64) {
	if s.surface == nil {
		return
	}
	s.surface.SetLineWidth(w)
}

// SetStrokeColor sets the colour used by strokes, text and fills.
func (s *Session) SetStrokeColor(c string) error {
	p, err := ParseColor(c)
	if err != nil {
		return err
	}
	if s.surface != nil {
		s.surface.SetStrokeColor(p)
	}
	return nil
}

func (s *Session) PointerDown(at Point) {
	if s.surface == nil || s.prompt != nil {
		return
	}
	s.gesture.Drawing = true
	s.gesture.Start = at
	s.gesture.pre = s.surface.Snapshot()

	before := s.history.UndoLen()
	tools[s.mode].down(s, at)
	if s.history.UndoLen() != before {
		s.changed()
	}
}

func (s *Session) PointerMove(at Point) {
	if s.surface == nil || !s.gesture.Drawing || s.prompt != nil {
		return
	}
	t := tools[s.mode]
	if t.records {
		s.history.Record(s.surface)
	}
	t.move(s, at)
	if t.records {
		s.changed()
	}
}

func (s *Session) PointerUp(at Point) {
	s.endGesture(at)
}

func (s *Session) PointerLeave(at Point) {
	s.endGesture(at)
}

func (s *Session) endGesture(at Point) {
	if s.surface == nil {
		return
	}
	if s.gesture.Drawing {
		tools[s.mode].up(s, at)
	}
	s.gesture.Drawing = false
	s.gesture.pre = nil
}

func (s *Session) requestText(at Point) {
	if s.prompter == nil {
		return
	}
	s.prompt = &at
	s.prompter.RequestText(at)
}

// SubmitText answers an open text request. Empty text cancels it. It
// reports whether text was drawn.
func (s *Session) SubmitText(str string) bool {
	if s.prompt == nil || s.surface == nil {
		return false
	}
	at := *s.prompt
	s.prompt = nil
	if str == "" {
		return false
	}
	s.history.Record(s.surface)
	s.surface.FillText(str, at)
	s.changed()
	return true
}

// CancelText drops an open text request without touching the raster.
func (s *Session) CancelText() {
	s.prompt = nil
}

func (s *Session) Undo() {
	if s.surface == nil {
		return
	}
	if s.history.Undo(s.surface) {
		s.log.Debug("undo", "undo", s.history.UndoLen(), "redo", s.history.RedoLen())
		s.changed()
	}
}

func (s *Session) Redo() {
	if s.surface == nil {
		return
	}
	if s.history.Redo(s.surface) {
		s.log.Debug("redo", "undo", s.history.UndoLen(), "redo", s.history.RedoLen())
		s.changed()
	}
}

// ClearCanvas makes the raster transparent and empties the history.
func (s *Session) ClearCanvas() {
	if s.surface == nil {
		return
	}
	s.surface.Clear()
	s.history.Clear()
	s.changed()
}

// Export writes the raster as a single-page document. History is untouched.
func (s *Session) Export(w io.Writer) error {
	if s.surface == nil {
		return ErrNoSurface
	}
	if err := export.WritePDF(w, s.surface.Image()); err != nil {
		s.log.Warn("export failed", "err", err)
		return err
	}
	return nil
}

func (s *Session) stroke(build func(*gg.Context)) {
	if err := s.surface.Stroke(build); err != nil {
		s.log.Warn("stroke failed", "mode", s.mode, "err", err)
	}
}

func (s *Session) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}
