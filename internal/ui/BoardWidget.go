package ui

import (
	"fmt"
	"log"

	"LocalPaint/internal/paint"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// BoardWidget shows a paint session's raster and feeds mouse input into it.
// Every call into the session happens on the fyne event goroutine, which
// makes the widget the session's only writer.
type BoardWidget struct {
	widget.BaseWidget
	session  *paint.Session
	window   fyne.Window
	renderer *boardWidgetRenderer
	lastPos  paint.Point

	// OnStateChanged runs after anything the toolbar mirrors may have
	// changed: mode, colour, width or history depth.
	OnStateChanged func()
	statusBar      *widget.Label
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)
var _ desktop.Hoverable = (*BoardWidget)(nil)
var _ paint.TextPrompter = (*BoardWidget)(nil)

// NewBoardWidget starts a blank width×height session inside window.
func NewBoardWidget(window fyne.Window, width, height int, opts ...paint.Option) (*BoardWidget, error) {
	b := &BoardWidget{
		window:    window,
		statusBar: widget.NewLabel("Ready"),
	}
	opts = append(opts, paint.WithOnChange(b.repaint), paint.WithPrompter(b))
	b.session = paint.NewSession(opts...)
	if err := b.session.Init(width, height); err != nil {
		return nil, err
	}
	b.ExtendBaseWidget(b)
	return b, nil
}

func (b *BoardWidget) Session() *paint.Session { return b.session }

func (b *BoardWidget) StatusBar() *widget.Label { return b.statusBar }

func (b *BoardWidget) SetStatus(text string) {
	b.statusBar.SetText(text)
}

func (b *BoardWidget) stateChanged() {
	if b.OnStateChanged != nil {
		b.OnStateChanged()
	}
}

// RequestText opens a non-blocking dialog. The session ignores pointer
// input until the dialog is answered.
func (b *BoardWidget) RequestText(at paint.Point) {
	entry := widget.NewEntry()
	entry.SetPlaceHolder("Text")
	items := []*widget.FormItem{widget.NewFormItem("Text", entry)}
	dialog.ShowForm("Add text", "Add", "Cancel", items, func(ok bool) {
		if !ok {
			b.session.CancelText()
			return
		}
		if b.session.SubmitText(entry.Text) {
			b.stateChanged()
		}
	}, b.window)
}

func (b *BoardWidget) SetMode(m paint.Mode) {
	b.session.SetMode(m)
	b.SetStatus(fmt.Sprintf("Tool: %s", m))
	b.stateChanged()
}

func (b *BoardWidget) SetColorHex(hex string) {
	if err := b.session.SetStrokeColor(hex); err != nil {
		log.Printf("SetColor: %v", err)
		return
	}
	b.stateChanged()
}

func (b *BoardWidget) SetStroke(w float64) {
	b.session.SetStrokeWidth(w)
}

func (b *BoardWidget) Undo() {
	b.session.Undo()
	b.stateChanged()
}

func (b *BoardWidget) Redo() {
	b.session.Redo()
	b.stateChanged()
}

// ClearPaths wipes the board and its history.
func (b *BoardWidget) ClearPaths() {
	b.session.ClearCanvas()
	b.SetStatus("Cleared")
	b.stateChanged()
}

func toPoint(p fyne.Position) paint.Point {
	return paint.Pt(float64(p.X), float64(p.Y))
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.lastPos = toPoint(e.Position)
	b.session.PointerDown(b.lastPos)
	if b.session.Mode() == paint.Picker || b.session.Mode() == paint.Bucket {
		b.stateChanged()
	}
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.lastPos = toPoint(e.Position)
	b.session.PointerUp(b.lastPos)
	b.stateChanged()
}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	b.lastPos = toPoint(e.Position)
	b.session.PointerMove(b.lastPos)
}

func (b *BoardWidget) DragEnd() {
	b.session.PointerUp(b.lastPos)
	b.stateChanged()
}

func (b *BoardWidget) MouseIn(*desktop.MouseEvent) {}

func (b *BoardWidget) MouseMoved(e *desktop.MouseEvent) {
	b.lastPos = toPoint(e.Position)
}

func (b *BoardWidget) MouseOut() {
	b.session.PointerLeave(b.lastPos)
}
