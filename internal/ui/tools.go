package ui

import (
	"fmt"
	"image/color"

	"LocalPaint/internal/paint"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"golang.org/x/image/colornames"
)

// --- Custom Widget for Color Swatches ---
type colorSwatch struct {
	widget.BaseWidget
	Color    color.NRGBA
	OnTapped func(color.NRGBA)
}

func newColorSwatch(c color.NRGBA, tapped func(color.NRGBA)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(28, 28))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

func rgbaHex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

var palette = []color.RGBA{
	colornames.Black,
	colornames.Red,
	colornames.Green,
	colornames.Blue,
	colornames.Yellow,
	colornames.Orange,
	colornames.Purple,
	colornames.White,
}

// --- The Main Toolbar ---
func NewToolbar(board *BoardWidget) fyne.CanvasObject {
	// --- Mode picker ---
	names := make([]string, 0, len(paint.Modes()))
	for _, m := range paint.Modes() {
		names = append(names, m.String())
	}
	modeSelect := widget.NewSelect(names, func(name string) {
		m, err := paint.ParseMode(name)
		if err != nil {
			return
		}
		if m != board.Session().Mode() {
			board.SetMode(m)
		}
	})
	modeSelect.SetSelected(board.Session().Mode().String())

	// --- Color Palette ---
	current := canvas.NewRectangle(color.Black)
	current.SetMinSize(fyne.NewSize(28, 28))
	colorBox := container.NewHBox()
	for _, c := range palette {
		hex := rgbaHex(c)
		colorBox.Add(newColorSwatch(color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255}, func(color.NRGBA) {
			board.SetColorHex(hex)
		}))
	}

	// --- Stroke Width Slider ---
	widthLabel := widget.NewLabel("")
	strokeSlider := widget.NewSlider(paint.MinLineWidth, paint.MaxLineWidth)
	strokeSlider.SetValue(paint.DefaultLineWidth)
	strokeSlider.OnChanged = func(val float64) {
		board.SetStroke(val)
		widthLabel.SetText(fmt.Sprintf("%d px", int(val)))
	}
	widthLabel.SetText(fmt.Sprintf("%d px", int(strokeSlider.Value)))
	sliderContainer := container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), strokeSlider)

	// toolbar with built-in tooltips
	actions := widget.NewToolbar(
		widget.NewToolbarAction(theme.ContentUndoIcon(), board.Undo),
		widget.NewToolbarAction(theme.ContentRedoIcon(), board.Redo),
		widget.NewToolbarAction(theme.DeleteIcon(), board.ClearPaths),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.FolderOpenIcon(), func() { OpenDocument(board) }),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), func() { ExportPDF(board) }),
	)

	// The picker and the prompt change style behind the toolbar's back.
	board.OnStateChanged = func() {
		s := board.Session()
		modeSelect.SetSelected(s.Mode().String())
		if surf := s.Surface(); surf != nil {
			current.FillColor = surf.StrokeColor().NRGBA()
			current.Refresh()
			if strokeSlider.Value != surf.LineWidth() {
				strokeSlider.SetValue(surf.LineWidth())
			}
		}
	}
	board.OnStateChanged()

	// --- Assemble everything ---
	return container.NewHBox(
		widget.NewLabel("Tool:"),
		modeSelect,
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		current,
		colorBox,
		widget.NewSeparator(),
		widget.NewLabel("Size:"),
		sliderContainer,
		widthLabel,
		widget.NewSeparator(),
		actions,
		layout.NewSpacer(),
	)
}
