package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
)

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &boardWidgetRenderer{board: b}
	// The board shows white wherever the raster is transparent.
	r.background = canvas.NewRectangle(color.White)
	r.raster = canvas.NewImageFromImage(b.session.Image())
	r.raster.FillMode = canvas.ImageFillOriginal
	r.raster.ScaleMode = canvas.ImageScalePixels
	b.renderer = r
	return r
}

// repaint pulls a fresh copy of the raster after the session changed it.
func (b *BoardWidget) repaint() {
	if b.renderer == nil {
		return
	}
	b.renderer.raster.Image = b.session.Image()
	b.renderer.Refresh()
}

type boardWidgetRenderer struct {
	board      *BoardWidget
	background *canvas.Rectangle
	raster     *canvas.Image
}

func (r *boardWidgetRenderer) surfaceSize() fyne.Size {
	surf := r.board.session.Surface()
	if surf == nil {
		return fyne.NewSize(300, 300)
	}
	return fyne.NewSize(float32(surf.Width()), float32(surf.Height()))
}

func (r *boardWidgetRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.background, r.raster}
}

func (r *boardWidgetRenderer) Layout(size fyne.Size) {
	s := r.surfaceSize()
	r.background.Move(fyne.NewPos(0, 0))
	r.background.Resize(s)
	r.raster.Move(fyne.NewPos(0, 0))
	r.raster.Resize(s)
}

func (r *boardWidgetRenderer) MinSize() fyne.Size {
	return r.surfaceSize()
}

func (r *boardWidgetRenderer) Refresh() {
	r.Layout(r.board.Size())
	canvas.Refresh(r.raster)
}

func (r *boardWidgetRenderer) Destroy() {}
