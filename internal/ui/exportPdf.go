package ui

import (
	"fmt"
	"log"

	"LocalPaint/internal/document"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
)

// ExportPDF asks where to save and writes the board as a one-page PDF.
func ExportPDF(board *BoardWidget) {
	save := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, board.window)
			return
		}
		if w == nil {
			return
		}
		defer w.Close()
		if err := board.Session().Export(w); err != nil {
			log.Printf("Export to %s failed: %v", w.URI(), err)
			dialog.ShowError(fmt.Errorf("export: %w", err), board.window)
			return
		}
		board.SetStatus("Saved " + w.URI().Name())
	}, board.window)
	save.SetFileName("download.pdf")
	save.SetFilter(storage.NewExtensionFileFilter([]string{".pdf"}))
	save.Show()
}

// OpenDocument replaces the board with the first page of an image file.
func OpenDocument(board *BoardWidget) {
	open := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, board.window)
			return
		}
		if r == nil {
			return
		}
		defer r.Close()
		doc, err := document.Open(r)
		if err != nil {
			dialog.ShowError(err, board.window)
			return
		}
		if err := board.Session().LoadPage(doc); err != nil {
			dialog.ShowError(err, board.window)
			return
		}
		board.Refresh()
		board.SetStatus("Opened " + r.URI().Name())
		board.stateChanged()
	}, board.window)
	open.SetFilter(storage.NewExtensionFileFilter([]string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp"}))
	open.Show()
}
