package export

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
	"github.com/jung-kurt/gofpdf"
)

// ErrEmptyImage is returned when there is nothing to export.
var ErrEmptyImage = errors.New("export: image has no pixels")

const imageName = "canvas"

// FitToPage scales an imgW×imgH image to the largest size that fits a
// pageW×pageH page without changing its aspect ratio.
func FitToPage(imgW, imgH, pageW, pageH float64) (w, h float64) {
	ratio := imgW / imgH
	if ratio > pageW/pageH {
		return pageW, pageW / ratio
	}
	return pageH * ratio, pageH
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	return imaging.Encode(w, img, imaging.PNG)
}

// WritePDF writes a one-page portrait A4 document with img placed at the top
// left corner, scaled to fit the page.
func WritePDF(w io.Writer, img image.Image) error {
	if img == nil || img.Bounds().Empty() {
		return ErrEmptyImage
	}

	var buf bytes.Buffer
	if err := WritePNG(&buf, img); err != nil {
		return fmt.Errorf("encode canvas: %w", err)
	}

	p := gofpdf.New("P", "pt", "A4", "")
	p.SetMargins(0, 0, 0)
	p.SetAutoPageBreak(false, 0)
	p.SetCreator("LocalPaint", true)
	p.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	p.RegisterImageOptionsReader(imageName, opts, &buf)

	pageW, pageH := p.GetPageSize()
	b := img.Bounds()
	rw, rh := FitToPage(float64(b.Dx()), float64(b.Dy()), pageW, pageH)
	p.ImageOptions(imageName, 0, 0, rw, rh, false, opts, 0, "")

	if err := p.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
