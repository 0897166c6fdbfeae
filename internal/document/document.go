// Package document turns user-supplied files into page rasters a paint
// session can be started on.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"math"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	ErrPageRange = errors.New("document: page index out of range")
	ErrBadScale  = errors.New("document: scale must be positive")
)

// PageSource yields rasterised pages.
type PageSource interface {
	PageCount() int
	RenderPage(index int, scale float64) (image.Image, error)
}

// ImageDocument is a one-page document backed by a decoded raster image.
type ImageDocument struct {
	img image.Image
}

var _ PageSource = (*ImageDocument)(nil)

// Open decodes PNG, JPEG, GIF, BMP, TIFF or WebP data. EXIF orientation is
// applied so the page appears upright.
func Open(r io.Reader) (*ImageDocument, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return &ImageDocument{img: img}, nil
}

// OpenBytes is Open over an in-memory file.
func OpenBytes(data []byte) (*ImageDocument, error) {
	return Open(bytes.NewReader(data))
}

// FromImage wraps an already decoded image.
func FromImage(img image.Image) *ImageDocument {
	return &ImageDocument{img: img}
}

func (d *ImageDocument) PageCount() int { return 1 }

// RenderPage returns the page scaled by scale. Scale 1 returns a copy at the
// original size.
func (d *ImageDocument) RenderPage(index int, scale float64) (image.Image, error) {
	if index < 0 || index >= d.PageCount() {
		return nil, fmt.Errorf("%w: %d", ErrPageRange, index)
	}
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return nil, fmt.Errorf("%w: %v", ErrBadScale, scale)
	}
	b := d.img.Bounds()
	if scale == 1 {
		return imaging.Clone(d.img), nil
	}
	w := max(int(math.Round(float64(b.Dx())*scale)), 1)
	h := max(int(math.Round(float64(b.Dy())*scale)), 1)
	return imaging.Resize(d.img, w, h, imaging.Lanczos), nil
}
