package paint

import (
	"errors"
	"image"
	"math"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
)

// ErrInvalidSize is returned when a surface is requested with a non-positive
// dimension.
var ErrInvalidSize = errors.New("paint: surface dimensions must be positive")

const (
	DefaultLineWidth = 2
	MinLineWidth     = 1
	MaxLineWidth     = 100

	// TextSize is the pixel size of committed text.
	TextSize = 20
)

var (
	faceOnce sync.Once
	textFace text.Face
)

// defaultFace parses Go Regular once per process. A nil face turns text
// commits into no-ops.
func defaultFace() text.Face {
	faceOnce.Do(func() {
		src, err := text.NewFontSource(goregular.TTF)
		if err != nil {
			return
		}
		textFace = src.Face(TextSize)
	})
	return textFace
}

// Surface owns a fixed-size RGBA raster and the stroke style used to draw on
// it. Dimensions never change after construction.
type Surface struct {
	width, height int
	pixmap        *gg.Pixmap
	dc            *gg.Context

	strokeColor Pixel
	lineWidth   float64
}

// NewSurface allocates a fully transparent width×height surface with the
// default style: black, width 2, round joins and caps.
func NewSurface(width, height int) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidSize
	}
	pm := gg.NewPixmap(width, height)
	dc := gg.NewContext(width, height, gg.WithPixmap(pm))
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)
	s := &Surface{
		width:       width,
		height:      height,
		pixmap:      pm,
		dc:          dc,
		strokeColor: Black,
		lineWidth:   DefaultLineWidth,
	}
	return s, nil
}

func (s *Surface) Width() int  { return s.width }
func (s *Surface) Height() int { return s.height }

func (s *Surface) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < s.width && y < s.height
}

// The pixmap holds alpha-premultiplied RGBA, as gg draws it. Pixel values
// crossing the Surface API are straight (non-premultiplied) colours.

func premultiply(c, a uint8) uint8 {
	return uint8((uint32(c)*uint32(a) + 127) / 255)
}

func unpremultiply(c, a uint8) uint8 {
	if a == 0 {
		return 0
	}
	v := (uint32(c)*255 + uint32(a)/2) / uint32(a)
	return uint8(min(v, 255))
}

// GetPixel returns the straight colour at (x, y), or Sentinel outside the
// surface.
func (s *Surface) GetPixel(x, y int) Pixel {
	if !s.inBounds(x, y) {
		return Sentinel
	}
	d := s.pixmap.Data()
	i := (y*s.width + x) * 4
	a := d[i+3]
	return Pixel{
		int(unpremultiply(d[i], a)),
		int(unpremultiply(d[i+1], a)),
		int(unpremultiply(d[i+2], a)),
		int(a),
	}
}

// SetPixel writes a straight colour. Writes outside the surface are dropped.
func (s *Surface) SetPixel(x, y int, p Pixel) {
	if !s.inBounds(x, y) {
		return
	}
	d := s.pixmap.Data()
	i := (y*s.width + x) * 4
	a := clampByte(p.A)
	d[i] = premultiply(clampByte(p.R), a)
	d[i+1] = premultiply(clampByte(p.G), a)
	d[i+2] = premultiply(clampByte(p.B), a)
	d[i+3] = a
}

// Snapshot deep-copies the pixel grid.
func (s *Surface) Snapshot() *Snapshot {
	pix := make([]uint8, len(s.pixmap.Data()))
	copy(pix, s.pixmap.Data())
	return &Snapshot{width: s.width, height: s.height, pix: pix}
}

// Restore copies snap back into the live buffer. Snapshots of a different
// size are ignored.
func (s *Surface) Restore(snap *Snapshot) {
	if snap == nil || snap.width != s.width || snap.height != s.height {
		return
	}
	copy(s.pixmap.Data(), snap.pix)
}

// Clear makes every pixel transparent.
func (s *Surface) Clear() {
	s.pixmap.Clear(gg.Transparent)
}

// ClearRect makes the pixels inside the rectangle transparent. Fractional
// edges are rounded to the nearest pixel boundary.
func (s *Surface) ClearRect(x, y, w, h float64) {
	x0, x1 := int(math.Round(x)), int(math.Round(x+w))
	y0, y1 := int(math.Round(y)), int(math.Round(y+h))
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	x0, y0 = max(x0, 0), max(y0, 0)
	x1, y1 = min(x1, s.width), min(y1, s.height)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			s.SetPixel(px, py, Transparent)
		}
	}
}

func (s *Surface) StrokeColor() Pixel { return s.strokeColor }

func (s *Surface) SetStrokeColor(p Pixel) {
	p.A = 255
	s.strokeColor = p
}

func (s *Surface) LineWidth() float64 { return s.lineWidth }

// SetLineWidth clamps w to [MinLineWidth, MaxLineWidth].
func (s *Surface) SetLineWidth(w float64) {
	s.lineWidth = math.Max(MinLineWidth, math.Min(MaxLineWidth, w))
}

// Stroke lets build lay out a path on the drawing context and strokes it
// with the current style.
func (s *Surface) Stroke(build func(dc *gg.Context)) error {
	s.dc.ClearPath()
	s.dc.SetColor(s.strokeColor.NRGBA())
	s.dc.SetLineWidth(s.lineWidth)
	build(s.dc)
	return s.dc.Stroke()
}

// FillText draws str with its baseline starting at at, filled in the stroke
// colour.
func (s *Surface) FillText(str string, at Point) {
	face := defaultFace()
	if face == nil || str == "" {
		return
	}
	s.dc.SetFont(face)
	s.dc.SetColor(s.strokeColor.NRGBA())
	s.dc.DrawString(str, at.X, at.Y)
}

// Image returns a copy of the raster. Like gg's Pixmap.ToImage it is an
// image.RGBA, whose pixels are premultiplied as well.
func (s *Surface) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	copy(img.Pix, s.pixmap.Data())
	return img
}

// DrawImage replaces the raster with img anchored at the origin. Parts of img
// that do not fit are cropped.
func (s *Surface) DrawImage(img image.Image) {
	src := imaging.Clone(img)
	b := src.Bounds()
	d := s.pixmap.Data()
	rows := min(b.Dy(), s.height)
	cols := min(b.Dx(), s.width)
	for y := 0; y < rows; y++ {
		row := src.Pix[y*src.Stride:]
		for x := 0; x < cols; x++ {
			j, i := x*4, (y*s.width+x)*4
			a := row[j+3]
			d[i] = premultiply(row[j], a)
			d[i+1] = premultiply(row[j+1], a)
			d[i+2] = premultiply(row[j+2], a)
			d[i+3] = a
		}
	}
}
