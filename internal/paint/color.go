package paint

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ErrBadColor is returned for colour strings that are neither #rrggbb nor a
// known colour name.
var ErrBadColor = errors.New("paint: unrecognised colour")

// Pixel is one RGBA quadruple. Channels are 0..255 for real pixels; the
// signed representation exists only so Sentinel can sit outside that range.
type Pixel struct {
	R, G, B, A int
}

// Sentinel is returned for reads outside the surface. It never equals a real
// pixel.
var Sentinel = Pixel{-1, -1, -1, -1}

var (
	Black       = Pixel{0, 0, 0, 255}
	Transparent = Pixel{}
)

func (p Pixel) IsSentinel() bool { return p == Sentinel }

// Hex formats the colour channels as #rrggbb. Alpha is dropped.
func (p Pixel) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", clampByte(p.R), clampByte(p.G), clampByte(p.B))
}

// NRGBA converts a real pixel to a standard library colour.
func (p Pixel) NRGBA() color.NRGBA {
	return color.NRGBA{R: clampByte(p.R), G: clampByte(p.G), B: clampByte(p.B), A: clampByte(p.A)}
}

// ParseColor accepts "#rrggbb" (leading # optional) or a CSS colour name
// such as "red". The result is always opaque.
func ParseColor(s string) (Pixel, error) {
	s = strings.TrimSpace(s)
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return Pixel{int(c.R), int(c.G), int(c.B), 255}, nil
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return Pixel{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Pixel{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	return Pixel{int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff), 255}, nil
}

func clampByte(v int) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	}
	return uint8(v)
}
