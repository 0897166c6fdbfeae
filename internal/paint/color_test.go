package paint

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseColor(t *testing.T) {
	cases := []struct {
		in   string
		want Pixel
		ok   bool
	}{
		{"#ff0000", Pixel{255, 0, 0, 255}, true},
		{"00FF7f", Pixel{0, 255, 127, 255}, true},
		{"red", Pixel{255, 0, 0, 255}, true},
		{"CornflowerBlue", Pixel{100, 149, 237, 255}, true},
		{" #000000 ", Black, true},
		{"#fff", Pixel{}, false},
		{"#gg0000", Pixel{}, false},
		{"", Pixel{}, false},
		{"ultraviolet", Pixel{}, false},
	}
	for _, c := range cases {
		got, err := ParseColor(c.in)
		if !c.ok {
			assert.ErrorIs(t, err, ErrBadColor, c.in)
			continue
		}
		assert.NoError(t, err, c.in)
		assert.Equal(t, c.want, got, c.in)
	}
}

func TestPixel(t *testing.T) {
	assert := assert.New(t)

	assert.True(Sentinel.IsSentinel())
	assert.False(Transparent.IsSentinel())
	assert.Equal("#ff8000", Pixel{255, 128, 0, 255}.Hex())
	assert.Equal(color.NRGBA{R: 1, G: 2, B: 3, A: 4}, Pixel{1, 2, 3, 4}.NRGBA())
	assert.Equal(color.NRGBA{}, Sentinel.NRGBA())
}
