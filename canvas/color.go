package canvas

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

var ErrInvalidColor = errors.New("invalid color")

// ParseColor converts "#rgb", "#rrggbb" or "#rrggbbaa" (leading '#'
// optional) to a non-premultiplied color.
func ParseColor(hex string) (color.NRGBA, error) {
	h := strings.TrimPrefix(hex, "#")

	// short form: every digit doubles, "#0ff" == "#00ffff"
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, hex)
	}

	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, hex)
	}

	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

// MustParseColor is ParseColor for constants known to be valid.
func MustParseColor(hex string) color.NRGBA {
	c, err := ParseColor(hex)
	if err != nil {
		panic(err)
	}
	return c
}

// withAlpha scales the alpha channel of c by a in [0, 1].
func withAlpha(c color.Color, a float64) color.NRGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if a < 0 {
		a = 0
	} else if a > 1 {
		a = 1
	}
	n.A = uint8(float64(n.A)*a + 0.5)
	return n
}
