package canvas_test

import (
	"image/color"
	"path/filepath"
	"testing"

	"github.com/danfragoso/gostats/canvas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red   = color.NRGBA{R: 255, A: 255}
	blue  = color.NRGBA{B: 255, A: 255}
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"#0ff", color.NRGBA{G: 255, B: 255, A: 255}},
		{"#002", color.NRGBA{B: 0x22, A: 255}},
		{"#4A90E2", color.NRGBA{R: 0x4a, G: 0x90, B: 0xe2, A: 255}},
		{"00ff0080", color.NRGBA{G: 255, A: 0x80}},
	}

	for _, tt := range tests {
		got, err := canvas.ParseColor(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"", "#", "#12", "#12345", "#ggg", "blue"} {
		_, err := canvas.ParseColor(bad)
		assert.ErrorIs(t, err, canvas.ErrInvalidColor, bad)
	}
}

func TestNewInvalidSize(t *testing.T) {
	_, err := canvas.New(0, 10)
	assert.ErrorIs(t, err, canvas.ErrInvalidSize)

	_, err = canvas.New(10, -1)
	assert.ErrorIs(t, err, canvas.ErrInvalidSize)
}

func TestNewMissingFontFile(t *testing.T) {
	_, err := canvas.New(4, 4, canvas.WithFontFile(filepath.Join(t.TempDir(), "nope.ttf")))
	assert.ErrorIs(t, err, canvas.ErrInvalidFont)
}

func TestFillRectOpaque(t *testing.T) {
	c, err := canvas.New(10, 10)
	require.NoError(t, err)

	c.SetFillColor(red)
	c.FillRect(2, 3, 4, 5)

	assert.Equal(t, color.RGBA{R: 255, A: 255}, c.RGBAAt(2, 3))
	assert.Equal(t, color.RGBA{R: 255, A: 255}, c.RGBAAt(5, 7))
	assert.Equal(t, color.RGBA{}, c.RGBAAt(6, 7))
	assert.Equal(t, color.RGBA{}, c.RGBAAt(5, 8))
}

func TestFillRectNegativeSize(t *testing.T) {
	c, err := canvas.New(10, 10)
	require.NoError(t, err)

	c.SetFillColor(red)
	c.FillRect(5, 5, -2, -3)

	assert.Equal(t, color.RGBA{R: 255, A: 255}, c.RGBAAt(3, 2))
	assert.Equal(t, color.RGBA{R: 255, A: 255}, c.RGBAAt(4, 4))
	assert.Equal(t, color.RGBA{}, c.RGBAAt(5, 5))
}

func TestFillRectGlobalAlpha(t *testing.T) {
	c, err := canvas.New(4, 4)
	require.NoError(t, err)

	c.SetFillColor(white)
	c.FillRect(0, 0, 4, 4)

	c.SetFillColor(color.NRGBA{A: 255})
	c.SetGlobalAlpha(0.5)
	c.FillRect(0, 0, 4, 4)

	px := c.RGBAAt(1, 1)
	assert.InDelta(t, 127, int(px.R), 1)
	assert.Equal(t, uint8(255), px.A)
}

func TestCopyRectOverlapLeft(t *testing.T) {
	c, err := canvas.New(6, 1)
	require.NoError(t, err)

	for x, col := range []color.NRGBA{red, blue, white, red, blue, white} {
		c.SetFillColor(col)
		c.FillRect(float64(x), 0, 1, 1)
	}

	// shift columns 1..5 one to the left
	c.CopyRect(1, 0, 5, 1, 0, 0, 5, 1)

	want := []color.RGBA{
		{B: 255, A: 255},
		{R: 255, G: 255, B: 255, A: 255},
		{R: 255, A: 255},
		{B: 255, A: 255},
		{R: 255, G: 255, B: 255, A: 255},
		{R: 255, G: 255, B: 255, A: 255},
	}
	for x, w := range want {
		assert.Equal(t, w, c.RGBAAt(x, 0), "x=%d", x)
	}
}

func TestCopyRectOverlapDown(t *testing.T) {
	c, err := canvas.New(1, 3)
	require.NoError(t, err)

	c.SetFillColor(red)
	c.FillRect(0, 0, 1, 1)
	c.SetFillColor(blue)
	c.FillRect(0, 1, 1, 1)

	c.CopyRect(0, 0, 1, 2, 0, 1, 1, 2)

	assert.Equal(t, color.RGBA{R: 255, A: 255}, c.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{R: 255, A: 255}, c.RGBAAt(0, 1))
	assert.Equal(t, color.RGBA{B: 255, A: 255}, c.RGBAAt(0, 2))
}

func TestCopyRectScaled(t *testing.T) {
	c, err := canvas.New(4, 4)
	require.NoError(t, err)

	c.SetFillColor(red)
	c.FillRect(0, 0, 1, 1)

	c.CopyRect(0, 0, 1, 1, 2, 2, 2, 2)

	for _, p := range [][2]int{{2, 2}, {3, 2}, {2, 3}, {3, 3}} {
		assert.Equal(t, color.RGBA{R: 255, A: 255}, c.RGBAAt(p[0], p[1]))
	}
}

func TestFillText(t *testing.T) {
	c, err := canvas.New(40, 20)
	require.NoError(t, err)

	c.SetFillColor(white)
	c.SetFont(12)
	c.FillText("88", 2, 2)

	lit := 0
	for y := 0; y < 20; y++ {
		for x := 0; x < 40; x++ {
			if c.RGBAAt(x, y).A > 0 {
				lit++
			}
		}
	}
	assert.Positive(t, lit)

	// top-aligned: nothing above the requested top edge
	for x := 0; x < 40; x++ {
		assert.Zero(t, c.RGBAAt(x, 0).A, "x=%d", x)
	}
}
