// Package canvas is a small 2D drawing surface over an *image.RGBA, modelled
// on the subset of an HTML canvas context the overlay panels need: a fill
// color, a global alpha, rectangle fills, top-aligned text and a self-copy.
//
// Rectangles are snapped to whole device pixels, so repeated draws with the
// same arguments always produce the same pixels.
package canvas

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
)

var ErrInvalidSize = errors.New("invalid canvas size")

// Canvas is not safe for concurrent use.
type Canvas struct {
	dc *gg.Context
	fb *image.RGBA

	fill  color.NRGBA
	alpha float64

	font     *truetype.Font
	face     font.Face
	fontSize float64
}

type Option func(*Canvas) error

// WithFont renders text with f instead of the embedded Go Bold.
func WithFont(f *truetype.Font) Option {
	return func(c *Canvas) error {
		if f == nil {
			return ErrInvalidFont
		}
		c.font = f
		return nil
	}
}

// WithFontFile renders text with the TrueType font at path.
func WithFontFile(path string) Option {
	return func(c *Canvas) error {
		f, err := LoadFont(path)
		if err != nil {
			return err
		}
		c.font = f
		return nil
	}
}

// New allocates a transparent black canvas of width x height device pixels.
func New(width, height int, opts ...Option) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}

	fb := image.NewRGBA(image.Rect(0, 0, width, height))
	c := &Canvas{
		dc:    gg.NewContextForRGBA(fb),
		fb:    fb,
		fill:  color.NRGBA{A: 255},
		alpha: 1,
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.font == nil {
		f, err := defaultFont()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFont, err)
		}
		c.font = f
	}

	return c, nil
}

func (c *Canvas) Width() int {
	return c.fb.Rect.Dx()
}

func (c *Canvas) Height() int {
	return c.fb.Rect.Dy()
}

// Image returns the live backing image. It changes as the canvas is drawn.
func (c *Canvas) Image() *image.RGBA {
	return c.fb
}

// Context exposes the gg context over the same pixels for free-form drawing.
func (c *Canvas) Context() *gg.Context {
	return c.dc
}

func (c *Canvas) SetFillColor(col color.Color) {
	c.fill = color.NRGBAModel.Convert(col).(color.NRGBA)
}

// SetGlobalAlpha sets the opacity applied to every following fill, clamped
// to [0, 1].
func (c *Canvas) SetGlobalAlpha(alpha float64) {
	c.alpha = math.Max(0, math.Min(1, alpha))
}

// SetFont selects the text size in device pixels.
func (c *Canvas) SetFont(px float64) {
	if px <= 0 || px == c.fontSize && c.face != nil {
		return
	}
	c.fontSize = px
	c.face = newFace(c.font, px)
}

// FillRect fills a rectangle with the fill color at the global alpha.
// Negative sizes extend left/up from the origin.
func (c *Canvas) FillRect(x, y, w, h float64) {
	r := snap(x, y, w, h)
	fastFillRect(c.fb, r.Min.X, r.Min.Y, r.Max.X, r.Max.Y, withAlpha(c.fill, c.alpha))
}

// FillText draws text with its top edge at y.
func (c *Canvas) FillText(text string, x, y float64) {
	if c.face == nil {
		c.SetFont(10)
	}

	ascent := float64(c.face.Metrics().Ascent) / 64
	c.dc.SetFontFace(c.face)
	c.dc.SetColor(withAlpha(c.fill, c.alpha))
	c.dc.DrawString(text, math.Round(x), math.Round(y+ascent))
}

// CopyRect copies the source rectangle of the canvas onto the destination
// rectangle of the same canvas. Same-sized rectangles are copied pixel for
// pixel, which is safe for overlapping regions; otherwise the source is
// resampled.
func (c *Canvas) CopyRect(sx, sy, sw, sh, dx, dy, dw, dh float64) {
	src := snap(sx, sy, sw, sh).Intersect(c.fb.Rect)
	dst := snap(dx, dy, dw, dh)
	if src.Empty() || dst.Empty() {
		return
	}

	if src.Size() == dst.Size() {
		fastCopyRegion(c.fb, src, dst.Min)
		return
	}

	// resampling reads while it writes, so take a private copy first
	tmp := image.NewRGBA(image.Rect(0, 0, src.Dx(), src.Dy()))
	draw.Copy(tmp, image.Point{}, c.fb, src, draw.Src, nil)
	draw.ApproxBiLinear.Scale(c.fb, dst, tmp, tmp.Bounds(), draw.Src, nil)
}

// Clear fills the whole canvas with col, ignoring the global alpha.
func (c *Canvas) Clear(col color.Color) {
	n := color.NRGBAModel.Convert(col).(color.NRGBA)
	n.A = 255
	fastFillRect(c.fb, 0, 0, c.Width(), c.Height(), n)
}

// RGBAAt is the premultiplied color at x, y.
func (c *Canvas) RGBAAt(x, y int) color.RGBA {
	return c.fb.RGBAAt(x, y)
}

func snap(x, y, w, h float64) image.Rectangle {
	if w < 0 {
		x, w = x+w, -w
	}
	if h < 0 {
		y, h = y+h, -h
	}
	return image.Rect(
		int(math.Round(x)), int(math.Round(y)),
		int(math.Round(x+w)), int(math.Round(y+h)),
	)
}
