// Package panel draws one labelled bar graph for a single scalar metric.
//
// A panel keeps no list of past values. Each Update shifts the graph on the
// surface one column to the left and paints the newest value into the freed
// column, so the history lives only in the pixels and the memory footprint
// is fixed however long the host runs.
package panel

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
)

var ErrSurfaceUnavailable = errors.New("drawing surface unavailable")

// Opacity of the background painted over the graph.
const graphAlpha = 0.9

// Surface is the 2D drawing target a panel owns.
type Surface interface {
	SetFillColor(c color.Color)
	SetGlobalAlpha(alpha float64)

	// SetFont sets the text size in device pixels.
	SetFont(px float64)

	FillRect(x, y, w, h float64)

	// FillText draws text with its top edge at y.
	FillText(text string, x, y float64)

	// CopyRect draws the surface onto itself.
	CopyRect(sx, sy, sw, sh, dx, dy, dw, dh float64)
}

// SurfaceFactory allocates a surface of width x height device pixels.
type SurfaceFactory func(width, height int) (Surface, error)

// Layout holds the panel geometry in device pixels.
type Layout struct {
	Width, Height int

	TextX, TextY int
	FontSize     int

	GraphX, GraphY          int
	GraphWidth, GraphHeight int

	// Column is the width of one bar.
	Column int
}

// NewLayout scales the 80x48 CSS pixel panel to ratio.
func NewLayout(ratio float64) Layout {
	px := func(v float64) int {
		return int(math.Round(v * ratio))
	}

	return Layout{
		Width:       px(80),
		Height:      px(48),
		TextX:       px(3),
		TextY:       px(2),
		FontSize:    px(9),
		GraphX:      px(3),
		GraphY:      px(15),
		GraphWidth:  px(74),
		GraphHeight: px(30),
		Column:      max(1, px(1)),
	}
}

type Panel struct {
	surface Surface
	layout  Layout

	label      string
	foreground color.Color
	background color.Color
	ratio      float64
}

// Create allocates the panel surface and paints the empty panel: background,
// label, and a graph band tinted with the foreground.
func Create(newSurface SurfaceFactory, label string, foreground, background color.Color, ratio float64) (*Panel, error) {
	if ratio <= 0 || math.IsInf(ratio, 0) || math.IsNaN(ratio) {
		return nil, fmt.Errorf("%w: pixel ratio %v", ErrSurfaceUnavailable, ratio)
	}
	if newSurface == nil {
		return nil, ErrSurfaceUnavailable
	}

	l := NewLayout(ratio)

	s, err := newSurface(l.Width, l.Height)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSurfaceUnavailable, err)
	}
	if s == nil {
		return nil, ErrSurfaceUnavailable
	}

	p := &Panel{
		surface:    s,
		layout:     l,
		label:      label,
		foreground: foreground,
		background: background,
		ratio:      ratio,
	}

	s.SetFont(float64(l.FontSize))

	s.SetGlobalAlpha(1)
	s.SetFillColor(background)
	s.FillRect(0, 0, float64(l.Width), float64(l.Height))

	s.SetFillColor(foreground)
	s.FillText(label, float64(l.TextX), float64(l.TextY))
	p.fillGraph()

	s.SetFillColor(background)
	s.SetGlobalAlpha(graphAlpha)
	p.fillGraph()

	return p, nil
}

// Update redraws the text band with value and pushes value onto the graph.
// maxValue is the full-scale value of the graph and must be positive; values
// above it are not clamped.
func (p *Panel) Update(value, maxValue float64) {
	s := p.surface
	l := p.layout

	gx := float64(l.GraphX)
	gy := float64(l.GraphY)
	gw := float64(l.GraphWidth)
	gh := float64(l.GraphHeight)
	col := float64(l.Column)

	s.SetFillColor(p.background)
	s.SetGlobalAlpha(1)
	s.FillRect(0, 0, float64(l.Width), gy)

	s.SetFillColor(p.foreground)
	s.FillText(FormatValue(value)+" "+p.label, float64(l.TextX), float64(l.TextY))

	s.CopyRect(gx+col, gy, gw-col, gh, gx, gy, gw-col, gh)

	// newest column: full bar, then background down to the bar top
	x := gx + gw - col
	s.FillRect(x, gy, col, gh)

	s.SetFillColor(p.background)
	s.SetGlobalAlpha(graphAlpha)
	s.FillRect(x, gy, col, (1-value/maxValue)*gh)
}

func (p *Panel) fillGraph() {
	l := p.layout
	p.surface.FillRect(float64(l.GraphX), float64(l.GraphY), float64(l.GraphWidth), float64(l.GraphHeight))
}

func (p *Panel) Label() string {
	return p.label
}

func (p *Panel) Ratio() float64 {
	return p.ratio
}

func (p *Panel) Layout() Layout {
	return p.layout
}

func (p *Panel) Surface() Surface {
	return p.surface
}

// FormatValue prints v the way the panel text shows it: 60 rather than 60.0.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
