package stats

import (
	"github.com/danfragoso/gostats/canvas"
	"github.com/danfragoso/gostats/dom"
	"github.com/danfragoso/gostats/monitor"
	"github.com/danfragoso/gostats/panel"
)

// Environment is everything the overlay needs from its host: a clock, the
// display density, and a way to create elements and drawable canvases.
type Environment interface {
	Clock() (monitor.Clock, error)
	PixelRatio() float64
	CreateElement(tag string) (*dom.Element, error)

	// CreateCanvas returns the element that shows the surface and the
	// surface itself, both width x height device pixels.
	CreateCanvas(width, height int) (*dom.Element, panel.Surface, error)
}

// Headless is an Environment drawing into in-memory canvases, for hosts that
// composite the tree themselves with dom.Render.
type Headless struct {
	ratio   float64
	clock   monitor.Clock
	options []canvas.Option
}

// NewHeadless uses the system clock and the given pixel ratio. Canvas
// options such as a custom font apply to every canvas it creates.
func NewHeadless(ratio float64, opts ...canvas.Option) *Headless {
	return &Headless{
		ratio:   ratio,
		clock:   monitor.NewSystemClock(),
		options: opts,
	}
}

// WithClock replaces the clock, mostly for tests and replays.
func (h *Headless) WithClock(c monitor.Clock) *Headless {
	h.clock = c
	return h
}

func (h *Headless) Clock() (monitor.Clock, error) {
	if h.clock == nil {
		return nil, monitor.ErrClockUnavailable
	}
	return h.clock, nil
}

func (h *Headless) PixelRatio() float64 {
	return h.ratio
}

func (h *Headless) CreateElement(tag string) (*dom.Element, error) {
	return dom.NewElement(tag), nil
}

func (h *Headless) CreateCanvas(width, height int) (*dom.Element, panel.Surface, error) {
	c, err := canvas.New(width, height, h.options...)
	if err != nil {
		return nil, nil, err
	}
	return dom.NewCanvas(c.Image()), c, nil
}
