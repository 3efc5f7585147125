// Package stats is a small performance overlay: two bar-graph panels showing
// frames per second and milliseconds per frame, in the style of stats.js.
//
// Create it once, attach its container to an element of the host tree and
// call Update once per rendered frame:
//
//	s, err := stats.Init(stats.NewHeadless(1))
//	if err != nil {
//		return err
//	}
//	s.Attach(body)
//
//	for running {
//		render()
//		s.Update()
//	}
//
// FPS is measured over one-second windows. MS is the time between the last
// two Update calls. Update keeps drawing while the overlay is detached.
//
// A Stats value is not safe for concurrent use; call it from the render
// loop only.
package stats

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/danfragoso/gostats/canvas"
	"github.com/danfragoso/gostats/config"
	"github.com/danfragoso/gostats/dom"
	"github.com/danfragoso/gostats/monitor"
	"github.com/danfragoso/gostats/panel"
	"github.com/rs/zerolog"
)

var ErrEnvironmentUnavailable = errors.New("drawing environment unavailable")

const containerCSS = "position: fixed; top: 0; left: 0; cursor: pointer; opacity: 0.9; z-index: 999"

type Stats struct {
	container *dom.Element
	fps       *panel.Panel
	ms        *panel.Panel
	monitor   *monitor.Monitor

	fpsCeiling float64
	msCeiling  float64

	log zerolog.Logger
}

type Option func(*options)

type options struct {
	overlay config.Overlay
	log     zerolog.Logger
}

// WithConfig overrides the default ceilings, colors and labels.
func WithConfig(o config.Overlay) Option {
	return func(opts *options) {
		opts.overlay = o
	}
}

func WithLogger(log zerolog.Logger) Option {
	return func(opts *options) {
		opts.log = log
	}
}

// Init builds the container with the FPS and MS panels. The container is not
// attached anywhere until Attach is called.
func Init(env Environment, opts ...Option) (*Stats, error) {
	o := options{
		overlay: config.DefaultOverlay(),
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	if env == nil {
		return nil, ErrEnvironmentUnavailable
	}
	if err := o.overlay.Validate(); err != nil {
		return nil, err
	}

	clock, err := env.Clock()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEnvironmentUnavailable, err)
	}
	mon, err := monitor.New(clock)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEnvironmentUnavailable, err)
	}

	container, err := env.CreateElement("div")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEnvironmentUnavailable, err)
	}
	if container == nil {
		return nil, ErrEnvironmentUnavailable
	}
	container.Style().SetCSSText(containerCSS)

	ratio := env.PixelRatio()
	ov := o.overlay

	fpsPanel, fpsCanvas, err := createPanel(env, ov.FPSLabel, ov.FPSForeground, ov.FPSBackground, ratio)
	if err != nil {
		return nil, err
	}
	msPanel, msCanvas, err := createPanel(env, ov.MSLabel, ov.MSForeground, ov.MSBackground, ratio)
	if err != nil {
		return nil, err
	}

	if err := container.AppendChild(fpsCanvas); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEnvironmentUnavailable, err)
	}
	if err := container.AppendChild(msCanvas); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEnvironmentUnavailable, err)
	}

	s := &Stats{
		container:  container,
		fps:        fpsPanel,
		ms:         msPanel,
		monitor:    mon,
		fpsCeiling: ov.FPSCeiling,
		msCeiling:  ov.MSCeiling,
		log:        o.log,
	}

	s.log.Debug().
		Str("container", container.ID()).
		Float64("ratio", ratio).
		Int("width", fpsPanel.Layout().Width).
		Int("height", fpsPanel.Layout().Height).
		Msg("stats overlay created")

	return s, nil
}

// createPanel builds one panel and the canvas element that displays it.
func createPanel(env Environment, label, fg, bg string, ratio float64) (*panel.Panel, *dom.Element, error) {
	var el *dom.Element

	p, err := panel.Create(func(w, h int) (panel.Surface, error) {
		e, s, err := env.CreateCanvas(w, h)
		if err != nil {
			return nil, err
		}
		if e == nil {
			return nil, ErrEnvironmentUnavailable
		}
		el = e
		return s, nil
	}, label, mustColor(fg), mustColor(bg), ratio)
	if err != nil {
		return nil, nil, fmt.Errorf("%s panel: %w", label, err)
	}

	// CSS size in logical pixels so the bitmap maps 1:1 to device pixels
	l := p.Layout()
	el.Style().SetCSSText(fmt.Sprintf("width: %gpx; height: %gpx",
		float64(l.Width)/ratio, float64(l.Height)/ratio))

	return p, el, nil
}

// mustColor parses colors already checked by config.Overlay.Validate.
func mustColor(hex string) color.Color {
	return canvas.MustParseColor(hex)
}

// Update samples the clock and pushes the new FPS and MS values onto the
// panels. Call it once per rendered frame.
func (s *Stats) Update() {
	before := s.monitor.WindowStart()
	s.monitor.Recalculate()

	if s.monitor.WindowStart() != before {
		s.log.Trace().
			Float64("fps", s.monitor.FPS()).
			Float64("ms", s.monitor.MS()).
			Msg("fps window closed")
	}

	s.fps.Update(s.monitor.FPS(), s.fpsCeiling)
	s.ms.Update(s.monitor.MS(), s.msCeiling)
}

// Attach appends the container as the last child of parent.
func (s *Stats) Attach(parent *dom.Element) error {
	if parent == nil {
		return dom.ErrNilElement
	}
	if err := parent.AppendChild(s.container); err != nil {
		return fmt.Errorf("attach stats: %w", err)
	}
	s.log.Debug().Str("parent", parent.String()).Msg("stats attached")
	return nil
}

// Detach removes the container from parent. It fails with dom.ErrNotChild
// when the container is not a child of parent.
func (s *Stats) Detach(parent *dom.Element) error {
	if parent == nil {
		return dom.ErrNilElement
	}
	if err := parent.RemoveChild(s.container); err != nil {
		return fmt.Errorf("detach stats: %w", err)
	}
	s.log.Debug().Str("parent", parent.String()).Msg("stats detached")
	return nil
}

// FPS is the last completed one-second frame rate.
func (s *Stats) FPS() float64 {
	return s.monitor.FPS()
}

// MS is the duration of the last frame in whole milliseconds.
func (s *Stats) MS() float64 {
	return s.monitor.MS()
}

func (s *Stats) Container() *dom.Element {
	return s.container
}

func (s *Stats) Monitor() *monitor.Monitor {
	return s.monitor
}

func (s *Stats) FPSPanel() *panel.Panel {
	return s.fps
}

func (s *Stats) MSPanel() *panel.Panel {
	return s.ms
}
