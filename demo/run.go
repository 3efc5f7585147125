package main

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"path/filepath"
	"strings"
	"time"

	stats "github.com/danfragoso/gostats"
	"github.com/danfragoso/gostats/canvas"
	"github.com/danfragoso/gostats/config"
	"github.com/danfragoso/gostats/dom"
	"github.com/rs/zerolog"
)

// run drives the overlay like a browser's requestAnimationFrame loop would:
// draw the scene, call Update, composite, present.
func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	logConfig(log, cfg)

	d := cfg.Demo
	ratio := d.PixelRatio
	width := int(math.Round(float64(d.Width) * ratio))
	height := int(math.Round(float64(d.Height) * ratio))

	var canvasOpts []canvas.Option
	if d.FontPath != "" {
		canvasOpts = append(canvasOpts, canvas.WithFontFile(d.FontPath))
	}

	s, err := stats.Init(stats.NewHeadless(ratio, canvasOpts...),
		stats.WithConfig(cfg.Overlay),
		stats.WithLogger(log))
	if err != nil {
		return fmt.Errorf("init stats: %w", err)
	}

	sc, err := newScene(width, height, ratio, d.FontPath)
	if err != nil {
		return err
	}

	// the page: a canvas element showing the scene, with the overlay on top
	body := dom.NewCanvas(sc.image())
	body.Style().SetCSSText(fmt.Sprintf("width: %dpx; height: %dpx", d.Width, d.Height))

	fb, err := canvas.New(width, height)
	if err != nil {
		return fmt.Errorf("create framebuffer: %w", err)
	}

	if err := sc.drawSplash(stats.Version); err != nil {
		log.Warn().Err(err).Msg("splash card incomplete")
	}
	if err := present(fb, body, ratio, suffixed(d.Output, "splash")); err != nil {
		return err
	}

	if err := s.Attach(body); err != nil {
		return err
	}

	var tick <-chan time.Time
	if d.FrameInterval > 0 {
		ticker := time.NewTicker(d.FrameInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	// hide the overlay for the third quarter of the run
	detachAt, reattachAt := d.Frames/2, d.Frames*3/4

	for i := 0; i < d.Frames; i++ {
		if tick != nil {
			select {
			case <-ctx.Done():
				log.Warn().Int("frame", i).Msg("interrupted")
				return ctx.Err()
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		sc.draw(i)
		s.Update()

		switch i {
		case detachAt:
			if err := s.Detach(body); err != nil {
				return err
			}
		case reattachAt:
			if err := s.Attach(body); err != nil {
				return err
			}
		}

		if d.SnapshotEvery > 0 && i%d.SnapshotEvery == 0 {
			if err := present(fb, body, ratio, suffixed(d.Output, fmt.Sprintf("%04d", i))); err != nil {
				return err
			}
		}

		log.Trace().Int("frame", i).Float64("fps", s.FPS()).Float64("ms", s.MS()).Send()
	}

	if err := present(fb, body, ratio, d.Output); err != nil {
		return err
	}

	log.Info().
		Float64("fps", s.FPS()).
		Float64("ms", s.MS()).
		Str("output", d.Output).
		Msg("demo finished")
	return nil
}

// present composites the page into fb and writes it to path.
func present(fb *canvas.Canvas, page *dom.Element, ratio float64, path string) error {
	fb.Clear(color.Black)
	dom.Render(fb.Image(), page, ratio)
	return savePNG(fb.Image(), path)
}

// suffixed turns "out/demo.png" into "out/demo-<tag>.png".
func suffixed(path, tag string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "-" + tag + ext
}
