// Command demo renders an animated scene with the stats overlay attached and
// writes the frames as PNG files. It runs without a window, which makes it
// handy for eyeballing the panels on a headless box or in CI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/danfragoso/gostats/config"
	"github.com/danfragoso/gostats/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(2)
	}

	log, closeLog, err := logger.FromConfig(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(2)
	}

	// Log the panic with a full stack before dying
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 16384)
			n := runtime.Stack(buf, true)
			log.Error().Str("stack", string(buf[:n])).Msgf("demo crashed with panic: %v", r)
			closeLog()
			panic(r)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := 0
	if err := run(ctx, cfg, log); err != nil {
		log.Error().Err(err).Msg("demo failed")
		code = 1
	}
	stop()
	closeLog()
	os.Exit(code)
}

func logConfig(log zerolog.Logger, cfg *config.Config) {
	d := cfg.Demo
	log.Info().
		Int("frames", d.Frames).
		Dur("interval", d.FrameInterval).
		Int("width", d.Width).
		Int("height", d.Height).
		Float64("ratio", d.PixelRatio).
		Str("output", d.Output).
		Msg("demo starting")
}
