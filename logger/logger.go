// Package logger builds the zerolog logger shared by the demo host and the
// overlay.
package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/danfragoso/gostats/config"
	"github.com/rs/zerolog"
)

type Options struct {
	// Level is one of trace, debug, info, warn, error.
	Level string

	// File, when set, also receives every entry. It is opened for append.
	File string

	// Out defaults to os.Stdout.
	Out io.Writer

	// NoColor disables ANSI colors on Out.
	NoColor bool
}

// New returns a console logger. The returned closer releases the log file
// and must be called before exit; it is a no-op when no file is used.
func New(opts Options) (zerolog.Logger, func() error, error) {
	nop := func() error { return nil }

	level, err := zerolog.ParseLevel(opts.Level)
	if err != nil || opts.Level == "" {
		return zerolog.Nop(), nop, fmt.Errorf("%w: %q", config.ErrInvalidLogLevel, opts.Level)
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	console := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: "2006-01-02 15:04:05.999",
		NoColor:    opts.NoColor,
	}

	var w io.Writer = console
	closer := nop

	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return zerolog.Nop(), nop, fmt.Errorf("open log file: %w", err)
		}
		w = zerolog.MultiLevelWriter(console, f)
		closer = f.Close
	}

	// the global level filters before the per-logger one
	if level < zerolog.GlobalLevel() {
		zerolog.SetGlobalLevel(level)
	}

	log := zerolog.New(w).Level(level).With().Timestamp().Logger()
	return log, closer, nil
}

// FromConfig is New with the level and file of cfg.
func FromConfig(cfg *config.Config) (zerolog.Logger, func() error, error) {
	return New(Options{
		Level: cfg.LogLevel,
		File:  cfg.LogFile,
	})
}
