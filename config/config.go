// Package config loads overlay and demo settings from, in increasing
// priority: built-in defaults, a TOML file, GOSTATS_* environment variables
// and command line flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/danfragoso/gostats/canvas"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	EnvPrefix       = "GOSTATS"
	ConfigName      = "gostats"
	DefaultLogLevel = "info"
)

var (
	ErrInvalidConfig   = errors.New("invalid_configuration")
	ErrReadConfig      = errors.New("read_config_failed")
	ErrInvalidLogLevel = errors.New("invalid_log_level")
)

// Overlay holds the policy constants of the stats overlay.
type Overlay struct {
	FPSCeiling    float64 `mapstructure:"fps_ceiling"`
	MSCeiling     float64 `mapstructure:"ms_ceiling"`
	FPSForeground string  `mapstructure:"fps_foreground"`
	FPSBackground string  `mapstructure:"fps_background"`
	FPSLabel      string  `mapstructure:"fps_label"`
	MSForeground  string  `mapstructure:"ms_foreground"`
	MSBackground  string  `mapstructure:"ms_background"`
	MSLabel       string  `mapstructure:"ms_label"`
}

// Demo configures the headless demo host.
type Demo struct {
	PixelRatio    float64       `mapstructure:"pixel_ratio"`
	Frames        int           `mapstructure:"frames"`
	FrameInterval time.Duration `mapstructure:"frame_interval"`
	Width         int           `mapstructure:"width"`
	Height        int           `mapstructure:"height"`
	Output        string        `mapstructure:"output"`
	SnapshotEvery int           `mapstructure:"snapshot_every"`
	FontPath      string        `mapstructure:"font_path"`
}

type Config struct {
	LogLevel string `mapstructure:"log_level"`
	LogFile  string `mapstructure:"log_file"`

	Overlay Overlay `mapstructure:",squash"`
	Demo    Demo    `mapstructure:",squash"`
}

// DefaultOverlay is the classic cyan-on-navy FPS and green-on-green MS pair.
func DefaultOverlay() Overlay {
	return Overlay{
		FPSCeiling:    100,
		MSCeiling:     200,
		FPSForeground: "#0ff",
		FPSBackground: "#002",
		FPSLabel:      "FPS",
		MSForeground:  "#0f0",
		MSBackground:  "#020",
		MSLabel:       "MS",
	}
}

func Default() Config {
	return Config{
		LogLevel: DefaultLogLevel,
		Overlay:  DefaultOverlay(),
		Demo: Demo{
			PixelRatio:    1,
			Frames:        120,
			FrameInterval: time.Second / 60,
			Width:         320,
			Height:        240,
			Output:        "gostats.png",
		},
	}
}

// Validate checks ceilings and colors.
func (o Overlay) Validate() error {
	if o.FPSCeiling <= 0 {
		return fmt.Errorf("%w: fps_ceiling must be positive, got %v", ErrInvalidConfig, o.FPSCeiling)
	}
	if o.MSCeiling <= 0 {
		return fmt.Errorf("%w: ms_ceiling must be positive, got %v", ErrInvalidConfig, o.MSCeiling)
	}

	for key, hex := range map[string]string{
		"fps_foreground": o.FPSForeground,
		"fps_background": o.FPSBackground,
		"ms_foreground":  o.MSForeground,
		"ms_background":  o.MSBackground,
	} {
		if _, err := canvas.ParseColor(hex); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, key, err)
		}
	}
	return nil
}

func (c *Config) Validate() error {
	if !validLogLevel(c.LogLevel) {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
	if err := c.Overlay.Validate(); err != nil {
		return err
	}

	d := c.Demo
	if d.PixelRatio <= 0 {
		return fmt.Errorf("%w: pixel_ratio must be positive, got %v", ErrInvalidConfig, d.PixelRatio)
	}
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("%w: frame size %dx%d", ErrInvalidConfig, d.Width, d.Height)
	}
	if d.Frames < 0 || d.SnapshotEvery < 0 || d.FrameInterval < 0 {
		return fmt.Errorf("%w: frames, snapshot_every and frame_interval must not be negative", ErrInvalidConfig)
	}
	return nil
}

func validLogLevel(level string) bool {
	switch level {
	case "trace", "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

// flag name -> config key
var flagKeys = map[string]string{
	"log-level":      "log_level",
	"log-file":       "log_file",
	"fps-ceiling":    "fps_ceiling",
	"ms-ceiling":     "ms_ceiling",
	"fps-foreground": "fps_foreground",
	"fps-background": "fps_background",
	"fps-label":      "fps_label",
	"ms-foreground":  "ms_foreground",
	"ms-background":  "ms_background",
	"ms-label":       "ms_label",
	"pixel-ratio":    "pixel_ratio",
	"frames":         "frames",
	"frame-interval": "frame_interval",
	"width":          "width",
	"height":         "height",
	"output":         "output",
	"snapshot-every": "snapshot_every",
	"font-path":      "font_path",
}

// Flags returns the command line flag set Load parses, for usage output.
func Flags() *pflag.FlagSet {
	d := Default()

	fs := pflag.NewFlagSet(ConfigName, pflag.ContinueOnError)
	fs.String("config", "", "Path to a TOML config file")
	fs.String("log-level", d.LogLevel, "Log level: trace, debug, info, warn, error")
	fs.String("log-file", d.LogFile, "Also append logs to this file")
	fs.Float64("fps-ceiling", d.Overlay.FPSCeiling, "Full-scale value of the FPS graph")
	fs.Float64("ms-ceiling", d.Overlay.MSCeiling, "Full-scale value of the MS graph")
	fs.String("fps-foreground", d.Overlay.FPSForeground, "FPS panel foreground color")
	fs.String("fps-background", d.Overlay.FPSBackground, "FPS panel background color")
	fs.String("fps-label", d.Overlay.FPSLabel, "FPS panel label")
	fs.String("ms-foreground", d.Overlay.MSForeground, "MS panel foreground color")
	fs.String("ms-background", d.Overlay.MSBackground, "MS panel background color")
	fs.String("ms-label", d.Overlay.MSLabel, "MS panel label")
	fs.Float64("pixel-ratio", d.Demo.PixelRatio, "Device pixels per CSS pixel")
	fs.Int("frames", d.Demo.Frames, "Number of frames the demo renders")
	fs.Duration("frame-interval", d.Demo.FrameInterval, "Time between demo frames")
	fs.Int("width", d.Demo.Width, "Demo framebuffer width")
	fs.Int("height", d.Demo.Height, "Demo framebuffer height")
	fs.String("output", d.Demo.Output, "PNG file for the final frame")
	fs.Int("snapshot-every", d.Demo.SnapshotEvery, "Also write every Nth frame (0 disables)")
	fs.String("font-path", d.Demo.FontPath, "TrueType font for the demo scene")
	return fs
}

// Load resolves the configuration for the given command line arguments
// (without the program name).
func Load(args []string) (*Config, error) {
	fs := Flags()
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for name, key := range flagKeys {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			return nil, fmt.Errorf("%w: bind %s: %v", ErrInvalidConfig, name, err)
		}
	}

	if err := readConfigFile(v, fs); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readConfigFile(v *viper.Viper, fs *pflag.FlagSet) error {
	path, _ := fs.GetString("config")
	if path == "" {
		path = v.GetString("config")
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("%w: %v", ErrReadConfig, err)
		}
		return nil
	}

	v.SetConfigName(ConfigName)
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("%w: %v", ErrReadConfig, err)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("config", "")
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_file", d.LogFile)
	v.SetDefault("fps_ceiling", d.Overlay.FPSCeiling)
	v.SetDefault("ms_ceiling", d.Overlay.MSCeiling)
	v.SetDefault("fps_foreground", d.Overlay.FPSForeground)
	v.SetDefault("fps_background", d.Overlay.FPSBackground)
	v.SetDefault("fps_label", d.Overlay.FPSLabel)
	v.SetDefault("ms_foreground", d.Overlay.MSForeground)
	v.SetDefault("ms_background", d.Overlay.MSBackground)
	v.SetDefault("ms_label", d.Overlay.MSLabel)
	v.SetDefault("pixel_ratio", d.Demo.PixelRatio)
	v.SetDefault("frames", d.Demo.Frames)
	v.SetDefault("frame_interval", d.Demo.FrameInterval)
	v.SetDefault("width", d.Demo.Width)
	v.SetDefault("height", d.Demo.Height)
	v.SetDefault("output", d.Demo.Output)
	v.SetDefault("snapshot_every", d.Demo.SnapshotEvery)
	v.SetDefault("font_path", d.Demo.FontPath)
}
