package main

import (
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/danfragoso/gostats/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Demo.Frames = 8
	cfg.Demo.FrameInterval = 0
	cfg.Demo.Width = 200
	cfg.Demo.Height = 120
	cfg.Demo.Output = filepath.Join(t.TempDir(), "out", "frame.png")
	return &cfg
}

func decodePNG(t *testing.T, path string) (int, int) {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	return img.Bounds().Dx(), img.Bounds().Dy()
}

func TestRunWritesFrames(t *testing.T) {
	cfg := testConfig(t)
	cfg.Demo.SnapshotEvery = 4

	require.NoError(t, run(context.Background(), cfg, zerolog.Nop()))

	w, h := decodePNG(t, cfg.Demo.Output)
	assert.Equal(t, 200, w)
	assert.Equal(t, 120, h)

	dir := filepath.Dir(cfg.Demo.Output)
	for _, name := range []string{"frame-splash.png", "frame-0000.png", "frame-0004.png"} {
		assert.FileExists(t, filepath.Join(dir, name))
	}
	assert.NoFileExists(t, filepath.Join(dir, "frame-0001.png"))
}

func TestRunPixelRatio(t *testing.T) {
	cfg := testConfig(t)
	cfg.Demo.PixelRatio = 2

	require.NoError(t, run(context.Background(), cfg, zerolog.Nop()))

	w, h := decodePNG(t, cfg.Demo.Output)
	assert.Equal(t, 400, w)
	assert.Equal(t, 240, h)
}

func TestRunCancelled(t *testing.T) {
	cfg := testConfig(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, run(ctx, cfg, zerolog.Nop()), context.Canceled)
	assert.NoFileExists(t, cfg.Demo.Output)
}

func TestRunBadFont(t *testing.T) {
	cfg := testConfig(t)
	cfg.Demo.FontPath = filepath.Join(t.TempDir(), "missing.ttf")

	assert.Error(t, run(context.Background(), cfg, zerolog.Nop()))
}

func TestSuffixed(t *testing.T) {
	assert.Equal(t, "out/demo-splash.png", suffixed("out/demo.png", "splash"))
	assert.Equal(t, "demo-0003", suffixed("demo", "0003"))
}

func TestBounce(t *testing.T) {
	assert.Equal(t, 0.0, bounce(0, 10))
	assert.Equal(t, 4.0, bounce(4, 10))
	assert.Equal(t, 10.0, bounce(10, 10))
	assert.Equal(t, 7.0, bounce(13, 10))
	assert.Equal(t, 0.0, bounce(20, 10))
	assert.Equal(t, 0.0, bounce(5, 0))
}
