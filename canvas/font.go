package canvas

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
)

var ErrInvalidFont = errors.New("invalid font")

var (
	boldOnce sync.Once
	boldFont *truetype.Font
	boldErr  error
)

// defaultFont is Go Bold, parsed once per process. It stands in for the
// "bold Helvetica,Arial,sans-serif" a browser would pick.
func defaultFont() (*truetype.Font, error) {
	boldOnce.Do(func() {
		boldFont, boldErr = truetype.Parse(gobold.TTF)
	})
	return boldFont, boldErr
}

// LoadFont parses a TrueType file from disk.
func LoadFont(path string) (*truetype.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFont, err)
	}

	f, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFont, path, err)
	}
	return f, nil
}

// newFace sizes f so one em is px device pixels.
func newFace(f *truetype.Font, px float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{
		Size:    px,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}
