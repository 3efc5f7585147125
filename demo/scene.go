package main

import (
	"fmt"
	"image"
	"image/draw"
	"math"

	"github.com/fogleman/gg"
	"github.com/skip2/go-qrcode"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

const (
	projectURL = "https://github.com/danfragoso/gostats"

	sceneBG    = "#101018"
	sceneText  = "#e0e0e8"
	sceneDim   = "#70708a"
	sceneBall  = "#ff8040"
	sceneTrail = "#ff804040"
)

// scene is the page content the overlay floats above.
type scene struct {
	dc    *gg.Context
	fb    *image.RGBA
	ratio float64

	fontTitle font.Face
	fontSmall font.Face
}

func newScene(width, height int, ratio float64, fontPath string) (*scene, error) {
	fb := image.NewRGBA(image.Rect(0, 0, width, height))
	sc := &scene{
		dc:        gg.NewContextForRGBA(fb),
		fb:        fb,
		ratio:     ratio,
		fontTitle: basicfont.Face7x13,
		fontSmall: basicfont.Face7x13,
	}

	if fontPath != "" {
		var err error
		if sc.fontTitle, err = gg.LoadFontFace(fontPath, 20*ratio); err != nil {
			return nil, fmt.Errorf("failed to load font: %w", err)
		}
		if sc.fontSmall, err = gg.LoadFontFace(fontPath, 11*ratio); err != nil {
			return nil, fmt.Errorf("failed to load font: %w", err)
		}
	}
	return sc, nil
}

func (sc *scene) image() *image.RGBA {
	return sc.fb
}

func (sc *scene) size() (float64, float64) {
	return float64(sc.dc.Width()), float64(sc.dc.Height())
}

// drawSplash paints the title card shown before the first frame. A failed
// QR encode leaves the card without the code.
func (sc *scene) drawSplash(version string) error {
	dc := sc.dc
	w, h := sc.size()

	dc.SetHexColor(sceneBG)
	dc.Clear()

	dc.SetFontFace(sc.fontTitle)
	dc.SetHexColor(sceneText)
	dc.DrawStringAnchored("gostats", w/2, h*0.15, 0.5, 0.5)

	dc.SetFontFace(sc.fontSmall)
	dc.SetHexColor(sceneDim)
	dc.DrawStringAnchored("Version: "+version, w/2, h*0.15+24*sc.ratio, 0.5, 0.5)

	qr, err := qrcode.New(projectURL, qrcode.Medium)
	if err != nil {
		return fmt.Errorf("failed to encode QR code: %w", err)
	}

	qrSize := int(math.Min(w, h) * 0.45)
	qrImg := qr.Image(qrSize)
	qrX := (int(w) - qrSize) / 2
	qrY := int(h*0.15 + 40*sc.ratio)
	draw.Draw(sc.fb, image.Rect(qrX, qrY, qrX+qrSize, qrY+qrSize), qrImg, image.Point{}, draw.Src)

	dc.SetHexColor(sceneDim)
	dc.DrawStringAnchored(projectURL, w/2, float64(qrY+qrSize)+14*sc.ratio, 0.5, 0.5)
	return nil
}

// draw renders frame n: a ball bouncing around the page with a short trail
// and a frame counter.
func (sc *scene) draw(n int) {
	dc := sc.dc
	w, h := sc.size()

	dc.SetHexColor(sceneBG)
	dc.Clear()

	r := 12 * sc.ratio
	dc.SetHexColor(sceneTrail)
	for k := 6; k > 0; k-- {
		x, y := sc.ballAt(n-k*2, w, h, r)
		dc.DrawCircle(x, y, r*float64(7-k)/7)
		dc.Fill()
	}

	x, y := sc.ballAt(n, w, h, r)
	dc.SetHexColor(sceneBall)
	dc.DrawCircle(x, y, r)
	dc.Fill()

	dc.SetFontFace(sc.fontSmall)
	dc.SetHexColor(sceneDim)
	dc.DrawStringAnchored(fmt.Sprintf("frame %d", n), w-8*sc.ratio, h-8*sc.ratio, 1, 0)
}

// ballAt bounces between the page edges, triangle-wave style.
func (sc *scene) ballAt(n int, w, h, r float64) (float64, float64) {
	t := float64(max(n, 0))
	return r + bounce(t*3*sc.ratio, w-2*r), r + bounce(t*2*sc.ratio, h-2*r)
}

func bounce(pos, span float64) float64 {
	if span <= 0 {
		return 0
	}
	p := math.Mod(pos, 2*span)
	if p > span {
		return 2*span - p
	}
	return p
}
