package dom

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
)

// Render composites the tree under root onto dst. Lengths in styles are CSS
// pixels and are multiplied by ratio to get device pixels.
//
// Layout is deliberately tiny: children flow left to right, "position:
// fixed" places an element at its "left"/"top" relative to dst, "position:
// absolute" relative to its parent, "display: none" hides a subtree and
// "opacity" multiplies down the tree. A canvas is drawn at its CSS
// "width"/"height" when set, otherwise at its natural size.
func Render(dst draw.Image, root *Element, ratio float64) image.Rectangle {
	if root == nil || ratio <= 0 {
		return image.Rectangle{}
	}
	origin := dst.Bounds().Min
	return render(dst, origin, root, origin, ratio, 1)
}

func render(dst draw.Image, viewport image.Point, e *Element, at image.Point, ratio, opacity float64) image.Rectangle {
	st := e.style
	if st.Get("display") == "none" {
		return image.Rectangle{Min: at, Max: at}
	}

	switch st.Get("position") {
	case "fixed":
		at = offset(viewport, st, ratio)
	case "absolute":
		if e.parent != nil {
			at = offset(at, st, ratio)
		}
	}

	opacity *= st.Opacity()
	box := image.Rectangle{Min: at, Max: at}

	if e.image != nil {
		size := e.image.Bounds().Size()
		if w, ok := st.Pixels("width"); ok {
			size.X = device(w, ratio)
		}
		if h, ok := st.Pixels("height"); ok {
			size.Y = device(h, ratio)
		}
		box.Max = at.Add(size)
		blit(dst, box, e.image, opacity)
	}

	cursor := image.Point{X: box.Max.X, Y: at.Y}
	for _, c := range e.children {
		r := render(dst, viewport, c, cursor, ratio, opacity)
		if c.style.Get("position") == "" || c.style.Get("position") == "static" {
			cursor.X = r.Max.X
			box = box.Union(r)
		}
	}

	return box
}

func offset(p image.Point, st *Style, ratio float64) image.Point {
	if x, ok := st.Pixels("left"); ok {
		p.X += device(x, ratio)
	}
	if y, ok := st.Pixels("top"); ok {
		p.Y += device(y, ratio)
	}
	return p
}

// blit draws img into r of dst, scaling when the sizes differ.
func blit(dst draw.Image, r image.Rectangle, img image.Image, opacity float64) {
	if r.Empty() || opacity <= 0 {
		return
	}

	src := img
	sp := img.Bounds().Min
	if r.Size() != img.Bounds().Size() {
		scaled := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
		draw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Src, nil)
		src, sp = scaled, image.Point{}
	}

	if opacity >= 1 {
		draw.Draw(dst, r, src, sp, draw.Over)
		return
	}
	mask := image.NewUniform(color.Alpha{A: uint8(math.Round(opacity * 255))})
	draw.DrawMask(dst, r, src, sp, mask, image.Point{}, draw.Over)
}

func device(css, ratio float64) int {
	return int(math.Round(css * ratio))
}
