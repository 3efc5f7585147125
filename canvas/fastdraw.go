package canvas

import (
	"image"
	"image/color"
)

// fastFillRect fills x0,y0 → x1,y1 directly in the framebuffer, blending
// source-over when the color is translucent. Much cheaper than a gg path
// fill for axis-aligned rectangles.
func fastFillRect(fb *image.RGBA, x0, y0, x1, y1 int, c color.NRGBA) {
	r := image.Rect(x0, y0, x1, y1).Intersect(fb.Rect)
	if r.Empty() || c.A == 0 {
		return
	}

	pix := fb.Pix

	if c.A == 255 {
		for row := r.Min.Y; row < r.Max.Y; row++ {
			off := fb.PixOffset(r.Min.X, row)
			for col := r.Min.X; col < r.Max.X; col++ {
				pix[off] = c.R
				pix[off+1] = c.G
				pix[off+2] = c.B
				pix[off+3] = 255
				off += 4
			}
		}
		return
	}

	// premultiply once, then dst = src + dst*(1-a)
	sa := uint32(c.A)
	da := 255 - sa
	sr := uint32(c.R) * sa / 255
	sg := uint32(c.G) * sa / 255
	sb := uint32(c.B) * sa / 255

	for row := r.Min.Y; row < r.Max.Y; row++ {
		off := fb.PixOffset(r.Min.X, row)
		for col := r.Min.X; col < r.Max.X; col++ {
			pix[off] = uint8(sr + uint32(pix[off])*da/255)
			pix[off+1] = uint8(sg + uint32(pix[off+1])*da/255)
			pix[off+2] = uint8(sb + uint32(pix[off+2])*da/255)
			pix[off+3] = uint8(sa + uint32(pix[off+3])*da/255)
			off += 4
		}
	}
}

// fastCopyRegion copies the src rectangle of fb onto itself with its top-left
// corner at dst. Overlapping regions are handled: rows are walked away from
// the direction of travel and copy() is a memmove within a row.
func fastCopyRegion(fb *image.RGBA, src image.Rectangle, dst image.Point) {
	src = src.Intersect(fb.Rect)
	if src.Empty() {
		return
	}

	// clip against the destination, shrinking the source to match
	d := image.Rectangle{Min: dst, Max: dst.Add(src.Size())}
	clipped := d.Intersect(fb.Rect)
	if clipped.Empty() {
		return
	}
	src.Min = src.Min.Add(clipped.Min.Sub(d.Min))
	src.Max = src.Min.Add(clipped.Size())
	d = clipped

	n := src.Dx() * 4
	h := src.Dy()

	copyRow := func(i int) {
		so := fb.PixOffset(src.Min.X, src.Min.Y+i)
		do := fb.PixOffset(d.Min.X, d.Min.Y+i)
		copy(fb.Pix[do:do+n], fb.Pix[so:so+n])
	}

	if d.Min.Y <= src.Min.Y {
		for i := 0; i < h; i++ {
			copyRow(i)
		}
	} else {
		for i := h - 1; i >= 0; i-- {
			copyRow(i)
		}
	}
}
