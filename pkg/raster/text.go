package raster

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Text writes s one rune per cell starting at (col, row) and returns the
// column after the last rune. Wide runes take two columns.
func (b *Buffer) Text(col, row int, s string, c Color) int {
	for _, r := range s {
		b.SetCell(col, row, r, c)
		if runeWidth(r) == 2 {
			b.setTail(col+1, row)
			col += 2
			continue
		}
		col++
	}
	return col
}

// bannerFace is the bitmap face used for banners; its glyphs are 7×13.
var bannerFace = basicfont.Face7x13

// Banner renders s in the 7×13 bitmap font with its top-left pixel at
// origin, emitting one pixel per lit font pixel.
func Banner(origin image.Point, s string, ch rune, sink Sink) {
	if s == "" {
		return
	}
	m := bannerFace.Metrics()
	w := font.MeasureString(bannerFace, s).Ceil()
	h := m.Height.Ceil()
	if w <= 0 || h <= 0 {
		return
	}

	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	d := &font.Drawer{
		Dst:  mask,
		Src:  image.Opaque,
		Face: bannerFace,
		Dot:  fixed.P(0, m.Ascent.Ceil()),
	}
	d.DrawString(s)

	for y := range h {
		for x := range w {
			if mask.AlphaAt(x, y).A >= 0x80 {
				sink(origin.X+x, origin.Y+y, ch)
			}
		}
	}
}
