package raster

import (
	"image"
	"math"
)

// Sink receives the pixels a primitive produces. Primitives never look at
// the buffer; the sink decides where the pixel goes.
type Sink func(x, y int, ch rune)

// once wraps sink so each pixel is emitted at most once.
func once(sink Sink) Sink {
	seen := make(map[image.Point]struct{})
	return func(x, y int, ch rune) {
		p := image.Pt(x, y)
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		sink(x, y, ch)
	}
}

// evenRow floors y to an even row so it lands in an upper slot.
func evenRow(y int) int {
	return y &^ 1
}

// Line draws from a to b with Bresenham's algorithm. Both endpoints are
// snapped down to an even row first, so a line starts and ends on the
// upper half of a cell.
func Line(a, b image.Point, ch rune, sink Sink) {
	x0, y0 := a.X, evenRow(a.Y)
	x1, y1 := b.X, evenRow(b.Y)

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		sink(x0, y0, ch)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// LineAA draws an anti-aliased line from a to b in Xiaolin Wu's manner,
// using half-cell glyphs for coverage.
//
// Shallow lines (|dy| <= |dx|) step along x and split each column between
// the two pixels straddling the ideal y, each getting a half block when its
// coverage exceeds 0.5 and a thin edge glyph otherwise. Steep lines step
// along y and write only the nearest column, always with a half block:
// the glyphs split a cell vertically, so there is no glyph for partial
// horizontal coverage and the fractional x is rounded away.
func LineAA(a, b image.Point, sink Sink) {
	dx, dy := b.X-a.X, b.Y-a.Y

	if abs(dy) > abs(dx) {
		if a.Y > b.Y {
			a, b = b, a
		}
		grad := float64(b.X-a.X) / float64(b.Y-a.Y)
		for y := a.Y; y <= b.Y; y++ {
			x := float64(a.X) + grad*float64(y-a.Y)
			sink(int(math.Round(x)), y, aaGlyph(y, 1))
		}
		return
	}

	if a.X > b.X {
		a, b = b, a
	}
	if a.X == b.X {
		sink(a.X, a.Y, aaGlyph(a.Y, 1))
		return
	}
	grad := float64(b.Y-a.Y) / float64(b.X-a.X)
	for x := a.X; x <= b.X; x++ {
		yf := float64(a.Y) + grad*float64(x-a.X)
		fy := math.Floor(yf)
		frac := yf - fy
		y := int(fy)
		if cov := 1 - frac; cov > 0 {
			sink(x, y, aaGlyph(y, cov))
		}
		if frac > 0 {
			sink(x, y+1, aaGlyph(y+1, frac))
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
