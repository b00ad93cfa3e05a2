package raster

import (
	"image"
	"math"
)

// Circle draws a circle outline with the midpoint algorithm, plotting the
// eight symmetric octants of each step.
func Circle(center image.Point, radius int, ch rune, sink Sink) {
	if radius < 0 {
		return
	}
	sink = once(sink)
	plot := func(x, y int) {
		sink(center.X+x, center.Y+y, ch)
		sink(center.X-x, center.Y+y, ch)
		sink(center.X+x, center.Y-y, ch)
		sink(center.X-x, center.Y-y, ch)
		sink(center.X+y, center.Y+x, ch)
		sink(center.X-y, center.Y+x, ch)
		sink(center.X+y, center.Y-x, ch)
		sink(center.X-y, center.Y-x, ch)
	}

	x, y := radius, 0
	d := 1 - radius
	for x >= y {
		plot(x, y)
		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}
}

// FilledCircle fills every pixel within radius of center. With antiAlias
// set, pixels in the ring radius < d < radius+1 get a half-cell glyph for
// their slot, heavy when the coverage radius+1-d exceeds 0.5.
func FilledCircle(center image.Point, radius int, ch rune, antiAlias bool, sink Sink) {
	if radius < 0 {
		return
	}
	r := float64(radius)
	ext := radius
	if antiAlias {
		ext++
	}
	for dy := -ext; dy <= ext; dy++ {
		for dx := -ext; dx <= ext; dx++ {
			d := math.Hypot(float64(dx), float64(dy))
			x, y := center.X+dx, center.Y+dy
			switch {
			case d <= r:
				sink(x, y, ch)
			case antiAlias && d < r+1:
				sink(x, y, aaGlyph(y, r+1-d))
			}
		}
	}
}
