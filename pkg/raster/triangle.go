package raster

import (
	"image"
	"math"
)

// FillTriangle fills a triangle with scanlines.
//
// Vertices are sorted by y. Rows from p0.Y up to but excluding p1.Y are
// bounded by the long edge p0→p2 and the short edge p0→p1; rows from p1.Y
// through p2.Y by the long edge and p1→p2. The middle row is drawn once.
// A triangle whose vertices share one row draws nothing.
func FillTriangle(p0, p1, p2 image.Point, ch rune, sink Sink) {
	if p1.Y < p0.Y {
		p0, p1 = p1, p0
	}
	if p2.Y < p1.Y {
		p1, p2 = p2, p1
	}
	if p1.Y < p0.Y {
		p0, p1 = p1, p0
	}
	if p0.Y == p2.Y {
		return
	}

	span := func(y int, xa, xb float64) {
		from, to := int(math.Round(xa)), int(math.Round(xb))
		if from > to {
			from, to = to, from
		}
		for x := from; x <= to; x++ {
			sink(x, y, ch)
		}
	}

	for y := p0.Y; y < p1.Y; y++ {
		span(y, lerpX(p0, p2, y), lerpX(p0, p1, y))
	}
	for y := p1.Y; y <= p2.Y; y++ {
		span(y, lerpX(p0, p2, y), lerpX(p1, p2, y))
	}
}

// lerpX returns the x of edge a→b at row y.
func lerpX(a, b image.Point, y int) float64 {
	if a.Y == b.Y {
		return float64(a.X)
	}
	t := float64(y-a.Y) / float64(b.Y-a.Y)
	return float64(a.X) + t*float64(b.X-a.X)
}

// FillTriangleAA fills the triangle into fill, then traces its edges with
// LineAA into edge. Callers pass an edge sink that only writes empty slots
// so the glyphs soften the outline without eating the interior.
func FillTriangleAA(p0, p1, p2 image.Point, ch rune, fill, edge Sink) {
	FillTriangle(p0, p1, p2, ch, fill)
	LineAA(p0, p1, edge)
	LineAA(p1, p2, edge)
	LineAA(p2, p0, edge)
}

// Triangle draws the outline of a triangle.
func Triangle(p0, p1, p2 image.Point, ch rune, sink Sink) {
	sink = once(sink)
	Line(p0, p1, ch, sink)
	Line(p1, p2, ch, sink)
	Line(p2, p0, ch, sink)
}
