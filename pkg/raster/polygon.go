package raster

import "image"

// Rectangle draws the outline of the rectangle spanned by corners a and b,
// both inclusive.
func Rectangle(a, b image.Point, ch rune, sink Sink) {
	r := image.Rectangle{Min: a, Max: b}.Canon()
	for x := r.Min.X; x <= r.Max.X; x++ {
		sink(x, r.Min.Y, ch)
		if r.Max.Y != r.Min.Y {
			sink(x, r.Max.Y, ch)
		}
	}
	if r.Max.X == r.Min.X {
		for y := r.Min.Y + 1; y < r.Max.Y; y++ {
			sink(r.Min.X, y, ch)
		}
		return
	}
	for y := r.Min.Y + 1; y < r.Max.Y; y++ {
		sink(r.Min.X, y, ch)
		sink(r.Max.X, y, ch)
	}
}

// FilledRectangle fills the rectangle spanned by corners a and b, both
// inclusive.
func FilledRectangle(a, b image.Point, ch rune, sink Sink) {
	r := image.Rectangle{Min: a, Max: b}.Canon()
	for y := r.Min.Y; y <= r.Max.Y; y++ {
		for x := r.Min.X; x <= r.Max.X; x++ {
			sink(x, y, ch)
		}
	}
}

// Polygon draws a closed outline through pts.
func Polygon(pts []image.Point, ch rune, sink Sink) {
	switch len(pts) {
	case 0:
		return
	case 1:
		Line(pts[0], pts[0], ch, sink)
		return
	}
	sink = once(sink)
	for i, p := range pts {
		Line(p, pts[(i+1)%len(pts)], ch, sink)
	}
}

// FilledPolygon fills pts as a fan of triangles around the first vertex.
// Convex polygons fill exactly; each pixel is emitted once.
func FilledPolygon(pts []image.Point, ch rune, sink Sink) {
	if len(pts) < 3 {
		return
	}
	sink = once(sink)
	for i := 1; i+1 < len(pts); i++ {
		FillTriangle(pts[0], pts[i], pts[i+1], ch, sink)
	}
}
