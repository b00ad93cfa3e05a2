package raster

import (
	"fmt"
	"image"
)

// Rasterizer draws primitives and shapes into a Buffer.
type Rasterizer struct {
	buf   *Buffer
	cache *PointCache[string]
}

// NewRasterizer creates a rasterizer drawing into buf. Shape fragments
// drawn with DrawCached are kept for up to cacheSize keys; 0 means
// unlimited.
func NewRasterizer(buf *Buffer, cacheSize int) *Rasterizer {
	return &Rasterizer{
		buf:   buf,
		cache: NewPointCache[string](cacheSize),
	}
}

// Buffer returns the target buffer.
func (r *Rasterizer) Buffer() *Buffer {
	return r.buf
}

// Cache returns the fragment cache used by DrawCached.
func (r *Rasterizer) Cache() *PointCache[string] {
	return r.cache
}

func (r *Rasterizer) sink(c Color) Sink {
	return func(x, y int, ch rune) { r.buf.Set(x, y, ch, c) }
}

func (r *Rasterizer) softSink(c Color) Sink {
	return func(x, y int, ch rune) { r.buf.setSoft(x, y, ch, c) }
}

// DrawLine draws a Bresenham line. Endpoints snap to even rows.
func (r *Rasterizer) DrawLine(a, b image.Point, ch rune, c Color) {
	Line(a, b, ch, r.sink(c))
}

// DrawLineAA draws an anti-aliased line with half-cell glyphs.
func (r *Rasterizer) DrawLineAA(a, b image.Point, c Color) {
	LineAA(a, b, r.sink(c))
}

// DrawCircle draws a circle outline.
func (r *Rasterizer) DrawCircle(center image.Point, radius int, ch rune, c Color) {
	Circle(center, radius, ch, r.sink(c))
}

// FillCircle fills a circle.
func (r *Rasterizer) FillCircle(center image.Point, radius int, ch rune, c Color) {
	FilledCircle(center, radius, ch, false, r.sink(c))
}

// FillCircleAA fills a circle and softens its rim with half-cell glyphs.
func (r *Rasterizer) FillCircleAA(center image.Point, radius int, ch rune, c Color) {
	FilledCircle(center, radius, ch, true, r.sink(c))
}

// DrawTriangle draws a triangle outline.
func (r *Rasterizer) DrawTriangle(p0, p1, p2 image.Point, ch rune, c Color) {
	Triangle(p0, p1, p2, ch, r.sink(c))
}

// FillTriangle fills a triangle with scanlines.
func (r *Rasterizer) FillTriangle(p0, p1, p2 image.Point, ch rune, c Color) {
	FillTriangle(p0, p1, p2, ch, r.sink(c))
}

// FillTriangleAA fills a triangle, then draws anti-aliased edges into the
// slots that are still empty.
func (r *Rasterizer) FillTriangleAA(p0, p1, p2 image.Point, ch rune, c Color) {
	FillTriangleAA(p0, p1, p2, ch, r.sink(c), r.softSink(c))
}

// DrawRect draws a rectangle outline between two inclusive corners.
func (r *Rasterizer) DrawRect(a, b image.Point, ch rune, c Color) {
	Rectangle(a, b, ch, r.sink(c))
}

// FillRect fills a rectangle between two inclusive corners.
func (r *Rasterizer) FillRect(a, b image.Point, ch rune, c Color) {
	FilledRectangle(a, b, ch, r.sink(c))
}

// DrawPolygon draws a closed polygon outline.
func (r *Rasterizer) DrawPolygon(pts []image.Point, ch rune, c Color) {
	Polygon(pts, ch, r.sink(c))
}

// FillPolygon fills a convex polygon.
func (r *Rasterizer) FillPolygon(pts []image.Point, ch rune, c Color) {
	FilledPolygon(pts, ch, r.sink(c))
}

// DrawText writes s on the cell grid at (col, row).
func (r *Rasterizer) DrawText(col, row int, s string, c Color) int {
	return r.buf.Text(col, row, s, c)
}

// DrawBanner renders s in a 7×13 bitmap font at pixel origin.
func (r *Rasterizer) DrawBanner(origin image.Point, s string, c Color) {
	Banner(origin, s, FullBlock, r.sink(c))
}

// Draw dispatches a shape to its primitive.
func (r *Rasterizer) Draw(s Shape) error {
	d, err := s.drawer()
	if err != nil {
		return err
	}
	d.draw(s, r.sink(s.Color), r.softSink(s.Color))
	return nil
}

// DrawCached draws a shape from fragments cached under key, computing them
// on first use. Callers must use a new key when the shape's geometry
// changes; the color is taken from s on every draw.
func (r *Rasterizer) DrawCached(key string, s Shape) error {
	if _, err := s.drawer(); err != nil {
		return err
	}
	frags := r.cache.GetOrCreate(key, func() []Fragment {
		f, _ := Fragments(s)
		return f
	})
	r.replay(frags, s.Color)
	return nil
}

// Forget drops the cached fragments for key.
func (r *Rasterizer) Forget(key string) bool {
	return r.cache.Delete(key)
}

// Translate shifts the cached fragments for key by (dx, dy) in place of
// recomputing them.
func (r *Rasterizer) Translate(key string, dx, dy int) error {
	ok := r.cache.Update(key, func(frags []Fragment) []Fragment {
		moved := make([]Fragment, len(frags))
		for i, f := range frags {
			f.X += dx
			f.Y += dy
			moved[i] = f
		}
		return moved
	})
	if !ok {
		return fmt.Errorf("translate %q: no cached shape", key)
	}
	return nil
}

func (r *Rasterizer) replay(frags []Fragment, c Color) {
	for _, f := range frags {
		if f.Soft {
			r.buf.setSoft(f.X, f.Y, f.Ch, c)
			continue
		}
		r.buf.Set(f.X, f.Y, f.Ch, c)
	}
}
