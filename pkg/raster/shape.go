package raster

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/taigrr/halfblock/pkg/cache"
	"github.com/taigrr/halfblock/pkg/linalg"
	"github.com/taigrr/halfblock/pkg/math3d"
)

// ErrShape is returned when a shape has the wrong number of points.
var ErrShape = errors.New("raster: malformed shape")

// Kind tags the variant a Shape holds.
type Kind int

const (
	KindLine Kind = iota
	KindCircle
	KindRectangle
	KindTriangle
	KindPolygon
)

func (k Kind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindCircle:
		return "circle"
	case KindRectangle:
		return "rectangle"
	case KindTriangle:
		return "triangle"
	case KindPolygon:
		return "polygon"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Shape is a 2D shape in pixel coordinates.
//
// Points holds the two endpoints of a line, the center of a circle, two
// opposite corners of a rectangle, three triangle vertices, or the vertices
// of a polygon. A zero Char draws FullBlock.
type Shape struct {
	Kind      Kind
	Points    []image.Point
	Radius    int
	Char      rune
	Color     Color
	Filled    bool
	AntiAlias bool
}

// shapeDrawer draws one Kind. points is the exact point count, or the
// negated minimum when any count from there up is accepted.
type shapeDrawer struct {
	points int
	draw   func(s Shape, fill, edge Sink)
}

var shapeDrawers = map[Kind]shapeDrawer{
	KindLine: {2, func(s Shape, fill, _ Sink) {
		if s.AntiAlias {
			LineAA(s.Points[0], s.Points[1], fill)
			return
		}
		Line(s.Points[0], s.Points[1], s.char(), fill)
	}},
	KindCircle: {1, func(s Shape, fill, _ Sink) {
		if s.Filled {
			FilledCircle(s.Points[0], s.Radius, s.char(), s.AntiAlias, fill)
			return
		}
		Circle(s.Points[0], s.Radius, s.char(), fill)
	}},
	KindRectangle: {2, func(s Shape, fill, _ Sink) {
		if s.Filled {
			FilledRectangle(s.Points[0], s.Points[1], s.char(), fill)
			return
		}
		Rectangle(s.Points[0], s.Points[1], s.char(), fill)
	}},
	KindTriangle: {3, func(s Shape, fill, edge Sink) {
		p := s.Points
		switch {
		case s.Filled && s.AntiAlias:
			FillTriangleAA(p[0], p[1], p[2], s.char(), fill, edge)
		case s.Filled:
			FillTriangle(p[0], p[1], p[2], s.char(), fill)
		default:
			Triangle(p[0], p[1], p[2], s.char(), fill)
		}
	}},
	KindPolygon: {-1, func(s Shape, fill, _ Sink) {
		if s.Filled {
			FilledPolygon(s.Points, s.char(), fill)
			return
		}
		Polygon(s.Points, s.char(), fill)
	}},
}

func (s Shape) char() rune {
	if s.Char == 0 {
		return FullBlock
	}
	return s.Char
}

func (s Shape) drawer() (shapeDrawer, error) {
	d, ok := shapeDrawers[s.Kind]
	if !ok {
		return d, fmt.Errorf("%w: unknown kind %v", ErrShape, s.Kind)
	}
	n := len(s.Points)
	if (d.points >= 0 && n != d.points) || (d.points < 0 && n < -d.points) {
		return d, fmt.Errorf("%w: %v with %d points", ErrShape, s.Kind, n)
	}
	return d, nil
}

// Rotated returns the shape rotated by angle radians about center.
// Rectangles become four-point polygons; circles only move their center.
func (s Shape) Rotated(angle float64, center image.Point) (Shape, error) {
	pts := s.Points
	if s.Kind == KindRectangle && len(pts) == 2 {
		r := image.Rectangle{Min: pts[0], Max: pts[1]}.Canon()
		pts = []image.Point{r.Min, {r.Max.X, r.Min.Y}, r.Max, {r.Min.X, r.Max.Y}}
		s.Kind = KindPolygon
	}

	c := linalg.Vec(float64(center.X), float64(center.Y))
	out := make([]image.Point, len(pts))
	for i, p := range pts {
		v, err := linalg.Vec(float64(p.X), float64(p.Y)).RotateAboutCenter(c, angle, math3d.AxisZ)
		if err != nil {
			return Shape{}, fmt.Errorf("rotate %v: %w", s.Kind, err)
		}
		out[i] = image.Pt(int(math.Round(v[0])), int(math.Round(v[1])))
	}
	s.Points = out
	return s, nil
}

// Fragment is one pixel a shape produces. Soft fragments only land on
// empty slots.
type Fragment struct {
	X, Y int
	Ch   rune
	Soft bool
}

// PointCache memoizes the fragments of shapes under caller-chosen keys.
type PointCache[K comparable] = cache.Cache[K, []Fragment]

// NewPointCache creates a PointCache. A softLimit of 0 means unlimited.
func NewPointCache[K comparable](softLimit int) *PointCache[K] {
	return cache.New[K, []Fragment](softLimit)
}

// Fragments runs the shape's primitive and returns the pixels it produces.
func Fragments(s Shape) ([]Fragment, error) {
	d, err := s.drawer()
	if err != nil {
		return nil, err
	}
	var frags []Fragment
	d.draw(s,
		func(x, y int, ch rune) { frags = append(frags, Fragment{X: x, Y: y, Ch: ch}) },
		func(x, y int, ch rune) { frags = append(frags, Fragment{X: x, Y: y, Ch: ch, Soft: true}) },
	)
	return frags, nil
}
