// Package render projects triangle meshes onto a half-cell raster buffer.
//
// A frame runs each world-space triangle through back-face culling, the
// view transform, a near-plane clip, perspective projection, the mapping
// to pixel coordinates, a clip against the four screen edges, and a
// painter's-algorithm depth sort before it is filled.
package render

import (
	"github.com/taigrr/halfblock/pkg/math3d"
	"github.com/taigrr/halfblock/pkg/raster"
)

// Triangle3D is a triangle with the character and color it is filled with.
// It is copied by value through every pipeline stage.
type Triangle3D struct {
	V     [3]math3d.Vec3
	Char  rune
	Color raster.Color
}

// Tri creates a triangle.
func Tri(a, b, c math3d.Vec3, ch rune, color raster.Color) Triangle3D {
	return Triangle3D{V: [3]math3d.Vec3{a, b, c}, Char: ch, Color: color}
}

// Normal returns the unnormalized face normal (v1-v0) × (v2-v0).
func (t Triangle3D) Normal() math3d.Vec3 {
	return t.V[1].Sub(t.V[0]).Cross(t.V[2].Sub(t.V[0]))
}

// AverageZ returns the mean z of the three vertices.
func (t Triangle3D) AverageZ() float64 {
	return (t.V[0].Z + t.V[1].Z + t.V[2].Z) / 3
}

// Area returns the triangle's area.
func (t Triangle3D) Area() float64 {
	return t.Normal().Len() / 2
}

// Transform returns the triangle with every vertex transformed as a point.
func (t Triangle3D) Transform(m math3d.Mat4) Triangle3D {
	for i := range t.V {
		t.V[i] = m.MulPoint(t.V[i])
	}
	return t
}
