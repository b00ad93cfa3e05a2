package render

import (
	"github.com/taigrr/halfblock/pkg/math3d"
	"github.com/taigrr/halfblock/pkg/raster"
)

// MeshSource is anything that can hand out triangles, such as a loaded
// model.
type MeshSource interface {
	TriangleCount() int
	Triangle(i int) [3]math3d.Vec3
}

// ColorSource is implemented by sources that carry per-triangle colors.
type ColorSource interface {
	TriangleColor(i int) (raster.Color, bool)
}

// Mesh is an ordered list of triangles. It is read-only while rendering.
type Mesh struct {
	Name      string
	Triangles []Triangle3D
}

// MeshFrom copies src into a Mesh. Triangles take their color from src
// when it implements ColorSource, otherwise color.
func MeshFrom(name string, src MeshSource, ch rune, color raster.Color) *Mesh {
	n := src.TriangleCount()
	m := &Mesh{Name: name, Triangles: make([]Triangle3D, 0, n)}
	colors, _ := src.(ColorSource)
	for i := range n {
		v := src.Triangle(i)
		c := color
		if colors != nil {
			if tc, ok := colors.TriangleColor(i); ok {
				c = tc
			}
		}
		m.Triangles = append(m.Triangles, Triangle3D{V: v, Char: ch, Color: c})
	}
	return m
}

// Bounds returns the axis-aligned box around every vertex. An empty mesh
// has a zero box.
func (m *Mesh) Bounds() AABB {
	if len(m.Triangles) == 0 {
		return AABB{}
	}
	box := AABB{Min: m.Triangles[0].V[0], Max: m.Triangles[0].V[0]}
	for _, t := range m.Triangles {
		for _, v := range t.V {
			box.Min = box.Min.Min(v)
			box.Max = box.Max.Max(v)
		}
	}
	return box
}

// Cube returns an axis-aligned cube of the given edge length centered on
// the origin. Every face winds so its normal points outward.
func Cube(size float64, ch rune, color raster.Color) *Mesh {
	h := size / 2
	v := [8]math3d.Vec3{
		{X: -h, Y: -h, Z: -h}, // 0
		{X: -h, Y: h, Z: -h},  // 1
		{X: h, Y: h, Z: -h},   // 2
		{X: h, Y: -h, Z: -h},  // 3
		{X: -h, Y: -h, Z: h},  // 4
		{X: -h, Y: h, Z: h},   // 5
		{X: h, Y: h, Z: h},    // 6
		{X: h, Y: -h, Z: h},   // 7
	}
	faces := [12][3]int{
		// south (-z)
		{0, 1, 2}, {0, 2, 3},
		// east (+x)
		{3, 2, 6}, {3, 6, 7},
		// north (+z)
		{7, 6, 5}, {7, 5, 4},
		// west (-x)
		{4, 5, 1}, {4, 1, 0},
		// top (+y)
		{1, 5, 6}, {1, 6, 2},
		// bottom (-y)
		{7, 4, 0}, {7, 0, 3},
	}

	m := &Mesh{Name: "cube", Triangles: make([]Triangle3D, len(faces))}
	for i, f := range faces {
		m.Triangles[i] = Tri(v[f[0]], v[f[1]], v[f[2]], ch, color)
	}
	return m
}
