// Package models loads triangle meshes from glTF/GLB and Wavefront OBJ
// files.
package models

import (
	"image/color"

	"github.com/taigrr/halfblock/pkg/math3d"
)

// Mesh is an indexed triangle mesh with optional materials.
type Mesh struct {
	Name      string
	Vertices  []MeshVertex
	Faces     []Face
	Materials []Material

	// Bounding box, updated by CalculateBounds.
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// MeshVertex holds all vertex attributes.
type MeshVertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
	// UV has its origin at the top-left of the texture image.
	UV math3d.Vec2
}

// Face is a triangle of vertex indices plus a material reference.
type Face struct {
	V        [3]int
	Material int // index into Mesh.Materials, -1 for none
}

// Material is the subset of a PBR material the renderer uses.
type Material struct {
	Name      string
	BaseColor [4]float64 // RGBA in 0-1 range
	Metallic  float64
	Roughness float64
	BaseMap   *Texture // nil when untextured
}

// Color returns the base color as 8-bit RGBA.
func (m *Material) Color() color.RGBA {
	ch := func(f float64) uint8 {
		return uint8(max(0, min(1, f))*255 + 0.5)
	}
	return color.RGBA{ch(m.BaseColor[0]), ch(m.BaseColor[1]), ch(m.BaseColor[2]), ch(m.BaseColor[3])}
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// CalculateBounds recomputes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		m.BoundsMin, m.BoundsMax = math3d.Vec3{}, math3d.Vec3{}
		return
	}

	m.BoundsMin = m.Vertices[0].Position
	m.BoundsMax = m.Vertices[0].Position
	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v.Position)
		m.BoundsMax = m.BoundsMax.Max(v.Position)
	}
}

// Bounds returns the bounding box from the last CalculateBounds.
func (m *Mesh) Bounds() (lo, hi math3d.Vec3) {
	return m.BoundsMin, m.BoundsMax
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// TriangleCount returns the number of faces.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// Triangle returns the positions of face i.
func (m *Mesh) Triangle(i int) [3]math3d.Vec3 {
	f := m.Faces[i].V
	return [3]math3d.Vec3{
		m.Vertices[f[0]].Position,
		m.Vertices[f[1]].Position,
		m.Vertices[f[2]].Position,
	}
}

// TriangleColor returns the material color of face i. Textured materials
// are sampled at the face's centroid UV and tinted by the base color. It
// reports false for faces without a material.
func (m *Mesh) TriangleColor(i int) (color.RGBA, bool) {
	mat := m.MaterialAt(m.Faces[i].Material)
	if mat == nil {
		return color.RGBA{}, false
	}
	base := mat.Color()
	if mat.BaseMap == nil {
		return base, true
	}

	f := m.Faces[i].V
	uv := m.Vertices[f[0]].UV.Add(m.Vertices[f[1]].UV).Add(m.Vertices[f[2]].UV).Scale(1.0 / 3)
	return Modulate(mat.BaseMap.Sample(uv.X, uv.Y), base), true
}

// CalculateNormals assigns each face's normal to its vertices. Vertices
// shared between faces keep the normal of the last face.
func (m *Mesh) CalculateNormals() {
	for _, f := range m.Faces {
		n := m.faceNormal(f).Normalize()
		for _, vi := range f.V {
			m.Vertices[vi].Normal = n
		}
	}
}

// CalculateSmoothNormals averages area-weighted face normals per vertex.
func (m *Mesh) CalculateSmoothNormals() {
	for i := range m.Vertices {
		m.Vertices[i].Normal = math3d.Zero3()
	}
	for _, f := range m.Faces {
		n := m.faceNormal(f)
		for _, vi := range f.V {
			m.Vertices[vi].Normal = m.Vertices[vi].Normal.Add(n)
		}
	}
	for i := range m.Vertices {
		m.Vertices[i].Normal = m.Vertices[i].Normal.Normalize()
	}
}

func (m *Mesh) faceNormal(f Face) math3d.Vec3 {
	v0 := m.Vertices[f.V[0]].Position
	v1 := m.Vertices[f.V[1]].Position
	v2 := m.Vertices[f.V[2]].Position
	return v1.Sub(v0).Cross(v2.Sub(v0))
}

// hasNormals reports whether any vertex carries a non-zero normal.
func (m *Mesh) hasNormals() bool {
	for _, v := range m.Vertices {
		if v.Normal.Len() > 0.001 {
			return true
		}
	}
	return false
}

// Transform applies mat to every vertex. Normals only follow the rotation
// part, so non-uniform scales skew them.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.Vertices {
		m.Vertices[i].Position = mat.MulPoint(m.Vertices[i].Position)
		m.Vertices[i].Normal = mat.MulDir(m.Vertices[i].Normal).Normalize()
	}
	m.CalculateBounds()
}

// Normalize centers the mesh on the origin and scales it uniformly so its
// largest dimension equals size. Empty and flat-to-a-point meshes are only
// centered.
func (m *Mesh) Normalize(size float64) {
	m.CalculateBounds()
	t := math3d.Translate(m.Center().Negate())
	d := m.Size()
	if largest := max(d.X, d.Y, d.Z); largest > 0 {
		k := size / largest
		t = t.Mul(math3d.Scale(math3d.V3(k, k, k)))
	}
	m.Transform(t)
}

// Clone creates a deep copy of the mesh. Textures are shared.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:      m.Name,
		Vertices:  make([]MeshVertex, len(m.Vertices)),
		Faces:     make([]Face, len(m.Faces)),
		Materials: make([]Material, len(m.Materials)),
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
	copy(clone.Vertices, m.Vertices)
	copy(clone.Faces, m.Faces)
	copy(clone.Materials, m.Materials)
	return clone
}

// FaceMaterial returns the material index of face i, -1 for none.
func (m *Mesh) FaceMaterial(i int) int {
	return m.Faces[i].Material
}

// MaterialAt returns material i, or nil when i is out of range.
func (m *Mesh) MaterialAt(i int) *Material {
	if i < 0 || i >= len(m.Materials) {
		return nil
	}
	return &m.Materials[i]
}

// MaterialCount returns the number of materials.
func (m *Mesh) MaterialCount() int {
	return len(m.Materials)
}
