package render

import (
	"github.com/taigrr/halfblock/pkg/math3d"
)

// HalfSpace is a plane in the form n·p + D = 0. Points with a positive
// distance are on the side the normal faces.
type HalfSpace struct {
	Normal math3d.Vec3
	D      float64
}

// Normalize scales the plane so the normal has unit length.
func (h *HalfSpace) Normalize() {
	l := h.Normal.Len()
	if l == 0 {
		return
	}
	h.Normal = h.Normal.Scale(1 / l)
	h.D /= l
}

// Distance returns the signed distance from the plane to p.
func (h HalfSpace) Distance(p math3d.Vec3) float64 {
	return h.Normal.Dot(p) + h.D
}

// Frustum is the six inward-facing planes of a view volume, ordered left,
// right, bottom, top, near, far.
type Frustum struct {
	Planes [6]HalfSpace
}

const (
	FrustumLeft = iota
	FrustumRight
	FrustumBottom
	FrustumTop
	FrustumNear
	FrustumFar
)

// NewFrustum extracts the frustum planes from a view-projection matrix
// (Gribb/Hartmann). Matrices here act on row vectors, so clip coordinate j
// is p·column(j) and the planes are built from columns. Depth runs from
// 0 at near to w at far.
func NewFrustum(m math3d.Mat4) Frustum {
	col := func(j int) HalfSpace {
		return HalfSpace{Normal: math3d.V3(m[0][j], m[1][j], m[2][j]), D: m[3][j]}
	}
	add := func(a, b HalfSpace) HalfSpace {
		return HalfSpace{Normal: a.Normal.Add(b.Normal), D: a.D + b.D}
	}
	sub := func(a, b HalfSpace) HalfSpace {
		return HalfSpace{Normal: a.Normal.Sub(b.Normal), D: a.D - b.D}
	}

	x, y, z, w := col(0), col(1), col(2), col(3)

	var f Frustum
	f.Planes[FrustumLeft] = add(w, x)
	f.Planes[FrustumRight] = sub(w, x)
	f.Planes[FrustumBottom] = add(w, y)
	f.Planes[FrustumTop] = sub(w, y)
	f.Planes[FrustumNear] = z
	f.Planes[FrustumFar] = sub(w, z)

	for i := range f.Planes {
		f.Planes[i].Normalize()
	}
	return f
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min math3d.Vec3
	Max math3d.Vec3
}

// Center returns the center of the box.
func (b AABB) Center() math3d.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the box dimensions.
func (b AABB) Size() math3d.Vec3 {
	return b.Max.Sub(b.Min)
}

// Transform returns the box bounding all eight corners of b after m.
func (b AABB) Transform(m math3d.Mat4) AABB {
	corners := [8]math3d.Vec3{
		{X: b.Min.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Min.Z},
		{X: b.Min.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Min.Y, Z: b.Max.Z},
		{X: b.Min.X, Y: b.Max.Y, Z: b.Max.Z},
		{X: b.Max.X, Y: b.Max.Y, Z: b.Max.Z},
	}

	p := m.MulPoint(corners[0])
	out := AABB{Min: p, Max: p}
	for _, c := range corners[1:] {
		p = m.MulPoint(c)
		out.Min = out.Min.Min(p)
		out.Max = out.Max.Max(p)
	}
	return out
}

// ContainsPoint reports whether p is inside the box.
func (b AABB) ContainsPoint(p math3d.Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// IntersectAABB reports whether any part of the box may be inside the
// frustum. It tests the corner furthest along each plane normal, so boxes
// near a frustum corner can pass without being visible.
func (f Frustum) IntersectAABB(box AABB) bool {
	for _, plane := range f.Planes {
		p := math3d.V3(
			pick(plane.Normal.X >= 0, box.Max.X, box.Min.X),
			pick(plane.Normal.Y >= 0, box.Max.Y, box.Min.Y),
			pick(plane.Normal.Z >= 0, box.Max.Z, box.Min.Z),
		)
		if plane.Distance(p) < 0 {
			return false
		}
	}
	return true
}

// ContainsPoint reports whether p is inside all six planes.
func (f Frustum) ContainsPoint(p math3d.Vec3) bool {
	for _, plane := range f.Planes {
		if plane.Distance(p) < 0 {
			return false
		}
	}
	return true
}

// IntersectsSphere reports whether a sphere may intersect the frustum.
func (f Frustum) IntersectsSphere(center math3d.Vec3, radius float64) bool {
	for _, plane := range f.Planes {
		if plane.Distance(center) < -radius {
			return false
		}
	}
	return true
}

func pick(cond bool, a, b float64) float64 {
	if cond {
		return a
	}
	return b
}
