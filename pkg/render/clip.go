package render

import "github.com/taigrr/halfblock/pkg/math3d"

// IntersectPlane returns where the segment start→end crosses the plane.
// The plane normal does not need to be unit length.
func IntersectPlane(plane math3d.Plane, start, end math3d.Vec3) math3d.Vec3 {
	return plane.Normalized().IntersectSegment(start, end)
}

// ClipTriangleAgainstPlane keeps the part of tri on the side the plane
// normal faces (signed distance >= 0). It returns no triangles when tri is
// entirely outside, tri itself when entirely inside, and one or two new
// triangles carrying tri's char and color otherwise.
//
// With two vertices inside the quad is split as
// (in0, in1, i0) and (in1, i0, i1) where i0 and i1 are the intersections
// of in0→out and in1→out. A single inside vertex gives (in, i0, i1) with
// the outside vertices taken in input order. Vertices come out in this
// case-table order, which can reverse the input winding, so back-face
// culling has to happen before clipping.
func ClipTriangleAgainstPlane(plane math3d.Plane, tri Triangle3D) []Triangle3D {
	plane = plane.Normalized()

	var inside, outside [3]math3d.Vec3
	var nIn, nOut int
	for _, v := range tri.V {
		if plane.Contains(v) {
			inside[nIn] = v
			nIn++
		} else {
			outside[nOut] = v
			nOut++
		}
	}

	switch nIn {
	case 0:
		return nil
	case 3:
		return []Triangle3D{tri}
	case 1:
		out := tri
		out.V = [3]math3d.Vec3{
			inside[0],
			plane.IntersectSegment(inside[0], outside[0]),
			plane.IntersectSegment(inside[0], outside[1]),
		}
		return []Triangle3D{out}
	default:
		i0 := plane.IntersectSegment(inside[0], outside[0])
		i1 := plane.IntersectSegment(inside[1], outside[0])
		a, b := tri, tri
		a.V = [3]math3d.Vec3{inside[0], inside[1], i0}
		b.V = [3]math3d.Vec3{inside[1], i0, i1}
		return []Triangle3D{a, b}
	}
}

// ClipAgainstPlanes clips every triangle against each plane in turn. Each
// plane processes the whole output of the previous one, so pieces created
// by one plane are still seen by the planes after it.
func ClipAgainstPlanes(planes []math3d.Plane, tris []Triangle3D) []Triangle3D {
	current := tris
	for _, plane := range planes {
		next := make([]Triangle3D, 0, len(current))
		for _, t := range current {
			next = append(next, ClipTriangleAgainstPlane(plane, t)...)
		}
		current = next
		if len(current) == 0 {
			break
		}
	}
	return current
}
