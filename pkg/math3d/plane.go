package math3d

// Plane is a point on the plane plus its normal. Points on the side the
// normal faces are inside.
type Plane struct {
	Point  Vec3
	Normal Vec3
}

// NewPlane creates a plane through point with the given normal.
func NewPlane(point, normal Vec3) Plane {
	return Plane{Point: point, Normal: normal}
}

// Normalized returns the plane with a unit normal. A zero normal stays zero.
func (p Plane) Normalized() Plane {
	return Plane{Point: p.Point, Normal: p.Normal.Normalize()}
}

// SignedDistance returns n·q − n·p for point q. With a unit normal this is
// the true distance; positive values are inside.
func (p Plane) SignedDistance(q Vec3) float64 {
	return p.Normal.Dot(q) - p.Normal.Dot(p.Point)
}

// Contains reports whether q lies inside or on the plane.
func (p Plane) Contains(q Vec3) bool {
	return p.SignedDistance(q) >= 0
}

// IntersectSegment returns the point where the segment start→end crosses
// the plane. The segment must not be parallel to the plane.
func (p Plane) IntersectSegment(start, end Vec3) Vec3 {
	n := p.Normal
	d := -n.Dot(p.Point)
	ad := start.Dot(n)
	bd := end.Dot(n)
	t := (-d - ad) / (bd - ad)
	return start.Add(end.Sub(start).Scale(t))
}
