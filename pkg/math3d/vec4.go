package math3d

// Vec4 is a homogeneous coordinate, the row vector fed to Mat4.MulVec4.
type Vec4 struct {
	X, Y, Z, W float64
}

// V4 returns Vec4{x, y, z, w}.
func V4(x, y, z, w float64) Vec4 {
	return Vec4{x, y, z, w}
}

// Point returns a as a homogeneous point (w = 1).
func (a Vec3) Point() Vec4 {
	return Vec4{a.X, a.Y, a.Z, 1}
}

// Vec3 drops W without dividing.
func (v Vec4) Vec3() Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}

// PerspectiveDivide divides X, Y and Z by W. A zero W leaves them as is,
// so points on the camera plane pass through unprojected.
func (v Vec4) PerspectiveDivide() Vec3 {
	if v.W == 0 {
		return v.Vec3()
	}
	return Vec3{v.X / v.W, v.Y / v.W, v.Z / v.W}
}
