package math3d

import (
	"fmt"
	"math"
)

// Mat4 is a 4x4 matrix stored row-major and applied to row vectors:
//
//	p' = p · M
//
// For a rigid transform the first three rows are the basis vectors and the
// fourth row is the translation:
//
//	| Xx Xy Xz 0 |   X,Y,Z = basis vectors (rotation/scale)
//	| Yx Yy Yz 0 |   T = translation
//	| Zx Zy Zz 0 |
//	| Tx Ty Tz 1 |
type Mat4 [4][4]float64

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Translate creates a translation matrix.
func Translate(v Vec3) Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{v.X, v.Y, v.Z, 1},
	}
}

// Scale creates a scaling matrix.
func Scale(v Vec3) Mat4 {
	return Mat4{
		{v.X, 0, 0, 0},
		{0, v.Y, 0, 0},
		{0, 0, v.Z, 0},
		{0, 0, 0, 1},
	}
}

// RotateX creates a rotation matrix around the X axis.
func RotateX(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		{1, 0, 0, 0},
		{0, c, s, 0},
		{0, -s, c, 0},
		{0, 0, 0, 1},
	}
}

// RotateY creates a rotation matrix around the Y axis.
func RotateY(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		{c, 0, -s, 0},
		{0, 1, 0, 0},
		{s, 0, c, 0},
		{0, 0, 0, 1},
	}
}

// RotateZ creates a rotation matrix around the Z axis.
func RotateZ(angle float64) Mat4 {
	c, s := math.Cos(angle), math.Sin(angle)
	return Mat4{
		{c, s, 0, 0},
		{-s, c, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Rotate creates a rotation matrix around a coordinate axis.
func Rotate(angle float64, axis Axis) Mat4 {
	switch axis {
	case AxisX:
		return RotateX(angle)
	case AxisY:
		return RotateY(angle)
	case AxisZ:
		return RotateZ(angle)
	}
	return Identity()
}

// Mul multiplies two matrices: a · b. Applied to a point, a acts first.
//
//nolint:st1016 // a*b naming convention is clearer for matrix multiplication
func (a Mat4) Mul(b Mat4) Mat4 {
	var m Mat4
	for row := range 4 {
		for col := range 4 {
			var sum float64
			for k := range 4 {
				sum += a[row][k] * b[k][col]
			}
			m[row][col] = sum
		}
	}
	return m
}

// MulVec4 returns the homogeneous product v · m.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	return Vec4{
		v.X*m[0][0] + v.Y*m[1][0] + v.Z*m[2][0] + v.W*m[3][0],
		v.X*m[0][1] + v.Y*m[1][1] + v.Z*m[2][1] + v.W*m[3][1],
		v.X*m[0][2] + v.Y*m[1][2] + v.Z*m[2][2] + v.W*m[3][2],
		v.X*m[0][3] + v.Y*m[1][3] + v.Z*m[2][3] + v.W*m[3][3],
	}
}

// MulPoint transforms a Vec3 as a point (w=1). The result is divided by
// w only when w is non-zero.
func (m Mat4) MulPoint(v Vec3) Vec3 {
	return m.MulVec4(v.Point()).PerspectiveDivide()
}

// MulDir transforms a Vec3 as a direction (w=0, no translation).
func (m Mat4) MulDir(v Vec3) Vec3 {
	return Vec3{
		v.X*m[0][0] + v.Y*m[1][0] + v.Z*m[2][0],
		v.X*m[0][1] + v.Y*m[1][1] + v.Z*m[2][1],
		v.X*m[0][2] + v.Y*m[1][2] + v.Z*m[2][2],
	}
}

// Transpose returns the transposed matrix.
func (m Mat4) Transpose() Mat4 {
	var t Mat4
	for row := range 4 {
		for col := range 4 {
			t[col][row] = m[row][col]
		}
	}
	return t
}

// Row returns the first three components of a row.
func (m Mat4) Row(i int) Vec3 {
	return Vec3{m[i][0], m[i][1], m[i][2]}
}

// Translation extracts the translation component.
func (m Mat4) Translation() Vec3 {
	return m.Row(3)
}

// ApproxEqual reports whether every element of m and o differs by at most
// eps.
func (m Mat4) ApproxEqual(o Mat4, eps float64) bool {
	for row := range 4 {
		for col := range 4 {
			if math.Abs(m[row][col]-o[row][col]) > eps {
				return false
			}
		}
	}
	return true
}

// parallelEps is the squared sine below which LookAt treats up as
// parallel to the view direction.
const parallelEps = 1e-12

// LookAt builds the camera-to-world matrix for a camera at eye looking
// towards target.
//
// The up vector is made orthogonal to the forward direction before the
// right vector is formed as newUp × forward. The rows are
// [right, newUp, forward, eye]. Use InvertRigid to get the view matrix.
func LookAt(eye, target, up Vec3) (Mat4, error) {
	forward, err := target.Sub(eye).Unit()
	if err != nil {
		return Mat4{}, fmt.Errorf("look-at forward: %w", err)
	}

	// an up vector within rounding of forward leaves only noise after
	// Gram-Schmidt, so it is rejected like an exactly parallel one
	ortho := up.Sub(forward.Scale(up.Dot(forward)))
	if ortho.LenSq() <= parallelEps*up.LenSq() {
		return Mat4{}, fmt.Errorf("look-at up: %w", ErrZeroVector)
	}
	newUp := ortho.Normalize()

	right := newUp.Cross(forward)

	return Mat4{
		{right.X, right.Y, right.Z, 0},
		{newUp.X, newUp.Y, newUp.Z, 0},
		{forward.X, forward.Y, forward.Z, 0},
		{eye.X, eye.Y, eye.Z, 1},
	}, nil
}

// InvertRigid inverts a rotation+translation matrix by transposing the
// rotation block and rotating the negated translation. The input must not
// carry scale or shear.
func InvertRigid(m Mat4) Mat4 {
	var inv Mat4
	for row := range 3 {
		for col := range 3 {
			inv[row][col] = m[col][row]
		}
	}
	t := m.Translation()
	for col := range 3 {
		inv[3][col] = -(t.X*inv[0][col] + t.Y*inv[1][col] + t.Z*inv[2][col])
	}
	inv[3][3] = 1
	return inv
}

// Perspective creates a perspective projection matrix.
//
// fovDeg is the field of view in degrees and aspect is height/width. X and
// Y are negated so that screen Y grows downward. Depth between near and
// far maps to [0, 1] after the divide by w (= view-space z).
func Perspective(fovDeg, aspect, near, far float64) Mat4 {
	f := 1.0 / math.Tan(fovDeg*0.5/180.0*math.Pi)
	q := far / (far - near)

	var m Mat4
	m[0][0] = -aspect * f
	m[1][1] = -f
	m[2][2] = q
	m[3][2] = -far * near / (far - near)
	m[2][3] = 1
	return m
}

// Project transforms p by m and performs the perspective divide when w is
// non-zero.
func Project(m Mat4, p Vec3) Vec3 {
	return m.MulPoint(p)
}
