// Package linalg provides small generic vectors and matrices.
//
// Arithmetic returns new values. The only methods that modify the receiver
// are Normalize and Power. Trigonometry and magnitudes are computed in
// float64 and converted back to the element type on store, so integer
// vectors truncate.
package linalg

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/constraints"

	"github.com/taigrr/halfblock/pkg/math3d"
)

var (
	// ErrDimension is returned when operand sizes do not fit the operation.
	ErrDimension = errors.New("linalg: dimension mismatch")
	// ErrZeroMagnitude is returned when an operation divides by a vector's
	// magnitude and that magnitude is zero.
	ErrZeroMagnitude = errors.New("linalg: zero magnitude")
	// ErrAxis is returned for a rotation axis the vector size does not
	// support.
	ErrAxis = errors.New("linalg: invalid rotation axis")
	// ErrDivideByZero is returned for element-wise integer division by zero.
	ErrDivideByZero = errors.New("linalg: integer division by zero")
)

// Number is the element type of vectors and matrices.
type Number interface {
	constraints.Integer | constraints.Float
}

// Vector is an N-component tuple.
type Vector[T Number] []T

// Vec creates a vector from its components.
func Vec[T Number](vals ...T) Vector[T] {
	v := make(Vector[T], len(vals))
	copy(v, vals)
	return v
}

// Zeros returns an n-component zero vector.
func Zeros[T Number](n int) Vector[T] {
	return make(Vector[T], n)
}

// Len returns the number of components.
func (v Vector[T]) Len() int {
	return len(v)
}

// Clone returns a copy of v.
func (v Vector[T]) Clone() Vector[T] {
	return Vec(v...)
}

// Float converts v to a float64 vector.
func (v Vector[T]) Float() Vector[float64] {
	out := make(Vector[float64], len(v))
	for i, x := range v {
		out[i] = float64(x)
	}
	return out
}

// Equal reports whether v and o have the same components.
func (v Vector[T]) Equal(o Vector[T]) bool {
	if len(v) != len(o) {
		return false
	}
	for i := range v {
		if v[i] != o[i] {
			return false
		}
	}
	return true
}

func (v Vector[T]) sameSize(o Vector[T]) error {
	if len(v) != len(o) {
		return fmt.Errorf("%w: %d vs %d components", ErrDimension, len(v), len(o))
	}
	return nil
}

func (v Vector[T]) zip(o Vector[T], op func(a, b T) T) (Vector[T], error) {
	if err := v.sameSize(o); err != nil {
		return nil, err
	}
	out := make(Vector[T], len(v))
	for i := range v {
		out[i] = op(v[i], o[i])
	}
	return out, nil
}

func (v Vector[T]) each(op func(a T) T) Vector[T] {
	out := make(Vector[T], len(v))
	for i := range v {
		out[i] = op(v[i])
	}
	return out
}

// Add returns v + o.
func (v Vector[T]) Add(o Vector[T]) (Vector[T], error) {
	return v.zip(o, func(a, b T) T { return a + b })
}

// Sub returns v - o.
func (v Vector[T]) Sub(o Vector[T]) (Vector[T], error) {
	return v.zip(o, func(a, b T) T { return a - b })
}

// Mul returns the element-wise product.
func (v Vector[T]) Mul(o Vector[T]) (Vector[T], error) {
	return v.zip(o, func(a, b T) T { return a * b })
}

// Div returns the element-wise quotient. Integer division by a zero
// element fails with ErrDivideByZero; float division follows IEEE rules.
func (v Vector[T]) Div(o Vector[T]) (Vector[T], error) {
	if err := v.sameSize(o); err != nil {
		return nil, err
	}
	if isInteger[T]() {
		for _, x := range o {
			if x == 0 {
				return nil, ErrDivideByZero
			}
		}
	}
	return v.zip(o, func(a, b T) T { return a / b })
}

// AddScalar adds s to every component.
func (v Vector[T]) AddScalar(s T) Vector[T] {
	return v.each(func(a T) T { return a + s })
}

// SubScalar subtracts s from every component.
func (v Vector[T]) SubScalar(s T) Vector[T] {
	return v.each(func(a T) T { return a - s })
}

// Scale multiplies every component by s.
func (v Vector[T]) Scale(s T) Vector[T] {
	return v.each(func(a T) T { return a * s })
}

// DivScalar divides every component by s.
func (v Vector[T]) DivScalar(s T) (Vector[T], error) {
	if s == 0 && isInteger[T]() {
		return nil, ErrDivideByZero
	}
	return v.each(func(a T) T { return a / s }), nil
}

// Dot returns the dot product.
func (v Vector[T]) Dot(o Vector[T]) (T, error) {
	if err := v.sameSize(o); err != nil {
		return 0, err
	}
	var sum T
	for i := range v {
		sum += v[i] * o[i]
	}
	return sum, nil
}

// Cross returns v × o. Both vectors must have three components.
func (v Vector[T]) Cross(o Vector[T]) (Vector[T], error) {
	if len(v) != 3 || len(o) != 3 {
		return nil, fmt.Errorf("%w: cross product needs 3 components, got %d and %d", ErrDimension, len(v), len(o))
	}
	return Vector[T]{
		v[1]*o[2] - v[2]*o[1],
		v[2]*o[0] - v[0]*o[2],
		v[0]*o[1] - v[1]*o[0],
	}, nil
}

// Magnitude returns the Euclidean length.
func (v Vector[T]) Magnitude() float64 {
	var sum float64
	for _, x := range v {
		f := float64(x)
		sum += f * f
	}
	return math.Sqrt(sum)
}

// Normalized returns the unit vector in the direction of v.
func (v Vector[T]) Normalized() (Vector[float64], error) {
	m := v.Magnitude()
	if m == 0 {
		return nil, ErrZeroMagnitude
	}
	out := make(Vector[float64], len(v))
	for i, x := range v {
		out[i] = float64(x) / m
	}
	return out, nil
}

// Normalize scales v to unit length in place. A zero vector is left
// untouched and ErrZeroMagnitude is returned.
func (v Vector[T]) Normalize() error {
	m := v.Magnitude()
	if m == 0 {
		return ErrZeroMagnitude
	}
	for i, x := range v {
		v[i] = T(float64(x) / m)
	}
	return nil
}

// Power raises every component to p in place.
func (v Vector[T]) Power(p float64) {
	for i, x := range v {
		v[i] = T(math.Pow(float64(x), p))
	}
}

// Distance returns the Euclidean distance between v and o.
func (v Vector[T]) Distance(o Vector[T]) (float64, error) {
	d, err := v.Sub(o)
	if err != nil {
		return 0, err
	}
	return d.Magnitude(), nil
}

// Angle returns the angle between v and o in radians.
func (v Vector[T]) Angle(o Vector[T]) (float64, error) {
	dot, err := v.Dot(o)
	if err != nil {
		return 0, err
	}
	mv, mo := v.Magnitude(), o.Magnitude()
	if mv == 0 || mo == 0 {
		return 0, ErrZeroMagnitude
	}
	c := float64(dot) / (mv * mo)
	// rounding can push c just outside [-1, 1]
	c = math.Max(-1, math.Min(1, c))
	return math.Acos(c), nil
}

// ProjectionOnto returns the vector projection of v onto o.
func (v Vector[T]) ProjectionOnto(o Vector[T]) (Vector[float64], error) {
	dot, err := v.Dot(o)
	if err != nil {
		return nil, err
	}
	m := o.Magnitude()
	if m == 0 {
		return nil, ErrZeroMagnitude
	}
	k := float64(dot) / (m * m)
	out := make(Vector[float64], len(o))
	for i, x := range o {
		out[i] = float64(x) * k
	}
	return out, nil
}

// Rotate rotates v by angle radians about axis. Two-component vectors only
// rotate about Z; three-component vectors rotate about any axis.
func (v Vector[T]) Rotate(angle float64, axis math3d.Axis) (Vector[T], error) {
	switch len(v) {
	case 2:
		if axis != math3d.AxisZ {
			return nil, fmt.Errorf("%w: 2D vectors rotate about z, got %v", ErrAxis, axis)
		}
		r := math3d.V2(float64(v[0]), float64(v[1])).Rotate(angle)
		return Vector[T]{T(r.X), T(r.Y)}, nil
	case 3:
		if axis < math3d.AxisX || axis > math3d.AxisZ {
			return nil, fmt.Errorf("%w: %v", ErrAxis, axis)
		}
		r := math3d.V3(float64(v[0]), float64(v[1]), float64(v[2])).Rotate(angle, axis)
		return Vector[T]{T(r.X), T(r.Y), T(r.Z)}, nil
	}
	return nil, fmt.Errorf("%w: rotation needs 2 or 3 components, got %d", ErrDimension, len(v))
}

// RotateAboutCenter rotates v about center by angle radians.
func (v Vector[T]) RotateAboutCenter(center Vector[T], angle float64, axis math3d.Axis) (Vector[T], error) {
	if err := v.sameSize(center); err != nil {
		return nil, err
	}
	// offsets go through float64 so integer vectors truncate once
	rel := make(Vector[float64], len(v))
	for i := range v {
		rel[i] = float64(v[i]) - float64(center[i])
	}
	r, err := rel.Rotate(angle, axis)
	if err != nil {
		return nil, err
	}
	out := make(Vector[T], len(v))
	for i := range r {
		out[i] = T(r[i] + float64(center[i]))
	}
	return out, nil
}

// Vec3 converts a three-component vector to math3d.Vec3.
func (v Vector[T]) Vec3() (math3d.Vec3, error) {
	if len(v) != 3 {
		return math3d.Vec3{}, fmt.Errorf("%w: want 3 components, got %d", ErrDimension, len(v))
	}
	return math3d.V3(float64(v[0]), float64(v[1]), float64(v[2])), nil
}

func isInteger[T Number]() bool {
	var one T = 1
	return one/2 == 0
}
