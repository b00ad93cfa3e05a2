package math3d

import (
	"errors"
	"math"
	"testing"
)

func TestVec3RotateRoundTrip(t *testing.T) {
	vectors := []Vec3{
		V3(1, 0, 0),
		V3(1, 2, 3),
		V3(-4.5, 0.25, 7),
	}
	angles := []float64{0, 0.1, math.Pi / 3, -2.5, 10}

	for _, axis := range []Axis{AxisX, AxisY, AxisZ} {
		t.Run(axis.String(), func(t *testing.T) {
			for _, v := range vectors {
				for _, a := range angles {
					got := v.Rotate(a, axis).Rotate(-a, axis)
					if !got.ApproxEqual(v, 1e-4) {
						t.Errorf("Rotate(%v, %v) then back = %v, want %v", a, axis, got, v)
					}
				}
			}
		})
	}
}

func TestVec3RotateRightHanded(t *testing.T) {
	tests := []struct {
		name string
		v    Vec3
		axis Axis
		want Vec3
	}{
		{"x to y about z", V3(1, 0, 0), AxisZ, V3(0, 1, 0)},
		{"y to z about x", V3(0, 1, 0), AxisX, V3(0, 0, 1)},
		{"z to x about y", V3(0, 0, 1), AxisY, V3(1, 0, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.v.Rotate(math.Pi/2, tc.axis)
			if !got.ApproxEqual(tc.want, 1e-9) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestVec3RotateAbout(t *testing.T) {
	center := V3(1, 1, 0)
	got := V3(2, 1, 0).RotateAbout(center, math.Pi, AxisZ)
	if !got.ApproxEqual(V3(0, 1, 0), 1e-9) {
		t.Errorf("got %v, want (0, 1, 0)", got)
	}
}

func TestVec2RotateRoundTrip(t *testing.T) {
	v := V2(3, -2)
	for _, a := range []float64{0.3, 1, -4} {
		got := v.Rotate(a).Rotate(-a)
		if math.Abs(got.X-v.X) > 1e-4 || math.Abs(got.Y-v.Y) > 1e-4 {
			t.Errorf("Rotate(%v) then back = %v, want %v", a, got, v)
		}
	}
}

func TestVec3Unit(t *testing.T) {
	u, err := V3(3, 0, 4).Unit()
	if err != nil {
		t.Fatalf("Unit() error = %v", err)
	}
	if math.Abs(u.Len()-1) > 1e-9 {
		t.Errorf("len = %v, want 1", u.Len())
	}

	again, err := u.Unit()
	if err != nil {
		t.Fatalf("Unit() twice error = %v", err)
	}
	if !again.ApproxEqual(u, 1e-6) {
		t.Errorf("normalize is not idempotent: %v vs %v", again, u)
	}

	if _, err := Zero3().Unit(); !errors.Is(err, ErrZeroVector) {
		t.Errorf("Unit() on zero vector error = %v, want ErrZeroVector", err)
	}
	if got := Zero3().Normalize(); got != Zero3() {
		t.Errorf("Normalize() on zero vector = %v, want zero", got)
	}
}

func TestVec3Cross(t *testing.T) {
	x, y := V3(1, 0, 0), V3(0, 1, 0)
	if got := x.Cross(y); got != V3(0, 0, 1) {
		t.Errorf("x × y = %v, want z", got)
	}
	if got := y.Cross(x); got != V3(0, 0, -1) {
		t.Errorf("y × x = %v, want -z", got)
	}
}

func TestPlaneSignedDistance(t *testing.T) {
	plane := NewPlane(V3(0, 0, 1), V3(0, 0, 2)).Normalized()

	tests := []struct {
		name  string
		point Vec3
		want  float64
	}{
		{"on plane", V3(5, -3, 1), 0},
		{"inside", V3(0, 0, 4), 3},
		{"outside", V3(0, 0, -1), -2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := plane.SignedDistance(tc.point); math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestPlaneIntersectSegment(t *testing.T) {
	plane := NewPlane(Zero3(), V3(0, 0, 1))
	got := plane.IntersectSegment(V3(0, 0, -1), V3(2, 0, 3))
	if !got.ApproxEqual(V3(0.5, 0, 0), 1e-9) {
		t.Errorf("got %v, want (0.5, 0, 0)", got)
	}
}

func TestVec3RotateAroundMatchesAxisRotation(t *testing.T) {
	v := V3(1, -2, 0.5)
	axes := map[Axis]Vec3{AxisX: V3(1, 0, 0), AxisY: V3(0, 2, 0), AxisZ: V3(0, 0, 3)}
	for axis, dir := range axes {
		got := v.RotateAround(dir, 0.8)
		want := v.Rotate(0.8, axis)
		if !got.ApproxEqual(want, 1e-12) {
			t.Errorf("axis %v: RotateAround = %v, Rotate = %v", axis, got, want)
		}
	}
	if got := v.RotateAround(Zero3(), 1); got != v {
		t.Errorf("zero axis rotated the vector to %v", got)
	}
}
