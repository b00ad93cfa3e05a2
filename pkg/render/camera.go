package render

import (
	"errors"
	"fmt"
	"math"

	"github.com/taigrr/halfblock/pkg/math3d"
)

// ErrGimbal is returned when a rotation would leave the look direction
// (nearly) parallel to the up vector.
var ErrGimbal = errors.New("render: look direction parallel to up vector")

// maxPitchDot bounds |lookDir · up| for Pitch.
const maxPitchDot = 0.99

// Camera is a position plus a normalized look direction.
//
// The view matrix is derived state: Pan, MoveForward, Strafe and direct
// field writes do not refresh it. Call Update after mutating the camera;
// rendering with a stale view is a caller error and is not detected.
type Camera struct {
	Position math3d.Vec3
	LookDir  math3d.Vec3
	// Up is the up vector passed to the last successful Update.
	Up math3d.Vec3

	toWorld math3d.Mat4
	view    math3d.Mat4
}

// NewCamera creates a camera at pos looking along lookDir with world up.
func NewCamera(pos, lookDir math3d.Vec3) (*Camera, error) {
	dir, err := lookDir.Unit()
	if err != nil {
		return nil, fmt.Errorf("new camera: %w", err)
	}
	c := &Camera{Position: pos, LookDir: dir}
	if err := c.Update(math3d.Up()); err != nil {
		return nil, err
	}
	return c, nil
}

// Update rebuilds the view matrix from the current position and look
// direction. On error the previous view is kept.
func (c *Camera) Update(up math3d.Vec3) error {
	m, err := math3d.LookAt(c.Position, c.Position.Add(c.LookDir), up)
	if err != nil {
		return fmt.Errorf("update camera: %w", err)
	}
	c.Up = up
	c.toWorld = m
	c.view = math3d.InvertRigid(m)
	return nil
}

// View returns the world-to-camera matrix from the last Update.
func (c *Camera) View() math3d.Mat4 {
	return c.view
}

// ToWorld returns the camera-to-world matrix from the last Update.
func (c *Camera) ToWorld() math3d.Mat4 {
	return c.toWorld
}

// Right returns the direction to the viewer's right, lookDir × newUp. It
// is the negation of the first row of ToWorld.
func (c *Camera) Right() math3d.Vec3 {
	up := c.Up
	if up == (math3d.Vec3{}) {
		up = math3d.Up()
	}
	newUp := up.Sub(c.LookDir.Scale(up.Dot(c.LookDir))).Normalize()
	return c.LookDir.Cross(newUp)
}

// Pan moves the camera by delta in world space.
func (c *Camera) Pan(delta math3d.Vec3) {
	c.Position = c.Position.Add(delta)
}

// MoveForward moves the camera along its look direction.
func (c *Camera) MoveForward(d float64) {
	c.Position = c.Position.Add(c.LookDir.Scale(d))
}

// Strafe moves the camera along its right vector.
func (c *Camera) Strafe(d float64) {
	c.Position = c.Position.Add(c.Right().Scale(d))
}

// RotateLookDir rotates the look direction about a world axis and updates
// the view with the fixed world up (0, 1, 0). Looking straight up or down
// degenerates; use RotateLookDirWithUp to supply a different up vector.
func (c *Camera) RotateLookDir(angle float64, axis math3d.Axis) error {
	return c.RotateLookDirWithUp(angle, axis, math3d.Up())
}

// RotateLookDirWithUp is RotateLookDir with a caller-supplied up vector.
// The camera is unchanged when the update fails.
func (c *Camera) RotateLookDirWithUp(angle float64, axis math3d.Axis, up math3d.Vec3) error {
	return c.setLookDir(c.LookDir.Rotate(angle, axis), up)
}

// Yaw turns the camera about its up vector; positive angles turn left.
func (c *Camera) Yaw(angle float64) error {
	up := c.Up
	if up == (math3d.Vec3{}) {
		up = math3d.Up()
	}
	return c.setLookDir(c.LookDir.RotateAround(up, angle), up)
}

// Pitch tilts the camera about its right vector; positive angles look up.
// Rotations that would bring the look direction within about 8 degrees of
// the up vector return ErrGimbal and leave the camera unchanged.
func (c *Camera) Pitch(angle float64) error {
	up := c.Up
	if up == (math3d.Vec3{}) {
		up = math3d.Up()
	}
	dir := c.LookDir.RotateAround(c.Right(), angle)
	if math.Abs(dir.Normalize().Dot(up.Normalize())) > maxPitchDot {
		return ErrGimbal
	}
	return c.setLookDir(dir, up)
}

// LookAt points the camera at target using world up.
func (c *Camera) LookAt(target math3d.Vec3) error {
	return c.setLookDir(target.Sub(c.Position), math3d.Up())
}

func (c *Camera) setLookDir(dir, up math3d.Vec3) error {
	unit, err := dir.Unit()
	if err != nil {
		return fmt.Errorf("set look direction: %w", err)
	}
	prev := c.LookDir
	c.LookDir = unit
	if err := c.Update(up); err != nil {
		c.LookDir = prev
		return err
	}
	return nil
}
