package input

import (
	"errors"

	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/halfblock/pkg/math3d"
	"github.com/taigrr/halfblock/pkg/render"
)

// Axis is one degree of freedom whose velocity springs back to rest.
type Axis struct {
	// Velocity is in units (or radians) per frame.
	Velocity float64

	spring harmonica.Spring
	accel  float64
}

// NewAxis returns an axis with a critically damped spring stepped at fps.
func NewAxis(fps int) Axis {
	return Axis{spring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0)}
}

// Step returns the current velocity and then decays it toward zero.
func (a *Axis) Step() float64 {
	v := a.Velocity
	a.Velocity, a.accel = a.spring.Update(a.Velocity, a.accel, 0)
	return v
}

// Delta is the camera motion for one frame.
type Delta struct {
	Yaw, Pitch            float64 // radians, positive turns left and up
	Forward, Strafe, Rise float64 // world units
}

// IsZero reports whether applying d would change nothing.
func (d Delta) IsZero() bool {
	return d == Delta{}
}

// Bindings maps each motion to the keys that drive it. Key names follow
// the terminal's key strings, such as "w" or "left".
type Bindings struct {
	Forward, Back       []string
	Left, Right         []string
	Up, Down            []string
	TurnLeft, TurnRight []string
	LookUp, LookDown    []string
}

// DefaultBindings is WASD to move, Q/E to sink and rise and the arrow
// keys to look around.
func DefaultBindings() Bindings {
	return Bindings{
		Forward:   []string{"w"},
		Back:      []string{"s"},
		Left:      []string{"a"},
		Right:     []string{"d"},
		Up:        []string{"e"},
		Down:      []string{"q"},
		TurnLeft:  []string{"left"},
		TurnRight: []string{"right"},
		LookUp:    []string{"up"},
		LookDown:  []string{"down"},
	}
}

// Controller turns input state into spring-smoothed camera motion.
type Controller struct {
	Bindings Bindings
	// MoveSpeed and TurnSpeed are impulses per second of held key.
	MoveSpeed float64
	TurnSpeed float64
	// MouseSensitivity is radians of impulse per cell dragged.
	MouseSensitivity float64
	// ZoomStep is the forward impulse per wheel notch.
	ZoomStep float64

	fps                   int
	yaw, pitch            Axis
	forward, strafe, rise Axis

	lastX, lastY int
	tracking     bool
}

// NewController returns a controller whose springs run at fps.
func NewController(fps int) *Controller {
	c := &Controller{
		Bindings:         DefaultBindings(),
		MoveSpeed:        3,
		TurnSpeed:        1.5,
		MouseSensitivity: 0.01,
		ZoomStep:         0.3,
		fps:              max(fps, 1),
	}
	c.Reset()
	return c
}

// Reset stops all motion.
func (c *Controller) Reset() {
	c.yaw, c.pitch = NewAxis(c.fps), NewAxis(c.fps)
	c.forward, c.strafe, c.rise = NewAxis(c.fps), NewAxis(c.fps), NewAxis(c.fps)
	c.tracking = false
}

// Impulse adds to the angular velocities directly.
func (c *Controller) Impulse(yaw, pitch float64) {
	c.yaw.Velocity += yaw
	c.pitch.Velocity += pitch
}

// Update reads held keys and drains queued mouse events from s, then
// steps every axis. dt is the frame time in seconds.
func (c *Controller) Update(s *State, dt float64) Delta {
	b := c.Bindings
	move, turn := c.MoveSpeed*dt, c.TurnSpeed*dt
	c.forward.Velocity += move * keyAxis(s, b.Forward, b.Back)
	// positive strafe moves right
	c.strafe.Velocity += move * keyAxis(s, b.Right, b.Left)
	c.rise.Velocity += move * keyAxis(s, b.Up, b.Down)
	c.yaw.Velocity += turn * keyAxis(s, b.TurnLeft, b.TurnRight)
	c.pitch.Velocity += turn * keyAxis(s, b.LookUp, b.LookDown)

	for _, ev := range s.TakeMouse() {
		switch ev.Action {
		case MouseClick:
			c.lastX, c.lastY, c.tracking = ev.X, ev.Y, true
		case MouseRelease:
			c.tracking = false
		case MouseMotion:
			if !c.tracking {
				continue
			}
			// dragging right turns right, dragging down looks down
			dx, dy := ev.X-c.lastX, ev.Y-c.lastY
			c.Impulse(-float64(dx)*c.MouseSensitivity, -float64(dy)*c.MouseSensitivity)
			c.lastX, c.lastY = ev.X, ev.Y
		case MouseWheelUp:
			c.forward.Velocity += c.ZoomStep
		case MouseWheelDown:
			c.forward.Velocity -= c.ZoomStep
		}
	}

	return Delta{
		Yaw:     c.yaw.Step(),
		Pitch:   c.pitch.Step(),
		Forward: c.forward.Step(),
		Strafe:  c.strafe.Step(),
		Rise:    c.rise.Step(),
	}
}

func keyAxis(s *State, pos, neg []string) float64 {
	var v float64
	if s.Pressed(pos...) {
		v++
	}
	if s.Pressed(neg...) {
		v--
	}
	return v
}

// Apply moves cam by d and refreshes its view. A pitch that would cross
// the pole is dropped and its velocity zeroed.
func (c *Controller) Apply(d Delta, cam *render.Camera) error {
	if d.Yaw != 0 {
		if err := cam.Yaw(d.Yaw); err != nil {
			return err
		}
	}
	if d.Pitch != 0 {
		err := cam.Pitch(d.Pitch)
		if errors.Is(err, render.ErrGimbal) {
			c.pitch = NewAxis(c.fps)
		} else if err != nil {
			return err
		}
	}

	cam.MoveForward(d.Forward)
	cam.Strafe(d.Strafe)
	cam.Pan(math3d.V3(0, d.Rise, 0))

	up := cam.Up
	if up == (math3d.Vec3{}) {
		up = math3d.Up()
	}
	return cam.Update(up)
}
