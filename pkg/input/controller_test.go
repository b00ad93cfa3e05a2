package input

import (
	"math"
	"testing"

	"github.com/taigrr/halfblock/pkg/math3d"
	"github.com/taigrr/halfblock/pkg/render"
)

const frame = 1.0 / 60

func TestAxisDecays(t *testing.T) {
	a := NewAxis(60)
	a.Velocity = 1
	if got := a.Step(); got != 1 {
		t.Errorf("first Step() = %v, want the velocity before decay", got)
	}
	prev := math.Inf(1)
	for range 600 {
		v := a.Step()
		if math.Abs(v) > prev+1e-12 {
			t.Fatalf("velocity grew from %v to %v", prev, v)
		}
		prev = math.Abs(v)
	}
	if prev > 1e-6 {
		t.Errorf("velocity after 10s = %v, want ~0", prev)
	}
}

func TestControllerKeys(t *testing.T) {
	tests := []struct {
		key   string
		check func(Delta) bool
	}{
		{"w", func(d Delta) bool { return d.Forward > 0 && d.Strafe == 0 }},
		{"s", func(d Delta) bool { return d.Forward < 0 }},
		{"d", func(d Delta) bool { return d.Strafe > 0 }},
		{"a", func(d Delta) bool { return d.Strafe < 0 }},
		{"e", func(d Delta) bool { return d.Rise > 0 }},
		{"left", func(d Delta) bool { return d.Yaw > 0 }},
		{"down", func(d Delta) bool { return d.Pitch < 0 }},
	}
	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			c := NewController(60)
			s := NewState()
			s.Press(tc.key)
			if d := c.Update(s, frame); !tc.check(d) {
				t.Errorf("delta = %+v", d)
			}
		})
	}

	c := NewController(60)
	s := NewState()
	s.Press("w")
	s.Press("s")
	if d := c.Update(s, frame); !d.IsZero() {
		t.Errorf("opposing keys gave %+v, want zero", d)
	}
}

func TestControllerMouseDrag(t *testing.T) {
	c := NewController(60)
	s := NewState()

	// motion without a click is ignored
	s.SetMouse(MouseEvent{X: 10, Y: 10, Action: MouseMotion})
	if d := c.Update(s, frame); !d.IsZero() {
		t.Errorf("hover gave %+v", d)
	}

	s.SetMouse(MouseEvent{X: 10, Y: 10, Action: MouseClick})
	s.SetMouse(MouseEvent{X: 15, Y: 12, Action: MouseMotion})
	d := c.Update(s, frame)
	if d.Yaw >= 0 {
		t.Errorf("drag right gave yaw %v, want a right turn", d.Yaw)
	}
	if d.Pitch >= 0 {
		t.Errorf("drag down gave pitch %v, want looking down", d.Pitch)
	}
	if want := -5 * c.MouseSensitivity; math.Abs(d.Yaw-want) > 1e-12 {
		t.Errorf("yaw = %v, want %v", d.Yaw, want)
	}

	s.SetMouse(MouseEvent{X: 15, Y: 12, Action: MouseWheelUp})
	if d := c.Update(s, frame); d.Forward <= 0 {
		t.Errorf("wheel up gave forward %v", d.Forward)
	}
}

func TestControllerApply(t *testing.T) {
	cam, err := render.NewCamera(math3d.V3(0, 0, -5), math3d.V3(0, 0, 1))
	if err != nil {
		t.Fatal(err)
	}
	c := NewController(60)

	if err := c.Apply(Delta{Forward: 2, Rise: 1}, cam); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if !cam.Position.ApproxEqual(math3d.V3(0, 1, -3), 1e-9) {
		t.Errorf("position = %v, want (0, 1, -3)", cam.Position)
	}
	// the view follows the move without a separate Update
	if p := cam.View().MulPoint(math3d.V3(0, 1, 0)); !p.ApproxEqual(math3d.V3(0, 0, 3), 1e-9) {
		t.Errorf("view of a point ahead = %v, want (0, 0, 3)", p)
	}

	if err := c.Apply(Delta{Yaw: math.Pi / 2}, cam); err != nil {
		t.Fatal(err)
	}
	if !cam.LookDir.ApproxEqual(math3d.V3(1, 0, 0), 1e-9) {
		t.Errorf("look dir after left turn = %v, want +x", cam.LookDir)
	}
}

func TestControllerApplyGimbal(t *testing.T) {
	cam, err := render.NewCamera(math3d.Zero3(), math3d.V3(0, 0, 1))
	if err != nil {
		t.Fatal(err)
	}
	c := NewController(60)
	c.Impulse(0, math.Pi/2)
	d := c.Update(NewState(), frame)

	if err := c.Apply(d, cam); err != nil {
		t.Fatalf("Apply() error = %v, want the pitch dropped", err)
	}
	if !cam.LookDir.ApproxEqual(math3d.V3(0, 0, 1), 1e-9) {
		t.Errorf("look dir = %v, want unchanged", cam.LookDir)
	}
	if next := c.Update(NewState(), frame); next.Pitch != 0 {
		t.Errorf("pitch velocity survived the gimbal stop: %v", next.Pitch)
	}
}

func BenchmarkControllerUpdate(b *testing.B) {
	c := NewController(60)
	s := NewState()
	s.Press("w")
	for b.Loop() {
		c.Update(s, frame)
	}
}
