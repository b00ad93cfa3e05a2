// Package input holds per-frame keyboard and mouse state and turns it into
// smooth camera motion.
package input

// MouseAction is the kind of the last mouse event.
type MouseAction int

const (
	MouseNone MouseAction = iota
	MouseClick
	MouseRelease
	MouseMotion
	MouseWheelUp
	MouseWheelDown
)

func (a MouseAction) String() string {
	switch a {
	case MouseClick:
		return "click"
	case MouseRelease:
		return "release"
	case MouseMotion:
		return "motion"
	case MouseWheelUp:
		return "wheel up"
	case MouseWheelDown:
		return "wheel down"
	}
	return "none"
}

// MouseEvent is a mouse position in terminal cells plus what happened
// there.
type MouseEvent struct {
	X, Y   int
	Action MouseAction
}

// State is the input snapshot a frame reads. The loop driver owns it and
// passes it to whoever needs it; nothing in this package keeps a global.
type State struct {
	Keys  map[string]bool
	Mouse MouseEvent

	// Dragging is true between a click and the next release.
	Dragging bool

	mouseSet bool
	pending  []MouseEvent
}

// NewState returns an empty state.
func NewState() *State {
	return &State{Keys: map[string]bool{}}
}

// Press marks key as held.
func (s *State) Press(key string) {
	if s.Keys == nil {
		s.Keys = map[string]bool{}
	}
	s.Keys[key] = true
}

// Release marks key as up.
func (s *State) Release(key string) {
	delete(s.Keys, key)
}

// ReleaseAll clears every held key. Terminals that never report key
// releases call it once per frame and rely on key repeat instead.
func (s *State) ReleaseAll() {
	clear(s.Keys)
}

// Pressed reports whether any of keys is held.
func (s *State) Pressed(keys ...string) bool {
	for _, k := range keys {
		if s.Keys[k] {
			return true
		}
	}
	return false
}

// SetMouse records a mouse event. Clicks and releases also update
// Dragging. Events queue until TakeMouse drains them.
func (s *State) SetMouse(ev MouseEvent) {
	switch ev.Action {
	case MouseClick:
		s.Dragging = true
	case MouseRelease:
		s.Dragging = false
	}
	s.Mouse = ev
	s.mouseSet = true
	s.pending = append(s.pending, ev)
}

// TakeMouse returns the events recorded since the last call, oldest
// first, and forgets them. Mouse keeps the latest event.
func (s *State) TakeMouse() []MouseEvent {
	evs := s.pending
	s.pending = nil
	return evs
}

// LastMouse returns the latest mouse event, if any was ever recorded.
func (s *State) LastMouse() (MouseEvent, bool) {
	return s.Mouse, s.mouseSet
}
