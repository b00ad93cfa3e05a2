// Package clock measures frame time for the render loop.
package clock

import "time"

// Clock reports time since it started and between ticks.
type Clock struct {
	// Now defaults to time.Now.
	Now func() time.Time
	// MaxDelta caps Tick so a stall does not become one huge step.
	// Zero means no cap.
	MaxDelta time.Duration

	start, last time.Time
	frames      int
}

// New returns a clock started at the current time.
func New() *Clock {
	return NewWithNow(time.Now)
}

// NewWithNow returns a clock driven by now.
func NewWithNow(now func() time.Time) *Clock {
	t := now()
	return &Clock{Now: now, start: t, last: t}
}

func (c *Clock) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// Tick returns the seconds since the previous Tick, or since the clock
// started on the first call.
func (c *Clock) Tick() float64 {
	t := c.now()
	d := t.Sub(c.last)
	c.last = t
	c.frames++
	if c.MaxDelta > 0 && d > c.MaxDelta {
		d = c.MaxDelta
	}
	return d.Seconds()
}

// Elapsed returns the time since the clock started.
func (c *Clock) Elapsed() time.Duration {
	return c.now().Sub(c.start)
}

// Frames returns the number of Tick calls.
func (c *Clock) Frames() int {
	return c.frames
}

// Wait sleeps until period has passed since the last Tick. It returns at
// once when the frame already took longer.
func (c *Clock) Wait(period time.Duration) {
	if d := period - c.now().Sub(c.last); d > 0 {
		time.Sleep(d)
	}
}

// FPS averages frames over a sliding one second window.
type FPS struct {
	clock  *Clock
	frames int
	since  time.Time
	rate   float64
}

// NewFPS returns a counter on clock c.
func NewFPS(c *Clock) *FPS {
	return &FPS{clock: c, since: c.now()}
}

// Frame counts one frame and returns the latest rate.
func (f *FPS) Frame() float64 {
	f.frames++
	now := f.clock.now()
	if elapsed := now.Sub(f.since); elapsed >= time.Second {
		f.rate = float64(f.frames) / elapsed.Seconds()
		f.frames = 0
		f.since = now
	}
	return f.rate
}
