package shooter

import "time"

// Clock is the simulation time source. It is sampled once per frame.
type Clock interface {
	Now() time.Duration
}

// ticker is implemented by clocks that advance once per simulated frame.
type ticker interface {
	Tick()
}

// WallClock reports monotonic time elapsed since it was created.
type WallClock struct {
	start time.Time
}

// NewWallClock starts a wall clock at zero.
func NewWallClock() *WallClock {
	return &WallClock{start: time.Now()}
}

// Now returns the elapsed time.
func (c *WallClock) Now() time.Duration {
	return time.Since(c.start)
}

// FrameClock advances by a fixed step every frame, independent of real time.
// It makes runs deterministic for a given seed.
type FrameClock struct {
	Step time.Duration
	now  time.Duration
}

// NewFrameClock creates a clock advancing by one frame at fps frames per
// second.
func NewFrameClock(fps int) *FrameClock {
	if fps <= 0 {
		fps = 60
	}
	return &FrameClock{Step: time.Second / time.Duration(fps)}
}

// Now returns the simulated time.
func (c *FrameClock) Now() time.Duration {
	return c.now
}

// Tick advances the clock by one step.
func (c *FrameClock) Tick() {
	c.now += c.Step
}

// Advance moves the clock forward by d.
func (c *FrameClock) Advance(d time.Duration) {
	c.now += d
}
