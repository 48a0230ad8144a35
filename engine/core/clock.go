package core

import "time"

// TimeSource returns an absolute time in seconds.
type TimeSource func() float64

// WallTime is the default TimeSource, backed by the system clock.
func WallTime() float64 {
	return float64(time.Now().UnixNano()) / float64(time.Second)
}

// Clock measures seconds elapsed since Start. All values are in seconds.
type Clock struct {
	source    TimeSource
	startTime float64
	elapsed   float64
	running   bool
}

func NewClock() *Clock {
	return NewClockWithSource(WallTime)
}

// NewClockWithSource creates a clock reading time from source, e.g. glfw.GetTime
// or a manual source in tests.
func NewClockWithSource(source TimeSource) *Clock {
	if source == nil {
		source = WallTime
	}
	return &Clock{source: source}
}

// Updates the provided clock. Should be called just before checking elapsed time.
// Has no effect on non-started clocks.
func (c *Clock) Update() {
	if c.running {
		c.elapsed = c.source() - c.startTime
	}
}

// Starts the provided clock. Resets elapsed time.
func (c *Clock) Start() {
	c.startTime = c.source()
	c.elapsed = 0
	c.running = true
}

// Stops the provided clock. Does not reset elapsed time.
func (c *Clock) Stop() {
	c.running = false
}

func (c *Clock) Elapsed() float64 {
	return c.elapsed
}

// Now reads the underlying time source directly.
func (c *Clock) Now() float64 {
	return c.source()
}

// ManualTime is a TimeSource whose value only changes when told to.
type ManualTime struct {
	seconds float64
}

func (m *ManualTime) Now() float64 {
	return m.seconds
}

func (m *ManualTime) Advance(seconds float64) {
	m.seconds += seconds
}

func (m *ManualTime) Set(seconds float64) {
	m.seconds = seconds
}
