package simulation

import "time"

// Clock measures the wall time between ticks. A stalled window (dragged,
// minimised, paused in a debugger) would otherwise hand the flock a huge dt.
type Clock struct {
	max  time.Duration
	last time.Time
	now  func() time.Time
}

// NewClock returns a clock whose steps never exceed maxFrameTime seconds.
// A maxFrameTime of 0 disables the cap.
func NewClock(maxFrameTime float64) *Clock {
	return &Clock{
		max: time.Duration(maxFrameTime * float64(time.Second)),
		now: time.Now,
	}
}

// Step returns the seconds elapsed since the previous call, 0 on the first call.
func (c *Clock) Step() float64 {
	now := c.now()
	if c.last.IsZero() {
		c.last = now
		return 0
	}
	elapsed := now.Sub(c.last)
	c.last = now
	if c.max > 0 && elapsed > c.max {
		elapsed = c.max
	}
	if elapsed < 0 {
		return 0
	}
	return elapsed.Seconds()
}
