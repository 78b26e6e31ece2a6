package testutil

import (
	"sync"
	"time"
)

// Clock is a controllable wall clock for tests.
//
// Each call to Now returns the current instant and then advances it by Step.
// With Step == 0 the clock is frozen, which is how tests force backup-name
// collisions.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type Clock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

// NewClock creates a clock starting at start.
func NewClock(start time.Time, step time.Duration) *Clock {
	return &Clock{now: start, step: step}
}

// Now returns the current instant and advances the clock by its step.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

// Set moves the clock to t.
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// FixedTime is the instant used by golden transcripts and backup-name tests:
// 2024-03-15 09:30:45.123456 in the local zone.
func FixedTime() time.Time {
	return time.Date(2024, time.March, 15, 9, 30, 45, 123456000, time.Local)
}
