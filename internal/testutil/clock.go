package testutil

import (
	"sync"
	"time"
)

// Epoch is the first instant every StepClock reports.
var Epoch = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// StepClock is a deterministic clock for timing tests.
//
// Each call to Now returns the current instant and then advances it by the
// next step, cycling through the configured steps. Because the engine reads
// the clock twice per sample, a single step makes every sample last exactly
// that long.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type StepClock struct {
	mu    sync.Mutex
	now   time.Time
	steps []time.Duration
	idx   int
	calls int
}

// NewStepClock creates a clock starting at Epoch. With no steps it advances
// by one microsecond per call.
func NewStepClock(steps ...time.Duration) *StepClock {
	if len(steps) == 0 {
		steps = []time.Duration{time.Microsecond}
	}
	return &StepClock{now: Epoch, steps: steps}
}

// Now returns the current instant and advances the clock.
func (c *StepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.steps[c.idx])
	c.idx = (c.idx + 1) % len(c.steps)
	c.calls++
	return t
}

// Calls returns how many times Now has been called.
func (c *StepClock) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// Reset rewinds the clock to Epoch and the first step.
func (c *StepClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = Epoch
	c.idx = 0
	c.calls = 0
}
