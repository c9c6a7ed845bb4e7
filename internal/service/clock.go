package service

import (
	"sync"
	"time"
)

// Clock is a single player's countdown clock, kept as-is from the
// teacher's model.Clock: pure stdlib time bookkeeping with no
// entanglement-specific behavior to adapt.
type Clock struct {
	mu          sync.Mutex
	timeLeft    time.Duration
	lastStarted time.Time
	isRunning   bool
}

// NewClock returns a stopped clock with initialTime remaining.
func NewClock(initialTime time.Duration) *Clock {
	return &Clock{timeLeft: initialTime}
}

// Start resumes the clock if it is not already running.
func (c *Clock) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.isRunning {
		c.lastStarted = time.Now()
		c.isRunning = true
	}
}

// Stop pauses the clock, deducting the elapsed time since Start.
func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isRunning {
		c.timeLeft -= time.Since(c.lastStarted)
		c.isRunning = false
	}
}

// TimeLeft returns the time remaining, accounting for an in-progress run.
func (c *Clock) TimeLeft() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isRunning {
		return c.timeLeft - time.Since(c.lastStarted)
	}
	return c.timeLeft
}
