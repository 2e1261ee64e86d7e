package model

import (
	"sync"
	"time"
)

// Clock counts down one side's thinking time. It never goes below zero and has
// no effect on move legality.
type Clock struct {
	mu          sync.Mutex
	timeLeft    time.Duration
	lastStarted time.Time // When the clock was last started
	isRunning   bool
	now         func() time.Time
}

func NewClock(initialTime time.Duration) *Clock {
	return &Clock{
		timeLeft:  initialTime,
		isRunning: false,
		now:       time.Now,
	}
}

func (c *Clock) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.isRunning {
		c.lastStarted = c.now()
		c.isRunning = true
	}
}

func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isRunning {
		c.timeLeft = c.remaining()
		c.isRunning = false
	}
}

// Rearm stops the clock and resets it to d.
func (c *Clock) Rearm(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.timeLeft = d
	c.isRunning = false
}

func (c *Clock) IsRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isRunning
}

func (c *Clock) GetTimeLeft() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isRunning {
		return c.remaining()
	}
	return c.timeLeft
}

func (c *Clock) remaining() time.Duration {
	left := c.timeLeft - c.now().Sub(c.lastStarted)
	if left < 0 {
		return 0
	}
	return left
}
