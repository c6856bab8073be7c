package engine

import (
	"sync"
	"time"
)

// Countdown is the wall-clock timer of one attempt. It ticks once per
// second and fires onExpire exactly once when timeLeft reaches the floor,
// stopping itself BEFORE invoking the callback so a racing manual submit
// cannot observe a still-running timer.
type Countdown struct {
	mu        sync.Mutex
	remaining int
	stopCh    chan struct{}
	stopped   bool
	started   bool
}

// NewCountdown seeds the timer. Start is separate: countdown activation is
// gated on load completion, not on construction.
func NewCountdown(seconds int) *Countdown {
	return &Countdown{
		remaining: seconds,
		stopCh:    make(chan struct{}),
	}
}

// Start launches the 1-second tick loop. Calling Start twice is a no-op.
func (c *Countdown) Start(onExpire func()) {
	c.mu.Lock()
	if c.started || c.stopped {
		c.mu.Unlock()
		return
	}
	c.started = true
	c.mu.Unlock()

	go c.run(onExpire)
}

func (c *Countdown) run(onExpire func()) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.mu.Lock()
			if c.stopped {
				c.mu.Unlock()
				return
			}
			c.remaining--
			expired := c.remaining <= 1
			if expired {
				// Latch closed before the callback runs; the value can
				// never re-enter zero through a second tick.
				c.stopped = true
				close(c.stopCh)
			}
			c.mu.Unlock()

			if expired {
				onExpire()
				return
			}
		}
	}
}

// Stop halts the timer. Safe to call multiple times and from the expire
// callback itself.
func (c *Countdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return
	}
	c.stopped = true
	close(c.stopCh)
}

// Remaining returns the seconds left. It never increases.
func (c *Countdown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.remaining < 0 {
		return 0
	}
	return c.remaining
}
