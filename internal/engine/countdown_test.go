package engine

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestCountdown_ExpiresOnceAtFloor(t *testing.T) {
	c := NewCountdown(2)

	var fired int32
	done := make(chan struct{})
	c.Start(func() {
		atomic.AddInt32(&fired, 1)
		close(done)
	})

	select {
	case <-done:
	case <-time.After(4 * time.Second):
		t.Fatal("countdown did not expire")
	}

	// Give a racing second tick room to misfire if the latch were broken.
	time.Sleep(1500 * time.Millisecond)
	if n := atomic.LoadInt32(&fired); n != 1 {
		t.Fatalf("expected exactly one expiry, got %d", n)
	}
	if c.Remaining() < 0 {
		t.Fatalf("remaining went negative: %d", c.Remaining())
	}
}

func TestCountdown_StopPreventsExpiry(t *testing.T) {
	c := NewCountdown(2)

	var fired int32
	c.Start(func() { atomic.AddInt32(&fired, 1) })
	c.Stop()

	time.Sleep(2500 * time.Millisecond)
	if n := atomic.LoadInt32(&fired); n != 0 {
		t.Fatalf("stopped countdown fired %d times", n)
	}
}

func TestCountdown_StopIsIdempotent(t *testing.T) {
	c := NewCountdown(60)
	c.Start(func() {})

	c.Stop()
	c.Stop() // must not panic on double close
}

func TestCountdown_StartWithoutRaceIsGated(t *testing.T) {
	c := NewCountdown(60)

	// Not started: no ticks consume the remaining time.
	time.Sleep(1200 * time.Millisecond)
	if got := c.Remaining(); got != 60 {
		t.Fatalf("unstarted countdown ticked down to %d", got)
	}

	c.Start(func() {})
	c.Start(func() {}) // second start is a no-op
	c.Stop()
}
