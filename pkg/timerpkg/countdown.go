// Package timerpkg provides the two scheduled-task primitives a session
// owns: a resettable repeating countdown and a cancellable one-shot.
package timerpkg

import (
	"sync"
	"time"
)

// Countdown ticks down from a fixed number of ticks at a fixed interval and
// fires its expiry callback exactly once when the count reaches zero. Reset
// winds it back to the full count without spawning a second ticker; a
// Countdown never stacks.
type Countdown struct {
	mu        sync.Mutex
	ticks     int
	remaining int
	ticker    *time.Ticker
	done      chan struct{}
	onExpire  func()
	finished  bool
}

// NewCountdown starts the countdown immediately. onExpire runs on the ticker
// goroutine after the final tick.
func NewCountdown(ticks int, interval time.Duration, onExpire func()) *Countdown {
	c := &Countdown{
		ticks:     ticks,
		remaining: ticks,
		ticker:    time.NewTicker(interval),
		done:      make(chan struct{}),
		onExpire:  onExpire,
	}

	go c.run()

	return c
}

func (c *Countdown) run() {
	for {
		select {
		case <-c.done:
			return
		case <-c.ticker.C:
			if c.tick() {
				c.onExpire()
				return
			}
		}
	}
}

// tick reports whether the countdown just expired.
func (c *Countdown) tick() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.finished {
		return false
	}

	c.remaining--
	if c.remaining > 0 {
		return false
	}

	c.finished = true
	c.ticker.Stop()

	return true
}

// Remaining returns the number of ticks left.
func (c *Countdown) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.remaining
}

// Reset winds the countdown back to its full tick count. It does nothing on
// an expired or stopped countdown.
func (c *Countdown) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.finished {
		return
	}

	c.remaining = c.ticks
}

// Stop ends the countdown without firing the expiry callback. Safe to call
// more than once.
func (c *Countdown) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.finished {
		return
	}

	c.finished = true
	c.ticker.Stop()
	close(c.done)
}
