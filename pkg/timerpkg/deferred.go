package timerpkg

import (
	"sync"
	"time"
)

// Deferred runs a callback once after a delay unless cancelled first.
// Cancel and the callback are serialized: after Cancel returns, the callback
// either already ran or never will.
type Deferred struct {
	mu        sync.Mutex
	timer     *time.Timer
	cancelled bool
}

// NewDeferred schedules fn to run after delay.
func NewDeferred(delay time.Duration, fn func()) *Deferred {
	d := &Deferred{}

	d.timer = time.AfterFunc(delay, func() {
		// fn runs under the mutex so Cancel cannot return while it is
		// still in flight.
		d.mu.Lock()
		defer d.mu.Unlock()

		if d.cancelled {
			return
		}

		fn()
	})

	return d
}

// Cancel prevents the callback from firing if it has not fired yet.
func (d *Deferred) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.cancelled = true
	d.timer.Stop()
}
