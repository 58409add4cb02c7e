// Package debounce coalesces bursts of triggers into a single delayed call.
package debounce

import (
	"sync"
	"time"
)

// Debouncer runs fn once after delay has elapsed since the most recent
// Trigger. A non-positive delay runs fn synchronously on every Trigger.
type Debouncer struct {
	delay time.Duration
	fn    func()

	mu      sync.Mutex
	timer   *time.Timer
	pending bool
	stopped bool

	// run serialises invocations of fn so Flush can wait for an in-flight
	// timer callback.
	run sync.Mutex
}

// New returns a debouncer for fn.
func New(delay time.Duration, fn func()) *Debouncer {
	return &Debouncer{delay: delay, fn: fn}
}

// Trigger schedules fn, restarting the delay if a call is already pending.
// Triggers after Stop are ignored.
func (d *Debouncer) Trigger() {
	if d == nil || d.fn == nil {
		return
	}

	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	if d.delay <= 0 {
		d.mu.Unlock()
		d.invoke()
		return
	}
	d.pending = true
	if d.timer == nil {
		d.timer = time.AfterFunc(d.delay, d.fire)
	} else {
		d.timer.Reset(d.delay)
	}
	d.mu.Unlock()
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	if !d.pending {
		d.mu.Unlock()
		return
	}
	d.pending = false
	d.mu.Unlock()
	d.invoke()
}

func (d *Debouncer) invoke() {
	d.run.Lock()
	defer d.run.Unlock()
	d.fn()
}

// Flush runs a pending call immediately and waits for any in-flight call to
// finish. It is a no-op when nothing is pending.
func (d *Debouncer) Flush() {
	if d == nil {
		return
	}
	d.mu.Lock()
	pending := d.pending
	d.pending = false
	if d.timer != nil {
		d.timer.Stop()
	}
	d.mu.Unlock()

	if pending {
		d.invoke()
		return
	}
	// Wait for a callback that already started.
	d.run.Lock()
	d.run.Unlock()
}

// Cancel drops a pending call without running it and reports whether one was
// pending.
func (d *Debouncer) Cancel() bool {
	if d == nil {
		return false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	pending := d.pending
	d.pending = false
	if d.timer != nil {
		d.timer.Stop()
	}
	return pending
}

// Pending reports whether a call is scheduled.
func (d *Debouncer) Pending() bool {
	if d == nil {
		return false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Stop flushes any pending call and disables further triggers.
func (d *Debouncer) Stop() {
	if d == nil {
		return
	}
	d.Flush()
	d.mu.Lock()
	d.stopped = true
	d.mu.Unlock()
}
