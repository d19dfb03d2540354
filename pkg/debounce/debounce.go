// Package debounce delays a callback until a quiet period has elapsed
// without further triggers.
package debounce

import (
	"sync"
	"time"

	"github.com/aretw0/quill/pkg/clock"
)

// Debouncer holds at most one pending callback. Every Schedule cancels the
// previous callback and restarts the quiet period.
type Debouncer struct {
	mu    sync.Mutex
	clock clock.Clock
	delay time.Duration
	timer clock.Timer
	fn    func()
	gen   uint64
}

// New creates a Debouncer with the given quiet period.
// A nil clock means clock.Real.
func New(delay time.Duration, c clock.Clock) *Debouncer {
	if c == nil {
		c = clock.Real{}
	}
	return &Debouncer{clock: c, delay: delay}
}

// Delay returns the quiet period.
func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Schedule arms f to run once the quiet period elapses, replacing any
// pending callback.
func (d *Debouncer) Schedule(f func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.fn = f
	d.timer = d.clock.AfterFunc(d.delay, func() { d.fire(gen) })
}

// Cancel drops the pending callback. It reports whether one was pending.
func (d *Debouncer) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.cancelLocked()
}

// Pending reports whether a callback is waiting for the quiet period.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fn != nil
}

// Flush runs the pending callback immediately, if any.
func (d *Debouncer) Flush() bool {
	d.mu.Lock()
	fn := d.fn
	d.cancelLocked()
	d.mu.Unlock()

	if fn == nil {
		return false
	}
	fn()
	return true
}

func (d *Debouncer) cancelLocked() bool {
	if d.fn == nil {
		return false
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	d.fn = nil
	d.timer = nil
	return true
}

// fire runs the callback armed under gen. Callbacks superseded after their
// timer already fired (a race with real timers) are discarded.
func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || d.fn == nil {
		d.mu.Unlock()
		return
	}
	fn := d.fn
	d.fn = nil
	d.timer = nil
	d.mu.Unlock()

	fn()
}
