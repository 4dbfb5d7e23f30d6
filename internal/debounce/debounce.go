// Package debounce collapses bursts of calls into a single deferred call
// that runs once the caller has been quiet for a fixed delay.
package debounce

import (
	"sync"
	"time"
)

// Invoker wraps a single-argument callback. Every Invoke replaces the
// pending call, so at most one call is outstanding at any time and only
// the arguments of the most recent Invoke reach the callback.
//
// The callback is looked up when the timer fires, so SetCallback takes
// effect for a call that is already pending.
type Invoker[T any] struct {
	mu      sync.Mutex
	delay   time.Duration
	fn      func(T)
	timer   *time.Timer
	gen     uint64
	stopped bool
}

// New returns an Invoker calling fn after delay. Negative delays are
// treated as zero and a nil fn turns every call into a no-op.
func New[T any](delay time.Duration, fn func(T)) *Invoker[T] {
	if delay < 0 {
		delay = 0
	}
	return &Invoker[T]{delay: delay, fn: fn}
}

// Invoke cancels the pending call, if any, and schedules fn(arg).
// After Stop it does nothing.
func (d *Invoker[T]) Invoke(arg T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.cancelLocked()
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen, arg) })
}

// SetCallback swaps the wrapped callback without touching the pending timer.
func (d *Invoker[T]) SetCallback(fn func(T)) {
	d.mu.Lock()
	d.fn = fn
	d.mu.Unlock()
}

// Cancel drops the pending call. The invoker remains usable.
func (d *Invoker[T]) Cancel() {
	d.mu.Lock()
	d.cancelLocked()
	d.mu.Unlock()
}

// Stop tears the invoker down: the pending call never fires and later
// Invoke calls are ignored. Stop may be called more than once.
func (d *Invoker[T]) Stop() {
	d.mu.Lock()
	d.stopped = true
	d.cancelLocked()
	d.mu.Unlock()
}

// Pending reports whether a call is scheduled and has not fired yet.
func (d *Invoker[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Delay returns the quiet period.
func (d *Invoker[T]) Delay() time.Duration {
	return d.delay
}

// cancelLocked stops the timer and bumps the generation so a timer that
// already expired but is still waiting for the lock becomes stale.
func (d *Invoker[T]) cancelLocked() {
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Invoker[T]) fire(gen uint64, arg T) {
	d.mu.Lock()
	if d.stopped || gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	fn := d.fn
	d.mu.Unlock()

	if fn != nil {
		fn(arg)
	}
}
