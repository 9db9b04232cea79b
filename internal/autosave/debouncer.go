// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package autosave

import (
	"context"
	"sync"
	"time"
)

// Debouncer runs fn once the triggers stop for delay. Runs never overlap:
// a trigger that fires while fn is running causes exactly one more run
// after it returns.
type Debouncer struct {
	ctx   context.Context
	delay time.Duration
	fn    func(ctx context.Context)

	mu      sync.Mutex
	idle    *sync.Cond
	timer   *time.Timer
	pending bool
	running bool
	rerun   bool
	stopped bool
}

// NewDebouncer creates a debouncer whose timer-driven runs use ctx.
func NewDebouncer(ctx context.Context, delay time.Duration, fn func(ctx context.Context)) *Debouncer {
	d := &Debouncer{
		ctx:   ctx,
		delay: delay,
		fn:    fn,
	}
	d.idle = sync.NewCond(&d.mu)

	return d
}

// Trigger marks a change and restarts the delay.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.pending = true
	if d.timer == nil {
		d.timer = time.AfterFunc(d.delay, d.fire)
		return
	}
	d.timer.Reset(d.delay)
}

// Pending reports whether a change is waiting to be saved.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.pending
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	if d.stopped || !d.pending {
		d.mu.Unlock()
		return
	}
	if d.running {
		d.rerun = true
		d.mu.Unlock()
		return
	}
	d.pending = false
	d.running = true
	d.run(d.ctx)
}

// run calls fn until no follow-up run is requested. It is entered with
// d.mu held and running set, and returns with d.mu released.
func (d *Debouncer) run(ctx context.Context) {
	for {
		d.mu.Unlock()
		d.fn(ctx)
		d.mu.Lock()

		if !d.rerun || !d.pending || d.stopped {
			break
		}
		d.rerun = false
		d.pending = false
	}
	d.rerun = false
	d.running = false
	d.idle.Broadcast()
	d.mu.Unlock()
}

// Flush cancels the timer, waits for a running save and then runs fn right
// away if a change is still pending.
func (d *Debouncer) Flush(ctx context.Context) {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
	}
	for d.running {
		d.idle.Wait()
	}
	if d.stopped || !d.pending {
		d.mu.Unlock()
		return
	}
	d.pending = false
	d.running = true
	d.run(ctx)
}

// Stop drops any pending change and waits for a running save to finish.
// Later triggers are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	d.pending = false
	if d.timer != nil {
		d.timer.Stop()
	}
	for d.running {
		d.idle.Wait()
	}
}
