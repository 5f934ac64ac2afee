// Package schedule provides a cancelable delayed task. Scheduling again
// before the pending task fires supersedes it, which is exactly the
// debounce contract used for note persistence and deferred scrolling.
package schedule

import (
	"sync"
	"time"
)

// Debouncer runs at most one pending function. The zero value is ready
// to use. Safe for use from concurrent goroutines, though the UI drives
// it from a single event loop.
type Debouncer struct {
	mu    sync.Mutex
	timer *time.Timer
}

// Schedule arranges for fn to run after delay, canceling any pending
// task first. fn runs on a timer goroutine.
func (d *Debouncer) Schedule(delay time.Duration, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(delay, fn)
}

// Cancel stops the pending task, if any. It does not wait for a task
// that has already started.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Flush cancels the pending task and runs fn immediately instead. Used
// when a view unmounts with a debounced save still pending.
func (d *Debouncer) Flush(fn func()) {
	d.Cancel()
	fn()
}
