package service

import (
	"sync"
	"time"

	"github.com/podiumlab/podium/pkg/metrics"
)

// Debouncer runs a function after a fixed delay, replacing any pending run
// when scheduled again. This is plain timer replacement: the superseded
// task simply never fires, so only the latest scheduled function runs.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

// NewDebouncer creates a Debouncer with the given delay.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Schedule arranges for fn to run after the delay, cancelling any pending
// schedule first.
func (d *Debouncer) Schedule(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		if d.timer.Stop() {
			metrics.RecordDebounceSuperseded()
		}
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Cancel drops any pending schedule without running it.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
