package detect

import (
	"sync"
	"time"
)

// Stopper is a scheduled call that can be cancelled. *time.Timer satisfies it.
type Stopper interface {
	Stop() bool
}

// Scheduler runs fn once after d.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Stopper
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, fn func()) Stopper {
	return time.AfterFunc(d, fn)
}

// RealScheduler is backed by time.AfterFunc.
var RealScheduler Scheduler = realScheduler{}

// Timer is a cancellable one-shot timer with at most one pending call.
// Arming replaces any pending call; a call that was replaced or cancelled
// never runs, even if its underlying timer had already fired.
type Timer struct {
	mu      sync.Mutex
	sched   Scheduler
	pending Stopper
	gen     uint64
}

// NewTimer returns a Timer on sched. A nil sched uses RealScheduler.
func NewTimer(sched Scheduler) *Timer {
	if sched == nil {
		sched = RealScheduler
	}
	return &Timer{sched: sched}
}

// Arm schedules fn after d, cancelling whatever was pending.
func (t *Timer) Arm(d time.Duration, fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopLocked()
	t.gen++
	gen := t.gen
	t.pending = t.sched.AfterFunc(d, func() {
		t.mu.Lock()
		if gen != t.gen {
			t.mu.Unlock()
			return
		}
		t.pending = nil
		t.mu.Unlock()
		fn()
	})
}

// Cancel drops the pending call. It reports whether one was pending.
func (t *Timer) Cancel() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.gen++
	return t.stopLocked()
}

// Pending reports whether a call is armed and has not fired yet.
func (t *Timer) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending != nil
}

func (t *Timer) stopLocked() bool {
	if t.pending == nil {
		return false
	}
	t.pending.Stop()
	t.pending = nil
	return true
}
