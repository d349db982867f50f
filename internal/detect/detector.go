// Package detect runs PIX key classification behind a debounce, the way the
// payment form detects the key type while the user types.
package detect

import (
	"sync"
	"time"
	"unicode/utf8"

	"pixshield/pkg/pixkey"
)

const (
	DefaultDelay     = 1500 * time.Millisecond
	DefaultMinLength = 3
)

// State of the detector.
type State int

const (
	Idle State = iota
	Detecting
	Detected
)

func (s State) String() string {
	switch s {
	case Detecting:
		return "DETECTING"
	case Detected:
		return "DETECTED"
	default:
		return "IDLE"
	}
}

// Status is a snapshot of the detector. Result is only set when State is Detected.
type Status struct {
	State  State
	Input  string
	Result pixkey.Result
}

// Detector implements IDLE -> DETECTING -> DETECTED(kind) | IDLE.
//
// Input longer than the minimum length arms the debounce timer; every new
// input re-arms it, so only the last keystroke inside the delay is classified.
// A classification that only produced the fallback kind returns to IDLE.
type Detector struct {
	classifier *pixkey.Classifier
	timer      *Timer
	delay      time.Duration
	minLength  int
	onChange   func(Status)

	mu     sync.Mutex
	seq    uint64
	status Status
}

// Option configures a Detector.
type Option func(*Detector)

func WithDelay(d time.Duration) Option { return func(det *Detector) { det.delay = d } }

func WithMinLength(n int) Option { return func(det *Detector) { det.minLength = n } }

// WithScheduler swaps the clock behind the debounce timer.
func WithScheduler(s Scheduler) Option {
	return func(det *Detector) { det.timer = NewTimer(s) }
}

// WithOnChange registers a callback invoked after every state transition.
// It runs on the caller's goroutine for Input and on the timer goroutine for fires.
func WithOnChange(fn func(Status)) Option { return func(det *Detector) { det.onChange = fn } }

// NewDetector creates a detector over classifier (nil uses the default classifier).
func NewDetector(classifier *pixkey.Classifier, opts ...Option) *Detector {
	if classifier == nil {
		classifier = pixkey.New()
	}
	d := &Detector{
		classifier: classifier,
		delay:      DefaultDelay,
		minLength:  DefaultMinLength,
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.timer == nil {
		d.timer = NewTimer(RealScheduler)
	}
	return d
}

// Input feeds the current value of the key field.
func (d *Detector) Input(text string) {
	d.mu.Lock()
	d.seq++
	seq := d.seq

	if utf8.RuneCountInString(text) <= d.minLength {
		d.timer.Cancel()
		st, changed := d.setLocked(Status{State: Idle, Input: text})
		d.mu.Unlock()
		d.notify(st, changed)
		return
	}

	st, changed := d.setLocked(Status{State: Detecting, Input: text})
	d.timer.Arm(d.delay, func() { d.fire(seq, text) })
	d.mu.Unlock()
	d.notify(st, changed)
}

// State returns the current status.
func (d *Detector) State() Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.status
}

// Stop cancels any pending detection without changing the state.
func (d *Detector) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	d.timer.Cancel()
}

func (d *Detector) fire(seq uint64, text string) {
	res := d.classifier.Classify(text)

	d.mu.Lock()
	if seq != d.seq {
		d.mu.Unlock()
		return
	}
	next := Status{State: Idle, Input: text}
	if res.Matched {
		next = Status{State: Detected, Input: text, Result: res}
	}
	st, changed := d.setLocked(next)
	d.mu.Unlock()
	d.notify(st, changed)
}

func (d *Detector) setLocked(next Status) (Status, bool) {
	changed := next != d.status
	d.status = next
	return next, changed
}

func (d *Detector) notify(st Status, changed bool) {
	if changed && d.onChange != nil {
		d.onChange(st)
	}
}
