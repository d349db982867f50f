package detect

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixshield/pkg/pixkey"
)

// --- Manual scheduler ---
type manualTask struct {
	at      time.Duration
	fn      func()
	fired   bool
	stopped bool
}

func (t *manualTask) Stop() bool {
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

type manualScheduler struct {
	mu    sync.Mutex
	now   time.Duration
	tasks []*manualTask
}

func (s *manualScheduler) AfterFunc(d time.Duration, fn func()) Stopper {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &manualTask{at: s.now + d, fn: fn}
	s.tasks = append(s.tasks, t)
	return t
}

// Advance moves the clock and runs every due task outside the lock.
func (s *manualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	s.now += d
	var due []*manualTask
	for _, t := range s.tasks {
		if !t.fired && !t.stopped && t.at <= s.now {
			t.fired = true
			due = append(due, t)
		}
	}
	s.mu.Unlock()
	for _, t := range due {
		t.fn()
	}
}

func (s *manualScheduler) live() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.tasks {
		if !t.fired && !t.stopped {
			n++
		}
	}
	return n
}

// --- End manual scheduler ---

func newTestDetector(t *testing.T) (*Detector, *manualScheduler, *[]Status) {
	t.Helper()
	sched := &manualScheduler{}
	var changes []Status
	d := NewDetector(pixkey.New(),
		WithScheduler(sched),
		WithOnChange(func(s Status) { changes = append(changes, s) }),
	)
	return d, sched, &changes
}

func TestTimer_ArmReplacesPending(t *testing.T) {
	sched := &manualScheduler{}
	timer := NewTimer(sched)

	calls := 0
	timer.Arm(time.Second, func() { calls++ })
	timer.Arm(time.Second, func() { calls += 10 })
	assert.Equal(t, 1, sched.live(), "at most one timer is outstanding")
	assert.True(t, timer.Pending())

	sched.Advance(time.Second)
	assert.Equal(t, 10, calls)
	assert.False(t, timer.Pending())
}

func TestTimer_Cancel(t *testing.T) {
	sched := &manualScheduler{}
	timer := NewTimer(sched)

	fired := false
	timer.Arm(time.Second, func() { fired = true })
	assert.True(t, timer.Cancel())
	assert.False(t, timer.Cancel(), "nothing left to cancel")

	sched.Advance(2 * time.Second)
	assert.False(t, fired)
}

type leakyStopper struct{}

func (leakyStopper) Stop() bool { return false }

// leakyScheduler never really stops anything, like a time.Timer whose
// callback already started.
type leakyScheduler struct{ fns []func() }

func (s *leakyScheduler) AfterFunc(_ time.Duration, fn func()) Stopper {
	s.fns = append(s.fns, fn)
	return leakyStopper{}
}

func TestTimer_StaleFireIsDropped(t *testing.T) {
	sched := &leakyScheduler{}
	timer := NewTimer(sched)

	var got []string
	timer.Arm(time.Second, func() { got = append(got, "first") })
	timer.Arm(time.Second, func() { got = append(got, "second") })

	for _, fn := range sched.fns {
		fn()
	}
	assert.Equal(t, []string{"second"}, got)
}

func TestDetector_DebounceLastKeystrokeWins(t *testing.T) {
	d, sched, changes := newTestDetector(t)

	for _, partial := range []string{"1234", "12345", "123456789", "12345678901"} {
		d.Input(partial)
		sched.Advance(500 * time.Millisecond)
	}
	assert.Equal(t, Detecting, d.State().State)
	assert.Equal(t, 1, sched.live())

	sched.Advance(DefaultDelay)
	st := d.State()
	require.Equal(t, Detected, st.State)
	assert.Equal(t, pixkey.CPF, st.Result.Kind)
	assert.Equal(t, "12345678901", st.Input)

	detected := 0
	for _, c := range *changes {
		if c.State == Detected {
			detected++
		}
	}
	assert.Equal(t, 1, detected, "only one classification ran")
}

func TestDetector_ShortInputStaysIdle(t *testing.T) {
	d, sched, _ := newTestDetector(t)

	d.Input("abc")
	assert.Equal(t, Idle, d.State().State)
	assert.Equal(t, 0, sched.live())

	d.Input("abcd@x.com")
	assert.Equal(t, Detecting, d.State().State)

	// deleting back under the threshold cancels the pending detection
	d.Input("abc")
	assert.Equal(t, Idle, d.State().State)
	assert.Equal(t, 0, sched.live())

	sched.Advance(10 * time.Second)
	assert.Equal(t, Idle, d.State().State)
}

func TestDetector_UnmatchedReturnsToIdle(t *testing.T) {
	d, sched, _ := newTestDetector(t)

	d.Input("nada disso")
	sched.Advance(DefaultDelay)
	assert.Equal(t, Idle, d.State().State)
}

func TestDetector_RandomFallbackStillIdle(t *testing.T) {
	sched := &manualScheduler{}
	d := NewDetector(pixkey.New(pixkey.WithFallback(pixkey.FallbackRandom)), WithScheduler(sched))

	d.Input("nada disso")
	sched.Advance(DefaultDelay)
	assert.Equal(t, Idle, d.State().State, "a fallback kind is not a detection")
}

func TestDetector_CustomDelayAndThreshold(t *testing.T) {
	sched := &manualScheduler{}
	d := NewDetector(nil, WithScheduler(sched), WithDelay(100*time.Millisecond), WithMinLength(0))

	d.Input("a@b.co")
	sched.Advance(99 * time.Millisecond)
	assert.Equal(t, Detecting, d.State().State)
	sched.Advance(time.Millisecond)
	st := d.State()
	assert.Equal(t, Detected, st.State)
	assert.Equal(t, pixkey.Email, st.Result.Kind)
}

func TestDetector_Stop(t *testing.T) {
	d, sched, _ := newTestDetector(t)

	d.Input("11998765432")
	d.Stop()
	sched.Advance(DefaultDelay)
	assert.Equal(t, Detecting, d.State().State, "stop leaves the state as it was")
	assert.Equal(t, 0, sched.live())
}

func TestDetector_RealScheduler(t *testing.T) {
	done := make(chan Status, 4)
	d := NewDetector(nil,
		WithDelay(10*time.Millisecond),
		WithOnChange(func(s Status) {
			if s.State == Detected {
				done <- s
			}
		}),
	)

	d.Input("123e4567-e89b-12d3-a456-426614174000")
	select {
	case st := <-done:
		assert.Equal(t, pixkey.Random, st.Result.Kind)
	case <-time.After(2 * time.Second):
		t.Fatal("detection did not fire")
	}
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "IDLE", Idle.String())
	assert.Equal(t, "DETECTING", Detecting.String())
	assert.Equal(t, "DETECTED", Detected.String())
}
