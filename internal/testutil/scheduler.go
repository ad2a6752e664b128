package testutil

import (
	"sync"
	"time"
)

// ManualScheduler is a timer.Scheduler whose ticks fire only when the test
// calls Tick. Cancelled registrations are retained so tests can replay a
// stale callback with FireCancelled.
type ManualScheduler struct {
	mu   sync.Mutex
	regs []*manualRegistration
}

type manualRegistration struct {
	interval  time.Duration
	fn        func()
	cancelled bool
}

func (s *ManualScheduler) Every(d time.Duration, fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	reg := &manualRegistration{interval: d, fn: fn}
	s.regs = append(s.regs, reg)
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		reg.cancelled = true
	}
}

// Tick fires every active registration n times.
func (s *ManualScheduler) Tick(n int) {
	for i := 0; i < n; i++ {
		for _, fn := range s.callbacks(false) {
			fn()
		}
	}
}

// FireCancelled invokes every cancelled callback once, as a tick that was
// already in flight when the registration was cancelled would.
func (s *ManualScheduler) FireCancelled() {
	for _, fn := range s.callbacks(true) {
		fn()
	}
}

// Active returns the number of registrations that have not been cancelled.
func (s *ManualScheduler) Active() int {
	return len(s.callbacks(false))
}

// LastInterval returns the interval of the most recent registration.
func (s *ManualScheduler) LastInterval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.regs) == 0 {
		return 0
	}
	return s.regs[len(s.regs)-1].interval
}

func (s *ManualScheduler) callbacks(cancelled bool) []func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	var fns []func()
	for _, r := range s.regs {
		if r.cancelled == cancelled {
			fns = append(fns, r.fn)
		}
	}
	return fns
}
