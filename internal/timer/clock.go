// Package timer implements the stopwatch clock that feeds the session
// recorder. The clock holds no global state; callers own both the clock and
// the Scheduler that drives its ticks.
package timer

import (
	"fmt"
	"sync"
	"time"
)

// TickInterval is the fixed quantum added to the elapsed value on every tick.
const TickInterval = 10 * time.Millisecond

// State is the lifecycle state of a Clock.
type State int

const (
	Idle State = iota
	Running
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Scheduler registers fn to be called every d until the returned cancel
// func is invoked.
type Scheduler interface {
	Every(d time.Duration, fn func()) (cancel func())
}

// Clock accumulates elapsed time in TickInterval steps while running.
//
// Only tick callbacks mutate the elapsed value. Every Start opens a new
// generation; callbacks from an earlier generation are ignored, so a tick
// that was already in flight when Stop or Reset ran cannot advance the clock.
type Clock struct {
	mu      sync.Mutex
	sched   Scheduler
	state   State
	elapsed time.Duration
	gen     uint64
	cancel  func()
}

// New creates an idle clock driven by sched.
func New(sched Scheduler) *Clock {
	return &Clock{sched: sched}
}

// Start resumes accumulation from the current elapsed value.
// Calling Start on a running clock is a no-op.
func (c *Clock) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == Running {
		return
	}
	c.state = Running
	c.gen++
	gen := c.gen
	c.cancel = c.sched.Every(TickInterval, func() { c.tick(gen) })
}

// Stop halts accumulation and freezes the elapsed value.
func (c *Clock) Stop() {
	c.mu.Lock()
	if c.state != Running {
		c.mu.Unlock()
		return
	}
	cancel := c.halt()
	c.state = Stopped
	c.mu.Unlock()

	cancel()
}

// Reset zeroes the elapsed value and halts the clock.
func (c *Clock) Reset() {
	c.mu.Lock()
	cancel := c.halt()
	c.elapsed = 0
	c.state = Idle
	c.mu.Unlock()

	cancel()
}

// Elapsed returns the accumulated time.
func (c *Clock) Elapsed() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.elapsed
}

// ElapsedMs returns the accumulated time in whole milliseconds.
func (c *Clock) ElapsedMs() int64 {
	return c.Elapsed().Milliseconds()
}

// State returns the current lifecycle state.
func (c *Clock) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// halt retires the current generation and returns the cancel func of its
// tick registration. c.mu must be held; the caller invokes the cancel func
// after unlocking, since a scheduler may wait for an in-flight tick.
func (c *Clock) halt() func() {
	cancel := c.cancel
	c.cancel = nil
	c.gen++
	if cancel == nil {
		return func() {}
	}
	return cancel
}

func (c *Clock) tick(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != Running || gen != c.gen {
		return
	}
	c.elapsed += TickInterval
}

// FormatTime renders milliseconds as MM:SS.CC. Minutes are not wrapped at 60.
func FormatTime(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	minutes := ms / 60000
	seconds := (ms % 60000) / 1000
	centis := (ms % 1000) / 10
	return fmt.Sprintf("%02d:%02d.%02d", minutes, seconds, centis)
}
