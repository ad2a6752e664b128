package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/lapse/internal/domain"
)

var testIDCounter atomic.Int64

// NextID returns a unique, increasing test ID with the given prefix.
func NextID(prefix string) string {
	return fmt.Sprintf("%s-%04d", prefix, testIDCounter.Add(1))
}

// Session options
type SessionOption func(*domain.Session)

func WithSessionID(id string) SessionOption {
	return func(s *domain.Session) {
		s.ID = id
	}
}

// NewTestSession creates a session of durationMs stopped at ts.
func NewTestSession(durationMs int64, ts time.Time, opts ...SessionOption) domain.Session {
	s := domain.Session{
		ID:         NextID("sess"),
		DurationMs: durationMs,
		Timestamp:  ts,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Set options
type SetOption func(*setConfig)

type setConfig struct {
	id   string
	name string
}

func WithSetID(id string) SetOption {
	return func(c *setConfig) {
		c.id = id
	}
}

func WithSetName(name string) SetOption {
	return func(c *setConfig) {
		c.name = name
	}
}

// NewTestSet creates a saved set created at createdAt holding one session
// per duration, each stopped one minute apart ending at createdAt.
func NewTestSet(createdAt time.Time, durationsMs []int64, opts ...SetOption) domain.SavedSessionSet {
	cfg := setConfig{id: NextID("set"), name: "Test " + createdAt.Format(time.DateOnly)}
	for _, opt := range opts {
		opt(&cfg)
	}

	sessions := make([]domain.Session, 0, len(durationsMs))
	for i, d := range durationsMs {
		offset := time.Duration(len(durationsMs)-1-i) * time.Minute
		sessions = append(sessions, NewTestSession(d, createdAt.Add(-offset)))
	}
	return domain.NewSavedSessionSet(cfg.id, cfg.name, sessions, createdAt)
}

// FixedClock returns a clock that reports t, advancing by step on each call.
func FixedClock(t time.Time, step time.Duration) func() time.Time {
	var calls atomic.Int64
	return func() time.Time {
		n := calls.Add(1) - 1
		return t.Add(time.Duration(n) * step)
	}
}
