// Package recorder turns clock stop events into sessions held in the
// current, not-yet-saved batch.
package recorder

import (
	"time"

	"github.com/alexanderramin/lapse/internal/domain"
	"github.com/google/uuid"
)

// Recorder owns the current batch. Insertion order is chronological order.
type Recorder struct {
	now   func() time.Time
	newID func() string
	batch []domain.Session
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithClock overrides the wall clock used for session timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Recorder) {
		r.now = now
	}
}

// WithIDGenerator overrides session ID generation.
func WithIDGenerator(newID func() string) Option {
	return func(r *Recorder) {
		r.newID = newID
	}
}

// New creates a Recorder with an empty batch.
func New(opts ...Option) *Recorder {
	r := &Recorder{
		now:   time.Now,
		newID: NewTimeOrderedID,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewTimeOrderedID returns a UUIDv7 string. UUIDv7 values sort by creation
// time and stay monotonic within the process.
func NewTimeOrderedID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// RecordStop appends a session for elapsedMs and returns it. A zero or
// negative elapsed value records nothing and returns false.
func (r *Recorder) RecordStop(elapsedMs int64) (domain.Session, bool) {
	if elapsedMs <= 0 {
		return domain.Session{}, false
	}
	s := domain.Session{
		ID:         r.newID(),
		DurationMs: elapsedMs,
		Timestamp:  r.now(),
	}
	r.batch = append(r.batch, s)
	return s, true
}

// Reset discards the current batch.
func (r *Recorder) Reset() {
	r.batch = nil
}

// TotalTime returns the sum of durations in the current batch.
func (r *Recorder) TotalTime() int64 {
	return domain.SumDurations(r.batch)
}

// Batch returns a copy of the current batch.
func (r *Recorder) Batch() []domain.Session {
	out := make([]domain.Session, len(r.batch))
	copy(out, r.batch)
	return out
}

// Len returns the number of sessions in the current batch.
func (r *Recorder) Len() int {
	return len(r.batch)
}
