package domain

import "time"

// Session is one completed timing interval. Sessions are immutable once
// recorded.
type Session struct {
	ID         string
	DurationMs int64
	Timestamp  time.Time
}

// Duration returns the session length as a time.Duration.
func (s Session) Duration() time.Duration {
	return time.Duration(s.DurationMs) * time.Millisecond
}

// SavedSessionSet is a named, persisted snapshot of a batch of sessions.
// TotalTime is computed once at creation and never recomputed.
type SavedSessionSet struct {
	ID        string
	Name      string
	Sessions  []Session
	TotalTime int64
	CreatedAt time.Time
}

// NewSavedSessionSet copies sessions into a new set and fixes its total.
func NewSavedSessionSet(id, name string, sessions []Session, createdAt time.Time) SavedSessionSet {
	copied := make([]Session, len(sessions))
	copy(copied, sessions)
	return SavedSessionSet{
		ID:        id,
		Name:      name,
		Sessions:  copied,
		TotalTime: SumDurations(copied),
		CreatedAt: createdAt,
	}
}

// SessionCount returns the number of individual sessions in the set.
func (s SavedSessionSet) SessionCount() int {
	return len(s.Sessions)
}

// SumDurations returns the total duration in milliseconds of the given sessions.
func SumDurations(sessions []Session) int64 {
	var total int64
	for _, s := range sessions {
		total += s.DurationMs
	}
	return total
}
