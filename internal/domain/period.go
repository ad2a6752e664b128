package domain

import "time"

// PeriodHalf identifies which half of a month a summary period covers.
type PeriodHalf string

const (
	FirstHalf  PeriodHalf = "first"
	SecondHalf PeriodHalf = "second"
)

// HalfOf returns the half of the month a day-of-month falls in.
func HalfOf(day int) PeriodHalf {
	if day <= 15 {
		return FirstHalf
	}
	return SecondHalf
}

// SessionSummaryPeriod aggregates the saved sets created within one
// half-month bucket. StartDate and EndDate are inclusive bounds.
// Periods are derived on demand and never persisted.
type SessionSummaryPeriod struct {
	Year      int
	Month     time.Month
	Half      PeriodHalf
	StartDate time.Time
	EndDate   time.Time
	Sets      []SavedSessionSet

	TotalTime    int64
	SessionCount int // individual sessions, not sets
}

// Contains reports whether t falls within the period bounds.
func (p SessionSummaryPeriod) Contains(t time.Time) bool {
	return !t.Before(p.StartDate) && !t.After(p.EndDate)
}

// DayTotal is the recorded time for a single calendar day.
type DayTotal struct {
	Date    time.Time
	TotalMs int64
}
