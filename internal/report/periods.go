// Package report derives bi-weekly summaries and daily breakdowns from saved
// session sets. Every function is a pure view over the snapshot it is given;
// nothing is cached between calls.
package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/lapse/internal/domain"
)

type periodKey struct {
	year  int
	month time.Month
	half  domain.PeriodHalf
}

// Summarize groups sets into half-month periods by the date of CreatedAt in
// loc (nil means time.Local). Each set lands in exactly one period. Members
// keep their input order; periods are sorted most recent first.
func Summarize(sets []domain.SavedSessionSet, loc *time.Location) []domain.SessionSummaryPeriod {
	if loc == nil {
		loc = time.Local
	}

	periods := make([]domain.SessionSummaryPeriod, 0)
	index := make(map[periodKey]int)

	for _, set := range sets {
		created := set.CreatedAt.In(loc)
		k := periodKey{year: created.Year(), month: created.Month(), half: domain.HalfOf(created.Day())}

		i, ok := index[k]
		if !ok {
			periods = append(periods, newPeriod(k, loc))
			i = len(periods) - 1
			index[k] = i
		}

		p := &periods[i]
		p.Sets = append(p.Sets, set)
		p.TotalTime += set.TotalTime
		p.SessionCount += set.SessionCount()
	}

	sort.SliceStable(periods, func(i, j int) bool {
		return periods[i].StartDate.After(periods[j].StartDate)
	})
	return periods
}

func newPeriod(k periodKey, loc *time.Location) domain.SessionSummaryPeriod {
	startDay, endDay := 1, 15
	if k.half == domain.SecondHalf {
		startDay, endDay = 16, lastDayOfMonth(k.year, k.month, loc)
	}
	return domain.SessionSummaryPeriod{
		Year:      k.year,
		Month:     k.month,
		Half:      k.half,
		StartDate: time.Date(k.year, k.month, startDay, 0, 0, 0, 0, loc),
		EndDate:   time.Date(k.year, k.month, endDay, 23, 59, 59, int(999*time.Millisecond), loc),
	}
}

// lastDayOfMonth uses day 0 of the following month.
func lastDayOfMonth(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

// FormatPeriodLabel renders "January 1-15, 2025" or "January 16-31, 2025".
func FormatPeriodLabel(p domain.SessionSummaryPeriod) string {
	if p.Half == domain.FirstHalf {
		return fmt.Sprintf("%s 1-15, %d", p.Month, p.Year)
	}
	return fmt.Sprintf("%s 16-%d, %d", p.Month, p.EndDate.Day(), p.Year)
}

// PeriodKey returns a short stable selector for a period, e.g. "2025-01a"
// for January 1-15 and "2025-01b" for January 16 onwards.
func PeriodKey(p domain.SessionSummaryPeriod) string {
	suffix := "a"
	if p.Half == domain.SecondHalf {
		suffix = "b"
	}
	return fmt.Sprintf("%04d-%02d%s", p.Year, int(p.Month), suffix)
}

// FindPeriod returns the period whose PeriodKey equals key.
func FindPeriod(periods []domain.SessionSummaryPeriod, key string) (domain.SessionSummaryPeriod, bool) {
	for _, p := range periods {
		if PeriodKey(p) == key {
			return p, true
		}
	}
	return domain.SessionSummaryPeriod{}, false
}

// PeriodContaining returns the period whose bounds include t.
func PeriodContaining(periods []domain.SessionSummaryPeriod, t time.Time) (domain.SessionSummaryPeriod, bool) {
	for _, p := range periods {
		if p.Contains(t) {
			return p, true
		}
	}
	return domain.SessionSummaryPeriod{}, false
}
