package report

import (
	"time"

	"github.com/alexanderramin/lapse/internal/domain"
)

type civilDate struct {
	year  int
	month time.Month
	day   int
}

// Breakdown returns one entry per calendar day of the period, in ascending
// order and without gaps. Days are taken in the location of p.StartDate.
// Each session's duration is added to the day of its timestamp; sessions
// dated outside the period's days are not counted.
func Breakdown(p domain.SessionSummaryPeriod) []domain.DayTotal {
	loc := p.StartDate.Location()
	first := midnight(p.StartDate, loc)
	last := midnight(p.EndDate, loc)

	days := make([]domain.DayTotal, 0, 16)
	index := make(map[civilDate]int, 16)
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		y, m, dd := d.Date()
		index[civilDate{y, m, dd}] = len(days)
		days = append(days, domain.DayTotal{Date: d})
	}

	for _, set := range p.Sets {
		for _, s := range set.Sessions {
			y, m, d := s.Timestamp.In(loc).Date()
			if i, ok := index[civilDate{y, m, d}]; ok {
				days[i].TotalMs += s.DurationMs
			}
		}
	}
	return days
}

func midnight(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// PeakDay returns the largest daily total, or 0 for an empty series.
func PeakDay(days []domain.DayTotal) int64 {
	var peak int64
	for _, d := range days {
		if d.TotalMs > peak {
			peak = d.TotalMs
		}
	}
	return peak
}

// TotalOf sums a daily series.
func TotalOf(days []domain.DayTotal) int64 {
	var total int64
	for _, d := range days {
		total += d.TotalMs
	}
	return total
}
