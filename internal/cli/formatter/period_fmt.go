package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/lapse/internal/domain"
	"github.com/alexanderramin/lapse/internal/report"
)

const breakdownBarWidth = 24

// FormatPeriodList renders half-month summaries in the order given. The KEY
// column is the selector accepted by "periods show".
func FormatPeriodList(periods []domain.SessionSummaryPeriod) string {
	if len(periods) == 0 {
		return Dim("No saved sets.") + "\n"
	}

	headers := []string{"KEY", "PERIOD", "SETS", "SESSIONS", "TOTAL"}
	rows := make([][]string, 0, len(periods))
	for _, p := range periods {
		rows = append(rows, []string{
			StylePurple.Render(report.PeriodKey(p)),
			StyleFg.Render(report.FormatPeriodLabel(p)),
			fmt.Sprintf("%d", len(p.Sets)),
			fmt.Sprintf("%d", p.SessionCount),
			HumanDuration(p.TotalTime),
		})
	}
	return RenderTableRight(headers, rows, 2, 3, 4)
}

// FormatBreakdown renders one row per day with a bar scaled to the peak day.
func FormatBreakdown(label string, p domain.SessionSummaryPeriod, days []domain.DayTotal) string {
	peak := report.PeakDay(days)

	var b strings.Builder
	for _, d := range days {
		day := d.Date.Format("Mon Jan 02")
		value := Dim("-")
		if d.TotalMs > 0 {
			value = HumanDuration(d.TotalMs)
		}
		fmt.Fprintf(&b, "%s  %s  %s\n", StyleFg.Render(day), RenderBar(d.TotalMs, peak, breakdownBarWidth), value)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s  %s %d  %s %d",
		Dim("Total"), Bold(HumanDuration(p.TotalTime)),
		Dim("Sets"), len(p.Sets),
		Dim("Sessions"), p.SessionCount)

	return RenderBox(label, b.String())
}
