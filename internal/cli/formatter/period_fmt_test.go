package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/lapse/internal/domain"
	"github.com/alexanderramin/lapse/internal/report"
	"github.com/alexanderramin/lapse/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPeriodList(t *testing.T) {
	sets := []domain.SavedSessionSet{
		testutil.NewTestSet(time.Date(2025, 2, 3, 9, 0, 0, 0, time.UTC), []int64{60_000, 60_000}),
		testutil.NewTestSet(time.Date(2025, 2, 20, 9, 0, 0, 0, time.UTC), []int64{30_000}),
	}
	periods := report.Summarize(sets, time.UTC)

	out := stripANSI(FormatPeriodList(periods))

	assert.Contains(t, out, "2025-02a")
	assert.Contains(t, out, "February 1-15, 2025")
	assert.Contains(t, out, "February 16-28, 2025")
	assert.Contains(t, out, "2m 00s")
	assert.Less(t, strings.Index(out, "2025-02b"), strings.Index(out, "2025-02a"))
}

func TestFormatPeriodList_Empty(t *testing.T) {
	assert.Contains(t, stripANSI(FormatPeriodList(nil)), "No saved sets.")
}

func TestFormatBreakdown_OneRowPerDay(t *testing.T) {
	sets := []domain.SavedSessionSet{
		testutil.NewTestSet(time.Date(2025, 2, 3, 9, 0, 0, 0, time.UTC), []int64{120_000}),
		testutil.NewTestSet(time.Date(2025, 2, 5, 9, 0, 0, 0, time.UTC), []int64{60_000}),
	}
	periods := report.Summarize(sets, time.UTC)
	require.Len(t, periods, 1)
	p := periods[0]
	days := report.Breakdown(p)

	out := stripANSI(FormatBreakdown(report.FormatPeriodLabel(p), p, days))

	assert.Contains(t, out, "FEBRUARY 1-15, 2025")
	assert.Equal(t, 15, strings.Count(out, "Feb "), "one row per day of the half")
	assert.Contains(t, out, "Mon Feb 03")
	assert.Contains(t, out, strings.Repeat(filledBlock, breakdownBarWidth), "peak day fills the bar")
	assert.Contains(t, out, strings.Repeat(filledBlock, breakdownBarWidth/2)+emptyBlock)
	assert.Contains(t, out, "3m 00s")
}
