package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/lapse/internal/domain"
	"github.com/alexanderramin/lapse/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func TestFormatSetList_Empty(t *testing.T) {
	assert.Contains(t, stripANSI(FormatSetList(nil, time.UTC)), "No saved sets.")
}

func TestFormatSetList_NewestFirstWithTotals(t *testing.T) {
	older := testutil.NewTestSet(time.Date(2025, 1, 3, 9, 0, 0, 0, time.UTC), []int64{1000, 3000},
		testutil.WithSetID("set-older"), testutil.WithSetName("Morning"))
	newer := testutil.NewTestSet(time.Date(2025, 1, 4, 18, 0, 0, 0, time.UTC), []int64{60_000},
		testutil.WithSetID("set-newer"), testutil.WithSetName("Evening"))

	out := stripANSI(FormatSetList([]domain.SavedSessionSet{older, newer}, time.UTC))

	assert.Less(t, strings.Index(out, "Evening"), strings.Index(out, "Morning"))
	assert.Contains(t, out, "set-older")
	assert.Contains(t, out, "00:04.00")
	assert.Contains(t, out, "01:00.00")
	assert.Contains(t, out, "Jan 4, 2025 6:00 PM")
	assert.Contains(t, out, "2 sets, total  1m 04s")
}

func TestFormatSetDetail_ListsSessionsInOrder(t *testing.T) {
	created := time.Date(2025, 1, 3, 9, 0, 0, 0, time.UTC)
	set := testutil.NewTestSet(created, []int64{1500, 2500}, testutil.WithSetName("Session 1/3/2025 9:00:00 AM"))

	out := stripANSI(FormatSetDetail(&set, time.UTC))

	assert.Contains(t, out, "SESSION 1/3/2025 9:00:00 AM")
	assert.Contains(t, out, set.ID)
	assert.Contains(t, out, "00:04.00")
	assert.Less(t, strings.Index(out, "00:01.50"), strings.Index(out, "00:02.50"))
	assert.Contains(t, out, "8:59:00 AM")
	assert.Contains(t, out, "9:00:00 AM")
}
