package formatter

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/lapse/internal/timer"
	"github.com/stretchr/testify/assert"
)

// ansiPattern matches ANSI escape sequences so assertions are terminal-independent.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestHumanDuration(t *testing.T) {
	tests := []struct {
		name string
		ms   int64
		want string
	}{
		{"zero", 0, "0s"},
		{"negative", -5, "0s"},
		{"sub-second", 999, "0s"},
		{"seconds", 12_500, "12s"},
		{"minutes", 4*60_000 + 5_000, "4m 05s"},
		{"hours", 3_600_000 + 2*60_000 + 59_000, "1h 02m"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HumanDuration(tt.ms))
		})
	}
}

func TestElapsedMatchesClockFormat(t *testing.T) {
	assert.Equal(t, "00:00.03", Elapsed(30))
	assert.Equal(t, "61:01.00", Elapsed(61*60_000+1_000))
}

func TestTimestampUsesLocation(t *testing.T) {
	ts := time.Date(2025, 1, 10, 23, 30, 0, 0, time.UTC)
	tokyo := time.FixedZone("JST", 9*3600)

	assert.Equal(t, "Jan 10, 2025 11:30 PM", Timestamp(ts, time.UTC))
	assert.Equal(t, "Jan 11, 2025 8:30 AM", Timestamp(ts, tokyo))
	assert.Equal(t, "8:30:00 AM", ClockTime(ts, tokyo))
}

func TestTruncID(t *testing.T) {
	assert.Equal(t, "0194a3b2", stripANSI(TruncID("0194a3b2-7c1d-7e00-8000-000000000000")))
	assert.Equal(t, "short", stripANSI(TruncID("short")))
}

func TestPlural(t *testing.T) {
	assert.Equal(t, "1 set", Plural(1, "set", "sets"))
	assert.Equal(t, "0 sets", Plural(0, "set", "sets"))
	assert.Equal(t, "2 sets", Plural(2, "set", "sets"))
}

func TestStateIndicator(t *testing.T) {
	assert.Contains(t, StateIndicator(timer.Running), "RUNNING")
	assert.Contains(t, StateIndicator(timer.Stopped), "STOPPED")
	assert.Contains(t, StateIndicator(timer.Idle), "IDLE")
}

func TestRenderBox_IncludesTitle(t *testing.T) {
	out := stripANSI(RenderBox("Session 1/10/2025", "body"))
	assert.Contains(t, out, "SESSION 1/10/2025")
	assert.Contains(t, out, "body")
	assert.True(t, strings.HasPrefix(out, "╭"))
}
