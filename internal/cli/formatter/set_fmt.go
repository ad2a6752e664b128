package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/lapse/internal/domain"
)

// FormatSetList renders saved sets newest first.
func FormatSetList(sets []domain.SavedSessionSet, loc *time.Location) string {
	if len(sets) == 0 {
		return Dim("No saved sets.") + "\n"
	}

	headers := []string{"ID", "NAME", "SESSIONS", "TOTAL", "CREATED"}
	rows := make([][]string, 0, len(sets))
	var total int64
	for i := len(sets) - 1; i >= 0; i-- {
		s := sets[i]
		total += s.TotalTime
		rows = append(rows, []string{
			Dim(s.ID),
			StyleFg.Render(s.Name),
			fmt.Sprintf("%d", s.SessionCount()),
			Elapsed(s.TotalTime),
			Timestamp(s.CreatedAt, loc),
		})
	}

	var b strings.Builder
	b.WriteString(RenderTableRight(headers, rows, 2, 3))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s  %s\n", Dim(Plural(len(sets), "set", "sets")+", total"), Bold(HumanDuration(total)))
	return b.String()
}

// FormatSetDetail renders one set with its sessions in recorded order.
func FormatSetDetail(set *domain.SavedSessionSet, loc *time.Location) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", Dim("ID:     "), set.ID)
	fmt.Fprintf(&b, "%s %s\n", Dim("Created:"), Timestamp(set.CreatedAt, loc))
	fmt.Fprintf(&b, "%s %s (%s)\n\n", Dim("Total:  "), Bold(Elapsed(set.TotalTime)), HumanDuration(set.TotalTime))

	headers := []string{"#", "DURATION", "STOPPED AT"}
	rows := make([][]string, 0, len(set.Sessions))
	for i, s := range set.Sessions {
		rows = append(rows, []string{
			Dim(fmt.Sprintf("%d", i+1)),
			Elapsed(s.DurationMs),
			ClockTime(s.Timestamp, loc),
		})
	}
	b.WriteString(RenderTableRight(headers, rows, 0, 1))

	return RenderBox(set.Name, strings.TrimRight(b.String(), "\n"))
}
