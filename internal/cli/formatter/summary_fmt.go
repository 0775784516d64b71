package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/focustrack/internal/calendar"
	"github.com/alexanderramin/focustrack/internal/contract"
)

const shareBarWidth = 20

// FormatDailySummary renders per-category totals for one day.
func FormatDailySummary(username string, resp *contract.DailySummaryResponse, today calendar.Day) string {
	title := fmt.Sprintf("%s's focus · %s", username, RelativeDay(resp.Day, today))

	var b strings.Builder
	if !resp.HasSessions() {
		b.WriteString(Dim(fmt.Sprintf("No sessions recorded on %s.", DayLabel(resp.Day))))
	} else {
		rows := make([][]string, 0, len(resp.Categories))
		for _, c := range resp.Categories {
			rows = append(rows, []string{
				CategoryColor(c.Category).Render(c.Category),
				fmt.Sprintf("%d", c.Minutes),
				FormatMinutes(c.Minutes),
				Dim(RenderShareBar(c.Minutes, resp.TotalMinutes, shareBarWidth)),
			})
		}
		b.WriteString(RenderTable([]string{"CATEGORY", "MINUTES", "TIME", "SHARE"}, rows, AlignRight(1, 2)))
		b.WriteString("\n")
		b.WriteString(Bold(fmt.Sprintf("Total: %d minutes (%s)", resp.TotalMinutes, FormatMinutes(resp.TotalMinutes))))
	}

	if notes := readNotes(resp.SkippedLines, resp.Anomalies); notes != "" {
		b.WriteString("\n\n")
		b.WriteString(notes)
	}
	return RenderBox(title, b.String())
}

// readNotes explains lines that could not be counted.
func readNotes(skipped, anomalies int) string {
	var notes []string
	if skipped > 0 {
		notes = append(notes, Warning(fmt.Sprintf("%s in the log could not be read and were skipped.", Plural(skipped, "line"))))
	}
	if anomalies > 0 {
		notes = append(notes, Warning(fmt.Sprintf("%s ended before starting and count as 0 minutes.", Plural(anomalies, "session"))))
	}
	return strings.Join(notes, "\n")
}
