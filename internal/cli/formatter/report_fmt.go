package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/focustrack/internal/contract"
)

// FormatWeeklyReport renders the week-to-date table and where the CSV
// snapshot was written.
func FormatWeeklyReport(username string, resp *contract.WeeklyReportResponse) string {
	report := resp.Report
	window := fmt.Sprintf("%s → %s",
		report.WindowStart.Format("Mon Jan 2 15:04"),
		report.WindowEnd.Format("Mon Jan 2 15:04"))

	var b strings.Builder
	b.WriteString(Dim(window))
	b.WriteString("\n\n")

	if len(report.Rows) == 0 {
		b.WriteString(Dim("No sessions recorded this week."))
	} else {
		rows := make([][]string, 0, len(report.Rows))
		for i, r := range report.Rows {
			dayCell := DayLabel(r.Day)
			if i > 0 && report.Rows[i-1].Day == r.Day {
				dayCell = ""
			}
			rows = append(rows, []string{
				dayCell,
				CategoryColor(r.Category).Render(r.Category),
				fmt.Sprintf("%d", r.TotalMinutes),
			})
		}
		b.WriteString(RenderTable([]string{"DATE", "CATEGORY", "MINUTES"}, rows, AlignRight(2)))
		b.WriteString("\n")
		total := report.TotalMinutes()
		b.WriteString(Bold(fmt.Sprintf("Week total: %d minutes (%s)", total, FormatMinutes(total))))
	}

	if resp.SkippedLines > 0 {
		b.WriteString("\n\n")
		b.WriteString(readNotes(resp.SkippedLines, 0))
	}

	out := RenderBox(fmt.Sprintf("Weekly report · %s", username), b.String())
	if resp.SnapshotPath != "" {
		out += "\n" + Success(fmt.Sprintf("Weekly report generated successfully for %s at %s", username, resp.SnapshotPath))
	}
	return out
}
