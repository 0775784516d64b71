package stats

import (
	"time"

	"github.com/alexanderramin/focustrack/internal/calendar"
	"github.com/alexanderramin/focustrack/internal/domain"
)

// GenerateWeeklyReport builds the breakdown for the week containing now: from
// local Monday 00:00 through now. Rows are ordered by date, then by category
// in byte order.
func GenerateWeeklyReport(cal *calendar.Calendar, records []domain.SessionRecord, now time.Time) domain.WeeklyReport {
	windowStart := cal.StartOfWeek(cal.ToLocalDay(now))
	byDay := WeeklyTotals(cal, records, windowStart, now)

	report := domain.WeeklyReport{WindowStart: windowStart, WindowEnd: now}
	for _, day := range SortedDays(byDay) {
		totals := byDay[day]
		for _, cat := range totals.Categories() {
			report.Rows = append(report.Rows, domain.ReportRow{
				Day:          day,
				Category:     cat,
				TotalMinutes: totals[cat],
			})
		}
	}
	return report
}
