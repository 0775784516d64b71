// Package stats holds the pure aggregation, streak and weekly report logic
// over a user's session records. Nothing here does I/O; callers load records
// from a repository.SessionLog and pass a calendar.Calendar for day
// boundaries.
package stats

import (
	"sort"
	"time"

	"github.com/alexanderramin/focustrack/internal/calendar"
	"github.com/alexanderramin/focustrack/internal/domain"
)

// DailyTotals sums minutes per category over the records that start on day.
// Categories are grouped by exact string match.
func DailyTotals(cal *calendar.Calendar, records []domain.SessionRecord, day calendar.Day) domain.DailyTotals {
	totals := make(domain.DailyTotals)
	for _, r := range records {
		if cal.ToLocalDay(r.Start) != day {
			continue
		}
		totals[r.Category] += clampMinutes(r.DurationMinutes)
	}
	return totals
}

// WeeklyTotals groups records whose start lies in [windowStart, windowEnd]
// (both ends inclusive) by local day and category.
func WeeklyTotals(cal *calendar.Calendar, records []domain.SessionRecord, windowStart, windowEnd time.Time) map[calendar.Day]domain.DailyTotals {
	byDay := make(map[calendar.Day]domain.DailyTotals)
	for _, r := range records {
		if r.Start.Before(windowStart) || r.Start.After(windowEnd) {
			continue
		}
		day := cal.ToLocalDay(r.Start)
		totals, ok := byDay[day]
		if !ok {
			totals = make(domain.DailyTotals)
			byDay[day] = totals
		}
		totals[r.Category] += clampMinutes(r.DurationMinutes)
	}
	return byDay
}

// SortedDays returns the keys of byDay in ascending order.
func SortedDays(byDay map[calendar.Day]domain.DailyTotals) []calendar.Day {
	days := make([]calendar.Day, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// clampMinutes keeps a negative duration that slipped past the store out of
// the sums.
func clampMinutes(m int) int {
	if m < 0 {
		return 0
	}
	return m
}
