package domain

import (
	"sort"
	"time"

	"github.com/alexanderramin/focustrack/internal/calendar"
)

// DailyTotals maps category to summed minutes for one day. Categories with no
// sessions are absent rather than zero.
type DailyTotals map[string]int

// Total returns the sum over all categories.
func (t DailyTotals) Total() int {
	var sum int
	for _, m := range t {
		sum += m
	}
	return sum
}

// Categories returns the categories in ascending byte order.
func (t DailyTotals) Categories() []string {
	cats := make([]string, 0, len(t))
	for c := range t {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	return cats
}

// ReportRow is one (date, category, minutes) line of a weekly report.
type ReportRow struct {
	Day          calendar.Day
	Category     string
	TotalMinutes int
}

// WeeklyReport is the per-day, per-category breakdown of the current week.
type WeeklyReport struct {
	WindowStart time.Time
	WindowEnd   time.Time
	Rows        []ReportRow
}

// TotalMinutes sums every row.
func (r WeeklyReport) TotalMinutes() int {
	var sum int
	for _, row := range r.Rows {
		sum += row.TotalMinutes
	}
	return sum
}

// StreakState summarizes consecutive active days.
type StreakState struct {
	CurrentStreak   int
	LongestStreak   int
	HasSessionToday bool
}
