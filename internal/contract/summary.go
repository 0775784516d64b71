// Package contract holds the request and response types exchanged between
// the CLI and the service layer.
package contract

import (
	"time"

	"github.com/alexanderramin/focustrack/internal/calendar"
	"github.com/alexanderramin/focustrack/internal/domain"
)

// DailySummaryRequest asks for per-category totals on one local day.
type DailySummaryRequest struct {
	Identity domain.Identity
	// Day defaults to today when nil.
	Day *calendar.Day
}

func NewDailySummaryRequest(id domain.Identity) DailySummaryRequest {
	return DailySummaryRequest{Identity: id}
}

// CategoryTotal is one line of a daily summary.
type CategoryTotal struct {
	Category string
	Minutes  int
}

type DailySummaryResponse struct {
	Day          calendar.Day
	Categories   []CategoryTotal
	TotalMinutes int
	SkippedLines int
	Anomalies    int
}

// HasSessions reports whether anything was logged on the summarized day.
func (r *DailySummaryResponse) HasSessions() bool {
	return len(r.Categories) > 0
}

// WeeklyReportRequest asks for the Monday-to-now report.
type WeeklyReportRequest struct {
	Identity domain.Identity
	// Now defaults to the calendar clock when nil.
	Now *time.Time
	// WriteSnapshot overwrites the user's CSV snapshot.
	WriteSnapshot bool
}

func NewWeeklyReportRequest(id domain.Identity) WeeklyReportRequest {
	return WeeklyReportRequest{Identity: id, WriteSnapshot: true}
}

type WeeklyReportResponse struct {
	Report domain.WeeklyReport
	// SnapshotPath is empty when no snapshot was written.
	SnapshotPath string
	SkippedLines int
}
