package repository

import (
	"context"
	"os"
	"testing"

	"github.com/alexanderramin/focustrack/internal/calendar"
	"github.com/alexanderramin/focustrack/internal/domain"
	"github.com/alexanderramin/focustrack/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVReportWriter_Write(t *testing.T) {
	w := NewCSVReportWriter(t.TempDir())
	report := domain.WeeklyReport{Rows: []domain.ReportRow{
		{Day: calendar.Day{Year: 2024, Month: 1, Day: 1}, Category: "Study", TotalMinutes: 50},
		{Day: calendar.Day{Year: 2024, Month: 1, Day: 1}, Category: "Work", TotalMinutes: 30},
		{Day: calendar.Day{Year: 2024, Month: 1, Day: 2}, Category: "Reading", TotalMinutes: 15},
	}}

	path, err := w.Write(context.Background(), testutil.TestIdentity, report)
	require.NoError(t, err)
	assert.Equal(t, w.Path(testutil.TestIdentity), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Date,Category,Total Duration (minutes)\n"+
		"2024-01-01,Study,50\n"+
		"2024-01-01,Work,30\n"+
		"2024-01-02,Reading,15\n", string(data))
}

func TestCSVReportWriter_OverwritesPreviousSnapshot(t *testing.T) {
	w := NewCSVReportWriter(t.TempDir())
	ctx := context.Background()

	big := domain.WeeklyReport{Rows: []domain.ReportRow{
		{Day: calendar.Day{Year: 2024, Month: 1, Day: 1}, Category: "Study", TotalMinutes: 50},
		{Day: calendar.Day{Year: 2024, Month: 1, Day: 2}, Category: "Study", TotalMinutes: 40},
	}}
	_, err := w.Write(ctx, testutil.TestIdentity, big)
	require.NoError(t, err)

	path, err := w.Write(ctx, testutil.TestIdentity, domain.WeeklyReport{})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Date,Category,Total Duration (minutes)\n", string(data))
}

func TestCSVReportWriter_FailsWhenUnwritable(t *testing.T) {
	dir := t.TempDir()
	blocker := dir + "/reports"
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	_, err := NewCSVReportWriter(blocker).Write(context.Background(), testutil.TestIdentity, domain.WeeklyReport{})
	assert.Error(t, err)
}
