package repository

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/alexanderramin/focustrack/internal/domain"
)

// ReportHeader is the first line of every weekly report snapshot.
var ReportHeader = []string{"Date", "Category", "Total Duration (minutes)"}

// CSVReportWriter writes weekly_report_<username>.csv inside dir, truncating
// any earlier snapshot.
type CSVReportWriter struct {
	dir string
}

// NewCSVReportWriter creates a CSVReportWriter rooted at dir.
func NewCSVReportWriter(dir string) *CSVReportWriter {
	return &CSVReportWriter{dir: dir}
}

// Path returns the snapshot file used for id.
func (w *CSVReportWriter) Path(id domain.Identity) string {
	return userFile(w.dir, "weekly_report_", id, ".csv")
}

func (w *CSVReportWriter) Write(ctx context.Context, id domain.Identity, report domain.WeeklyReport) (string, error) {
	if err := requireIdentity(id); err != nil {
		return "", err
	}
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", fmt.Errorf("creating report directory: %w", err)
	}

	path := w.Path(id)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("opening weekly report: %w", err)
	}

	cw := csv.NewWriter(f)
	if err := cw.Write(ReportHeader); err != nil {
		f.Close()
		return "", fmt.Errorf("writing report header: %w", err)
	}
	for _, row := range report.Rows {
		record := []string{row.Day.String(), row.Category, strconv.Itoa(row.TotalMinutes)}
		if err := cw.Write(record); err != nil {
			f.Close()
			return "", fmt.Errorf("writing report row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		f.Close()
		return "", fmt.Errorf("flushing weekly report: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing weekly report: %w", err)
	}
	return path, nil
}
