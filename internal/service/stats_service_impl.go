package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/focustrack/internal/calendar"
	"github.com/alexanderramin/focustrack/internal/contract"
	"github.com/alexanderramin/focustrack/internal/repository"
	"github.com/alexanderramin/focustrack/internal/stats"
)

type statsService struct {
	log      repository.SessionLog
	reports  repository.ReportWriter
	cal      *calendar.Calendar
	observer UseCaseObserver
}

func NewStatsService(
	log repository.SessionLog,
	reports repository.ReportWriter,
	cal *calendar.Calendar,
	observers ...UseCaseObserver,
) StatsService {
	return &statsService{
		log:      log,
		reports:  reports,
		cal:      cal,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *statsService) DailySummary(ctx context.Context, req contract.DailySummaryRequest) (resp *contract.DailySummaryResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"user": req.Identity.Username}
	defer func() { observe(ctx, s.observer, "daily-summary", startedAt, fields, err) }()

	if err = requireIdentity(req.Identity); err != nil {
		return nil, err
	}
	day := s.cal.Today()
	if req.Day != nil {
		day = *req.Day
	}
	fields["day"] = day.String()

	result, err := readLog(ctx, s.log, req.Identity, fields)
	if err != nil {
		return nil, fmt.Errorf("reading session log: %w", err)
	}

	totals := stats.DailyTotals(s.cal, result.Records, day)
	resp = &contract.DailySummaryResponse{
		Day:          day,
		TotalMinutes: totals.Total(),
		SkippedLines: result.SkippedCount(),
		Anomalies:    result.Anomalies,
	}
	for _, category := range totals.Categories() {
		resp.Categories = append(resp.Categories, contract.CategoryTotal{
			Category: category,
			Minutes:  totals[category],
		})
	}
	return resp, nil
}

func (s *statsService) WeeklyReport(ctx context.Context, req contract.WeeklyReportRequest) (resp *contract.WeeklyReportResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"user": req.Identity.Username}
	defer func() { observe(ctx, s.observer, "weekly-report", startedAt, fields, err) }()

	if err = requireIdentity(req.Identity); err != nil {
		return nil, err
	}
	now := s.cal.Now()
	if req.Now != nil {
		now = *req.Now
	}

	result, err := readLog(ctx, s.log, req.Identity, fields)
	if err != nil {
		return nil, fmt.Errorf("reading session log: %w", err)
	}

	report := stats.GenerateWeeklyReport(s.cal, result.Records, now)
	fields["rows"] = len(report.Rows)
	resp = &contract.WeeklyReportResponse{
		Report:       report,
		SkippedLines: result.SkippedCount(),
	}

	if req.WriteSnapshot {
		path, err := s.reports.Write(ctx, req.Identity, report)
		if err != nil {
			return nil, fmt.Errorf("writing weekly report: %w", err)
		}
		resp.SnapshotPath = path
	}
	return resp, nil
}

func (s *statsService) Streaks(ctx context.Context, req contract.StreakRequest) (resp *contract.StreakResponse, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"user": req.Identity.Username}
	defer func() { observe(ctx, s.observer, "streaks", startedAt, fields, err) }()

	if err = requireIdentity(req.Identity); err != nil {
		return nil, err
	}
	today := s.cal.Today()
	if req.Today != nil {
		today = *req.Today
	}

	result, err := readLog(ctx, s.log, req.Identity, fields)
	if err != nil {
		return nil, fmt.Errorf("reading session log: %w", err)
	}

	resp = &contract.StreakResponse{
		State:        stats.ComputeStreaks(s.cal, result.Records, today),
		Today:        today,
		SkippedLines: result.SkippedCount(),
	}
	if last, ok := stats.LastActiveDay(s.cal, result.Records); ok {
		resp.HasHistory = true
		resp.LastActiveDay = last
		resp.Stale = s.cal.DayDistance(last, today) > 1
	}
	fields["current_streak"] = resp.State.CurrentStreak
	fields["longest_streak"] = resp.State.LongestStreak
	return resp, nil
}
