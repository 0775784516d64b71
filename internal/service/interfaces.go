package service

import (
	"context"
	"time"

	"github.com/alexanderramin/focustrack/internal/contract"
	"github.com/alexanderramin/focustrack/internal/domain"
	"github.com/alexanderramin/focustrack/internal/repository"
)

type SessionService interface {
	// Begin starts a manual session. The returned handle logs the session
	// when finished.
	Begin(ctx context.Context, id domain.Identity, category string) (*ActiveSession, error)
	LogSession(ctx context.Context, id domain.Identity, category string, start, end time.Time) (domain.SessionRecord, error)
	RunPomodoro(ctx context.Context, id domain.Identity, plan contract.PomodoroPlan, onEvent func(contract.PomodoroEvent)) (*contract.PomodoroResult, error)
	List(ctx context.Context, id domain.Identity) (*repository.ReadResult, error)
}

type UserService interface {
	Register(ctx context.Context, username, password string) (domain.Identity, error)
	Authenticate(ctx context.Context, username, password string) (domain.Identity, error)
	Resolve(ctx context.Context, username string) (domain.Identity, error)
}

type StatsService interface {
	DailySummary(ctx context.Context, req contract.DailySummaryRequest) (*contract.DailySummaryResponse, error)
	WeeklyReport(ctx context.Context, req contract.WeeklyReportRequest) (*contract.WeeklyReportResponse, error)
	Streaks(ctx context.Context, req contract.StreakRequest) (*contract.StreakResponse, error)
}

type ImportService interface {
	ImportLegacyLog(ctx context.Context, id domain.Identity, path string) (*contract.ImportResult, error)
}
