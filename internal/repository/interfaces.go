package repository

import (
	"context"

	"github.com/alexanderramin/focustrack/internal/domain"
)

// SessionLog is a per-user, append-only store of session records.
type SessionLog interface {
	// Append durably writes one record to the user's log.
	Append(ctx context.Context, id domain.Identity, rec domain.SessionRecord) error
	// ReadAll returns every readable record in append order. A log that was
	// never created reads as empty.
	ReadAll(ctx context.Context, id domain.Identity) (*ReadResult, error)
}

// UserRepo is the credential store.
type UserRepo interface {
	Create(ctx context.Context, u *domain.User) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}

// ReportWriter persists the latest weekly report snapshot for a user,
// replacing any previous one.
type ReportWriter interface {
	Write(ctx context.Context, id domain.Identity, report domain.WeeklyReport) (string, error)
}

// ReadResult is the outcome of reading a session log.
type ReadResult struct {
	Records []domain.SessionRecord
	Skipped []SkippedLine
	// Anomalies counts records whose interval ran backwards or whose stored
	// duration was negative. Their duration is clamped to 0.
	Anomalies int
}

// SkippedCount returns the number of malformed lines dropped during the read.
func (r *ReadResult) SkippedCount() int {
	return len(r.Skipped)
}

// SkippedLine describes one malformed log line.
type SkippedLine struct {
	Line   int
	Reason SkipReason
	Text   string
}
