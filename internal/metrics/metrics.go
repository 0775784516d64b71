// Package metrics exports focus-session metrics to an OTEL collector.
package metrics

import (
	"context"

	"github.com/alexanderramin/focustrack/internal/domain"
)

// Recorder receives one call per logged focus session.
type Recorder interface {
	RecordSession(ctx context.Context, username string, rec domain.SessionRecord, source string) error
	Close(ctx context.Context) error
}

// Session sources.
const (
	SourceManual   = "manual"
	SourcePomodoro = "pomodoro"
	SourceBackfill = "backfill"
	SourceImport   = "import"
)

// NoOpRecorder discards all metrics.
type NoOpRecorder struct{}

// NewNoOpRecorder returns a recorder for when export is disabled.
func NewNoOpRecorder() *NoOpRecorder {
	return &NoOpRecorder{}
}

func (NoOpRecorder) RecordSession(context.Context, string, domain.SessionRecord, string) error {
	return nil
}

func (NoOpRecorder) Close(context.Context) error { return nil }
