package service

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"
)

// UseCaseEvent captures lightweight execution telemetry for a service use case.
type UseCaseEvent struct {
	Name      string
	Duration  time.Duration
	Success   bool
	Err       error
	Fields    map[string]any
	StartedAt time.Time
}

// UseCaseObserver receives use-case execution events.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// NoopUseCaseObserver ignores all events.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type logUseCaseObserver struct {
	logger *slog.Logger
}

// NewLogUseCaseObserver writes one structured line per use case to w.
// Skipped log lines and anomalies are logged at warn level so a corrupted
// log is visible without failing the command.
func NewLogUseCaseObserver(w io.Writer) UseCaseObserver {
	if w == nil {
		return NoopUseCaseObserver{}
	}
	return &logUseCaseObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *logUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	attrs := make([]any, 0, 6+len(event.Fields)*2)
	attrs = append(attrs,
		"use_case", event.Name,
		"duration_ms", event.Duration.Milliseconds(),
		"success", event.Success,
	)
	keys := make([]string, 0, len(event.Fields))
	for k := range event.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		attrs = append(attrs, k, event.Fields[k])
	}

	switch {
	case event.Err != nil:
		attrs = append(attrs, "error", event.Err.Error())
		o.logger.ErrorContext(ctx, "use_case", attrs...)
	case degraded(event.Fields):
		o.logger.WarnContext(ctx, "use_case", attrs...)
	default:
		o.logger.InfoContext(ctx, "use_case", attrs...)
	}
}

func degraded(fields map[string]any) bool {
	for _, k := range []string{"skipped_lines", "anomalies"} {
		if n, ok := fields[k].(int); ok && n > 0 {
			return true
		}
	}
	for _, k := range []string{"metrics_error", "notify_error"} {
		if msg, ok := fields[k].(string); ok && msg != "" {
			return true
		}
	}
	return false
}

// RecordingObserver keeps every event in memory.
type RecordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (r *RecordingObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// Events returns a copy of the recorded events.
func (r *RecordingObserver) Events() []UseCaseEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]UseCaseEvent(nil), r.events...)
}

// Last returns the most recent event named name.
func (r *RecordingObserver) Last(name string) (UseCaseEvent, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].Name == name {
			return r.events[i], true
		}
	}
	return UseCaseEvent{}, false
}

func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopUseCaseObserver{}
}
