package service

import (
	"context"
	"time"

	"github.com/alexanderramin/focustrack/internal/domain"
	"github.com/alexanderramin/focustrack/internal/repository"
)

// observe reports one finished use case. Call it from a defer so err holds
// the named return value.
func observe(ctx context.Context, obs UseCaseObserver, name string, startedAt time.Time, fields map[string]any, err error) {
	obs.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}

func requireIdentity(id domain.Identity) error {
	if id.Username == "" {
		return repository.ErrMissingIdentity
	}
	return nil
}

// readLog loads a user's records and records parse counters on fields.
func readLog(ctx context.Context, log repository.SessionLog, id domain.Identity, fields map[string]any) (*repository.ReadResult, error) {
	result, err := log.ReadAll(ctx, id)
	if err != nil {
		return nil, err
	}
	fields["records"] = len(result.Records)
	fields["skipped_lines"] = result.SkippedCount()
	if result.Anomalies > 0 {
		fields["anomalies"] = result.Anomalies
	}
	return result, nil
}
