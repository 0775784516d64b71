package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/alexanderramin/focustrack/internal/contract"
	"github.com/alexanderramin/focustrack/internal/db"
	"github.com/alexanderramin/focustrack/internal/domain"
	"github.com/alexanderramin/focustrack/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

// NewImportService creates an ImportService that writes into the SQLite
// session store through uow.
func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

// ImportLegacyLog copies every readable record of a focus_log_<user>.txt file
// into the database in one transaction. Malformed lines are skipped and
// counted; any insert failure rolls the whole import back.
func (s *importService) ImportLegacyLog(ctx context.Context, id domain.Identity, path string) (result *contract.ImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"user": id.Username, "path": path}
	defer func() { observe(ctx, s.observer, "import-legacy-log", startedAt, fields, err) }()

	if err = requireIdentity(id); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening legacy log: %w", err)
	}
	defer f.Close()

	parsed, err := repository.ParseLog(f)
	if err != nil {
		return nil, fmt.Errorf("parsing legacy log: %w", err)
	}
	fields["skipped_lines"] = parsed.SkippedCount()

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		sessions := repository.NewSQLiteSessionLog(tx)
		for i, rec := range parsed.Records {
			if err := sessions.AppendFrom(ctx, id, rec, repository.SourceImport); err != nil {
				return fmt.Errorf("importing record %d: %w", i+1, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields["imported"] = len(parsed.Records)
	return &contract.ImportResult{
		Imported:  len(parsed.Records),
		Skipped:   parsed.SkippedCount(),
		Anomalies: parsed.Anomalies,
	}, nil
}
