package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/focustrack/internal/db"
	"github.com/alexanderramin/focustrack/internal/domain"
	"github.com/google/uuid"
)

// SQLiteSessionLog implements SessionLog on the focus_sessions table.
// Insertion order is preserved through the autoincrement seq column.
type SQLiteSessionLog struct {
	db db.DBTX
}

// NewSQLiteSessionLog creates a SQLiteSessionLog. Pass a *sql.Tx to scope it
// to a transaction.
func NewSQLiteSessionLog(db db.DBTX) *SQLiteSessionLog {
	return &SQLiteSessionLog{db: db}
}

// Row sources stored in focus_sessions.source.
const (
	SourceLive   = "live"
	SourceImport = "import"
)

func (r *SQLiteSessionLog) Append(ctx context.Context, id domain.Identity, rec domain.SessionRecord) error {
	return r.AppendFrom(ctx, id, rec, SourceLive)
}

// AppendFrom inserts rec tagged with where it came from.
func (r *SQLiteSessionLog) AppendFrom(ctx context.Context, id domain.Identity, rec domain.SessionRecord, source string) error {
	if err := requireIdentity(id); err != nil {
		return err
	}
	if err := ValidateCategory(rec.Category); err != nil {
		return err
	}
	query := `INSERT INTO focus_sessions (id, username, category, start_epoch, end_epoch, duration_min, source, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		uuid.New().String(),
		id.Username,
		rec.Category,
		rec.Start.Unix(),
		rec.End.Unix(),
		rec.DurationMinutes,
		source,
		nowUTC(),
	)
	if err != nil {
		return fmt.Errorf("inserting session record: %w", err)
	}
	return nil
}

func (r *SQLiteSessionLog) ReadAll(ctx context.Context, id domain.Identity) (*ReadResult, error) {
	if err := requireIdentity(id); err != nil {
		return nil, err
	}
	query := `SELECT category, start_epoch, end_epoch, duration_min
		FROM focus_sessions WHERE username = ? ORDER BY seq`
	rows, err := r.db.QueryContext(ctx, query, id.Username)
	if err != nil {
		return nil, fmt.Errorf("listing session records: %w", err)
	}
	defer rows.Close()
	return r.scanRecords(rows)
}

// CountBySource returns how many of the user's rows carry the given source.
func (r *SQLiteSessionLog) CountBySource(ctx context.Context, id domain.Identity, source string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM focus_sessions WHERE username = ? AND source = ?`,
		id.Username, source,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting session records: %w", err)
	}
	return n, nil
}

// scanRecords scans rows into a ReadResult, clamping anomalous durations the
// same way the file parser does.
func (r *SQLiteSessionLog) scanRecords(rows *sql.Rows) (*ReadResult, error) {
	result := &ReadResult{}
	for rows.Next() {
		var rec domain.SessionRecord
		var start, end int64
		if err := rows.Scan(&rec.Category, &start, &end, &rec.DurationMinutes); err != nil {
			return nil, fmt.Errorf("scanning session row: %w", err)
		}
		rec.Start = time.Unix(start, 0)
		rec.End = time.Unix(end, 0)
		if end < start || rec.DurationMinutes < 0 {
			result.Anomalies++
			rec.DurationMinutes = 0
		}
		result.Records = append(result.Records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating session rows: %w", err)
	}
	return result, nil
}
