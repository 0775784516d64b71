package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/focustrack/internal/domain"
	"github.com/alexanderramin/focustrack/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteSessionLog_AppendAndReadAll(t *testing.T) {
	repo := NewSQLiteSessionLog(testutil.NewTestDB(t))
	ctx := context.Background()

	start := time.Unix(1704096000, 0)
	first := domain.NewSessionRecord("Study", start, start.Add(25*time.Minute+59*time.Second))
	second := testutil.NewTestRecord(start.Add(-48*time.Hour), 60, testutil.WithCategory("Work"))
	require.NoError(t, repo.Append(ctx, testutil.TestIdentity, first))
	require.NoError(t, repo.Append(ctx, testutil.TestIdentity, second))

	result, err := repo.ReadAll(ctx, testutil.TestIdentity)
	require.NoError(t, err)
	require.Len(t, result.Records, 2)

	// Append order, not start order.
	assert.Equal(t, "Study", result.Records[0].Category)
	assert.Equal(t, 25, result.Records[0].DurationMinutes)
	assert.Equal(t, start.Unix(), result.Records[0].Start.Unix())
	assert.Equal(t, "Work", result.Records[1].Category)
	assert.Zero(t, result.SkippedCount())
}

func TestSQLiteSessionLog_EmptyForUnknownUser(t *testing.T) {
	repo := NewSQLiteSessionLog(testutil.NewTestDB(t))

	result, err := repo.ReadAll(context.Background(), domain.Identity{Username: "ghost"})
	require.NoError(t, err)
	assert.Empty(t, result.Records)
}

func TestSQLiteSessionLog_ScopesByUser(t *testing.T) {
	repo := NewSQLiteSessionLog(testutil.NewTestDB(t))
	ctx := context.Background()
	start := time.Unix(1704096000, 0)

	require.NoError(t, repo.Append(ctx, domain.Identity{Username: "alice"}, testutil.NewTestRecord(start, 10)))
	require.NoError(t, repo.Append(ctx, domain.Identity{Username: "bob"}, testutil.NewTestRecord(start, 20)))

	result, err := repo.ReadAll(ctx, domain.Identity{Username: "bob"})
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, 20, result.Records[0].DurationMinutes)
}

func TestSQLiteSessionLog_ClampsAnomalies(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteSessionLog(database)
	ctx := context.Background()

	_, err := database.Exec(`INSERT INTO focus_sessions (id, username, category, start_epoch, end_epoch, duration_min, created_at)
		VALUES ('x', 'alice', 'Study', 2000, 1000, -16, '2024-01-01T00:00:00Z')`)
	require.NoError(t, err)

	result, err := repo.ReadAll(ctx, testutil.TestIdentity)
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, 0, result.Records[0].DurationMinutes)
	assert.Equal(t, 1, result.Anomalies)
}

func TestSQLiteSessionLog_ClampsEndBeforeStartWithPositiveDuration(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteSessionLog(database)

	_, err := database.Exec(`INSERT INTO focus_sessions (id, username, category, start_epoch, end_epoch, duration_min, created_at)
		VALUES ('y', 'alice', 'Study', 2000, 1000, 16, '2024-01-01T00:00:00Z')`)
	require.NoError(t, err)

	result, err := repo.ReadAll(context.Background(), testutil.TestIdentity)
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, 0, result.Records[0].DurationMinutes)
	assert.Equal(t, 1, result.Anomalies)
}

func TestSQLiteSessionLog_RejectsUnstorableCategory(t *testing.T) {
	repo := NewSQLiteSessionLog(testutil.NewTestDB(t))

	err := repo.Append(context.Background(), testutil.TestIdentity,
		testutil.NewTestRecord(time.Unix(1704096000, 0), 10, testutil.WithCategory("")))
	assert.ErrorIs(t, err, ErrInvalidCategory)
}

func TestSQLiteSessionLog_AppendFromTagsSource(t *testing.T) {
	repo := NewSQLiteSessionLog(testutil.NewTestDB(t))
	ctx := context.Background()
	start := time.Unix(1704096000, 0)

	require.NoError(t, repo.Append(ctx, testutil.TestIdentity, testutil.NewTestRecord(start, 10)))
	require.NoError(t, repo.AppendFrom(ctx, testutil.TestIdentity, testutil.NewTestRecord(start, 20), SourceImport))
	require.NoError(t, repo.AppendFrom(ctx, testutil.TestIdentity, testutil.NewTestRecord(start, 30), SourceImport))

	live, err := repo.CountBySource(ctx, testutil.TestIdentity, SourceLive)
	require.NoError(t, err)
	imported, err := repo.CountBySource(ctx, testutil.TestIdentity, SourceImport)
	require.NoError(t, err)

	assert.Equal(t, 1, live)
	assert.Equal(t, 2, imported)
}
