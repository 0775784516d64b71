package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/focustrack/internal/calendar"
	"github.com/alexanderramin/focustrack/internal/domain"
	"github.com/alexanderramin/focustrack/internal/repository"
	"github.com/alexanderramin/focustrack/internal/testutil"
)

// monday08 is 2024-01-08 09:00 UTC, a Monday.
var monday08 = time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)

type env struct {
	dir   string
	clock *testutil.FakeClock
	cal   *calendar.Calendar
	log   *repository.FileSessionLog
	obs   *RecordingObserver
}

func newEnv(t *testing.T, now time.Time) *env {
	t.Helper()
	dir := t.TempDir()
	clock := testutil.NewFakeClock(now)
	return &env{
		dir:   dir,
		clock: clock,
		cal:   calendar.New(time.UTC, clock),
		log:   repository.NewFileSessionLog(dir),
		obs:   &RecordingObserver{},
	}
}

func (e *env) seed(t *testing.T, recs ...domain.SessionRecord) {
	t.Helper()
	for _, r := range recs {
		if err := e.log.Append(context.Background(), testutil.TestIdentity, r); err != nil {
			t.Fatalf("seeding log: %v", err)
		}
	}
}

type recordedMetric struct {
	username string
	rec      domain.SessionRecord
	source   string
}

type fakeRecorder struct {
	mu    sync.Mutex
	calls []recordedMetric
	err   error
}

func (f *fakeRecorder) RecordSession(_ context.Context, username string, rec domain.SessionRecord, source string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, recordedMetric{username, rec, source})
	return f.err
}

func (f *fakeRecorder) Close(context.Context) error { return nil }

type failingNotifier struct {
	calls int
	err   error
}

func (f *failingNotifier) Notify(string, string) error {
	f.calls++
	return f.err
}
