package testutil

import (
	"time"

	"github.com/alexanderramin/focustrack/internal/domain"
)

// Record options
type RecordOption func(*domain.SessionRecord)

// WithCategory overrides the default "Study" category.
func WithCategory(c string) RecordOption {
	return func(r *domain.SessionRecord) {
		r.Category = c
	}
}

// WithEnd sets End explicitly and re-derives the duration.
func WithEnd(end time.Time) RecordOption {
	return func(r *domain.SessionRecord) {
		r.End = end
		r.DurationMinutes = domain.DurationMinutes(r.Start, end)
	}
}

// WithStoredDuration overrides the duration without touching End, mimicking
// a hand-edited log line.
func WithStoredDuration(m int) RecordOption {
	return func(r *domain.SessionRecord) {
		r.DurationMinutes = m
	}
}

// NewTestRecord builds a record that starts at start and lasts minutes.
func NewTestRecord(start time.Time, minutes int, opts ...RecordOption) domain.SessionRecord {
	start = start.Truncate(time.Second)
	r := domain.SessionRecord{
		Category:        "Study",
		Start:           start,
		End:             start.Add(time.Duration(minutes) * time.Minute),
		DurationMinutes: minutes,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// At returns hh:mm on the given date in loc.
func At(loc *time.Location, year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, loc)
}

// TestIdentity is the user most tests operate as.
var TestIdentity = domain.Identity{Username: "alice"}
