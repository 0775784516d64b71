package domain

import "time"

// SessionRecord is one logged focus interval. Records are immutable once
// appended to a user's log.
type SessionRecord struct {
	Category        string
	Start           time.Time
	End             time.Time
	DurationMinutes int
}

// NewSessionRecord builds a record with its duration derived from the
// interval. Start and End are truncated to whole seconds, the resolution of
// the persisted log.
func NewSessionRecord(category string, start, end time.Time) SessionRecord {
	start = start.Truncate(time.Second)
	end = end.Truncate(time.Second)
	return SessionRecord{
		Category:        category,
		Start:           start,
		End:             end,
		DurationMinutes: DurationMinutes(start, end),
	}
}

// DurationMinutes returns floor((end-start)/60s), clamped to 0 when end is
// before start.
func DurationMinutes(start, end time.Time) int {
	secs := end.Unix() - start.Unix()
	if secs <= 0 {
		return 0
	}
	return int(secs / 60)
}

// IsAnomalous reports whether the record's interval runs backwards.
func (r SessionRecord) IsAnomalous() bool {
	return r.End.Before(r.Start)
}
