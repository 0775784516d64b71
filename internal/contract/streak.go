package contract

import (
	"github.com/alexanderramin/focustrack/internal/calendar"
	"github.com/alexanderramin/focustrack/internal/domain"
)

type StreakRequest struct {
	Identity domain.Identity
	// Today defaults to the calendar's current day when nil.
	Today *calendar.Day
}

func NewStreakRequest(id domain.Identity) StreakRequest {
	return StreakRequest{Identity: id}
}

type StreakResponse struct {
	State domain.StreakState
	Today calendar.Day
	// LastActiveDay is zero when HasHistory is false.
	LastActiveDay calendar.Day
	HasHistory    bool
	// Stale is true when the last active day is before yesterday, so
	// CurrentStreak describes a run that has already ended.
	Stale        bool
	SkippedLines int
}

// AtRisk reports whether the current streak ends unless a session is logged
// today.
func (r *StreakResponse) AtRisk() bool {
	return r.HasHistory && !r.State.HasSessionToday
}
