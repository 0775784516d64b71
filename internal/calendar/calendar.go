// Package calendar converts instants to local calendar days and back.
//
// Every day-boundary decision in focustrack goes through a Calendar so that
// aggregation, streaks and weekly windows agree on the same timezone.
package calendar

import (
	"time"
)

// Clock is the source of "now" and of timed waits.
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

// SystemClock reads the real wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time                         { return time.Now() }
func (SystemClock) After(d time.Duration) <-chan time.Time { return time.After(d) }

// Calendar maps instants to Days in a fixed location.
type Calendar struct {
	loc   *time.Location
	clock Clock
}

// New creates a Calendar. A nil location means the process local zone and a
// nil clock means the system clock.
func New(loc *time.Location, clock Clock) *Calendar {
	if loc == nil {
		loc = time.Local
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &Calendar{loc: loc, clock: clock}
}

// Location returns the zone used for day boundaries.
func (c *Calendar) Location() *time.Location {
	return c.loc
}

// Clock returns the underlying clock.
func (c *Calendar) Clock() Clock {
	return c.clock
}

// Now returns the current instant in the calendar's location.
func (c *Calendar) Now() time.Time {
	return c.clock.Now().In(c.loc)
}

// Today returns the current local day.
func (c *Calendar) Today() Day {
	return c.ToLocalDay(c.clock.Now())
}

// ToLocalDay returns the local calendar day containing t.
func (c *Calendar) ToLocalDay(t time.Time) Day {
	return DayOf(t.In(c.loc))
}

// DayDistance returns d2 - d1 in calendar days. It compares calendar fields,
// so a 23- or 25-hour DST day still counts as one.
func (c *Calendar) DayDistance(d1, d2 Day) int {
	return Distance(d1, d2)
}

// StartOfWeek returns local midnight of the most recent Monday on or before
// today. On a Sunday that is six days back.
func (c *Calendar) StartOfWeek(today Day) time.Time {
	return today.AddDays(-daysSinceMonday(today.Weekday())).Midnight(c.loc)
}

// daysSinceMonday converts Go's Sunday=0 weekday to a Monday=0 offset.
func daysSinceMonday(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}
