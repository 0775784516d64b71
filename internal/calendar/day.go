package calendar

import (
	"fmt"
	"time"
)

// DateLayout is the canonical YYYY-MM-DD rendering of a Day.
const DateLayout = "2006-01-02"

// Day is a date in some local timezone. It carries no zone of its own and is
// only meaningful as a grouping key next to the Calendar that produced it.
type Day struct {
	Year  int
	Month time.Month
	Day   int
}

// DayOf returns the calendar fields of t in t's own location.
func DayOf(t time.Time) Day {
	y, m, d := t.Date()
	return Day{Year: y, Month: m, Day: d}
}

// ParseDay parses a YYYY-MM-DD string.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Day{}, fmt.Errorf("parsing day %q: %w", s, err)
	}
	return DayOf(t), nil
}

func (d Day) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// IsZero reports whether d is the zero Day.
func (d Day) IsZero() bool {
	return d == Day{}
}

// Midnight returns 00:00 of d in loc. On a day whose midnight does not exist
// because of a DST jump, time.Date normalizes to the first valid instant.
func (d Day) Midnight(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// AddDays returns the day n calendar days after d (n may be negative).
func (d Day) AddDays(n int) Day {
	return DayOf(d.utc().AddDate(0, 0, n))
}

// Weekday returns the day of the week of d.
func (d Day) Weekday() time.Weekday {
	return d.utc().Weekday()
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or
// after other.
func (d Day) Compare(other Day) int {
	switch {
	case d.Year != other.Year:
		return cmpInt(d.Year, other.Year)
	case d.Month != other.Month:
		return cmpInt(int(d.Month), int(other.Month))
	default:
		return cmpInt(d.Day, other.Day)
	}
}

// Before reports whether d is strictly earlier than other.
func (d Day) Before(other Day) bool {
	return d.Compare(other) < 0
}

// Distance returns b - a in whole calendar days.
func Distance(a, b Day) int {
	return int(b.utc().Sub(a.utc()).Hours() / 24)
}

// utc projects d onto UTC midnight, where every day is exactly 24 hours long.
func (d Day) utc() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
