package stats

import (
	"sort"

	"github.com/alexanderramin/focustrack/internal/calendar"
	"github.com/alexanderramin/focustrack/internal/domain"
)

// ActiveDays returns the distinct local days on which a session started,
// ascending.
func ActiveDays(cal *calendar.Calendar, records []domain.SessionRecord) []calendar.Day {
	seen := make(map[calendar.Day]struct{}, len(records))
	days := make([]calendar.Day, 0, len(records))
	for _, r := range records {
		d := cal.ToLocalDay(r.Start)
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// ComputeStreaks walks the active days in order. CurrentStreak is the run
// ending on the last active day, even when that day is in the past; callers
// check HasSessionToday to tell a live streak from a stale one.
func ComputeStreaks(cal *calendar.Calendar, records []domain.SessionRecord, today calendar.Day) domain.StreakState {
	days := ActiveDays(cal, records)
	if len(days) == 0 {
		return domain.StreakState{}
	}

	current, longest := 1, 1
	for i := 1; i < len(days); i++ {
		if cal.DayDistance(days[i-1], days[i]) == 1 {
			current++
		} else {
			current = 1
		}
		if current > longest {
			longest = current
		}
	}

	return domain.StreakState{
		CurrentStreak:   current,
		LongestStreak:   longest,
		HasSessionToday: containsDay(days, today),
	}
}

// LastActiveDay returns the most recent active day, or false if there is none.
func LastActiveDay(cal *calendar.Calendar, records []domain.SessionRecord) (calendar.Day, bool) {
	days := ActiveDays(cal, records)
	if len(days) == 0 {
		return calendar.Day{}, false
	}
	return days[len(days)-1], true
}

func containsDay(sorted []calendar.Day, d calendar.Day) bool {
	i := sort.Search(len(sorted), func(i int) bool { return !sorted[i].Before(d) })
	return i < len(sorted) && sorted[i] == d
}
