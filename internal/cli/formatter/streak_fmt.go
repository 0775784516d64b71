package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/focustrack/internal/contract"
)

// FormatStreaks renders current and longest streaks plus a reminder when
// nothing has been logged today.
func FormatStreaks(username string, resp *contract.StreakResponse) string {
	title := fmt.Sprintf("Focus streaks · %s", username)
	if !resp.HasHistory {
		return RenderBox(title, Dim("No sessions recorded to track streaks."))
	}

	current := resp.State.CurrentStreak
	longest := resp.State.LongestStreak

	var b strings.Builder
	fmt.Fprintf(&b, "Current Streak: %s\n",
		StreakColor(current).Render(Plural(current, "consecutive day")))
	fmt.Fprintf(&b, "Longest Streak: %s\n",
		StreakColor(longest).Render(Plural(longest, "consecutive day")))
	fmt.Fprintf(&b, "%s", Dim(fmt.Sprintf("Last session: %s", RelativeDay(resp.LastActiveDay, resp.Today))))

	switch {
	case resp.Stale:
		b.WriteString("\n\n")
		b.WriteString(Warning(fmt.Sprintf("This streak ended on %s. Log a session today to start a new one.", resp.LastActiveDay)))
	case resp.AtRisk():
		b.WriteString("\n\n")
		b.WriteString(Warning("No session recorded today. Your current streak might reset tomorrow if you don't log a session."))
	}
	if resp.SkippedLines > 0 {
		b.WriteString("\n\n")
		b.WriteString(readNotes(resp.SkippedLines, 0))
	}
	return RenderBox(title, b.String())
}
