package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/focustrack/internal/calendar"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// FormatMinutes converts raw minutes into human-friendly format.
func FormatMinutes(min int) string {
	if min <= 0 {
		return "0m"
	}
	h := min / 60
	m := min % 60
	if h > 0 && m > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	if h > 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dm", m)
}

// FormatRemaining renders a countdown as MM:SS, or H:MM:SS past an hour.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	s := int(d % time.Minute / time.Second)
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// RelativeDay labels day relative to today.
func RelativeDay(day, today calendar.Day) string {
	switch diff := calendar.Distance(day, today); {
	case diff == 0:
		return "Today"
	case diff == 1:
		return "Yesterday"
	case diff == -1:
		return "Tomorrow"
	case diff > 1 && diff < 7:
		return fmt.Sprintf("%d days ago", diff)
	default:
		return day.String()
	}
}

// DayLabel renders a day as "Mon 2024-01-08".
func DayLabel(day calendar.Day) string {
	return day.Weekday().String()[:3] + " " + day.String()
}

// Plural appends "s" to unit unless n is 1.
func Plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
