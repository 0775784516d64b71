package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/focustrack/internal/contract"
	"github.com/alexanderramin/focustrack/internal/domain"
	"github.com/alexanderramin/focustrack/internal/repository"
)

const timestampLayout = "2006-01-02 15:04:05"

// FormatSessionRecord renders one logged session on a single line.
func FormatSessionRecord(rec domain.SessionRecord, loc *time.Location) string {
	return fmt.Sprintf("Category: %s, Duration: %d minutes, Start Time: %s",
		rec.Category, rec.DurationMinutes, rec.Start.In(loc).Format(timestampLayout))
}

// FormatSessionList renders every record of a log, newest last, followed by
// the lines that could not be parsed.
func FormatSessionList(username string, result *repository.ReadResult, loc *time.Location) string {
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("Sessions for %s", username)))
	b.WriteString("\n")

	if len(result.Records) == 0 {
		b.WriteString(Dim("No focus sessions logged yet."))
		b.WriteString("\n")
	} else {
		rows := make([][]string, 0, len(result.Records))
		total := 0
		for i, rec := range result.Records {
			end := rec.End.In(loc).Format("15:04")
			if rec.IsAnomalous() {
				end = StyleRed.Render(end + " ⚠")
			}
			rows = append(rows, []string{
				Dim(fmt.Sprintf("%d", i+1)),
				rec.Start.In(loc).Format("2006-01-02 15:04"),
				end,
				CategoryColor(rec.Category).Render(rec.Category),
				fmt.Sprintf("%d", rec.DurationMinutes),
			})
			total += rec.DurationMinutes
		}
		b.WriteString(RenderTable([]string{"#", "START", "END", "CATEGORY", "MINUTES"}, rows, AlignRight(0, 4)))
		b.WriteString(Bold(fmt.Sprintf("%s, %s total", Plural(len(result.Records), "session"), FormatMinutes(total))))
		b.WriteString("\n")
	}

	if len(result.Skipped) > 0 {
		b.WriteString("\n")
		b.WriteString(Warning(fmt.Sprintf("%s skipped:", Plural(len(result.Skipped), "line"))))
		b.WriteString("\n")
		rows := make([][]string, 0, len(result.Skipped))
		for _, s := range result.Skipped {
			rows = append(rows, []string{fmt.Sprintf("%d", s.Line), string(s.Reason), Dim(truncate(s.Text, 40))})
		}
		b.WriteString(RenderTable([]string{"LINE", "REASON", "TEXT"}, rows, AlignRight(0)))
	}
	return b.String()
}

// FormatPomodoroEvent renders a plain-text progress line for terminals that
// cannot host the interactive countdown view.
func FormatPomodoroEvent(ev contract.PomodoroEvent, category string) string {
	switch ev.Kind {
	case contract.EventCycleStarted:
		return StyleHeader.Render(fmt.Sprintf("--- Cycle %d/%d ---", ev.Cycle, ev.Cycles)) +
			"\n" + fmt.Sprintf("Focus Time! Category: %s", category)
	case contract.EventFocusTick, contract.EventBreakTick:
		return Dim(fmt.Sprintf("Time remaining: %s", FormatRemaining(ev.Remaining)))
	case contract.EventFocusEnded:
		line := "Focus time ended!"
		if ev.Record != nil {
			line += " " + Dim(fmt.Sprintf("(%d minutes logged)", ev.Record.DurationMinutes))
		}
		return StyleGreen.Render(line)
	case contract.EventBreakStarted:
		return StyleBlue.Render("Break Time!")
	case contract.EventBreakEnded:
		return StyleBlue.Render("Break time ended!")
	case contract.EventCompleted:
		return Success("Pomodoro session completed!")
	default:
		return ""
	}
}

// FormatPomodoroResult summarizes a finished or interrupted run.
func FormatPomodoroResult(plan contract.PomodoroPlan, result *contract.PomodoroResult, interrupted bool) string {
	minutes := 0
	for _, rec := range result.Logged {
		minutes += rec.DurationMinutes
	}
	summary := fmt.Sprintf("%d/%d cycles of %s, %s logged",
		result.CompletedCycles, plan.Cycles, plan.Category, FormatMinutes(minutes))
	if interrupted {
		return Warning("Pomodoro interrupted: " + summary + ". The unfinished focus phase was not logged.")
	}
	return Success(summary)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
