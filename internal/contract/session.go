package contract

import (
	"time"

	"github.com/alexanderramin/focustrack/internal/domain"
)

// PomodoroPlan configures a run of focus/break cycles.
type PomodoroPlan struct {
	Category string
	Focus    time.Duration
	Break    time.Duration
	Cycles   int
}

func NewPomodoroPlan(category string) PomodoroPlan {
	return PomodoroPlan{
		Category: category,
		Focus:    25 * time.Minute,
		Break:    5 * time.Minute,
		Cycles:   4,
	}
}

// PomodoroEventKind identifies a step of a pomodoro run.
type PomodoroEventKind string

const (
	EventCycleStarted PomodoroEventKind = "cycle_started"
	EventFocusTick    PomodoroEventKind = "focus_tick"
	EventFocusEnded   PomodoroEventKind = "focus_ended"
	EventBreakStarted PomodoroEventKind = "break_started"
	EventBreakTick    PomodoroEventKind = "break_tick"
	EventBreakEnded   PomodoroEventKind = "break_ended"
	EventCompleted    PomodoroEventKind = "completed"
)

// PomodoroEvent is reported to the caller as a run progresses.
type PomodoroEvent struct {
	Kind   PomodoroEventKind
	Cycle  int
	Cycles int
	// Remaining is set on tick events.
	Remaining time.Duration
	// Record is set on EventFocusEnded.
	Record *domain.SessionRecord
}

// PomodoroResult summarizes a run, including an interrupted one.
type PomodoroResult struct {
	CompletedCycles int
	Logged          []domain.SessionRecord
}

// ImportResult holds the outcome of a legacy log import.
type ImportResult struct {
	Imported  int
	Skipped   int
	Anomalies int
}
