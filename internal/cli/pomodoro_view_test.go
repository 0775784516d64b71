package cli

import (
	"testing"
	"time"

	"github.com/alexanderramin/focustrack/internal/contract"
	"github.com/alexanderramin/focustrack/internal/domain"
	"github.com/alexanderramin/focustrack/internal/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViewDriver(t *testing.T) (*teatest.Driver, *int) {
	t.Helper()
	cancels := 0
	plan := contract.PomodoroPlan{Category: "Study", Focus: 25 * time.Minute, Break: 5 * time.Minute, Cycles: 2}
	d := teatest.New(t, newPomodoroModel(plan, func() { cancels++ }), teatest.WithSize(80, 24))
	d.DrainInit()
	return d, &cancels
}

func event(kind contract.PomodoroEventKind, cycle int, remaining time.Duration) pomodoroEventMsg {
	return pomodoroEventMsg(contract.PomodoroEvent{Kind: kind, Cycle: cycle, Cycles: 2, Remaining: remaining})
}

func TestPomodoroView_FollowsEvents(t *testing.T) {
	d, _ := newViewDriver(t)

	d.SendAll(
		event(contract.EventCycleStarted, 1, 0),
		event(contract.EventFocusTick, 1, 25*time.Minute),
		event(contract.EventFocusTick, 1, 24*time.Minute),
	)
	d.ViewContains("Cycle 1/2")
	d.ViewContains("Focus")
	d.ViewContains("24:00")
	d.ViewContains("q stop")

	m := d.Model.(pomodoroModel)
	assert.InDelta(t, 0.04, m.elapsed(), 0.001)

	start := time.Date(2024, 1, 8, 9, 0, 0, 0, time.UTC)
	rec := domain.NewSessionRecord("Study", start, start.Add(25*time.Minute))
	d.Send(pomodoroEventMsg(contract.PomodoroEvent{Kind: contract.EventFocusEnded, Cycle: 1, Cycles: 2, Record: &rec}))
	d.ViewContains("cycle 1: 25 minutes logged")

	d.SendAll(
		event(contract.EventBreakStarted, 1, 0),
		event(contract.EventBreakTick, 1, 5*time.Minute),
	)
	d.ViewContains("Break")
	d.ViewContains("05:00")
	assert.Zero(t, d.Model.(pomodoroModel).elapsed())
}

func TestPomodoroView_StopCancelsAndWaitsForResult(t *testing.T) {
	d, cancels := newViewDriver(t)
	d.Send(event(contract.EventCycleStarted, 1, 0))

	d.PressKey('q')
	assert.Equal(t, 1, *cancels)
	assert.False(t, d.Quitting, "view stays up until the run returns")
	d.ViewContains("Stopping")

	d.PressEsc()
	assert.Equal(t, 1, *cancels, "stop only cancels once")

	d.Send(pomodoroDoneMsg{result: &contract.PomodoroResult{}})
	require.True(t, d.Quitting)
	assert.Empty(t, d.View())
}

func TestPomodoroView_CtrlCStops(t *testing.T) {
	d, cancels := newViewDriver(t)

	d.PressCtrlC()
	assert.Equal(t, 1, *cancels)
}

func TestPomodoroView_OtherKeysIgnored(t *testing.T) {
	d, cancels := newViewDriver(t)

	d.PressKey('x')
	assert.Zero(t, *cancels)
	assert.False(t, d.Quitting)
}

func TestPomodoroView_CompletionQuits(t *testing.T) {
	d, cancels := newViewDriver(t)
	d.SendAll(
		event(contract.EventCycleStarted, 2, 0),
		event(contract.EventCompleted, 2, 0),
		pomodoroDoneMsg{result: &contract.PomodoroResult{CompletedCycles: 2}},
	)

	assert.True(t, d.Quitting)
	assert.Zero(t, *cancels)
}
