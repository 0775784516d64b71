package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alexanderramin/focustrack/internal/cli/formatter"
	"github.com/alexanderramin/focustrack/internal/contract"
	"github.com/alexanderramin/focustrack/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

type pomodoroEventMsg contract.PomodoroEvent

type pomodoroDoneMsg struct {
	result *contract.PomodoroResult
	err    error
}

type pomodoroKeyMap struct {
	Stop key.Binding
}

func defaultPomodoroKeys() pomodoroKeyMap {
	return pomodoroKeyMap{
		Stop: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "stop"),
		),
	}
}

const maxBarWidth = 48

// pomodoroModel renders events from a running pomodoro. It never ends the
// run itself: stopping cancels the context and waits for the done message.
type pomodoroModel struct {
	plan   contract.PomodoroPlan
	cancel context.CancelFunc
	keys   pomodoroKeyMap
	bar    progress.Model

	cycle      int
	onBreak    bool
	phaseTotal time.Duration
	remaining  time.Duration
	logged     []domain.SessionRecord

	stopping bool
	done     bool
}

func newPomodoroModel(plan contract.PomodoroPlan, cancel context.CancelFunc) pomodoroModel {
	return pomodoroModel{
		plan:   plan,
		cancel: cancel,
		keys:   defaultPomodoroKeys(),
		bar: progress.New(
			progress.WithSolidFill(string(formatter.ColorGreen)),
			progress.WithWidth(maxBarWidth),
		),
	}
}

func (m pomodoroModel) Init() tea.Cmd { return nil }

func (m pomodoroModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.bar.Width = max(min(msg.Width-16, maxBarWidth), 10)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Stop) && !m.stopping {
			m.stopping = true
			m.cancel()
		}
		return m, nil

	case pomodoroEventMsg:
		m.apply(contract.PomodoroEvent(msg))
		return m, nil

	case pomodoroDoneMsg:
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *pomodoroModel) apply(ev contract.PomodoroEvent) {
	switch ev.Kind {
	case contract.EventCycleStarted:
		m.cycle = ev.Cycle
		m.onBreak = false
		m.phaseTotal = m.plan.Focus
		m.remaining = m.plan.Focus
	case contract.EventBreakStarted:
		m.onBreak = true
		m.phaseTotal = m.plan.Break
		m.remaining = m.plan.Break
	case contract.EventFocusTick, contract.EventBreakTick:
		m.remaining = ev.Remaining
	case contract.EventFocusEnded:
		m.remaining = 0
		if ev.Record != nil {
			m.logged = append(m.logged, *ev.Record)
		}
	case contract.EventBreakEnded, contract.EventCompleted:
		m.remaining = 0
	}
}

// elapsed is the finished share of the current phase.
func (m pomodoroModel) elapsed() float64 {
	if m.phaseTotal <= 0 {
		return 0
	}
	return 1 - float64(m.remaining)/float64(m.phaseTotal)
}

func (m pomodoroModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	phase := formatter.StyleGreen.Render("Focus")
	if m.onBreak {
		phase = formatter.StyleBlue.Render("Break")
	}
	fmt.Fprintf(&b, "Cycle %d/%d · %s · %s\n\n", m.cycle, m.plan.Cycles, phase,
		formatter.CategoryColor(m.plan.Category).Render(m.plan.Category))
	fmt.Fprintf(&b, "%s  %s\n", m.bar.ViewAs(m.elapsed()), formatter.FormatRemaining(m.remaining))

	if len(m.logged) > 0 {
		b.WriteString("\n")
		for i, rec := range m.logged {
			fmt.Fprintf(&b, "%s\n", formatter.Dim(fmt.Sprintf("cycle %d: %d minutes logged", i+1, rec.DurationMinutes)))
		}
	}

	b.WriteString("\n")
	if m.stopping {
		b.WriteString(formatter.Warning("Stopping…"))
	} else {
		b.WriteString(formatter.Dim(m.keys.Stop.Help().Key + " " + m.keys.Stop.Help().Desc))
	}
	return formatter.RenderBox("Pomodoro", b.String())
}

// runPomodoroView runs the pomodoro in a goroutine and forwards its events to
// the countdown view.
func runPomodoroView(ctx context.Context, app *App, id domain.Identity, plan contract.PomodoroPlan, in io.Reader, out io.Writer) (*contract.PomodoroResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(newPomodoroModel(plan, cancel), tea.WithInput(in), tea.WithOutput(out))

	done := make(chan pomodoroDoneMsg, 1)
	go func() {
		result, err := app.Sessions.RunPomodoro(ctx, id, plan, func(ev contract.PomodoroEvent) {
			p.Send(pomodoroEventMsg(ev))
		})
		msg := pomodoroDoneMsg{result: result, err: err}
		done <- msg
		p.Send(msg)
	}()

	_, runErr := p.Run()
	cancel()
	msg := <-done
	if msg.err == nil && runErr != nil {
		return msg.result, fmt.Errorf("running countdown view: %w", runErr)
	}
	return msg.result, msg.err
}
