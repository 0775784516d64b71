package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/alexanderramin/focustrack/internal/calendar"
	"github.com/alexanderramin/focustrack/internal/contract"
	"github.com/alexanderramin/focustrack/internal/domain"
	"github.com/alexanderramin/focustrack/internal/metrics"
	"github.com/alexanderramin/focustrack/internal/notify"
	"github.com/alexanderramin/focustrack/internal/repository"
	"github.com/alexanderramin/focustrack/internal/timer"
)

// SessionOptions holds the optional collaborators of the session service.
// Zero values fall back to no-ops and a one-minute tick.
type SessionOptions struct {
	Tick     time.Duration
	Metrics  metrics.Recorder
	Notifier notify.Notifier
}

type sessionService struct {
	log      repository.SessionLog
	cal      *calendar.Calendar
	tick     time.Duration
	metrics  metrics.Recorder
	notifier notify.Notifier
	observer UseCaseObserver
}

func NewSessionService(
	log repository.SessionLog,
	cal *calendar.Calendar,
	opts SessionOptions,
	observers ...UseCaseObserver,
) SessionService {
	if opts.Tick <= 0 {
		opts.Tick = time.Minute
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.NewNoOpRecorder()
	}
	if opts.Notifier == nil {
		opts.Notifier = notify.NoOp{}
	}
	return &sessionService{
		log:      log,
		cal:      cal,
		tick:     opts.Tick,
		metrics:  opts.Metrics,
		notifier: opts.Notifier,
		observer: useCaseObserverOrNoop(observers),
	}
}

// ActiveSession is a manual session that has started but not been logged.
type ActiveSession struct {
	svc      *sessionService
	id       domain.Identity
	category string
	start    time.Time

	mu       sync.Mutex
	finished bool
}

func (a *ActiveSession) Category() string { return a.category }

func (a *ActiveSession) Start() time.Time { return a.start }

// Finish stamps the end instant and appends the session to the user's log.
// A session can be finished once.
func (a *ActiveSession) Finish(ctx context.Context) (domain.SessionRecord, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.finished {
		return domain.SessionRecord{}, ErrSessionFinished
	}
	rec := domain.NewSessionRecord(a.category, a.start, a.svc.cal.Now())
	if err := a.svc.record(ctx, "finish-session", a.id, rec, metrics.SourceManual); err != nil {
		return domain.SessionRecord{}, err
	}
	a.finished = true
	return rec, nil
}

func (s *sessionService) Begin(ctx context.Context, id domain.Identity, category string) (*ActiveSession, error) {
	if err := requireIdentity(id); err != nil {
		return nil, err
	}
	category = strings.TrimSpace(category)
	if err := repository.ValidateCategory(category); err != nil {
		return nil, err
	}
	return &ActiveSession{
		svc:      s,
		id:       id,
		category: category,
		start:    s.cal.Now(),
	}, nil
}

func (s *sessionService) LogSession(ctx context.Context, id domain.Identity, category string, start, end time.Time) (domain.SessionRecord, error) {
	rec := domain.NewSessionRecord(strings.TrimSpace(category), start, end)
	if err := s.record(ctx, "log-session", id, rec, metrics.SourceBackfill); err != nil {
		return domain.SessionRecord{}, err
	}
	return rec, nil
}

// record appends rec and reports it to metrics. Metric failures never fail
// the use case.
func (s *sessionService) record(ctx context.Context, useCase string, id domain.Identity, rec domain.SessionRecord, source string) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"user":         id.Username,
		"category":     rec.Category,
		"duration_min": rec.DurationMinutes,
		"source":       source,
	}
	defer func() { observe(ctx, s.observer, useCase, startedAt, fields, err) }()

	if err = requireIdentity(id); err != nil {
		return err
	}
	if err = s.log.Append(ctx, id, rec); err != nil {
		return fmt.Errorf("logging session: %w", err)
	}
	if mErr := s.metrics.RecordSession(ctx, id.Username, rec, source); mErr != nil {
		fields["metrics_error"] = mErr.Error()
	}
	return nil
}

func validatePlan(plan contract.PomodoroPlan) error {
	switch {
	case plan.Cycles < 1:
		return fmt.Errorf("cycles must be at least 1, got %d: %w", plan.Cycles, ErrInvalidPlan)
	case plan.Focus <= 0:
		return fmt.Errorf("focus duration must be positive, got %s: %w", plan.Focus, ErrInvalidPlan)
	case plan.Break < 0:
		return fmt.Errorf("break duration must not be negative, got %s: %w", plan.Break, ErrInvalidPlan)
	}
	return repository.ValidateCategory(plan.Category)
}

// RunPomodoro runs plan.Cycles focus phases separated by breaks, logging each
// completed focus phase. When ctx is cancelled the phase in progress is
// dropped, earlier cycles stay logged, and ctx.Err() is returned with the
// partial result.
func (s *sessionService) RunPomodoro(ctx context.Context, id domain.Identity, plan contract.PomodoroPlan, onEvent func(contract.PomodoroEvent)) (result *contract.PomodoroResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"user":     id.Username,
		"category": plan.Category,
		"cycles":   plan.Cycles,
	}
	result = &contract.PomodoroResult{}
	defer func() {
		fields["completed_cycles"] = result.CompletedCycles
		observe(ctx, s.observer, "pomodoro", startedAt, fields, err)
	}()

	if err = requireIdentity(id); err != nil {
		return result, err
	}
	plan.Category = strings.TrimSpace(plan.Category)
	if err = validatePlan(plan); err != nil {
		return result, err
	}

	emit := func(ev contract.PomodoroEvent) {
		ev.Cycles = plan.Cycles
		if onEvent != nil {
			onEvent(ev)
		}
	}
	clock := s.cal.Clock()

	for cycle := 1; cycle <= plan.Cycles; cycle++ {
		emit(contract.PomodoroEvent{Kind: contract.EventCycleStarted, Cycle: cycle})

		start := clock.Now()
		err = timer.Countdown(ctx, clock, plan.Focus, s.tick, func(remaining time.Duration) {
			emit(contract.PomodoroEvent{Kind: contract.EventFocusTick, Cycle: cycle, Remaining: remaining})
		})
		if err != nil {
			return result, err
		}

		rec := domain.NewSessionRecord(plan.Category, start, clock.Now())
		if err = s.record(ctx, "log-pomodoro-cycle", id, rec, metrics.SourcePomodoro); err != nil {
			return result, err
		}
		result.CompletedCycles++
		result.Logged = append(result.Logged, rec)
		emit(contract.PomodoroEvent{Kind: contract.EventFocusEnded, Cycle: cycle, Record: &rec})
		s.notify(fields, "Focus time ended!", fmt.Sprintf("Cycle %d/%d of %s logged.", cycle, plan.Cycles, plan.Category))

		if cycle == plan.Cycles || plan.Break == 0 {
			continue
		}
		emit(contract.PomodoroEvent{Kind: contract.EventBreakStarted, Cycle: cycle})
		err = timer.Countdown(ctx, clock, plan.Break, s.tick, func(remaining time.Duration) {
			emit(contract.PomodoroEvent{Kind: contract.EventBreakTick, Cycle: cycle, Remaining: remaining})
		})
		if err != nil {
			return result, err
		}
		emit(contract.PomodoroEvent{Kind: contract.EventBreakEnded, Cycle: cycle})
		s.notify(fields, "Break time ended!", fmt.Sprintf("Cycle %d/%d of %s starts now.", cycle+1, plan.Cycles, plan.Category))
	}

	emit(contract.PomodoroEvent{Kind: contract.EventCompleted, Cycle: plan.Cycles})
	return result, nil
}

// notify reports failures through fields; a missed notification never stops
// the run.
func (s *sessionService) notify(fields map[string]any, title, message string) {
	if err := s.notifier.Notify(title, message); err != nil {
		fields["notify_error"] = err.Error()
	}
}

func (s *sessionService) List(ctx context.Context, id domain.Identity) (result *repository.ReadResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"user": id.Username}
	defer func() { observe(ctx, s.observer, "list-sessions", startedAt, fields, err) }()

	if err = requireIdentity(id); err != nil {
		return nil, err
	}
	result, err = readLog(ctx, s.log, id, fields)
	if err != nil {
		return nil, fmt.Errorf("reading session log: %w", err)
	}
	return result, nil
}
