// Package timer runs the blocking countdowns behind manual and pomodoro
// sessions. Every wait can be cut short through its context.
package timer

import (
	"context"
	"time"

	"github.com/alexanderramin/focustrack/internal/calendar"
)

// TickFunc is called before each wait with the time still left.
type TickFunc func(remaining time.Duration)

// Countdown waits total in steps of step, reporting the remaining time before
// each step. It returns ctx.Err() as soon as ctx is done and nil once the full
// duration has elapsed, even if ctx is cancelled after the last wait. A
// non-positive step waits in one go.
func Countdown(ctx context.Context, clock calendar.Clock, total, step time.Duration, onTick TickFunc) error {
	if step <= 0 {
		step = total
	}
	remaining := total
	for remaining > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		if onTick != nil {
			onTick(remaining)
		}
		wait := step
		if wait > remaining {
			wait = remaining
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-clock.After(wait):
		}
		remaining -= wait
	}
	return nil
}
