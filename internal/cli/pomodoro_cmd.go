package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/alexanderramin/focustrack/internal/cli/formatter"
	"github.com/alexanderramin/focustrack/internal/contract"
	"github.com/alexanderramin/focustrack/internal/domain"
	"github.com/spf13/cobra"
)

func newPomodoroCmd(app *App, user *string) *cobra.Command {
	defaults := contract.NewPomodoroPlan("")
	var category string
	var focus, brk time.Duration
	var cycles int

	cmd := &cobra.Command{
		Use:   "pomodoro",
		Short: "Run focus/break cycles and log every completed focus phase",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveIdentity(ctx, app, *user)
			if err != nil {
				return err
			}

			plan := contract.PomodoroPlan{Category: category, Focus: focus, Break: brk, Cycles: cycles}
			if category == "" {
				if !app.interactive() {
					return fmt.Errorf("--category is required")
				}
				plan, err = promptPomodoroPlan(plan)
				if err != nil {
					return err
				}
			}
			return runPomodoro(ctx, app, id, plan, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Focus category")
	cmd.Flags().DurationVar(&focus, "focus", defaults.Focus, "Focus phase length")
	cmd.Flags().DurationVar(&brk, "break", defaults.Break, "Break length between cycles")
	cmd.Flags().IntVar(&cycles, "cycles", defaults.Cycles, "Number of focus cycles")

	return cmd
}

func promptPomodoroPlan(base contract.PomodoroPlan) (contract.PomodoroPlan, error) {
	category := base.Category
	focus := strconv.Itoa(int(base.Focus / time.Minute))
	brk := strconv.Itoa(int(base.Break / time.Minute))
	cycles := strconv.Itoa(base.Cycles)
	if err := pomodoroForm(&category, &focus, &brk, &cycles).Run(); err != nil {
		return base, err
	}
	f, b, c := parsePomodoroFields(focus, brk, cycles, base.Focus, base.Break, base.Cycles)
	return contract.PomodoroPlan{Category: category, Focus: f, Break: b, Cycles: c}, nil
}

// runPomodoro picks the countdown view on a terminal and plain progress lines
// otherwise. An interrupted run is reported, not returned as an error.
func runPomodoro(ctx context.Context, app *App, id domain.Identity, plan contract.PomodoroPlan, in io.Reader, out io.Writer) error {
	var (
		result *contract.PomodoroResult
		err    error
	)
	if app.interactive() {
		result, err = runPomodoroView(ctx, app, id, plan, in, out)
	} else {
		result, err = app.Sessions.RunPomodoro(ctx, id, plan, func(ev contract.PomodoroEvent) {
			if line := formatter.FormatPomodoroEvent(ev, plan.Category); line != "" {
				fmt.Fprintln(out, line)
			}
		})
	}

	interrupted := errors.Is(err, context.Canceled)
	if err != nil && !interrupted {
		return err
	}
	if result != nil {
		fmt.Fprintln(out, formatter.FormatPomodoroResult(plan, result, interrupted))
	}
	return nil
}
