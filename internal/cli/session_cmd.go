package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/alexanderramin/focustrack/internal/cli/formatter"
	"github.com/alexanderramin/focustrack/internal/domain"
	"github.com/spf13/cobra"
)

func newStartCmd(app *App, user *string) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a focus session and end it with ENTER",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveIdentity(ctx, app, *user)
			if err != nil {
				return err
			}
			if err := promptCategory(app, &category); err != nil {
				return err
			}
			return runManualSession(ctx, app, id, category, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Focus category (e.g. Study, Work, Reading)")

	return cmd
}

// promptCategory fills an empty category from a form when interactive.
func promptCategory(app *App, category *string) error {
	if strings.TrimSpace(*category) != "" {
		return nil
	}
	if !app.interactive() {
		return fmt.Errorf("--category is required")
	}
	return categoryForm(category).Run()
}

// runManualSession blocks until a line is read from in or ctx is cancelled.
// A cancelled session is abandoned without logging.
func runManualSession(ctx context.Context, app *App, id domain.Identity, category string, in io.Reader, out io.Writer) error {
	sess, err := app.Sessions.Begin(ctx, id, category)
	if err != nil {
		return err
	}

	loc := app.Calendar.Location()
	fmt.Fprintf(out, "Session started at %s. Category: %s\n",
		sess.Start().In(loc).Format("15:04:05"), formatter.CategoryColor(sess.Category()).Render(sess.Category()))
	fmt.Fprintln(out, formatter.Dim("Press ENTER to end the session."))

	enter := make(chan error, 1)
	go func() {
		_, err := bufio.NewReader(in).ReadString('\n')
		enter <- err
	}()

	select {
	case <-ctx.Done():
		fmt.Fprintln(out, formatter.Warning("Session abandoned. Nothing was logged."))
		return nil
	case err := <-enter:
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("reading input: %w", err)
		}
	}

	rec, err := sess.Finish(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "Session ended. Summary:")
	fmt.Fprintln(out, formatter.FormatSessionRecord(rec, loc))
	return nil
}

func newLogCmd(app *App, user *string) *cobra.Command {
	var category string
	var minutes int
	at := &clockValue{loc: app.Calendar.Location()}

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log a completed focus session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if minutes <= 0 {
				return fmt.Errorf("--minutes must be positive")
			}
			id, err := resolveIdentity(ctx, app, *user)
			if err != nil {
				return err
			}

			start := app.Calendar.Now().Add(-time.Duration(minutes) * time.Minute)
			if at.t != nil {
				start = *at.t
			}
			end := start.Add(time.Duration(minutes) * time.Minute)

			rec, err := app.Sessions.LogSession(ctx, id, category, start, end)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success("Logged session."))
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSessionRecord(rec, app.Calendar.Location()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Focus category")
	cmd.Flags().IntVarP(&minutes, "minutes", "m", 0, "Session duration in minutes")
	cmd.Flags().Var(at, "at", "Session start (\"YYYY-MM-DD HH:MM\", default: now minus --minutes)")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("minutes")

	return cmd
}

func newSessionsCmd(app *App, user *string) *cobra.Command {
	return &cobra.Command{
		Use:   "sessions",
		Short: "List logged sessions and unreadable log lines",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveIdentity(ctx, app, *user)
			if err != nil {
				return err
			}
			result, err := app.Sessions.List(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSessionList(id.Username, result, app.Calendar.Location()))
			return nil
		},
	}
}
