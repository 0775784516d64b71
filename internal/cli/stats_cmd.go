package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/alexanderramin/focustrack/internal/cli/formatter"
	"github.com/alexanderramin/focustrack/internal/contract"
	"github.com/alexanderramin/focustrack/internal/domain"
	"github.com/spf13/cobra"
)

func newTodayCmd(app *App, user *string) *cobra.Command {
	date := &dayValue{}

	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show focus minutes per category for today",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveIdentity(ctx, app, *user)
			if err != nil {
				return err
			}
			req := contract.NewDailySummaryRequest(id)
			req.Day = date.day
			return printDailySummary(ctx, app, req, cmd.OutOrStdout())
		},
	}

	cmd.Flags().Var(date, "date", "Day to summarize (YYYY-MM-DD, default: today)")

	return cmd
}

func printDailySummary(ctx context.Context, app *App, req contract.DailySummaryRequest, out io.Writer) error {
	resp, err := app.Stats.DailySummary(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, formatter.FormatDailySummary(req.Identity.Username, resp, app.Calendar.Today()))
	return nil
}

func newReportCmd(app *App, user *string) *cobra.Command {
	var noSnapshot bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Build the week-to-date report and write its CSV snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveIdentity(ctx, app, *user)
			if err != nil {
				return err
			}
			req := contract.NewWeeklyReportRequest(id)
			req.WriteSnapshot = !noSnapshot
			return printWeeklyReport(ctx, app, req, cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&noSnapshot, "no-snapshot", false, "Print the report without writing the CSV file")

	return cmd
}

func printWeeklyReport(ctx context.Context, app *App, req contract.WeeklyReportRequest, out io.Writer) error {
	resp, err := app.Stats.WeeklyReport(ctx, req)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, formatter.FormatWeeklyReport(req.Identity.Username, resp))
	return nil
}

func newStreakCmd(app *App, user *string) *cobra.Command {
	return &cobra.Command{
		Use:   "streak",
		Short: "Show current and longest focus streaks",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveIdentity(ctx, app, *user)
			if err != nil {
				return err
			}
			return printStreaks(ctx, app, id, cmd.OutOrStdout())
		},
	}
}

func printStreaks(ctx context.Context, app *App, id domain.Identity, out io.Writer) error {
	resp, err := app.Stats.Streaks(ctx, contract.NewStreakRequest(id))
	if err != nil {
		return err
	}
	fmt.Fprintln(out, formatter.FormatStreaks(id.Username, resp))
	return nil
}
