package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/focustrack/internal/cli/formatter"
	"github.com/alexanderramin/focustrack/internal/contract"
	"github.com/alexanderramin/focustrack/internal/domain"
	"github.com/alexanderramin/focustrack/internal/repository"
	"github.com/alexanderramin/focustrack/internal/service"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

type menuAction string

const (
	actionLogin    menuAction = "login"
	actionRegister menuAction = "register"
	actionStart    menuAction = "start"
	actionPomodoro menuAction = "pomodoro"
	actionToday    menuAction = "today"
	actionReport   menuAction = "report"
	actionStreak   menuAction = "streak"
	actionSessions menuAction = "sessions"
	actionExit     menuAction = "exit"
)

func newMenuCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Interactive menu (login, then track and review sessions)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("menu needs an interactive terminal")
			}
			return runMenu(cmd, app)
		},
	}
}

func runMenu(cmd *cobra.Command, app *App) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, formatter.Header("focustrack"))

	for {
		id, ok, err := loginLoop(cmd, app)
		if err != nil || !ok {
			return err
		}
		fmt.Fprintln(out, formatter.Success(fmt.Sprintf("Welcome, %s!", id.Username)))

		loggedOut, err := actionLoop(cmd, app, id)
		if err != nil || !loggedOut {
			return err
		}
	}
}

// loginLoop returns ok=false when the user chose to exit.
func loginLoop(cmd *cobra.Command, app *App) (domain.Identity, bool, error) {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	for {
		action := actionLogin
		err := selectForm("Welcome to focustrack", []huh.Option[menuAction]{
			huh.NewOption("Login", actionLogin),
			huh.NewOption("Register", actionRegister),
			huh.NewOption("Exit", actionExit),
		}, &action).Run()
		if errors.Is(err, huh.ErrUserAborted) || action == actionExit {
			return domain.Identity{}, false, nil
		}
		if err != nil {
			return domain.Identity{}, false, err
		}

		var username, password string
		switch action {
		case actionRegister:
			var confirm string
			if err := credentialsForm("Register", &username, &password, &confirm).Run(); err != nil {
				if errors.Is(err, huh.ErrUserAborted) {
					continue
				}
				return domain.Identity{}, false, err
			}
			id, err := app.Users.Register(ctx, strings.TrimSpace(username), password)
			if errors.Is(err, service.ErrUserExists) || errors.Is(err, service.ErrInvalidUsername) {
				fmt.Fprintln(out, formatter.Warning(err.Error()))
				continue
			}
			if err != nil {
				return domain.Identity{}, false, err
			}
			return id, true, nil

		case actionLogin:
			if err := credentialsForm("Login", &username, &password, nil).Run(); err != nil {
				if errors.Is(err, huh.ErrUserAborted) {
					continue
				}
				return domain.Identity{}, false, err
			}
			id, err := app.Users.Authenticate(ctx, strings.TrimSpace(username), password)
			if errors.Is(err, service.ErrInvalidCredentials) {
				fmt.Fprintln(out, formatter.Warning("Invalid username or password."))
				continue
			}
			if err != nil {
				return domain.Identity{}, false, err
			}
			return id, true, nil
		}
	}
}

// actionLoop returns loggedOut=true when the user logs out and false when
// they exit.
func actionLoop(cmd *cobra.Command, app *App, id domain.Identity) (bool, error) {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	for {
		if ctx.Err() != nil {
			return false, nil
		}
		action := actionStart
		err := selectForm(fmt.Sprintf("What next, %s?", id.Username), []huh.Option[menuAction]{
			huh.NewOption("Start focus session", actionStart),
			huh.NewOption("Pomodoro", actionPomodoro),
			huh.NewOption("Today's summary", actionToday),
			huh.NewOption("Weekly report", actionReport),
			huh.NewOption("Streaks", actionStreak),
			huh.NewOption("Session history", actionSessions),
			huh.NewOption("Logout", actionLogin),
			huh.NewOption("Exit", actionExit),
		}, &action).Run()
		if errors.Is(err, huh.ErrUserAborted) || action == actionExit {
			return false, nil
		}
		if err != nil {
			return false, err
		}

		switch action {
		case actionLogin:
			fmt.Fprintln(out, formatter.Dim("Logged out."))
			return true, nil
		case actionStart:
			var category string
			if err = categoryForm(&category).Run(); err == nil {
				err = runManualSession(ctx, app, id, category, cmd.InOrStdin(), out)
			}
		case actionPomodoro:
			var plan contract.PomodoroPlan
			if plan, err = promptPomodoroPlan(contract.NewPomodoroPlan("")); err == nil {
				err = runPomodoro(ctx, app, id, plan, cmd.InOrStdin(), out)
			}
		case actionToday:
			err = printDailySummary(ctx, app, contract.NewDailySummaryRequest(id), out)
		case actionReport:
			err = printWeeklyReport(ctx, app, contract.NewWeeklyReportRequest(id), out)
		case actionStreak:
			err = printStreaks(ctx, app, id, out)
		case actionSessions:
			var result *repository.ReadResult
			if result, err = app.Sessions.List(ctx, id); err == nil {
				fmt.Fprint(out, formatter.FormatSessionList(id.Username, result, app.Calendar.Location()))
			}
		}

		if errors.Is(err, huh.ErrUserAborted) {
			continue
		}
		if err != nil {
			fmt.Fprintln(out, formatter.Warning(err.Error()))
		}
	}
}
