package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/focustrack/internal/calendar"
	"github.com/alexanderramin/focustrack/internal/domain"
	"github.com/alexanderramin/focustrack/internal/service"
	"github.com/spf13/cobra"
)

// App holds the services and environment the CLI commands run against.
type App struct {
	Users    service.UserService
	Sessions service.SessionService
	Stats    service.StatsService
	// Import is nil unless the SQLite store is configured.
	Import service.ImportService

	Calendar *calendar.Calendar
	// DefaultUser is used when --user is not given.
	DefaultUser string
	// IsInteractive reports whether forms and the countdown view may take
	// over the terminal.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "focustrack" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var user string

	root := &cobra.Command{
		Use:           "focustrack",
		Short:         "Track focus sessions, daily totals and streaks",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.interactive() {
				return runMenu(cmd, app)
			}
			return cmd.Help()
		},
	}
	root.PersistentFlags().StringVarP(&user, "user", "u", "", "User to act as (defaults to $FOCUSTRACK_USER)")

	root.AddCommand(
		newRegisterCmd(app),
		newStartCmd(app, &user),
		newPomodoroCmd(app, &user),
		newLogCmd(app, &user),
		newTodayCmd(app, &user),
		newReportCmd(app, &user),
		newStreakCmd(app, &user),
		newSessionsCmd(app, &user),
		newImportCmd(app, &user),
		newMenuCmd(app),
	)

	return root
}

var errNoUser = errors.New("no user given: pass --user or set FOCUSTRACK_USER")

// resolveIdentity turns the --user flag (or the configured default) into a
// registered identity.
func resolveIdentity(ctx context.Context, app *App, flagUser string) (domain.Identity, error) {
	username := strings.TrimSpace(flagUser)
	if username == "" {
		username = app.DefaultUser
	}
	if username == "" {
		return domain.Identity{}, errNoUser
	}
	id, err := app.Users.Resolve(ctx, username)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w (register with: focustrack register --user %s)", err, username)
	}
	return id, nil
}
