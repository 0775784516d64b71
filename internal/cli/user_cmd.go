package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alexanderramin/focustrack/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newRegisterCmd(app *App) *cobra.Command {
	var passwordStdin bool

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a user account",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			username, _ := cmd.Flags().GetString("user")
			username = strings.TrimSpace(username)

			var password string
			switch {
			case passwordStdin:
				if username == "" {
					return fmt.Errorf("--user is required with --password-stdin")
				}
				p, err := readPassword(cmd.InOrStdin())
				if err != nil {
					return err
				}
				password = p
			case app.interactive():
				var confirm string
				if err := credentialsForm("Register", &username, &password, &confirm).Run(); err != nil {
					return err
				}
			default:
				return fmt.Errorf("not a terminal: use --user and --password-stdin")
			}

			id, err := app.Users.Register(ctx, strings.TrimSpace(username), password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Success(fmt.Sprintf("Registered %s.", id.Username)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "Read the password from the first line of stdin")

	return cmd
}

// readPassword returns the first line of r without its line ending.
func readPassword(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
