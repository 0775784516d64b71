package cli

import (
	"fmt"

	"github.com/alexanderramin/focustrack/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App, user *string) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Copy a focus_log_<user>.txt file into the SQLite store",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Import == nil {
				return fmt.Errorf("import needs the sqlite storage backend (set FOCUSTRACK_STORAGE=sqlite)")
			}
			ctx := cmd.Context()
			id, err := resolveIdentity(ctx, app, *user)
			if err != nil {
				return err
			}
			result, err := app.Import.ImportLegacyLog(ctx, id, path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Success(fmt.Sprintf("Imported %s for %s.",
				formatter.Plural(result.Imported, "session"), id.Username)))
			if result.Skipped > 0 {
				fmt.Fprintln(out, formatter.Warning(fmt.Sprintf("%s skipped.", formatter.Plural(result.Skipped, "line"))))
			}
			if result.Anomalies > 0 {
				fmt.Fprintln(out, formatter.Warning(fmt.Sprintf("%s ended before starting and count as 0 minutes.",
					formatter.Plural(result.Anomalies, "session"))))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&path, "file", "f", "", "Path of the legacy log file")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
