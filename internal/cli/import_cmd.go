package cli

import (
	"fmt"

	"github.com/alexanderramin/orgscope/internal/cli/formatter"
	"github.com/alexanderramin/orgscope/internal/service"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	var merge, strict bool

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import a roster JSON file",
		Long: `Import a roster JSON file, either an array of employees or an object
with an "employees" array. By default the stored roster is replaced; --merge
upserts the file's records instead. Malformed records are imported with
defaults and reported as warnings unless --strict is set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts := service.ImportOptions{Mode: service.ImportReplace, Strict: strict}
			if merge {
				opts.Mode = service.ImportMerge
			}

			stop := func() {}
			if app.interactive() {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Importing "+args[0])
			}
			res, err := app.Import.ImportFile(ctx, args[0], opts)
			stop()
			if err != nil {
				return err
			}

			snap, err := app.Chart.Rebuild(ctx)
			if err != nil {
				return fmt.Errorf("rebuilding chart: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatImportResult(res, snap))
			return nil
		},
	}

	cmd.Flags().BoolVar(&merge, "merge", false, "Upsert into the stored roster instead of replacing it")
	cmd.Flags().BoolVar(&strict, "strict", false, "Fail on any validation warning")

	return cmd
}
