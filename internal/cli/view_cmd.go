package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/orgscope/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newViewCmd(app *App) *cobra.Command {
	var (
		watch  string
		merge  bool
		noSave bool
	)

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Browse the organization chart interactively",
		Long: `Browse the organization chart. With --watch FILE the roster file is
imported first and re-imported whenever it changes; the chart refreshes
in place. The expanded nodes, layers and zoom are saved on exit and
restored next time unless --no-save is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("view needs an interactive terminal; use `orgscope chart` instead")
			}
			if noSave {
				app.config().View.RestoreState = false
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			opts := service.ImportOptions{Mode: service.ImportReplace}
			if merge {
				opts.Mode = service.ImportMerge
			}
			if watch != "" {
				if _, err := app.Import.ImportFile(ctx, watch, opts); err != nil {
					return err
				}
				if _, err := app.Chart.Rebuild(ctx); err != nil {
					return fmt.Errorf("rebuilding chart: %w", err)
				}
			}

			m := newChartModel(app)
			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))

			if watch != "" {
				w, err := service.NewRosterWatcher(watch, app.Import, app.Chart,
					service.WithWatchImportOptions(opts),
					service.WithWatchErrorHandler(func(err error) { p.Send(watchErrorMsg{err: err}) }),
				)
				if err != nil {
					return err
				}
				done := make(chan struct{})
				go func() {
					defer close(done)
					if err := w.Run(ctx); err != nil {
						p.Send(watchErrorMsg{err: err})
					}
				}()
				defer func() {
					cancel()
					<-done
				}()
			}

			_, err := p.Run()
			m.quit()
			return err
		},
	}

	cmd.Flags().StringVar(&watch, "watch", "", "Import FILE and reload the chart when it changes")
	cmd.Flags().BoolVar(&merge, "merge", false, "Merge the watched file instead of replacing the roster")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "Do not restore or save the view state")

	return cmd
}
