package cli

import (
	"context"

	"github.com/alexanderramin/orgscope/internal/config"
	"github.com/alexanderramin/orgscope/internal/interaction"
	"github.com/alexanderramin/orgscope/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Employees service.EmployeeService
	Import    service.ImportService
	Chart     service.ChartService
	Config    *config.Config

	// IsInteractive reports whether stdin is a terminal. Nil means false.
	IsInteractive func() bool
}

func (a *App) config() *config.Config {
	if a.Config == nil {
		a.Config = config.DefaultConfig("")
	}
	return a.Config
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// newState returns interaction state seeded from the chart config.
func (a *App) newState() *interaction.State {
	return interaction.New(interactionOptions(a.config().Chart))
}

func interactionOptions(c config.ChartConfig) interaction.Options {
	return interaction.Options{
		ExpandAllLayerLimit: c.ExpandAllLayerLimit,
		MaxSearchResults:    c.MaxSearchResults,
		PanDistance:         c.PanDistance,
		VisibleLayers:       c.DefaultLayers,
	}
}

// snapshot returns the current chart, building it on first use.
func (a *App) snapshot(ctx context.Context) (*service.Snapshot, error) {
	if snap := a.Chart.Current(); snap != nil {
		return snap, nil
	}
	return a.Chart.Rebuild(ctx)
}

// NewRootCmd creates the top-level "orgscope" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "orgscope",
		Short:         "Organization chart explorer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newImportCmd(app),
		newEmployeeCmd(app),
		newChartCmd(app),
		newSearchCmd(app),
		newStatsCmd(app),
		newViewCmd(app),
	)

	return root
}
