package cli

import (
	"github.com/spf13/cobra"

	"github.com/ThiagoScutari/sgp-costura/config"
)

// App carries what the subcommands share. Config is loaded lazily so the
// offline commands work without a config file.
type App struct {
	ConfigPath string
}

func (a *App) config() (*config.Config, error) {
	return config.Load(a.ConfigPath)
}

// NewRootCmd creates the top-level "pulsectl" command
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "pulsectl",
		Short:         "Operations tool for the production pulse engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&app.ConfigPath, "config", "", "path to the config file")

	root.AddCommand(
		newMigrateCmd(app),
		newBatchCmd(app),
		newShiftCmd(app),
	)

	return root
}
