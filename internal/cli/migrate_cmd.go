package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ThiagoScutari/sgp-costura/pkg/database"
	applogger "github.com/ThiagoScutari/sgp-costura/pkg/logger"
)

func newMigrateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back schema migrations",
	}

	cmd.AddCommand(
		newMigrateUpCmd(app),
		newMigrateDownCmd(app),
	)

	return cmd
}

func newMigrateUpCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.withDB(func(run migrationRunner) error { return run.up() })
		},
	}
}

func newMigrateDownCmd(app *App) *cobra.Command {
	var steps int

	cmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back the last migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if steps <= 0 {
				return fmt.Errorf("--steps must be positive")
			}
			return app.withDB(func(run migrationRunner) error { return run.down(steps) })
		},
	}

	cmd.Flags().IntVar(&steps, "steps", 1, "Number of migrations to roll back")

	return cmd
}

type migrationRunner struct {
	up   func() error
	down func(steps int) error
}

func (a *App) withDB(fn func(migrationRunner) error) error {
	cfg, err := a.config()
	if err != nil {
		return err
	}
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync()

	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	return fn(migrationRunner{
		up:   func() error { return database.RunMigrations(sqlDB, logger) },
		down: func(steps int) error { return database.RollbackMigrations(sqlDB, steps, logger) },
	})
}
