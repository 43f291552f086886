// Command migrate manages the identity database schema.
package main

import (
	"context"
	"database/sql"
	"os"

	"identity/config"
	"identity/internal/errors"
	"identity/internal/infra/persistence/postgres"

	pgLib "github.com/slighter12/go-lib/database/postgres"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "migrate",
		Short:        "Manage the identity database schema",
		SilenceUsage: true,
	}

	cmd.AddCommand(
		newMigrationCmd("up", "Apply all pending migrations", postgres.MigrateUp),
		newMigrationCmd("down", "Roll back the most recent migration", postgres.MigrateDown),
		newMigrationCmd("status", "Show the state of every migration", postgres.MigrationStatus),
	)

	return cmd
}

func newMigrationCmd(use, short string, run func(ctx context.Context, db *sql.DB) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			if err := run(cmd.Context(), db); err != nil {
				return err
			}
			cmd.Printf("migrate %s: done\n", use)

			return nil
		},
	}
}

func openDB() (*sql.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cfg.Postgres == nil {
		return nil, errors.New("postgres configuration is missing")
	}

	gormDB, err := pgLib.New(cfg.Postgres)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to PostgreSQL")
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}

	return sqlDB, nil
}
