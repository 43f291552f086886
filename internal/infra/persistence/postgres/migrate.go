package postgres

import (
	"context"
	"database/sql"

	"identity/internal/errors"
	"identity/internal/infra/persistence/postgres/migrations"

	"github.com/pressly/goose/v3"
)

func prepareGoose() error {
	goose.SetBaseFS(migrations.FS)

	return goose.SetDialect("postgres")
}

// MigrateUp applies every pending migration.
func MigrateUp(ctx context.Context, db *sql.DB) error {
	if err := prepareGoose(); err != nil {
		return errors.Wrap(err, "failed to set migration dialect")
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return errors.Wrap(err, "failed to apply migrations")
	}

	return nil
}

// MigrateDown rolls back the most recent migration.
func MigrateDown(ctx context.Context, db *sql.DB) error {
	if err := prepareGoose(); err != nil {
		return errors.Wrap(err, "failed to set migration dialect")
	}
	if err := goose.DownContext(ctx, db, "."); err != nil {
		return errors.Wrap(err, "failed to roll back migration")
	}

	return nil
}

// MigrationStatus prints the applied state of every migration.
func MigrationStatus(ctx context.Context, db *sql.DB) error {
	if err := prepareGoose(); err != nil {
		return errors.Wrap(err, "failed to set migration dialect")
	}
	if err := goose.StatusContext(ctx, db, "."); err != nil {
		return errors.Wrap(err, "failed to read migration status")
	}

	return nil
}
