package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// newMigrator opens a database/sql connection through the pgx stdlib driver
// and binds a migrate instance to it. The returned close func releases both.
func newMigrator(databaseURL, migrationsPath string) (*migrate.Migrate, func(), error) {
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database connection for migrations: %w", err)
	}
	if err := migrationDB.Ping(); err != nil {
		_ = migrationDB.Close()
		return nil, nil, fmt.Errorf("failed to ping database for migrations: %w", err)
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		_ = migrationDB.Close()
		return nil, nil, fmt.Errorf("could not create postgres driver instance for migrations: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(migrationsPath, "postgres", driver)
	if err != nil {
		_ = migrationDB.Close()
		return nil, nil, fmt.Errorf("could not create migrate instance: %w", err)
	}

	closeFn := func() {
		sourceErr, dbErr := m.Close()
		if sourceErr != nil {
			slog.Error("Migration source error", slog.String("error", sourceErr.Error()))
		}
		if dbErr != nil {
			slog.Error("Migration database error", slog.String("error", dbErr.Error()))
		}
	}
	return m, closeFn, nil
}

// RunMigrations applies every pending up migration found at migrationsPath
// (a migrate source URL such as "file://migrations").
func RunMigrations(databaseURL, migrationsPath string, logger *slog.Logger) error {
	m, closeFn, err := newMigrator(databaseURL, migrationsPath)
	if err != nil {
		return err
	}
	defer closeFn()

	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	logger.Info("Database migrations applied successfully.")
	return nil
}

// RollbackMigrations reverts the last steps migrations.
func RollbackMigrations(databaseURL, migrationsPath string, steps int, logger *slog.Logger) error {
	if steps < 1 {
		return fmt.Errorf("steps must be positive, got %d", steps)
	}
	m, closeFn, err := newMigrator(databaseURL, migrationsPath)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to roll back migrations: %w", err)
	}
	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		logger.Info("All migrations rolled back.")
	case err != nil:
		return fmt.Errorf("failed to read migration version: %w", err)
	default:
		logger.Info("Migrations rolled back", slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))
	}
	return nil
}
