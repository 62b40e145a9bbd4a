package migrator

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// Up применяет все непримененные миграции из source (каталог dir).
// Отсутствие изменений не считается ошибкой.
func Up(db *sql.DB, source fs.FS, dir string, logger Logger) error {
	src, err := iofs.New(source, dir)
	if err != nil {
		return fmt.Errorf("migrator: load migrations: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("migrator: create driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return fmt.Errorf("migrator: init: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrator: up: %w", err)
	}

	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		logger.Info("No migrations applied")
	case err != nil:
		return fmt.Errorf("migrator: version: %w", err)
	case dirty:
		logger.Warn("Database schema is dirty at version %d", version)
	default:
		logger.Info("Database schema at version %d", version)
	}

	return nil
}
