package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/recetario/backend/internal/models"
	"gorm.io/gorm"
)

// RunMigrations brings the schema up to date. SQLite databases are
// auto-migrated from the models; postgres runs the SQL files in migrationsDir.
func RunMigrations(db *gorm.DB, databaseURL, migrationsDir string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	if db.Dialector.Name() == "sqlite" {
		logger.Info("using GORM auto-migration for SQLite")
		return db.AutoMigrate(models.All()...)
	}

	m, closeFn, err := NewMigrator(databaseURL, migrationsDir)
	if err != nil {
		return err
	}
	defer closeFn()

	err = m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("migrations not required, database is up to date")
	case err != nil:
		return fmt.Errorf("failed to apply migrations: %w", err)
	default:
		version, _, _ := m.Version()
		logger.Info("migrations applied", "version", version)
	}
	return nil
}

// NewMigrator opens a dedicated lib/pq connection for golang-migrate. The
// returned func closes it.
func NewMigrator(databaseURL, migrationsDir string) (*migrate.Migrate, func(), error) {
	sqlDB, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open migration connection: %w", err)
	}

	driver, err := migratepg.WithInstance(sqlDB, &migratepg.Config{})
	if err != nil {
		sqlDB.Close()
		return nil, nil, fmt.Errorf("failed to create migration driver: %w", err)
	}

	abs, err := filepath.Abs(migrationsDir)
	if err != nil {
		sqlDB.Close()
		return nil, nil, fmt.Errorf("failed to resolve migrations dir: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+filepath.ToSlash(abs), "postgres", driver)
	if err != nil {
		sqlDB.Close()
		return nil, nil, fmt.Errorf("failed to create migrator: %w", err)
	}

	return m, func() {
		m.Close()
	}, nil
}
