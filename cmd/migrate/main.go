package main

import (
	"errors"
	"flag"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/joho/godotenv"

	"github.com/recetario/backend/internal/database"
	"github.com/recetario/backend/internal/logger"
)

func main() {
	down := flag.Bool("down", false, "Roll back migrations instead of applying them")
	steps := flag.Int("steps", 0, "Number of migrations to apply or roll back (0 means all)")
	dir := flag.String("dir", envOr("MIGRATIONS_DIR", "migrations"), "Directory holding the SQL migrations")
	flag.Parse()

	_ = godotenv.Load()
	log := logger.New(logger.Config{Level: envOr("LOG_LEVEL", "info"), Format: "text"})

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Error("DATABASE_URL environment variable is not set")
		os.Exit(1)
	}

	m, closeFn, err := database.NewMigrator(dsn, *dir)
	if err != nil {
		log.Error("failed to create migrator", "error", err)
		os.Exit(1)
	}
	defer closeFn()

	switch {
	case *steps != 0 && *down:
		err = m.Steps(-*steps)
	case *steps != 0:
		err = m.Steps(*steps)
	case *down:
		err = m.Down()
	default:
		err = m.Up()
	}

	if errors.Is(err, migrate.ErrNoChange) {
		log.Info("no migrations to run")
		return
	}
	if err != nil {
		log.Error("migration failed", "error", err)
		closeFn()
		os.Exit(1)
	}

	version, dirty, verr := m.Version()
	if errors.Is(verr, migrate.ErrNilVersion) {
		log.Info("migrations complete, schema is empty")
		return
	}
	log.Info("migrations complete", "version", version, "dirty", dirty)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
