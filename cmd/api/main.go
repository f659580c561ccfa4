package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/recetario/backend/config"
	"github.com/recetario/backend/internal/database"
	"github.com/recetario/backend/internal/export"
	"github.com/recetario/backend/internal/logger"
	"github.com/recetario/backend/internal/server"
	"github.com/recetario/backend/internal/storage"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	format := cfg.LogFormat
	if !cfg.Environment.IsLocal() {
		gin.SetMode(gin.ReleaseMode)
	} else if os.Getenv("LOG_FORMAT") == "" {
		format = "text"
	}
	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: format})

	db, err := database.New(cfg, appLogger)
	if err != nil {
		appLogger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	if cfg.MigrateOnStart {
		if err := database.RunMigrations(db, cfg.DatabaseURL, cfg.MigrationsDir, appLogger); err != nil {
			appLogger.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
	}

	// Redis backs the countries cache and rate limits; the API works without it.
	redisClient, err := database.NewRedisClient(cfg, appLogger)
	if err != nil {
		appLogger.Warn("redis unavailable, continuing without cache and rate limits", "error", err)
		redisClient = nil
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	store, err := storage.New(context.Background(), cfg.Storage, appLogger)
	if err != nil {
		appLogger.Error("failed to initialise object storage", "error", err)
		os.Exit(1)
	}

	srv := server.New(cfg, server.Dependencies{
		DB:       db,
		Redis:    redisClient,
		Store:    store,
		Renderer: export.NewPDFRenderer(),
		Logger:   appLogger,
	})

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			appLogger.Error("server error", "error", err)
			os.Exit(1)
		}
	case sig := <-quit:
		appLogger.Info("received signal", "signal", sig.String())
	}

	appLogger.Info("shutting down server")
	if err := srv.Shutdown(context.Background()); err != nil {
		appLogger.Error("server shutdown error", "error", err)
		os.Exit(1)
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	appLogger.Info("server stopped")
}
