package main

import (
	"context"
	"log"

	"design-dojo/internal/config"
	"design-dojo/internal/database"
	"design-dojo/internal/logger"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l := logger.Get()
	defer logger.Sync()

	ctx := context.Background()
	db, err := database.Connect(ctx, cfg)
	if err != nil {
		l.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(ctx, db, cfg.DB.Driver); err != nil {
		l.Fatal("Failed to run migrations", zap.Error(err))
	}
	l.Info("Migrations complete", zap.String("driver", cfg.DB.Driver))
}
