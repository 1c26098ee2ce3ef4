package main

import (
	"fmt"
	"os"

	"github.com/pageza/recipe-recommender/backend/config"
	"github.com/pageza/recipe-recommender/backend/internal/database"
	"github.com/pageza/recipe-recommender/backend/internal/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.LogLevel, cfg.LogFormat, cfg.LogDir); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialise logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	db, err := database.Open(cfg)
	if err != nil {
		logger.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.RunMigrations(db); err != nil {
		logger.Fatalf("migration failed: %v", err)
	}
	logger.Info("migrations complete")
}
