package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/pageza/recipe-recommender/backend/config"
	"github.com/pageza/recipe-recommender/backend/internal/catalog"
	"github.com/pageza/recipe-recommender/backend/internal/database"
	"github.com/pageza/recipe-recommender/backend/internal/logger"
)

func main() {
	file := flag.String("file", "", "CSV file to seed from (defaults to CATALOG_PATH)")
	fromS3 := flag.Bool("s3", false, "read the CSV from CATALOG_S3_BUCKET/CATALOG_S3_KEY instead of a file")
	migrate := flag.Bool("migrate", true, "run schema migrations before seeding")
	flag.Parse()

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

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	var source catalog.Source
	if *fromS3 {
		s3cfg, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			logger.Fatalf("failed to configure s3: %v", err)
		}
		source = &catalog.S3Source{Objects: s3cfg, Bucket: cfg.CatalogBucket, Key: cfg.CatalogKey}
	} else {
		path := cfg.CatalogPath
		if *file != "" {
			path = *file
		}
		source = &catalog.FileSource{Path: path}
	}

	records, err := source.Load(ctx)
	if err != nil {
		logger.Fatalf("failed to read catalog: %v", err)
	}

	db, err := database.Open(cfg)
	if err != nil {
		logger.Fatalf("failed to connect to database: %v", err)
	}
	if *migrate {
		if err := database.RunMigrations(db); err != nil {
			logger.Fatalf("migration failed: %v", err)
		}
	}

	result, err := catalog.Seed(ctx, db, records)
	if err != nil {
		logger.Fatalf("failed to seed catalog: %v", err)
	}
	fmt.Printf("Seeded %d recipes from %s (vocabulary %d tokens, version %s)\n",
		result.Recipes, source.Describe(), result.VocabularySize, result.Version)
}
