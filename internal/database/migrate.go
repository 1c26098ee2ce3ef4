package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/pageza/recipe-recommender/backend/internal/logger"
	"github.com/pageza/recipe-recommender/backend/internal/model"
)

// RunMigrations brings the catalog schema up to date. On Postgres the
// pgvector extension is installed first so the term_vector column can be
// created.
func RunMigrations(db *gorm.DB) error {
	dialect := db.Dialector.Name()
	if dialect == "postgres" {
		if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
			return fmt.Errorf("failed to install pgvector extension: %w", err)
		}
	}

	if err := db.AutoMigrate(&model.Recipe{}, &model.CatalogVocabulary{}); err != nil {
		return fmt.Errorf("failed to migrate catalog schema: %w", err)
	}

	logger.Infow("applied catalog migrations", "dialect", dialect)
	return nil
}
