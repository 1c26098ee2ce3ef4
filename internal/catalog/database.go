package catalog

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"github.com/pageza/recipe-recommender/backend/internal/logger"
	"github.com/pageza/recipe-recommender/backend/internal/model"
	"github.com/pageza/recipe-recommender/backend/internal/ranker"
	"github.com/pageza/recipe-recommender/backend/internal/types"
)

// DatabaseSource reads the catalog seeded into the recipes table.
type DatabaseSource struct {
	DB *gorm.DB
}

func (s *DatabaseSource) Load(ctx context.Context) ([]types.RecipeRecord, error) {
	rows, err := s.rows(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]types.RecipeRecord, len(rows))
	for i := range rows {
		records[i] = rows[i].Record()
	}
	return records, nil
}

func (s *DatabaseSource) Describe() string {
	return "database:recipes"
}

// LoadIndex rebuilds the ranking index from the stored vocabulary and term
// vectors. If they no longer match the recipes table (rows added, removed,
// reordered or with edited ingredients) the index is recomputed from the
// ingredient text instead.
func (s *DatabaseSource) LoadIndex(ctx context.Context) (*ranker.Index, error) {
	rows, err := s.rows(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]types.RecipeRecord, len(rows))
	for i := range rows {
		records[i] = rows[i].Record()
	}

	var vocab model.CatalogVocabulary
	err = s.DB.WithContext(ctx).Order("id desc").First(&vocab).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Warnw("no stored vocabulary, computing term vectors", "recipes", len(records))
		return ranker.NewIndex(records), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog vocabulary: %w", err)
	}

	if vocab.RecipeCount != len(records) || vocab.Checksum != checksum(records) {
		logger.Warnw("recipes changed since seeding, recomputing term vectors",
			"version", vocab.Version,
			"seeded_recipes", vocab.RecipeCount,
			"recipes", len(records),
		)
		return ranker.NewIndex(records), nil
	}

	dim := len(vocab.Tokens)
	vectors := make([]ranker.Vector, len(rows))
	for i := range rows {
		vectors[i] = fromSparse(rows[i].TermVector, dim)
	}
	ix, err := ranker.NewIndexFromMatrix(records, vocab.Tokens, vectors)
	if err != nil {
		logger.Warnw("stored term vectors are stale, recomputing",
			"version", vocab.Version,
			"error", err,
		)
		return ranker.NewIndex(records), nil
	}
	return ix, nil
}

func (s *DatabaseSource) rows(ctx context.Context) ([]model.Recipe, error) {
	var rows []model.Recipe
	if err := s.DB.WithContext(ctx).Order("position asc").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load recipes: %w", err)
	}
	return rows, nil
}

// SeedResult describes a completed Seed.
type SeedResult struct {
	Version        uuid.UUID `json:"version"`
	Recipes        int       `json:"recipes"`
	VocabularySize int       `json:"vocabulary_size"`
}

// Seed replaces the stored catalog with records, persisting each recipe's
// term vector alongside the vocabulary it was computed over. Positions are
// renumbered to follow the order of records.
func Seed(ctx context.Context, db *gorm.DB, records []types.RecipeRecord) (*SeedResult, error) {
	ordered := make([]types.RecipeRecord, len(records))
	for i, rec := range records {
		rec.Position = i
		ordered[i] = rec
	}
	ix := ranker.NewIndex(ordered)

	result := &SeedResult{
		Version:        uuid.New(),
		Recipes:        len(ordered),
		VocabularySize: ix.VocabularySize(),
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Recipe{}).Error; err != nil {
			return fmt.Errorf("failed to clear recipes: %w", err)
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.CatalogVocabulary{}).Error; err != nil {
			return fmt.Errorf("failed to clear vocabulary: %w", err)
		}

		vocab := model.CatalogVocabulary{
			Version:     result.Version,
			RecipeCount: len(ordered),
			Checksum:    checksum(ordered),
			Tokens:      model.JSONBStringArray(ix.Tokens()),
		}
		if err := tx.Create(&vocab).Error; err != nil {
			return fmt.Errorf("failed to store vocabulary: %w", err)
		}

		if len(ordered) == 0 {
			return nil
		}
		rows := make([]model.Recipe, len(ordered))
		for i, rec := range ordered {
			rows[i] = model.NewRecipe(rec)
			rows[i].TermVector = toSparse(ix.Vector(i))
		}
		if err := tx.CreateInBatches(rows, 100).Error; err != nil {
			return fmt.Errorf("failed to store recipes: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("seeded catalog",
		"version", result.Version,
		"recipes", result.Recipes,
		"vocabulary_size", result.VocabularySize,
	)
	return result, nil
}

// checksum fingerprints the inputs of the term vectors: each record's
// position and ingredient text, in order.
func checksum(records []types.RecipeRecord) string {
	h := sha256.New()
	for _, rec := range records {
		h.Write([]byte(strconv.Itoa(rec.Position)))
		h.Write([]byte{0})
		h.Write([]byte(rec.Ingredients))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// toSparse returns nil for a vector with no non-zero terms; pgvector cannot
// parse an empty sparsevec back.
func toSparse(v ranker.Vector) *pgvector.SparseVector {
	elements := make(map[int32]float32)
	for i, x := range v {
		if x != 0 {
			elements[int32(i)] = float32(x)
		}
	}
	if len(elements) == 0 {
		return nil
	}
	vec := pgvector.NewSparseVectorFromMap(elements, int32(len(v)))
	return &vec
}

// fromSparse expands v to a dense vector. A nil vector is all zeros over dim
// terms. A vector whose width or indices do not fit is returned with its own
// width so the index rejects it as stale.
func fromSparse(v *pgvector.SparseVector, dim int) ranker.Vector {
	if v == nil {
		return make(ranker.Vector, dim)
	}
	width := int(v.Dimensions())
	if width != dim {
		return make(ranker.Vector, width)
	}
	out := make(ranker.Vector, dim)
	values := v.Values()
	for i, idx := range v.Indices() {
		if idx < 0 || int(idx) >= dim || i >= len(values) {
			return nil
		}
		out[idx] = float64(values[i])
	}
	return out
}
