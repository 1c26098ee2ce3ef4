package service

import (
	"context"
	"errors"

	"github.com/pageza/recipe-recommender/backend/internal/catalog"
	"github.com/pageza/recipe-recommender/backend/internal/types"
)

// ErrRecipeNotFound is returned for a position outside the catalog.
var ErrRecipeNotFound = errors.New("recipe not found")

// DefaultPageSize is used when a list request gives no limit.
const DefaultPageSize = 20

// CatalogService handles catalog browsing and reloads
type CatalogService struct {
	store SnapshotStore
}

// NewCatalogService creates a new CatalogService instance
func NewCatalogService(store SnapshotStore) *CatalogService {
	return &CatalogService{store: store}
}

// List returns one page of the catalog and the catalog size.
func (s *CatalogService) List(ctx context.Context, offset, limit int) ([]types.RecipeRecord, int, error) {
	snap, err := s.store.Current()
	if err != nil {
		return nil, 0, err
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if offset < 0 {
		offset = 0
	}

	total := len(snap.Records)
	if offset >= total {
		return []types.RecipeRecord{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	page := make([]types.RecipeRecord, end-offset)
	copy(page, snap.Records[offset:end])
	return page, total, nil
}

// Get returns the recipe at position.
func (s *CatalogService) Get(ctx context.Context, position int) (*types.RecipeRecord, error) {
	snap, err := s.store.Current()
	if err != nil {
		return nil, err
	}
	for i := range snap.Records {
		if snap.Records[i].Position == position {
			rec := snap.Records[i]
			return &rec, nil
		}
	}
	return nil, ErrRecipeNotFound
}

// Info describes the active snapshot.
func (s *CatalogService) Info(ctx context.Context) (*types.CatalogInfo, error) {
	snap, err := s.store.Current()
	if err != nil {
		return nil, err
	}
	return infoOf(snap), nil
}

// Reload reloads the catalog from its source.
func (s *CatalogService) Reload(ctx context.Context) (*types.CatalogInfo, error) {
	snap, err := s.store.Reload(ctx)
	if err != nil {
		return nil, err
	}
	return infoOf(snap), nil
}

func infoOf(snap *catalog.Snapshot) *types.CatalogInfo {
	return &types.CatalogInfo{
		Version:        snap.Version,
		Source:         snap.Source,
		Recipes:        len(snap.Records),
		VocabularySize: snap.Index.VocabularySize(),
		LoadedAt:       snap.LoadedAt,
	}
}
