package service

import (
	"context"
	"time"

	"github.com/pageza/recipe-recommender/backend/internal/catalog"
	"github.com/pageza/recipe-recommender/backend/internal/types"
)

// IRecommendationService ranks the catalog against an ingredient query.
type IRecommendationService interface {
	Recommend(ctx context.Context, query string, topN int) ([]types.ScoredResult, error)
}

// ICatalogService exposes the loaded catalog.
type ICatalogService interface {
	List(ctx context.Context, offset, limit int) ([]types.RecipeRecord, int, error)
	Get(ctx context.Context, position int) (*types.RecipeRecord, error)
	Info(ctx context.Context) (*types.CatalogInfo, error)
	Reload(ctx context.Context) (*types.CatalogInfo, error)
}

// ITokenService issues and validates access tokens.
type ITokenService interface {
	GenerateToken(subject, role string, ttl time.Duration) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}

// SnapshotStore is the part of catalog.Store the services depend on.
type SnapshotStore interface {
	Current() (*catalog.Snapshot, error)
	Reload(ctx context.Context) (*catalog.Snapshot, error)
}
