package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pageza/recipe-recommender/backend/config"
	"github.com/pageza/recipe-recommender/backend/internal/logger"
	"github.com/pageza/recipe-recommender/backend/internal/ranker"
	"github.com/pageza/recipe-recommender/backend/internal/types"
)

var (
	// ErrEmptyQuery is returned when the query has no non-blank characters.
	ErrEmptyQuery = errors.New("please enter at least one ingredient")
	// ErrTopNTooLarge is returned when a request asks for more results than
	// the service allows.
	ErrTopNTooLarge = errors.New("requested too many results")
)

// RecommendationService ranks the current catalog snapshot.
type RecommendationService struct {
	store       SnapshotStore
	mode        string
	defaultTopN int
	maxTopN     int
}

// NewRecommendationService creates a RecommendationService. mode is one of
// config.RankerModeIndexed or config.RankerModePerRequest.
func NewRecommendationService(store SnapshotStore, mode string, defaultTopN, maxTopN int) *RecommendationService {
	if defaultTopN <= 0 {
		defaultTopN = ranker.DefaultTopN
	}
	if maxTopN < defaultTopN {
		maxTopN = defaultTopN
	}
	return &RecommendationService{
		store:       store,
		mode:        mode,
		defaultTopN: defaultTopN,
		maxTopN:     maxTopN,
	}
}

// Recommend returns up to topN recipes ordered by descending similarity.
// topN of zero selects the default.
func (s *RecommendationService) Recommend(ctx context.Context, query string, topN int) ([]types.ScoredResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if topN == 0 {
		topN = s.defaultTopN
	}
	if topN > s.maxTopN {
		return nil, fmt.Errorf("%w: %d exceeds the limit of %d", ErrTopNTooLarge, topN, s.maxTopN)
	}

	snap, err := s.store.Current()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	var results []types.ScoredResult
	if s.mode == config.RankerModePerRequest {
		results, err = ranker.Rank(query, snap.Records, topN)
	} else {
		results, err = snap.Index.Rank(query, topN)
	}
	if err != nil {
		return nil, err
	}

	logger.Debugw("ranked catalog",
		"version", snap.Version,
		"mode", s.mode,
		"catalog_size", len(snap.Records),
		"results", len(results),
		"duration", time.Since(start),
	)
	return results, nil
}
