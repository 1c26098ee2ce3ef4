package catalog

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/pageza/recipe-recommender/backend/internal/logger"
	"github.com/pageza/recipe-recommender/backend/internal/ranker"
	"github.com/pageza/recipe-recommender/backend/internal/types"
)

// Snapshot is one immutable load of the catalog. Requests hold on to the
// snapshot they started with, so a reload never changes results mid-request.
type Snapshot struct {
	Version  uuid.UUID
	LoadedAt time.Time
	Source   string
	Records  []types.RecipeRecord
	Index    *ranker.Index
}

// IndexSource is a Source that can also restore a precomputed index.
type IndexSource interface {
	Source
	LoadIndex(ctx context.Context) (*ranker.Index, error)
}

// Store holds the current catalog snapshot.
type Store struct {
	source  Source
	current atomic.Pointer[Snapshot]
	// reloads are serialised; readers never block
	mu sync.Mutex
}

// NewStore creates an empty store. Call Reload before serving.
func NewStore(source Source) *Store {
	return &Store{source: source}
}

// Current returns the active snapshot.
func (s *Store) Current() (*Snapshot, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, ErrNotLoaded
	}
	return snap, nil
}

// Reload loads the catalog from the source and swaps it in. On error the
// previous snapshot stays active.
func (s *Store) Reload(ctx context.Context) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	var ix *ranker.Index
	if src, ok := s.source.(IndexSource); ok {
		loaded, err := src.LoadIndex(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to reload catalog from %s: %w", s.source.Describe(), err)
		}
		ix = loaded
	} else {
		records, err := s.source.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to reload catalog from %s: %w", s.source.Describe(), err)
		}
		ix = ranker.NewIndex(records)
	}

	snap := &Snapshot{
		Version:  uuid.New(),
		LoadedAt: time.Now().UTC(),
		Source:   s.source.Describe(),
		Records:  ix.Records(),
		Index:    ix,
	}
	s.current.Store(snap)

	logger.Infow("catalog loaded",
		"version", snap.Version,
		"source", snap.Source,
		"recipes", len(snap.Records),
		"vocabulary_size", ix.VocabularySize(),
		"duration", time.Since(start),
	)
	return snap, nil
}
