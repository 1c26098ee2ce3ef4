package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/pageza/recipe-recommender/backend/internal/logger"
)

// Reloader is satisfied by Store.
type Reloader interface {
	Reload(ctx context.Context) (*Snapshot, error)
}

// Refresher reloads the catalog on a cron schedule.
type Refresher struct {
	cron    *cron.Cron
	store   Reloader
	timeout time.Duration
}

// NewRefresher registers a reload job for a standard five-field schedule.
func NewRefresher(store Reloader, schedule string) (*Refresher, error) {
	r := &Refresher{
		cron:    cron.New(),
		store:   store,
		timeout: 2 * time.Minute,
	}
	if _, err := r.cron.AddFunc(schedule, r.RunOnce); err != nil {
		return nil, fmt.Errorf("invalid refresh schedule %q: %w", schedule, err)
	}
	return r, nil
}

// Start runs the scheduler in the background.
func (r *Refresher) Start() {
	logger.Infow("catalog refresher started", "entries", len(r.cron.Entries()))
	r.cron.Start()
}

// Stop halts the scheduler and waits for a running reload to finish or ctx
// to expire.
func (r *Refresher) Stop(ctx context.Context) {
	done := r.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}

// RunOnce performs a single scheduled reload.
func (r *Refresher) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	if _, err := r.store.Reload(ctx); err != nil {
		logger.Error("scheduled catalog reload failed, keeping previous snapshot", err)
	}
}
