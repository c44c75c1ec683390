package worker

import (
	"context"

	"github.com/alvinquach/fgo-planner-go/internal/gamedata"
	"github.com/alvinquach/fgo-planner-go/internal/logger"
)

// CatalogRefreshJob re-syncs the game data catalog from the bundled config
// files, drops any cached servant entries so readers pick up the new data,
// and optionally re-warms the cache from the fresh catalog.
type CatalogRefreshJob struct {
	Sync  func(ctx context.Context) error
	Cache *gamedata.ServantCache
	Warm  func(ctx context.Context) error
}

// NewCatalogRefreshJob creates a refresh job. The cache may be nil when
// caching is disabled, and warm may be nil to leave the cache cold after a
// refresh (entries reload lazily on lookup).
func NewCatalogRefreshJob(sync func(ctx context.Context) error, cache *gamedata.ServantCache, warm func(ctx context.Context) error) *CatalogRefreshJob {
	return &CatalogRefreshJob{
		Sync:  sync,
		Cache: cache,
		Warm:  warm,
	}
}

// Process runs one refresh cycle.
func (j *CatalogRefreshJob) Process(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgCatalogRefreshStart)

	if err := j.Sync(ctx); err != nil {
		log.Error(LogMsgCatalogRefreshFailed, "error", err)
		return err
	}

	if j.Cache != nil {
		j.Cache.Clear()
	}

	// A warm failure is not fatal: entries reload lazily on lookup.
	if j.Warm != nil {
		if err := j.Warm(ctx); err != nil {
			log.Warn(LogMsgCatalogWarmFailed, "error", err)
		}
	}

	log.Info(LogMsgCatalogRefreshDone)
	return nil
}
