package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alvinquach/fgo-planner-go/internal/gamedata"
	"github.com/alvinquach/fgo-planner-go/internal/repository"
)

// SyncGameData loads the servant and item catalog JSON configs, validates
// them against their schemas, and upserts the definitions to the database.
// The database copy is what the services read at runtime; the JSON files are
// the source of truth updated alongside game releases.
func SyncGameData(ctx context.Context, gameDataRepo repository.GameData) error {
	slog.Info(LogMsgSyncingGameData)
	loader := gamedata.NewLoader()

	servantConfig, err := loader.LoadServants(gamedata.ServantsConfigPath)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedLoadServants, err)
	}

	itemConfig, err := loader.LoadItems(gamedata.ItemsConfigPath)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedLoadItems, err)
	}

	servantsWritten, err := gameDataRepo.UpsertServants(ctx, servantConfig.Servants)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedSyncServants, err)
	}

	itemsWritten, err := gameDataRepo.UpsertItems(ctx, itemConfig.Items)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedSyncItems, err)
	}

	slog.Info(LogMsgGameDataSynced,
		"servants", servantsWritten,
		"items", itemsWritten,
		"servant_config_version", servantConfig.Version,
		"item_config_version", itemConfig.Version)

	return nil
}

// WarmServantCache preloads every catalog servant into the cache, so the
// first computations after startup or a refresh do not fall through to the
// database one servant at a time. Returns the number of servants loaded.
func WarmServantCache(ctx context.Context, gameDataRepo repository.GameData, cache *gamedata.ServantCache) (int, error) {
	servants, err := gameDataRepo.GetAllServants(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedWarmCache, err)
	}

	for _, servant := range servants {
		cache.Set(servant)
	}

	slog.Info(LogMsgServantCacheWarmed, "servants", len(servants))
	return len(servants), nil
}
