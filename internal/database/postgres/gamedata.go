package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alvinquach/fgo-planner-go/internal/domain"
	"github.com/alvinquach/fgo-planner-go/internal/gamedata"
	"github.com/alvinquach/fgo-planner-go/internal/repository"
)

// GameDataRepository implements repository.GameData for PostgreSQL.
// Catalog rows hold the full definition as a JSONB document keyed by ID,
// mirroring the shape of the JSON config files they are synced from.
type GameDataRepository struct {
	pool *pgxpool.Pool
}

// NewGameDataRepository creates a new GameDataRepository
func NewGameDataRepository(pool *pgxpool.Pool) repository.GameData {
	return &GameDataRepository{pool: pool}
}

// GetServantByID retrieves one catalog servant.
func (r *GameDataRepository) GetServantByID(ctx context.Context, servantID int) (*gamedata.Servant, error) {
	var data []byte
	err := r.pool.QueryRow(ctx,
		`SELECT data FROM game_servants WHERE servant_id = $1`, servantID).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGameServantNotFound
		}
		return nil, fmt.Errorf("failed to get game servant: %w", err)
	}

	var servant gamedata.Servant
	if err := unmarshalJSON("data", data, &servant); err != nil {
		return nil, err
	}
	return &servant, nil
}

// GetAllServants retrieves the full servant catalog.
func (r *GameDataRepository) GetAllServants(ctx context.Context) ([]*gamedata.Servant, error) {
	rows, err := r.pool.Query(ctx, `SELECT data FROM game_servants ORDER BY servant_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list game servants: %w", err)
	}
	defer rows.Close()

	var servants []*gamedata.Servant
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan game servant: %w", err)
		}
		var servant gamedata.Servant
		if err := unmarshalJSON("data", data, &servant); err != nil {
			return nil, err
		}
		servants = append(servants, &servant)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate game servants: %w", err)
	}
	return servants, nil
}

// GetItemByID retrieves one catalog item.
func (r *GameDataRepository) GetItemByID(ctx context.Context, itemID int) (*gamedata.Item, error) {
	var data []byte
	err := r.pool.QueryRow(ctx,
		`SELECT data FROM game_items WHERE item_id = $1`, itemID).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrGameItemNotFound
		}
		return nil, fmt.Errorf("failed to get game item: %w", err)
	}

	var item gamedata.Item
	if err := unmarshalJSON("data", data, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// GetAllItems retrieves the full item catalog.
func (r *GameDataRepository) GetAllItems(ctx context.Context) ([]*gamedata.Item, error) {
	rows, err := r.pool.Query(ctx, `SELECT data FROM game_items ORDER BY item_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list game items: %w", err)
	}
	defer rows.Close()

	var items []*gamedata.Item
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan game item: %w", err)
		}
		var item gamedata.Item
		if err := unmarshalJSON("data", data, &item); err != nil {
			return nil, err
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate game items: %w", err)
	}
	return items, nil
}

// UpsertServants writes catalog servants, replacing existing definitions.
// Returns the number of rows written.
func (r *GameDataRepository) UpsertServants(ctx context.Context, servants []*gamedata.Servant) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer SafeRollback(ctx, tx)

	written := 0
	for _, servant := range servants {
		if servant == nil {
			continue
		}
		data, err := marshalJSON("data", servant)
		if err != nil {
			return 0, err
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO game_servants (servant_id, data)
			VALUES ($1, $2)
			ON CONFLICT (servant_id) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()`,
			servant.ID, data)
		if err != nil {
			return 0, fmt.Errorf("failed to upsert game servant %d: %w", servant.ID, err)
		}
		written++
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return written, nil
}

// UpsertItems writes catalog items, replacing existing definitions.
// Returns the number of rows written.
func (r *GameDataRepository) UpsertItems(ctx context.Context, items []*gamedata.Item) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer SafeRollback(ctx, tx)

	written := 0
	for _, item := range items {
		if item == nil {
			continue
		}
		data, err := marshalJSON("data", item)
		if err != nil {
			return 0, err
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO game_items (item_id, data)
			VALUES ($1, $2)
			ON CONFLICT (item_id) DO UPDATE SET data = EXCLUDED.data, updated_at = NOW()`,
			item.ID, data)
		if err != nil {
			return 0, fmt.Errorf("failed to upsert game item %d: %w", item.ID, err)
		}
		written++
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return written, nil
}
