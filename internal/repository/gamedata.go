package repository

import (
	"context"

	"github.com/alvinquach/fgo-planner-go/internal/gamedata"
)

// GameData defines the interface for game catalog persistence
type GameData interface {
	GetServantByID(ctx context.Context, servantID int) (*gamedata.Servant, error)
	GetAllServants(ctx context.Context) ([]*gamedata.Servant, error)
	GetItemByID(ctx context.Context, itemID int) (*gamedata.Item, error)
	GetAllItems(ctx context.Context) ([]*gamedata.Item, error)

	UpsertServants(ctx context.Context, servants []*gamedata.Servant) (int, error)
	UpsertItems(ctx context.Context, items []*gamedata.Item) (int, error)
}
