package handler

import (
	"context"
	"net/http"

	"github.com/alvinquach/fgo-planner-go/internal/gamedata"
)

// ItemCatalog defines the game item catalog access the gamedata handlers
// need. The game data repository satisfies it directly.
type ItemCatalog interface {
	GetAllItems(ctx context.Context) ([]*gamedata.Item, error)
	GetItemByID(ctx context.Context, itemID int) (*gamedata.Item, error)
}

type ListItemsResponse struct {
	Items []*gamedata.Item `json:"items"`
}

// HandleListItems returns the full enhancement material catalog
// @Summary List game items
// @Description List every enhancement material in the game catalog
// @Tags gamedata
// @Produce json
// @Success 200 {object} ListItemsResponse
// @Failure 500 {object} ErrorResponse
// @Router /gamedata/items [get]
func HandleListItems(catalog ItemCatalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := catalog.GetAllItems(r.Context())
		if err != nil {
			respondServiceError(w, r, "List items", err)
			return
		}

		respondJSON(w, http.StatusOK, ListItemsResponse{Items: items})
	}
}

// HandleGetItem returns one enhancement material by ID
// @Summary Get game item
// @Description Retrieve a single enhancement material from the game catalog
// @Tags gamedata
// @Produce json
// @Param itemID path int true "Item ID"
// @Success 200 {object} gamedata.Item
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /gamedata/items/{itemID} [get]
func HandleGetItem(catalog ItemCatalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, ok := GetPathParamInt64(r, w, "itemID")
		if !ok {
			return
		}

		item, err := catalog.GetItemByID(r.Context(), int(itemID))
		if err != nil {
			respondServiceError(w, r, "Get item", err)
			return
		}

		respondJSON(w, http.StatusOK, item)
	}
}
