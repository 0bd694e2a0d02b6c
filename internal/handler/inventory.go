package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/dotbio/dotbio-api/internal/inventory"
	"github.com/dotbio/dotbio-api/internal/logger"
)

// SellItemsRequest is the request body for liquidating inventory items.
// Exactly one of item_ids / sell_all must be provided.
type SellItemsRequest struct {
	ItemIDs []string `json:"item_ids" validate:"omitempty,dive,uuid"`
	SellAll bool     `json:"sell_all"`
}

// SellItemsResponse is returned after a successful liquidation
type SellItemsResponse struct {
	Message string                `json:"message"`
	Result  *inventory.SellResult `json:"result"`
}

// HandleGetInventory returns the authenticated user's inventory
func HandleGetInventory(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := AuthenticatedUser(w, r)
		if !ok {
			return
		}

		items, err := svc.ListItems(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetInventoryFailed, err)
			return
		}
		respondJSON(w, http.StatusOK, DataResponse{Data: items})
	}
}

// HandleSellItems liquidates the selected items for the authenticated user
func HandleSellItems(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := AuthenticatedUser(w, r)
		if !ok {
			return
		}

		var req SellItemsRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Sell items"); err != nil {
			return
		}

		itemIDs := make([]uuid.UUID, 0, len(req.ItemIDs))
		for _, raw := range req.ItemIDs {
			id, err := uuid.Parse(raw)
			if err != nil {
				respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestSummary)
				return
			}
			itemIDs = append(itemIDs, id)
		}

		log := logger.FromContext(r.Context())
		log.Debug("Selling items", "user_id", userID, "item_count", len(itemIDs), "sell_all", req.SellAll)

		result, err := svc.Sell(r.Context(), userID, itemIDs, req.SellAll)
		if err != nil {
			respondServiceError(w, r, ErrMsgSellItemsFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, SellItemsResponse{
			Message: MsgItemsSoldSuccess,
			Result:  result,
		})
	}
}
