package handler

import (
	"context"
	"net/http"

	"github.com/osse101/CharLedger_Go/internal/domain"
	"github.com/osse101/CharLedger_Go/internal/ledger"
	"github.com/osse101/CharLedger_Go/internal/logger"
)

// HandleAddCredits grants credits to a character
// @Summary Add credits
// @Tags ledger
// @Accept json
// @Produce json
// @Param request body AdjustCreditsRequest true "Credit grant"
// @Success 200 {object} CreditsResponse
// @Router /credits/add [post]
func HandleAddCredits(svc ledger.Service) http.HandlerFunc {
	return handleCredits(svc, "Add credits", svc.GrantCredits)
}

// HandleRemoveCredits deducts credits from a character
// @Summary Remove credits
// @Tags ledger
// @Accept json
// @Produce json
// @Param request body AdjustCreditsRequest true "Credit deduction"
// @Success 200 {object} CreditsResponse
// @Failure 400 {object} ErrorResponse "Insufficient funds"
// @Router /credits/remove [post]
func HandleRemoveCredits(svc ledger.Service) http.HandlerFunc {
	return handleCredits(svc, "Remove credits", svc.DeductCredits)
}

func handleCredits(svc ledger.Service, action string, apply func(context.Context, int64, int64) (*ledger.CreditResult, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AdjustCreditsRequest
		if err := DecodeAndValidateRequest(r, w, &req, action); err != nil {
			return
		}
		LogRequestFields(logger.FromContext(r.Context()), "owner_id", req.OwnerID, "slot", req.Slot, "amount", req.Amount)

		c, ok := resolveCharacter(w, r, svc, req.CharacterRef)
		if !ok {
			return
		}
		res, err := apply(r.Context(), c.ID, req.Amount)
		if err != nil {
			respondServiceError(w, r, ledger.OpAdjustCredits, err)
			return
		}

		c.Credits = res.Balance
		respondJSON(w, http.StatusOK, CreditsResponse{Character: c, CreditResult: res})
	}
}

// HandleAddItem grants an item to a character
// @Summary Add item
// @Tags ledger
// @Accept json
// @Produce json
// @Param request body AddItemRequest true "Item grant"
// @Success 200 {object} AddItemResponse
// @Router /items/add [post]
func HandleAddItem(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AddItemRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Add item"); err != nil {
			return
		}

		c, ok := resolveCharacter(w, r, svc, req.CharacterRef)
		if !ok {
			return
		}
		res, err := svc.GrantItem(r.Context(), c.ID, req.Item, quantityOrOne(req.Quantity), req.OneTime)
		if err != nil {
			respondServiceError(w, r, ledger.OpGrantItem, err)
			return
		}
		respondJSON(w, http.StatusOK, AddItemResponse{Character: c, GrantResult: res})
	}
}

// HandleRemoveItem removes an item from a character
// @Summary Remove item
// @Tags ledger
// @Accept json
// @Produce json
// @Param request body RemoveItemRequest true "Item removal"
// @Success 200 {object} RemoveItemResponse
// @Failure 400 {object} ErrorResponse "Not owned or not enough"
// @Router /items/remove [post]
func HandleRemoveItem(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RemoveItemRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Remove item"); err != nil {
			return
		}

		c, ok := resolveCharacter(w, r, svc, req.CharacterRef)
		if !ok {
			return
		}
		res, err := svc.RemoveItem(r.Context(), c.ID, req.Item, quantityOrOne(req.Quantity))
		if err != nil {
			respondServiceError(w, r, ledger.OpRemoveItem, err)
			return
		}
		respondJSON(w, http.StatusOK, RemoveItemResponse{Character: c, RemoveResult: res})
	}
}

// HandleGetInventory lists a character's inventory
// @Summary Get inventory
// @Tags ledger
// @Produce json
// @Param owner_id query string true "Owner ID"
// @Param slot query int true "Slot (1-3)"
// @Success 200 {object} InventoryResponse
// @Router /inventory [get]
func HandleGetInventory(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := GetQueryParam(r, w, "owner_id")
		if !ok {
			return
		}
		slot, ok := GetIntQueryParam(r, w, "slot")
		if !ok {
			return
		}

		c, ok := resolveCharacter(w, r, svc, CharacterRef{OwnerID: ownerID, Slot: slot})
		if !ok {
			return
		}
		items, err := svc.Inventory(r.Context(), c.ID)
		if err != nil {
			respondServiceError(w, r, ledger.OpListInventory, err)
			return
		}
		respondJSON(w, http.StatusOK, InventoryResponse{Character: c, Items: items})
	}
}

// resolveCharacter looks up the addressed character, writing the error
// response when it cannot.
func resolveCharacter(w http.ResponseWriter, r *http.Request, svc ledger.Service, ref CharacterRef) (*domain.Character, bool) {
	c, err := svc.CharacterBySlot(r.Context(), ref.OwnerID, ref.Slot)
	if err != nil {
		respondServiceError(w, r, "resolve_character", err)
		return nil, false
	}
	return c, true
}
