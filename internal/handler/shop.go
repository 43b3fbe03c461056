package handler

import (
	"context"
	"net/http"

	"github.com/osse101/CharLedger_Go/internal/domain"
	"github.com/osse101/CharLedger_Go/internal/fuzzy"
	"github.com/osse101/CharLedger_Go/internal/ledger"
)

// ShopCatalog is the read side of the shop. *shop.Catalog satisfies it.
type ShopCatalog interface {
	Items(ctx context.Context) ([]domain.ShopItem, error)
	Match(ctx context.Context, query string, limit int) ([]domain.ShopItem, error)
}

// HandleGetShop lists the shop catalog
// @Summary List shop items
// @Tags shop
// @Produce json
// @Success 200 {array} domain.ShopItem
// @Router /shop [get]
func HandleGetShop(catalog ShopCatalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := catalog.Items(r.Context())
		if err != nil {
			respondServiceError(w, r, "list_shop", err)
			return
		}
		respondJSON(w, http.StatusOK, items)
	}
}

// HandleSuggestShopItems ranks shop items against a partial name, for autocomplete
// @Summary Suggest shop items
// @Tags shop
// @Produce json
// @Param q query string false "Partial item name"
// @Param limit query int false "Max results (1-25)"
// @Success 200 {object} SuggestResponse
// @Router /shop/suggest [get]
func HandleSuggestShopItems(catalog ShopCatalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := GetOptionalQueryParam(r, "q", "")
		limit, ok := GetOptionalIntQueryParam(r, w, "limit", fuzzy.AutocompleteLimit)
		if !ok {
			return
		}

		items, err := catalog.Match(r.Context(), query, limit)
		if err != nil {
			respondServiceError(w, r, "suggest_shop", err)
			return
		}
		if items == nil {
			items = []domain.ShopItem{}
		}
		respondJSON(w, http.StatusOK, SuggestResponse{Query: query, Items: items})
	}
}

// HandleBuyItem purchases a shop item for a character
// @Summary Buy item
// @Tags shop
// @Accept json
// @Produce json
// @Param request body BuyItemRequest true "Purchase"
// @Success 200 {object} BuyItemResponse
// @Failure 400 {object} ErrorResponse "Insufficient funds"
// @Failure 404 {object} ErrorResponse "Unknown item, with suggestions"
// @Failure 409 {object} ErrorResponse "Already owned"
// @Router /shop/buy [post]
func HandleBuyItem(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BuyItemRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Buy item"); err != nil {
			return
		}

		c, ok := resolveCharacter(w, r, svc, req.CharacterRef)
		if !ok {
			return
		}
		res, err := svc.Purchase(r.Context(), c.ID, req.Item, quantityOrOne(req.Quantity))
		if err != nil {
			respondServiceError(w, r, ledger.OpPurchase, err)
			return
		}

		c.Credits = res.Balance
		respondJSON(w, http.StatusOK, BuyItemResponse{Character: c, PurchaseResult: res})
	}
}
