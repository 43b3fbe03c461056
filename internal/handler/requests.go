package handler

import (
	"github.com/osse101/CharLedger_Go/internal/domain"
	"github.com/osse101/CharLedger_Go/internal/ledger"
)

// CharacterRef addresses one of an owner's characters
type CharacterRef struct {
	OwnerID string `json:"owner_id" validate:"required,max=64,excludesall=\x00\n\r\t"`
	Slot    int    `json:"slot" validate:"slot"`
}

// AdjustCreditsRequest grants or deducts credits
type AdjustCreditsRequest struct {
	CharacterRef
	Amount int64 `json:"amount" validate:"gt=0,lte=1000000000000"`
}

// AddItemRequest grants an item. Quantity defaults to 1.
type AddItemRequest struct {
	CharacterRef
	Item     string `json:"item" validate:"itemname"`
	Quantity int64  `json:"quantity" validate:"omitempty,gt=0,lte=1000000000000"`
	OneTime  bool   `json:"one_time"`
}

// RemoveItemRequest removes an item. Quantity defaults to 1.
type RemoveItemRequest struct {
	CharacterRef
	Item     string `json:"item" validate:"itemname"`
	Quantity int64  `json:"quantity" validate:"omitempty,gt=0,lte=1000000000000"`
}

// BuyItemRequest purchases from the shop. Quantity defaults to 1.
type BuyItemRequest struct {
	CharacterRef
	Item     string `json:"item" validate:"itemname"`
	Quantity int64  `json:"quantity" validate:"omitempty,gt=0,lte=1000000000000"`
}

// RenameCharacterRequest renames the character in a slot
type RenameCharacterRequest struct {
	CharacterRef
	Name string `json:"name" validate:"charname"`
}

// DeleteCharacterRequest deletes an owner's character by exact name
type DeleteCharacterRequest struct {
	OwnerID string `json:"owner_id" validate:"required,max=64,excludesall=\x00\n\r\t"`
	Name    string `json:"name" validate:"charname"`
}

// OpenPromptRequest opens a slot-selection prompt. A missing prompt id is generated.
type OpenPromptRequest struct {
	PromptID string `json:"prompt_id" validate:"omitempty,max=100"`
	OwnerID  string `json:"owner_id" validate:"required,max=64,excludesall=\x00\n\r\t"`
	Name     string `json:"name" validate:"charname"`
}

// ChooseSlotRequest answers a slot-selection prompt
type ChooseSlotRequest struct {
	PromptID    string `json:"prompt_id" validate:"required,max=100"`
	ResponderID string `json:"responder_id" validate:"required,max=64"`
	Slot        int    `json:"slot" validate:"slot"`
}

// CreditsResponse reports a balance change on a character
type CreditsResponse struct {
	Character *domain.Character `json:"character"`
	*ledger.CreditResult
}

// AddItemResponse reports the line after a grant
type AddItemResponse struct {
	Character *domain.Character `json:"character"`
	*ledger.GrantResult
}

// RemoveItemResponse reports the line after a removal
type RemoveItemResponse struct {
	Character *domain.Character `json:"character"`
	*ledger.RemoveResult
}

// BuyItemResponse reports a completed purchase
type BuyItemResponse struct {
	Character *domain.Character `json:"character"`
	*ledger.PurchaseResult
}

// InventoryResponse lists a character's inventory
type InventoryResponse struct {
	Character *domain.Character      `json:"character"`
	Items     []domain.InventoryLine `json:"items"`
}

// SuggestResponse lists shop items matching a query, best first
type SuggestResponse struct {
	Query string            `json:"query"`
	Items []domain.ShopItem `json:"items"`
}

func quantityOrOne(q int64) int64 {
	if q == 0 {
		return 1
	}
	return q
}
