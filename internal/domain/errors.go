package domain

import (
	"errors"
	"fmt"
)

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Input errors
	ErrMsgInvalidInput  = "invalid input"
	ErrMsgInvalidSlot   = "slot must be 1, 2, or 3"
	ErrMsgInvalidAmount = "amount must be a positive integer"

	// Lookup errors
	ErrMsgCharacterNotFound = "character not found"
	ErrMsgPendingNotFound   = "selection not found or already used"
	ErrMsgShopItemNotFound  = "shop item not found"

	// Ledger errors
	ErrMsgInsufficientFunds = "insufficient funds"
	ErrMsgAlreadyOwned      = "item already owned"
	ErrMsgNotOwned          = "item not owned"
	ErrMsgNotEnough         = "not enough items"

	// Slot selection errors
	ErrMsgSlotOccupied   = "slot already occupied"
	ErrMsgNotPromptOwner = "selection belongs to another user"

	// Database/System errors
	ErrMsgDatabaseError = "database error"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context,
// or return a *LedgerError when the caller needs the current state.
var (
	ErrInvalidInput  = errors.New(ErrMsgInvalidInput)
	ErrInvalidSlot   = fmt.Errorf("%w: %s", ErrInvalidInput, ErrMsgInvalidSlot)
	ErrInvalidAmount = fmt.Errorf("%w: %s", ErrInvalidInput, ErrMsgInvalidAmount)

	ErrCharacterNotFound = errors.New(ErrMsgCharacterNotFound)
	ErrPendingNotFound   = errors.New(ErrMsgPendingNotFound)
	ErrShopItemNotFound  = errors.New(ErrMsgShopItemNotFound)

	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)
	ErrAlreadyOwned      = errors.New(ErrMsgAlreadyOwned)
	ErrNotOwned          = errors.New(ErrMsgNotOwned)
	ErrNotEnough         = errors.New(ErrMsgNotEnough)

	ErrSlotOccupied   = errors.New(ErrMsgSlotOccupied)
	ErrNotPromptOwner = errors.New(ErrMsgNotPromptOwner)

	ErrDatabaseError = errors.New(ErrMsgDatabaseError)
)

// LedgerError is a business rejection that carries the state observed when
// the operation was refused. errors.Is matches it against Reason.
type LedgerError struct {
	Op          string
	Reason      error
	CharacterID int64
	Item        string
	Balance     int64
	Required    int64
	Quantity    int64
	Existing    *Character
	Suggestions []string
}

func (e *LedgerError) Error() string {
	switch {
	case errors.Is(e.Reason, ErrInsufficientFunds):
		return fmt.Sprintf("%s: balance %d, need %d", e.Reason, e.Balance, e.Required)
	case errors.Is(e.Reason, ErrNotEnough):
		return fmt.Sprintf("%s: have %d %s, need %d", e.Reason, e.Quantity, e.Item, e.Required)
	case errors.Is(e.Reason, ErrSlotOccupied) && e.Existing != nil:
		return fmt.Sprintf("%s: slot %d holds %s", e.Reason, e.Existing.Slot, e.Existing.Name)
	case e.Item != "":
		return fmt.Sprintf("%s: %s", e.Reason, e.Item)
	default:
		return e.Reason.Error()
	}
}

func (e *LedgerError) Unwrap() error {
	return e.Reason
}

// AsLedgerError extracts a *LedgerError from err's chain.
func AsLedgerError(err error) (*LedgerError, bool) {
	var le *LedgerError
	if errors.As(err, &le) {
		return le, true
	}
	return nil, false
}
