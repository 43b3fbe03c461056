package ledger

import (
	"fmt"
	"unicode/utf8"

	"github.com/osse101/CharLedger_Go/internal/domain"
	"github.com/osse101/CharLedger_Go/internal/naming"
)

func validateAmount(amount int64) error {
	if amount <= 0 || amount > domain.MaxTransactionAmount {
		return domain.ErrInvalidAmount
	}
	return nil
}

func validateDelta(delta int64) error {
	if delta == 0 || delta > domain.MaxTransactionAmount || delta < -domain.MaxTransactionAmount {
		return domain.ErrInvalidAmount
	}
	return nil
}

// cleanItemName returns the display form of name or a validation error
func cleanItemName(name string) (string, error) {
	clean := naming.Clean(name)
	if clean == "" {
		return "", fmt.Errorf("%w: item name is required", domain.ErrInvalidInput)
	}
	if utf8.RuneCountInString(clean) > domain.MaxItemNameLength {
		return "", fmt.Errorf("%w: item name longer than %d characters", domain.ErrInvalidInput, domain.MaxItemNameLength)
	}
	return clean, nil
}

// CleanCharacterName validates a proposed character name and returns its display form
func CleanCharacterName(name string) (string, error) {
	clean := naming.Clean(name)
	if clean == "" {
		return "", fmt.Errorf("%w: character name is required", domain.ErrInvalidInput)
	}
	if utf8.RuneCountInString(clean) > domain.MaxCharacterNameLength {
		return "", fmt.Errorf("%w: character name longer than %d characters", domain.ErrInvalidInput, domain.MaxCharacterNameLength)
	}
	return clean, nil
}

func validateSlot(slot int) error {
	if !domain.ValidSlot(slot) {
		return domain.ErrInvalidSlot
	}
	return nil
}
