package ledger

import (
	"context"
	"iter"

	"github.com/osse101/CharLedger_Go/internal/domain"
	"github.com/osse101/CharLedger_Go/internal/naming"
)

// ListInventory yields the character's lines ordered by item name. Lines are
// read a page at a time, so the sequence can be abandoned early cheaply. Each
// iteration starts over from the first line. A store failure or a missing
// character is yielded once as the error and ends the sequence.
func (s *service) ListInventory(ctx context.Context, characterID int64) iter.Seq2[domain.InventoryLine, error] {
	return func(yield func(domain.InventoryLine, error) bool) {
		if _, err := s.characters.GetCharacterByID(ctx, characterID); err != nil {
			yield(domain.InventoryLine{}, storeError(ErrMsgLookupCharacter, err))
			return
		}

		after := ""
		for {
			page, err := s.ledger.ListInventoryPage(ctx, characterID, after, s.pageSize)
			if err != nil {
				yield(domain.InventoryLine{}, storeError(ErrMsgListInventory, err))
				return
			}
			for _, line := range page {
				if !yield(line, nil) {
					return
				}
			}
			if len(page) < s.pageSize {
				return
			}
			after = naming.Key(page[len(page)-1].Item)
		}
	}
}

// Inventory collects ListInventory
func (s *service) Inventory(ctx context.Context, characterID int64) (lines []domain.InventoryLine, err error) {
	ctx, span := s.start(ctx, OpListInventory, characterID)
	defer func() { s.finish(ctx, span, OpListInventory, err) }()

	lines = []domain.InventoryLine{}
	for line, err := range s.ListInventory(ctx, characterID) {
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}
