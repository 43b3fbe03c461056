package domain

import "time"

// Character is one of up to MaxSlot characters owned by a chat user.
type Character struct {
	ID      int64  `json:"id"`
	OwnerID string `json:"owner_id"`
	Slot    int    `json:"slot"`
	Name    string `json:"name"`
	Credits int64  `json:"credits"`
}

// PendingSelection is an open "pick a slot" prompt for a proposed character name.
// It is consumed exactly once, either by creating the character or by
// discovering the chosen slot is taken.
type PendingSelection struct {
	PromptID     string    `json:"prompt_id"`
	OwnerID      string    `json:"owner_id"`
	ProposedName string    `json:"proposed_name"`
	CreatedAt    time.Time `json:"created_at"`
}

// ValidSlot reports whether slot is one of the assignable character slots.
func ValidSlot(slot int) bool {
	return slot >= MinSlot && slot <= MaxSlot
}
