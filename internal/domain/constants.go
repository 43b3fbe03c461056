package domain

// Character slots
const (
	MinSlot = 1
	MaxSlot = 3
)

const (
	// LeaderboardSize is the number of characters shown by the leaderboard
	LeaderboardSize = 25

	// MaxCharacterNameLength bounds names proposed in prompts and renames
	MaxCharacterNameLength = 64

	// MaxItemNameLength bounds granted item names
	MaxItemNameLength = 100

	// MaxTransactionAmount bounds a single credit adjustment or quantity
	MaxTransactionAmount int64 = 1_000_000_000_000

	// ShopSuggestionLimit is how many "did you mean" names accompany a shop miss
	ShopSuggestionLimit = 5
)
