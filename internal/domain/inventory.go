package domain

// InventoryLine is a character's holding of one item.
// Item keeps the casing of the first grant; identity is case-insensitive.
type InventoryLine struct {
	CharacterID int64  `json:"character_id"`
	Item        string `json:"item"`
	Quantity    int64  `json:"quantity"`
	OneTime     bool   `json:"one_time"`
}

// ShopItem is a purchasable catalog entry.
type ShopItem struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Description string `json:"description,omitempty"`
	OneTime     bool   `json:"one_time"`
}

// LeaderboardEntry is a ranked character.
type LeaderboardEntry struct {
	Rank int `json:"rank"`
	Character
}
