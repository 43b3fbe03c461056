package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
)

// Error Messages - Character Operations
const (
	ErrMsgFailedToGetCharacter    = "failed to get character"
	ErrMsgFailedToLockCharacter   = "failed to lock character"
	ErrMsgFailedToListCharacters  = "failed to list characters"
	ErrMsgFailedToInsertCharacter = "failed to insert character"
	ErrMsgFailedToRenameCharacter = "failed to rename character"
	ErrMsgFailedToDeleteCharacter = "failed to delete character"
	ErrMsgFailedToGetLeaderboard  = "failed to get leaderboard"
	ErrMsgFailedToAddCredits      = "failed to add credits"
)

// Error Messages - Inventory Operations
const (
	ErrMsgFailedToGetInventoryLine    = "failed to get inventory line"
	ErrMsgFailedToListInventory       = "failed to list inventory"
	ErrMsgFailedToInsertInventoryLine = "failed to insert inventory line"
	ErrMsgFailedToUpdateInventoryLine = "failed to update inventory line"
	ErrMsgFailedToDeleteInventoryLine = "failed to delete inventory line"
	ErrMsgFailedToDeleteInventory     = "failed to delete inventory"
)

// Error Messages - Shop Operations
const (
	ErrMsgFailedToListShopItems      = "failed to list shop items"
	ErrMsgFailedToGetShopItem        = "failed to get shop item"
	ErrMsgFailedToUpsertShopItem     = "failed to upsert shop item"
	ErrMsgFailedToDeleteShopItems    = "failed to delete stale shop items"
	ErrMsgFailedToGetSyncMetadata    = "failed to get sync metadata"
	ErrMsgFailedToUpsertSyncMetadata = "failed to upsert sync metadata"
)

// Error Messages - Pending Selection Operations
const (
	ErrMsgFailedToUpsertPending = "failed to upsert pending selection"
	ErrMsgFailedToGetPending    = "failed to get pending selection"
	ErrMsgFailedToDeletePending = "failed to delete pending selection"
	ErrMsgFailedToSweepPending  = "failed to sweep pending selections"
)
