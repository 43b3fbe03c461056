package ledger

// Operation names used for spans, logs and rejection metrics
const (
	OpAdjustCredits   = "adjust_credits"
	OpGrantItem       = "grant_item"
	OpRemoveItem      = "remove_item"
	OpPurchase        = "purchase"
	OpListInventory   = "list_inventory"
	OpDeleteCharacter = "delete_character"
	OpRenameCharacter = "rename_character"
)

// InventoryPageSize is how many lines ListInventory fetches per store round trip
const InventoryPageSize = 50

const tracerName = "github.com/osse101/CharLedger_Go/internal/ledger"

// Log messages
const (
	LogMsgCreditsAdjusted   = "Credits adjusted"
	LogMsgItemGranted       = "Item granted"
	LogMsgItemRemoved       = "Item removed"
	LogMsgPurchaseCompleted = "Purchase completed"
	LogMsgCharacterDeleted  = "Character deleted"
	LogMsgCharacterRenamed  = "Character renamed"
	LogMsgOperationRejected = "Ledger operation rejected"
	LogMsgOperationFailed   = "Ledger operation failed"
)

// Error message fragments for wrapped store failures
const (
	ErrMsgBeginTx         = "begin transaction"
	ErrMsgCommitTx        = "commit transaction"
	ErrMsgLockCharacter   = "lock character"
	ErrMsgAddCredits      = "add credits"
	ErrMsgGetLine         = "get inventory line"
	ErrMsgWriteLine       = "write inventory line"
	ErrMsgListInventory   = "list inventory"
	ErrMsgLookupShopItem  = "look up shop item"
	ErrMsgLookupCharacter = "look up character"
	ErrMsgDeleteCharacter = "delete character"
	ErrMsgRenameCharacter = "rename character"
	ErrMsgListCharacters  = "list characters"
	ErrMsgLoadLeaderboard = "load leaderboard"
)
