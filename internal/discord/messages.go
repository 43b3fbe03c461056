package discord

// Friendly message constants for Discord responses
const (
	// Characters
	MsgNoCharacters        = "No characters yet. Use `/char create` first."
	MsgNoCharactersInList  = "*You have no characters yet. Use `/char create`.*"
	MsgNoCharacterInSlot   = "❌ No character in slot **%d**."
	MsgNoCharacterNamed    = "❌ No character named **%s** found."
	MsgChooseSlot          = "Choose a slot for **%s**."
	MsgCharacterCreated    = "Created **%s** in slot **%d**."
	MsgCharacterDeleted    = "Removed **%s** from slot **%d**."
	MsgCharacterRenamed    = "Slot **%d** is now **%s**."
	MsgSlotAlreadyTaken    = "Slot %d is already **%s**."
	MsgNotYourMenu         = "❌ That's not your menu."
	MsgSelectionExpired    = "❌ That selection has expired. Run `/char create` again."
	MsgInvalidSlot         = "❌ Invalid slot."
	MsgUnknownPickerChoice = "❌ Character not found."

	// Economy
	MsgInsufficientFunds = "❌ Not enough credits. Need %s • Current: %s."
	MsgAlreadyOwned      = "❌ %s can only be purchased once for this character."
	MsgItemNotFound      = "❌ Item not found."
	MsgDidYouMean        = " Did you mean: %s"
	MsgNotOwned          = "❌ That character doesn't have any **%s**."
	MsgNotEnoughItems    = "❌ Not enough **%s**. Current: %s."
	MsgEmptyInventory    = "*Empty*"
	MsgEmptyShop         = "*No items available*"
	MsgEmptyLeaderboard  = "No characters yet."

	// Moderation
	MsgNoPermission = "❌ You don't have permission to use this."

	MsgGenericError  = "Something went wrong. (Check bot logs)"
	MsgOperatorAlert = "<@%s> `%s` failed in this channel. Check the bot logs."
)

// Embed titles
const (
	TitleCreateCharacter = "Create Character"
	TitleCharacterMade   = "Character Created"
	TitleCharacterGone   = "Character Deleted"
	TitleCharacterRename = "Character Renamed"
	TitleCharacterList   = "%s's Characters"
	TitleBalance         = "%s - Balance"
	TitleInventory       = "%s - Inventory"
	TitlePickBalance     = "Choose a character for Balance"
	TitlePickInventory   = "Choose a character for Inventory"
	TitleShop            = "Shop"
	TitlePurchase        = "Purchase Successful"
	TitleLeaderboard     = "Leaderboard - Top %d"
)

// Custom ids for message components
const (
	CustomIDCharCreate    = "char_create_"
	CustomIDPickBalance   = "pick_balance"
	CustomIDPickInventory = "pick_inventory"
)

// Embed colors
const (
	ColorInfo    = 0x3498db
	ColorSuccess = 0x2ecc71
	ColorDanger  = 0xe74c3c
	ColorShop    = 0xf39c12
	ColorMod     = 0x95a5a6
)
