package pending

import "time"

// Operation names used for spans, logs and rejection metrics
const (
	OpOpen       = "open_prompt"
	OpChooseSlot = "choose_slot"
	OpSweep      = "sweep_prompts"
)

// Sweep defaults
const (
	DefaultTTL           = 15 * time.Minute
	DefaultSweepInterval = 5 * time.Minute
)

const tracerName = "github.com/osse101/CharLedger_Go/internal/pending"

// Log messages
const (
	LogMsgPromptOpened      = "Slot prompt opened"
	LogMsgCharacterCreated  = "Character created"
	LogMsgSlotOccupied      = "Chosen slot already occupied"
	LogMsgSlotRaceLost      = "Slot taken concurrently"
	LogMsgPromptsSwept      = "Abandoned slot prompts swept"
	LogMsgOperationRejected = "Slot selection rejected"
	LogMsgOperationFailed   = "Slot selection failed"
)

// Error message fragments for wrapped store failures
const (
	ErrMsgBeginTx        = "begin transaction"
	ErrMsgCommitTx       = "commit transaction"
	ErrMsgUpsertPending  = "open prompt"
	ErrMsgGetPending     = "get prompt"
	ErrMsgDeletePending  = "consume prompt"
	ErrMsgGetSlot        = "look up slot"
	ErrMsgInsert         = "create character"
	ErrMsgListCharacters = "list characters"
	ErrMsgSweep          = "sweep prompts"
)
