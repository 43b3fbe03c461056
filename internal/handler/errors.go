package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	// HTTP status messages
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"

	// Query parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidQueryParam = "Invalid %s query parameter"
)

// Success messages for API responses
const (
	MsgCharacterDeleted  = "Character deleted"
	MsgCharacterNotFound = "No character with that name"
	MsgPromptOpened      = "Choose a slot"
	MsgCharacterCreated  = "Character created"
)

// Log messages
const (
	LogMsgDecodeFailed    = "Failed to decode request"
	LogMsgRequestDecoded  = "Request decoded"
	LogMsgMissingParam    = "Missing query parameter"
	LogMsgReadinessFailed = "Readiness check failed"
	LogMsgRequestRejected = "Request rejected"
	LogMsgRequestFailed   = "Request failed"
	LogMsgEncodeFailed    = "Failed to encode JSON response"
	LogMsgWriteFailed     = "Failed to write response buffer"
	LogMsgOddLogArguments = "LogRequestFields called with odd number of arguments"
	LogMsgRequestDetails  = "Request details"
)
