package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/osse101/CharLedger_Go/internal/domain"
	"github.com/osse101/CharLedger_Go/internal/logger"
	"github.com/osse101/CharLedger_Go/internal/metrics"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response. Reason and Details are set
// for business rejections so clients can render the current state.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Reason  string            `json:"reason,omitempty"`
	Details *RejectionDetails `json:"details,omitempty"`
}

// RejectionDetails is the state observed when an operation was refused
type RejectionDetails struct {
	Item        string            `json:"item,omitempty"`
	Balance     int64             `json:"balance"`
	Required    int64             `json:"required,omitempty"`
	Quantity    int64             `json:"quantity,omitempty"`
	Suggestions []string          `json:"suggestions,omitempty"`
	Existing    *domain.Character `json:"existing,omitempty"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error(LogMsgEncodeFailed, "error", err)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error(LogMsgWriteFailed, "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError maps a service error to a status code and a
// user-facing body. Business rejections are logged at Warn, failures at Error.
func respondServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status, message := mapServiceErrorToUserMessage(err)
	reason := metrics.ReasonFor(err)

	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(LogMsgRequestFailed, "operation", op, "error", err)
	} else {
		log.Warn(LogMsgRequestRejected, "operation", op, "reason", reason, "error", err)
	}

	resp := ErrorResponse{Error: message, Reason: reason}
	if le, ok := domain.AsLedgerError(err); ok {
		resp.Details = &RejectionDetails{
			Item:        le.Item,
			Balance:     le.Balance,
			Required:    le.Required,
			Quantity:    le.Quantity,
			Suggestions: le.Suggestions,
			Existing:    le.Existing,
		}
	}
	respondJSON(w, status, resp)
}

// User-facing error messages for service errors
const (
	// Generic messages
	ErrMsgGenericServerError  = "Something went wrong"
	ErrMsgUnknownError        = "Unknown error"
	ErrMsgInvalidRequestError = "Invalid request. Please check your inputs."
	ErrMsgInvalidSlotError    = "Slot must be 1, 2, or 3"
	ErrMsgInvalidAmountError  = "Amount must be a positive whole number"

	// Character messages
	ErrMsgCharacterNotFoundError = "No character in that slot"
	ErrMsgSlotOccupiedError      = "That slot is already taken"
	ErrMsgPendingNotFoundError   = "That selection has expired or was already used"
	ErrMsgNotPromptOwnerError    = "That selection belongs to someone else"

	// Inventory and shop messages
	ErrMsgNotEnoughCreditsError = "Not enough credits"
	ErrMsgAlreadyOwnedError     = "You already own that item"
	ErrMsgNotInInventoryError   = "You don't have that item"
	ErrMsgInsufficientItemsErr  = "Not enough items"
	ErrMsgShopItemNotFoundError = "That item is not sold in the shop"
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrDatabaseError):
		return http.StatusInternalServerError, ErrMsgGenericServerError
	case errors.Is(err, domain.ErrInvalidSlot):
		return http.StatusBadRequest, ErrMsgInvalidSlotError
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest, ErrMsgInvalidAmountError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidRequestError
	case errors.Is(err, domain.ErrCharacterNotFound):
		return http.StatusNotFound, ErrMsgCharacterNotFoundError
	case errors.Is(err, domain.ErrPendingNotFound):
		return http.StatusNotFound, ErrMsgPendingNotFoundError
	case errors.Is(err, domain.ErrShopItemNotFound):
		return http.StatusNotFound, ErrMsgShopItemNotFoundError
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusBadRequest, ErrMsgNotEnoughCreditsError
	case errors.Is(err, domain.ErrNotEnough):
		return http.StatusBadRequest, ErrMsgInsufficientItemsErr
	case errors.Is(err, domain.ErrNotOwned):
		return http.StatusBadRequest, ErrMsgNotInInventoryError
	case errors.Is(err, domain.ErrAlreadyOwned):
		return http.StatusConflict, ErrMsgAlreadyOwnedError
	case errors.Is(err, domain.ErrSlotOccupied):
		return http.StatusConflict, ErrMsgSlotOccupiedError
	case errors.Is(err, domain.ErrNotPromptOwner):
		return http.StatusForbidden, ErrMsgNotPromptOwnerError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
