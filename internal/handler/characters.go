package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/osse101/CharLedger_Go/internal/domain"
	"github.com/osse101/CharLedger_Go/internal/ledger"
	"github.com/osse101/CharLedger_Go/internal/logger"
	"github.com/osse101/CharLedger_Go/internal/pending"
)

// HandleListCharacters lists an owner's characters
// @Summary List characters
// @Tags characters
// @Produce json
// @Param owner_id query string true "Owner ID"
// @Success 200 {array} domain.Character
// @Router /characters [get]
func HandleListCharacters(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := GetQueryParam(r, w, "owner_id")
		if !ok {
			return
		}

		list, err := svc.Characters(r.Context(), ownerID)
		if err != nil {
			respondServiceError(w, r, "list_characters", err)
			return
		}
		respondJSON(w, http.StatusOK, list)
	}
}

// HandleGetCharacter returns the character in an owner's slot
// @Summary Get character by slot
// @Tags characters
// @Produce json
// @Param owner_id query string true "Owner ID"
// @Param slot query int true "Slot (1-3)"
// @Success 200 {object} domain.Character
// @Failure 404 {object} ErrorResponse
// @Router /characters/slot [get]
func HandleGetCharacter(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := GetQueryParam(r, w, "owner_id")
		if !ok {
			return
		}
		slot, ok := GetIntQueryParam(r, w, "slot")
		if !ok {
			return
		}

		c, err := svc.CharacterBySlot(r.Context(), ownerID, slot)
		if err != nil {
			respondServiceError(w, r, "get_character", err)
			return
		}
		respondJSON(w, http.StatusOK, c)
	}
}

// HandleRenameCharacter renames the character in a slot
// @Summary Rename character
// @Tags characters
// @Accept json
// @Produce json
// @Param request body RenameCharacterRequest true "Rename request"
// @Success 200 {object} domain.Character
// @Failure 404 {object} ErrorResponse
// @Router /characters/rename [post]
func HandleRenameCharacter(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RenameCharacterRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Rename character"); err != nil {
			return
		}

		c, err := svc.RenameCharacter(r.Context(), req.OwnerID, req.Slot, req.Name)
		if err != nil {
			respondServiceError(w, r, ledger.OpRenameCharacter, err)
			return
		}
		respondJSON(w, http.StatusOK, c)
	}
}

// HandleDeleteCharacter deletes a character by exact name. A missing
// character is reported with deleted=false, not an error status.
// @Summary Delete character
// @Tags characters
// @Accept json
// @Produce json
// @Param request body DeleteCharacterRequest true "Delete request"
// @Success 200 {object} DataResponse
// @Router /characters/delete [post]
func HandleDeleteCharacter(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req DeleteCharacterRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Delete character"); err != nil {
			return
		}

		res, err := svc.DeleteCharacter(r.Context(), req.OwnerID, req.Name)
		if err != nil {
			respondServiceError(w, r, ledger.OpDeleteCharacter, err)
			return
		}

		msg := MsgCharacterDeleted
		if !res.Deleted {
			msg = MsgCharacterNotFound
		}
		respondJSON(w, http.StatusOK, DataResponse{Message: msg, Data: res})
	}
}

// HandleOpenPrompt starts character creation with a proposed name
// @Summary Open slot selection
// @Tags characters
// @Accept json
// @Produce json
// @Param request body OpenPromptRequest true "Prompt request"
// @Success 201 {object} DataResponse
// @Router /characters/prompt [post]
func HandleOpenPrompt(svc pending.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req OpenPromptRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Open prompt"); err != nil {
			return
		}
		if req.PromptID == "" {
			req.PromptID = uuid.NewString()
		}

		res, err := svc.Open(r.Context(), req.PromptID, req.OwnerID, req.Name)
		if err != nil {
			respondServiceError(w, r, pending.OpOpen, err)
			return
		}
		respondJSON(w, http.StatusCreated, DataResponse{Message: MsgPromptOpened, Data: res})
	}
}

// HandleChooseSlot answers a prompt and creates the character
// @Summary Choose slot
// @Tags characters
// @Accept json
// @Produce json
// @Param request body ChooseSlotRequest true "Slot choice"
// @Success 201 {object} DataResponse
// @Failure 409 {object} ErrorResponse "Slot occupied"
// @Failure 403 {object} ErrorResponse "Not the prompt owner"
// @Failure 404 {object} ErrorResponse "Prompt expired"
// @Router /characters/prompt/choose [post]
func HandleChooseSlot(svc pending.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ChooseSlotRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Choose slot"); err != nil {
			return
		}

		c, err := svc.ChooseSlot(r.Context(), req.PromptID, req.ResponderID, req.Slot)
		if err != nil {
			respondServiceError(w, r, pending.OpChooseSlot, err)
			return
		}

		logger.FromContext(r.Context()).Info(MsgCharacterCreated, "character_id", c.ID, "slot", c.Slot)
		respondJSON(w, http.StatusCreated, DataResponse{Message: MsgCharacterCreated, Data: c})
	}
}

// HandleGetLeaderboard ranks characters by credits
// @Summary Leaderboard
// @Tags characters
// @Produce json
// @Param limit query int false "Max entries (1-25)"
// @Success 200 {array} domain.LeaderboardEntry
// @Router /leaderboard [get]
func HandleGetLeaderboard(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, ok := GetOptionalIntQueryParam(r, w, "limit", domain.LeaderboardSize)
		if !ok {
			return
		}

		board, err := svc.Leaderboard(r.Context(), limit)
		if err != nil {
			respondServiceError(w, r, "leaderboard", err)
			return
		}
		respondJSON(w, http.StatusOK, board)
	}
}
