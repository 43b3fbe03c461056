package discord

import (
	"errors"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CharLedger_Go/internal/domain"
	"github.com/osse101/CharLedger_Go/internal/handler"
	"github.com/osse101/CharLedger_Go/internal/metrics"
)

func TestAPIClient_SendsKeyAndDecodes(t *testing.T) {
	ctx := SetupTestContext(t)

	ctx.Mux.HandleFunc("/api/v1/characters", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-api-key", r.Header.Get("X-API-Key"))
		assert.Equal(t, "owner 1", r.URL.Query().Get("owner_id"))
		WriteJSON(w, []domain.Character{{ID: 1, OwnerID: "owner 1", Slot: 1, Name: "Aria", Credits: 10}})
	})

	chars, err := ctx.APIClient.ListCharacters("owner 1")
	require.NoError(t, err)
	require.Len(t, chars, 1)
	assert.Equal(t, "Aria", chars[0].Name)
	assert.Equal(t, int64(10), chars[0].Credits)
}

func TestAPIClient_RejectionCarriesDetails(t *testing.T) {
	ctx := SetupTestContext(t)

	ctx.Mux.HandleFunc("/api/v1/shop/buy", func(w http.ResponseWriter, r *http.Request) {
		WriteAPIError(w, http.StatusBadRequest, handler.ErrorResponse{
			Error:   handler.ErrMsgNotEnoughCreditsError,
			Reason:  metrics.ReasonInsufficientFunds,
			Details: &handler.RejectionDetails{Item: "Horse", Balance: 10, Required: 5000},
		})
	})

	_, err := ctx.APIClient.BuyItem("u1", 1, "horse", 1)
	require.Error(t, err)

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.True(t, apiErr.Rejected())
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, metrics.ReasonInsufficientFunds, apiErr.Reason)
	require.NotNil(t, apiErr.Details)
	assert.Equal(t, int64(5000), apiErr.Details.Required)
	assert.Equal(t, "API error: "+handler.ErrMsgNotEnoughCreditsError, err.Error())
}

func TestAPIClient_RetriesReadsOnServerError(t *testing.T) {
	ctx := SetupTestContext(t)

	var calls atomic.Int32
	ctx.Mux.HandleFunc("/api/v1/shop", func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		WriteJSON(w, []domain.ShopItem{{Name: "Potion", Price: 25}})
	})

	items, err := ctx.APIClient.GetShop()
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, int32(2), calls.Load())
}

func TestAPIClient_DoesNotRetryWrites(t *testing.T) {
	ctx := SetupTestContext(t)

	var calls atomic.Int32
	ctx.Mux.HandleFunc("/api/v1/credits/add", func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		WriteAPIError(w, http.StatusInternalServerError, handler.ErrorResponse{Error: handler.ErrMsgGenericServerError})
	})

	_, err := ctx.APIClient.AddCredits("u1", 1, 100)
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load(), "a failed grant must not be replayed")

	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.False(t, apiErr.Rejected())
}

func TestAPIClient_TransportFailure(t *testing.T) {
	client := NewAPIClient("http://127.0.0.1:1", "")
	client.MaxRetries = 0

	_, err := client.GetLeaderboard(domain.LeaderboardSize)
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
	assert.False(t, client.Healthy())
}
