package discord

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CharLedger_Go/internal/domain"
	"github.com/osse101/CharLedger_Go/internal/handler"
)

func TestBalanceCommand_SingleCharacterSkipsPicker(t *testing.T) {
	ctx := SetupTestContext(t)
	_, h := BalanceCommand()

	ctx.Mux.HandleFunc("/api/v1/characters", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, []domain.Character{{OwnerID: "u1", Slot: 1, Name: "Aria", Credits: 1234567}})
	})

	require.NoError(t, h(ctx.Session, commandInteraction("bal", member("u1", "Aria")), ctx.APIClient))

	edit := ctx.LastEdit(t)
	require.Len(t, edit.Embeds, 1)
	assert.Equal(t, "Aria - Balance", edit.Embeds[0].Title)
	assert.Equal(t, "## "+CreditEmoji+" **1,234,567 Credits**", edit.Embeds[0].Description)
}

func TestBalanceCommand_OtherUserWithoutCharacters(t *testing.T) {
	ctx := SetupTestContext(t)
	_, h := BalanceCommand()

	ctx.Mux.HandleFunc("/api/v1/characters", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "u2", r.URL.Query().Get("owner_id"))
		WriteJSON(w, []domain.Character{})
	})

	i := commandInteraction("bal", member("u1", "Aria"), userOpt("user", "u2"))
	i.Data = discordgo.ApplicationCommandInteractionData{
		Name:    "bal",
		Options: []*discordgo.ApplicationCommandInteractionDataOption{userOpt("user", "u2")},
		Resolved: &discordgo.ApplicationCommandInteractionDataResolved{
			Users: map[string]*discordgo.User{"u2": {ID: "u2", Username: "bram"}},
		},
	}
	require.NoError(t, h(ctx.Session, i, ctx.APIClient))

	edit := ctx.LastEdit(t)
	require.NotNil(t, edit.Content)
	assert.Equal(t, "❌ bram has no characters.", *edit.Content)
}

func TestInventoryCommand_ManyCharactersPostsPicker(t *testing.T) {
	ctx := SetupTestContext(t)
	_, h := InventoryCommand()

	ctx.Mux.HandleFunc("/api/v1/characters", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, []domain.Character{
			{OwnerID: "u1", Slot: 1, Name: "Aria"},
			{OwnerID: "u1", Slot: 2, Name: "Bram"},
		})
	})

	require.NoError(t, h(ctx.Session, commandInteraction("inv", member("u1", "Aria")), ctx.APIClient))

	edit := ctx.LastEdit(t)
	require.Len(t, edit.Embeds, 1)
	assert.Equal(t, TitlePickInventory, edit.Embeds[0].Title)
	require.Len(t, edit.Components, 1)

	var row struct {
		Components []struct {
			CustomID string `json:"custom_id"`
			Options  []struct {
				Label string `json:"label"`
				Value string `json:"value"`
			} `json:"options"`
		} `json:"components"`
	}
	require.NoError(t, json.Unmarshal(edit.Components[0], &row))
	require.Len(t, row.Components, 1)
	assert.Equal(t, CustomIDPickInventory, row.Components[0].CustomID)
	require.Len(t, row.Components[0].Options, 2)
	assert.Equal(t, "u1:2", row.Components[0].Options[1].Value)
	assert.Equal(t, "Slot 2 - Bram", row.Components[0].Options[1].Label)
}

func TestHandlePickInventory(t *testing.T) {
	ctx := SetupTestContext(t)

	ctx.Mux.HandleFunc("/api/v1/inventory", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "u1", r.URL.Query().Get("owner_id"))
		assert.Equal(t, "2", r.URL.Query().Get("slot"))
		WriteJSON(w, handler.InventoryResponse{
			Character: &domain.Character{OwnerID: "u1", Slot: 2, Name: "Bram"},
			Items: []domain.InventoryLine{
				{Item: "Horse", Quantity: 1, OneTime: true},
				{Item: "Potion", Quantity: 3},
			},
		})
	})

	i := componentInteraction(CustomIDPickInventory, "msg-1", member("u1", "Aria"), "u1:2")
	require.NoError(t, HandlePickInventory(ctx.Session, i, ctx.APIClient))

	resp := ctx.LastResponse(t)
	assert.Equal(t, discordgo.InteractionResponseUpdateMessage, resp.Type)
	require.Len(t, resp.Data.Embeds, 1)
	assert.Equal(t, "Bram - Inventory", resp.Data.Embeds[0].Title)
	assert.Equal(t, "- Horse (one-time)\n- 3x Potion", resp.Data.Embeds[0].Description)
}

func TestHandlePickBalance_CharacterGone(t *testing.T) {
	ctx := SetupTestContext(t)

	ctx.Mux.HandleFunc("/api/v1/characters/slot", func(w http.ResponseWriter, r *http.Request) {
		WriteAPIError(w, http.StatusNotFound, handler.ErrorResponse{Error: handler.ErrMsgCharacterNotFoundError})
	})

	i := componentInteraction(CustomIDPickBalance, "msg-1", member("u1", "Aria"), "u1:3")
	require.NoError(t, HandlePickBalance(ctx.Session, i, ctx.APIClient))

	assert.Equal(t, MsgUnknownPickerChoice, ctx.LastResponse(t).Data.Content)
}

func TestLeaderboardCommand(t *testing.T) {
	ctx := SetupTestContext(t)
	_, h := LeaderboardCommand()

	ctx.Mux.HandleFunc("/api/v1/leaderboard", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "25", r.URL.Query().Get("limit"))
		WriteJSON(w, []domain.LeaderboardEntry{
			{Rank: 1, Character: domain.Character{OwnerID: "u9", Name: "Rich", Credits: 10000}},
			{Rank: 2, Character: domain.Character{OwnerID: "u1", Name: "Aria", Credits: 50}},
		})
	})

	require.NoError(t, h(ctx.Session, commandInteraction("leaderboard", member("u1", "Aria")), ctx.APIClient))

	edit := ctx.LastEdit(t)
	require.Len(t, edit.Embeds, 1)
	assert.Equal(t, "Leaderboard - Top 25", edit.Embeds[0].Title)
	assert.Contains(t, edit.Embeds[0].Description, "**1.** Rich - "+CreditEmoji+" **10,000 Credits** (<@u9>)")
	assert.Contains(t, edit.Embeds[0].Description, "**2.** Aria")
}
