package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CharLedger_Go/internal/database/sqlite"
	"github.com/osse101/CharLedger_Go/internal/domain"
	"github.com/osse101/CharLedger_Go/internal/ledger"
	"github.com/osse101/CharLedger_Go/internal/pending"
	"github.com/osse101/CharLedger_Go/internal/shop"
)

const testAPIKey = "test-key"

type apiClient struct {
	t *testing.T
	h http.Handler
}

func newTestAPI(t *testing.T) *apiClient {
	t.Helper()
	ctx := context.Background()

	store, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	_, err = store.Shop().ReplaceShopItems(ctx, []domain.ShopItem{
		{Name: "Potion", Price: 30},
		{Name: "Horse", Price: 100, OneTime: true},
	})
	require.NoError(t, err)

	catalog := shop.NewCatalog(store.Shop(), time.Minute)
	h := NewRouter(testAPIKey, nil, Services{
		Store:   store,
		Ledger:  ledger.NewService(store.Characters(), store.Ledger(), catalog),
		Pending: pending.NewService(store.Pending(), store.Characters()),
		Catalog: catalog,
	})
	return &apiClient{t: t, h: h}
}

func (c *apiClient) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(HeaderAPIKey, testAPIKey)
	rec := httptest.NewRecorder()
	c.h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestRouter_PublicEndpoints(t *testing.T) {
	api := newTestAPI(t)

	for _, path := range []string{"/healthz", "/readyz", "/version", "/metrics"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		api.h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestRouter_RequiresAPIKey(t *testing.T) {
	api := newTestAPI(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/shop", nil)
	rec := httptest.NewRecorder()
	api.h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_CharacterLifecycle(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPost, "/api/v1/characters/prompt", map[string]any{
		"prompt_id": "msg-1", "owner_id": "u1", "name": "  Aria  ",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = api.do(http.MethodPost, "/api/v1/characters/prompt/choose", map[string]any{
		"prompt_id": "msg-1", "responder_id": "u1", "slot": 2,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = api.do(http.MethodPost, "/api/v1/characters/prompt/choose", map[string]any{
		"prompt_id": "msg-1", "responder_id": "u1", "slot": 2,
	})
	assert.Equal(t, http.StatusConflict, rec.Code, "a second press reports the slot taken")

	rec = api.do(http.MethodGet, "/api/v1/characters?owner_id=u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]domain.Character](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, "Aria", list[0].Name)
	assert.Equal(t, 2, list[0].Slot)

	rec = api.do(http.MethodPost, "/api/v1/credits/add", map[string]any{"owner_id": "u1", "slot": 2, "amount": 100})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = api.do(http.MethodPost, "/api/v1/shop/buy", map[string]any{"owner_id": "u1", "slot": 2, "item": "horse"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = api.do(http.MethodPost, "/api/v1/shop/buy", map[string]any{"owner_id": "u1", "slot": 2, "item": "Horse"})
	assert.Equal(t, http.StatusConflict, rec.Code, "one-time items cannot be bought twice")

	rec = api.do(http.MethodPost, "/api/v1/shop/buy", map[string]any{"owner_id": "u1", "slot": 2, "item": "potoin"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Potion"`)

	rec = api.do(http.MethodGet, "/api/v1/inventory?owner_id=u1&slot=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	inv := decode[struct {
		Character domain.Character       `json:"character"`
		Items     []domain.InventoryLine `json:"items"`
	}](t, rec)
	assert.Equal(t, int64(0), inv.Character.Credits)
	require.Len(t, inv.Items, 1)
	assert.Equal(t, "Horse", inv.Items[0].Item)

	rec = api.do(http.MethodGet, "/api/v1/leaderboard", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	board := decode[[]domain.LeaderboardEntry](t, rec)
	require.Len(t, board, 1)
	assert.Equal(t, 1, board[0].Rank)

	rec = api.do(http.MethodPost, "/api/v1/characters/delete", map[string]any{"owner_id": "u1", "name": "Aria"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"deleted":true`)

	rec = api.do(http.MethodGet, "/api/v1/characters/slot?owner_id=u1&slot=2", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_ShopSuggest(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodGet, "/api/v1/shop/suggest?q=pot", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Potion"`)

	rec = api.do(http.MethodGet, "/api/v1/shop", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	items := decode[[]domain.ShopItem](t, rec)
	assert.Len(t, items, 2)
}
