package discord

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/osse101/CharLedger_Go/internal/domain"
	"github.com/osse101/CharLedger_Go/internal/handler"
	"github.com/osse101/CharLedger_Go/internal/ledger"
	"github.com/osse101/CharLedger_Go/internal/pending"
)

const (
	apiPrefix = "/api/v1"

	defaultTimeout    = 10 * time.Second
	defaultMaxRetries = 3
	defaultRetryDelay = 500 * time.Millisecond
)

// APIClient handles communication with the CharLedger HTTP API
type APIClient struct {
	BaseURL    string
	Client     *http.Client
	APIKey     string
	MaxRetries int
	RetryDelay time.Duration
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL, apiKey string) *APIClient {
	return &APIClient{
		BaseURL: baseURL,
		Client: &http.Client{
			Timeout: defaultTimeout,
		},
		APIKey:     apiKey,
		MaxRetries: defaultMaxRetries,
		RetryDelay: defaultRetryDelay,
	}
}

// APIError is a non-2xx answer from the API. Reason and Details are set when
// the ledger refused the operation.
type APIError struct {
	Status  int
	Message string
	Reason  string
	Details *handler.RejectionDetails
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error: %s", e.Message)
}

// Rejected reports whether the API refused the request on its merits rather than failing
func (e *APIError) Rejected() bool {
	return e.Status < http.StatusInternalServerError
}

// AsAPIError unwraps an *APIError
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

type envelope[T any] struct {
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// doRequest performs an HTTP request. Reads are retried with backoff on
// transport and 5xx failures; writes are sent once.
func (c *APIClient) doRequest(method, path string, body interface{}) (*http.Response, error) {
	var reqBody []byte
	var err error

	if body != nil {
		reqBody, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal body: %w", err)
		}
	}

	target := c.BaseURL + apiPrefix + path

	attempts := 1
	if method == http.MethodGet {
		attempts += c.MaxRetries
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			jitter := time.Duration(time.Now().UnixNano()%100) * time.Millisecond
			delay := c.RetryDelay*time.Duration(1<<uint(attempt-1)) + jitter
			time.Sleep(delay)
			slog.Info("Retrying API request", "attempt", attempt, "path", path, "delay", delay)
		}

		req, err := http.NewRequest(method, target, bytes.NewReader(reqBody))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("Content-Type", "application/json")
		if c.APIKey != "" {
			req.Header.Set("X-API-Key", c.APIKey)
		}

		resp, err := c.Client.Do(req)
		if err != nil {
			lastErr = err
			slog.Warn("API request failed", "error", err, "attempt", attempt)
			continue
		}

		if resp.StatusCode < http.StatusInternalServerError || attempt == attempts-1 {
			return resp, nil
		}

		resp.Body.Close()
		lastErr = fmt.Errorf("server error: %d", resp.StatusCode)
		slog.Warn("Server error, will retry", "status", resp.StatusCode, "attempt", attempt)
	}

	return nil, fmt.Errorf("request %s %s failed: %w", method, path, lastErr)
}

// call sends the request and decodes a 2xx body into out
func (c *APIClient) call(method, path string, body, out interface{}) error {
	resp, err := c.doRequest(method, path, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := &APIError{Status: resp.StatusCode}
		var errResp handler.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error != "" {
			apiErr.Message = errResp.Error
			apiErr.Reason = errResp.Reason
			apiErr.Details = errResp.Details
		} else {
			apiErr.Message = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

func slotQuery(ownerID string, slot int) string {
	q := url.Values{}
	q.Set("owner_id", ownerID)
	q.Set("slot", strconv.Itoa(slot))
	return q.Encode()
}

func ref(ownerID string, slot int) handler.CharacterRef {
	return handler.CharacterRef{OwnerID: ownerID, Slot: slot}
}

// ListCharacters returns an owner's characters ordered by slot
func (c *APIClient) ListCharacters(ownerID string) ([]domain.Character, error) {
	var list []domain.Character
	q := url.Values{"owner_id": {ownerID}}
	if err := c.call(http.MethodGet, "/characters?"+q.Encode(), nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// GetCharacter returns the character in an owner's slot
func (c *APIClient) GetCharacter(ownerID string, slot int) (*domain.Character, error) {
	var ch domain.Character
	if err := c.call(http.MethodGet, "/characters/slot?"+slotQuery(ownerID, slot), nil, &ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

// RenameCharacter renames the character in a slot
func (c *APIClient) RenameCharacter(ownerID string, slot int, name string) (*domain.Character, error) {
	var ch domain.Character
	req := handler.RenameCharacterRequest{CharacterRef: ref(ownerID, slot), Name: name}
	if err := c.call(http.MethodPost, "/characters/rename", req, &ch); err != nil {
		return nil, err
	}
	return &ch, nil
}

// DeleteCharacter deletes an owner's character by exact name
func (c *APIClient) DeleteCharacter(ownerID, name string) (*ledger.DeleteResult, error) {
	var resp envelope[ledger.DeleteResult]
	req := handler.DeleteCharacterRequest{OwnerID: ownerID, Name: name}
	if err := c.call(http.MethodPost, "/characters/delete", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// OpenPrompt records a slot-selection prompt keyed by promptID
func (c *APIClient) OpenPrompt(promptID, ownerID, name string) (*pending.OpenResult, error) {
	var resp envelope[pending.OpenResult]
	req := handler.OpenPromptRequest{PromptID: promptID, OwnerID: ownerID, Name: name}
	if err := c.call(http.MethodPost, "/characters/prompt", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// ChooseSlot answers a prompt and returns the created character
func (c *APIClient) ChooseSlot(promptID, responderID string, slot int) (*domain.Character, error) {
	var resp envelope[domain.Character]
	req := handler.ChooseSlotRequest{PromptID: promptID, ResponderID: responderID, Slot: slot}
	if err := c.call(http.MethodPost, "/characters/prompt/choose", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// AddCredits grants credits to a character
func (c *APIClient) AddCredits(ownerID string, slot int, amount int64) (*handler.CreditsResponse, error) {
	return c.adjustCredits("/credits/add", ownerID, slot, amount)
}

// RemoveCredits deducts credits from a character
func (c *APIClient) RemoveCredits(ownerID string, slot int, amount int64) (*handler.CreditsResponse, error) {
	return c.adjustCredits("/credits/remove", ownerID, slot, amount)
}

func (c *APIClient) adjustCredits(path, ownerID string, slot int, amount int64) (*handler.CreditsResponse, error) {
	var resp handler.CreditsResponse
	req := handler.AdjustCreditsRequest{CharacterRef: ref(ownerID, slot), Amount: amount}
	if err := c.call(http.MethodPost, path, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AddItem grants an item to a character
func (c *APIClient) AddItem(ownerID string, slot int, item string, quantity int64, oneTime bool) (*handler.AddItemResponse, error) {
	var resp handler.AddItemResponse
	req := handler.AddItemRequest{CharacterRef: ref(ownerID, slot), Item: item, Quantity: quantity, OneTime: oneTime}
	if err := c.call(http.MethodPost, "/items/add", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RemoveItem removes an item from a character
func (c *APIClient) RemoveItem(ownerID string, slot int, item string, quantity int64) (*handler.RemoveItemResponse, error) {
	var resp handler.RemoveItemResponse
	req := handler.RemoveItemRequest{CharacterRef: ref(ownerID, slot), Item: item, Quantity: quantity}
	if err := c.call(http.MethodPost, "/items/remove", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetInventory returns a character's inventory
func (c *APIClient) GetInventory(ownerID string, slot int) (*handler.InventoryResponse, error) {
	var resp handler.InventoryResponse
	if err := c.call(http.MethodGet, "/inventory?"+slotQuery(ownerID, slot), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetShop returns the shop catalog
func (c *APIClient) GetShop() ([]domain.ShopItem, error) {
	var items []domain.ShopItem
	if err := c.call(http.MethodGet, "/shop", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// SuggestShopItems returns shop items matching a partial name, best first
func (c *APIClient) SuggestShopItems(query string, limit int) ([]domain.ShopItem, error) {
	var resp handler.SuggestResponse
	q := url.Values{}
	q.Set("q", query)
	q.Set("limit", strconv.Itoa(limit))
	if err := c.call(http.MethodGet, "/shop/suggest?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// BuyItem purchases a shop item for a character
func (c *APIClient) BuyItem(ownerID string, slot int, item string, quantity int64) (*handler.BuyItemResponse, error) {
	var resp handler.BuyItemResponse
	req := handler.BuyItemRequest{CharacterRef: ref(ownerID, slot), Item: item, Quantity: quantity}
	if err := c.call(http.MethodPost, "/shop/buy", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetLeaderboard returns the richest characters
func (c *APIClient) GetLeaderboard(limit int) ([]domain.LeaderboardEntry, error) {
	var board []domain.LeaderboardEntry
	q := url.Values{"limit": {strconv.Itoa(limit)}}
	if err := c.call(http.MethodGet, "/leaderboard?"+q.Encode(), nil, &board); err != nil {
		return nil, err
	}
	return board, nil
}

// Healthy reports whether the API answers its liveness probe
func (c *APIClient) Healthy() bool {
	resp, err := c.Client.Get(c.BaseURL + "/healthz")
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
