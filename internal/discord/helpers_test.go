package discord

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/require"

	"github.com/osse101/CharLedger_Go/internal/handler"
)

// MockRoundTripper implements http.RoundTripper for intercepting Discord requests
type MockRoundTripper struct {
	RoundTripFunc func(req *http.Request) (*http.Response, error)
}

func (m *MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return m.RoundTripFunc(req)
}

// discordCall is one request the bot made to Discord
type discordCall struct {
	Method string
	Path   string
	Body   []byte
}

// capturedEdit is the body of an interaction response edit
type capturedEdit struct {
	Content    *string                   `json:"content"`
	Embeds     []*discordgo.MessageEmbed `json:"embeds"`
	Components []json.RawMessage         `json:"components"`
}

// capturedResponse is the body of an interaction callback
type capturedResponse struct {
	Type discordgo.InteractionResponseType `json:"type"`
	Data *struct {
		Content    string                                      `json:"content"`
		Embeds     []*discordgo.MessageEmbed                   `json:"embeds"`
		Components []json.RawMessage                           `json:"components"`
		Flags      discordgo.MessageFlags                      `json:"flags"`
		Choices    []*discordgo.ApplicationCommandOptionChoice `json:"choices"`
	} `json:"data"`
}

// TestContext wires a mock backend API and a Discord session whose HTTP
// traffic is captured instead of sent
type TestContext struct {
	Server       *httptest.Server
	Mux          *http.ServeMux
	APIClient    *APIClient
	Session      *discordgo.Session
	DiscordMocks *MockRoundTripper
	// MessageID is returned as the id of every message Discord "creates"
	MessageID string

	mu    sync.Mutex
	calls []discordCall
}

func SetupTestContext(t *testing.T) *TestContext {
	t.Helper()

	mux := http.NewServeMux()
	server := httptest.NewServer(mux)

	client := NewAPIClient(server.URL, "test-api-key")
	client.RetryDelay = time.Millisecond

	session, err := discordgo.New("Bot test-token")
	require.NoError(t, err)

	ctx := &TestContext{
		Server:    server,
		Mux:       mux,
		APIClient: client,
		Session:   session,
		MessageID: "msg-1",
	}

	ctx.DiscordMocks = &MockRoundTripper{
		RoundTripFunc: func(req *http.Request) (*http.Response, error) {
			var body []byte
			if req.Body != nil {
				body, _ = io.ReadAll(req.Body)
			}
			ctx.mu.Lock()
			ctx.calls = append(ctx.calls, discordCall{Method: req.Method, Path: req.URL.Path, Body: body})
			ctx.mu.Unlock()

			reply, _ := json.Marshal(map[string]string{"id": ctx.MessageID})
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(bytes.NewReader(reply)),
				Header:     http.Header{"Content-Type": []string{"application/json"}},
			}, nil
		},
	}
	session.Client = &http.Client{Transport: ctx.DiscordMocks}

	t.Cleanup(server.Close)

	return ctx
}

func (c *TestContext) snapshot() []discordCall {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]discordCall(nil), c.calls...)
}

// Edits returns every interaction response edit, oldest first
func (c *TestContext) Edits(t *testing.T) []capturedEdit {
	t.Helper()
	var edits []capturedEdit
	for _, call := range c.snapshot() {
		if call.Method != http.MethodPatch {
			continue
		}
		var e capturedEdit
		require.NoError(t, json.Unmarshal(call.Body, &e))
		edits = append(edits, e)
	}
	return edits
}

// LastEdit returns the final interaction response edit
func (c *TestContext) LastEdit(t *testing.T) capturedEdit {
	t.Helper()
	edits := c.Edits(t)
	require.NotEmpty(t, edits, "expected an interaction response edit")
	return edits[len(edits)-1]
}

// Responses returns every interaction callback, including deferrals
func (c *TestContext) Responses(t *testing.T) []capturedResponse {
	t.Helper()
	var out []capturedResponse
	for _, call := range c.snapshot() {
		if call.Method != http.MethodPost || !strings.HasSuffix(call.Path, "/callback") {
			continue
		}
		var r capturedResponse
		require.NoError(t, json.Unmarshal(call.Body, &r))
		out = append(out, r)
	}
	return out
}

// LastResponse returns the final interaction callback
func (c *TestContext) LastResponse(t *testing.T) capturedResponse {
	t.Helper()
	responses := c.Responses(t)
	require.NotEmpty(t, responses, "expected an interaction callback")
	return responses[len(responses)-1]
}

// ChannelMessages returns the content of messages posted to channels
func (c *TestContext) ChannelMessages(t *testing.T) []string {
	t.Helper()
	var out []string
	for _, call := range c.snapshot() {
		if call.Method != http.MethodPost || !strings.Contains(call.Path, "/channels/") {
			continue
		}
		var m struct {
			Content string `json:"content"`
		}
		require.NoError(t, json.Unmarshal(call.Body, &m))
		out = append(out, m.Content)
	}
	return out
}

// WriteJSON writes data as a JSON response
func WriteJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(data)
}

// WriteAPIError writes an API error response
func WriteAPIError(w http.ResponseWriter, status int, resp handler.ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// decodeJSON reads a request body sent by the API client
func decodeJSON[T any](t *testing.T, r *http.Request) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(r.Body).Decode(&v))
	return v
}

func member(id, name string, roles ...string) *discordgo.Member {
	return &discordgo.Member{
		User:  &discordgo.User{ID: id, Username: name},
		Roles: roles,
	}
}

func commandInteraction(name string, m *discordgo.Member, opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			ID:        "interaction-1",
			AppID:     "app-1",
			Token:     "token-1",
			ChannelID: "channel-1",
			Type:      discordgo.InteractionApplicationCommand,
			Data: discordgo.ApplicationCommandInteractionData{
				Name:    name,
				Options: opts,
			},
			Member: m,
		},
	}
}

func componentInteraction(customID, messageID string, m *discordgo.Member, values ...string) *discordgo.InteractionCreate {
	componentType := discordgo.ButtonComponent
	if len(values) > 0 {
		componentType = discordgo.SelectMenuComponent
	}
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			ID:        "interaction-2",
			AppID:     "app-1",
			Token:     "token-2",
			ChannelID: "channel-1",
			Type:      discordgo.InteractionMessageComponent,
			Data: discordgo.MessageComponentInteractionData{
				CustomID:      customID,
				ComponentType: componentType,
				Values:        values,
			},
			Message: &discordgo.Message{ID: messageID},
			Member:  m,
		},
	}
}

func subcommand(name string, opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Type:    discordgo.ApplicationCommandOptionSubCommand,
		Name:    name,
		Options: opts,
	}
}

func strOpt(name, value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Type: discordgo.ApplicationCommandOptionString, Name: name, Value: value}
}

// intOpt mirrors the gateway payload, where integers arrive as JSON numbers
func intOpt(name string, value int) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Type: discordgo.ApplicationCommandOptionInteger, Name: name, Value: float64(value)}
}

func boolOpt(name string, value bool) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Type: discordgo.ApplicationCommandOptionBoolean, Name: name, Value: value}
}

func userOpt(name, id string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Type: discordgo.ApplicationCommandOptionUser, Name: name, Value: id}
}
