package discord

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/CharLedger_Go/internal/metrics"
)

// FooterCharLedger is the default embed footer
const FooterCharLedger = "CharLedger"

// respondError replaces the deferred response with a plain message
func respondError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	respondContent(s, i, message)
}

func respondContent(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content: &message,
	}); err != nil {
		slog.Error("Failed to edit interaction response", "error", err)
	}
}

// respondFriendlyError renders an API rejection for the user. Anything else
// is handed back so the registry answers with the generic failure message.
//
// Usage:
//
//	res, err := client.BuyItem(...)
//	if err != nil {
//	    return respondFriendlyError(s, i, err, slot)
//	}
func respondFriendlyError(s *discordgo.Session, i *discordgo.InteractionCreate, err error, slot int) error {
	apiErr, ok := AsAPIError(err)
	if !ok || !apiErr.Rejected() {
		return err
	}
	slog.Warn("Request rejected", "status", apiErr.Status, "reason", apiErr.Reason, "error", apiErr.Message)
	respondError(s, i, formatFriendlyError(apiErr, slot))
	return nil
}

// formatFriendlyError turns a rejection into the chat message, using the
// state the API reported alongside it
func formatFriendlyError(e *APIError, slot int) string {
	d := e.Details
	switch e.Reason {
	case metrics.ReasonInsufficientFunds:
		if d != nil {
			return fmt.Sprintf(MsgInsufficientFunds, formatCredits(d.Required), formatCredits(d.Balance))
		}
	case metrics.ReasonAlreadyOwned:
		if d != nil && d.Item != "" {
			return fmt.Sprintf(MsgAlreadyOwned, d.Item)
		}
	case metrics.ReasonNotOwned:
		if d != nil && d.Item != "" {
			return fmt.Sprintf(MsgNotOwned, d.Item)
		}
	case metrics.ReasonNotEnough:
		if d != nil && d.Item != "" {
			return fmt.Sprintf(MsgNotEnoughItems, d.Item, formatNumber(d.Quantity))
		}
	case metrics.ReasonSlotOccupied:
		if d != nil && d.Existing != nil {
			return fmt.Sprintf(MsgSlotAlreadyTaken, d.Existing.Slot, d.Existing.Name)
		}
	case metrics.ReasonNotPromptOwner:
		return MsgNotYourMenu
	case metrics.ReasonNotFound:
		if d != nil && len(d.Suggestions) > 0 {
			return MsgItemNotFound + fmt.Sprintf(MsgDidYouMean, strings.Join(d.Suggestions, ", "))
		}
		if d != nil && d.Item != "" {
			return MsgItemNotFound
		}
		if slot > 0 {
			return fmt.Sprintf(MsgNoCharacterInSlot, slot)
		}
	}
	return "❌ " + e.Message
}

// respondUnexpected answers a failed interaction with the generic message and
// pings the operator in the channel when one is configured
func respondUnexpected(s *discordgo.Session, i *discordgo.InteractionCreate, operatorID, name string) {
	if i.Type == discordgo.InteractionMessageComponent {
		respondEphemeral(s, i, MsgGenericError)
	} else {
		respondError(s, i, MsgGenericError)
	}

	if operatorID == "" || i.ChannelID == "" {
		return
	}
	if _, err := s.ChannelMessageSend(i.ChannelID, fmt.Sprintf(MsgOperatorAlert, operatorID, name)); err != nil {
		slog.Error("Failed to ping operator", "error", err)
	}
}

// deferResponse acknowledges an interaction with a deferred message.
// Returns false if deferral failed (should return early from handler).
func deferResponse(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}); err != nil {
		slog.Error("Failed to send deferred response", "error", err)
		return false
	}
	return true
}

// respondEphemeral replies with a message only the invoking user can see
func respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: message,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	}); err != nil {
		slog.Error("Failed to send ephemeral response", "error", err)
	}
}

// updateMessage rewrites the message a component belongs to and removes its components
func updateMessage(s *discordgo.Session, i *discordgo.InteractionCreate, content string, embeds ...*discordgo.MessageEmbed) {
	if embeds == nil {
		embeds = []*discordgo.MessageEmbed{}
	}
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    content,
			Embeds:     embeds,
			Components: []discordgo.MessageComponent{},
		},
	}); err != nil {
		slog.Error("Failed to update message", "error", err)
	}
}

// sendEmbed replaces the deferred response with an embed
func sendEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	}); err != nil {
		slog.Error("Failed to send response", "error", err)
	}
}

// createEmbed creates a standard embed. An empty footer defaults to FooterCharLedger.
func createEmbed(title, description string, color int, footerText string) *discordgo.MessageEmbed {
	if footerText == "" {
		footerText = FooterCharLedger
	}
	return &discordgo.MessageEmbed{
		Title:       title,
		Description: description,
		Color:       color,
		Footer: &discordgo.MessageEmbedFooter{
			Text: footerText,
		},
	}
}

// getInteractionUser extracts the user from an interaction.
// Handles both guild (i.Member.User) and DM (i.User) contexts.
func getInteractionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	if i.User != nil {
		return i.User
	}
	return &discordgo.User{}
}

// commandOptions returns the options of the invoked command keyed by name,
// along with the subcommand name when one was used
func commandOptions(i *discordgo.InteractionCreate) (string, map[string]*discordgo.ApplicationCommandInteractionDataOption) {
	opts := i.ApplicationCommandData().Options
	sub := ""
	if len(opts) == 1 && opts[0].Type == discordgo.ApplicationCommandOptionSubCommand {
		sub = opts[0].Name
		opts = opts[0].Options
	}

	byName := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(opts))
	for _, o := range opts {
		byName[o.Name] = o
	}
	return sub, byName
}

// intOption reads an integer option, falling back to def when absent
func intOption(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name string, def int64) int64 {
	if o, ok := opts[name]; ok {
		return o.IntValue()
	}
	return def
}

func stringOption(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	if o, ok := opts[name]; ok {
		return strings.TrimSpace(o.StringValue())
	}
	return ""
}

func boolOption(opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) bool {
	if o, ok := opts[name]; ok {
		return o.BoolValue()
	}
	return false
}

// userOption resolves a user option, preferring the payload's resolved data.
// Returns nil when the option is absent.
func userOption(i *discordgo.InteractionCreate, opts map[string]*discordgo.ApplicationCommandInteractionDataOption, name string) *discordgo.User {
	o, ok := opts[name]
	if !ok {
		return nil
	}
	id, _ := o.Value.(string)
	if resolved := i.ApplicationCommandData().Resolved; resolved != nil {
		if u, ok := resolved.Users[id]; ok {
			return u
		}
	}
	return &discordgo.User{ID: id}
}

// focusedOption returns the option being typed in an autocomplete interaction
func focusedOption(i *discordgo.InteractionCreate) *discordgo.ApplicationCommandInteractionDataOption {
	opts := i.ApplicationCommandData().Options
	if len(opts) == 1 && opts[0].Type == discordgo.ApplicationCommandOptionSubCommand {
		opts = opts[0].Options
	}
	for _, o := range opts {
		if o.Focused {
			return o
		}
	}
	return nil
}
