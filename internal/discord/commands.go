package discord

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// CommandHandler handles a slash command, autocomplete or component interaction.
// Rejections the user can act on are rendered by the handler itself; a returned
// error is unexpected and answered with the generic failure message.
type CommandHandler func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) error

// CommandRegistry holds the registered commands
type CommandRegistry struct {
	Commands       map[string]*discordgo.ApplicationCommand
	Handlers       map[string]CommandHandler
	Autocompleters map[string]CommandHandler
	// Components are keyed by custom id prefix
	Components     map[string]CommandHandler
	OperatorUserID string
}

// NewCommandRegistry creates a new registry
func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{
		Commands:       make(map[string]*discordgo.ApplicationCommand),
		Handlers:       make(map[string]CommandHandler),
		Autocompleters: make(map[string]CommandHandler),
		Components:     make(map[string]CommandHandler),
	}
}

// Register adds a command to the registry
func (r *CommandRegistry) Register(cmd *discordgo.ApplicationCommand, handler CommandHandler) {
	r.Commands[cmd.Name] = cmd
	r.Handlers[cmd.Name] = handler
}

// RegisterAutocomplete adds an autocomplete handler for a command
func (r *CommandRegistry) RegisterAutocomplete(command string, handler CommandHandler) {
	r.Autocompleters[command] = handler
}

// RegisterComponent adds a handler for components whose custom id starts with prefix
func (r *CommandRegistry) RegisterComponent(prefix string, handler CommandHandler) {
	r.Components[prefix] = handler
}

// Handle processes an interaction
func (r *CommandRegistry) Handle(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
	var (
		h    CommandHandler
		name string
	)

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name = i.ApplicationCommandData().Name
		h = r.Handlers[name]
		if h != nil {
			RecordCommand()
		}
	case discordgo.InteractionApplicationCommandAutocomplete:
		name = i.ApplicationCommandData().Name
		h = r.Autocompleters[name]
	case discordgo.InteractionMessageComponent:
		name = i.MessageComponentData().CustomID
		h = r.componentFor(name)
	}

	if h == nil {
		slog.Warn("Unhandled interaction", "type", i.Type.String(), "name", name)
		return
	}

	if err := h(s, i, client); err != nil {
		slog.Error("Interaction failed", "type", i.Type.String(), "name", name, "error", err)
		if i.Type != discordgo.InteractionApplicationCommandAutocomplete {
			respondUnexpected(s, i, r.OperatorUserID, name)
		}
	}
}

func (r *CommandRegistry) componentFor(customID string) CommandHandler {
	for prefix, h := range r.Components {
		if strings.HasPrefix(customID, prefix) {
			return h
		}
	}
	return nil
}

// RegisterCommands registers or updates commands with Discord.
// Only performs updates if commands have changed to avoid rate limits.
func (b *Bot) RegisterCommands(registry *CommandRegistry, forceUpdate bool) error {
	slog.Info("Checking Discord commands...")

	existingCmds, err := b.Session.ApplicationCommands(b.AppID, "")
	if err != nil {
		return fmt.Errorf("failed to fetch existing commands: %w", err)
	}

	desiredCmds := make([]*discordgo.ApplicationCommand, 0, len(registry.Commands))
	for _, cmd := range registry.Commands {
		desiredCmds = append(desiredCmds, cmd)
	}

	if !forceUpdate && commandsEqual(existingCmds, desiredCmds) {
		slog.Info("Commands unchanged, skipping registration", "count", len(existingCmds))
		return nil
	}

	slog.Info("Updating commands",
		"existing", len(existingCmds),
		"desired", len(desiredCmds),
		"forced", forceUpdate)

	if _, err := b.Session.ApplicationCommandBulkOverwrite(b.AppID, "", desiredCmds); err != nil {
		return fmt.Errorf("failed to update commands: %w", err)
	}

	slog.Info("Commands updated successfully", "count", len(desiredCmds))
	return nil
}

// commandsEqual checks if two command sets are equivalent
func commandsEqual(existing, desired []*discordgo.ApplicationCommand) bool {
	if len(existing) != len(desired) {
		return false
	}

	existingMap := make(map[string]*discordgo.ApplicationCommand, len(existing))
	for _, cmd := range existing {
		existingMap[cmd.Name] = cmd
	}

	for _, want := range desired {
		got, ok := existingMap[want.Name]
		if !ok || !commandEqual(got, want) {
			return false
		}
	}

	return true
}

func commandEqual(a, b *discordgo.ApplicationCommand) bool {
	if a.Name != b.Name || a.Description != b.Description {
		return false
	}

	if (a.DefaultMemberPermissions == nil) != (b.DefaultMemberPermissions == nil) {
		return false
	}
	if a.DefaultMemberPermissions != nil && *a.DefaultMemberPermissions != *b.DefaultMemberPermissions {
		return false
	}

	return optionsEqual(a.Options, b.Options)
}

func optionsEqual(a, b []*discordgo.ApplicationCommandOption) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !optionEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

// optionEqual compares two options, including nested subcommand options
func optionEqual(a, b *discordgo.ApplicationCommandOption) bool {
	if a.Type != b.Type || a.Name != b.Name || a.Description != b.Description ||
		a.Required != b.Required || a.Autocomplete != b.Autocomplete {
		return false
	}

	if len(a.Choices) != len(b.Choices) {
		return false
	}
	for i := range a.Choices {
		if a.Choices[i].Name != b.Choices[i].Name || fmt.Sprint(a.Choices[i].Value) != fmt.Sprint(b.Choices[i].Value) {
			return false
		}
	}

	return optionsEqual(a.Options, b.Options)
}
