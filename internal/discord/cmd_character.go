package discord

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/CharLedger_Go/internal/metrics"
)

// CharCommand returns the /char command: create, delete, rename and list
func CharCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "char",
		Description: "Manage your characters",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "create",
				Description: "Create a character (choose slot after)",
				Options: []*discordgo.ApplicationCommandOption{
					{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "Character name", Required: true},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "delete",
				Description: "Delete a character by name",
				Options: []*discordgo.ApplicationCommandOption{
					{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "Character name", Required: true},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "rename",
				Description: "Rename a character in a slot",
				Options: []*discordgo.ApplicationCommandOption{
					slotOption("Slot 1-3"),
					{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "New name", Required: true},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "list",
				Description: "List your characters",
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) error {
		if !deferResponse(s, i) {
			return nil
		}

		sub, opts := commandOptions(i)
		user := getInteractionUser(i)

		switch sub {
		case "create":
			return createCharacter(s, i, client, user, stringOption(opts, "name"))
		case "delete":
			name := stringOption(opts, "name")
			res, err := client.DeleteCharacter(user.ID, name)
			if err != nil {
				return respondFriendlyError(s, i, err, 0)
			}
			if !res.Deleted || res.Character == nil {
				respondError(s, i, fmt.Sprintf(MsgNoCharacterNamed, name))
				return nil
			}
			sendEmbed(s, i, createEmbed(TitleCharacterGone,
				fmt.Sprintf(MsgCharacterDeleted, res.Character.Name, res.Character.Slot), ColorDanger, ""))
		case "rename":
			slot := int(intOption(opts, "slot", 0))
			c, err := client.RenameCharacter(user.ID, slot, stringOption(opts, "name"))
			if err != nil {
				return respondFriendlyError(s, i, err, slot)
			}
			sendEmbed(s, i, createEmbed(TitleCharacterRename,
				fmt.Sprintf(MsgCharacterRenamed, c.Slot, c.Name), ColorInfo, ""))
		case "list":
			chars, err := client.ListCharacters(user.ID)
			if err != nil {
				return respondFriendlyError(s, i, err, 0)
			}
			sendEmbed(s, i, createEmbed(fmt.Sprintf(TitleCharacterList, displayName(i, user)),
				formatCharacterList(chars), ColorInfo, ""))
		default:
			return fmt.Errorf("unknown /char subcommand %q", sub)
		}
		return nil
	}

	return cmd, handler
}

// createCharacter posts the slot picker and opens a prompt keyed by the
// picker's message id
func createCharacter(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient, user *discordgo.User, name string) error {
	chars, err := client.ListCharacters(user.ID)
	if err != nil {
		return respondFriendlyError(s, i, err, 0)
	}

	embeds := []*discordgo.MessageEmbed{createEmbed(TitleCreateCharacter, fmt.Sprintf(MsgChooseSlot, name), ColorInfo, "")}
	components := []discordgo.MessageComponent{slotButtons(chars)}
	msg, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds:     &embeds,
		Components: &components,
	})
	if err != nil {
		return fmt.Errorf("failed to post slot picker: %w", err)
	}

	if _, err := client.OpenPrompt(msg.ID, user.ID, name); err != nil {
		return respondFriendlyError(s, i, err, 0)
	}
	slog.Info("Slot picker opened", "prompt_id", msg.ID, "owner_id", user.ID)
	return nil
}

// HandleCharCreateButton answers a char_create_<slot> click
func HandleCharCreateButton(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) error {
	slot, ok := parseSlotButton(i.MessageComponentData().CustomID)
	if !ok {
		respondEphemeral(s, i, MsgInvalidSlot)
		return nil
	}
	if i.Message == nil {
		return fmt.Errorf("slot button without a message")
	}

	user := getInteractionUser(i)
	c, err := client.ChooseSlot(i.Message.ID, user.ID, slot)
	if err != nil {
		apiErr, ok := AsAPIError(err)
		if !ok || !apiErr.Rejected() {
			return err
		}
		switch apiErr.Reason {
		case metrics.ReasonSlotOccupied:
			updateMessage(s, i, formatFriendlyError(apiErr, slot))
		case metrics.ReasonNotFound:
			respondEphemeral(s, i, MsgSelectionExpired)
		default:
			respondEphemeral(s, i, formatFriendlyError(apiErr, slot))
		}
		return nil
	}

	updateMessage(s, i, "", createEmbed(TitleCharacterMade, fmt.Sprintf(MsgCharacterCreated, c.Name, c.Slot), ColorSuccess, ""))
	return nil
}
