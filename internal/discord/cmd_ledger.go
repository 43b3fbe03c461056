package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/CharLedger_Go/internal/domain"
)

// BalanceCommand returns the /bal command
func BalanceCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "bal",
		Description: "Show balance for a character (skips picker if only one)",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionUser, Name: "user", Description: "Whose balance to view (optional)"},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) error {
		return showForCharacter(s, i, client, CustomIDPickBalance, TitlePickBalance, balanceEmbed)
	}

	return cmd, handler
}

// InventoryCommand returns the /inv command
func InventoryCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "inv",
		Description: "Show inventory for a character",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionUser, Name: "user", Description: "Whose inventory to view (optional)"},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) error {
		return showForCharacter(s, i, client, CustomIDPickInventory, TitlePickInventory, func(client *APIClient, c domain.Character) (*discordgo.MessageEmbed, error) {
			return inventoryEmbed(client, c.OwnerID, c.Slot)
		})
	}

	return cmd, handler
}

// LeaderboardCommand returns the /leaderboard command
func LeaderboardCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "leaderboard",
		Description: "Top characters",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) error {
		if !deferResponse(s, i) {
			return nil
		}

		board, err := client.GetLeaderboard(domain.LeaderboardSize)
		if err != nil {
			return respondFriendlyError(s, i, err, 0)
		}
		sendEmbed(s, i, createEmbed(fmt.Sprintf(TitleLeaderboard, domain.LeaderboardSize), formatLeaderboard(board), ColorShop, ""))
		return nil
	}

	return cmd, handler
}

type characterView func(client *APIClient, c domain.Character) (*discordgo.MessageEmbed, error)

// showForCharacter renders view directly when the target owns one character
// and posts a picker when they own several
func showForCharacter(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient, pickerID, pickerTitle string, view characterView) error {
	if !deferResponse(s, i) {
		return nil
	}

	_, opts := commandOptions(i)
	target := userOption(i, opts, "user")
	if target == nil {
		target = getInteractionUser(i)
	}

	chars, err := client.ListCharacters(target.ID)
	if err != nil {
		return respondFriendlyError(s, i, err, 0)
	}

	switch len(chars) {
	case 0:
		if target.ID == getInteractionUser(i).ID {
			respondError(s, i, MsgNoCharacters)
		} else {
			respondError(s, i, fmt.Sprintf("❌ %s has no characters.", displayName(i, target)))
		}
	case 1:
		embed, err := view(client, chars[0])
		if err != nil {
			return respondFriendlyError(s, i, err, chars[0].Slot)
		}
		sendEmbed(s, i, embed)
	default:
		embeds := []*discordgo.MessageEmbed{createEmbed(pickerTitle, "", ColorInfo, "")}
		components := []discordgo.MessageComponent{characterSelectRow(pickerID, chars)}
		if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
			Embeds:     &embeds,
			Components: &components,
		}); err != nil {
			return fmt.Errorf("failed to post character picker: %w", err)
		}
	}
	return nil
}

func balanceEmbed(_ *APIClient, c domain.Character) (*discordgo.MessageEmbed, error) {
	return createEmbed(fmt.Sprintf(TitleBalance, c.Name), "## "+formatCredits(c.Credits), ColorInfo, ""), nil
}

func inventoryEmbed(client *APIClient, ownerID string, slot int) (*discordgo.MessageEmbed, error) {
	inv, err := client.GetInventory(ownerID, slot)
	if err != nil {
		return nil, err
	}
	return createEmbed(fmt.Sprintf(TitleInventory, inv.Character.Name), formatInventory(inv.Items), ColorInfo, ""), nil
}

// HandlePickBalance answers the balance picker
func HandlePickBalance(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) error {
	return handlePick(s, i, func(ownerID string, slot int) (*discordgo.MessageEmbed, error) {
		c, err := client.GetCharacter(ownerID, slot)
		if err != nil {
			return nil, err
		}
		return balanceEmbed(client, *c)
	})
}

// HandlePickInventory answers the inventory picker
func HandlePickInventory(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) error {
	return handlePick(s, i, func(ownerID string, slot int) (*discordgo.MessageEmbed, error) {
		return inventoryEmbed(client, ownerID, slot)
	})
}

func handlePick(s *discordgo.Session, i *discordgo.InteractionCreate, view func(ownerID string, slot int) (*discordgo.MessageEmbed, error)) error {
	values := i.MessageComponentData().Values
	if len(values) == 0 {
		respondEphemeral(s, i, MsgUnknownPickerChoice)
		return nil
	}
	ownerID, slot, ok := parsePickerValue(values[0])
	if !ok {
		respondEphemeral(s, i, MsgUnknownPickerChoice)
		return nil
	}

	embed, err := view(ownerID, slot)
	if err != nil {
		if apiErr, ok := AsAPIError(err); ok && apiErr.Rejected() {
			updateMessage(s, i, MsgUnknownPickerChoice)
			return nil
		}
		return err
	}
	updateMessage(s, i, "", embed)
	return nil
}
