package discord

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/osse101/CharLedger_Go/internal/fuzzy"
)

// ShopCommand returns the /shop command: list and buy
func ShopCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	minQty := 1.0
	cmd := &discordgo.ApplicationCommand{
		Name:        "shop",
		Description: "Shop commands",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "list",
				Description: "List available shop items",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "buy",
				Description: "Buy an item for a character slot",
				Options: []*discordgo.ApplicationCommandOption{
					slotOption("Slot 1-3"),
					{
						Type:         discordgo.ApplicationCommandOptionString,
						Name:         "item",
						Description:  "Item name (case-insensitive)",
						Required:     true,
						Autocomplete: true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "qty",
						Description: "Quantity",
						MinValue:    &minQty,
					},
				},
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) error {
		if !deferResponse(s, i) {
			return nil
		}

		sub, opts := commandOptions(i)
		switch sub {
		case "list":
			items, err := client.GetShop()
			if err != nil {
				return respondFriendlyError(s, i, err, 0)
			}
			sendEmbed(s, i, createEmbed(TitleShop, formatShop(items), ColorShop, ""))
		case "buy":
			user := getInteractionUser(i)
			slot := int(intOption(opts, "slot", 0))
			res, err := client.BuyItem(user.ID, slot, stringOption(opts, "item"), intOption(opts, "qty", 1))
			if err != nil {
				return respondFriendlyError(s, i, err, slot)
			}
			desc := fmt.Sprintf("Bought **%sx %s** for %s\nNew balance: %s",
				formatNumber(res.Quantity), res.Item, formatCredits(res.TotalCost), formatCredits(res.Balance))
			sendEmbed(s, i, createEmbed(TitlePurchase, desc, ColorSuccess, ""))
		default:
			return fmt.Errorf("unknown /shop subcommand %q", sub)
		}
		return nil
	}

	return cmd, handler
}

// HandleShopAutocomplete suggests shop items for the item being typed
func HandleShopAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) error {
	choices := []*discordgo.ApplicationCommandOptionChoice{}

	if focused := focusedOption(i); focused != nil && focused.Name == "item" {
		items, err := client.SuggestShopItems(focused.StringValue(), fuzzy.AutocompleteLimit)
		if err != nil {
			slog.Warn("Failed to fetch shop suggestions", "error", err)
		}
		for _, it := range items {
			choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
				Name:  it.Name,
				Value: it.Name,
			})
		}
	}

	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{
			Choices: choices,
		},
	})
}
