package discord

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// ModPolicy decides who may run moderator commands: members with the
// Administrator permission or one of the configured roles
type ModPolicy struct {
	roles map[string]struct{}
}

// NewModPolicy creates a policy allowing the given role ids
func NewModPolicy(roleIDs []string) ModPolicy {
	roles := make(map[string]struct{}, len(roleIDs))
	for _, id := range roleIDs {
		if id != "" {
			roles[id] = struct{}{}
		}
	}
	return ModPolicy{roles: roles}
}

// Allowed reports whether the invoking member is a moderator. DMs never are.
func (p ModPolicy) Allowed(i *discordgo.InteractionCreate) bool {
	if i.Member == nil {
		return false
	}
	if i.Member.Permissions&discordgo.PermissionAdministrator != 0 {
		return true
	}
	for _, r := range i.Member.Roles {
		if _, ok := p.roles[r]; ok {
			return true
		}
	}
	return false
}

func targetOptions(extra ...*discordgo.ApplicationCommandOption) []*discordgo.ApplicationCommandOption {
	opts := []*discordgo.ApplicationCommandOption{
		{Type: discordgo.ApplicationCommandOptionUser, Name: "user", Description: "Target user", Required: true},
		slotOption("Slot 1-3"),
	}
	return append(opts, extra...)
}

// modHandler wraps a moderator action with the permission check and the
// target/slot option parsing every moderator command shares
func modHandler(mods ModPolicy, action func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient, target *discordgo.User, slot int, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) error) CommandHandler {
	return func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) error {
		if !deferResponse(s, i) {
			return nil
		}
		if !mods.Allowed(i) {
			slog.Warn("Moderator command denied", "command", i.ApplicationCommandData().Name, "user_id", getInteractionUser(i).ID)
			respondError(s, i, MsgNoPermission)
			return nil
		}

		_, opts := commandOptions(i)
		target := userOption(i, opts, "user")
		if target == nil {
			target = getInteractionUser(i)
		}
		slot := int(intOption(opts, "slot", 0))
		return action(s, i, client, target, slot, opts)
	}
}

// AddCreditsCommand returns the moderator /addcredits command
func AddCreditsCommand(mods ModPolicy) (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "addcredits",
		Description: "Add credits to a user's character slot",
		Options: targetOptions(&discordgo.ApplicationCommandOption{
			Type: discordgo.ApplicationCommandOptionInteger, Name: "amount", Description: "Amount to add (>=1)", Required: true,
		}),
	}

	return cmd, modHandler(mods, func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient, target *discordgo.User, slot int, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
		amount := intOption(opts, "amount", 0)
		res, err := client.AddCredits(target.ID, slot, amount)
		if err != nil {
			return respondFriendlyError(s, i, err, slot)
		}
		respondContent(s, i, fmt.Sprintf("✅ Added **%s** %s to **%s** (%s). New balance: %s",
			formatNumber(amount), CreditEmoji, displayName(i, target), res.Character.Name, formatCredits(res.Balance)))
		return nil
	})
}

// RemoveCreditsCommand returns the moderator /removecredits command
func RemoveCreditsCommand(mods ModPolicy) (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "removecredits",
		Description: "Remove credits from a user's character slot",
		Options: targetOptions(&discordgo.ApplicationCommandOption{
			Type: discordgo.ApplicationCommandOptionInteger, Name: "amount", Description: "Amount to remove (>=1)", Required: true,
		}),
	}

	return cmd, modHandler(mods, func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient, target *discordgo.User, slot int, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
		amount := intOption(opts, "amount", 0)
		res, err := client.RemoveCredits(target.ID, slot, amount)
		if err != nil {
			return respondFriendlyError(s, i, err, slot)
		}
		respondContent(s, i, fmt.Sprintf("✅ Removed **%s** %s from **%s** (%s). New balance: %s",
			formatNumber(amount), CreditEmoji, displayName(i, target), res.Character.Name, formatCredits(res.Balance)))
		return nil
	})
}

// AddItemCommand returns the moderator /additem command
func AddItemCommand(mods ModPolicy) (*discordgo.ApplicationCommand, CommandHandler) {
	minQty := 1.0
	cmd := &discordgo.ApplicationCommand{
		Name:        "additem",
		Description: "Mod: add an item to a user's character inventory",
		Options: targetOptions(
			&discordgo.ApplicationCommandOption{Type: discordgo.ApplicationCommandOptionString, Name: "item", Description: "Item name", Required: true},
			&discordgo.ApplicationCommandOption{Type: discordgo.ApplicationCommandOptionInteger, Name: "qty", Description: "Quantity (>=1)", MinValue: &minQty},
			&discordgo.ApplicationCommandOption{Type: discordgo.ApplicationCommandOptionBoolean, Name: "one_time", Description: "Mark as one-time (no quantity)"},
		),
	}

	return cmd, modHandler(mods, func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient, target *discordgo.User, slot int, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
		oneTime := boolOption(opts, "one_time")
		qty := intOption(opts, "qty", 1)
		if oneTime {
			qty = 1
		}

		res, err := client.AddItem(target.ID, slot, stringOption(opts, "item"), qty, oneTime)
		if err != nil {
			return respondFriendlyError(s, i, err, slot)
		}
		respondContent(s, i, fmt.Sprintf("✅ Added %s to **%s** (%s). Now has: %s",
			formatItemLine(res.Item, res.Granted, res.OneTime), displayName(i, target), res.Character.Name,
			formatItemLine(res.Item, res.Quantity, res.OneTime)))
		return nil
	})
}

// RemoveItemCommand returns the moderator /removeitem command
func RemoveItemCommand(mods ModPolicy) (*discordgo.ApplicationCommand, CommandHandler) {
	minQty := 1.0
	cmd := &discordgo.ApplicationCommand{
		Name:        "removeitem",
		Description: "Mod: remove an item from a user's character inventory",
		Options: targetOptions(
			&discordgo.ApplicationCommandOption{Type: discordgo.ApplicationCommandOptionString, Name: "item", Description: "Item name", Required: true},
			&discordgo.ApplicationCommandOption{Type: discordgo.ApplicationCommandOptionInteger, Name: "qty", Description: "Quantity (>=1)", Required: true, MinValue: &minQty},
		),
	}

	return cmd, modHandler(mods, func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient, target *discordgo.User, slot int, opts map[string]*discordgo.ApplicationCommandInteractionDataOption) error {
		qty := intOption(opts, "qty", 1)
		res, err := client.RemoveItem(target.ID, slot, stringOption(opts, "item"), qty)
		if err != nil {
			return respondFriendlyError(s, i, err, slot)
		}

		note := "Removed completely."
		if !res.RemovedAll {
			note = "Now has: " + formatItemLine(res.Item, res.Remaining, false)
		}
		respondContent(s, i, fmt.Sprintf("✅ Removed %s from **%s** (%s). %s",
			formatItemLine(res.Item, res.Removed, false), displayName(i, target), res.Character.Name, note))
		return nil
	})
}
