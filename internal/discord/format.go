package discord

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/osse101/CharLedger_Go/internal/domain"
)

// CreditEmoji prefixes every rendered credit amount
const CreditEmoji = "🪙"

var printer = message.NewPrinter(language.AmericanEnglish)

// formatNumber renders n with en-US digit grouping
func formatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}

func formatCredits(n int64) string {
	return fmt.Sprintf("%s **%s Credits**", CreditEmoji, formatNumber(n))
}

// displayName prefers the guild nickname, then the global display name
func displayName(i *discordgo.InteractionCreate, u *discordgo.User) string {
	if u == nil {
		return "Unknown"
	}
	if i.Member != nil && i.Member.User != nil && i.Member.User.ID == u.ID && i.Member.Nick != "" {
		return i.Member.Nick
	}
	if i.Type == discordgo.InteractionApplicationCommand {
		if resolved := i.ApplicationCommandData().Resolved; resolved != nil {
			if m, ok := resolved.Members[u.ID]; ok && m.Nick != "" {
				return m.Nick
			}
		}
	}
	switch {
	case u.GlobalName != "":
		return u.GlobalName
	case u.Username != "":
		return u.Username
	case u.ID != "":
		return u.ID
	}
	return "Unknown"
}

func mention(userID string) string {
	return "<@" + userID + ">"
}

func formatItemLine(item string, quantity int64, oneTime bool) string {
	if oneTime {
		return fmt.Sprintf("**%s** (one-time)", item)
	}
	return fmt.Sprintf("**%sx %s**", formatNumber(quantity), item)
}

func formatInventory(lines []domain.InventoryLine) string {
	if len(lines) == 0 {
		return MsgEmptyInventory
	}
	var sb strings.Builder
	for idx, l := range lines {
		if idx > 0 {
			sb.WriteString("\n")
		}
		if l.OneTime {
			fmt.Fprintf(&sb, "- %s (one-time)", l.Item)
		} else {
			fmt.Fprintf(&sb, "- %sx %s", formatNumber(l.Quantity), l.Item)
		}
	}
	return sb.String()
}

func formatCharacterList(chars []domain.Character) string {
	if len(chars) == 0 {
		return MsgNoCharactersInList
	}
	rows := make([]string, 0, len(chars))
	for _, c := range chars {
		rows = append(rows, fmt.Sprintf("**Slot %d** - %s • %s", c.Slot, c.Name, formatCredits(c.Credits)))
	}
	return strings.Join(rows, "\n")
}

func formatShop(items []domain.ShopItem) string {
	if len(items) == 0 {
		return MsgEmptyShop
	}
	rows := make([]string, 0, len(items))
	for _, it := range items {
		row := fmt.Sprintf("• %s - %s", it.Name, formatCredits(it.Price))
		if it.OneTime {
			row += " - (one-time)"
		}
		if it.Description != "" {
			row += " - " + it.Description
		}
		rows = append(rows, row)
	}
	return strings.Join(rows, "\n")
}

func formatLeaderboard(board []domain.LeaderboardEntry) string {
	if len(board) == 0 {
		return MsgEmptyLeaderboard
	}
	rows := make([]string, 0, len(board))
	for _, e := range board {
		rows = append(rows, fmt.Sprintf("**%d.** %s - %s (%s)", e.Rank, e.Name, formatCredits(e.Credits), mention(e.OwnerID)))
	}
	return strings.Join(rows, "\n")
}

// slotChoices are the fixed choices offered for every slot option
func slotChoices() []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, domain.MaxSlot)
	for slot := domain.MinSlot; slot <= domain.MaxSlot; slot++ {
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  fmt.Sprintf("Slot %d", slot),
			Value: slot,
		})
	}
	return choices
}

func slotOption(description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionInteger,
		Name:        "slot",
		Description: description,
		Required:    true,
		Choices:     slotChoices(),
	}
}

// slotButtons renders one button per slot; occupied slots are disabled and
// labelled with their character
func slotButtons(chars []domain.Character) discordgo.ActionsRow {
	bySlot := make(map[int]domain.Character, len(chars))
	for _, c := range chars {
		bySlot[c.Slot] = c
	}

	row := discordgo.ActionsRow{}
	for slot := domain.MinSlot; slot <= domain.MaxSlot; slot++ {
		btn := discordgo.Button{
			Label:    fmt.Sprintf("Slot %d", slot),
			Style:    discordgo.SecondaryButton,
			CustomID: CustomIDCharCreate + strconv.Itoa(slot),
		}
		if c, taken := bySlot[slot]; taken {
			btn.Label = fmt.Sprintf("Slot %d - %s", slot, c.Name)
			btn.Style = discordgo.DangerButton
			btn.Disabled = true
		}
		row.Components = append(row.Components, btn)
	}
	return row
}

// characterSelectRow renders a picker over an owner's characters. Values are
// "<owner id>:<slot>".
func characterSelectRow(customID string, chars []domain.Character) discordgo.ActionsRow {
	options := make([]discordgo.SelectMenuOption, 0, len(chars))
	for _, c := range chars {
		options = append(options, discordgo.SelectMenuOption{
			Label: fmt.Sprintf("Slot %d - %s", c.Slot, c.Name),
			Value: pickerValue(c.OwnerID, c.Slot),
		})
	}
	one := 1
	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.SelectMenu{
				MenuType:    discordgo.StringSelectMenu,
				CustomID:    customID,
				Placeholder: "Choose a character",
				MinValues:   &one,
				MaxValues:   1,
				Options:     options,
			},
		},
	}
}

func pickerValue(ownerID string, slot int) string {
	return ownerID + ":" + strconv.Itoa(slot)
}

// parsePickerValue splits a picker value. Owner ids never contain ':'.
func parsePickerValue(v string) (string, int, bool) {
	idx := strings.LastIndex(v, ":")
	if idx <= 0 {
		return "", 0, false
	}
	slot, err := strconv.Atoi(v[idx+1:])
	if err != nil || !domain.ValidSlot(slot) {
		return "", 0, false
	}
	return v[:idx], slot, true
}

// parseSlotButton reads the slot from a char_create_<slot> custom id
func parseSlotButton(customID string) (int, bool) {
	slot, err := strconv.Atoi(strings.TrimPrefix(customID, CustomIDCharCreate))
	if err != nil || !domain.ValidSlot(slot) {
		return 0, false
	}
	return slot, true
}
