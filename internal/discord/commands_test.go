package discord

import (
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandRegistry_RoutesByInteractionType(t *testing.T) {
	ctx := SetupTestContext(t)
	registry := NewCommandRegistry()

	var got []string
	record := func(name string) CommandHandler {
		return func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) error {
			got = append(got, name)
			return nil
		}
	}

	registry.Register(&discordgo.ApplicationCommand{Name: "shop"}, record("command"))
	registry.RegisterAutocomplete("shop", record("autocomplete"))
	registry.RegisterComponent(CustomIDCharCreate, record("button"))

	registry.Handle(ctx.Session, commandInteraction("shop", member("u1", "Aria")), ctx.APIClient)

	auto := commandInteraction("shop", member("u1", "Aria"))
	auto.Type = discordgo.InteractionApplicationCommandAutocomplete
	registry.Handle(ctx.Session, auto, ctx.APIClient)

	registry.Handle(ctx.Session, componentInteraction("char_create_3", "m", member("u1", "Aria")), ctx.APIClient)
	registry.Handle(ctx.Session, componentInteraction("unknown", "m", member("u1", "Aria")), ctx.APIClient)
	registry.Handle(ctx.Session, commandInteraction("nope", member("u1", "Aria")), ctx.APIClient)

	assert.Equal(t, []string{"command", "autocomplete", "button"}, got)
}

func TestCommandRegistry_UnexpectedErrorPingsOperator(t *testing.T) {
	ctx := SetupTestContext(t)
	registry := NewCommandRegistry()
	registry.OperatorUserID = "op-1"

	registry.Register(&discordgo.ApplicationCommand{Name: "bal"}, func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) error {
		return errors.New("connection refused")
	})

	registry.Handle(ctx.Session, commandInteraction("bal", member("u1", "Aria")), ctx.APIClient)

	edit := ctx.LastEdit(t)
	require.NotNil(t, edit.Content)
	assert.Equal(t, MsgGenericError, *edit.Content)

	pings := ctx.ChannelMessages(t)
	require.Len(t, pings, 1)
	assert.Contains(t, pings[0], "<@op-1>")
	assert.Contains(t, pings[0], "`bal`")
}

func TestCommandRegistry_ComponentFailureIsEphemeral(t *testing.T) {
	ctx := SetupTestContext(t)
	registry := NewCommandRegistry()

	registry.RegisterComponent(CustomIDPickBalance, func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) error {
		return errors.New("boom")
	})

	registry.Handle(ctx.Session, componentInteraction(CustomIDPickBalance, "m", member("u1", "Aria"), "u1:1"), ctx.APIClient)

	resp := ctx.LastResponse(t)
	assert.Equal(t, MsgGenericError, resp.Data.Content)
	assert.Equal(t, discordgo.MessageFlagsEphemeral, resp.Data.Flags)
	assert.Empty(t, ctx.ChannelMessages(t), "no operator configured")
}

func TestCommandsEqual(t *testing.T) {
	build := func() []*discordgo.ApplicationCommand {
		cmd, _ := CharCommand()
		shop, _ := ShopCommand()
		return []*discordgo.ApplicationCommand{cmd, shop}
	}

	assert.True(t, commandsEqual(build(), build()))

	// Discord echoes integer choice values back as JSON numbers
	echoed := build()
	for _, c := range echoed[0].Options[2].Options[0].Choices {
		c.Value = float64(c.Value.(int))
	}
	assert.True(t, commandsEqual(echoed, build()))

	changed := build()
	changed[1].Options[1].Options[1].Autocomplete = false
	assert.False(t, commandsEqual(changed, build()), "nested option change is detected")

	assert.False(t, commandsEqual(build()[:1], build()))
}

func TestBot_RegisterDefaults(t *testing.T) {
	bot, err := New(Config{Token: "t", AppID: "app", APIURL: "http://localhost", OperatorUserID: "op"})
	require.NoError(t, err)

	bot.RegisterDefaults()

	for _, name := range []string{"char", "bal", "inv", "shop", "leaderboard", "addcredits", "removecredits", "additem", "removeitem"} {
		assert.Contains(t, bot.Registry.Commands, name)
		assert.Contains(t, bot.Registry.Handlers, name)
	}
	assert.Contains(t, bot.Registry.Autocompleters, "shop")
	assert.Len(t, bot.Registry.Components, 3)
	assert.Equal(t, "op", bot.Registry.OperatorUserID)
}
