package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// Responder sends the initial response to an interaction.
// *discordgo.Session satisfies it.
type Responder interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
}

// Command is a slash command handled by the bot
type Command interface {
	// Definition returns the command registered with Discord
	Definition() *discordgo.ApplicationCommand

	// Run handles one invocation. Failures that were already reported to the
	// user are returned as *CommandError.
	Run(ctx context.Context, r Responder, i *discordgo.InteractionCreate) error
}

type optionMap map[string]*discordgo.ApplicationCommandInteractionDataOption

func newOptionMap(options []*discordgo.ApplicationCommandInteractionDataOption) optionMap {
	m := make(optionMap, len(options))
	for _, opt := range options {
		m[opt.Name] = opt
	}
	return m
}

// stringOption returns the trimmed value of a string option, or "" when absent
func (m optionMap) stringOption(name string) string {
	opt, ok := m[name]
	if !ok || opt.Type != discordgo.ApplicationCommandOptionString {
		return ""
	}
	return opt.StringValue()
}

// intOption returns the value of an integer option
func (m optionMap) intOption(name string) (int64, bool) {
	opt, ok := m[name]
	if !ok || opt.Type != discordgo.ApplicationCommandOptionInteger {
		return 0, false
	}
	return opt.IntValue(), true
}
