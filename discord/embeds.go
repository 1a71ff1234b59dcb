package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/bodocord/bodocord/bcdice"
)

const (
	colorCrimson = 0xDC143C

	// Discord rejects embeds over these lengths
	maxFieldValue  = 1024
	maxDescription = 4096
)

const internalErrorMessage = "An error has occurred within the server.\n" +
	"Please try again in a few minutes.\n" +
	"If you get this error again and again, please contact the administrator with the hash value in the footer."

// ErrorEmbed describes an error the user can fix
func ErrorEmbed(message, hash string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Error",
		Description: message,
		Color:       colorCrimson,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Error Hash: " + hash,
		},
	}
}

// InternalErrorEmbed describes a server side failure
func InternalErrorEmbed(hash string) *discordgo.MessageEmbed {
	embed := ErrorEmbed(internalErrorMessage, hash)
	embed.Title = "Internal Error"
	return embed
}

// InfoEmbed shows the server versions and administrator
func InfoEmbed(version *bcdice.APIVersion, admin *bcdice.APIAdmin, serverURL string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "BCDice-API v" + version.API,
		Description: "This server is used for die rolls and other purposes. Thank you to the administrators and developers.",
		Fields: []*discordgo.MessageEmbedField{
			inlineField("API", "v"+version.API),
			inlineField("BCDice", "v"+version.BCDice),
			inlineField("Server URL", serverURL),
			inlineField("Admin Name", admin.Name),
			inlineField("Site", admin.URL),
			inlineField("E-Mail", admin.Email),
		},
	}
}

// AvailableSystemsEmbed points to the list of game systems
func AvailableSystemsEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Available Game Systems",
		Description: "See https://bcdice.org/systems/",
	}
}

// GameSystemEmbed shows a single game system
func GameSystemEmbed(system *bcdice.GameSystem) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title: system.Name,
		Fields: []*discordgo.MessageEmbedField{
			field("ID", system.ID),
			field("Command pattern", system.CommandPattern.String()),
			field("Sort key", system.SortKey),
			field("Help message", system.HelpMessage),
		},
	}
}

// SystemListEmbed lists the game systems matched by a filter
func SystemListEmbed(expression string, systems []bcdice.AvailableGameSystem) *discordgo.MessageEmbed {
	if len(systems) == 0 {
		return &discordgo.MessageEmbed{
			Title:       "No Game Systems",
			Description: fmt.Sprintf("No game system matches `%s`.", expression),
		}
	}

	var sb strings.Builder
	for _, system := range systems {
		fmt.Fprintf(&sb, "`%s` %s\n", system.ID, system.Name)
	}
	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Game Systems (%d)", len(systems)),
		Description: truncate(strings.TrimSuffix(sb.String(), "\n"), maxDescription),
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Filter: " + expression,
		},
	}
}

func field(name, value string) *discordgo.MessageEmbedField {
	if value == "" {
		value = "-"
	}
	return &discordgo.MessageEmbedField{Name: name, Value: truncate(value, maxFieldValue)}
}

func inlineField(name, value string) *discordgo.MessageEmbedField {
	f := field(name, value)
	f.Inline = true
	return f
}

// truncate shortens s to at most limit runes, marking the cut with an ellipsis
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
