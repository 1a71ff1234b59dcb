package discord

import (
	"errors"

	"github.com/bwmarrin/discordgo"
)

func respond(r Responder, i *discordgo.Interaction, data *discordgo.InteractionResponseData, ephemeral bool) error {
	if ephemeral {
		data.Flags |= discordgo.MessageFlagsEphemeral
	}
	return r.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
}

func respondContent(r Responder, i *discordgo.Interaction, content string, ephemeral bool) error {
	return respond(r, i, &discordgo.InteractionResponseData{Content: content}, ephemeral)
}

func respondEmbed(r Responder, i *discordgo.Interaction, embed *discordgo.MessageEmbed, ephemeral bool) error {
	return respond(r, i, &discordgo.InteractionResponseData{Embeds: []*discordgo.MessageEmbed{embed}}, ephemeral)
}

// userError replies with an ErrorEmbed carrying message
func userError(r Responder, i *discordgo.Interaction, message string, cause error) *CommandError {
	hash := InteractionErrorHash(i)
	if err := respondEmbed(r, i, ErrorEmbed(message, hash), true); err != nil {
		cause = errors.Join(cause, err)
	}
	return &CommandError{Hash: hash, Message: message, Err: cause}
}

// internalError replies with an InternalErrorEmbed; message only goes to the log
func internalError(r Responder, i *discordgo.Interaction, message string, cause error) *CommandError {
	hash := InteractionErrorHash(i)
	if err := respondEmbed(r, i, InternalErrorEmbed(hash), true); err != nil {
		cause = errors.Join(cause, err)
	}
	return &CommandError{Hash: hash, Message: message, Err: cause}
}
