package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

const linuxGIF = "https://tenor.com/bqvzR.gif"

// LinuxCommand replies with a GIF
type LinuxCommand struct{}

// NewLinuxCommand creates the /linux command
func NewLinuxCommand() *LinuxCommand {
	return &LinuxCommand{}
}

// Definition implements Command
func (c *LinuxCommand) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "linux",
		Description: "Install browser in Linux",
		Type:        discordgo.ChatApplicationCommand,
	}
}

// Run implements Command
func (c *LinuxCommand) Run(_ context.Context, r Responder, i *discordgo.InteractionCreate) error {
	return respondContent(r, i.Interaction, linuxGIF, false)
}
