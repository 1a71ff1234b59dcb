package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/bodocord/bodocord/bcdice"
)

const (
	minDiceSides = 2
	maxDiceSides = 1000

	// diceBotSystem is the generic game system of BCDice
	diceBotSystem = "DiceBot"
)

// DiceCommand rolls a single die
type DiceCommand struct {
	api          bcdice.API
	defaultSides int
}

// NewDiceCommand creates the /dice command. defaultSides is used when the
// sides option is omitted.
func NewDiceCommand(api bcdice.API, defaultSides int) *DiceCommand {
	if defaultSides < minDiceSides || defaultSides > maxDiceSides {
		defaultSides = 6
	}
	return &DiceCommand{api: api, defaultSides: defaultSides}
}

// Definition implements Command
func (c *DiceCommand) Definition() *discordgo.ApplicationCommand {
	minValue := float64(minDiceSides)
	return &discordgo.ApplicationCommand{
		Name:        "dice",
		Description: "Roll the dice",
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "sides",
				Description: "Number of sides of the dice",
				MinValue:    &minValue,
				MaxValue:    maxDiceSides,
			},
		},
	}
}

// Run implements Command
func (c *DiceCommand) Run(ctx context.Context, r Responder, i *discordgo.InteractionCreate) error {
	sides := int64(c.defaultSides)
	if v, ok := newOptionMap(i.ApplicationCommandData().Options).intOption("sides"); ok {
		sides = v
	}
	if sides < minDiceSides || sides > maxDiceSides {
		return userError(r, i.Interaction,
			fmt.Sprintf("The number of sides must be between %d and %d.", minDiceSides, maxDiceSides), nil)
	}

	results, err := c.api.DiceRoll(ctx, diceBotSystem, fmt.Sprintf("1D%d", sides))
	if err != nil {
		return internalError(r, i.Interaction, "Failed to roll the dice with BCDice.", err)
	}
	if len(results.Rands) == 0 {
		return internalError(r, i.Interaction, "Failed to roll the dice with BCDice.",
			fmt.Errorf("no dice in the result of 1D%d", sides))
	}

	return respondContent(r, i.Interaction,
		fmt.Sprintf(":game_die: %d sides Dice: %d", sides, results.Rands[0].Value), false)
}
