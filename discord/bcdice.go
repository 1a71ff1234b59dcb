package discord

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/sync/errgroup"

	"github.com/bodocord/bodocord/bcdice"
	"github.com/bodocord/bodocord/filter"
)

// Messages shown to the user
const (
	msgUnsupportedSystem  = "Specified system is unsupported. Please make sure your ID is correct."
	msgUnsupportedCommand = "Specified command is unsupported. Please make sure your command is correct."
	msgUnsupportedTable   = "Specified table is unsupported. Please make sure your table is correct."
	msgEmptyTable         = "The table needs at least one item. Separate items with \";\"."
	msgInvalidFilter      = "Specified filter is invalid. Please make sure your expression is correct."
	msgRollFailed         = "Failed to roll the dice with BCDice."
	msgSystemFailed       = "Failed to get the game system."
	msgSystemsFailed      = "Failed to get the game systems."
	msgVersionFailed      = "Failed to get the versions of BCDice-API"
	msgAdminFailed        = "Failed to get the admin information of BCDice-API"
	msgTableFailed        = "Failed to run the table with BCDice."
)

// BCDiceOption configures a BCDiceCommand
type BCDiceOption func(*BCDiceCommand)

// WithFilters enables the filter option of /bcdice systems
func WithFilters(m *filter.Manager) BCDiceOption {
	return func(c *BCDiceCommand) {
		c.filters = m
	}
}

// WithWidthFolding converts full-width input to ASCII before it is sent to BCDice-API
func WithWidthFolding(enabled bool) BCDiceOption {
	return func(c *BCDiceCommand) {
		c.foldWidth = enabled
	}
}

// BCDiceCommand exposes BCDice-API through /bcdice subcommands
type BCDiceCommand struct {
	api       bcdice.API
	filters   *filter.Manager
	foldWidth bool
}

// NewBCDiceCommand creates the /bcdice command
func NewBCDiceCommand(api bcdice.API, opts ...BCDiceOption) *BCDiceCommand {
	c := &BCDiceCommand{api: api}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Definition implements Command
func (c *BCDiceCommand) Definition() *discordgo.ApplicationCommand {
	systemsOptions := []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "system",
			Description: "ID of the game system to be displayed",
		},
	}
	if c.filters != nil {
		systemsOptions = append(systemsOptions, &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "filter",
			Description: "Filter expression or preset name, e.g. name:\"cthulhu\"",
		})
	}

	return &discordgo.ApplicationCommand{
		Name:        "bcdice",
		Description: "Use BCDice (e.g. Dice roll with BCDice command)",
		Type:        discordgo.ChatApplicationCommand,
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "info",
				Description: "Display information about the BCDice-API server",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "systems",
				Description: "Display available or one game system",
				Options:     systemsOptions,
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "roll",
				Description: "Roll the dice with BCDice command",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "system",
						Description: "ID of the game system to be used",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "command",
						Description: "BCDice command to execute",
						Required:    true,
					},
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        "table",
				Description: "Roll an original table",
				Options: []*discordgo.ApplicationCommandOption{
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "title",
						Description: "Title of the table",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "command",
						Description: "Dice command choosing the item, e.g. 1D6",
						Required:    true,
					},
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "items",
						Description: "Items separated by \";\"",
						Required:    true,
					},
				},
			},
		},
	}
}

// Run implements Command
func (c *BCDiceCommand) Run(ctx context.Context, r Responder, i *discordgo.InteractionCreate) error {
	data := i.ApplicationCommandData()
	if len(data.Options) == 0 {
		return fmt.Errorf("bcdice: missing subcommand")
	}
	sub := data.Options[0]
	opts := newOptionMap(sub.Options)

	switch sub.Name {
	case "info":
		return c.runInfo(ctx, r, i.Interaction)
	case "systems":
		return c.runSystems(ctx, r, i.Interaction, opts)
	case "roll":
		return c.runRoll(ctx, r, i.Interaction, opts)
	case "table":
		return c.runTable(ctx, r, i.Interaction, opts)
	default:
		return fmt.Errorf("bcdice: unknown subcommand %q", sub.Name)
	}
}

func (c *BCDiceCommand) normalize(s string) string {
	if c.foldWidth {
		return foldCommand(s)
	}
	return strings.TrimSpace(s)
}

func (c *BCDiceCommand) runInfo(ctx context.Context, r Responder, i *discordgo.Interaction) error {
	var (
		g          errgroup.Group
		version    *bcdice.APIVersion
		admin      *bcdice.APIAdmin
		versionErr error
		adminErr   error
	)
	g.Go(func() error {
		version, versionErr = c.api.GetAPIVersion(ctx)
		return versionErr
	})
	g.Go(func() error {
		admin, adminErr = c.api.GetAPIAdmin(ctx)
		return adminErr
	})
	if err := g.Wait(); err != nil {
		// each lookup keeps its own message; the version failure is reported first
		if versionErr != nil {
			return internalError(r, i, msgVersionFailed, versionErr)
		}
		return internalError(r, i, msgAdminFailed, adminErr)
	}

	return respondEmbed(r, i, InfoEmbed(version, admin, c.api.BaseURL()), false)
}

func (c *BCDiceCommand) runSystems(ctx context.Context, r Responder, i *discordgo.Interaction, opts optionMap) error {
	if id := c.normalize(opts.stringOption("system")); id != "" {
		system, err := c.api.GetGameSystem(ctx, id)
		if err != nil {
			if bcdice.IsCode(err, bcdice.CodeUnsupportedSystem) {
				return userError(r, i, msgUnsupportedSystem, err)
			}
			return internalError(r, i, msgSystemFailed, err)
		}
		return respondEmbed(r, i, GameSystemEmbed(system), false)
	}

	expression := strings.TrimSpace(opts.stringOption("filter"))
	if expression == "" || c.filters == nil {
		return respondEmbed(r, i, AvailableSystemsEmbed(), false)
	}

	systems, err := c.api.GetAvailableGameSystems(ctx)
	if err != nil {
		return internalError(r, i, msgSystemsFailed, err)
	}

	var matched []bcdice.AvailableGameSystem
	if _, ok := c.filters.Preset(expression); ok {
		matched, err = c.filters.ApplyPreset(ctx, expression, systems, filter.MaxResults)
	} else {
		matched, err = c.filters.Apply(ctx, expression, systems, filter.MaxResults)
	}
	if err != nil {
		var compErr *filter.CompilationError
		if errors.As(err, &compErr) {
			return userError(r, i, msgInvalidFilter, err)
		}
		return internalError(r, i, msgSystemsFailed, err)
	}

	return respondEmbed(r, i, SystemListEmbed(expression, matched), false)
}

func (c *BCDiceCommand) runRoll(ctx context.Context, r Responder, i *discordgo.Interaction, opts optionMap) error {
	id := c.normalize(opts.stringOption("system"))
	command := c.normalize(opts.stringOption("command"))

	results, err := c.api.DiceRoll(ctx, id, command)
	if err != nil {
		switch bcdice.CodeOf(err) {
		case bcdice.CodeUnsupportedCommand:
			return userError(r, i, msgUnsupportedCommand, err)
		case bcdice.CodeUnsupportedSystem:
			return userError(r, i, msgUnsupportedSystem, err)
		default:
			return internalError(r, i, msgRollFailed, err)
		}
	}

	// secret rolls are only shown to the user who rolled
	return respondContent(r, i, ":game_die: "+results.Text, results.Secret)
}

func (c *BCDiceCommand) runTable(ctx context.Context, r Responder, i *discordgo.Interaction, opts optionMap) error {
	var items []string
	for _, item := range strings.Split(opts.stringOption("items"), ";") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return userError(r, i, msgEmptyTable, bcdice.ErrEmptyTable)
	}

	table := bcdice.NewOriginalTable(
		strings.TrimSpace(opts.stringOption("title")),
		c.normalize(opts.stringOption("command")),
		items,
	)
	results, err := c.api.RunOriginalTable(ctx, table)
	if err != nil {
		if bcdice.IsCode(err, bcdice.CodeUnsupportedTable) {
			return userError(r, i, msgUnsupportedTable, err)
		}
		return internalError(r, i, msgTableFailed, err)
	}

	return respondContent(r, i, ":game_die: "+results.Text, false)
}
