package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bodocord/bodocord/bcdice"
	"github.com/bodocord/bodocord/config"
	"github.com/bodocord/bodocord/discord"
	"github.com/bodocord/bodocord/paramstore"
)

var skipVersionCheck bool

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the Discord bot",
	Long: `Connect to Discord and serve the slash commands until interrupted.

The bot token is read from discord.token, the BC_TOKEN environment variable,
or the AWS SSM parameter named by discord.token_parameter.`,
	RunE: runBot,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVar(&skipVersionCheck, "skip-version-check", false, "start even if the BCDice-API server is older than bcdice.min_api_version")
}

func runBot(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	token, err := resolveToken(ctx, cfg.Discord, newParameterStore)
	if err != nil {
		return err
	}

	if !skipVersionCheck {
		v, err := bcdice.CheckCompatibility(ctx, bcdiceClient, cfg.BCDice.MinAPIVersion)
		if err != nil {
			return fmt.Errorf("BCDice-API at %s: %w", bcdiceClient.BaseURL(), err)
		}
		logger.Info().
			Str("api", v.API).
			Str("bcdice", v.BCDice).
			Msg("Connected to BCDice-API")
	}

	filters, err := newFilterManager(cfg.Filter.Presets)
	if err != nil {
		return fmt.Errorf("failed to load filter presets: %w", err)
	}

	session, err := discord.NewSession(token)
	if err != nil {
		return err
	}

	commands := []discord.Command{
		discord.NewLinuxCommand(),
		discord.NewDiceCommand(bcdiceClient, cfg.Discord.DefaultDiceSides),
		discord.NewBCDiceCommand(bcdiceClient,
			discord.WithFilters(filters),
			discord.WithWidthFolding(cfg.Discord.FoldWidth),
		),
	}

	var opts []discord.BotOption
	if cfg.Discord.GuildID != "" {
		opts = append(opts, discord.WithGuild(cfg.Discord.GuildID))
	}
	bot := discord.NewBot(session, commands, logger, opts...)

	logger.Info().Str("version", version).Msg("Starting bodocord")
	return bot.Run(ctx)
}

func newParameterStore(ctx context.Context) (paramstore.Getter, error) {
	return paramstore.NewFromEnvironment(ctx)
}

// resolveToken returns the configured bot token, falling back to Parameter Store
func resolveToken(ctx context.Context, cfg config.DiscordConfig, newGetter func(context.Context) (paramstore.Getter, error)) (string, error) {
	if cfg.Token != "" {
		return cfg.Token, nil
	}
	if cfg.TokenParameter == "" {
		return "", errors.New("no bot token: set discord.token, BC_TOKEN or discord.token_parameter")
	}

	store, err := newGetter(ctx)
	if err != nil {
		return "", err
	}
	token, err := store.GetParameter(ctx, cfg.TokenParameter)
	if err != nil {
		return "", fmt.Errorf("failed to read bot token: %w", err)
	}
	return token, nil
}
