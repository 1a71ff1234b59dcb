// Package discord runs the bodocord slash commands on the Discord gateway.
package discord

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

const msgUnavailable = "Sorry. This command cannot use now."

// DefaultCommandTimeout bounds a single command run
const DefaultCommandTimeout = 15 * time.Second

// Session is the part of *discordgo.Session used by Bot
type Session interface {
	Responder
	AddHandler(handler interface{}) func()
	Open() error
	Close() error
	ApplicationCommandBulkOverwrite(appID string, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
}

// BotOption configures a Bot
type BotOption func(*Bot)

// WithGuild registers commands to a single guild instead of globally
func WithGuild(guildID string) BotOption {
	return func(b *Bot) {
		b.guildID = guildID
	}
}

// WithCommandTimeout sets the time limit of a single command run
func WithCommandTimeout(timeout time.Duration) BotOption {
	return func(b *Bot) {
		if timeout > 0 {
			b.commandTimeout = timeout
		}
	}
}

// Bot dispatches interactions to commands
type Bot struct {
	session        Session
	commands       map[string]Command
	order          []string
	guildID        string
	commandTimeout time.Duration
	logger         zerolog.Logger
}

// NewSession creates a discordgo session for a bot token
func NewSession(token string) (*discordgo.Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, errors.New("discord: bot token is required")
	}
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("discord: create session: %w", err)
	}
	// slash commands need no privileged intents
	s.Identify.Intents = discordgo.IntentsGuilds
	return s, nil
}

// NewBot creates a bot serving commands over session
func NewBot(session Session, commands []Command, logger zerolog.Logger, opts ...BotOption) *Bot {
	b := &Bot{
		session:        session,
		commands:       make(map[string]Command, len(commands)),
		commandTimeout: DefaultCommandTimeout,
		logger:         logger,
	}
	for _, cmd := range commands {
		name := cmd.Definition().Name
		b.commands[name] = cmd
		b.order = append(b.order, name)
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Run connects to the gateway and serves interactions until ctx is done
func (b *Bot) Run(ctx context.Context) error {
	removeReady := b.session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		b.logger.Info().Msg("Registering commands...")
		if err := b.RegisterCommands(r.User.ID); err != nil {
			b.logger.Error().Err(err).Msg("Failed to register commands")
		}
		b.logger.Info().
			Str("user", r.User.Username).
			Str("user_id", r.User.ID).
			Msg("Ready!")
	})
	defer removeReady()

	removeInteraction := b.session.AddHandler(func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		b.Dispatch(ctx, s, i)
	})
	defer removeInteraction()

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("discord: open gateway: %w", err)
	}
	<-ctx.Done()

	b.logger.Info().Msg("Closing gateway connection")
	if err := b.session.Close(); err != nil {
		return fmt.Errorf("discord: close gateway: %w", err)
	}
	return nil
}

// RegisterCommands replaces the registered commands of the application
func (b *Bot) RegisterCommands(appID string) error {
	definitions := make([]*discordgo.ApplicationCommand, 0, len(b.order))
	for _, name := range b.order {
		definitions = append(definitions, b.commands[name].Definition())
	}

	registered, err := b.session.ApplicationCommandBulkOverwrite(appID, b.guildID, definitions)
	if err != nil {
		return fmt.Errorf("discord: register commands: %w", err)
	}

	names := make([]string, 0, len(registered))
	for _, cmd := range registered {
		names = append(names, cmd.Name)
	}
	b.logger.Info().Msgf("Registered all commands: %s", strings.Join(names, ", "))
	return nil
}

// Dispatch runs the command an interaction refers to
func (b *Bot) Dispatch(ctx context.Context, r Responder, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	name := i.ApplicationCommandData().Name
	log := b.logger.With().
		Str("command", name).
		Str("user_id", userID(i.Interaction)).
		Str("guild_id", i.GuildID).
		Str("channel_id", i.ChannelID).
		Str("interaction_id", i.ID).
		Logger()

	cmd, ok := b.commands[name]
	if !ok {
		if err := respondContent(r, i.Interaction, msgUnavailable, false); err != nil {
			log.Error().Err(err).Msg("Failed to respond to unknown command")
		}
		log.Error().Msg("The command is not registered")
		return
	}

	ctx, cancel := context.WithTimeout(ctx, b.commandTimeout)
	defer cancel()

	err := b.run(ctx, cmd, r, i)
	if err == nil {
		log.Info().Msgf("Ran command %s", name)
		return
	}

	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		log.Error().Err(err).Str("hash", cmdErr.Hash).Msgf("Failed to run command %s", name)
		return
	}
	log.Error().Err(err).Msgf("Failed to run command %s", name)
}

// run calls cmd and turns a panic into an error
func (b *Bot) run(ctx context.Context, cmd Command, r Responder, i *discordgo.InteractionCreate) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("command panicked: %v", p)
		}
	}()
	return cmd.Run(ctx, r, i)
}

func userID(i *discordgo.Interaction) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}
