package discord

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSession struct {
	fakeResponder
	registered []*discordgo.ApplicationCommand
	appID      string
	guildID    string
	err        error
}

func (s *fakeSession) AddHandler(interface{}) func() { return func() {} }
func (s *fakeSession) Open() error                    { return nil }
func (s *fakeSession) Close() error                   { return nil }

func (s *fakeSession) ApplicationCommandBulkOverwrite(appID, guildID string, commands []*discordgo.ApplicationCommand, _ ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.appID = appID
	s.guildID = guildID
	s.registered = commands
	return commands, nil
}

// funcCommand adapts a function to Command
type funcCommand struct {
	name string
	run  func(ctx context.Context, r Responder, i *discordgo.InteractionCreate) error
}

func (c funcCommand) Definition() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{Name: c.name, Description: c.name}
}

func (c funcCommand) Run(ctx context.Context, r Responder, i *discordgo.InteractionCreate) error {
	return c.run(ctx, r, i)
}

func TestRegisterCommands(t *testing.T) {
	session := &fakeSession{}
	bot := NewBot(session, []Command{NewLinuxCommand(), NewDiceCommand(&fakeAPI{}, 6)}, zerolog.Nop(), WithGuild("guild"))

	require.NoError(t, bot.RegisterCommands("app"))
	assert.Equal(t, "app", session.appID)
	assert.Equal(t, "guild", session.guildID)
	require.Len(t, session.registered, 2)
	assert.Equal(t, "linux", session.registered[0].Name)
	assert.Equal(t, "dice", session.registered[1].Name)

	session.err = errors.New("unauthorized")
	assert.ErrorIs(t, bot.RegisterCommands("app"), session.err)
}

func TestDispatchUnknownCommand(t *testing.T) {
	var buf bytes.Buffer
	bot := NewBot(&fakeSession{}, nil, zerolog.New(&buf))
	r := &fakeResponder{}

	bot.Dispatch(context.Background(), r, newInteraction("missing"))

	assert.Equal(t, msgUnavailable, r.last(t).Content)
	assert.Contains(t, buf.String(), "The command is not registered")
}

func TestDispatchIgnoresOtherInteractions(t *testing.T) {
	bot := NewBot(&fakeSession{}, []Command{NewLinuxCommand()}, zerolog.Nop())
	r := &fakeResponder{}

	i := newInteraction("linux")
	i.Type = discordgo.InteractionPing
	bot.Dispatch(context.Background(), r, i)

	assert.Empty(t, r.responses)
}

func TestDispatch(t *testing.T) {
	var buf bytes.Buffer
	bot := NewBot(&fakeSession{}, []Command{NewLinuxCommand()}, zerolog.New(&buf))
	r := &fakeResponder{}

	bot.Dispatch(context.Background(), r, newInteraction("linux"))

	assert.Equal(t, linuxGIF, r.last(t).Content)
	assert.Contains(t, buf.String(), `"command":"linux"`)
	assert.Contains(t, buf.String(), `"user_id":"400000000000000000"`)
	assert.Contains(t, buf.String(), "Ran command linux")
}

func TestDispatchLogsErrorHash(t *testing.T) {
	var buf bytes.Buffer
	api := &fakeAPI{rollErr: errors.New("boom")}
	bot := NewBot(&fakeSession{}, []Command{NewDiceCommand(api, 6)}, zerolog.New(&buf))

	i := newInteraction("dice")
	bot.Dispatch(context.Background(), &fakeResponder{}, i)

	assert.Contains(t, buf.String(), `"hash":"`+InteractionErrorHash(i.Interaction)+`"`)
	assert.Contains(t, buf.String(), "Failed to run command dice")
}

func TestDispatchRecoversPanic(t *testing.T) {
	var buf bytes.Buffer
	cmd := funcCommand{name: "panic", run: func(context.Context, Responder, *discordgo.InteractionCreate) error {
		panic("unexpected")
	}}
	bot := NewBot(&fakeSession{}, []Command{cmd}, zerolog.New(&buf))

	require.NotPanics(t, func() {
		bot.Dispatch(context.Background(), &fakeResponder{}, newInteraction("panic"))
	})
	assert.Contains(t, buf.String(), "command panicked: unexpected")
}

func TestDispatchAppliesTimeout(t *testing.T) {
	cmd := funcCommand{name: "wait", run: func(ctx context.Context, _ Responder, _ *discordgo.InteractionCreate) error {
		_, ok := ctx.Deadline()
		assert.True(t, ok)
		return nil
	}}
	bot := NewBot(&fakeSession{}, []Command{cmd}, zerolog.Nop(), WithCommandTimeout(DefaultCommandTimeout/3))

	bot.Dispatch(context.Background(), &fakeResponder{}, newInteraction("wait"))
}

func TestNewSessionRequiresToken(t *testing.T) {
	_, err := NewSession("  ")
	assert.Error(t, err)

	s, err := NewSession("token")
	require.NoError(t, err)
	assert.Equal(t, "Bot token", s.Token)
	assert.Equal(t, discordgo.IntentsGuilds, s.Identify.Intents)
}
