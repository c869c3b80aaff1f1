package lommus

import (
	"log/slog"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterCommands(t *testing.T) {
	t.Parallel()
	bot, session := newTestBot(t)

	created, err := bot.discord.registerCommands()
	require.NoError(t, err)
	require.Len(t, created, 3)

	require.Len(t, session.registered, 1)
	commands := session.registered[0]
	names := make([]string, 0, len(commands))
	for _, c := range commands {
		names = append(names, c.Name)
	}
	assert.Equal(
		t,
		[]string{
			DiscordSlashCommandRestart,
			DiscordSlashCommandSay,
			DiscordSlashCommandToggle,
		},
		names,
	)
}

func TestAppCommandSay(t *testing.T) {
	t.Parallel()
	cmd := (&Discord{}).appCommandSay()

	require.Len(t, cmd.Options, 1)
	opt := cmd.Options[0]
	assert.Equal(t, sayCommandMessageOption, opt.Name)
	assert.Equal(t, discordgo.ApplicationCommandOptionString, opt.Type)
	assert.False(t, opt.Required)
}

func TestAppCommandToggle(t *testing.T) {
	t.Parallel()
	cmd := (&Discord{}).appCommandToggle()

	require.Len(t, cmd.Options, 1)
	opt := cmd.Options[0]
	assert.Equal(t, toggleCommandFunctionOption, opt.Name)
	assert.True(t, opt.Required)

	require.Len(t, opt.Choices, 1)
	assert.Equal(t, ToggleFunctionColor, opt.Choices[0].Value)
}

func TestConnectionHandlers(t *testing.T) {
	t.Parallel()
	bot, _ := newTestBot(t)
	d := bot.discord

	d.handlerConnect()(nil, &discordgo.Connect{})
	assert.True(t, d.connected.Load())
	assert.Equal(t, int64(1), d.metricConnects.Load())

	d.handlerDisconnect()(nil, &discordgo.Disconnect{})
	assert.False(t, d.connected.Load())
	assert.Equal(t, int64(1), d.metricDisconnects.Load())
}

func TestDiscordSessionSetLogLevel(t *testing.T) {
	t.Parallel()
	session := DiscordSession{session: &discordgo.Session{}}

	for lvl, want := range map[slog.Level]int{
		slog.LevelDebug: discordgo.LogDebug,
		slog.LevelInfo:  discordgo.LogInformational,
		slog.LevelWarn:  discordgo.LogWarning,
		slog.LevelError: discordgo.LogError,
	} {
		require.NoError(t, session.SetLogLevel(lvl))
		assert.Equal(t, want, session.session.LogLevel)
	}

	assert.Error(t, session.SetLogLevel(slog.Level(12)))
}

func TestDiscordSessionAuthenticatedUser(t *testing.T) {
	t.Parallel()
	session := DiscordSession{session: &discordgo.Session{}}
	assert.Nil(t, session.AuthenticatedUser())

	session.session.State = discordgo.NewState()
	session.session.State.User = &discordgo.User{ID: "bot-user"}
	assert.Equal(t, "bot-user", session.AuthenticatedUser().ID)
}
