package lommus

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHexColor(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct {
		in       string
		fallback int
		expected int
	}{
		{"#5865F2", 0, 0x5865F2},
		{"5865F2", 0, 0x5865F2},
		{" #ffffff ", 0, 0xFFFFFF},
		{"#000000", 99, 0},
		{"", 99, 99},
		{"#12345", 99, 99},
		{"#1234567", 99, 99},
		{"#GGGGGG", 99, 99},
	} {
		assert.Equal(
			t,
			tc.expected,
			parseHexColor(tc.in, tc.fallback),
			"input: %q",
			tc.in,
		)
	}
}

func TestDiscordInteractionOptions(t *testing.T) {
	t.Parallel()
	i := newCommandInteraction(
		t,
		DiscordSlashCommandSay,
		stringOption(sayCommandMessageOption, "hi"),
		stringOption("extra", "value"),
	)

	opts := discordInteractionOptions(i)
	require.Len(t, opts, 2)
	assert.Equal(t, "hi", opts[sayCommandMessageOption].StringValue())
	assert.Equal(t, "value", opts["extra"].StringValue())
}

func TestGetDiscordUser(t *testing.T) {
	t.Parallel()

	member := &discordgo.User{ID: "from-member"}
	direct := &discordgo.User{ID: "from-dm"}

	i := newCommandInteraction(t, DiscordSlashCommandSay)
	assert.Equal(t, "user-123", getDiscordUser(i).ID)

	i.Member = &discordgo.Member{User: member}
	i.User = nil
	assert.Same(t, member, getDiscordUser(i))

	i.Member = nil
	i.User = direct
	assert.Same(t, direct, getDiscordUser(i))

	i.User = nil
	assert.Nil(t, getDiscordUser(i))
}

func TestRuntimeConfigToggle(t *testing.T) {
	t.Parallel()
	bot, _ := newTestBot(t)

	assert.False(t, bot.ColorRandomization())
	assert.True(t, bot.ToggleColorRandomization())
	assert.True(t, bot.ColorRandomization())
	assert.False(t, bot.ToggleColorRandomization())
	assert.False(t, bot.ColorRandomization())

	bot.SetColorRandomization(true)
	assert.True(t, bot.ColorRandomization())

	// RuntimeConfig returns a copy
	snapshot := bot.RuntimeConfig()
	snapshot.ColorRandomization = false
	assert.True(t, bot.ColorRandomization())
}
