package cmd

import (
	"log/slog"
	"reflect"
	"testing"
	"time"

	"github.com/AW1534/lommus/lommus"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unmarshalConfig mirrors what PersistentPreRun does, into a fresh config.
func unmarshalConfig(t *testing.T) *lommus.Config {
	t.Helper()
	config := lommus.DefaultConfig()
	require.NoError(
		t,
		viper.Unmarshal(
			config,
			viper.DecodeHook(
				mapstructure.ComposeDecodeHookFunc(
					mapstructure.StringToTimeDurationHookFunc(),
					LevelToStringHookFunc(),
				),
			),
		),
	)
	return config
}

func TestInitConfigDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	initConfig()
	config := unmarshalConfig(t)

	assert.Equal(t, lommus.DefaultLogLevel, config.LogLevel.Level())
	assert.Equal(t, lommus.DefaultStartupTimeout, config.StartupTimeout)
	assert.Equal(t, lommus.DefaultShutdownTimeout, config.ShutdownTimeout)
	assert.Equal(t, lommus.DefaultEmbedColor, config.Discord.EmbedColor)
	assert.Equal(
		t,
		lommus.DefaultDiscordGatewayIntents,
		config.Discord.GatewayIntents,
	)
	assert.True(t, config.Discord.RegisterCommands)
	assert.Equal(t, lommus.DefaultModuleDir, config.Modules.Dir)
	assert.Equal(t, lommus.DefaultModuleSuffix, config.Modules.Suffix)
}

func TestInitConfigEnvOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("LOM_DISCORD_TOKEN", "env-token")
	t.Setenv("LOM_DISCORD_GUILD_ID", "env-guild")
	t.Setenv("LOM_LOG_LEVEL", "DEBUG")
	t.Setenv("LOM_SHUTDOWN_TIMEOUT", "5s")
	t.Setenv("LOM_MODULES_DIR", "/srv/modules")

	initConfig()
	config := unmarshalConfig(t)

	assert.Equal(t, "env-token", config.Discord.Token)
	assert.Equal(t, "env-guild", config.Discord.GuildID)
	assert.Equal(t, slog.LevelDebug, config.LogLevel.Level())
	assert.Equal(t, 5*time.Second, config.ShutdownTimeout)
	assert.Equal(t, "/srv/modules", config.Modules.Dir)
}

func TestInitConfigCustomEnvPrefix(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv(lommus.EnvvarSetEnvPrefix, "OTHERBOT")
	t.Setenv("OTHERBOT_DISCORD_TOKEN", "prefixed-token")

	initConfig()
	config := unmarshalConfig(t)

	assert.Equal(t, "prefixed-token", config.Discord.Token)
}

func TestGetLogLevel(t *testing.T) {
	t.Parallel()
	for in, want := range map[string]slog.Level{
		"DEBUG": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"WARN":  slog.LevelWarn,
		"ERROR": slog.LevelError,
	} {
		lvl, err := getLogLevel(in)
		require.NoError(t, err)
		assert.Equal(t, want, lvl)
	}

	_, err := getLogLevel("LOUD")
	assert.Error(t, err)
}

func TestLevelToStringHookFunc(t *testing.T) {
	t.Parallel()
	hook := LevelToStringHookFunc()

	stringType := reflect.TypeOf("")
	levelVarPtrType := reflect.TypeOf(&slog.LevelVar{})

	out, err := hook(stringType, levelVarPtrType, "WARN")
	require.NoError(t, err)
	lvlVar, ok := out.(*slog.LevelVar)
	require.True(t, ok)
	assert.Equal(t, slog.LevelWarn, lvlVar.Level())

	// unrelated conversions pass through untouched
	out, err = hook(stringType, stringType, "whatever")
	require.NoError(t, err)
	assert.Equal(t, "whatever", out)

	_, err = hook(stringType, levelVarPtrType, "LOUD")
	assert.Error(t, err)
}
