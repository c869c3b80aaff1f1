//nolint:lll // struct tags can't be split
package lommus

import (
	"log/slog"
	"time"

	"github.com/bwmarrin/discordgo"
)

const (
	EnvvarSetEnvPrefix = "LOMMUS_ENV_PREFIX"
	DefaultEnvPrefix   = "LOM"

	DefaultLogLevel          = slog.LevelInfo
	DefaultDiscordLogLevel   = slog.LevelWarn
	DefaultDiscordgoLogLevel = slog.LevelWarn

	DefaultStartupTimeout  = 30 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultModuleDir    = "modules"
	DefaultModuleSuffix = ".go"

	// Default embed colors (hex strings, parsed at startup).
	DefaultEmbedColor       = "#5865F2"
	DefaultEmbedColorAccent = "#EB459E"

	DiscordSlashCommandRestart = "restart"
	DiscordSlashCommandSay     = "say"
	DiscordSlashCommandToggle  = "toggle"

	sayCommandMessageOption     = "message"
	toggleCommandFunctionOption = "function"

	// ToggleFunctionColor is the only recognized value for the /toggle
	// `function` option. Anything else is ignored without a reply.
	ToggleFunctionColor = "toggle_color"

	// DefaultDiscordGatewayIntents covers everything the bot and its
	// modules consume: guild presence/membership for the member-count
	// status line, messages (including content) and reactions for
	// feature modules, moderation events and DMs.
	DefaultDiscordGatewayIntents = discordgo.IntentGuilds |
		discordgo.IntentGuildPresences |
		discordgo.IntentGuildMembers |
		discordgo.IntentGuildMessages |
		discordgo.IntentGuildModeration |
		discordgo.IntentGuildMessageReactions |
		discordgo.IntentMessageContent |
		discordgo.IntentDirectMessages
)

// Config is the static bot configuration, loaded once at startup and
// immutable afterwards. Mutable state lives in [RuntimeConfig].
type Config struct {
	// LogLevel is the base log level, for the default logger
	LogLevel *slog.LevelVar `yaml:"log_level" mapstructure:"log_level" json:"log_level"`

	// StartupTimeout bounds session creation and command registration.
	StartupTimeout time.Duration `yaml:"startup_timeout" mapstructure:"startup_timeout" json:"startup_timeout"`

	// ShutdownTimeout is the time to allow for a graceful shutdown.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout" json:"shutdown_timeout"`

	// Discord configures the discord bot itself
	Discord *DiscordConfig `yaml:"discord" mapstructure:"discord" json:"discord"`

	// Modules configures the feature-module loader
	Modules *ModuleConfig `yaml:"modules" mapstructure:"modules" json:"modules"`
}

func (c Config) LogValue() slog.Value {
	return structToSlogValue(c)
}

// DiscordConfig configures the discord connection and command surface.
//
//nolint:lll // can't break tags
type DiscordConfig struct {
	// Discord bot token (from the 'Bot' tab in the discord dev portal)
	Token string `yaml:"token" mapstructure:"token" json:"token" log:"[redacted]" binding:"required"`

	// Discord application ID (from the 'General Information' tab in the discord dev portal)
	ApplicationID string `yaml:"application_id" mapstructure:"application_id" json:"application_id"`

	// GuildID is the home guild. The ready sequence aborts if this guild
	// can't be resolved, and slash commands are registered against it.
	GuildID string `yaml:"guild_id" mapstructure:"guild_id" json:"guild_id" binding:"required"`

	// RegisterCommands controls whether the bot bulk-overwrites its slash
	// commands on startup. Disable when commands are managed externally.
	RegisterCommands bool `yaml:"register_commands" mapstructure:"register_commands" json:"register_commands"`

	// EmbedColor is the primary embed color, as a '#RRGGBB' hex string
	EmbedColor string `yaml:"embed_color" mapstructure:"embed_color" json:"embed_color"`

	// EmbedColorAccent is the secondary embed color, as a '#RRGGBB' hex string
	EmbedColorAccent string `yaml:"embed_color_accent" mapstructure:"embed_color_accent" json:"embed_color_accent"`

	// Base discord logging level
	LogLevel *slog.LevelVar `yaml:"log_level" mapstructure:"log_level" json:"log_level"`

	// Log level for the `discordgo` library's logger
	DiscordGoLogLevel *slog.LevelVar `yaml:"discordgo_log_level" mapstructure:"discordgo_log_level" json:"discordgo_log_level"`

	// Discord gateway intents. See: https://discord.com/developers/docs/topics/gateway#gateway-intents
	GatewayIntents discordgo.Intent `yaml:"gateway_intents" mapstructure:"gateway_intents" json:"gateway_intents"`
}

// ModuleConfig configures the feature-module loader.
type ModuleConfig struct {
	// Dir is the directory scanned (once, after first ready) for modules
	Dir string `yaml:"dir" mapstructure:"dir" json:"dir" binding:"required"`

	// Suffix filters which files in Dir are considered
	Suffix string `yaml:"suffix" mapstructure:"suffix" json:"suffix" binding:"required"`
}

// DefaultConfig returns a Config with all default settings populated
func DefaultConfig() *Config {
	mainLogLevel := &slog.LevelVar{}
	discordLogLevel := &slog.LevelVar{}
	discordgoLogLevel := &slog.LevelVar{}

	mainLogLevel.Set(DefaultLogLevel)
	discordLogLevel.Set(DefaultDiscordLogLevel)
	discordgoLogLevel.Set(DefaultDiscordgoLogLevel)

	return &Config{
		LogLevel:        mainLogLevel,
		StartupTimeout:  DefaultStartupTimeout,
		ShutdownTimeout: DefaultShutdownTimeout,
		Discord: &DiscordConfig{
			RegisterCommands:  true,
			EmbedColor:        DefaultEmbedColor,
			EmbedColorAccent:  DefaultEmbedColorAccent,
			LogLevel:          discordLogLevel,
			DiscordGoLogLevel: discordgoLogLevel,
			GatewayIntents:    DefaultDiscordGatewayIntents,
		},
		Modules: &ModuleConfig{
			Dir:    DefaultModuleDir,
			Suffix: DefaultModuleSuffix,
		},
	}
}
