package lommus

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/lmittmann/tint"
)

var (
	// When building, set these like:
	// -ldflags "-X github.com/AW1534/lommus/lommus.Version=$$(date +'%Y%m%d')"

	Version   = "dev"
	CommitSHA = "unknown"
	BuildTime = "unknown"
)

var (
	defaultLogWriter io.Writer = os.Stdout
)

// Bot is the top-level orchestration struct: it owns the discord session,
// the runtime configuration, and the feature-module registry.
type Bot struct {
	config *Config

	// Standard logger. Missing loggers will try to use this,
	// and fall back to slog.Default()
	logger *slog.Logger

	// Handler to use for the above
	logHandler slog.Handler

	// Handles discord integration, sessions
	discord *Discord

	// Runtime-configurable settings - things modules and command handlers
	// may change without restarting the bot
	runtimeConfig *RuntimeConfig

	// protecc the runtime config
	cfgMu sync.RWMutex

	// Feature modules registered so far, in load order
	registry *moduleRegistry

	// The ready sequence runs at most once per process, even though
	// discordgo re-emits Ready on session resume
	readyOnce atomic.Bool

	// prevents Run from executing concurrently
	runMu sync.Mutex

	// The time Run was called
	startedAt time.Time
}

// New creates a Bot from the given configuration. It sets up logging and
// the discord integration, but does not open any connections - call
// [Bot.Run] for that.
func New(config *Config) (*Bot, error) {
	if config == nil {
		return nil, fmt.Errorf("nil config")
	}

	b := &Bot{
		config:   config,
		registry: newModuleRegistry(),
	}
	runtimeConfig := DefaultRuntimeConfig()
	b.runtimeConfig = &runtimeConfig

	b.logHandler = tint.NewHandler(
		defaultLogWriter, &tint.Options{
			Level:     config.LogLevel,
			AddSource: true,
		},
	)
	b.logger = slog.New(b.logHandler)
	slog.SetDefault(b.logger)

	discordgo.Logger = discordgoLoggerFunc(
		context.Background(),
		tint.NewHandler(
			defaultLogWriter, &tint.Options{
				Level:     config.Discord.DiscordGoLogLevel,
				AddSource: true,
			},
		).WithAttrs([]slog.Attr{slog.String(loggerNameKey, "discordgo")}),
	)

	disc := newDiscord(config.Discord)
	disc.logger = slog.New(
		tint.NewHandler(
			defaultLogWriter, &tint.Options{
				Level:     config.Discord.LogLevel,
				AddSource: true,
			},
		),
	).With(loggerNameKey, "discord")
	disc.bot = b
	b.discord = disc

	return b, nil
}

// ValidateConfig validates the static configuration.
func (b *Bot) ValidateConfig() error {
	return structValidator.Struct(b.config)
}

// Run opens the discord session and blocks until ctx is cancelled, then
// closes the session. The ready handler fires after authentication and
// triggers module loading.
func (b *Bot) Run(ctx context.Context) error {
	// prevents concurrent runs
	b.runMu.Lock()
	defer b.runMu.Unlock()

	b.startedAt = time.Now()
	logger := b.logger

	if err := b.ValidateConfig(); err != nil {
		logger.Error("invalid config", tint.Err(err))
		return err
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "starting", slog.Any("config", b.config))

	if b.discord.session == nil {
		session, err := b.discord.newSession()
		if err != nil {
			logger.Error("error creating discord session", tint.Err(err))
			return err
		}
		b.discord.session = session
	}

	b.discord.session.SetIdentify(
		discordgo.Identify{Intents: b.config.Discord.GatewayIntents},
	)

	// handlers spawned per event are tracked here so shutdown can wait
	// on in-flight command handlers
	runtimeWG := &sync.WaitGroup{}

	b.discord.discordgoRemoveHandlerFuncs = []func(){
		b.discord.session.AddHandler(b.discord.handlerConnect()),
		b.discord.session.AddHandler(b.discord.handlerDisconnect()),
		b.discord.session.AddHandler(b.handlerReady(ctx, runtimeWG)),
		b.discord.session.AddHandler(
			func(
				_ *discordgo.Session,
				i *discordgo.InteractionCreate,
			) {
				runtimeWG.Add(1)
				go func() {
					defer runtimeWG.Done()
					b.handleInteraction(ctx, i)
				}()
			},
		),
	}

	// session creation and command registration both have to finish
	// within the startup timeout
	startupCtx, startupCancel := context.WithTimeout(
		ctx,
		b.config.StartupTimeout,
	)
	defer startupCancel()

	logger.InfoContext(ctx, "connecting to discord")
	openErr := make(chan error, 1)
	go func() {
		openErr <- b.discord.session.Open()
	}()
	select {
	case err := <-openErr:
		if err != nil {
			logger.ErrorContext(ctx, "error connecting to discord!", tint.Err(err))
			return fmt.Errorf("error connecting to discord: %w", err)
		}
	case <-startupCtx.Done():
		logger.ErrorContext(ctx, "timed out connecting to discord")
		_ = b.discord.session.Close()
		return fmt.Errorf(
			"discord session not ready within %s",
			b.config.StartupTimeout,
		)
	}

	if b.config.Discord.RegisterCommands {
		if _, err := b.discord.registerCommands(
			discordgo.WithContext(startupCtx),
			discordgo.WithRetryOnRatelimit(false),
		); err != nil {
			logger.ErrorContext(ctx, "error registering commands", tint.Err(err))
		}
	}

	<-ctx.Done()

	return b.shutdown(runtimeWG)
}

// Uptime returns how long ago [Bot.Run] was called, or zero if it hasn't
// been.
func (b *Bot) Uptime() time.Duration {
	if b.startedAt.IsZero() {
		return 0
	}
	return time.Since(b.startedAt)
}

func (b *Bot) shutdown(runtimeWG *sync.WaitGroup) error {
	b.logger.Warn("shutting down", "uptime", b.Uptime())

	if err := b.discord.session.Close(); err != nil {
		b.logger.Error("error closing discord session", tint.Err(err))
	}
	for _, h := range b.discord.discordgoRemoveHandlerFuncs {
		h()
	}

	done := make(chan struct{}, 1)
	go func() {
		runtimeWG.Wait()
		done <- struct{}{}
	}()
	select {
	case <-done:
		b.logger.Info("shutdown complete")
		return nil
	case <-time.After(b.config.ShutdownTimeout):
		return fmt.Errorf("handlers did not stop in time")
	}
}

// handlerReady returns the gateway Ready handler. The ready sequence runs
// at most once per process: guard clauses first, then the member-count
// presence, then module loading.
func (b *Bot) handlerReady(
	ctx context.Context,
	runtimeWG *sync.WaitGroup,
) func(s *discordgo.Session, r *discordgo.Ready) {
	return func(_ *discordgo.Session, r *discordgo.Ready) {
		if b.readyOnce.Swap(true) {
			b.logger.Debug("ready re-emitted, ignoring", "session_id", r.SessionID)
			return
		}

		logger := b.logger.With(loggerNameKey, "ready")

		botUser := b.discord.session.AuthenticatedUser()
		if botUser == nil {
			logger.Error("ready event with no authenticated user")
			return
		}

		guild, err := b.discord.session.Guild(b.config.Discord.GuildID)
		if err != nil || guild == nil {
			logger.Error(
				"configured guild not found",
				"guild_id", b.config.Discord.GuildID,
				tint.Err(err),
			)
			return
		}

		logger.Info(
			"ready",
			"session_id", r.SessionID,
			"user_id", botUser.ID,
			"username", botUser.Username,
			"member_count", guild.MemberCount,
		)

		if statusErr := b.discord.session.UpdateStatusComplex(
			discordgo.UpdateStatusData{
				Activities: []*discordgo.Activity{
					{
						Name: fmt.Sprintf("%d LeMmingS", guild.MemberCount),
						Type: discordgo.ActivityTypeWatching,
					},
				},
			},
		); statusErr != nil {
			logger.Error("error updating presence", tint.Err(statusErr))
		}

		// module loading is deferred until now so the guild member
		// cache is warm before any Init runs
		runtimeWG.Add(1)
		go func() {
			defer runtimeWG.Done()
			b.LoadModules(ctx)
		}()
	}
}

// handleInteraction is the entry point for every interactionCreate event.
// It recovers panics from command handlers so a misbehaving handler can't
// take down the gateway read loop.
func (b *Bot) handleInteraction(ctx context.Context, i *discordgo.InteractionCreate) {
	defer func() {
		if rc := recover(); rc != nil {
			b.logger.Error(
				"interaction handler panic",
				"panic", rc,
				"stack", string(debug.Stack()),
			)
		}
	}()
	if err := b.dispatchCommand(ctx, i); err != nil {
		b.logger.Error(
			"command handler failed",
			append(interactionLogAttrs(*i), tint.Err(err))...,
		)
	}
}

// moduleClient implements [modapi.Client] on top of the bot. A single
// instance is shared by every loaded module.
type moduleClient struct {
	bot    *Bot
	logger *slog.Logger
}

func (c *moduleClient) SendMessage(channelID string, content string) error {
	return c.bot.discord.channelMessageSend(channelID, content)
}

func (c *moduleClient) GuildID() string {
	return c.bot.config.Discord.GuildID
}

func (c *moduleClient) ColorRandomization() bool {
	return c.bot.ColorRandomization()
}

func (c *moduleClient) SetColorRandomization(enabled bool) {
	c.bot.SetColorRandomization(enabled)
}

func (c *moduleClient) EmbedColor() int {
	return parseHexColor(
		c.bot.config.Discord.EmbedColor,
		parseHexColor(DefaultEmbedColor, 0),
	)
}

func (c *moduleClient) EmbedColorAccent() int {
	return parseHexColor(
		c.bot.config.Discord.EmbedColorAccent,
		parseHexColor(DefaultEmbedColorAccent, 0),
	)
}

func (c *moduleClient) Logger() *slog.Logger {
	return c.logger
}
