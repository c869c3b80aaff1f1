package lommus

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
)

const (
	// Confirmation colors for the /toggle reply. These are fixed; the
	// configured embed colors cover everything else.
	embedColorEnabled  = 0x2ECC71
	embedColorDisabled = 0xE74C3C

	sayCommandAck = "Sending!"
)

// dispatchCommand routes a slash-command interaction to its handler.
// The guard clause at entry rejects interaction shapes the gateway may
// deliver that aren't dispatchable commands (missing guild or channel
// context, component/modal interactions).
func (b *Bot) dispatchCommand(
	ctx context.Context,
	i *discordgo.InteractionCreate,
) error {
	logger := b.logger.With(
		slog.Group("interaction", interactionLogAttrs(*i)...),
		"request_id", uuid.NewString(),
	)

	if i.Type != discordgo.InteractionApplicationCommand ||
		i.GuildID == "" || i.ChannelID == "" {
		logger.Error(
			"interaction missing command, guild or channel context",
			"user", getDiscordUser(i),
		)
		return nil
	}

	data := i.ApplicationCommandData()
	logger = logger.With("command", data.Name)

	switch data.Name {
	case DiscordSlashCommandRestart:
		return b.handleRestart(ctx, logger, i)
	case DiscordSlashCommandSay:
		return b.handleSay(ctx, logger, i)
	case DiscordSlashCommandToggle:
		return b.handleToggle(ctx, logger, i)
	default:
		logger.Warn("unknown command")
		return nil
	}
}

// handleRestart sends an ephemeral status embed and, only once that reply
// has been acknowledged, re-executes the process. A failed reply means no
// restart.
func (b *Bot) handleRestart(
	ctx context.Context,
	logger *slog.Logger,
	i *discordgo.InteractionCreate,
) error {
	err := b.discord.session.InteractionRespond(
		i.Interaction,
		&discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Flags: discordgo.MessageFlagsEphemeral,
				Embeds: []*discordgo.MessageEmbed{
					{
						Title:       "Restarting",
						Description: "Be right back!",
						Color: parseHexColor(
							b.config.Discord.EmbedColor, 0,
						),
					},
				},
			},
		},
		discordgo.WithContext(ctx),
	)
	if err != nil {
		// no acknowledgement, no restart
		return fmt.Errorf("restart reply failed: %w", err)
	}

	logger.Warn("restart requested, re-executing process")
	return b.restart()
}

// handleSay acknowledges ephemerally, then sends the given text as a new
// message in the originating channel. The message option is passed through
// as-is - empty or oversized content is the transport's problem.
func (b *Bot) handleSay(
	ctx context.Context,
	logger *slog.Logger,
	i *discordgo.InteractionCreate,
) error {
	var message string
	if opt, ok := discordInteractionOptions(i)[sayCommandMessageOption]; ok {
		message = opt.StringValue()
	}

	err := b.discord.session.InteractionRespond(
		i.Interaction,
		&discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Flags:   discordgo.MessageFlagsEphemeral,
				Content: sayCommandAck,
			},
		},
		discordgo.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("say ack failed: %w", err)
	}

	if sendErr := b.discord.channelMessageSend(
		i.ChannelID,
		message,
		discordgo.WithContext(ctx),
	); sendErr != nil {
		return fmt.Errorf("error sending say message: %w", sendErr)
	}

	logger.Info("relayed message", "channel_id", i.ChannelID)
	return nil
}

// handleToggle flips the named runtime flag and confirms with an embed.
// Unrecognized function values are ignored without a reply.
func (b *Bot) handleToggle(
	ctx context.Context,
	logger *slog.Logger,
	i *discordgo.InteractionCreate,
) error {
	opt, ok := discordInteractionOptions(i)[toggleCommandFunctionOption]
	if !ok {
		logger.Error("toggle command missing function option")
		return nil
	}

	switch opt.StringValue() {
	case ToggleFunctionColor:
		enabled := b.ToggleColorRandomization()
		logger.Info("toggled color randomization", "enabled", enabled)
		return b.discord.session.InteractionRespond(
			i.Interaction,
			&discordgo.InteractionResponse{
				Type: discordgo.InteractionResponseChannelMessageWithSource,
				Data: &discordgo.InteractionResponseData{
					Flags:  discordgo.MessageFlagsEphemeral,
					Embeds: []*discordgo.MessageEmbed{toggleEmbed(enabled)},
				},
			},
			discordgo.WithContext(ctx),
		)
	default:
		logger.Debug("unrecognized toggle function", "function", opt.StringValue())
		return nil
	}
}

func toggleEmbed(enabled bool) *discordgo.MessageEmbed {
	state := "disabled"
	color := embedColorDisabled
	if enabled {
		state = "enabled"
		color = embedColorEnabled
	}
	return &discordgo.MessageEmbed{
		Title:       "Color randomization",
		Description: fmt.Sprintf("Color randomization is now **%s**.", state),
		Color:       color,
	}
}
