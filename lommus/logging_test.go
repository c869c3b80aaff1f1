package lommus

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func TestDiscordgoLoggerFunc(t *testing.T) {
	t.Parallel()
	buf := &bytes.Buffer{}
	handler := slog.NewTextHandler(
		buf,
		&slog.HandlerOptions{Level: slog.LevelDebug},
	)
	logFunc := discordgoLoggerFunc(context.Background(), handler)

	logFunc(discordgo.LogWarning, 0, "rate limited on %s\n", "/gateway")
	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "rate limited on /gateway")

	// unknown levels fall back to info
	buf.Reset()
	logFunc(42, 0, "mystery event")
	assert.Contains(t, buf.String(), "level=INFO")
}
