package cmd

import (
	"log"
	"log/slog"

	"github.com/AW1534/lommus/lommus"
	"github.com/spf13/cobra"
)

var (
	runCmd = &cobra.Command{
		Use:   "run [flags]",
		Short: "Starts the lommus bot",
		Run: func(cmd *cobra.Command, _ []string) {
			ctx := cmd.Context()

			// No token, no bot. Logged rather than fatal so the exit
			// code stays zero.
			if cfg.Discord.Token == "" {
				slog.Error(
					"no discord token set, not starting " +
						"(set LOM_DISCORD_TOKEN)",
				)
				return
			}

			bot, err := lommus.New(cfg)
			if err != nil {
				log.Fatalf("error creating lommus: %s", err.Error())
			}

			if err = bot.Run(ctx); err != nil {
				log.Fatalf("error running lommus: %s", err.Error())
			}
		},
	}
)

func init() {
	rootCmd.AddCommand(runCmd)
}
