// Package bot provides the bot command, which runs the Telegram bot.
package bot

import (
	"time"

	"github.com/spf13/cobra"

	tgbot "github.com/agentstation/tripmap/internal/bot"
	"github.com/agentstation/tripmap/internal/cmd/application"
)

// NewCommand creates the bot command.
func NewCommand(app application.Application) *cobra.Command {
	cfg := app.BotConfig()
	cmd := &cobra.Command{
		Use:   "bot",
		Short: "Answer trip questions in a Telegram chat",
		Long: `Run a Telegram bot backed by this trip.

Commands:
  /today              today's schedule
  /expense <jpy> ...  record an expense at the live rate
  /rate               JPY to TWD exchange rate
  /shopping           items still to buy
  /bought <name>      mark an item bought
  /check <item>       toggle a packing item

The token comes from --token, TRIPMAP_TELEGRAM_TOKEN or TELEGRAM_BOT_TOKEN.`,
		Example: `  tripmap bot --token 123456:ABC --chat -1001234567890`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tm, err := app.Trip()
			if err != nil {
				return err
			}
			return tgbot.New(tm, app.Logger()).Run(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&cfg.Token, "token", cfg.Token, "Telegram bot token")
	cmd.Flags().Int64SliceVar(&cfg.AllowedChats, "chat", cfg.AllowedChats, "only answer these chat ids (repeatable)")
	cmd.Flags().DurationVar(&cfg.PollTimeout, "poll-timeout", 10*time.Second, "long poll timeout")
	return cmd
}
