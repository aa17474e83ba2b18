// Package bot answers trip questions in a Telegram group: today's
// schedule, quick expense entry, the exchange rate and the shopping list.
package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	tele "gopkg.in/telebot.v3"
	"gopkg.in/telebot.v3/middleware"

	"github.com/agentstation/tripmap"
	"github.com/agentstation/tripmap/pkg/errors"
	"github.com/agentstation/tripmap/pkg/trip"
)

// Config configures the Telegram bot.
type Config struct {
	Token       string
	PollTimeout time.Duration

	// AllowedChats restricts the bot to these chat ids when non-empty.
	AllowedChats []int64
}

// Commands lists the supported commands with their help text.
var Commands = []tele.Command{
	{Text: "today", Description: "Today's schedule"},
	{Text: "expense", Description: "<jpy> [category] <description>"},
	{Text: "rate", Description: "JPY to TWD exchange rate"},
	{Text: "shopping", Description: "Items still to buy"},
	{Text: "bought", Description: "<name> mark an item bought"},
	{Text: "check", Description: "<item> toggle a packing item"},
}

// Bot routes chat commands to a trip.
type Bot struct {
	tm     tripmap.Client
	logger *zerolog.Logger
	now    func() time.Time
}

// New creates a Bot for tm.
func New(tm tripmap.Client, logger *zerolog.Logger) *Bot {
	return &Bot{tm: tm, logger: logger, now: time.Now}
}

// Run polls Telegram until ctx is canceled.
func (b *Bot) Run(ctx context.Context, cfg Config) error {
	if cfg.Token == "" {
		return errors.NewConfigError("bot", "telegram token is not set", nil)
	}
	timeout := cfg.PollTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	tb, err := tele.NewBot(tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: timeout},
		OnError: func(err error, c tele.Context) {
			b.logger.Error().Err(err).Msg("Telegram handler failed")
		},
	})
	if err != nil {
		return errors.WrapAPI("telegram", 0, err)
	}

	if len(cfg.AllowedChats) > 0 {
		tb.Use(middleware.Whitelist(cfg.AllowedChats...))
	}
	if err := tb.SetCommands(Commands); err != nil {
		b.logger.Warn().Err(err).Msg("Failed to register bot commands")
	}
	for _, cmd := range Commands {
		name := cmd.Text
		tb.Handle("/"+name, func(c tele.Context) error {
			return c.Send(b.Reply(ctx, Command{Name: name, Args: c.Message().Payload}))
		})
	}

	go func() {
		<-ctx.Done()
		tb.Stop()
	}()

	b.logger.Info().Str("bot", tb.Me.Username).Msg("Telegram bot polling")
	tb.Start()
	return nil
}

// Reply answers one command. Errors become a readable message.
func (b *Bot) Reply(ctx context.Context, cmd Command) string {
	text, err := b.dispatch(ctx, cmd)
	if err != nil {
		b.logger.Debug().Err(err).Str("command", cmd.Name).Msg("Command failed")
		return "⚠️ " + userMessage(err)
	}
	return text
}

func (b *Bot) dispatch(ctx context.Context, cmd Command) (string, error) {
	switch cmd.Name {
	case "today", "start":
		return FormatDay(b.today()), nil

	case "expense":
		in, err := ParseExpense(cmd.Args)
		if err != nil {
			return "", err
		}
		e, rate, err := b.tm.AddExpenseAtLiveRate(ctx, in)
		if err != nil {
			return "", err
		}
		return FormatExpense(e, rate), nil

	case "rate":
		return FormatRate(b.tm.Rate(ctx)), nil

	case "shopping":
		s := b.tm.Shopping()
		return FormatShopping(s.Items(), s.Types()), nil

	case "bought":
		return b.bought(ctx, cmd.Args)

	case "check":
		name := strings.TrimSpace(cmd.Args)
		if name == "" {
			return "", errors.NewValidationError("item", name, "usage: /check <item>")
		}
		checked, err := b.tm.Checklist().Toggle(ctx, name)
		if err != nil {
			return "", err
		}
		if checked {
			return "☑️ " + name + " packed", nil
		}
		return "⬜ " + name + " unpacked", nil

	default:
		return "", errors.NewValidationError("command", cmd.Name, "unknown command /"+cmd.Name)
	}
}

// today returns the itinerary day matching the current date, or the first
// day before and after the trip.
func (b *Bot) today() trip.DayItinerary {
	days := b.tm.Itinerary().Days()
	date := b.now().Format("2006/01/02")
	for _, d := range days {
		if d.Date == date {
			return d
		}
	}
	if len(days) == 0 {
		return trip.DayItinerary{}
	}
	return days[0]
}

// bought marks the first unbought item whose name matches.
func (b *Bot) bought(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.NewValidationError("name", name, "usage: /bought <name>")
	}
	for _, item := range b.tm.Shopping().Items() {
		if item.IsBought || !strings.EqualFold(item.Name, name) {
			continue
		}
		if _, err := b.tm.Shopping().ToggleBought(ctx, item.ID); err != nil {
			return "", err
		}
		p := b.tm.Shopping().Progress()
		return fmt.Sprintf("🛍 %s bought (%d/%d)", item.Name, p.Bought, p.Total), nil
	}
	return "", errors.NewNotFoundError("shopping item", name)
}

func userMessage(err error) string {
	var v *errors.ValidationError
	if errors.As(err, &v) {
		return v.Message
	}
	return err.Error()
}
