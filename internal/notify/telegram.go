// Package notify delivers anomaly alerts to a Telegram chat.
package notify

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Alias1177/pairscan/internal/model"
)

const (
	// Telegram rejects longer messages
	maxMessageLen = 4096
	maxListed     = 10
)

// Sender is the part of tgbotapi.BotAPI the notifier needs
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram posts alerts to a single chat
type Telegram struct {
	sender Sender
	chatID int64
	logger zerolog.Logger
}

// NewTelegram authenticates the bot token and returns a notifier for chatID
func NewTelegram(token string, chatID int64) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("initialize Telegram bot: %w", err)
	}
	return NewTelegramWithSender(bot, chatID), nil
}

// NewTelegramWithSender wraps an existing sender
func NewTelegramWithSender(sender Sender, chatID int64) *Telegram {
	return &Telegram{
		sender: sender,
		chatID: chatID,
		logger: log.With().Str("component", "telegram").Int64("chat_id", chatID).Logger(),
	}
}

// Notify sends an alert when the report has findings. It reports whether a
// message was sent.
func (t *Telegram) Notify(r *model.Report) (bool, error) {
	if !r.HasFindings() {
		t.logger.Debug().Str("run_id", r.RunID).Msg("No findings, alert skipped")
		return false, nil
	}

	msg := tgbotapi.NewMessage(t.chatID, FormatAlert(r))
	msg.ParseMode = tgbotapi.ModeMarkdown

	if _, err := t.sender.Send(msg); err != nil {
		return false, fmt.Errorf("send Telegram alert: %w", err)
	}

	t.logger.Info().
		Str("run_id", r.RunID).
		Int("pump_dumps", len(r.PumpDumps)).
		Int("outliers", len(r.Outliers)).
		Msg("Alert sent")
	return true, nil
}

func esc(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdown, s)
}

// FormatAlert renders the findings of a report as a Telegram Markdown message
func FormatAlert(r *model.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "*%s %s anomaly scan*\n", esc(r.Symbol), esc(r.Interval))
	fmt.Fprintf(&b, "Run %s\n", esc(r.RunID))

	if len(r.PumpDumps) > 0 {
		fmt.Fprintf(&b, "\n*Pump-and-dump flags: %d*\n", len(r.PumpDumps))
		for i, e := range r.PumpDumps {
			if i == maxListed {
				fmt.Fprintf(&b, "... and %d more\n", len(r.PumpDumps)-maxListed)
				break
			}
			fmt.Fprintf(&b, "• %s price %+.2f%% volume %+.2f%%\n",
				e.Timestamp.UTC().Format(time.RFC3339), e.PriceChange*100, e.VolumeChange*100)
		}
	}

	if len(r.Outliers) > 0 {
		fmt.Fprintf(&b, "\n*Outliers: %d*\n", len(r.Outliers))
		for i, o := range r.Outliers {
			if i == maxListed {
				fmt.Fprintf(&b, "... and %d more\n", len(r.Outliers)-maxListed)
				break
			}
			fmt.Fprintf(&b, "• %s %s z=%.2f\n",
				esc(o.Metric), o.Timestamp.UTC().Format(time.RFC3339), o.ZScore)
		}
	}

	text := b.String()
	if len(text) > maxMessageLen {
		// cut on a rune boundary, Telegram rejects invalid UTF-8
		n := maxMessageLen
		for n > 0 && !utf8.RuneStart(text[n]) {
			n--
		}
		text = text[:n]
	}
	return text
}
