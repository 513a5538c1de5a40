// Package notify announces activity to a Telegram chat.
package notify

import (
    "context"
    "fmt"
    "log/slog"

    tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

    "github.com/iliyamo/fyyur/internal/config"
)

type sender interface {
    Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram posts plain text messages to one chat.
type Telegram struct {
    bot    sender
    chatID int64
    log    *slog.Logger
}

// NewTelegram connects the bot. It returns nil and no error when no token
// is configured.
func NewTelegram(cfg config.TelegramConfig, log *slog.Logger) (*Telegram, error) {
    if cfg.Token == "" {
        return nil, nil
    }
    bot, err := tgbotapi.NewBotAPI(cfg.Token)
    if err != nil {
        return nil, fmt.Errorf("notify.NewTelegram: %w", err)
    }
    log.Info("telegram notifier ready", slog.String("bot", bot.Self.UserName))
    return &Telegram{bot: bot, chatID: cfg.ChatID, log: log}, nil
}

// Notify sends text to the configured chat. A nil Telegram does nothing.
func (t *Telegram) Notify(ctx context.Context, text string) error {
    if t == nil {
        return nil
    }
    if err := ctx.Err(); err != nil {
        return err
    }
    msg := tgbotapi.NewMessage(t.chatID, text)
    msg.DisableWebPagePreview = true
    if _, err := t.bot.Send(msg); err != nil {
        return fmt.Errorf("notify.Telegram.Notify: %w", err)
    }
    t.log.Debug("telegram message sent", slog.Int64("chat_id", t.chatID))
    return nil
}
