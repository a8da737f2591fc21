package alerts

import (
	"context"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type telegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramNotifier wires alerts to an admin Telegram chat.
func NewTelegramNotifier(token string, chatID int64) (Notificator, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("init alert bot: %w", err)
	}
	return &telegramNotifier{bot: bot, chatID: chatID}, nil
}

func (n *telegramNotifier) Notify(ctx context.Context, err error, details string) {
	text := fmt.Sprintf("Backend error\n\nError: %v\n\nDetails: %s", err, details)

	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, sendErr := n.bot.Send(msg); sendErr != nil {
		log.Printf("[alerts] send fail: %v", sendErr)
	}
}

type noopNotifier struct{}

// NewNoop is used when no alert bot is configured.
func NewNoop() Notificator {
	return noopNotifier{}
}

func (noopNotifier) Notify(ctx context.Context, err error, details string) {
	log.Printf("[alerts] %s: %v", details, err)
}
