// internal/app/notifier.go
package app

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"gopkg.in/telebot.v3"

	"homework_status_bot/internal/domain/homework"
	domainTelegram "homework_status_bot/internal/domain/telegram"
)

// Notifier delivers plain text messages to the single configured chat.
// Delivery failures are logged and reported as false, never returned.
type Notifier struct {
	telegramClient domainTelegram.Client
	chatID         int64
	limiter        *rate.Limiter
	logger         logrus.FieldLogger
}

func NewNotifier(tc domainTelegram.Client, chatID int64, logger logrus.FieldLogger) *Notifier {
	return &Notifier{
		telegramClient: tc,
		chatID:         chatID,
		limiter:        rate.NewLimiter(rate.Limit(1), 1), // Telegram allows ~1 msg/s per chat
		logger:         logger,
	}
}

// Notify reports whether the message was delivered.
func (n *Notifier) Notify(ctx context.Context, text string) bool {
	log := n.logger.WithField("chat_id", n.chatID)

	if err := n.limiter.Wait(ctx); err != nil {
		log.WithError(fmt.Errorf("%w: %v", homework.ErrDelivery, err)).Errorf("Message not sent: %s", text)
		return false
	}

	err := n.telegramClient.SendMessage(n.chatID, text, &telebot.SendOptions{
		ParseMode:             telebot.ModeDefault,
		DisableWebPagePreview: true,
	})
	if err != nil {
		log.WithError(fmt.Errorf("%w: %v", homework.ErrDelivery, err)).Errorf("Failed to send message: %s", text)
		return false
	}

	log.Debugf("Bot sent message: %s", text)
	return true
}
