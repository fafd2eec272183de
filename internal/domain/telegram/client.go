package telegram

import "gopkg.in/telebot.v3"

// Client sends plain text messages to a Telegram chat.
// The bot library stays behind this interface so the notifier can be tested with a fake.
type Client interface {
	SendMessage(chatID int64, text string, options *telebot.SendOptions) error
}
