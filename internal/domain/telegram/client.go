package telegram

import "gopkg.in/telebot.v3"

// Client defines an interface for sending messages via a Telegram bot.
// This helps in decoupling the application logic from the specific bot library.
type Client interface {
	SendMessage(recipientChatID int64, text string, options *telebot.SendOptions) error
	// ForwardMessage copies an existing message, attachments included, to the recipient.
	ForwardMessage(recipientChatID int64, fromChatID int64, messageID int) error
	SendDocument(recipientChatID int64, filePath string, fileName string) error
}
