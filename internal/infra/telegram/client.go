// internal/infra/telegram/client.go
package telegram

import (
	"strconv"

	"gopkg.in/telebot.v3"
)

// TelebotAdapter implements the Client interface using the gopkg.in/telebot.v3 library.
type TelebotAdapter struct {
	bot *telebot.Bot
}

func NewTelebotAdapter(b *telebot.Bot) *TelebotAdapter {
	return &TelebotAdapter{bot: b}
}

// SendMessage sends a text message to the specified recipient.
func (tba *TelebotAdapter) SendMessage(recipientChatID int64, text string, options *telebot.SendOptions) error {
	if options == nil {
		options = &telebot.SendOptions{}
	}

	// ChatID also works for group recipients.
	_, err := tba.bot.Send(telebot.ChatID(recipientChatID), text, options)
	return err
}

// ForwardMessage forwards an existing message, with its attachments, to the recipient.
func (tba *TelebotAdapter) ForwardMessage(recipientChatID int64, fromChatID int64, messageID int) error {
	stored := telebot.StoredMessage{
		MessageID: strconv.Itoa(messageID),
		ChatID:    fromChatID,
	}
	_, err := tba.bot.Forward(telebot.ChatID(recipientChatID), stored)
	return err
}

// SendDocument uploads a local file as a document.
func (tba *TelebotAdapter) SendDocument(recipientChatID int64, filePath string, fileName string) error {
	doc := &telebot.Document{
		File:     telebot.FromDisk(filePath),
		FileName: fileName,
	}
	_, err := tba.bot.Send(telebot.ChatID(recipientChatID), doc)
	return err
}
