package telegram

import (
	"fmt"
	"strings"

	"report_relay_bot/internal/app"
	"report_relay_bot/internal/domain/report"

	"gopkg.in/telebot.v3"
)

// maxMessageLen stays under Telegram's 4096 character limit.
const maxMessageLen = 4000

// contentTypeOf classifies a message by its payload.
func contentTypeOf(m *telebot.Message) report.ContentType {
	switch {
	case m == nil:
		return report.ContentOther
	case m.Photo != nil:
		return report.ContentPhoto
	case m.Video != nil:
		return report.ContentVideo
	case m.Animation != nil: // animations also carry a Document
		return report.ContentAnimation
	case m.Document != nil:
		return report.ContentDocument
	case m.Audio != nil:
		return report.ContentAudio
	case m.Voice != nil:
		return report.ContentVoice
	case m.VideoNote != nil:
		return report.ContentVideoNote
	case m.Sticker != nil:
		return report.ContentSticker
	case m.Text != "":
		return report.ContentText
	default:
		return report.ContentOther
	}
}

// incomingMessage extracts what the relay needs from a telebot message.
func incomingMessage(m *telebot.Message) app.IncomingMessage {
	in := app.IncomingMessage{
		MessageID:   m.ID,
		ContentType: contentTypeOf(m),
		Text:        m.Text,
	}
	if in.Text == "" {
		in.Text = m.Caption
	}
	if m.Sender != nil {
		in.UserID = m.Sender.ID
		in.FirstName = m.Sender.FirstName
		in.LastName = m.Sender.LastName
		in.Username = m.Sender.Username
	}
	if m.Chat != nil {
		in.ChatID = m.Chat.ID
	}
	return in
}

// formatReports renders a /reports listing.
func formatReports(reports []*report.Report) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Отчёты (%d):\n\n", len(reports)))
	for _, r := range reports {
		username := "нет"
		if r.Username.Valid && r.Username.String != "" {
			username = r.Username.String
		}
		b.WriteString(fmt.Sprintf("#%d %s\n%s | %s | %s\nОт: %s (@%s)\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04"),
			r.Category, r.ObjectCode, r.ContentType,
			r.UserName, username))
		if r.TextPreview != "" {
			b.WriteString(r.TextPreview)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// splitMessage breaks text into chunks of at most limit characters,
// preferring line boundaries.
func splitMessage(text string, limit int) []string {
	var chunks []string
	var cur []rune
	for _, line := range strings.SplitAfter(text, "\n") {
		l := []rune(line)
		if len(cur)+len(l) > limit && len(cur) > 0 {
			chunks = append(chunks, strings.TrimRight(string(cur), "\n"))
			cur = nil
		}
		for len(l) > limit {
			chunks = append(chunks, string(l[:limit]))
			l = l[limit:]
		}
		cur = append(cur, l...)
	}
	if len(cur) > 0 {
		chunks = append(chunks, strings.TrimRight(string(cur), "\n"))
	}
	return chunks
}
