// internal/infra/telegram/report_handlers.go
package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"report_relay_bot/internal/app"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

const (
	msgPickCategory    = "Сначала выбери категорию на клавиатуре."
	msgSendObjectCode  = "Пришли код объекта текстом (например, KV-12)."
	msgRelayed         = "✅ Отправлено руководителю."
	msgRecipientNotSet = "ADMIN_CHAT_ID пока не задан. Узнай chat_id командой /myid и попроси администратора указать его в настройках. Черновик сохранён."
	msgRelayFailed     = "Не удалось отправить отчёт. Попробуй ещё раз позже."
	msgUnknownCommand  = "Неизвестная команда. Используй /help."
)

// reportEvents are the update kinds that can carry report content.
var reportEvents = []string{
	telebot.OnText,
	telebot.OnPhoto,
	telebot.OnVideo,
	telebot.OnDocument,
	telebot.OnAudio,
	telebot.OnVoice,
	telebot.OnAnimation,
	telebot.OnVideoNote,
	telebot.OnSticker,
}

// RegisterReportHandlers wires the category → object code → content flow.
func RegisterReportHandlers(ctx context.Context, b *telebot.Bot, relayService *app.RelayService, baseLogger *logrus.Entry) {
	handler := reportHandler(ctx, relayService, baseLogger)
	for _, event := range reportEvents {
		b.Handle(event, handler)
	}
}

func reportHandler(ctx context.Context, relayService *app.RelayService, baseLogger *logrus.Entry) telebot.HandlerFunc {
	return func(c telebot.Context) error {
		m := c.Message()
		if m == nil || m.Sender == nil {
			return nil
		}
		// A completed draft relays whatever comes next, slash text included.
		if strings.HasPrefix(m.Text, "/") && !relayService.AwaitingContent(m.Sender.ID) {
			return c.Send(msgUnknownCommand)
		}

		in := incomingMessage(m)
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":      "report",
			"sender_id":    in.UserID,
			"chat_id":      in.ChatID,
			"content_type": in.ContentType,
		})

		res, err := relayService.HandleMessage(ctx, in)
		if err != nil {
			if errors.Is(err, app.ErrRecipientNotConfigured) {
				return c.Send(msgRecipientNotSet)
			}
			handlerLogger.WithError(err).Error("Failed to relay report")
			return c.Send(msgRelayFailed)
		}
		if res.Step == app.StepNeedCategory {
			return c.Send(replyFor(res), MainMenu())
		}
		return c.Send(replyFor(res))
	}
}

// replyFor is the text shown to the user after a step of the flow.
func replyFor(res app.Result) string {
	switch res.Step {
	case app.StepCategorySelected:
		return fmt.Sprintf("Ок, категория: %s\n%s", res.Draft.Category, msgSendObjectCode)
	case app.StepNeedObjectCode:
		return msgSendObjectCode
	case app.StepObjectCodeSet:
		return fmt.Sprintf("Объект: %s\nТеперь пришли текст и/или фото/видео/файл.", *res.Draft.ObjectCode)
	case app.StepRelayed:
		return msgRelayed
	default:
		return msgPickCategory
	}
}
