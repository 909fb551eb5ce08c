// internal/infra/telegram/bot_commands_handler.go
package telegram

import (
	"fmt"
	"strings"

	"report_relay_bot/internal/app"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

func RegisterBotCommands(
	b *telebot.Bot,
	relayService *app.RelayService,
	adminService *app.AdminService,
	baseLogger *logrus.Entry, // For contextual logging
) {
	startHelpLogger := baseLogger.WithField("handler_group", "start_help")

	b.Handle("/start", func(c telebot.Context) error {
		logCtx := startHelpLogger.WithFields(logrus.Fields{
			"command":   "/start",
			"sender_id": c.Sender().ID,
			"chat_id":   c.Chat().ID,
		})
		// Operators read the chat id from here to fill ADMIN_CHAT_ID on first run.
		logCtx.Info("Processing /start command")

		return c.Send("Привет! Выбери категорию, затем пришли код объекта и сам отчёт (текст, фото, видео или файл).\n"+
			"Всё будет отправлено руководителю.", MainMenu())
	})

	b.Handle("/help", func(c telebot.Context) error {
		senderID := c.Sender().ID
		startHelpLogger.WithField("command", "/help").WithField("sender_id", senderID).Info("Processing /help command")

		var helpText strings.Builder
		helpText.WriteString("Как отправить отчёт:\n")
		helpText.WriteString("1. Выбери категорию на клавиатуре.\n")
		helpText.WriteString("2. Пришли код объекта текстом.\n")
		helpText.WriteString("3. Пришли отчёт: текст, фото, видео или файл.\n\n")
		helpText.WriteString("/myid - показать chat_id\n")
		helpText.WriteString("/cancel - отменить текущий отчёт\n")
		helpText.WriteString("/remind <минуты> <текст> - напоминание\n")
		helpText.WriteString("/reminders - активные напоминания\n")
		helpText.WriteString("/unremind <id> - отменить напоминание\n")

		if adminService.IsAdmin(senderID, c.Chat().ID) {
			helpText.WriteString("\nДля руководителя:\n")
			helpText.WriteString("/reports [object=..] [category=..] [limit=..] - журнал отчётов\n")
			helpText.WriteString("  значения с пробелами в кавычках: category=\"📸 Счётчики\"\n")
			helpText.WriteString("/export - выгрузка журнала в CSV\n")
		}
		return c.Send(helpText.String())
	})

	b.Handle("/myid", func(c telebot.Context) error {
		startHelpLogger.WithFields(logrus.Fields{
			"command":   "/myid",
			"sender_id": c.Sender().ID,
			"chat_id":   c.Chat().ID,
		}).Info("Processing /myid command")
		return c.Send(fmt.Sprintf("Ваш chat_id: %d", c.Chat().ID))
	})

	b.Handle("/cancel", func(c telebot.Context) error {
		if relayService.Cancel(c.Sender().ID) {
			return c.Send("Черновик отчёта удалён.", MainMenu())
		}
		return c.Send("Нет незавершённого отчёта.", MainMenu())
	})
}
