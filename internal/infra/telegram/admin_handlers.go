package telegram

import (
	"context"
	"errors"
	"path/filepath"

	"report_relay_bot/internal/app"
	domainTelegram "report_relay_bot/internal/domain/telegram"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

const msgNotAuthorized = "Ошибка: У вас нет прав для выполнения этой команды."

// RegisterAdminHandlers registers the recipient-only commands.
func RegisterAdminHandlers(ctx context.Context, b *telebot.Bot, adminService *app.AdminService, client domainTelegram.Client, baseLogger *logrus.Entry) {
	b.Handle("/reports", reportsHandler(ctx, adminService, baseLogger))
	b.Handle("/export", exportHandler(ctx, adminService, client, baseLogger))
}

func reportsHandler(ctx context.Context, adminService *app.AdminService, baseLogger *logrus.Entry) telebot.HandlerFunc {
	return func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "/reports",
			"sender_id": c.Sender().ID,
			"chat_id":   c.Chat().ID,
		})
		handlerLogger.Info("Command received")

		filter := app.ParseReportsFilter(c.Text())
		reports, err := adminService.ListReports(ctx, c.Sender().ID, c.Chat().ID, filter)
		if err != nil {
			if errors.Is(err, app.ErrAdminNotAuthorized) {
				handlerLogger.Warn("Unauthorized access attempt")
				return c.Send(msgNotAuthorized)
			}
			handlerLogger.WithError(err).Error("Failed to list reports")
			return c.Send("Произошла ошибка при получении отчётов. Попробуйте позже.")
		}

		if len(reports) == 0 {
			return c.Send("Отчётов не найдено.")
		}
		handlerLogger.WithField("reports_count", len(reports)).Info("Successfully retrieved reports")

		for _, chunk := range splitMessage(formatReports(reports), maxMessageLen) {
			if err := c.Send(chunk); err != nil {
				return err
			}
		}
		return nil
	}
}

// exportHandler writes the CSV and uploads it to the requesting chat.
func exportHandler(ctx context.Context, adminService *app.AdminService, client domainTelegram.Client, baseLogger *logrus.Entry) telebot.HandlerFunc {
	return func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "/export",
			"sender_id": c.Sender().ID,
			"chat_id":   c.Chat().ID,
		})
		handlerLogger.Info("Command received")

		path, err := adminService.ExportReports(ctx, c.Sender().ID, c.Chat().ID)
		if err != nil {
			if errors.Is(err, app.ErrAdminNotAuthorized) {
				handlerLogger.Warn("Unauthorized access attempt")
				return c.Send(msgNotAuthorized)
			}
			handlerLogger.WithError(err).Error("Failed to export reports")
			return c.Send("Произошла ошибка при выгрузке отчётов. Попробуйте позже.")
		}

		if err := client.SendDocument(c.Chat().ID, path, filepath.Base(path)); err != nil {
			handlerLogger.WithError(err).Error("Failed to send export file")
			return c.Send("Не удалось отправить файл выгрузки.")
		}
		handlerLogger.WithField("path", path).Info("Reports exported")
		return nil
	}
}
