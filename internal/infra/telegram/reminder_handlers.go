package telegram

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"report_relay_bot/internal/app"
	"report_relay_bot/internal/infra/scheduler"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

func RegisterReminderHandlers(b *telebot.Bot, reminders *scheduler.ReminderScheduler, baseLogger *logrus.Entry) {
	b.Handle("/remind", remindHandler(reminders, baseLogger))
	b.Handle("/unremind", unremindHandler(reminders))
	b.Handle("/reminders", remindersHandler(reminders))
}

func remindHandler(reminders *scheduler.ReminderScheduler, baseLogger *logrus.Entry) telebot.HandlerFunc {
	return func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "/remind",
			"sender_id": c.Sender().ID,
		})

		minutes, text, err := app.ParseRemind(c.Text())
		if err != nil {
			handlerLogger.WithError(err).Debug("Invalid /remind arguments")
			return c.Send(err.Error())
		}

		r := reminders.Schedule(c.Chat().ID, time.Duration(minutes)*time.Minute, text)
		return c.Send(fmt.Sprintf("Ок, напомню через %d мин. (в %s). ID напоминания: %d\nОтменить: /unremind %d",
			minutes, r.FireAt.Format("15:04"), r.ID, r.ID))
	}
}

func unremindHandler(reminders *scheduler.ReminderScheduler) telebot.HandlerFunc {
	return func(c telebot.Context) error {
		args := c.Args()
		if len(args) != 1 {
			return c.Send("Использование: /unremind <id>")
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return c.Send("Ошибка: ID напоминания должен быть числом.")
		}

		if err := reminders.Cancel(c.Chat().ID, id); err != nil {
			if errors.Is(err, scheduler.ErrReminderNotFound) {
				return c.Send(fmt.Sprintf("Напоминание %d не найдено.", id))
			}
			return err
		}
		return c.Send(fmt.Sprintf("Напоминание %d отменено.", id))
	}
}

func remindersHandler(reminders *scheduler.ReminderScheduler) telebot.HandlerFunc {
	return func(c telebot.Context) error {
		pending := reminders.Pending(c.Chat().ID)
		if len(pending) == 0 {
			return c.Send("Активных напоминаний нет.")
		}
		sort.Slice(pending, func(i, j int) bool { return pending[i].FireAt.Before(pending[j].FireAt) })

		var sb strings.Builder
		sb.WriteString("Активные напоминания:\n")
		for _, r := range pending {
			sb.WriteString(fmt.Sprintf("%d: %s - %s\n", r.ID, r.FireAt.Format("2006-01-02 15:04"), r.Text))
		}
		return c.Send(sb.String())
	}
}
