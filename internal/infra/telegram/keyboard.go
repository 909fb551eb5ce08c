package telegram

import (
	"report_relay_bot/internal/domain/report"

	"gopkg.in/telebot.v3"
)

// MainMenu is the reply keyboard with one button per report category, two per row.
func MainMenu() *telebot.ReplyMarkup {
	menu := &telebot.ReplyMarkup{ResizeKeyboard: true}

	var rows []telebot.Row
	var row []telebot.Btn
	for _, category := range report.Categories {
		row = append(row, menu.Text(category))
		if len(row) == 2 {
			rows = append(rows, menu.Row(row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, menu.Row(row...))
	}
	menu.Reply(rows...)
	return menu
}
