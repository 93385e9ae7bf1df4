package bot

import (
	"github.com/avinashchandan12/bake-ready-core/internal/domain/recipes"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Callback actions; the data is "<action>:<arg>".
const (
	cbEstimate    = "est"
	cbProduce     = "prod"
	cbSkipMinutes = "skipmin"
	cbConfirm     = "confirm"
	cbCancel      = "cancel"
)

func cancelRow() []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("✖️ Cancel", cbCancel+":"))
}

// recipeKeyboard lists recipes two per row.
func recipeKeyboard(action string, list []recipes.Recipe) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, rc := range list {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(rc.ProductName, action+":"+rc.ID.String()))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, cancelRow())
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func minutesKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Use recipe time", cbSkipMinutes+":"),
		),
		cancelRow(),
	)
}

func confirmKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Log it", cbConfirm+":"),
		),
		cancelRow(),
	)
}

func mainKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.ReplyKeyboardMarkup{
		ResizeKeyboard: true,
		Keyboard: [][]tgbotapi.KeyboardButton{
			{tgbotapi.NewKeyboardButton("/produce"), tgbotapi.NewKeyboardButton("/estimate")},
			{tgbotapi.NewKeyboardButton("/lowstock"), tgbotapi.NewKeyboardButton("/export")},
		},
	}
}
