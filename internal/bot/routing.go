package bot

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/avinashchandan12/bake-ready-core/internal/dialog"
	"github.com/avinashchandan12/bake-ready-core/internal/domain/users"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const helpText = `Commands:
/estimate - how many units a recipe can make now
/produce - log a production run
/lowstock - materials at or below reorder level
/export - stock workbook for counting
/cancel - abandon the current step

Admins can send the filled workbook back to apply a stocktake.`

func (b *Bot) onMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}
	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}
	if msg.Document != nil {
		b.handleDocument(ctx, msg)
		return
	}

	chatID := msg.Chat.ID
	st, err := b.d.States.Get(ctx, chatID)
	if err != nil {
		b.log.Error("load dialog state", "chat_id", chatID, "err", err)
		return
	}
	switch st.State {
	case dialog.StateProduceQty:
		b.onProduceQty(ctx, chatID, st.Payload, msg.Text)
	case dialog.StateProduceMinutes:
		b.onProduceMinutes(ctx, chatID, st.Payload, msg.Text)
	default:
		b.reply(chatID, "Not sure what you mean. Try /help")
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	tgID := msg.From.ID

	if msg.Command() == "start" {
		b.start(ctx, msg)
		return
	}
	if msg.Command() == "help" {
		b.reply(chatID, helpText)
		return
	}

	op := b.operator(ctx, chatID, tgID)
	if op == nil {
		return
	}

	switch msg.Command() {
	case "cancel":
		_ = b.d.States.Reset(ctx, chatID)
		b.reply(chatID, "Cancelled.")
	case "lowstock":
		b.lowStock(ctx, chatID)
	case "estimate":
		b.pickRecipe(ctx, chatID, dialog.StateEstimatePickRecipe, cbEstimate, "Which recipe should I estimate?")
	case "produce":
		b.pickRecipe(ctx, chatID, dialog.StateProducePickRecipe, cbProduce, "Which recipe did you bake?")
	case "export":
		b.exportStock(ctx, chatID)
	default:
		b.reply(chatID, "Unknown command. Try /help")
	}
}

func (b *Bot) start(ctx context.Context, msg *tgbotapi.Message) {
	role := users.RoleOperator
	if msg.From.ID == b.adminChat {
		role = users.RoleAdmin
	}
	op, err := b.d.Operators.UpsertFromTelegram(ctx, users.Telegram{
		ID:        msg.From.ID,
		Username:  msg.From.UserName,
		FirstName: msg.From.FirstName,
		LastName:  msg.From.LastName,
	}, role)
	if err != nil {
		b.log.Error("register operator", "tg_id", msg.From.ID, "err", err)
		b.reply(msg.Chat.ID, "Could not save your profile, please try again.")
		return
	}
	_ = b.d.States.Reset(ctx, msg.Chat.ID)

	greeting := "Hi " + op.DisplayName() + "! You are registered as an operator.\n\n"
	if op.IsAdmin() {
		greeting = "Hi " + op.DisplayName() + "! You are an admin and will receive stock alerts here.\n\n"
	}
	m := tgbotapi.NewMessage(msg.Chat.ID, greeting+helpText)
	m.ReplyMarkup = mainKeyboard()
	b.send(m)
}

func (b *Bot) onCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		b.answerCallback(cb, "")
		return
	}
	chatID := cb.Message.Chat.ID
	action, arg, _ := strings.Cut(cb.Data, ":")

	if action == cbCancel {
		_ = b.d.States.Reset(ctx, chatID)
		b.answerCallback(cb, "Cancelled")
		b.clearKeyboard(chatID, cb.Message.MessageID)
		return
	}

	op := b.operator(ctx, chatID, cb.From.ID)
	if op == nil {
		b.answerCallback(cb, "")
		return
	}

	st, err := b.d.States.Get(ctx, chatID)
	if err != nil {
		b.log.Error("load dialog state", "chat_id", chatID, "err", err)
		b.answerCallback(cb, "Try again")
		return
	}

	switch {
	case action == cbEstimate && st.State == dialog.StateEstimatePickRecipe:
		b.answerCallback(cb, "")
		b.clearKeyboard(chatID, cb.Message.MessageID)
		b.showEstimate(ctx, chatID, arg)
	case action == cbProduce && st.State == dialog.StateProducePickRecipe:
		b.answerCallback(cb, "")
		b.clearKeyboard(chatID, cb.Message.MessageID)
		b.onProduceRecipe(ctx, chatID, arg)
	case action == cbSkipMinutes && st.State == dialog.StateProduceMinutes:
		b.answerCallback(cb, "")
		b.clearKeyboard(chatID, cb.Message.MessageID)
		b.askConfirm(ctx, chatID, st.Payload)
	case action == cbConfirm && st.State == dialog.StateProduceConfirm:
		b.answerCallback(cb, "Logging…")
		b.clearKeyboard(chatID, cb.Message.MessageID)
		b.confirmProduce(ctx, chatID, op, st.Payload)
	default:
		b.answerCallback(cb, "This step has expired")
		b.clearKeyboard(chatID, cb.Message.MessageID)
	}
}

func (b *Bot) lowStock(ctx context.Context, chatID int64) {
	low, err := b.d.Materials.ListLowStock(ctx)
	if err != nil {
		b.log.Error("list low stock", "err", err)
		b.reply(chatID, "Could not load stock levels.")
		return
	}
	if len(low) == 0 {
		b.reply(chatID, "All materials are above their reorder level.")
		return
	}
	b.reply(chatID, formatLowStock(low))
}

func (b *Bot) exportStock(ctx context.Context, chatID int64) {
	if b.d.Stocktake == nil {
		b.reply(chatID, "Stock export is not available.")
		return
	}
	var buf bytes.Buffer
	if err := b.d.Stocktake.WriteStockXLSX(ctx, &buf); err != nil {
		b.log.Error("export stock", "err", err)
		b.reply(chatID, "Could not build the stock workbook.")
		return
	}
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  "stock-" + time.Now().Format(time.DateOnly) + ".xlsx",
		Bytes: buf.Bytes(),
	})
	doc.Caption = "Fill the Counted column and send the file back to apply the stocktake."
	b.send(doc)
}

// handleDocument applies an uploaded stocktake workbook. Admins only.
func (b *Bot) handleDocument(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	op := b.operator(ctx, chatID, msg.From.ID)
	if op == nil {
		return
	}
	if !op.IsAdmin() {
		b.reply(chatID, "Only admins can apply a stocktake.")
		return
	}
	if b.d.Stocktake == nil || !strings.HasSuffix(strings.ToLower(msg.Document.FileName), ".xlsx") {
		b.reply(chatID, "Send the .xlsx workbook from /export.")
		return
	}

	data, err := b.downloadTelegramFile(ctx, msg.Document.FileID)
	if err != nil {
		b.log.Error("download stocktake", "err", err)
		b.reply(chatID, "Could not download the file.")
		return
	}
	res, err := b.d.Stocktake.ImportStocktake(ctx, bytes.NewReader(data))
	if err != nil {
		b.reply(chatID, formatError(err))
		return
	}
	b.log.Info("stocktake applied", "operator", op.DisplayName(), "adjusted", res.Adjusted)
	b.reply(chatID, formatImport(res))
}
