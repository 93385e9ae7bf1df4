package bot

import (
	"context"

	"github.com/avinashchandan12/bake-ready-core/internal/dialog"
	"github.com/avinashchandan12/bake-ready-core/internal/domain/users"
	"github.com/avinashchandan12/bake-ready-core/internal/service"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
)

const (
	keyRecipeID   = "recipe_id"
	keyRecipeName = "recipe_name"
	keyQuantity   = "quantity"
	keyMinutes    = "minutes"
)

func (b *Bot) pickRecipe(ctx context.Context, chatID int64, next dialog.State, action, prompt string) {
	list, err := b.d.Recipes.List(ctx)
	if err != nil {
		b.log.Error("list recipes", "err", err)
		b.reply(chatID, "Could not load recipes.")
		return
	}
	if len(list) == 0 {
		b.reply(chatID, "No recipes yet. Add one in the back office first.")
		return
	}
	if err := b.d.States.Set(ctx, chatID, next, dialog.Payload{}); err != nil {
		b.log.Error("save dialog state", "chat_id", chatID, "err", err)
		return
	}
	m := tgbotapi.NewMessage(chatID, prompt)
	m.ReplyMarkup = recipeKeyboard(action, list)
	b.send(m)
}

func (b *Bot) showEstimate(ctx context.Context, chatID int64, arg string) {
	_ = b.d.States.Reset(ctx, chatID)
	id, err := uuid.Parse(arg)
	if err != nil {
		b.reply(chatID, "Unknown recipe.")
		return
	}
	est, err := b.d.Production.Estimate(ctx, id)
	if err != nil {
		b.reply(chatID, formatError(err))
		return
	}
	b.reply(chatID, formatEstimate(est))
}

func (b *Bot) onProduceRecipe(ctx context.Context, chatID int64, arg string) {
	id, err := uuid.Parse(arg)
	if err != nil {
		b.reply(chatID, "Unknown recipe.")
		return
	}
	est, err := b.d.Production.Estimate(ctx, id)
	if err != nil {
		_ = b.d.States.Reset(ctx, chatID)
		b.reply(chatID, formatError(err))
		return
	}
	p := dialog.Payload{keyRecipeID: id.String(), keyRecipeName: est.ProductName}
	if err := b.d.States.Set(ctx, chatID, dialog.StateProduceQty, p); err != nil {
		b.log.Error("save dialog state", "chat_id", chatID, "err", err)
		return
	}
	b.reply(chatID, formatQtyPrompt(est))
}

func (b *Bot) onProduceQty(ctx context.Context, chatID int64, p dialog.Payload, text string) {
	qty, err := parseQuantity(text)
	if err != nil {
		b.reply(chatID, "Invalid quantity: "+err.Error()+". Send a whole number, or /cancel.")
		return
	}
	p[keyQuantity] = float64(qty)
	if err := b.d.States.Set(ctx, chatID, dialog.StateProduceMinutes, p); err != nil {
		b.log.Error("save dialog state", "chat_id", chatID, "err", err)
		return
	}
	m := tgbotapi.NewMessage(chatID, "How many minutes did it take? Send a number or use the recipe time.")
	m.ReplyMarkup = minutesKeyboard()
	b.send(m)
}

func (b *Bot) onProduceMinutes(ctx context.Context, chatID int64, p dialog.Payload, text string) {
	mins, err := parseMinutes(text)
	if err != nil {
		b.reply(chatID, "Invalid minutes: "+err.Error()+". Send a whole number or tap \"Use recipe time\".")
		return
	}
	p[keyMinutes] = float64(mins)
	b.askConfirm(ctx, chatID, p)
}

func (b *Bot) askConfirm(ctx context.Context, chatID int64, p dialog.Payload) {
	if err := b.d.States.Set(ctx, chatID, dialog.StateProduceConfirm, p); err != nil {
		b.log.Error("save dialog state", "chat_id", chatID, "err", err)
		return
	}
	m := tgbotapi.NewMessage(chatID, formatProduceSummary(p))
	m.ReplyMarkup = confirmKeyboard()
	b.send(m)
}

func (b *Bot) confirmProduce(ctx context.Context, chatID int64, op *users.Operator, p dialog.Payload) {
	_ = b.d.States.Reset(ctx, chatID)

	idStr, _ := dialog.GetString(p, keyRecipeID)
	id, err := uuid.Parse(idStr)
	qty, hasQty := dialog.GetInt(p, keyQuantity)
	if err != nil || !hasQty {
		b.reply(chatID, "This step has expired, start again with /produce.")
		return
	}
	in := service.LogInput{
		RecipeID:   id,
		Quantity:   qty,
		OperatorID: &op.ID,
		Notes:      "logged via Telegram by " + op.DisplayName(),
	}
	if mins, ok := dialog.GetInt(p, keyMinutes); ok {
		m := int(mins)
		in.TimeSpentMins = &m
	}

	res, err := b.d.Production.Log(ctx, in)
	if err != nil {
		b.reply(chatID, formatError(err))
		return
	}
	b.reply(chatID, formatLogResult(res, b.currency))
}
