package bot

import (
	"context"
	"errors"

	"github.com/avinashchandan12/bake-ready-core/internal/domain/grn"
	"github.com/avinashchandan12/bake-ready-core/internal/domain/materials"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// NotifyLowStock and NotifyDiscrepancies make the bot the alert sink for the
// stock watcher.
func (b *Bot) NotifyLowStock(ctx context.Context, low []materials.RawMaterial) error {
	if len(low) == 0 {
		return nil
	}
	return b.broadcast(ctx, formatLowStock(low))
}

func (b *Bot) NotifyDiscrepancies(ctx context.Context, g *grn.GRN, found []grn.Discrepancy) error {
	if g == nil || len(found) == 0 {
		return nil
	}
	return b.broadcast(ctx, formatDiscrepancies(g, found))
}

// broadcast sends to the configured admin chat, or to every registered admin
// when none is configured.
func (b *Bot) broadcast(ctx context.Context, text string) error {
	chats, err := b.alertChats(ctx)
	if err != nil {
		return err
	}
	var errs []error
	for _, id := range chats {
		if _, err := b.api.Send(tgbotapi.NewMessage(id, text)); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (b *Bot) alertChats(ctx context.Context) ([]int64, error) {
	if b.adminChat != 0 {
		return []int64{b.adminChat}, nil
	}
	admins, err := b.d.Operators.ListAdmins(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(admins))
	for _, a := range admins {
		ids = append(ids, a.TelegramID)
	}
	return ids, nil
}
