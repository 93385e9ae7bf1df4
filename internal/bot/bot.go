// Package bot is the admin Telegram bot: capacity estimates, guided
// production logging, stocktake files and stock alerts.
package bot

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/avinashchandan12/bake-ready-core/internal/dialog"
	"github.com/avinashchandan12/bake-ready-core/internal/domain/materials"
	"github.com/avinashchandan12/bake-ready-core/internal/domain/recipes"
	"github.com/avinashchandan12/bake-ready-core/internal/domain/users"
	"github.com/avinashchandan12/bake-ready-core/internal/service"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
)

type Operators interface {
	GetByTelegramID(ctx context.Context, tgID int64) (*users.Operator, error)
	UpsertFromTelegram(ctx context.Context, tg users.Telegram, role users.Role) (*users.Operator, error)
	ListAdmins(ctx context.Context) ([]users.Operator, error)
}

type States interface {
	Get(ctx context.Context, chatID int64) (*dialog.Item, error)
	Set(ctx context.Context, chatID int64, state dialog.State, payload dialog.Payload) error
	Reset(ctx context.Context, chatID int64) error
}

type RecipeLister interface {
	List(ctx context.Context) ([]recipes.Recipe, error)
}

type Production interface {
	Estimate(ctx context.Context, recipeID uuid.UUID) (*service.Estimate, error)
	Log(ctx context.Context, in service.LogInput) (*service.LogResult, error)
}

type LowStock interface {
	ListLowStock(ctx context.Context) ([]materials.RawMaterial, error)
}

type Stocktake interface {
	WriteStockXLSX(ctx context.Context, w io.Writer) error
	ImportStocktake(ctx context.Context, r io.Reader) (*service.ImportResult, error)
}

type Deps struct {
	Operators  Operators
	States     States
	Recipes    RecipeLister
	Production Production
	Materials  LowStock
	Stocktake  Stocktake
}

type Bot struct {
	api       *tgbotapi.BotAPI
	log       *slog.Logger
	d         Deps
	adminChat int64
	currency  string
}

func New(api *tgbotapi.BotAPI, log *slog.Logger, d Deps, adminChatID int64, currency string) *Bot {
	return &Bot{api: api, log: log, d: d, adminChat: adminChatID, currency: currency}
}

func (b *Bot) Run(ctx context.Context, timeoutSec int) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = timeoutSec
	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case upd := <-updates:
			if upd.Message != nil {
				b.onMessage(ctx, upd.Message)
			} else if upd.CallbackQuery != nil {
				b.onCallback(ctx, upd.CallbackQuery)
			}
		}
	}
}

func (b *Bot) send(msg tgbotapi.Chattable) {
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("send failed", "err", err)
	}
}

func (b *Bot) reply(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) answerCallback(cb *tgbotapi.CallbackQuery, text string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, text)); err != nil {
		b.log.Warn("callback answer failed", "err", err)
	}
}

// clearKeyboard drops the inline buttons of a finished step, keeping its text.
func (b *Bot) clearKeyboard(chatID int64, messageID int) {
	rm := tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}}
	b.send(tgbotapi.NewEditMessageReplyMarkup(chatID, messageID, rm))
}

// operator returns the registered sender or tells them to /start first.
func (b *Bot) operator(ctx context.Context, chatID, tgID int64) *users.Operator {
	op, err := b.d.Operators.GetByTelegramID(ctx, tgID)
	if err != nil {
		b.log.Error("operator lookup failed", "tg_id", tgID, "err", err)
		b.reply(chatID, "Something went wrong, please try again.")
		return nil
	}
	if op == nil {
		b.reply(chatID, "Please send /start first.")
	}
	return op
}

// downloadTelegramFile fetches a file by FileID through the Bot API.
func (b *Bot) downloadTelegramFile(ctx context.Context, fileID string) ([]byte, error) {
	url, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("get file url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("telegram returned status %s", resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return data, nil
}
