package service

import (
	"context"
	"log/slog"

	"github.com/avinashchandan12/bake-ready-core/internal/domain/inventory"
	"github.com/avinashchandan12/bake-ready-core/internal/domain/losses"
	"github.com/google/uuid"
)

type Losses struct {
	log    *slog.Logger
	store  Store
	events StockEvents
}

func NewLosses(log *slog.Logger, store Store, events StockEvents) *Losses {
	if events == nil {
		events = noEvents{}
	}
	return &Losses{log: log, store: store, events: events}
}

// Record logs a loss. Raw material losses write the quantity off stock and
// fail with inventory.ErrStockChanged when stock does not cover it.
func (s *Losses) Record(ctx context.Context, in losses.Input) (*losses.Loss, error) {
	if err := in.Normalize(); err != nil {
		return nil, invalid(err)
	}

	var l *losses.Loss
	err := s.store.InTx(ctx, func(tx Tx) error {
		var err error
		l, err = tx.Losses.Create(ctx, in)
		if err != nil {
			return err
		}
		if l.Kind != losses.KindRawMaterial {
			return nil
		}
		return tx.Stock.Deduct(ctx, *l.MaterialID, l.QuantityLost, inventory.ReasonLoss, &l.ID, l.Reason)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("loss recorded", "loss_id", l.ID, "kind", l.Kind, "quantity", l.QuantityLost.String())
	if l.Kind == losses.KindRawMaterial {
		s.events.StockChanged(ctx, []uuid.UUID{*l.MaterialID})
	}
	return l, nil
}
