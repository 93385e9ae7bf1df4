package service

import (
	"context"
	"log/slog"

	"github.com/avinashchandan12/bake-ready-core/internal/domain/grn"
	"github.com/avinashchandan12/bake-ready-core/internal/domain/materials"
	"github.com/google/uuid"
)

// Notifier delivers stock alerts to people, e.g. the admin Telegram chat.
type Notifier interface {
	NotifyLowStock(ctx context.Context, low []materials.RawMaterial) error
	NotifyDiscrepancies(ctx context.Context, g *grn.GRN, found []grn.Discrepancy) error
}

type MaterialFinder interface {
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]materials.RawMaterial, error)
}

type CacheInvalidator interface {
	Invalidate(ctx context.Context)
}

type stockEvent struct {
	materialIDs []uuid.UUID
	grn         *grn.GRN
	found       []grn.Discrepancy
}

// StockWatcher reacts to committed stock changes. Cache invalidation happens
// inline; alerts are queued and sent by Run.
type StockWatcher struct {
	log       *slog.Logger
	materials MaterialFinder
	dashboard CacheInvalidator
	notifier  Notifier
	queue     chan stockEvent
}

func NewStockWatcher(log *slog.Logger, mats MaterialFinder, dash CacheInvalidator, notifier Notifier, buffer int) *StockWatcher {
	if buffer <= 0 {
		buffer = 64
	}
	return &StockWatcher{
		log:       log,
		materials: mats,
		dashboard: dash,
		notifier:  notifier,
		queue:     make(chan stockEvent, buffer),
	}
}

// SetNotifier attaches the alert sink. Call it before Run and before any
// stock event can fire; events seen without a notifier are dropped.
func (w *StockWatcher) SetNotifier(n Notifier) {
	w.notifier = n
}

func (w *StockWatcher) StockChanged(ctx context.Context, ids []uuid.UUID) {
	if w.dashboard != nil {
		w.dashboard.Invalidate(ctx)
	}
	if len(ids) > 0 {
		w.enqueue(stockEvent{materialIDs: ids})
	}
}

func (w *StockWatcher) DiscrepanciesFound(_ context.Context, g *grn.GRN, found []grn.Discrepancy) {
	w.enqueue(stockEvent{grn: g, found: found})
}

func (w *StockWatcher) enqueue(ev stockEvent) {
	if w.notifier == nil {
		return
	}
	select {
	case w.queue <- ev:
	default:
		w.log.Warn("stock alert queue full, dropping event")
	}
}

// Run delivers queued alerts until ctx is cancelled.
func (w *StockWatcher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-w.queue:
			w.handle(ctx, ev)
		}
	}
}

func (w *StockWatcher) handle(ctx context.Context, ev stockEvent) {
	if ev.grn != nil && len(ev.found) > 0 {
		if err := w.notifier.NotifyDiscrepancies(ctx, ev.grn, ev.found); err != nil {
			w.log.Error("discrepancy alert failed", "grn", ev.grn.Number, "err", err)
		}
	}
	if len(ev.materialIDs) == 0 {
		return
	}

	mats, err := w.materials.ListByIDs(ctx, ev.materialIDs)
	if err != nil {
		w.log.Error("load materials for alert", "err", err)
		return
	}
	var low []materials.RawMaterial
	for _, m := range mats {
		if m.IsLowStock() {
			low = append(low, m)
		}
	}
	if len(low) == 0 {
		return
	}
	if err := w.notifier.NotifyLowStock(ctx, low); err != nil {
		w.log.Error("low stock alert failed", "count", len(low), "err", err)
	}
}
