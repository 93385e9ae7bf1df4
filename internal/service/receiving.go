package service

import (
	"context"
	"log/slog"

	"github.com/avinashchandan12/bake-ready-core/internal/domain/grn"
	"github.com/avinashchandan12/bake-ready-core/internal/domain/inventory"
	"github.com/avinashchandan12/bake-ready-core/internal/infra/metrics"
	"github.com/google/uuid"
)

type Receiving struct {
	log    *slog.Logger
	store  Store
	events StockEvents
}

func NewReceiving(log *slog.Logger, store Store, events StockEvents) *Receiving {
	if events == nil {
		events = noEvents{}
	}
	return &Receiving{log: log, store: store, events: events}
}

// Create saves a GRN with its discrepancies. A GRN created as received adds
// its received quantities to stock in the same transaction.
func (s *Receiving) Create(ctx context.Context, in grn.Input) (*grn.GRN, []grn.Discrepancy, error) {
	if err := in.Normalize(); err != nil {
		return nil, nil, invalid(err)
	}

	var (
		g     *grn.GRN
		found []grn.Discrepancy
	)
	err := s.store.InTx(ctx, func(tx Tx) error {
		var err error
		g, found, err = tx.GRNs.Create(ctx, in)
		if err != nil {
			return err
		}
		if g.Status == grn.StatusReceived {
			return receive(ctx, tx.Stock, g)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	s.log.Info("grn created", "grn", g.Number, "status", g.Status, "discrepancies", len(found))
	s.after(ctx, g, found)
	return g, found, nil
}

// MarkReceived moves a pending GRN to received exactly once.
func (s *Receiving) MarkReceived(ctx context.Context, id uuid.UUID) (*grn.GRN, error) {
	var g *grn.GRN
	err := s.store.InTx(ctx, func(tx Tx) error {
		var err error
		g, err = tx.GRNs.MarkReceived(ctx, id)
		if err != nil {
			return err
		}
		if g == nil {
			return ErrNotFound
		}
		return receive(ctx, tx.Stock, g)
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("grn received", "grn", g.Number)
	s.after(ctx, g, nil)
	return g, nil
}

func receive(ctx context.Context, stock StockMover, g *grn.GRN) error {
	for _, it := range g.Items {
		if !it.Received.IsPositive() {
			continue
		}
		if err := stock.Add(ctx, it.MaterialID, it.Received, inventory.ReasonGRN, &g.ID, g.Number); err != nil {
			return err
		}
	}
	return nil
}

func (s *Receiving) after(ctx context.Context, g *grn.GRN, found []grn.Discrepancy) {
	for _, d := range found {
		metrics.Discrepancies.WithLabelValues(string(d.Type)).Inc()
	}
	if len(found) > 0 {
		s.events.DiscrepanciesFound(ctx, g, found)
	}
	if g.Status == grn.StatusReceived {
		ids := make([]uuid.UUID, 0, len(g.Items))
		for _, it := range g.Items {
			ids = append(ids, it.MaterialID)
		}
		s.events.StockChanged(ctx, ids)
	}
}
