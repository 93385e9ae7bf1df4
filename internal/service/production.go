package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/avinashchandan12/bake-ready-core/internal/domain/inventory"
	"github.com/avinashchandan12/bake-ready-core/internal/domain/productionlogs"
	"github.com/avinashchandan12/bake-ready-core/internal/infra/metrics"
	"github.com/avinashchandan12/bake-ready-core/internal/production"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Production struct {
	log        *slog.Logger
	store      Store
	recipes    RecipeSnapshotter
	events     StockEvents
	hourlyRate decimal.Decimal
}

func NewProduction(log *slog.Logger, store Store, recipes RecipeSnapshotter, events StockEvents, hourlyRate decimal.Decimal) *Production {
	if events == nil {
		events = noEvents{}
	}
	return &Production{log: log, store: store, recipes: recipes, events: events, hourlyRate: hourlyRate}
}

type Estimate struct {
	RecipeID         uuid.UUID `json:"recipe_id"`
	ProductID        uuid.UUID `json:"product_id"`
	ProductName      string    `json:"product_name"`
	YieldQuantity    int       `json:"yield_quantity"`
	TimeRequiredMins int       `json:"time_required_mins"`
	EstimatedHours   int64     `json:"estimated_hours"`
	production.Capacity
}

// Estimate reports how many units the recipe can make from current stock.
func (s *Production) Estimate(ctx context.Context, recipeID uuid.UUID) (*Estimate, error) {
	rc, ings, err := s.recipes.Snapshot(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if rc == nil {
		return nil, ErrNotFound
	}
	capacity, err := production.Estimate(ings)
	if err != nil {
		return nil, err
	}
	return &Estimate{
		RecipeID:         rc.ID,
		ProductID:        rc.ProductID,
		ProductName:      rc.ProductName,
		YieldQuantity:    rc.YieldQuantity,
		TimeRequiredMins: rc.TimeRequiredMins,
		EstimatedHours:   production.EstimatedHours(rc.TimeRequiredMins, capacity.MaxProducible),
		Capacity:         capacity,
	}, nil
}

type LogInput struct {
	RecipeID       uuid.UUID  `json:"recipe_id"`
	Quantity       int64      `json:"quantity"`
	TimeSpentMins  *int       `json:"time_spent_mins"`
	OperatorID     *uuid.UUID `json:"operator_id"`
	Notes          string     `json:"operator_notes"`
	ProductionDate time.Time  `json:"production_date"`
}

type LogResult struct {
	Log    *productionlogs.Log `json:"log"`
	Deltas []production.Delta  `json:"deltas"`
}

// Log records a production run and deducts every ingredient in one
// transaction. Nothing is written when any ingredient is short.
func (s *Production) Log(ctx context.Context, in LogInput) (*LogResult, error) {
	if in.RecipeID == uuid.Nil {
		return nil, &ValidationError{Msg: "recipe_id is required"}
	}
	if in.TimeSpentMins != nil && *in.TimeSpentMins < 0 {
		return nil, &ValidationError{Msg: "time_spent_mins cannot be negative"}
	}

	var res LogResult
	err := s.store.InTx(ctx, func(tx Tx) error {
		rc, ings, err := tx.Recipes.Snapshot(ctx, in.RecipeID)
		if err != nil {
			return err
		}
		if rc == nil {
			return ErrNotFound
		}

		deltas, err := production.ApplyProduction(ings, in.Quantity)
		if err != nil {
			return err
		}

		minutes := rc.TimeRequiredMins * int(in.Quantity)
		if in.TimeSpentMins != nil {
			minutes = *in.TimeSpentMins
		}
		cost := production.LaborCost(minutes, s.hourlyRate)
		recipeID := rc.ID

		l := &productionlogs.Log{
			ProductID:      rc.ProductID,
			ProductName:    rc.ProductName,
			RecipeID:       &recipeID,
			OperatorID:     in.OperatorID,
			Quantity:       in.Quantity,
			TimeSpentMins:  &minutes,
			ProductionCost: &cost,
			OperatorNotes:  strings.TrimSpace(in.Notes),
			ProductionDate: in.ProductionDate,
		}
		for _, d := range deltas {
			l.Materials = append(l.Materials, productionlogs.Material{
				MaterialID:   d.MaterialID,
				MaterialName: d.Name,
				QuantityUsed: d.Used,
			})
		}
		if err := tx.Logs.Create(ctx, l); err != nil {
			return err
		}

		for _, d := range deltas {
			if err := tx.Stock.Deduct(ctx, d.MaterialID, d.Used, inventory.ReasonProduction, &l.ID, rc.ProductName); err != nil {
				return err
			}
		}
		res = LogResult{Log: l, Deltas: deltas}
		return nil
	})
	if err != nil {
		s.countFailure(err)
		return nil, err
	}

	metrics.ProductionRuns.WithLabelValues("logged").Inc()
	metrics.UnitsProduced.Add(float64(in.Quantity))
	s.log.Info("production logged",
		"log_id", res.Log.ID,
		"product", res.Log.ProductName,
		"quantity", in.Quantity,
	)

	ids := make([]uuid.UUID, 0, len(res.Deltas))
	for _, d := range res.Deltas {
		ids = append(ids, d.MaterialID)
	}
	s.events.StockChanged(ctx, ids)
	return &res, nil
}

func (s *Production) countFailure(err error) {
	var short *production.InsufficientStockError
	switch {
	case errors.As(err, &short):
		metrics.ProductionRuns.WithLabelValues("insufficient_stock").Inc()
	case errors.Is(err, inventory.ErrStockChanged):
		metrics.ProductionRuns.WithLabelValues("conflict").Inc()
		s.log.Warn("stock changed during production", "err", err)
	}
}
