package service

import (
	"context"

	"github.com/avinashchandan12/bake-ready-core/internal/domain/grn"
	"github.com/avinashchandan12/bake-ready-core/internal/domain/inventory"
	"github.com/avinashchandan12/bake-ready-core/internal/domain/losses"
	"github.com/avinashchandan12/bake-ready-core/internal/domain/productionlogs"
	"github.com/avinashchandan12/bake-ready-core/internal/domain/recipes"
	"github.com/avinashchandan12/bake-ready-core/internal/infra/db"
	"github.com/avinashchandan12/bake-ready-core/internal/production"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type RecipeSnapshotter interface {
	Snapshot(ctx context.Context, id uuid.UUID) (*recipes.Recipe, []production.Ingredient, error)
}

type ProductionLogWriter interface {
	Create(ctx context.Context, l *productionlogs.Log) error
}

type StockMover interface {
	Deduct(ctx context.Context, materialID uuid.UUID, qty decimal.Decimal, reason inventory.Reason, refID *uuid.UUID, note string) error
	Add(ctx context.Context, materialID uuid.UUID, qty decimal.Decimal, reason inventory.Reason, refID *uuid.UUID, note string) error
	Set(ctx context.Context, materialID uuid.UUID, counted decimal.Decimal, reason inventory.Reason, note string) (decimal.Decimal, error)
}

type GRNWriter interface {
	Create(ctx context.Context, in grn.Input) (*grn.GRN, []grn.Discrepancy, error)
	MarkReceived(ctx context.Context, id uuid.UUID) (*grn.GRN, error)
}

type LossWriter interface {
	Create(ctx context.Context, in losses.Input) (*losses.Loss, error)
}

// Tx groups the repos that must share one transaction.
type Tx struct {
	Recipes RecipeSnapshotter
	Logs    ProductionLogWriter
	Stock   StockMover
	GRNs    GRNWriter
	Losses  LossWriter
}

// Store runs fn in a unit of work; fn's error rolls everything back.
type Store interface {
	InTx(ctx context.Context, fn func(Tx) error) error
}

type PgStore struct{ conn db.DBTX }

func NewPgStore(conn db.DBTX) *PgStore { return &PgStore{conn: conn} }

func (s *PgStore) InTx(ctx context.Context, fn func(Tx) error) error {
	return db.WithTx(ctx, s.conn, func(tx pgx.Tx) error {
		return fn(Tx{
			Recipes: recipes.NewRepo(tx),
			Logs:    productionlogs.NewRepo(tx),
			Stock:   inventory.NewRepo(tx),
			GRNs:    grn.NewRepo(tx),
			Losses:  losses.NewRepo(tx),
		})
	})
}

// StockEvents is told which materials changed after a commit.
type StockEvents interface {
	StockChanged(ctx context.Context, materialIDs []uuid.UUID)
	DiscrepanciesFound(ctx context.Context, g *grn.GRN, found []grn.Discrepancy)
}

type noEvents struct{}

func (noEvents) StockChanged(context.Context, []uuid.UUID) {}
func (noEvents) DiscrepanciesFound(context.Context, *grn.GRN, []grn.Discrepancy) {}
