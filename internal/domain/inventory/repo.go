package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/avinashchandan12/bake-ready-core/internal/infra/db"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ErrStockChanged means the conditional decrement matched no row: the
// material is gone or its stock dropped below the amount after it was read.
var ErrStockChanged = errors.New("inventory: stock changed or insufficient")

// ErrUnknownMaterial is returned by Add and Set for a missing material.
var ErrUnknownMaterial = errors.New("inventory: unknown raw material")

type Repo struct{ db db.DBTX }

func NewRepo(conn db.DBTX) *Repo { return &Repo{db: conn} }

// Deduct decrements stock only if it still covers qty. Run it inside the
// same transaction as the write that justifies the deduction.
func (r *Repo) Deduct(ctx context.Context, materialID uuid.UUID, qty decimal.Decimal, reason Reason, refID *uuid.UUID, note string) error {
	if !qty.IsPositive() {
		return fmt.Errorf("qty must be > 0")
	}
	tag, err := r.db.Exec(ctx, `
		UPDATE raw_materials
		SET stock_quantity = stock_quantity - $2, updated_at = now()
		WHERE id = $1 AND stock_quantity >= $2
	`, materialID, qty)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrStockChanged
	}
	return r.log(ctx, materialID, qty.Neg(), MoveOut, reason, refID, note)
}

func (r *Repo) Add(ctx context.Context, materialID uuid.UUID, qty decimal.Decimal, reason Reason, refID *uuid.UUID, note string) error {
	if !qty.IsPositive() {
		return fmt.Errorf("qty must be > 0")
	}
	tag, err := r.db.Exec(ctx, `
		UPDATE raw_materials
		SET stock_quantity = stock_quantity + $2, updated_at = now()
		WHERE id = $1
	`, materialID, qty)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", ErrUnknownMaterial, materialID)
	}
	return r.log(ctx, materialID, qty, MoveIn, reason, refID, note)
}

// Set moves stock to an absolute counted value and records the difference
// as an adjustment. A zero difference writes nothing.
func (r *Repo) Set(ctx context.Context, materialID uuid.UUID, counted decimal.Decimal, reason Reason, note string) (decimal.Decimal, error) {
	if counted.IsNegative() {
		return decimal.Zero, fmt.Errorf("counted quantity cannot be negative")
	}
	var prev decimal.Decimal
	err := r.db.QueryRow(ctx, `
		SELECT stock_quantity FROM raw_materials WHERE id = $1 FOR UPDATE
	`, materialID).Scan(&prev)
	if errors.Is(err, pgx.ErrNoRows) {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrUnknownMaterial, materialID)
	}
	if err != nil {
		return decimal.Zero, err
	}
	diff := counted.Sub(prev)
	if diff.IsZero() {
		return diff, nil
	}
	if _, err := r.db.Exec(ctx, `
		UPDATE raw_materials SET stock_quantity = $2, updated_at = now() WHERE id = $1
	`, materialID, counted); err != nil {
		return decimal.Zero, err
	}
	return diff, r.log(ctx, materialID, diff, MoveAdjust, reason, nil, note)
}

func (r *Repo) log(ctx context.Context, materialID uuid.UUID, qty decimal.Decimal, t MoveType, reason Reason, refID *uuid.UUID, note string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO stock_movements (raw_material_id, qty, type, reason, ref_id, note)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, materialID, qty, string(t), string(reason), refID, note)
	return err
}

func (r *Repo) ListMovements(ctx context.Context, materialID uuid.UUID, limit int) ([]Movement, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.Query(ctx, `
		SELECT id, raw_material_id, qty, type, reason, ref_id, note, created_at
		FROM stock_movements
		WHERE raw_material_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, materialID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Movement{}
	for rows.Next() {
		var m Movement
		if err := rows.Scan(&m.ID, &m.MaterialID, &m.Qty, &m.Type, &m.Reason, &m.RefID, &m.Note, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
