package losses

import (
	"context"
	"time"

	"github.com/avinashchandan12/bake-ready-core/internal/infra/db"
	"github.com/shopspring/decimal"
)

type Repo struct{ db db.DBTX }

func NewRepo(conn db.DBTX) *Repo { return &Repo{db: conn} }

func (r *Repo) Create(ctx context.Context, in Input) (*Loss, error) {
	var date any
	if !in.LossDate.IsZero() {
		date = in.LossDate
	}
	l := &Loss{
		Kind:          in.Kind,
		MaterialID:    in.MaterialID,
		ProductID:     in.ProductID,
		QuantityLost:  in.QuantityLost,
		Reason:        in.Reason,
		EstimatedCost: in.EstimatedCost,
	}
	err := r.db.QueryRow(ctx, `
		INSERT INTO loss_logs (kind, raw_material_id, product_id, quantity_lost, loss_reason, estimated_cost, loss_date)
		VALUES ($1,$2,$3,$4,NULLIF($5,''),$6,COALESCE($7::date, CURRENT_DATE))
		RETURNING id, loss_date::timestamptz, created_at
	`, string(in.Kind), in.MaterialID, in.ProductID, in.QuantityLost, in.Reason, in.EstimatedCost, date).
		Scan(&l.ID, &l.LossDate, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	return l, nil
}

// List returns losses newest first within an optional date range.
func (r *Repo) List(ctx context.Context, from, to time.Time) ([]Loss, error) {
	var fromArg, toArg any
	if !from.IsZero() {
		fromArg = from
	}
	if !to.IsZero() {
		toArg = to
	}
	rows, err := r.db.Query(ctx, `
		SELECT l.id, l.kind, l.raw_material_id, l.product_id, COALESCE(m.name, p.name, ''),
		       l.quantity_lost, COALESCE(l.loss_reason,''), l.estimated_cost,
		       l.loss_date::timestamptz, l.created_at
		FROM loss_logs l
		LEFT JOIN raw_materials m ON m.id = l.raw_material_id
		LEFT JOIN products p ON p.id = l.product_id
		WHERE ($1::date IS NULL OR l.loss_date >= $1::date)
		  AND ($2::date IS NULL OR l.loss_date <= $2::date)
		ORDER BY l.loss_date DESC, l.created_at DESC
	`, fromArg, toArg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Loss{}
	for rows.Next() {
		var l Loss
		var kind string
		if err := rows.Scan(&l.ID, &kind, &l.MaterialID, &l.ProductID, &l.ItemName, &l.QuantityLost, &l.Reason,
			&l.EstimatedCost, &l.LossDate, &l.CreatedAt); err != nil {
			return nil, err
		}
		l.Kind = Kind(kind)
		out = append(out, l)
	}
	return out, rows.Err()
}

// TotalCost sums estimated cost of losses since from.
func (r *Repo) TotalCost(ctx context.Context, from time.Time) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(estimated_cost),0) FROM loss_logs WHERE loss_date >= $1::date
	`, from).Scan(&sum)
	return sum, err
}
