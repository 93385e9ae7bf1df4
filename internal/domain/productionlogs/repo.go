package productionlogs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/avinashchandan12/bake-ready-core/internal/infra/db"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type Repo struct{ db db.DBTX }

func NewRepo(conn db.DBTX) *Repo { return &Repo{db: conn} }

// Create inserts the log header and its consumed materials. The caller owns
// the transaction that also deducts the stock.
func (r *Repo) Create(ctx context.Context, l *Log) error {
	if l.ProductionDate.IsZero() {
		err := r.db.QueryRow(ctx, `
			INSERT INTO production_logs (product_id, recipe_id, operator_id, quantity, time_spent_mins, production_cost, operator_notes)
			VALUES ($1,$2,$3,$4,$5,$6,NULLIF($7,''))
			RETURNING id, production_date, created_at
		`, l.ProductID, l.RecipeID, l.OperatorID, l.Quantity, l.TimeSpentMins, l.ProductionCost, l.OperatorNotes).
			Scan(&l.ID, &l.ProductionDate, &l.CreatedAt)
		if err != nil {
			return err
		}
	} else {
		err := r.db.QueryRow(ctx, `
			INSERT INTO production_logs (product_id, recipe_id, operator_id, quantity, time_spent_mins, production_cost, operator_notes, production_date)
			VALUES ($1,$2,$3,$4,$5,$6,NULLIF($7,''),$8)
			RETURNING id, created_at
		`, l.ProductID, l.RecipeID, l.OperatorID, l.Quantity, l.TimeSpentMins, l.ProductionCost, l.OperatorNotes, l.ProductionDate).
			Scan(&l.ID, &l.CreatedAt)
		if err != nil {
			return err
		}
	}

	for _, m := range l.Materials {
		if _, err := r.db.Exec(ctx, `
			INSERT INTO production_log_materials (production_log_id, raw_material_id, quantity_used, cost_per_unit)
			VALUES ($1,$2,$3,$4)
		`, l.ID, m.MaterialID, m.QuantityUsed, m.CostPerUnit); err != nil {
			return fmt.Errorf("log material %s: %w", m.MaterialID, err)
		}
	}
	return nil
}

const logCols = `l.id, l.product_id, p.name, l.recipe_id, l.operator_id, l.quantity, l.time_spent_mins,
	l.production_cost, COALESCE(l.operator_notes,''), l.production_date, l.created_at`

func scanLog(row pgx.Row) (*Log, error) {
	var l Log
	if err := row.Scan(&l.ID, &l.ProductID, &l.ProductName, &l.RecipeID, &l.OperatorID, &l.Quantity,
		&l.TimeSpentMins, &l.ProductionCost, &l.OperatorNotes, &l.ProductionDate, &l.CreatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *Repo) Get(ctx context.Context, id uuid.UUID) (*Log, error) {
	l, err := scanLog(r.db.QueryRow(ctx, `
		SELECT `+logCols+`
		FROM production_logs l JOIN products p ON p.id = l.product_id
		WHERE l.id = $1
	`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT lm.raw_material_id, m.name, lm.quantity_used, lm.cost_per_unit
		FROM production_log_materials lm
		JOIN raw_materials m ON m.id = lm.raw_material_id
		WHERE lm.production_log_id = $1
		ORDER BY m.name
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var m Material
		if err := rows.Scan(&m.MaterialID, &m.MaterialName, &m.QuantityUsed, &m.CostPerUnit); err != nil {
			return nil, err
		}
		l.Materials = append(l.Materials, m)
	}
	return l, rows.Err()
}

// List returns logs newest first.
func (r *Repo) List(ctx context.Context, f Filter) ([]Log, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.ProductID != uuid.Nil {
		add("l.product_id = $%d", f.ProductID)
	}
	if !f.From.IsZero() {
		add("l.production_date >= $%d", f.From)
	}
	if !f.To.IsZero() {
		add("l.production_date < $%d", f.To)
	}
	limit := f.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	args = append(args, limit)

	q := `SELECT ` + logCols + ` FROM production_logs l JOIN products p ON p.id = l.product_id`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	q += fmt.Sprintf(` ORDER BY l.production_date DESC LIMIT $%d`, len(args))

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Log{}
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *l)
	}
	return out, rows.Err()
}

// TodayTotal sums units produced since the start of the current day.
func (r *Repo) TodayTotal(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `
		SELECT COALESCE(SUM(quantity),0) FROM production_logs
		WHERE production_date >= date_trunc('day', now())
	`).Scan(&n)
	return n, err
}
