package materials

import (
	"context"
	"errors"
	"strings"

	"github.com/avinashchandan12/bake-ready-core/internal/infra/db"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type Repo struct{ db db.DBTX }

func NewRepo(conn db.DBTX) *Repo { return &Repo{db: conn} }

const selectCols = `id, name, unit, stock_quantity, reorder_level, created_at, updated_at`

func scan(row pgx.Row) (*RawMaterial, error) {
	var m RawMaterial
	if err := row.Scan(&m.ID, &m.Name, &m.Unit, &m.StockQuantity, &m.ReorderLevel, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

func collect(rows pgx.Rows) ([]RawMaterial, error) {
	defer rows.Close()
	out := []RawMaterial{}
	for rows.Next() {
		m, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

func (r *Repo) Create(ctx context.Context, in Input) (*RawMaterial, error) {
	return scan(r.db.QueryRow(ctx, `
		INSERT INTO raw_materials (name, unit, stock_quantity, reorder_level)
		VALUES ($1,$2,$3,$4)
		RETURNING `+selectCols, in.Name, in.Unit, in.StockQuantity, in.ReorderLevel))
}

func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*RawMaterial, error) {
	m, err := scan(r.db.QueryRow(ctx, `SELECT `+selectCols+` FROM raw_materials WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return m, err
}

// Update changes descriptive fields only. Stock moves through inventory.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, in Input) (*RawMaterial, error) {
	m, err := scan(r.db.QueryRow(ctx, `
		UPDATE raw_materials SET name=$2, unit=$3, reorder_level=$4, updated_at=now()
		WHERE id=$1
		RETURNING `+selectCols, id, in.Name, in.Unit, in.ReorderLevel))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return m, err
}

// Delete returns false when nothing was deleted. Materials referenced by a
// recipe or a GRN fail with a foreign key violation.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM raw_materials WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repo) List(ctx context.Context) ([]RawMaterial, error) {
	rows, err := r.db.Query(ctx, `SELECT `+selectCols+` FROM raw_materials ORDER BY name`)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func (r *Repo) ListLowStock(ctx context.Context) ([]RawMaterial, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+selectCols+` FROM raw_materials
		WHERE stock_quantity <= reorder_level
		ORDER BY name`)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func (r *Repo) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]RawMaterial, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.db.Query(ctx, `SELECT `+selectCols+` FROM raw_materials WHERE id = ANY($1) ORDER BY name`, ids)
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

// SearchByName matches a case-insensitive substring of the name.
func (r *Repo) SearchByName(ctx context.Context, q string) ([]RawMaterial, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, nil
	}
	rows, err := r.db.Query(ctx, `
		SELECT `+selectCols+` FROM raw_materials
		WHERE LOWER(name) LIKE $1
		ORDER BY name`, "%"+strings.ToLower(q)+"%")
	if err != nil {
		return nil, err
	}
	return collect(rows)
}

func (r *Repo) Counts(ctx context.Context) (total, low int64, err error) {
	err = r.db.QueryRow(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE stock_quantity <= reorder_level)
		FROM raw_materials`).Scan(&total, &low)
	return total, low, err
}
