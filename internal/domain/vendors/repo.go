package vendors

import (
	"context"
	"errors"

	"github.com/avinashchandan12/bake-ready-core/internal/infra/db"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type Repo struct{ db db.DBTX }

func NewRepo(conn db.DBTX) *Repo { return &Repo{db: conn} }

const cols = `id, name, COALESCE(contact,''), COALESCE(address,''), created_at`

func scan(row pgx.Row) (*Vendor, error) {
	var v Vendor
	if err := row.Scan(&v.ID, &v.Name, &v.Contact, &v.Address, &v.CreatedAt); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *Repo) Create(ctx context.Context, in Input) (*Vendor, error) {
	return scan(r.db.QueryRow(ctx, `
		INSERT INTO vendors (name, contact, address)
		VALUES ($1, NULLIF($2,''), NULLIF($3,''))
		RETURNING `+cols, in.Name, in.Contact, in.Address))
}

func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*Vendor, error) {
	v, err := scan(r.db.QueryRow(ctx, `SELECT `+cols+` FROM vendors WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return v, err
}

func (r *Repo) Update(ctx context.Context, id uuid.UUID, in Input) (*Vendor, error) {
	v, err := scan(r.db.QueryRow(ctx, `
		UPDATE vendors SET name=$2, contact=NULLIF($3,''), address=NULLIF($4,'')
		WHERE id=$1
		RETURNING `+cols, id, in.Name, in.Contact, in.Address))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return v, err
}

func (r *Repo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM vendors WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repo) List(ctx context.Context) ([]Vendor, error) {
	rows, err := r.db.Query(ctx, `SELECT `+cols+` FROM vendors ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Vendor{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, rows.Err()
}

func (r *Repo) Stats(ctx context.Context, id uuid.UUID) (Stats, error) {
	var s Stats
	err := r.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM grns WHERE vendor_id = $1),
			(SELECT COALESCE(SUM(total_amount),0) FROM grns WHERE vendor_id = $1),
			(SELECT COUNT(DISTINCT gi.raw_material_id)
			   FROM grn_items gi JOIN grns g ON g.id = gi.grn_id
			  WHERE g.vendor_id = $1),
			(SELECT MAX(grn_date)::timestamptz FROM grns WHERE vendor_id = $1)
	`, id).Scan(&s.GRNCount, &s.TotalSpent, &s.MaterialsSupplied, &s.LastDelivery)
	return s, err
}
