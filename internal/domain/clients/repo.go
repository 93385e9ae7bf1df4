package clients

import (
	"context"
	"errors"

	"github.com/avinashchandan12/bake-ready-core/internal/infra/db"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type Repo struct{ db db.DBTX }

func NewRepo(conn db.DBTX) *Repo { return &Repo{db: conn} }

const cols = `id, name, COALESCE(email,''), COALESCE(phone,''), COALESCE(address,''), created_at, updated_at`

func scan(row pgx.Row) (*Client, error) {
	var c Client
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repo) Create(ctx context.Context, in Input) (*Client, error) {
	return scan(r.db.QueryRow(ctx, `
		INSERT INTO clients (name, email, phone, address)
		VALUES ($1, NULLIF($2,''), NULLIF($3,''), NULLIF($4,''))
		RETURNING `+cols, in.Name, in.Email, in.Phone, in.Address))
}

func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*Client, error) {
	c, err := scan(r.db.QueryRow(ctx, `SELECT `+cols+` FROM clients WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

func (r *Repo) Update(ctx context.Context, id uuid.UUID, in Input) (*Client, error) {
	c, err := scan(r.db.QueryRow(ctx, `
		UPDATE clients SET name=$2, email=NULLIF($3,''), phone=NULLIF($4,''), address=NULLIF($5,''), updated_at=now()
		WHERE id=$1
		RETURNING `+cols, id, in.Name, in.Email, in.Phone, in.Address))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return c, err
}

func (r *Repo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repo) List(ctx context.Context) ([]Client, error) {
	rows, err := r.db.Query(ctx, `SELECT `+cols+` FROM clients ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Client{}
	for rows.Next() {
		c, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// Stats counts revenue from non-cancelled orders.
func (r *Repo) Stats(ctx context.Context, id uuid.UUID) (Stats, error) {
	var s Stats
	err := r.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM orders WHERE client_id = $1),
			(SELECT COALESCE(SUM(total_amount),0) FROM orders WHERE client_id = $1 AND status <> 'cancelled'),
			(SELECT COUNT(*) FROM invoices WHERE client_id = $1 AND status = 'pending'),
			(SELECT COALESCE(SUM(total_amount),0) FROM invoices WHERE client_id = $1 AND status = 'pending')
	`, id).Scan(&s.OrderCount, &s.Revenue, &s.PendingInvoices, &s.PendingAmount)
	return s, err
}
