package catalog

import (
	"context"
	"errors"

	"github.com/avinashchandan12/bake-ready-core/internal/infra/db"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type Repo struct{ db db.DBTX }

func NewRepo(conn db.DBTX) *Repo { return &Repo{db: conn} }

const productCols = `id, name, category, COALESCE(description,''), price, created_at, updated_at`

func scanProduct(row pgx.Row) (*Product, error) {
	var p Product
	if err := row.Scan(&p.ID, &p.Name, &p.Category, &p.Description, &p.Price, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repo) CreateProduct(ctx context.Context, in ProductInput) (*Product, error) {
	return scanProduct(r.db.QueryRow(ctx, `
		INSERT INTO products (name, category, description, price)
		VALUES ($1,$2,NULLIF($3,''),$4)
		RETURNING `+productCols, in.Name, in.Category, in.Description, in.Price))
}

func (r *Repo) GetProduct(ctx context.Context, id uuid.UUID) (*Product, error) {
	p, err := scanProduct(r.db.QueryRow(ctx, `SELECT `+productCols+` FROM products WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

func (r *Repo) UpdateProduct(ctx context.Context, id uuid.UUID, in ProductInput) (*Product, error) {
	p, err := scanProduct(r.db.QueryRow(ctx, `
		UPDATE products SET name=$2, category=$3, description=NULLIF($4,''), price=$5, updated_at=now()
		WHERE id=$1
		RETURNING `+productCols, id, in.Name, in.Category, in.Description, in.Price))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

func (r *Repo) DeleteProduct(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// ListProducts optionally filters by category; empty means all.
func (r *Repo) ListProducts(ctx context.Context, category string) ([]Product, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if category != "" {
		rows, err = r.db.Query(ctx, `SELECT `+productCols+` FROM products WHERE category=$1 ORDER BY name`, category)
	} else {
		rows, err = r.db.Query(ctx, `SELECT `+productCols+` FROM products ORDER BY category, name`)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *Repo) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT DISTINCT category FROM products ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repo) CountProducts(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&n)
	return n, err
}
