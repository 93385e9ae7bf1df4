package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avinashchandan12/bake-ready-core/internal/infra/db"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	// ErrInvoiceExists is returned when an order already has its invoice.
	ErrInvoiceExists = errors.New("orders: invoice already issued")
	// ErrAlreadyPaid is returned by MarkPaid for an invoice that is not pending.
	ErrAlreadyPaid = errors.New("orders: invoice already paid")
	// ErrCancelled blocks invoicing a cancelled order.
	ErrCancelled = errors.New("orders: order is cancelled")
)

type Repo struct{ db db.DBTX }

func NewRepo(conn db.DBTX) *Repo { return &Repo{db: conn} }

const orderCols = `o.id, o.client_id, c.name, o.order_date::timestamptz, o.status, COALESCE(o.notes,''),
	o.total_amount, o.created_at, o.updated_at`

func scanOrder(row pgx.Row) (*Order, error) {
	var o Order
	var status string
	if err := row.Scan(&o.ID, &o.ClientID, &o.ClientName, &o.OrderDate, &status, &o.Notes,
		&o.TotalAmount, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	o.Status = Status(status)
	return &o, nil
}

func orderDate(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}

func (r *Repo) Create(ctx context.Context, in Input) (*Order, error) {
	items, total := Totals(in.Items)
	var id uuid.UUID
	err := db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, `
			INSERT INTO orders (client_id, order_date, status, notes, total_amount)
			VALUES ($1, COALESCE($2::date, CURRENT_DATE), $3, NULLIF($4,''), $5)
			RETURNING id
		`, in.ClientID, orderDate(in.OrderDate), string(in.Status), in.Notes, total).Scan(&id); err != nil {
			return err
		}
		return insertItems(ctx, tx, id, items)
	})
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

// Update rewrites the order and replaces its items, recomputing the total.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, in Input) (*Order, error) {
	items, total := Totals(in.Items)
	found := true
	err := db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE orders SET client_id=$2, order_date=COALESCE($3::date, order_date), status=$4,
				notes=NULLIF($5,''), total_amount=$6, updated_at=now()
			WHERE id=$1
		`, id, in.ClientID, orderDate(in.OrderDate), string(in.Status), in.Notes, total)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			found = false
			return nil
		}
		if _, err := tx.Exec(ctx, `DELETE FROM order_items WHERE order_id=$1`, id); err != nil {
			return err
		}
		return insertItems(ctx, tx, id, items)
	})
	if err != nil || !found {
		return nil, err
	}
	return r.Get(ctx, id)
}

func insertItems(ctx context.Context, tx pgx.Tx, orderID uuid.UUID, items []Item) error {
	for _, it := range items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, unit_price, total_price)
			VALUES ($1,$2,$3,$4,$5)
		`, orderID, it.ProductID, it.Quantity, it.UnitPrice, it.TotalPrice); err != nil {
			return fmt.Errorf("order item %s: %w", it.ProductID, err)
		}
	}
	return nil
}

func (r *Repo) SetStatus(ctx context.Context, id uuid.UUID, s Status) (bool, error) {
	if !s.Valid() {
		return false, fmt.Errorf("unknown status %q", s)
	}
	tag, err := r.db.Exec(ctx, `UPDATE orders SET status=$2, updated_at=now() WHERE id=$1`, id, string(s))
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM orders WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repo) Get(ctx context.Context, id uuid.UUID) (*Order, error) {
	o, err := scanOrder(r.db.QueryRow(ctx, `
		SELECT `+orderCols+`
		FROM orders o JOIN clients c ON c.id = o.client_id
		WHERE o.id=$1
	`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT oi.id, oi.product_id, p.name, oi.quantity, oi.unit_price, oi.total_price
		FROM order_items oi JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id=$1
		ORDER BY p.name
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.ProductID, &it.ProductName, &it.Quantity, &it.UnitPrice, &it.TotalPrice); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, it)
	}
	return o, rows.Err()
}

// List returns orders newest first, optionally for one client and status.
func (r *Repo) List(ctx context.Context, clientID uuid.UUID, status Status) ([]Order, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+orderCols+`
		FROM orders o JOIN clients c ON c.id = o.client_id
		WHERE ($1::uuid IS NULL OR o.client_id = $1)
		  AND ($2::text = '' OR o.status = $2::text)
		ORDER BY o.order_date DESC, o.created_at DESC
	`, nullUUID(clientID), string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func nullUUID(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}

const invoiceCols = `id, order_id, client_id, total_amount, status, created_at, paid_at`

func scanInvoice(row pgx.Row) (*Invoice, error) {
	var inv Invoice
	var status string
	if err := row.Scan(&inv.ID, &inv.OrderID, &inv.ClientID, &inv.TotalAmount, &status, &inv.CreatedAt, &inv.PaidAt); err != nil {
		return nil, err
	}
	inv.Status = InvoiceStatus(status)
	return &inv, nil
}

// CreateInvoice issues the single invoice of an order for its current total.
// It returns nil, nil when the order does not exist.
func (r *Repo) CreateInvoice(ctx context.Context, orderID uuid.UUID) (*Invoice, error) {
	var status string
	err := r.db.QueryRow(ctx, `SELECT status FROM orders WHERE id=$1`, orderID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if Status(status) == StatusCancelled {
		return nil, ErrCancelled
	}

	inv, err := scanInvoice(r.db.QueryRow(ctx, `
		INSERT INTO invoices (order_id, client_id, total_amount)
		SELECT id, client_id, total_amount FROM orders WHERE id=$1
		RETURNING `+invoiceCols, orderID))
	if db.IsUniqueViolation(err) {
		return nil, ErrInvoiceExists
	}
	return inv, err
}

func (r *Repo) GetInvoice(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	inv, err := scanInvoice(r.db.QueryRow(ctx, `SELECT `+invoiceCols+` FROM invoices WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return inv, err
}

func (r *Repo) InvoiceForOrder(ctx context.Context, orderID uuid.UUID) (*Invoice, error) {
	inv, err := scanInvoice(r.db.QueryRow(ctx, `SELECT `+invoiceCols+` FROM invoices WHERE order_id=$1`, orderID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return inv, err
}

// MarkPaid moves a pending invoice to paid exactly once.
func (r *Repo) MarkPaid(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	inv, err := scanInvoice(r.db.QueryRow(ctx, `
		UPDATE invoices SET status='paid', paid_at=now()
		WHERE id=$1 AND status='pending'
		RETURNING `+invoiceCols, id))
	if !errors.Is(err, pgx.ErrNoRows) {
		return inv, err
	}
	existing, err := r.GetInvoice(ctx, id)
	if err != nil || existing == nil {
		return nil, err
	}
	return existing, ErrAlreadyPaid
}
