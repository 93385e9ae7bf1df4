package grn

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/avinashchandan12/bake-ready-core/internal/infra/db"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrAlreadyReceived is returned when a GRN has already been received.
var ErrAlreadyReceived = errors.New("grn: already received")

type Repo struct{ db db.DBTX }

func NewRepo(conn db.DBTX) *Repo { return &Repo{db: conn} }

// PeekNumber previews the number the next GRN on date would get without
// consuming the sequence.
func (r *Repo) PeekNumber(ctx context.Context, date time.Time) (string, error) {
	var next int64
	err := r.db.QueryRow(ctx, `
		SELECT CASE WHEN is_called THEN last_value + 1 ELSE last_value END FROM grn_number_seq
	`).Scan(&next)
	if err != nil {
		return "", err
	}
	return FormatNumber(date, next), nil
}

// Create stores the GRN with priced items and its detected discrepancies.
// Run it inside the transaction that also adds received stock.
func (r *Repo) Create(ctx context.Context, in Input) (*GRN, []Discrepancy, error) {
	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}
	var seq int64
	if err := r.db.QueryRow(ctx, `SELECT nextval('grn_number_seq')`).Scan(&seq); err != nil {
		return nil, nil, err
	}

	items, total := PriceItems(in.Items)
	g := &GRN{
		Number:      FormatNumber(date, seq),
		VendorID:    in.VendorID,
		Date:        date,
		TotalAmount: total,
		Status:      in.Status,
		Notes:       in.Notes,
	}
	if err := r.db.QueryRow(ctx, `
		INSERT INTO grns (grn_number, vendor_id, grn_date, total_amount, status, notes)
		VALUES ($1,$2,$3,$4,$5,NULLIF($6,''))
		RETURNING id, created_at
	`, g.Number, g.VendorID, date, total, string(g.Status), g.Notes).Scan(&g.ID, &g.CreatedAt); err != nil {
		return nil, nil, err
	}

	for i := range items {
		it := &items[i]
		if err := r.db.QueryRow(ctx, `
			INSERT INTO grn_items (grn_id, raw_material_id, expected_quantity, received_quantity, unit_price, total_price)
			VALUES ($1,$2,$3,$4,$5,$6)
			RETURNING id
		`, g.ID, it.MaterialID, it.Expected, it.Received, it.UnitPrice, it.TotalPrice).Scan(&it.ID); err != nil {
			return nil, nil, fmt.Errorf("grn item %s: %w", it.MaterialID, err)
		}
	}
	g.Items = items

	found := DetectDiscrepancies(items)
	for i := range found {
		d := &found[i]
		d.GRNID, d.GRNNumber, d.GRNDate = g.ID, g.Number, g.Date
		if err := r.db.QueryRow(ctx, `
			INSERT INTO discrepancies (grn_id, raw_material_id, expected_quantity, received_quantity, discrepancy_quantity, discrepancy_type)
			VALUES ($1,$2,$3,$4,$5,$6)
			RETURNING id, created_at
		`, g.ID, d.MaterialID, d.Expected, d.Received, d.Quantity, string(d.Type)).Scan(&d.ID, &d.CreatedAt); err != nil {
			return nil, nil, fmt.Errorf("discrepancy %s: %w", d.MaterialID, err)
		}
	}
	return g, found, nil
}

// MarkReceived flips a pending GRN to received once and returns it with items.
// It returns nil, nil when the GRN does not exist.
func (r *Repo) MarkReceived(ctx context.Context, id uuid.UUID) (*GRN, error) {
	tag, err := r.db.Exec(ctx, `UPDATE grns SET status='received' WHERE id=$1 AND status='pending'`, id)
	if err != nil {
		return nil, err
	}
	g, err := r.Get(ctx, id)
	if err != nil || g == nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return g, ErrAlreadyReceived
	}
	return g, nil
}

const grnCols = `g.id, g.grn_number, g.vendor_id, v.name, g.grn_date::timestamptz, g.total_amount, g.status,
	COALESCE(g.notes,''), g.created_at`

func scanGRN(row pgx.Row) (*GRN, error) {
	var g GRN
	var status string
	if err := row.Scan(&g.ID, &g.Number, &g.VendorID, &g.VendorName, &g.Date, &g.TotalAmount, &status, &g.Notes, &g.CreatedAt); err != nil {
		return nil, err
	}
	g.Status = Status(status)
	return &g, nil
}

func (r *Repo) Get(ctx context.Context, id uuid.UUID) (*GRN, error) {
	g, err := scanGRN(r.db.QueryRow(ctx, `
		SELECT `+grnCols+` FROM grns g JOIN vendors v ON v.id = g.vendor_id WHERE g.id=$1
	`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT gi.id, gi.raw_material_id, m.name, m.unit, gi.expected_quantity, gi.received_quantity,
		       gi.unit_price, gi.total_price
		FROM grn_items gi JOIN raw_materials m ON m.id = gi.raw_material_id
		WHERE gi.grn_id=$1
		ORDER BY m.name
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.MaterialID, &it.MaterialName, &it.Unit, &it.Expected, &it.Received,
			&it.UnitPrice, &it.TotalPrice); err != nil {
			return nil, err
		}
		g.Items = append(g.Items, it)
	}
	return g, rows.Err()
}

// List returns GRN headers newest first, optionally for one vendor.
func (r *Repo) List(ctx context.Context, vendorID uuid.UUID) ([]GRN, error) {
	var vendor *uuid.UUID
	if vendorID != uuid.Nil {
		vendor = &vendorID
	}
	rows, err := r.db.Query(ctx, `
		SELECT `+grnCols+`
		FROM grns g JOIN vendors v ON v.id = g.vendor_id
		WHERE ($1::uuid IS NULL OR g.vendor_id = $1)
		ORDER BY g.grn_date DESC, g.created_at DESC
	`, vendor)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []GRN{}
	for rows.Next() {
		g, err := scanGRN(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *g)
	}
	return out, rows.Err()
}

// Delete removes a GRN that has not been received yet.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM grns WHERE id=$1 AND status='pending'`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repo) ListDiscrepancies(ctx context.Context, f DiscrepancyFilter) ([]Discrepancy, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.Type != "" {
		add("d.discrepancy_type = $%d", string(f.Type))
	}
	if !f.From.IsZero() {
		add("g.grn_date >= $%d::date", f.From)
	}
	if !f.To.IsZero() {
		add("g.grn_date <= $%d::date", f.To)
	}
	if v := strings.TrimSpace(f.Vendor); v != "" {
		add("v.name ILIKE '%%' || $%d || '%%'", v)
	}

	q := `
		SELECT d.id, d.grn_id, g.grn_number, g.grn_date::timestamptz, v.name, d.raw_material_id, m.name,
		       d.expected_quantity, d.received_quantity, d.discrepancy_quantity, d.discrepancy_type,
		       d.note, d.created_at
		FROM discrepancies d
		JOIN grns g ON g.id = d.grn_id
		JOIN vendors v ON v.id = g.vendor_id
		JOIN raw_materials m ON m.id = d.raw_material_id`
	if len(where) > 0 {
		q += ` WHERE ` + strings.Join(where, " AND ")
	}
	q += ` ORDER BY g.grn_date DESC, m.name`

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Discrepancy{}
	for rows.Next() {
		var d Discrepancy
		var typ string
		if err := rows.Scan(&d.ID, &d.GRNID, &d.GRNNumber, &d.GRNDate, &d.VendorName, &d.MaterialID, &d.MaterialName,
			&d.Expected, &d.Received, &d.Quantity, &typ, &d.Note, &d.CreatedAt); err != nil {
			return nil, err
		}
		d.Type = DiscrepancyType(typ)
		out = append(out, d)
	}
	return out, rows.Err()
}
