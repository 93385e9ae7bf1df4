package transport

import (
	"context"
	"errors"

	"github.com/avinashchandan12/bake-ready-core/internal/infra/db"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type Repo struct{ db db.DBTX }

func NewRepo(conn db.DBTX) *Repo { return &Repo{db: conn} }

func (r *Repo) Create(ctx context.Context, in Input) (*Log, error) {
	var date any
	if !in.TransportDate.IsZero() {
		date = in.TransportDate
	}
	var id uuid.UUID
	err := db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, `
			INSERT INTO transport_logs (vehicle_no, driver_name, cost, transport_date, notes)
			VALUES ($1,$2,$3,COALESCE($4::date, CURRENT_DATE),NULLIF($5,''))
			RETURNING id
		`, in.VehicleNo, in.DriverName, in.Cost, date, in.Notes).Scan(&id); err != nil {
			return err
		}
		for _, s := range in.Stops {
			if _, err := tx.Exec(ctx, `
				INSERT INTO transport_clients (transport_log_id, client_id, delivery_address)
				VALUES ($1,$2,$3)
			`, id, s.ClientID, s.DeliveryAddress); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

const logCols = `id, vehicle_no, driver_name, cost, transport_date::timestamptz, COALESCE(notes,''), created_at`

func scanLog(row pgx.Row) (*Log, error) {
	var l Log
	if err := row.Scan(&l.ID, &l.VehicleNo, &l.DriverName, &l.Cost, &l.TransportDate, &l.Notes, &l.CreatedAt); err != nil {
		return nil, err
	}
	l.Stops = []Stop{}
	return &l, nil
}

func (r *Repo) Get(ctx context.Context, id uuid.UUID) (*Log, error) {
	l, err := scanLog(r.db.QueryRow(ctx, `SELECT `+logCols+` FROM transport_logs WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `
		SELECT tc.client_id, c.name, tc.delivery_address, tc.delivery_status
		FROM transport_clients tc JOIN clients c ON c.id = tc.client_id
		WHERE tc.transport_log_id=$1
		ORDER BY c.name
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var s Stop
		var status string
		if err := rows.Scan(&s.ClientID, &s.ClientName, &s.DeliveryAddress, &status); err != nil {
			return nil, err
		}
		s.Status = DeliveryStatus(status)
		l.Stops = append(l.Stops, s)
	}
	return l, rows.Err()
}

// List returns run headers newest first, without stops.
func (r *Repo) List(ctx context.Context) ([]Log, error) {
	rows, err := r.db.Query(ctx, `SELECT `+logCols+` FROM transport_logs ORDER BY transport_date DESC, created_at DESC`)
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

// UpdateStopStatus reports false when the run has no such stop.
func (r *Repo) UpdateStopStatus(ctx context.Context, logID, clientID uuid.UUID, s DeliveryStatus) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE transport_clients SET delivery_status=$3
		WHERE transport_log_id=$1 AND client_id=$2
	`, logID, clientID, string(s))
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM transport_logs WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
