package users

import (
	"context"
	"errors"

	"github.com/avinashchandan12/bake-ready-core/internal/infra/db"
	"github.com/jackc/pgx/v5"
)

type Repo struct {
	db db.DBTX
}

func NewRepo(conn db.DBTX) *Repo { return &Repo{db: conn} }

const cols = `id, telegram_id, username, first_name, last_name, role, created_at, updated_at`

func scan(row pgx.Row) (*Operator, error) {
	var o Operator
	var role string
	if err := row.Scan(&o.ID, &o.TelegramID, &o.Username, &o.FirstName, &o.LastName, &role, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	o.Role = Role(role)
	return &o, nil
}

func (r *Repo) GetByTelegramID(ctx context.Context, tgID int64) (*Operator, error) {
	o, err := scan(r.db.QueryRow(ctx, `SELECT `+cols+` FROM operators WHERE telegram_id = $1`, tgID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return o, err
}

// UpsertFromTelegram syncs the profile. An admin is never demoted.
func (r *Repo) UpsertFromTelegram(ctx context.Context, tg Telegram, role Role) (*Operator, error) {
	return scan(r.db.QueryRow(ctx, `
		INSERT INTO operators (telegram_id, username, first_name, last_name, role)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (telegram_id)
		DO UPDATE SET
			username   = EXCLUDED.username,
			first_name = EXCLUDED.first_name,
			last_name  = EXCLUDED.last_name,
			role       = CASE WHEN operators.role = 'admin' THEN operators.role ELSE EXCLUDED.role END,
			updated_at = now()
		RETURNING `+cols, tg.ID, tg.Username, tg.FirstName, tg.LastName, string(role)))
}

// ListAdmins returns the chats that receive stock alerts.
func (r *Repo) ListAdmins(ctx context.Context) ([]Operator, error) {
	rows, err := r.db.Query(ctx, `SELECT `+cols+` FROM operators WHERE role = 'admin' ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Operator
	for rows.Next() {
		o, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}
