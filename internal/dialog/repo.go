package dialog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/avinashchandan12/bake-ready-core/internal/infra/db"
	"github.com/jackc/pgx/v5"
)

type Repo struct {
	db db.DBTX
}

func NewRepo(conn db.DBTX) *Repo { return &Repo{db: conn} }

// Get returns the chat state; a chat without a row is idle.
func (r *Repo) Get(ctx context.Context, chatID int64) (*Item, error) {
	var state string
	var raw []byte
	err := r.db.QueryRow(ctx, `SELECT state, payload FROM dialog_states WHERE chat_id = $1`, chatID).Scan(&state, &raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return &Item{ChatID: chatID, State: StateIdle, Payload: Payload{}}, nil
	}
	if err != nil {
		return nil, err
	}
	p := Payload{}
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("dialog payload: %w", err)
	}
	return &Item{ChatID: chatID, State: State(state), Payload: p}, nil
}

func (r *Repo) Set(ctx context.Context, chatID int64, state State, payload Payload) error {
	if payload == nil {
		payload = Payload{}
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO dialog_states (chat_id, state, payload, updated_at)
		VALUES ($1,$2,$3,now())
		ON CONFLICT (chat_id) DO UPDATE SET
		  state=$2, payload=$3, updated_at=now()
	`, chatID, string(state), raw)
	return err
}

func (r *Repo) Reset(ctx context.Context, chatID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM dialog_states WHERE chat_id = $1`, chatID)
	return err
}

// GetString reads a string value from the payload.
func GetString(p Payload, key string) (string, bool) {
	v, ok := p[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// GetInt reads a number that went through JSON, so it arrives as float64.
func GetInt(p Payload, key string) (int64, bool) {
	switch v := p[key].(type) {
	case float64:
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	}
	return 0, false
}
