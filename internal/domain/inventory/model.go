package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type MoveType string

const (
	MoveIn     MoveType = "in"
	MoveOut    MoveType = "out"
	MoveAdjust MoveType = "adjust"
)

type Reason string

const (
	ReasonProduction Reason = "production"
	ReasonGRN        Reason = "grn"
	ReasonLoss       Reason = "loss"
	ReasonStocktake  Reason = "stocktake"
	ReasonManual     Reason = "manual"
)

type Movement struct {
	ID         uuid.UUID       `json:"id"`
	MaterialID uuid.UUID       `json:"raw_material_id"`
	Qty        decimal.Decimal `json:"qty"` // signed: > 0 in, < 0 out
	Type       MoveType        `json:"type"`
	Reason     Reason          `json:"reason"`
	RefID      *uuid.UUID      `json:"ref_id,omitempty"`
	Note       string          `json:"note"`
	CreatedAt  time.Time       `json:"created_at"`
}
