package losses

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindRawMaterial Kind = "raw_material"
	KindProduct     Kind = "product"
)

type Loss struct {
	ID            uuid.UUID        `json:"id"`
	Kind          Kind             `json:"kind"`
	MaterialID    *uuid.UUID       `json:"raw_material_id,omitempty"`
	ProductID     *uuid.UUID       `json:"product_id,omitempty"`
	ItemName      string           `json:"item_name"`
	QuantityLost  decimal.Decimal  `json:"quantity_lost"`
	Reason        string           `json:"loss_reason"`
	EstimatedCost *decimal.Decimal `json:"estimated_cost,omitempty"`
	LossDate      time.Time        `json:"loss_date"`
	CreatedAt     time.Time        `json:"created_at"`
}

type Input struct {
	Kind          Kind             `json:"kind"`
	MaterialID    *uuid.UUID       `json:"raw_material_id"`
	ProductID     *uuid.UUID       `json:"product_id"`
	QuantityLost  decimal.Decimal  `json:"quantity_lost"`
	Reason        string           `json:"loss_reason"`
	EstimatedCost *decimal.Decimal `json:"estimated_cost"`
	LossDate      time.Time        `json:"loss_date"`
}

// Normalize checks that exactly the reference matching Kind is set.
func (in *Input) Normalize() error {
	in.Reason = strings.TrimSpace(in.Reason)
	switch in.Kind {
	case KindRawMaterial:
		if in.MaterialID == nil || *in.MaterialID == uuid.Nil {
			return errors.New("raw_material_id is required for raw material losses")
		}
		in.ProductID = nil
	case KindProduct:
		if in.ProductID == nil || *in.ProductID == uuid.Nil {
			return errors.New("product_id is required for product losses")
		}
		in.MaterialID = nil
	default:
		return errors.New("kind must be raw_material or product")
	}
	if !in.QuantityLost.IsPositive() {
		return errors.New("quantity_lost must be greater than zero")
	}
	if in.EstimatedCost != nil && in.EstimatedCost.IsNegative() {
		return errors.New("estimated_cost cannot be negative")
	}
	return nil
}
