package materials

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RawMaterial struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Unit          string          `json:"unit"` // free-text label: kg, g, l, pcs
	StockQuantity decimal.Decimal `json:"stock_quantity"`
	ReorderLevel  decimal.Decimal `json:"reorder_level"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// IsLowStock flags materials at or below their reorder level.
func (m RawMaterial) IsLowStock() bool {
	return m.StockQuantity.LessThanOrEqual(m.ReorderLevel)
}

type Input struct {
	Name          string          `json:"name"`
	Unit          string          `json:"unit"`
	StockQuantity decimal.Decimal `json:"stock_quantity"`
	ReorderLevel  decimal.Decimal `json:"reorder_level"`
}

func (in *Input) Normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Unit = strings.TrimSpace(in.Unit)
	if in.Name == "" {
		return errors.New("name is required")
	}
	if in.Unit == "" {
		return errors.New("unit is required")
	}
	if in.StockQuantity.IsNegative() {
		return errors.New("stock quantity cannot be negative")
	}
	if in.ReorderLevel.IsNegative() {
		return errors.New("reorder level cannot be negative")
	}
	return nil
}
