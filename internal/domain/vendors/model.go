package vendors

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Vendor struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Contact   string    `json:"contact"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

type Input struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Address string `json:"address"`
}

func (in *Input) Normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Contact = strings.TrimSpace(in.Contact)
	in.Address = strings.TrimSpace(in.Address)
	if in.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

// Stats summarises what a vendor has delivered.
type Stats struct {
	GRNCount          int64           `json:"grn_count"`
	TotalSpent        decimal.Decimal `json:"total_spent"`
	MaterialsSupplied int64           `json:"materials_supplied"`
	LastDelivery      *time.Time      `json:"last_delivery,omitempty"`
}
