package orders

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID          uuid.UUID       `json:"id"`
	ClientID    uuid.UUID       `json:"client_id"`
	ClientName  string          `json:"client_name"`
	OrderDate   time.Time       `json:"order_date"`
	Status      Status          `json:"status"`
	Notes       string          `json:"notes"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Items       []Item          `json:"items,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type Item struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

type ItemInput struct {
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type Input struct {
	ClientID  uuid.UUID   `json:"client_id"`
	OrderDate time.Time   `json:"order_date"`
	Status    Status      `json:"status"`
	Notes     string      `json:"notes"`
	Items     []ItemInput `json:"items"`
}

func (in *Input) Normalize() error {
	in.Notes = strings.TrimSpace(in.Notes)
	if in.Status == "" {
		in.Status = StatusPending
	}
	switch {
	case in.ClientID == uuid.Nil:
		return errors.New("client_id is required")
	case !in.Status.Valid():
		return fmt.Errorf("unknown status %q", in.Status)
	case len(in.Items) == 0:
		return errors.New("at least one item is required")
	}
	for i, it := range in.Items {
		if it.ProductID == uuid.Nil {
			return fmt.Errorf("item %d: product_id is required", i+1)
		}
		if it.Quantity < 1 {
			return fmt.Errorf("item %d: quantity must be at least 1", i+1)
		}
		if it.UnitPrice.IsNegative() {
			return fmt.Errorf("item %d: unit_price cannot be negative", i+1)
		}
	}
	return nil
}

// Totals prices each line as quantity × unit price and sums the order.
func Totals(items []ItemInput) ([]Item, decimal.Decimal) {
	out := make([]Item, 0, len(items))
	total := decimal.Zero
	for _, it := range items {
		line := it.UnitPrice.Mul(decimal.NewFromInt(it.Quantity)).Round(2)
		out = append(out, Item{
			ProductID:  it.ProductID,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			TotalPrice: line,
		})
		total = total.Add(line)
	}
	return out, total
}

type InvoiceStatus string

const (
	InvoicePending InvoiceStatus = "pending"
	InvoicePaid    InvoiceStatus = "paid"
)

type Invoice struct {
	ID          uuid.UUID       `json:"id"`
	OrderID     uuid.UUID       `json:"order_id"`
	ClientID    uuid.UUID       `json:"client_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      InvoiceStatus   `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	PaidAt      *time.Time      `json:"paid_at,omitempty"`
}
