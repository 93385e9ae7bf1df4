package grn

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
	StatusPending  Status = "pending"
	StatusReceived Status = "received"
)

// GRN is a goods received note: one vendor delivery.
type GRN struct {
	ID          uuid.UUID       `json:"id"`
	Number      string          `json:"grn_number"`
	VendorID    uuid.UUID       `json:"vendor_id"`
	VendorName  string          `json:"vendor_name"`
	Date        time.Time       `json:"grn_date"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      Status          `json:"status"`
	Notes       string          `json:"notes"`
	Items       []Item          `json:"items,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

type Item struct {
	ID           uuid.UUID       `json:"id"`
	MaterialID   uuid.UUID       `json:"raw_material_id"`
	MaterialName string          `json:"material_name,omitempty"`
	Unit         string          `json:"unit,omitempty"`
	Expected     decimal.Decimal `json:"expected_quantity"`
	Received     decimal.Decimal `json:"received_quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	TotalPrice   decimal.Decimal `json:"total_price"`
}

type ItemInput struct {
	MaterialID uuid.UUID       `json:"raw_material_id"`
	Expected   decimal.Decimal `json:"expected_quantity"`
	Received   decimal.Decimal `json:"received_quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
}

type Input struct {
	VendorID uuid.UUID   `json:"vendor_id"`
	Date     time.Time   `json:"grn_date"`
	Status   Status      `json:"status"`
	Notes    string      `json:"notes"`
	Items    []ItemInput `json:"items"`
}

func (in *Input) Normalize() error {
	in.Notes = strings.TrimSpace(in.Notes)
	if in.Status == "" {
		in.Status = StatusPending
	}
	switch {
	case in.VendorID == uuid.Nil:
		return errors.New("vendor_id is required")
	case in.Status != StatusPending && in.Status != StatusReceived:
		return fmt.Errorf("unknown status %q", in.Status)
	case len(in.Items) == 0:
		return errors.New("at least one item is required")
	}
	for i, it := range in.Items {
		switch {
		case it.MaterialID == uuid.Nil:
			return fmt.Errorf("item %d: raw_material_id is required", i+1)
		case it.Expected.IsNegative(), it.Received.IsNegative():
			return fmt.Errorf("item %d: quantities cannot be negative", i+1)
		case it.UnitPrice.IsNegative():
			return fmt.Errorf("item %d: unit_price cannot be negative", i+1)
		}
	}
	return nil
}

// PriceItems values each line at received quantity × unit price.
func PriceItems(in []ItemInput) ([]Item, decimal.Decimal) {
	out := make([]Item, 0, len(in))
	total := decimal.Zero
	for _, it := range in {
		line := it.Received.Mul(it.UnitPrice).Round(2)
		out = append(out, Item{
			MaterialID: it.MaterialID,
			Expected:   it.Expected,
			Received:   it.Received,
			UnitPrice:  it.UnitPrice,
			TotalPrice: line,
		})
		total = total.Add(line)
	}
	return out, total
}

// FormatNumber renders GRN-YYYYMMDD-NNNN.
func FormatNumber(date time.Time, seq int64) string {
	return fmt.Sprintf("GRN-%s-%04d", date.Format("20060102"), seq)
}

type DiscrepancyType string

const (
	Shortage DiscrepancyType = "shortage"
	Excess   DiscrepancyType = "excess"
)

type Discrepancy struct {
	ID           uuid.UUID       `json:"id"`
	GRNID        uuid.UUID       `json:"grn_id"`
	GRNNumber    string          `json:"grn_number,omitempty"`
	GRNDate      time.Time       `json:"grn_date,omitempty"`
	VendorName   string          `json:"vendor_name,omitempty"`
	MaterialID   uuid.UUID       `json:"raw_material_id"`
	MaterialName string          `json:"material_name,omitempty"`
	Expected     decimal.Decimal `json:"expected_quantity"`
	Received     decimal.Decimal `json:"received_quantity"`
	Quantity     decimal.Decimal `json:"discrepancy_quantity"`
	Type         DiscrepancyType `json:"discrepancy_type"`
	Note         string          `json:"note"`
	CreatedAt    time.Time       `json:"created_at"`
}

// DetectDiscrepancies compares received against expected for every line.
// Matching lines produce nothing; the quantity is the absolute difference.
func DetectDiscrepancies(items []Item) []Discrepancy {
	var out []Discrepancy
	for _, it := range items {
		diff := it.Received.Sub(it.Expected)
		if diff.IsZero() {
			continue
		}
		d := Discrepancy{
			MaterialID: it.MaterialID,
			Expected:   it.Expected,
			Received:   it.Received,
			Quantity:   diff.Abs(),
			Type:       Excess,
		}
		if diff.IsNegative() {
			d.Type = Shortage
		}
		out = append(out, d)
	}
	return out
}

// DiscrepancyFilter narrows the discrepancy report. Zero values are ignored;
// Vendor is a case-insensitive substring of the vendor name.
type DiscrepancyFilter struct {
	Type     DiscrepancyType
	From, To time.Time
	Vendor   string
}
