package orders

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotals(t *testing.T) {
	bread, cake := uuid.New(), uuid.New()
	items, total := Totals([]ItemInput{
		{ProductID: bread, Quantity: 12, UnitPrice: decimal.RequireFromString("2.35")},
		{ProductID: cake, Quantity: 1, UnitPrice: decimal.RequireFromString("18.00")},
	})

	require.Len(t, items, 2)
	assert.Equal(t, "28.2", items[0].TotalPrice.String())
	assert.Equal(t, "18", items[1].TotalPrice.String())
	assert.Equal(t, "46.2", total.String())
}

func TestTotals_Empty(t *testing.T) {
	items, total := Totals(nil)
	assert.Empty(t, items)
	assert.True(t, total.IsZero())
}

func TestInput_Normalize(t *testing.T) {
	valid := func() Input {
		return Input{
			ClientID: uuid.New(),
			Items:    []ItemInput{{ProductID: uuid.New(), Quantity: 3, UnitPrice: decimal.NewFromInt(2)}},
		}
	}

	in := valid()
	require.NoError(t, in.Normalize())
	assert.Equal(t, StatusPending, in.Status)

	tests := []struct {
		name   string
		mutate func(*Input)
	}{
		{"no client", func(in *Input) { in.ClientID = uuid.Nil }},
		{"bad status", func(in *Input) { in.Status = "shipped" }},
		{"no items", func(in *Input) { in.Items = nil }},
		{"zero quantity", func(in *Input) { in.Items[0].Quantity = 0 }},
		{"negative price", func(in *Input) { in.Items[0].UnitPrice = decimal.NewFromInt(-1) }},
		{"missing product", func(in *Input) { in.Items[0].ProductID = uuid.Nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid()
			tt.mutate(&in)
			assert.Error(t, in.Normalize())
		})
	}
}
