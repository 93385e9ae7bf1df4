package materials

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestIsLowStock(t *testing.T) {
	tests := []struct {
		stock, reorder string
		low            bool
	}{
		{"5", "10", true},
		{"10", "10", true},
		{"10.01", "10", false},
		{"0", "0", true},
	}
	for _, tc := range tests {
		m := RawMaterial{StockQuantity: decimal.RequireFromString(tc.stock), ReorderLevel: decimal.RequireFromString(tc.reorder)}
		assert.Equal(t, tc.low, m.IsLowStock(), "stock=%s reorder=%s", tc.stock, tc.reorder)
	}
}

func TestInputNormalize(t *testing.T) {
	in := Input{Name: "  Flour ", Unit: " kg", StockQuantity: decimal.NewFromInt(5)}
	assert.NoError(t, in.Normalize())
	assert.Equal(t, "Flour", in.Name)
	assert.Equal(t, "kg", in.Unit)

	for name, bad := range map[string]Input{
		"no name":          {Unit: "kg"},
		"no unit":          {Name: "Sugar"},
		"negative stock":   {Name: "Sugar", Unit: "kg", StockQuantity: decimal.NewFromInt(-1)},
		"negative reorder": {Name: "Sugar", Unit: "kg", ReorderLevel: decimal.NewFromInt(-1)},
	} {
		assert.Error(t, bad.Normalize(), name)
	}
}
