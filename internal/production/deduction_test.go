package production

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyProduction_Deducts(t *testing.T) {
	flour := ing("flour", "2", "10")

	deltas, err := ApplyProduction([]Ingredient{flour}, 4)
	require.NoError(t, err)
	require.Len(t, deltas, 1)
	assert.Equal(t, flour.MaterialID, deltas[0].MaterialID)
	assert.True(t, deltas[0].Used.Equal(decimal.NewFromInt(8)))
	assert.True(t, deltas[0].NewStock.Equal(decimal.NewFromInt(2)))
}

func TestApplyProduction_AllOrNothing(t *testing.T) {
	ings := []Ingredient{
		ing("flour", "2", "100"),
		ing("sugar", "2", "10"),
		ing("butter", "1", "100"),
		ing("eggs", "3", "5"),
	}

	deltas, err := ApplyProduction(ings, 6)
	assert.Nil(t, deltas)

	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	require.Len(t, stockErr.Shortages, 2)
	assert.Equal(t, "sugar", stockErr.Shortages[0].Material)
	assert.True(t, stockErr.Shortages[0].Required.Equal(decimal.NewFromInt(12)))
	assert.True(t, stockErr.Shortages[0].Available.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, "eggs", stockErr.Shortages[1].Material)
	assert.Contains(t, err.Error(), "sugar")
}

func TestApplyProduction_SingleShort(t *testing.T) {
	_, err := ApplyProduction([]Ingredient{ing("flour", "2", "10")}, 6)
	var stockErr *InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.True(t, stockErr.Shortages[0].Required.Equal(decimal.NewFromInt(12)))
}

func TestApplyProduction_InvalidInput(t *testing.T) {
	var inputErr *InvalidInputError
	_, err := ApplyProduction([]Ingredient{ing("flour", "2", "10")}, 0)
	require.ErrorAs(t, err, &inputErr)

	_, err = ApplyProduction([]Ingredient{ing("flour", "0", "10")}, 1)
	require.ErrorAs(t, err, &inputErr)

	var recipeErr *InvalidRecipeError
	_, err = ApplyProduction(nil, 1)
	require.ErrorAs(t, err, &recipeErr)
}

func TestApplyProduction_ReestimateDropsByQuantity(t *testing.T) {
	ings := []Ingredient{ing("flour", "2", "20"), ing("sugar", "0.5", "7.5"), ing("milk", "0.3", "9")}

	before, err := Estimate(ings)
	require.NoError(t, err)
	require.Equal(t, int64(10), before.MaxProducible)

	const produced = 4
	deltas, err := ApplyProduction(ings, produced)
	require.NoError(t, err)

	after := make([]Ingredient, len(ings))
	for i, d := range deltas {
		after[i] = ings[i]
		after[i].AvailableStock = d.NewStock
	}

	got, err := Estimate(after)
	require.NoError(t, err)
	assert.Equal(t, before.MaxProducible-produced, got.MaxProducible)
}

func TestLaborCostAndHours(t *testing.T) {
	assert.True(t, LaborCost(90, decimal.NewFromInt(15)).Equal(decimal.RequireFromString("22.5")))
	assert.True(t, LaborCost(0, decimal.NewFromInt(15)).IsZero())
	assert.True(t, LaborCost(20, decimal.NewFromInt(10)).Equal(decimal.RequireFromString("3.33")))

	assert.Equal(t, int64(3), EstimatedHours(45, 4))
	assert.Equal(t, int64(1), EstimatedHours(30, 1))
	assert.Equal(t, int64(0), EstimatedHours(45, 0))
}
