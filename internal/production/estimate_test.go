package production

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ing(name, required, available string) Ingredient {
	return Ingredient{
		MaterialID:      uuid.New(),
		Name:            name,
		Unit:            "kg",
		RequiredPerUnit: decimal.RequireFromString(required),
		AvailableStock:  decimal.RequireFromString(available),
	}
}

func TestEstimate_Scenarios(t *testing.T) {
	tests := []struct {
		name           string
		ingredients    []Ingredient
		wantPossible   []int64
		wantMax        int64
		wantLimiting   int
		wantSufficient []bool
	}{
		{
			name:           "second ingredient limits",
			ingredients:    []Ingredient{ing("flour", "2", "10"), ing("sugar", "3", "9")},
			wantPossible:   []int64{5, 3},
			wantMax:        3,
			wantLimiting:   1,
			wantSufficient: []bool{true, true},
		},
		{
			name:           "empty stock",
			ingredients:    []Ingredient{ing("yeast", "1", "0")},
			wantPossible:   []int64{0},
			wantMax:        0,
			wantLimiting:   0,
			wantSufficient: []bool{false},
		},
		{
			name:           "tie picks first",
			ingredients:    []Ingredient{ing("flour", "2", "10"), ing("butter", "5", "25")},
			wantPossible:   []int64{5, 5},
			wantMax:        5,
			wantLimiting:   0,
			wantSufficient: []bool{true, true},
		},
		{
			name:           "fractional quantities floor exactly",
			ingredients:    []Ingredient{ing("salt", "0.1", "0.3"), ing("milk", "0.25", "1.9")},
			wantPossible:   []int64{3, 7},
			wantMax:        3,
			wantLimiting:   0,
			wantSufficient: []bool{true, true},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Estimate(tc.ingredients)
			require.NoError(t, err)

			assert.Equal(t, tc.wantMax, got.MaxProducible)
			assert.Equal(t, tc.wantLimiting, got.LimitingIndex)
			assert.Equal(t, tc.ingredients[tc.wantLimiting].MaterialID, got.Limiting.MaterialID)
			require.Len(t, got.PerIngredient, len(tc.ingredients))
			for i, e := range got.PerIngredient {
				assert.Equal(t, tc.ingredients[i].MaterialID, e.MaterialID, "order preserved")
				assert.Equal(t, tc.wantPossible[i], e.PossibleUnits)
				assert.Equal(t, tc.wantSufficient[i], e.Sufficient)
			}
		})
	}
}

func TestEstimate_Errors(t *testing.T) {
	_, err := Estimate(nil)
	var recipeErr *InvalidRecipeError
	require.ErrorAs(t, err, &recipeErr)

	_, err = Estimate([]Ingredient{ing("flour", "2", "10"), ing("water", "0", "5")})
	var inputErr *InvalidInputError
	require.ErrorAs(t, err, &inputErr)
	assert.Equal(t, "water", inputErr.Material)

	_, err = Estimate([]Ingredient{ing("flour", "-1", "10")})
	require.ErrorAs(t, err, &inputErr)

	_, err = Estimate([]Ingredient{ing("flour", "1", "-3")})
	require.ErrorAs(t, err, &inputErr)
	assert.Contains(t, err.Error(), "negative")
}

func TestEstimate_MatchesMinFloor(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for n := 0; n < 200; n++ {
		count := 1 + r.Intn(6)
		ings := make([]Ingredient, count)
		var want int64 = -1
		for i := range ings {
			req := 1 + r.Intn(500)
			avail := r.Intn(10000)
			ings[i] = ing(fmt.Sprintf("m%d", i), fmt.Sprintf("%d.%02d", req/100, req%100), fmt.Sprintf("%d.%02d", avail/100, avail%100))
			units := int64(avail / req)
			if want < 0 || units < want {
				want = units
			}
		}

		got, err := Estimate(ings)
		require.NoError(t, err)
		assert.Equal(t, want, got.MaxProducible)
		assert.GreaterOrEqual(t, got.MaxProducible, int64(0))

		again, err := Estimate(ings)
		require.NoError(t, err)
		assert.Equal(t, got, again, "deterministic")
	}
}
