package production

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Delta is the stock change one ingredient undergoes for a batch.
type Delta struct {
	MaterialID uuid.UUID       `json:"material_id"`
	Name       string          `json:"name"`
	Unit       string          `json:"unit"`
	Used       decimal.Decimal `json:"used"`
	NewStock   decimal.Decimal `json:"new_stock"`
}

// ApplyProduction validates the whole ingredient set against the batch size
// and only then computes the deltas. A single short ingredient fails the
// batch and no deltas are returned.
func ApplyProduction(ingredients []Ingredient, quantityProduced int64) ([]Delta, error) {
	if quantityProduced < 1 {
		return nil, &InvalidInputError{Reason: "quantity produced must be >= 1"}
	}
	if err := validate(ingredients); err != nil {
		return nil, err
	}

	qty := decimal.NewFromInt(quantityProduced)

	var short []Shortage
	for _, ing := range ingredients {
		need := ing.RequiredPerUnit.Mul(qty)
		if ing.AvailableStock.LessThan(need) {
			short = append(short, Shortage{
				MaterialID: ing.MaterialID,
				Material:   ing.Name,
				Unit:       ing.Unit,
				Required:   need,
				Available:  ing.AvailableStock,
			})
		}
	}
	if len(short) > 0 {
		return nil, &InsufficientStockError{Shortages: short}
	}

	deltas := make([]Delta, 0, len(ingredients))
	for _, ing := range ingredients {
		used := ing.RequiredPerUnit.Mul(qty)
		deltas = append(deltas, Delta{
			MaterialID: ing.MaterialID,
			Name:       ing.Name,
			Unit:       ing.Unit,
			Used:       used,
			NewStock:   ing.AvailableStock.Sub(used),
		})
	}
	return deltas, nil
}
