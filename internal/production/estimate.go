// Package production computes how many units a recipe can yield from the
// current stock and which raw-material deltas a confirmed batch implies.
// Everything here works on an in-memory snapshot and performs no I/O.
package production

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Ingredient is one recipe line joined with the material's current stock.
type Ingredient struct {
	MaterialID      uuid.UUID       `json:"material_id"`
	Name            string          `json:"name"`
	Unit            string          `json:"unit"`
	RequiredPerUnit decimal.Decimal `json:"required_per_unit"`
	AvailableStock  decimal.Decimal `json:"available_stock"`
}

type IngredientEstimate struct {
	Ingredient
	PossibleUnits int64 `json:"possible_units"`
	Sufficient    bool  `json:"sufficient"`
}

// Capacity is the outcome of Estimate. PerIngredient keeps the input order.
type Capacity struct {
	MaxProducible int64                `json:"max_producible"`
	Limiting      IngredientEstimate   `json:"limiting"`
	LimitingIndex int                  `json:"limiting_index"`
	PerIngredient []IngredientEstimate `json:"per_ingredient"`
}

// Estimate returns the number of whole units producible right now and the
// ingredient that caps it. On ties the earliest ingredient wins.
func Estimate(ingredients []Ingredient) (Capacity, error) {
	if err := validate(ingredients); err != nil {
		return Capacity{}, err
	}

	out := Capacity{PerIngredient: make([]IngredientEstimate, 0, len(ingredients))}
	for i, ing := range ingredients {
		e := IngredientEstimate{
			Ingredient:    ing,
			PossibleUnits: possibleUnits(ing.AvailableStock, ing.RequiredPerUnit),
			Sufficient:    ing.AvailableStock.GreaterThanOrEqual(ing.RequiredPerUnit),
		}
		out.PerIngredient = append(out.PerIngredient, e)

		if i == 0 || e.PossibleUnits < out.MaxProducible {
			out.MaxProducible = e.PossibleUnits
			out.Limiting = e
			out.LimitingIndex = i
		}
	}
	return out, nil
}

// possibleUnits is floor(available / required) for available >= 0, required > 0.
func possibleUnits(available, required decimal.Decimal) int64 {
	q, _ := available.QuoRem(required, 0)
	return q.IntPart()
}

func validate(ingredients []Ingredient) error {
	if len(ingredients) == 0 {
		return &InvalidRecipeError{Reason: "no ingredients defined"}
	}
	for _, ing := range ingredients {
		if !ing.RequiredPerUnit.IsPositive() {
			return &InvalidInputError{Material: ing.Name, Reason: "required quantity per unit must be > 0"}
		}
		if ing.AvailableStock.IsNegative() {
			return &InvalidInputError{Material: ing.Name, Reason: "available stock cannot be negative"}
		}
	}
	return nil
}
