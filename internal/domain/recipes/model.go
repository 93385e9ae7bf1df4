package recipes

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Recipe struct {
	ID               uuid.UUID    `json:"id"`
	ProductID        uuid.UUID    `json:"product_id"`
	ProductName      string       `json:"product_name"`
	TimeRequiredMins int          `json:"time_required_mins"`
	YieldQuantity    int          `json:"yield_quantity"`
	Instructions     string       `json:"instructions"`
	Ingredients      []Ingredient `json:"ingredients"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

// Ingredient is one recipe line joined with its raw material.
type Ingredient struct {
	ID           uuid.UUID       `json:"id"`
	MaterialID   uuid.UUID       `json:"raw_material_id"`
	MaterialName string          `json:"material_name"`
	Unit         string          `json:"unit"`
	Quantity     decimal.Decimal `json:"quantity"`
	Stock        decimal.Decimal `json:"stock_quantity"`
	Position     int             `json:"position"`
}

type IngredientInput struct {
	MaterialID uuid.UUID       `json:"raw_material_id"`
	Quantity   decimal.Decimal `json:"quantity"`
}

type Input struct {
	ProductID        uuid.UUID         `json:"product_id"`
	TimeRequiredMins int               `json:"time_required_mins"`
	YieldQuantity    int               `json:"yield_quantity"`
	Instructions     string            `json:"instructions"`
	Ingredients      []IngredientInput `json:"ingredients"`
}

func (in *Input) Normalize() error {
	in.Instructions = strings.TrimSpace(in.Instructions)
	if in.YieldQuantity == 0 {
		in.YieldQuantity = 1
	}
	switch {
	case in.ProductID == uuid.Nil:
		return errors.New("product_id is required")
	case in.TimeRequiredMins < 0:
		return errors.New("time_required_mins cannot be negative")
	case in.YieldQuantity < 1:
		return errors.New("yield_quantity must be at least 1")
	case len(in.Ingredients) == 0:
		return errors.New("at least one ingredient is required")
	}
	seen := make(map[uuid.UUID]struct{}, len(in.Ingredients))
	for i, ing := range in.Ingredients {
		if ing.MaterialID == uuid.Nil {
			return fmt.Errorf("ingredient %d: raw_material_id is required", i+1)
		}
		if !ing.Quantity.IsPositive() {
			return fmt.Errorf("ingredient %d: quantity must be greater than zero", i+1)
		}
		if _, dup := seen[ing.MaterialID]; dup {
			return fmt.Errorf("ingredient %d: raw material listed twice", i+1)
		}
		seen[ing.MaterialID] = struct{}{}
	}
	return nil
}
