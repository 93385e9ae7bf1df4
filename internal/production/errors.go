package production

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvalidRecipeError is returned when a recipe has no ingredients to work with.
type InvalidRecipeError struct {
	Reason string
}

func (e *InvalidRecipeError) Error() string {
	return "production: invalid recipe: " + e.Reason
}

// InvalidInputError reports a malformed quantity on a single ingredient
// or a bad production quantity.
type InvalidInputError struct {
	Material string
	Reason   string
}

func (e *InvalidInputError) Error() string {
	if e.Material == "" {
		return "production: invalid input: " + e.Reason
	}
	return fmt.Sprintf("production: invalid input for %q: %s", e.Material, e.Reason)
}

type Shortage struct {
	MaterialID uuid.UUID       `json:"material_id"`
	Material   string          `json:"material"`
	Unit       string          `json:"unit"`
	Required   decimal.Decimal `json:"required"`
	Available  decimal.Decimal `json:"available"`
}

// InsufficientStockError lists every ingredient that cannot cover the batch.
type InsufficientStockError struct {
	Shortages []Shortage
}

func (e *InsufficientStockError) Error() string {
	parts := make([]string, 0, len(e.Shortages))
	for _, s := range e.Shortages {
		parts = append(parts, fmt.Sprintf("%s: required %s %s, available %s %s",
			s.Material, s.Required.String(), s.Unit, s.Available.String(), s.Unit))
	}
	return "production: insufficient stock for " + strings.Join(parts, "; ")
}
