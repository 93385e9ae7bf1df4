package productionlogs

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Log struct {
	ID             uuid.UUID        `json:"id"`
	ProductID      uuid.UUID        `json:"product_id"`
	ProductName    string           `json:"product_name"`
	RecipeID       *uuid.UUID       `json:"recipe_id,omitempty"`
	OperatorID     *uuid.UUID       `json:"operator_id,omitempty"`
	Quantity       int64            `json:"quantity"`
	TimeSpentMins  *int             `json:"time_spent_mins,omitempty"`
	ProductionCost *decimal.Decimal `json:"production_cost,omitempty"`
	OperatorNotes  string           `json:"operator_notes"`
	ProductionDate time.Time        `json:"production_date"`
	CreatedAt      time.Time        `json:"created_at"`
	Materials      []Material       `json:"materials,omitempty"`
}

// Material is the amount of one raw material consumed by a log.
type Material struct {
	MaterialID   uuid.UUID        `json:"raw_material_id"`
	MaterialName string           `json:"material_name,omitempty"`
	QuantityUsed decimal.Decimal  `json:"quantity_used"`
	CostPerUnit  *decimal.Decimal `json:"cost_per_unit,omitempty"`
}

// Filter narrows List. Zero values disable a condition.
type Filter struct {
	ProductID uuid.UUID
	From, To  time.Time
	Limit     int
}
