package losses

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInput_Normalize(t *testing.T) {
	mat, prod := uuid.New(), uuid.New()

	t.Run("raw material drops stray product ref", func(t *testing.T) {
		in := Input{Kind: KindRawMaterial, MaterialID: &mat, ProductID: &prod, QuantityLost: decimal.NewFromInt(2)}
		require.NoError(t, in.Normalize())
		assert.Nil(t, in.ProductID)
	})

	t.Run("product", func(t *testing.T) {
		in := Input{Kind: KindProduct, ProductID: &prod, QuantityLost: decimal.NewFromInt(1), Reason: " burnt "}
		require.NoError(t, in.Normalize())
		assert.Nil(t, in.MaterialID)
		assert.Equal(t, "burnt", in.Reason)
	})

	neg := decimal.NewFromInt(-3)
	bad := []Input{
		{Kind: KindRawMaterial, QuantityLost: decimal.NewFromInt(1)},
		{Kind: KindProduct, MaterialID: &mat, QuantityLost: decimal.NewFromInt(1)},
		{Kind: "spill", MaterialID: &mat, QuantityLost: decimal.NewFromInt(1)},
		{Kind: KindRawMaterial, MaterialID: &mat},
		{Kind: KindRawMaterial, MaterialID: &mat, QuantityLost: decimal.NewFromInt(1), EstimatedCost: &neg},
	}
	for _, in := range bad {
		assert.Error(t, in.Normalize())
	}
}
