package transport

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInput_Normalize(t *testing.T) {
	cafe := uuid.New()
	in := Input{VehicleNo: " ka01ab1234 ", Stops: []StopInput{{ClientID: cafe, DeliveryAddress: " 5 High St "}}}
	require.NoError(t, in.Normalize())
	assert.Equal(t, "KA01AB1234", in.VehicleNo)
	assert.Equal(t, "5 High St", in.Stops[0].DeliveryAddress)

	assert.Error(t, (&Input{}).Normalize())
	assert.Error(t, (&Input{VehicleNo: "X1", Cost: decimal.NewFromInt(-5)}).Normalize())
	assert.Error(t, (&Input{VehicleNo: "X1", Stops: []StopInput{{}}}).Normalize())
	assert.Error(t, (&Input{VehicleNo: "X1", Stops: []StopInput{{ClientID: cafe}, {ClientID: cafe}}}).Normalize())
}

func TestDeliveryStatus_Valid(t *testing.T) {
	assert.True(t, DeliveryInTransit.Valid())
	assert.False(t, DeliveryStatus("lost").Valid())
}
