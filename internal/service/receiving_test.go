package service

import (
	"context"
	"testing"
	"time"

	"github.com/avinashchandan12/bake-ready-core/internal/domain/grn"
	"github.com/avinashchandan12/bake-ready-core/internal/domain/inventory"
	"github.com/avinashchandan12/bake-ready-core/internal/domain/losses"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReceiving_CreatePendingLeavesStock(t *testing.T) {
	m := newMemDB()
	flour := m.addMaterial("Flour", "5", "0")
	ev := &recordingEvents{}
	svc := NewReceiving(discardLogger(), m, ev)

	g, found, err := svc.Create(context.Background(), grn.Input{
		VendorID: uuid.New(),
		Date:     time.Date(2025, 1, 9, 0, 0, 0, 0, time.UTC),
		Items:    []grn.ItemInput{{MaterialID: flour, Expected: dec("50"), Received: dec("45"), UnitPrice: dec("1.2")}},
	})
	require.NoError(t, err)

	assert.Equal(t, "GRN-20250109-0001", g.Number)
	assert.Equal(t, grn.StatusPending, g.Status)
	assert.True(t, g.TotalAmount.Equal(dec("54")))
	require.Len(t, found, 1)
	assert.Equal(t, grn.Shortage, found[0].Type)

	assert.True(t, m.stock[flour].Equal(dec("5")), "pending GRN adds nothing")
	assert.Len(t, ev.found, 1)
	assert.Empty(t, ev.changed)
}

func TestReceiving_CreateReceivedAddsStock(t *testing.T) {
	m := newMemDB()
	flour := m.addMaterial("Flour", "5", "0")
	sugar := m.addMaterial("Sugar", "1", "0")
	ev := &recordingEvents{}

	g, found, err := NewReceiving(discardLogger(), m, ev).Create(context.Background(), grn.Input{
		VendorID: uuid.New(),
		Status:   grn.StatusReceived,
		Items: []grn.ItemInput{
			{MaterialID: flour, Expected: dec("10"), Received: dec("10")},
			{MaterialID: sugar, Expected: dec("0"), Received: dec("0")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, grn.StatusReceived, g.Status)
	assert.Empty(t, found)
	assert.True(t, m.stock[flour].Equal(dec("15")))
	assert.True(t, m.stock[sugar].Equal(dec("1")))

	require.Len(t, m.moves, 1, "zero received lines move nothing")
	assert.Equal(t, inventory.ReasonGRN, m.moves[0].reason)
	assert.Len(t, ev.changed, 1)
	assert.Empty(t, ev.found)
}

func TestReceiving_MarkReceivedOnce(t *testing.T) {
	m := newMemDB()
	flour := m.addMaterial("Flour", "0", "0")
	svc := NewReceiving(discardLogger(), m, nil)
	ctx := context.Background()

	g, _, err := svc.Create(ctx, grn.Input{VendorID: uuid.New(), Items: []grn.ItemInput{{MaterialID: flour, Expected: dec("3"), Received: dec("4")}}})
	require.NoError(t, err)

	_, err = svc.MarkReceived(ctx, g.ID)
	require.NoError(t, err)
	assert.True(t, m.stock[flour].Equal(dec("4")))

	_, err = svc.MarkReceived(ctx, g.ID)
	assert.ErrorIs(t, err, grn.ErrAlreadyReceived)
	assert.True(t, m.stock[flour].Equal(dec("4")), "second receive adds nothing")

	_, err = svc.MarkReceived(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReceiving_CreateValidates(t *testing.T) {
	_, _, err := NewReceiving(discardLogger(), newMemDB(), nil).Create(context.Background(), grn.Input{})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestLosses_RawMaterialWritesOff(t *testing.T) {
	m := newMemDB()
	flour := m.addMaterial("Flour", "5", "0")
	ev := &recordingEvents{}
	svc := NewLosses(discardLogger(), m, ev)

	l, err := svc.Record(context.Background(), losses.Input{Kind: losses.KindRawMaterial, MaterialID: &flour, QuantityLost: dec("1.5"), Reason: "spilled"})
	require.NoError(t, err)
	assert.Equal(t, losses.KindRawMaterial, l.Kind)
	assert.True(t, m.stock[flour].Equal(dec("3.5")))
	assert.Equal(t, inventory.ReasonLoss, m.moves[0].reason)
	assert.Len(t, ev.changed, 1)
}

func TestLosses_MoreThanStockRollsBack(t *testing.T) {
	m := newMemDB()
	flour := m.addMaterial("Flour", "1", "0")

	_, err := NewLosses(discardLogger(), m, nil).Record(context.Background(), losses.Input{Kind: losses.KindRawMaterial, MaterialID: &flour, QuantityLost: dec("2")})
	assert.ErrorIs(t, err, inventory.ErrStockChanged)
	assert.Empty(t, m.losses)
	assert.True(t, m.stock[flour].Equal(dec("1")))
}

func TestLosses_ProductLeavesStock(t *testing.T) {
	m := newMemDB()
	bread := uuid.New()
	ev := &recordingEvents{}

	_, err := NewLosses(discardLogger(), m, ev).Record(context.Background(), losses.Input{Kind: losses.KindProduct, ProductID: &bread, QuantityLost: dec("3")})
	require.NoError(t, err)
	assert.Empty(t, m.moves)
	assert.Empty(t, ev.changed)
}
