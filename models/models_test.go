package models

import (
	"errors"
	"testing"
	"time"

	"github.com/Govind-619/OrderSphere/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestClient_AccountIDs(t *testing.T) {
	secondary := uint(8)
	self := uint(3)
	zero := uint(0)

	tests := []struct {
		name      string
		secondary *uint
		want      []uint
	}{
		{"no secondary", nil, []uint{3}},
		{"with secondary", &secondary, []uint{3, 8}},
		{"secondary is self", &self, []uint{3}},
		{"zero secondary", &zero, []uint{3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Client{Model: gorm.Model{ID: 3}, SecondaryID: tt.secondary}
			assert.Equal(t, tt.want, c.AccountIDs())
		})
	}
}

func TestClient_DebtDays(t *testing.T) {
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	paid := time.Date(2026, 10, 4, 18, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, Client{}.DebtDays(now))
	assert.Equal(t, 9, Client{LastPaymentAt: &paid}.DebtDays(now))

	future := now.Add(time.Hour)
	assert.Equal(t, 0, Client{LastPaymentAt: &future}.DebtDays(now))
}

func TestOffer_ToPricing(t *testing.T) {
	stored := Offer{
		Model:      gorm.Model{ID: 12},
		Title:      "Pack x3",
		Kind:       string(pricing.KindBundle),
		PriceMode:  string(pricing.ModePackPrice),
		PriceValue: 300,
		IsActive:   true,
		StartDate:  time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, 10, 31, 0, 0, 0, 0, time.UTC),
		Products: []OfferProduct{
			{ProductID: 1, FixedUnits: 2},
			{ProductID: 2, FixedUnits: 1},
		},
	}

	offer, err := stored.ToPricing()
	require.NoError(t, err)
	assert.Equal(t, uint(12), offer.ID())
	assert.Equal(t, 3, offer.BundleUnitCount())
	_, ok := offer.Includes(2)
	assert.True(t, ok)

	stored.Kind = "combo"
	_, err = stored.ToPricing()
	assert.True(t, errors.Is(err, pricing.ErrUnknownKind))
}

func TestPaymentMethodName(t *testing.T) {
	assert.Equal(t, "Cash", PaymentMethodName(PaymentMethodCash))
	assert.Equal(t, "Bank transfer", PaymentMethodName(PaymentMethodTransfer))
	assert.Equal(t, "Cheque", PaymentMethodName(PaymentMethodCheque))
	assert.Equal(t, "Card", PaymentMethodName(PaymentMethodCard))
	assert.Equal(t, "Payment method #9", PaymentMethodName(9))
}

func TestOrder_BundleCountAndStatus(t *testing.T) {
	order := Order{Items: []OrderItem{{Quantity: 2, UnitPrice: 10}, {Quantity: 5, UnitPrice: 1.5}}}
	assert.Equal(t, 7, order.BundleCount())
	assert.Equal(t, 7.5, order.Items[1].Subtotal())

	assert.True(t, IsValidOrderStatus(OrderStatusInProgress))
	assert.False(t, IsValidOrderStatus("shipped"))
}

func TestDraftOrder_EditableAndTotal(t *testing.T) {
	draft := DraftOrder{Status: DraftStatusDraft, Items: []DraftOrderItem{{TotalPrice: 100}, {TotalPrice: 50.25}}}
	assert.True(t, draft.IsEditable())
	assert.Equal(t, 150.25, draft.EstimatedTotal())

	draft.Status = DraftStatusSubmitted
	assert.False(t, draft.IsEditable())
}
