package pricing

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustOffer(t *testing.T, spec OfferSpec) *Offer {
	t.Helper()
	if spec.StartDate.IsZero() {
		spec.StartDate = time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	}
	if spec.EndDate.IsZero() {
		spec.EndDate = time.Date(2026, 10, 31, 0, 0, 0, 0, time.UTC)
	}
	offer, err := NewOffer(spec)
	require.NoError(t, err)
	return &offer
}

func TestQuote_NoOffer(t *testing.T) {
	for _, base := range []float64{0, 1, 99.99, 10.005, 1703500} {
		q, err := Quote(nil, base, 3)
		require.NoError(t, err)
		assert.Equal(t, Round2(base), q.UnitPrice)
		assert.Equal(t, Round2(base*3), q.TotalPrice)
		assert.Equal(t, 0.0, q.DiscountPercent)
		assert.False(t, q.OfferApplied)
	}
}

func TestQuote_MinimumGate(t *testing.T) {
	offer := mustOffer(t, OfferSpec{
		Kind:         KindMinimum,
		PriceMode:    ModeUnitPrice,
		PriceValue:   80,
		MinimumUnits: 3,
		Active:       true,
	})

	below, err := Quote(offer, 100, 2)
	require.NoError(t, err)
	assert.False(t, below.OfferApplied)
	assert.Equal(t, 100.0, below.UnitPrice)
	assert.Equal(t, 200.0, below.TotalPrice)
	assert.Equal(t, 0.0, below.DiscountPercent)

	at, err := Quote(offer, 100, 3)
	require.NoError(t, err)
	assert.True(t, at.OfferApplied)
	assert.Equal(t, 80.0, at.UnitPrice)
}

func TestQuote_MixedBelowMinimum(t *testing.T) {
	offer := mustOffer(t, OfferSpec{
		Kind:         KindMixed,
		PriceMode:    ModePercentOff,
		PriceValue:   50,
		MinimumUnits: 6,
		Active:       true,
	})

	q, err := Quote(offer, 40, 5)
	require.NoError(t, err)
	assert.False(t, q.OfferApplied)
	assert.Equal(t, 40.0, q.UnitPrice)
	assert.Equal(t, 200.0, q.TotalPrice)
}

func TestQuote_UnitPriceMode(t *testing.T) {
	offer := mustOffer(t, OfferSpec{Kind: KindUnit, PriceMode: ModeUnitPrice, PriceValue: 80, Active: true})

	for qty := 1; qty <= 6; qty++ {
		q, err := Quote(offer, 100, qty)
		require.NoError(t, err)
		assert.Equal(t, 20.0, q.DiscountPercent, "quantity %d", qty)
		assert.Equal(t, 80.0, q.UnitPrice)
		assert.Equal(t, 80.0*float64(qty), q.TotalPrice)
		assert.True(t, q.OfferApplied)
	}
}

func TestQuote_UnitPriceModeWithoutValueUsesBase(t *testing.T) {
	offer := mustOffer(t, OfferSpec{Kind: KindUnit, PriceMode: ModeUnitPrice, Active: true})

	q, err := Quote(offer, 55.5, 2)
	require.NoError(t, err)
	assert.Equal(t, 55.5, q.UnitPrice)
	assert.Equal(t, 111.0, q.TotalPrice)
	assert.Equal(t, 0.0, q.DiscountPercent)
	assert.True(t, q.OfferApplied)
}

func TestQuote_ZeroBasePriceDoesNotDivide(t *testing.T) {
	offer := mustOffer(t, OfferSpec{Kind: KindUnit, PriceMode: ModeUnitPrice, PriceValue: 50, Active: true})

	q, err := Quote(offer, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, 50.0, q.UnitPrice)
	assert.Equal(t, 0.0, q.DiscountPercent)
}

func TestQuote_PercentOff(t *testing.T) {
	offer := mustOffer(t, OfferSpec{Kind: KindUnit, PriceMode: ModePercentOff, PriceValue: 25, Active: true})

	q, err := Quote(offer, 200, 1)
	require.NoError(t, err)
	assert.Equal(t, 150.0, q.UnitPrice)
	assert.Equal(t, 150.0, q.TotalPrice)
	assert.Equal(t, 25.0, q.DiscountPercent)
	assert.True(t, q.OfferApplied)
}

func TestQuote_PackPriceBundle(t *testing.T) {
	offer := mustOffer(t, OfferSpec{
		Kind:            KindBundle,
		PriceMode:       ModePackPrice,
		PriceValue:      300,
		BundleUnitCount: 3,
		Active:          true,
	})

	q, err := Quote(offer, 120, 3)
	require.NoError(t, err)
	assert.Equal(t, 100.0, q.UnitPrice)
	assert.Equal(t, 300.0, q.TotalPrice)
	assert.InDelta(t, 16.67, q.DiscountPercent, 1e-9)
	assert.True(t, q.OfferApplied)
}

func TestQuote_PackPriceBundleUnitsFromProducts(t *testing.T) {
	offer := mustOffer(t, OfferSpec{
		Kind:       KindBundle,
		PriceMode:  ModePackPrice,
		PriceValue: 300,
		Active:     true,
		Products: []EligibleProduct{
			{ProductID: 1, FixedUnits: 2},
			{ProductID: 2, FixedUnits: 1},
		},
	})
	assert.Equal(t, 3, offer.BundleUnitCount())

	q, err := Quote(offer, 100, 2)
	require.NoError(t, err)
	assert.Equal(t, 100.0, q.UnitPrice)
	assert.Equal(t, 200.0, q.TotalPrice)
	assert.Equal(t, 0.0, q.DiscountPercent)
}

func TestQuote_PackPriceMinimumUsesMinimumUnits(t *testing.T) {
	offer := mustOffer(t, OfferSpec{
		Kind:         KindMinimum,
		PriceMode:    ModePackPrice,
		PriceValue:   360,
		MinimumUnits: 4,
		Active:       true,
	})

	q, err := Quote(offer, 100, 5)
	require.NoError(t, err)
	assert.Equal(t, 90.0, q.UnitPrice)
	assert.Equal(t, 450.0, q.TotalPrice)
	assert.Equal(t, 10.0, q.DiscountPercent)
}

func TestQuote_PackPriceBundleFallsBackToQuantity(t *testing.T) {
	offer := mustOffer(t, OfferSpec{Kind: KindBundle, PriceMode: ModePackPrice, PriceValue: 90, Active: true})

	q, err := Quote(offer, 40, 3)
	require.NoError(t, err)
	assert.Equal(t, 30.0, q.UnitPrice)
	assert.Equal(t, 90.0, q.TotalPrice)
	assert.Equal(t, 25.0, q.DiscountPercent)
}

func TestQuote_PackPriceOtherKinds(t *testing.T) {
	offer := mustOffer(t, OfferSpec{Kind: KindUnit, PriceMode: ModePackPrice, PriceValue: 250, Active: true})

	q, err := Quote(offer, 100, 3)
	require.NoError(t, err)
	assert.Equal(t, 250.0, q.TotalPrice)
	assert.Equal(t, 83.33, q.UnitPrice)
	assert.Equal(t, 16.67, q.DiscountPercent)
	assert.True(t, q.OfferApplied)

	noValue := mustOffer(t, OfferSpec{Kind: KindMixed, PriceMode: ModePackPrice, Active: true})
	q, err = Quote(noValue, 100, 3)
	require.NoError(t, err)
	assert.Equal(t, 300.0, q.TotalPrice)
	assert.Equal(t, 100.0, q.UnitPrice)
	assert.Equal(t, 0.0, q.DiscountPercent)
	assert.True(t, q.OfferApplied)
}

func TestQuote_UnrecognizedModeIsNoOffer(t *testing.T) {
	q, err := Quote(&Offer{}, 12.345, 2)
	require.NoError(t, err)
	assert.False(t, q.OfferApplied)
	assert.Equal(t, 12.35, q.UnitPrice)
	assert.Equal(t, 24.69, q.TotalPrice)
	assert.Equal(t, 0.0, q.DiscountPercent)
}

func TestQuote_RejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		base     float64
		quantity int
		want     error
	}{
		{"negative price", -1, 1, ErrInvalidBasePrice},
		{"nan price", math.NaN(), 1, ErrInvalidBasePrice},
		{"infinite price", math.Inf(1), 1, ErrInvalidBasePrice},
		{"price above maximum", math.MaxFloat64 / 2, 3, ErrInvalidBasePrice},
		{"zero quantity", 10, 0, ErrInvalidQuantity},
		{"negative quantity", 10, -3, ErrInvalidQuantity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Quote(nil, tt.base, tt.quantity)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want))

			var verr *ValidationError
			assert.True(t, errors.As(err, &verr))
		})
	}
}

func TestQuote_HugeQuantityStaysFinite(t *testing.T) {
	offer := mustOffer(t, OfferSpec{Kind: KindUnit, PriceMode: ModeUnitPrice, PriceValue: MaxAmount, Active: true})

	assert.NotPanics(t, func() {
		q, err := Quote(offer, MaxAmount, math.MaxInt32)
		require.NoError(t, err)
		assert.False(t, math.IsInf(q.TotalPrice, 0))
		assert.True(t, q.OfferApplied)
	})
}

func TestQuote_RejectsNonFiniteResult(t *testing.T) {
	// Offers are normally built by NewOffer; this one bypasses its bounds.
	offer := &Offer{kind: KindUnit, mode: ModeUnitPrice, priceValue: math.MaxFloat64, active: true}

	var err error
	assert.NotPanics(t, func() { _, err = Quote(offer, 10, 2) })
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAmountOutOfRange))

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "totalPrice", verr.Field)
}

func TestQuote_Idempotent(t *testing.T) {
	offer := mustOffer(t, OfferSpec{Kind: KindMinimum, PriceMode: ModePackPrice, PriceValue: 1000, MinimumUnits: 7, Active: true})

	first, err := Quote(offer, 151.37, 9)
	require.NoError(t, err)
	second, err := Quote(offer, 151.37, 9)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestQuote_HalfCentRounding(t *testing.T) {
	offer := mustOffer(t, OfferSpec{Kind: KindUnit, PriceMode: ModePercentOff, PriceValue: 15, Active: true})

	for qty := 1; qty <= 4; qty++ {
		q, err := Quote(offer, 10, qty)
		require.NoError(t, err)
		assert.Equal(t, 8.5, q.UnitPrice)
		assert.Equal(t, 8.5*float64(qty), q.TotalPrice)
	}

	half := mustOffer(t, OfferSpec{Kind: KindUnit, PriceMode: ModePercentOff, PriceValue: 50, Active: true})
	q, err := Quote(half, 1.01, 1)
	require.NoError(t, err)
	assert.Equal(t, 0.51, q.UnitPrice)
	assert.Equal(t, 0.51, q.TotalPrice)
}

func TestQuote_MinimumOfferScenario(t *testing.T) {
	offer := mustOffer(t, OfferSpec{
		Kind:         KindMinimum,
		PriceMode:    ModeUnitPrice,
		PriceValue:   1362800,
		MinimumUnits: 3,
		Active:       true,
	})

	for _, qty := range []int{1, 2} {
		q, err := Quote(offer, 1703500, qty)
		require.NoError(t, err)
		assert.Equal(t, 1703500.0, q.UnitPrice)
		assert.False(t, q.OfferApplied)
	}
	for _, qty := range []int{3, 4, 5} {
		q, err := Quote(offer, 1703500, qty)
		require.NoError(t, err)
		assert.Equal(t, 1362800.0, q.UnitPrice)
		assert.Equal(t, 1362800.0*float64(qty), q.TotalPrice)
		assert.InDelta(t, 20.0, q.DiscountPercent, 0.01)
		assert.True(t, q.OfferApplied)
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{8.5, 8.5},
		{0.505, 0.51},
		{1.005, 1.01},
		{2.675, 2.68},
		{0.004, 0},
		{83.3333333, 83.33},
		{-1.005, -1},
		{math.Inf(1), math.Inf(1)},
		{math.Inf(-1), math.Inf(-1)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Round2(tt.in), "Round2(%v)", tt.in)
	}
}
