package pricing

import (
	"math"

	"github.com/shopspring/decimal"
)

const (
	// DefaultQuantity is used by callers that do not ask for a quantity.
	DefaultQuantity = 1

	// MaxAmount bounds base prices and offer price values.
	MaxAmount = 1e12
)

// PriceQuote is the price of one line item. Amounts are rounded to cents.
type PriceQuote struct {
	UnitPrice       float64 `json:"unit_price"`
	TotalPrice      float64 `json:"total_price"`
	DiscountPercent float64 `json:"discount_percent"`
	OfferApplied    bool    `json:"offer_applied"`
}

// Quote prices quantity units of a product whose normal unit price is
// basePrice under offer. A nil offer prices at basePrice.
//
// The offer's validity window is not checked here; callers check vigency at
// the moment they use the offer.
func Quote(offer *Offer, basePrice float64, quantity int) (PriceQuote, error) {
	if math.IsNaN(basePrice) || math.IsInf(basePrice, 0) || basePrice < 0 || basePrice > MaxAmount {
		return PriceQuote{}, invalid("basePrice", basePrice, ErrInvalidBasePrice)
	}
	if quantity < 1 {
		return PriceQuote{}, invalid("quantity", quantity, ErrInvalidQuantity)
	}

	qty := float64(quantity)
	unitPrice := basePrice
	totalPrice := basePrice * qty
	discount := 0.0
	applied := false

	if offer == nil {
		return finish(unitPrice, totalPrice, discount, applied)
	}

	if offer.requiresMinimum() && quantity < offer.minimumUnits {
		return finish(basePrice, basePrice*qty, 0, false)
	}

	switch offer.mode {
	case ModeUnitPrice:
		unitPrice = offer.priceValue
		if unitPrice == 0 {
			unitPrice = basePrice
		}
		totalPrice = unitPrice * qty
		discount = discountOf(basePrice, unitPrice)
		applied = true

	case ModePackPrice:
		if offer.kind == KindBundle || offer.kind == KindMinimum {
			unitBase := offer.bundleUnitCount
			if unitBase == 0 {
				unitBase = offer.minimumUnits
			}
			if unitBase == 0 {
				unitBase = quantity
			}
			if unitBase > 0 {
				unitPrice = offer.priceValue / float64(unitBase)
			} else {
				unitPrice = basePrice
			}
			totalPrice = unitPrice * qty
			discount = discountOf(basePrice, unitPrice)
		} else {
			// Only unit and mixed offers land here. No current offer uses
			// this combination, so the formula has seen little real traffic.
			if offer.priceValue != 0 {
				totalPrice = offer.priceValue
			}
			if qty > 0 {
				unitPrice = totalPrice / qty
			} else {
				unitPrice = basePrice
			}
			gross := basePrice * qty
			if gross > 0 {
				discount = (gross - totalPrice) / gross * 100
			}
		}
		applied = true

	case ModePercentOff:
		discount = offer.priceValue
		unitPrice = basePrice * (1 - discount/100)
		totalPrice = unitPrice * qty
		applied = true
	}

	return finish(unitPrice, totalPrice, discount, applied)
}

func discountOf(basePrice, unitPrice float64) float64 {
	if basePrice > 0 {
		return (basePrice - unitPrice) / basePrice * 100
	}
	return 0
}

// finish rounds the amounts. Offers built by NewOffer keep every amount
// finite; anything else is reported instead of rounded.
func finish(unitPrice, totalPrice, discount float64, applied bool) (PriceQuote, error) {
	for _, a := range []struct {
		field string
		value float64
	}{{"unitPrice", unitPrice}, {"totalPrice", totalPrice}, {"discountPercent", discount}} {
		if !finite(a.value) {
			return PriceQuote{}, invalid(a.field, a.value, ErrAmountOutOfRange)
		}
	}
	return PriceQuote{
		UnitPrice:       Round2(unitPrice),
		TotalPrice:      Round2(totalPrice),
		DiscountPercent: Round2(discount),
		OfferApplied:    applied,
	}, nil
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

var (
	hundred = decimal.NewFromInt(100)
	half    = decimal.NewFromFloat(0.5)
)

// Round2 rounds x to cents, half-up: floor(x*100 + 0.5) / 100.
// NaN and infinities are returned unchanged.
func Round2(x float64) float64 {
	if !finite(x) {
		return x
	}
	cents := decimal.NewFromFloat(x).Mul(hundred).Add(half).Floor()
	return cents.Div(hundred).InexactFloat64()
}
