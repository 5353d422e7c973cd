// Package pricing computes offer prices for order line items and checks
// whether the offers referenced by an order can still be used.
//
// Everything in this package is pure: no I/O, no clocks, no shared state.
package pricing

import (
	"math"
	"time"
)

// Kind is the quantity condition an offer imposes.
type Kind string

const (
	KindUnit    Kind = "unit"
	KindMinimum Kind = "minimum"
	KindBundle  Kind = "bundle"
	// KindMixed is reserved: bundle composition with a minimum quantity.
	KindMixed Kind = "mixed"
)

// PriceMode defines how PriceValue is interpreted.
type PriceMode string

const (
	// ModeUnitPrice: PriceValue is the final unit price.
	ModeUnitPrice PriceMode = "unit_price"
	// ModePackPrice: PriceValue is the price of the whole pack.
	ModePackPrice PriceMode = "pack_price"
	// ModePercentOff: PriceValue is a percentage (0-100) off the base price.
	ModePercentOff PriceMode = "percent_off"
)

func (k Kind) Valid() bool {
	switch k {
	case KindUnit, KindMinimum, KindBundle, KindMixed:
		return true
	}
	return false
}

func (m PriceMode) Valid() bool {
	switch m {
	case ModeUnitPrice, ModePackPrice, ModePercentOff:
		return true
	}
	return false
}

// EligibleProduct is a product an offer applies to. FixedUnits is the
// product's share of a bundle, zero when the offer is not a bundle.
type EligibleProduct struct {
	ProductID  uint
	FixedUnits int
}

// OfferSpec is the raw definition of an offer as stored or received.
// Zero numeric values mean "not set".
type OfferSpec struct {
	ID              uint
	Title           string
	Kind            Kind
	PriceMode       PriceMode
	PriceValue      float64
	MinimumUnits    int
	BundleUnitCount int
	Active          bool
	StartDate       time.Time
	EndDate         time.Time
	Products        []EligibleProduct
}

// Offer is a validated offer definition. Build it with NewOffer.
type Offer struct {
	id              uint
	title           string
	kind            Kind
	mode            PriceMode
	priceValue      float64
	minimumUnits    int
	bundleUnitCount int
	active          bool
	startDate       time.Time
	endDate         time.Time
	products        []EligibleProduct
}

// NewOffer validates spec and returns the offer it describes.
// When BundleUnitCount is not set it is derived from the products' fixed units.
func NewOffer(spec OfferSpec) (Offer, error) {
	if !spec.Kind.Valid() {
		return Offer{}, invalid("kind", spec.Kind, ErrUnknownKind)
	}
	if !spec.PriceMode.Valid() {
		return Offer{}, invalid("priceMode", spec.PriceMode, ErrUnknownPriceMode)
	}
	if math.IsNaN(spec.PriceValue) || math.IsInf(spec.PriceValue, 0) || spec.PriceValue < 0 || spec.PriceValue > MaxAmount {
		return Offer{}, invalid("priceValue", spec.PriceValue, ErrInvalidPriceValue)
	}
	if spec.PriceMode == ModePercentOff && spec.PriceValue > 100 {
		return Offer{}, invalid("priceValue", spec.PriceValue, ErrInvalidPriceValue)
	}
	if spec.MinimumUnits < 0 {
		return Offer{}, invalid("minimumUnits", spec.MinimumUnits, ErrInvalidUnits)
	}
	if spec.BundleUnitCount < 0 {
		return Offer{}, invalid("bundleUnitCount", spec.BundleUnitCount, ErrInvalidUnits)
	}
	if spec.StartDate.IsZero() || spec.EndDate.IsZero() {
		return Offer{}, invalid("startDate/endDate", nil, ErrInvalidWindow)
	}
	start, end := DateOf(spec.StartDate), DateOf(spec.EndDate)
	if end.Before(start) {
		return Offer{}, invalid("endDate", spec.EndDate.Format(DateLayout), ErrInvalidWindow)
	}

	products := make([]EligibleProduct, len(spec.Products))
	fixedTotal := 0
	for i, p := range spec.Products {
		if p.FixedUnits < 0 {
			return Offer{}, invalid("products.fixedUnits", p.FixedUnits, ErrInvalidUnits)
		}
		fixedTotal += p.FixedUnits
		products[i] = p
	}

	bundleUnits := spec.BundleUnitCount
	if bundleUnits == 0 && (spec.Kind == KindBundle || spec.Kind == KindMixed) {
		bundleUnits = fixedTotal
	}

	return Offer{
		id:              spec.ID,
		title:           spec.Title,
		kind:            spec.Kind,
		mode:            spec.PriceMode,
		priceValue:      spec.PriceValue,
		minimumUnits:    spec.MinimumUnits,
		bundleUnitCount: bundleUnits,
		active:          spec.Active,
		startDate:       start,
		endDate:         end,
		products:        products,
	}, nil
}

func (o Offer) ID() uint             { return o.id }
func (o Offer) Title() string        { return o.title }
func (o Offer) Kind() Kind           { return o.kind }
func (o Offer) PriceMode() PriceMode { return o.mode }
func (o Offer) PriceValue() float64  { return o.priceValue }
func (o Offer) MinimumUnits() int    { return o.minimumUnits }
func (o Offer) BundleUnitCount() int { return o.bundleUnitCount }
func (o Offer) Active() bool         { return o.active }
func (o Offer) StartDate() time.Time { return o.startDate }
func (o Offer) EndDate() time.Time   { return o.endDate }

// Products returns a copy of the eligible products.
func (o Offer) Products() []EligibleProduct {
	out := make([]EligibleProduct, len(o.products))
	copy(out, o.products)
	return out
}

// Includes reports whether productID participates in the offer.
func (o Offer) Includes(productID uint) (EligibleProduct, bool) {
	for _, p := range o.products {
		if p.ProductID == productID {
			return p, true
		}
	}
	return EligibleProduct{}, false
}

// requiresMinimum reports whether the minimum-quantity gate applies.
func (o Offer) requiresMinimum() bool {
	return (o.kind == KindMinimum || o.kind == KindMixed) && o.minimumUnits > 0
}

// ReferenceQuantity is the quantity used when a listing shows an offer price
// without a requested quantity: the product's fixed units, else the
// minimum units, else one.
func (o Offer) ReferenceQuantity(p EligibleProduct) int {
	if p.FixedUnits > 0 {
		return p.FixedUnits
	}
	if o.minimumUnits > 0 {
		return o.minimumUnits
	}
	return DefaultQuantity
}
