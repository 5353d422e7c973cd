package models

import (
	"time"

	"github.com/Govind-619/OrderSphere/pricing"
	"gorm.io/gorm"
)

// Offer is the persisted form of a promotional offer.
type Offer struct {
	gorm.Model
	Title           string         `gorm:"not null" json:"title"`
	Description     string         `json:"description"`
	Kind            string         `gorm:"not null" json:"kind"`
	PriceMode       string         `gorm:"not null" json:"price_mode"`
	PriceValue      float64        `json:"price_value"`
	MinimumUnits    int            `json:"minimum_units"`
	BundleUnitCount int            `json:"bundle_unit_count"`
	IsActive        bool           `json:"is_active" gorm:"default:true"`
	StartDate       time.Time      `gorm:"type:date;not null" json:"start_date"`
	EndDate         time.Time      `gorm:"type:date;not null" json:"end_date"`
	Products        []OfferProduct `json:"products" gorm:"foreignKey:OfferID"`
}

// OfferProduct links an offer to an eligible product. FixedUnits is the
// number of units of the product that make up one bundle, 0 if not fixed.
type OfferProduct struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	OfferID    uint     `gorm:"index;not null" json:"offer_id"`
	ProductID  uint     `gorm:"index;not null" json:"product_id"`
	Product    *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	FixedUnits int      `json:"fixed_units"`
}

// ToPricing validates the stored definition and converts it for the pricing engine.
func (o Offer) ToPricing() (pricing.Offer, error) {
	products := make([]pricing.EligibleProduct, 0, len(o.Products))
	for _, p := range o.Products {
		products = append(products, pricing.EligibleProduct{ProductID: p.ProductID, FixedUnits: p.FixedUnits})
	}
	return pricing.NewOffer(pricing.OfferSpec{
		ID:              o.ID,
		Title:           o.Title,
		Kind:            pricing.Kind(o.Kind),
		PriceMode:       pricing.PriceMode(o.PriceMode),
		PriceValue:      o.PriceValue,
		MinimumUnits:    o.MinimumUnits,
		BundleUnitCount: o.BundleUnitCount,
		Active:          o.IsActive,
		StartDate:       o.StartDate,
		EndDate:         o.EndDate,
		Products:        products,
	})
}
