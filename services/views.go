package services

import (
	"time"

	"github.com/Govind-619/OrderSphere/models"
	"github.com/Govind-619/OrderSphere/pricing"
)

type PackagingView struct {
	Name   string  `json:"name"`
	Liters float64 `json:"liters,omitempty"`
	Type   string  `json:"type,omitempty"`
}

func packagingView(p *models.Packaging) *PackagingView {
	if p == nil {
		return nil
	}
	return &PackagingView{Name: p.Name, Liters: p.Liters, Type: p.Type}
}

// ProductView is a catalog product with the client's three markup prices.
type ProductView struct {
	ID        uint           `json:"id"`
	Code      string         `json:"code"`
	Name      string         `json:"name"`
	BasePrice float64        `json:"base_price"`
	Stock     int            `json:"stock"`
	Brand     string         `json:"brand,omitempty"`
	Packaging *PackagingView `json:"packaging,omitempty"`
	Price1    float64        `json:"price_1"`
	Price2    float64        `json:"price_2"`
	Price3    float64        `json:"price_3"`
}

// markup applies a percentage on top of the base price.
func markup(base, pct float64) float64 {
	return pricing.Round2(base * (1 + pct/100))
}

func newProductView(p models.Product, client models.Client) ProductView {
	return ProductView{
		ID:        p.ID,
		Code:      p.Code,
		Name:      p.Name,
		BasePrice: p.BasePrice,
		Stock:     p.Stock,
		Brand:     p.BrandName(),
		Packaging: packagingView(p.Packaging),
		Price1:    markup(p.BasePrice, client.Markup1),
		Price2:    markup(p.BasePrice, client.Markup2),
		Price3:    markup(p.BasePrice, client.Markup3),
	}
}

// OfferProductView is an eligible product of an offer, optionally quoted at
// its reference quantity.
type OfferProductView struct {
	ProductID         uint                `json:"product_id"`
	Code              string              `json:"code"`
	Name              string              `json:"name"`
	Brand             string              `json:"brand,omitempty"`
	Packaging         *PackagingView      `json:"packaging,omitempty"`
	BasePrice         float64             `json:"base_price"`
	Stock             int                 `json:"stock"`
	FixedUnits        int                 `json:"fixed_units"`
	ReferenceQuantity int                 `json:"reference_quantity,omitempty"`
	Quote             *pricing.PriceQuote `json:"quote,omitempty"`
}

// OfferView is the client-facing form of an offer.
type OfferView struct {
	ID              uint               `json:"id"`
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	Kind            string             `json:"kind"`
	PriceMode       string             `json:"price_mode"`
	PriceValue      float64            `json:"price_value"`
	MinimumUnits    int                `json:"minimum_units"`
	BundleUnitCount int                `json:"bundle_unit_count"`
	IsActive        bool               `json:"is_active"`
	StartDate       string             `json:"start_date"`
	EndDate         string             `json:"end_date"`
	Products        []OfferProductView `json:"products"`

	// Reference pricing, taken from the first listed product.
	OriginalPrice   float64 `json:"original_price,omitempty"`
	OfferPrice      float64 `json:"offer_price,omitempty"`
	DiscountPercent float64 `json:"discount_percent"`
}

func newOfferView(o models.Offer) OfferView {
	view := OfferView{
		ID:              o.ID,
		Title:           o.Title,
		Description:     o.Description,
		Kind:            o.Kind,
		PriceMode:       o.PriceMode,
		PriceValue:      o.PriceValue,
		MinimumUnits:    o.MinimumUnits,
		BundleUnitCount: o.BundleUnitCount,
		IsActive:        o.IsActive,
		StartDate:       o.StartDate.Format(pricing.DateLayout),
		EndDate:         o.EndDate.Format(pricing.DateLayout),
		Products:        make([]OfferProductView, 0, len(o.Products)),
	}
	for _, op := range o.Products {
		pv := OfferProductView{ProductID: op.ProductID, FixedUnits: op.FixedUnits}
		if op.Product != nil {
			pv.Code = op.Product.Code
			pv.Name = op.Product.Name
			pv.Brand = op.Product.BrandName()
			pv.Packaging = packagingView(op.Product.Packaging)
			pv.BasePrice = op.Product.BasePrice
			pv.Stock = op.Product.Stock
		}
		view.Products = append(view.Products, pv)
	}
	return view
}

// DraftItemView is one line of a draft order.
type DraftItemView struct {
	ID              uint    `json:"id"`
	ProductID       uint    `json:"product_id"`
	Code            string  `json:"code,omitempty"`
	ProductName     string  `json:"product_name"`
	Description     string  `json:"description"`
	Quantity        int     `json:"quantity"`
	Unit            string  `json:"unit"`
	BasePrice       float64 `json:"base_price"`
	UnitPrice       float64 `json:"unit_price"`
	TotalPrice      float64 `json:"total_price"`
	DiscountPercent float64 `json:"discount_percent"`
	OfferApplied    bool    `json:"offer_applied"`
	OfferID         *uint   `json:"offer_id"`
	Notes           string  `json:"notes"`
}

// DraftView is a draft order with its estimated total.
type DraftView struct {
	ID             uint            `json:"id"`
	ClientID       uint            `json:"client_id"`
	Status         string          `json:"status"`
	Notes          string          `json:"notes"`
	CreatedAt      string          `json:"created_at"`
	SubmittedAt    *string         `json:"submitted_at"`
	ItemCount      int             `json:"item_count"`
	EstimatedTotal float64         `json:"estimated_total"`
	Items          []DraftItemView `json:"items"`
}

func newDraftView(d models.DraftOrder) DraftView {
	view := DraftView{
		ID:             d.ID,
		ClientID:       d.ClientID,
		Status:         d.Status,
		Notes:          d.Notes,
		CreatedAt:      d.CreatedAt.Format(time.RFC3339),
		ItemCount:      len(d.Items),
		EstimatedTotal: pricing.Round2(d.EstimatedTotal()),
		Items:          make([]DraftItemView, 0, len(d.Items)),
	}
	if d.SubmittedAt != nil {
		s := d.SubmittedAt.Format(time.RFC3339)
		view.SubmittedAt = &s
	}
	for _, it := range d.Items {
		iv := DraftItemView{
			ID:              it.ID,
			ProductID:       it.ProductID,
			Description:     it.Description,
			ProductName:     it.Description,
			Quantity:        it.Quantity,
			Unit:            it.Unit,
			BasePrice:       it.BasePrice,
			UnitPrice:       it.UnitPrice,
			TotalPrice:      it.TotalPrice,
			DiscountPercent: it.DiscountPercent,
			OfferApplied:    it.OfferApplied,
			OfferID:         it.OfferID,
			Notes:           it.Notes,
		}
		if it.Product != nil {
			iv.Code = it.Product.Code
			iv.ProductName = it.Product.Name
		}
		view.Items = append(view.Items, iv)
	}
	return view
}
