package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/Govind-619/OrderSphere/models"
	"github.com/Govind-619/OrderSphere/pricing"
	"github.com/Govind-619/OrderSphere/utils"
	"github.com/patrickmn/go-cache"
	"github.com/samber/lo"
)

const (
	featuredOffersKey = "featured-offers"
	featuredOffersTTL = time.Minute
)

// QuoteRequest asks for the price of a product under an offer.
type QuoteRequest struct {
	OfferID   uint `json:"offer_id" binding:"required"`
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"omitempty,min=1"`
}

type QuoteResult struct {
	OfferID       uint    `json:"offer_id"`
	ProductID     uint    `json:"product_id"`
	ProductName   string  `json:"product_name"`
	Quantity      int     `json:"quantity"`
	OriginalPrice float64 `json:"original_price"`
	pricing.PriceQuote
}

type OfferService struct {
	offers   OfferStore
	products ProductStore
	clock    Clock
	metrics  *utils.Metrics
	featured *cache.Cache
}

func NewOfferService(offers OfferStore, products ProductStore, clock Clock, metrics *utils.Metrics) *OfferService {
	return &OfferService{
		offers:   offers,
		products: products,
		clock:    clock,
		metrics:  metrics,
		featured: cache.New(featuredOffersTTL, 2*featuredOffersTTL),
	}
}

// List returns a page of enabled offers with their products.
func (s *OfferService) List(ctx context.Context, offset, limit int) ([]OfferView, int64, error) {
	offers, total, err := s.offers.ListActive(ctx, offset, limit)
	if err != nil {
		return nil, 0, dbError(err)
	}
	return lo.Map(offers, func(o models.Offer, _ int) OfferView { return newOfferView(o) }), total, nil
}

// Get returns an enabled offer with every product quoted at its reference quantity.
func (s *OfferService) Get(ctx context.Context, id uint) (*OfferView, error) {
	stored, err := s.offers.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Offer not found")
	}
	if !stored.IsActive {
		return nil, utils.NotFoundError("Offer not found", nil)
	}
	offer, err := stored.ToPricing()
	if err != nil {
		return nil, invalidStoredOffer(stored.ID, err)
	}

	view := newOfferView(*stored)
	s.quoteProducts(&view, offer, func(p OfferProductView) int {
		return offer.ReferenceQuantity(pricing.EligibleProduct{ProductID: p.ProductID, FixedUnits: p.FixedUnits})
	})
	return &view, nil
}

// CurrentMonth lists the vigent offers that started this month. Only
// products with stock are kept and offers left without products are omitted.
func (s *OfferService) CurrentMonth(ctx context.Context) ([]OfferView, error) {
	now := s.clock()
	first, last := monthBounds(now)

	stored, err := s.offers.ListVigent(ctx, pricing.DateOf(now))
	if err != nil {
		return nil, dbError(err)
	}

	views := make([]OfferView, 0, len(stored))
	for _, o := range stored {
		if o.StartDate.Before(first) || o.StartDate.After(last) {
			continue
		}
		offer, err := o.ToPricing()
		if err != nil {
			utils.LogError("Skipping offer %d: %v", o.ID, err)
			continue
		}

		view := newOfferView(o)
		view.Products = lo.Filter(view.Products, func(p OfferProductView, _ int) bool { return p.Stock > 0 })
		if len(view.Products) == 0 {
			continue
		}
		s.quoteProducts(&view, offer, func(p OfferProductView) int {
			return offer.ReferenceQuantity(pricing.EligibleProduct{ProductID: p.ProductID, FixedUnits: p.FixedUnits})
		})
		views = append(views, view)
	}
	return views, nil
}

// Featured returns the three best discounts among vigent offers running
// entirely within this month. Results are cached for a minute.
func (s *OfferService) Featured(ctx context.Context) ([]OfferView, error) {
	if cached, ok := s.featured.Get(featuredOffersKey); ok {
		s.metrics.FeaturedCache(true)
		return cloneOfferViews(cached.([]OfferView)), nil
	}
	s.metrics.FeaturedCache(false)

	now := s.clock()
	first, last := monthBounds(now)

	stored, err := s.offers.ListVigent(ctx, pricing.DateOf(now))
	if err != nil {
		return nil, dbError(err)
	}

	views := make([]OfferView, 0, len(stored))
	for _, o := range stored {
		if o.StartDate.Before(first) || o.EndDate.After(last) {
			continue
		}
		offer, err := o.ToPricing()
		if err != nil {
			utils.LogError("Skipping offer %d: %v", o.ID, err)
			continue
		}

		view := newOfferView(o)
		lead, ok := lo.Find(view.Products, func(p OfferProductView) bool { return p.Stock > 0 })
		if !ok {
			continue
		}
		view.Products = []OfferProductView{lead}
		qty := offer.MinimumUnits()
		if qty == 0 {
			qty = pricing.DefaultQuantity
		}
		s.quoteProducts(&view, offer, func(OfferProductView) int { return qty })
		views = append(views, view)
	}

	slices.SortStableFunc(views, func(a, b OfferView) int {
		switch {
		case a.DiscountPercent > b.DiscountPercent:
			return -1
		case a.DiscountPercent < b.DiscountPercent:
			return 1
		}
		return 0
	})
	if len(views) > utils.FeaturedOffersLimit {
		views = views[:utils.FeaturedOffersLimit]
	}

	s.featured.SetDefault(featuredOffersKey, views)
	return cloneOfferViews(views), nil
}

// cloneOfferViews copies views and their product lists so callers never
// share memory with the cache.
func cloneOfferViews(views []OfferView) []OfferView {
	return lo.Map(views, func(v OfferView, _ int) OfferView {
		v.Products = slices.Clone(v.Products)
		return v
	})
}

// ByProduct lists the vigent offers that include the product, each quoting
// that product at its reference quantity.
func (s *OfferService) ByProduct(ctx context.Context, productID uint) ([]OfferView, error) {
	stored, err := s.offers.ListVigentForProduct(ctx, productID, pricing.DateOf(s.clock()))
	if err != nil {
		return nil, dbError(err)
	}

	views := make([]OfferView, 0, len(stored))
	for _, o := range stored {
		offer, err := o.ToPricing()
		if err != nil {
			utils.LogError("Skipping offer %d: %v", o.ID, err)
			continue
		}
		view := newOfferView(o)
		view.Products = lo.Filter(view.Products, func(p OfferProductView, _ int) bool { return p.ProductID == productID })
		s.quoteProducts(&view, offer, func(p OfferProductView) int {
			return offer.ReferenceQuantity(pricing.EligibleProduct{ProductID: p.ProductID, FixedUnits: p.FixedUnits})
		})
		views = append(views, view)
	}
	return views, nil
}

// Quote prices a product under an enabled offer it belongs to.
func (s *OfferService) Quote(ctx context.Context, req QuoteRequest) (*QuoteResult, error) {
	if req.Quantity == 0 {
		req.Quantity = pricing.DefaultQuantity
	}

	stored, err := s.offers.FindByID(ctx, req.OfferID)
	if err != nil {
		return nil, notFoundOr(err, "Offer not found")
	}
	if !stored.IsActive {
		return nil, utils.NotFoundError("Offer not found", nil)
	}
	product, err := s.products.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, notFoundOr(err, "Product not found")
	}

	offer, err := stored.ToPricing()
	if err != nil {
		return nil, invalidStoredOffer(stored.ID, err)
	}
	if _, ok := offer.Includes(product.ID); !ok {
		return nil, utils.BadRequestError("This product is not part of the offer", nil)
	}
	if offer.Kind() == pricing.KindMinimum && req.Quantity < offer.MinimumUnits() {
		return nil, utils.BadRequestError(
			fmt.Sprintf("The offer requires at least %d units", offer.MinimumUnits()), nil,
		).WithDetails(map[string]int{"minimum_required": offer.MinimumUnits()})
	}

	quote, err := pricing.Quote(&offer, product.BasePrice, req.Quantity)
	if err != nil {
		return nil, pricingError(err)
	}
	s.metrics.QuoteComputed(quote.OfferApplied)

	return &QuoteResult{
		OfferID:       offer.ID(),
		ProductID:     product.ID,
		ProductName:   product.Name,
		Quantity:      req.Quantity,
		OriginalPrice: product.BasePrice,
		PriceQuote:    quote,
	}, nil
}

// quoteProducts prices each product of view at the quantity qtyFor picks and
// copies the first product's quote to the offer's reference fields.
func (s *OfferService) quoteProducts(view *OfferView, offer pricing.Offer, qtyFor func(OfferProductView) int) {
	for i := range view.Products {
		p := &view.Products[i]
		qty := qtyFor(*p)
		quote, err := pricing.Quote(&offer, p.BasePrice, qty)
		if err != nil {
			utils.LogError("Cannot quote product %d under offer %d: %v", p.ProductID, offer.ID(), err)
			continue
		}
		s.metrics.QuoteComputed(quote.OfferApplied)
		p.ReferenceQuantity = qty
		p.Quote = &quote
	}

	if len(view.Products) > 0 && view.Products[0].Quote != nil {
		view.OriginalPrice = view.Products[0].BasePrice
		view.OfferPrice = view.Products[0].Quote.UnitPrice
		view.DiscountPercent = view.Products[0].Quote.DiscountPercent
	}
}

// InvalidateFeatured drops the cached featured offers.
func (s *OfferService) InvalidateFeatured() {
	s.featured.Delete(featuredOffersKey)
}

func pricingError(err error) error {
	var verr *pricing.ValidationError
	if errors.As(err, &verr) {
		return utils.BadRequestError("Invalid pricing input", err).
			WithDetails(utils.FieldValidationErrors{{Field: verr.Field, Message: verr.Err.Error()}})
	}
	return utils.NewAppError(http.StatusInternalServerError, "Pricing error", err)
}

func invalidStoredOffer(id uint, err error) error {
	return utils.UnprocessableError(fmt.Sprintf("Offer %d has an invalid definition", id), err)
}
