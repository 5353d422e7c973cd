package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Govind-619/OrderSphere/models"
	"github.com/Govind-619/OrderSphere/pricing"
	"github.com/Govind-619/OrderSphere/repository"
	"github.com/Govind-619/OrderSphere/utils"
	"github.com/samber/lo"
)

const defaultItemUnit = "unit"

type DraftItemInput struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
	Unit      string `json:"unit" binding:"max=20"`
	Notes     string `json:"notes" binding:"max=500"`
	OfferID   *uint  `json:"offer_id"`
}

// DraftInput is the body of draft create and replace requests. Prices are
// always computed server side from the current catalog.
type DraftInput struct {
	Notes string           `json:"notes" binding:"max=1000"`
	Items []DraftItemInput `json:"items" binding:"required,min=1,dive"`
}

// SubmissionNotifier is told about every successfully submitted draft.
type SubmissionNotifier interface {
	DraftSubmitted(ctx context.Context, client models.Client, draft DraftView) error
}

type DraftService struct {
	drafts   DraftStore
	products ProductStore
	offers   OfferStore
	clock    Clock
	metrics  *utils.Metrics
	notifier SubmissionNotifier
}

func NewDraftService(drafts DraftStore, products ProductStore, offers OfferStore, clock Clock, metrics *utils.Metrics, notifier SubmissionNotifier) *DraftService {
	return &DraftService{
		drafts:   drafts,
		products: products,
		offers:   offers,
		clock:    clock,
		metrics:  metrics,
		notifier: notifier,
	}
}

func (s *DraftService) Create(ctx context.Context, client models.Client, in DraftInput) (*DraftView, error) {
	items, err := s.priceItems(ctx, in.Items)
	if err != nil {
		return nil, err
	}

	draft := &models.DraftOrder{
		ClientID: client.ID,
		Notes:    in.Notes,
		Status:   models.DraftStatusDraft,
		Items:    items,
	}
	if err := s.drafts.Create(ctx, draft); err != nil {
		return nil, dbError(err)
	}
	utils.LogInfo("Draft order %d created by client %d with %d items", draft.ID, client.ID, len(items))

	view := newDraftView(*draft)
	return &view, nil
}

func (s *DraftService) Get(ctx context.Context, client models.Client, id uint) (*DraftView, error) {
	draft, err := s.load(ctx, client, id)
	if err != nil {
		return nil, err
	}
	view := newDraftView(*draft)
	return &view, nil
}

// List returns the drafts of the client's accounts, newest first. status
// may be empty, "draft" or "submitted".
func (s *DraftService) List(ctx context.Context, client models.Client, status string, offset, limit int) ([]DraftView, int64, error) {
	if status != "" && status != models.DraftStatusDraft && status != models.DraftStatusSubmitted {
		return nil, 0, utils.BadRequestError(fmt.Sprintf("Invalid status %q", status), nil)
	}
	drafts, total, err := s.drafts.List(ctx, repository.DraftFilter{
		ClientIDs: client.AccountIDs(),
		Status:    status,
		Offset:    offset,
		Limit:     limit,
	})
	if err != nil {
		return nil, 0, dbError(err)
	}
	return lo.Map(drafts, func(d models.DraftOrder, _ int) DraftView { return newDraftView(d) }), total, nil
}

// Update replaces the notes and items of a draft still in draft status.
func (s *DraftService) Update(ctx context.Context, client models.Client, id uint, in DraftInput) (*DraftView, error) {
	draft, err := s.load(ctx, client, id)
	if err != nil {
		return nil, err
	}
	if !draft.IsEditable() {
		return nil, utils.ConflictError("Only draft orders in draft status can be modified", nil)
	}

	items, err := s.priceItems(ctx, in.Items)
	if err != nil {
		return nil, err
	}
	draft.Notes = in.Notes
	draft.Items = items
	if err := s.drafts.ReplaceItems(ctx, draft); err != nil {
		return nil, stateError(err, "Only draft orders in draft status can be modified")
	}
	utils.LogInfo("Draft order %d updated with %d items", draft.ID, len(items))

	view := newDraftView(*draft)
	return &view, nil
}

func (s *DraftService) Delete(ctx context.Context, client models.Client, id uint) error {
	draft, err := s.load(ctx, client, id)
	if err != nil {
		return err
	}
	if !draft.IsEditable() {
		return utils.ConflictError("Only draft orders in draft status can be deleted", nil)
	}
	if err := s.drafts.Delete(ctx, draft.ID); err != nil {
		return stateError(err, "Only draft orders in draft status can be deleted")
	}
	utils.LogInfo("Draft order %d deleted", draft.ID)
	return nil
}

// Submit checks every offer referenced by the draft against today's date
// and moves the draft to submitted. If any offer is expired, disabled or
// not yet started the draft is left as is and an *OfferVigencyError is
// returned.
func (s *DraftService) Submit(ctx context.Context, client models.Client, id uint) (*DraftView, error) {
	draft, err := s.load(ctx, client, id)
	if err != nil {
		return nil, err
	}
	if !draft.IsEditable() {
		return nil, utils.ConflictError("Draft order has already been submitted", nil)
	}
	if len(draft.Items) == 0 {
		return nil, utils.BadRequestError("Draft order has no items", nil)
	}

	now := s.clock()
	if verr, err := s.checkOffers(ctx, *draft, now); err != nil {
		s.metrics.DraftSubmitted("error")
		return nil, err
	} else if verr != nil {
		s.metrics.DraftSubmitted("rejected")
		utils.LogInfo("Draft order %d rejected: %v", draft.ID, verr)
		return nil, verr
	}

	if err := s.drafts.MarkSubmitted(ctx, draft.ID, now); err != nil {
		s.metrics.DraftSubmitted("error")
		return nil, stateError(err, "Draft order has already been submitted")
	}
	draft.Status = models.DraftStatusSubmitted
	draft.SubmittedAt = &now
	s.metrics.DraftSubmitted("submitted")
	utils.LogInfo("Draft order %d submitted by client %d", draft.ID, client.ID)

	view := newDraftView(*draft)
	if s.notifier != nil {
		if err := s.notifier.DraftSubmitted(ctx, client, view); err != nil {
			utils.LogError("Failed to send submission notice for draft %d: %v", draft.ID, err)
		}
	}
	return &view, nil
}

// SubmittedBetween returns the submitted drafts of every client in [from, to).
func (s *DraftService) SubmittedBetween(ctx context.Context, from, to time.Time) ([]models.DraftOrder, error) {
	if !to.After(from) {
		return nil, utils.BadRequestError("The end of the range must be after its start", nil)
	}
	drafts, err := s.drafts.ListSubmittedBetween(ctx, from, to)
	if err != nil {
		return nil, dbError(err)
	}
	return drafts, nil
}

// checkOffers runs the vigency guard over the distinct offers of draft.
// Offers that no longer exist count as inactive.
func (s *DraftService) checkOffers(ctx context.Context, draft models.DraftOrder, now time.Time) (*OfferVigencyError, error) {
	offerIDs := lo.Uniq(lo.FilterMap(draft.Items, func(it models.DraftOrderItem, _ int) (uint, bool) {
		if it.OfferID == nil {
			return 0, false
		}
		return *it.OfferID, true
	}))
	if len(offerIDs) == 0 {
		return nil, nil
	}

	stored, err := s.offers.FindByIDs(ctx, offerIDs)
	if err != nil {
		return nil, dbError(err)
	}
	byID := lo.KeyBy(stored, func(o models.Offer) uint { return o.ID })

	offers := make([]pricing.Offer, 0, len(stored))
	for _, o := range stored {
		po, err := o.ToPricing()
		if err != nil {
			return nil, invalidStoredOffer(o.ID, err)
		}
		offers = append(offers, po)
	}

	report := pricing.CheckVigency(offers, now)
	reasons := make(map[uint]pricing.Vigency)
	for _, o := range report.Expired {
		reasons[o.ID()] = pricing.Expired
	}
	for _, o := range report.Inactive {
		reasons[o.ID()] = pricing.Inactive
	}
	for _, o := range report.NotStarted {
		reasons[o.ID()] = pricing.NotStarted
	}
	for _, id := range offerIDs {
		if _, ok := byID[id]; !ok {
			reasons[id] = pricing.Inactive
		}
	}
	if len(reasons) == 0 {
		return nil, nil
	}

	verr := &OfferVigencyError{DraftID: draft.ID}
	for _, id := range offerIDs {
		reason, rejected := reasons[id]
		if !rejected {
			continue
		}
		rejectedOffer := RejectedOffer{OfferID: id, Reason: reason}
		if o, ok := byID[id]; ok {
			rejectedOffer.Title = o.Title
			rejectedOffer.EndDate = o.EndDate.Format(pricing.DateLayout)
		}
		for _, it := range draft.Items {
			if it.OfferID == nil || *it.OfferID != id {
				continue
			}
			name := it.Description
			if it.Product != nil {
				name = it.Product.Name
			}
			rejectedOffer.Items = append(rejectedOffer.Items, AffectedItem{
				ItemID:      it.ID,
				ProductID:   it.ProductID,
				ProductName: name,
				Quantity:    it.Quantity,
			})
		}
		verr.Offers = append(verr.Offers, rejectedOffer)
	}
	return verr, nil
}

// priceItems resolves products and offers for the requested lines and
// quotes each one at the product's current base price.
func (s *DraftService) priceItems(ctx context.Context, inputs []DraftItemInput) ([]models.DraftOrderItem, error) {
	if len(inputs) == 0 {
		return nil, utils.BadRequestError("A draft order needs at least one item", nil)
	}

	productIDs := lo.Uniq(lo.Map(inputs, func(in DraftItemInput, _ int) uint { return in.ProductID }))
	products, err := s.products.FindByIDs(ctx, productIDs)
	if err != nil {
		return nil, dbError(err)
	}
	productByID := lo.KeyBy(products, func(p models.Product) uint { return p.ID })
	if missing, _ := lo.Difference(productIDs, lo.Keys(productByID)); len(missing) > 0 {
		return nil, utils.BadRequestError("Unknown products", nil).
			WithDetails(map[string][]uint{"missing_product_ids": missing})
	}

	offerIDs := lo.Uniq(lo.FilterMap(inputs, func(in DraftItemInput, _ int) (uint, bool) {
		if in.OfferID == nil {
			return 0, false
		}
		return *in.OfferID, true
	}))
	offerByID := make(map[uint]pricing.Offer, len(offerIDs))
	if len(offerIDs) > 0 {
		stored, err := s.offers.FindByIDs(ctx, offerIDs)
		if err != nil {
			return nil, dbError(err)
		}
		for _, o := range stored {
			po, err := o.ToPricing()
			if err != nil {
				return nil, invalidStoredOffer(o.ID, err)
			}
			offerByID[o.ID] = po
		}
		if missing, _ := lo.Difference(offerIDs, lo.Keys(offerByID)); len(missing) > 0 {
			return nil, utils.BadRequestError("Unknown offers", nil).
				WithDetails(map[string][]uint{"missing_offer_ids": missing})
		}
	}

	now := s.clock()
	items := make([]models.DraftOrderItem, 0, len(inputs))
	for i, in := range inputs {
		product := productByID[in.ProductID]
		if product.Stock <= 0 {
			return nil, utils.BadRequestError(fmt.Sprintf("Product %s is out of stock", product.Name), nil).
				WithDetails(map[string]int{"item": i})
		}

		var offer *pricing.Offer
		if in.OfferID != nil {
			o := offerByID[*in.OfferID]
			if v := o.VigencyOn(now); v != pricing.Vigent {
				return nil, utils.BadRequestError(fmt.Sprintf("Offer %d cannot be used today (%s)", o.ID(), v), nil).
					WithDetails(map[string]int{"item": i})
			}
			if _, ok := o.Includes(product.ID); !ok {
				return nil, utils.BadRequestError(fmt.Sprintf("Product %s is not part of offer %d", product.Name, o.ID()), nil).
					WithDetails(map[string]int{"item": i})
			}
			offer = &o
		}

		quote, err := pricing.Quote(offer, product.BasePrice, in.Quantity)
		if err != nil {
			return nil, pricingError(err)
		}
		s.metrics.QuoteComputed(quote.OfferApplied)

		unit := in.Unit
		if unit == "" {
			unit = defaultItemUnit
		}
		p := product
		items = append(items, models.DraftOrderItem{
			ProductID:       product.ID,
			Product:         &p,
			Description:     product.Name,
			Quantity:        in.Quantity,
			Unit:            unit,
			BasePrice:       product.BasePrice,
			UnitPrice:       quote.UnitPrice,
			TotalPrice:      quote.TotalPrice,
			DiscountPercent: quote.DiscountPercent,
			OfferApplied:    quote.OfferApplied,
			OfferID:         in.OfferID,
			Notes:           in.Notes,
		})
	}
	return items, nil
}

func (s *DraftService) load(ctx context.Context, client models.Client, id uint) (*models.DraftOrder, error) {
	draft, err := s.drafts.FindForClients(ctx, id, client.AccountIDs())
	if err != nil {
		return nil, notFoundOr(err, "Draft order not found")
	}
	return draft, nil
}

func stateError(err error, message string) error {
	if errors.Is(err, repository.ErrStateChanged) {
		return utils.ConflictError(message, nil)
	}
	return dbError(err)
}
