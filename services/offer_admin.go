package services

import (
	"context"
	"errors"

	"github.com/Govind-619/OrderSphere/models"
	"github.com/Govind-619/OrderSphere/pricing"
	"github.com/Govind-619/OrderSphere/utils"
	"github.com/samber/lo"
)

// OfferInput is the back office payload for creating or replacing an offer.
type OfferInput struct {
	Title           string              `json:"title" validate:"required,max=200"`
	Description     string              `json:"description" validate:"max=2000"`
	Kind            string              `json:"kind" validate:"required,oneof=unit minimum bundle mixed"`
	PriceMode       string              `json:"price_mode" validate:"required,oneof=unit_price pack_price percent_off"`
	PriceValue      float64             `json:"price_value" validate:"gte=0,lte=1000000000000"`
	MinimumUnits    int                 `json:"minimum_units" validate:"gte=0"`
	BundleUnitCount int                 `json:"bundle_unit_count" validate:"gte=0"`
	IsActive        *bool               `json:"is_active"`
	StartDate       string              `json:"start_date" validate:"required"`
	EndDate         string              `json:"end_date" validate:"required"`
	Products        []OfferProductInput `json:"products" validate:"required,min=1,dive"`
}

type OfferProductInput struct {
	ProductID  uint `json:"product_id" validate:"required"`
	FixedUnits int  `json:"fixed_units" validate:"gte=0"`
}

// AdminList returns every offer regardless of state.
func (s *OfferService) AdminList(ctx context.Context, offset, limit int) ([]OfferView, int64, error) {
	offers, total, err := s.offers.ListAll(ctx, offset, limit)
	if err != nil {
		return nil, 0, dbError(err)
	}
	return lo.Map(offers, func(o models.Offer, _ int) OfferView { return newOfferView(o) }), total, nil
}

// AdminGet returns an offer regardless of state.
func (s *OfferService) AdminGet(ctx context.Context, id uint) (*OfferView, error) {
	stored, err := s.offers.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Offer not found")
	}
	view := newOfferView(*stored)
	return &view, nil
}

func (s *OfferService) Create(ctx context.Context, in OfferInput) (*OfferView, error) {
	offer, err := s.buildOffer(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := s.offers.Create(ctx, offer); err != nil {
		return nil, dbError(err)
	}
	s.InvalidateFeatured()
	utils.LogInfo("Offer %d created: %s", offer.ID, offer.Title)
	return s.AdminGet(ctx, offer.ID)
}

// Update replaces the definition and products of an offer.
func (s *OfferService) Update(ctx context.Context, id uint, in OfferInput) (*OfferView, error) {
	offer, err := s.buildOffer(ctx, in)
	if err != nil {
		return nil, err
	}
	offer.ID = id
	if err := s.offers.Update(ctx, offer); err != nil {
		return nil, notFoundOr(err, "Offer not found")
	}
	s.InvalidateFeatured()
	utils.LogInfo("Offer %d updated", id)
	return s.AdminGet(ctx, id)
}

// Deactivate disables an offer. Drafts that reference it can no longer be submitted.
func (s *OfferService) Deactivate(ctx context.Context, id uint) error {
	if err := s.offers.Deactivate(ctx, id); err != nil {
		return notFoundOr(err, "Offer not found")
	}
	s.InvalidateFeatured()
	utils.LogInfo("Offer %d deactivated", id)
	return nil
}

func (s *OfferService) buildOffer(ctx context.Context, in OfferInput) (*models.Offer, error) {
	if err := utils.Validate(in); err != nil {
		return nil, err
	}

	start, err := pricing.ParseDate(in.StartDate)
	if err != nil {
		return nil, utils.BadRequestError("Invalid start_date, expected YYYY-MM-DD", err)
	}
	end, err := pricing.ParseDate(in.EndDate)
	if err != nil {
		return nil, utils.BadRequestError("Invalid end_date, expected YYYY-MM-DD", err)
	}

	ids := lo.Map(in.Products, func(p OfferProductInput, _ int) uint { return p.ProductID })
	if dupes := lo.FindDuplicates(ids); len(dupes) > 0 {
		return nil, utils.BadRequestError("A product can appear only once in an offer", nil).
			WithDetails(map[string][]uint{"duplicate_product_ids": dupes})
	}
	found, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, dbError(err)
	}
	foundIDs := lo.Map(found, func(p models.Product, _ int) uint { return p.ID })
	if missing, _ := lo.Difference(ids, foundIDs); len(missing) > 0 {
		return nil, utils.BadRequestError("Unknown products in offer", nil).
			WithDetails(map[string][]uint{"missing_product_ids": missing})
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	offer := &models.Offer{
		Title:           in.Title,
		Description:     in.Description,
		Kind:            in.Kind,
		PriceMode:       in.PriceMode,
		PriceValue:      in.PriceValue,
		MinimumUnits:    in.MinimumUnits,
		BundleUnitCount: in.BundleUnitCount,
		IsActive:        active,
		StartDate:       start,
		EndDate:         end,
		Products: lo.Map(in.Products, func(p OfferProductInput, _ int) models.OfferProduct {
			return models.OfferProduct{ProductID: p.ProductID, FixedUnits: p.FixedUnits}
		}),
	}

	if _, err := offer.ToPricing(); err != nil {
		var verr *pricing.ValidationError
		if errors.As(err, &verr) {
			return nil, utils.BadRequestError("Invalid offer definition", err).
				WithDetails(utils.FieldValidationErrors{{Field: verr.Field, Message: verr.Err.Error()}})
		}
		return nil, utils.BadRequestError("Invalid offer definition", err)
	}
	return offer, nil
}
