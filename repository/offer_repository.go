package repository

import (
	"context"
	"time"

	"github.com/Govind-619/OrderSphere/models"
	"github.com/Govind-619/OrderSphere/pricing"
	"gorm.io/gorm"
)

type OfferRepository struct {
	db *gorm.DB
}

func NewOfferRepository(db *gorm.DB) *OfferRepository {
	return &OfferRepository{db: db}
}

func (r *OfferRepository) withProducts(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Products", func(db *gorm.DB) *gorm.DB { return db.Order("offer_products.id ASC") }).
		Preload("Products.Product").
		Preload("Products.Product.Brand").
		Preload("Products.Product.Packaging")
}

// ListActive returns a page of enabled offers, most recent first, and the total count.
func (r *OfferRepository) ListActive(ctx context.Context, offset, limit int) ([]models.Offer, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Offer{}).Where("is_active = ?", true).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var offers []models.Offer
	err := page(r.withProducts(ctx), offset, limit).
		Where("is_active = ?", true).
		Order("start_date DESC, id DESC").
		Find(&offers).Error
	return offers, total, err
}

// ListAll returns every offer regardless of state, for administration.
func (r *OfferRepository) ListAll(ctx context.Context, offset, limit int) ([]models.Offer, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Offer{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var offers []models.Offer
	err := page(r.withProducts(ctx), offset, limit).Order("id DESC").Find(&offers).Error
	return offers, total, err
}

// dateParam binds a calendar day for comparison with date columns.
func dateParam(day time.Time) string {
	return day.Format(pricing.DateLayout)
}

// ListVigent returns the enabled offers whose window contains day.
func (r *OfferRepository) ListVigent(ctx context.Context, day time.Time) ([]models.Offer, error) {
	var offers []models.Offer
	err := r.withProducts(ctx).
		Where("is_active = ? AND start_date <= ? AND end_date >= ?", true, dateParam(day), dateParam(day)).
		Order("start_date ASC, id ASC").
		Find(&offers).Error
	return offers, err
}

// ListVigentForProduct returns the vigent offers that include productID.
func (r *OfferRepository) ListVigentForProduct(ctx context.Context, productID uint, day time.Time) ([]models.Offer, error) {
	var offers []models.Offer
	err := r.withProducts(ctx).
		Where("is_active = ? AND start_date <= ? AND end_date >= ?", true, dateParam(day), dateParam(day)).
		Where("id IN (?)", r.db.Model(&models.OfferProduct{}).Select("offer_id").Where("product_id = ?", productID)).
		Order("end_date ASC, id ASC").
		Find(&offers).Error
	return offers, err
}

func (r *OfferRepository) FindByID(ctx context.Context, id uint) (*models.Offer, error) {
	var offer models.Offer
	if err := r.withProducts(ctx).First(&offer, id).Error; err != nil {
		return nil, translate(err)
	}
	return &offer, nil
}

// FindByIDs loads the given offers. Ids that do not exist are skipped.
func (r *OfferRepository) FindByIDs(ctx context.Context, ids []uint) ([]models.Offer, error) {
	var offers []models.Offer
	if len(ids) == 0 {
		return offers, nil
	}
	err := r.withProducts(ctx).Where("id IN ?", ids).Order("id ASC").Find(&offers).Error
	return offers, err
}

func (r *OfferRepository) Create(ctx context.Context, offer *models.Offer) error {
	return r.db.WithContext(ctx).Create(offer).Error
}

// Update saves the offer fields and replaces its eligible products.
func (r *OfferRepository) Update(ctx context.Context, offer *models.Offer) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Offer
		if err := tx.First(&existing, offer.ID).Error; err != nil {
			return translate(err)
		}

		products := offer.Products
		offer.Products = nil
		if err := tx.Model(offer).Select("*").Omit("CreatedAt", "DeletedAt").Updates(offer).Error; err != nil {
			return err
		}
		if err := tx.Where("offer_id = ?", offer.ID).Delete(&models.OfferProduct{}).Error; err != nil {
			return err
		}
		for i := range products {
			products[i].ID = 0
			products[i].OfferID = offer.ID
		}
		if len(products) > 0 {
			if err := tx.Create(&products).Error; err != nil {
				return err
			}
		}
		offer.Products = products
		return nil
	})
}

// Deactivate disables the offer. Draft items referencing it keep their id
// and fail the vigency check on submission.
func (r *OfferRepository) Deactivate(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&models.Offer{}).Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
