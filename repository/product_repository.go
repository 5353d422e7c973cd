package repository

import (
	"context"
	"strings"

	"github.com/Govind-619/OrderSphere/models"
	"gorm.io/gorm"
)

// ProductFilter narrows a catalog search. Empty fields are ignored.
type ProductFilter struct {
	Query     string
	Brand     string
	Packaging string
}

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Brand").Preload("Packaging")
}

// ListAvailable returns the products with stock and a price, by name.
func (r *ProductRepository) ListAvailable(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.withRelations(ctx).
		Where("stock > 0 AND base_price > 0").
		Order("name ASC").
		Find(&products).Error
	return products, err
}

func (r *ProductRepository) Search(ctx context.Context, f ProductFilter) ([]models.Product, error) {
	db := r.withRelations(ctx).Model(&models.Product{}).
		Where("products.stock > 0 AND products.base_price > 0")

	if q := strings.TrimSpace(f.Query); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		db = db.Where("LOWER(products.name) LIKE ? OR LOWER(products.code) LIKE ?", like, like)
	}
	if f.Brand != "" {
		db = db.Joins("JOIN brands ON brands.id = products.brand_id").
			Where("brands.name = ?", f.Brand)
	}
	if f.Packaging != "" {
		db = db.Joins("JOIN packagings ON packagings.id = products.packaging_id").
			Where("packagings.name = ?", f.Packaging)
	}

	var products []models.Product
	err := db.Order("products.name ASC").Find(&products).Error
	return products, err
}

func (r *ProductRepository) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.withRelations(ctx).First(&product, id).Error; err != nil {
		return nil, translate(err)
	}
	return &product, nil
}

func (r *ProductRepository) FindByIDs(ctx context.Context, ids []uint) ([]models.Product, error) {
	var products []models.Product
	if len(ids) == 0 {
		return products, nil
	}
	err := r.withRelations(ctx).Where("id IN ?", ids).Find(&products).Error
	return products, err
}

// Brands returns the distinct brand names of available products.
func (r *ProductRepository) Brands(ctx context.Context) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).Model(&models.Brand{}).
		Distinct("brands.name").
		Joins("JOIN products ON products.brand_id = brands.id AND products.deleted_at IS NULL").
		Where("products.stock > 0").
		Order("brands.name ASC").
		Pluck("brands.name", &names).Error
	return names, err
}

// Packagings returns the distinct packaging names of available products.
func (r *ProductRepository) Packagings(ctx context.Context) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).Model(&models.Packaging{}).
		Distinct("packagings.name").
		Joins("JOIN products ON products.packaging_id = packagings.id AND products.deleted_at IS NULL").
		Where("products.stock > 0").
		Order("packagings.name ASC").
		Pluck("packagings.name", &names).Error
	return names, err
}
