package repository

import (
	"context"
	"time"

	"github.com/Govind-619/OrderSphere/models"
	"gorm.io/gorm"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// ListDeliveredSince returns the orders of clientIDs delivered at or after
// since, newest first, with their items.
func (r *OrderRepository) ListDeliveredSince(ctx context.Context, clientIDs []uint, since time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("client_id IN ? AND delivered_at >= ?", clientIDs, since).
		Order("delivered_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *OrderRepository) FindForClients(ctx context.Context, id uint, clientIDs []uint) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("order_items.id ASC") }).
		Preload("Items.Product").
		Preload("Items.Product.Brand").
		Preload("Items.Product.Packaging").
		Where("client_id IN ?", clientIDs).
		First(&order, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id uint, clientIDs []uint, status string) error {
	res := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND client_id IN ?", id, clientIDs).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountDeliveredBetween counts orders of one account delivered in [from, to).
func (r *OrderRepository) CountDeliveredBetween(ctx context.Context, clientID uint, from, to time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("client_id = ? AND delivered_at >= ? AND delivered_at < ?", clientID, from, to).
		Count(&n).Error
	return n, err
}
