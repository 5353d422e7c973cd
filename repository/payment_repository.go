package repository

import (
	"context"

	"github.com/Govind-619/OrderSphere/models"
	"gorm.io/gorm"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Latest returns up to limit payments of the client, newest first.
func (r *PaymentRepository) Latest(ctx context.Context, clientID uint, limit int) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("received_at DESC, id DESC").
		Limit(limit).
		Find(&payments).Error
	return payments, err
}
