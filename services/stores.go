// Package services holds the order-taking business logic. Services depend on
// the store interfaces below, which the gorm repositories satisfy.
package services

import (
	"context"
	"time"

	"github.com/Govind-619/OrderSphere/models"
	"github.com/Govind-619/OrderSphere/repository"
)

type ProductStore interface {
	ListAvailable(ctx context.Context) ([]models.Product, error)
	Search(ctx context.Context, f repository.ProductFilter) ([]models.Product, error)
	FindByID(ctx context.Context, id uint) (*models.Product, error)
	FindByIDs(ctx context.Context, ids []uint) ([]models.Product, error)
	Brands(ctx context.Context) ([]string, error)
	Packagings(ctx context.Context) ([]string, error)
}

type OfferStore interface {
	ListActive(ctx context.Context, offset, limit int) ([]models.Offer, int64, error)
	ListAll(ctx context.Context, offset, limit int) ([]models.Offer, int64, error)
	ListVigent(ctx context.Context, day time.Time) ([]models.Offer, error)
	ListVigentForProduct(ctx context.Context, productID uint, day time.Time) ([]models.Offer, error)
	FindByID(ctx context.Context, id uint) (*models.Offer, error)
	FindByIDs(ctx context.Context, ids []uint) ([]models.Offer, error)
	Create(ctx context.Context, offer *models.Offer) error
	Update(ctx context.Context, offer *models.Offer) error
	Deactivate(ctx context.Context, id uint) error
}

type DraftStore interface {
	Create(ctx context.Context, draft *models.DraftOrder) error
	FindForClients(ctx context.Context, id uint, clientIDs []uint) (*models.DraftOrder, error)
	List(ctx context.Context, f repository.DraftFilter) ([]models.DraftOrder, int64, error)
	ReplaceItems(ctx context.Context, draft *models.DraftOrder) error
	MarkSubmitted(ctx context.Context, id uint, at time.Time) error
	Delete(ctx context.Context, id uint) error
	CountOpen(ctx context.Context, clientIDs []uint) (int64, error)
	ListSubmittedBetween(ctx context.Context, from, to time.Time) ([]models.DraftOrder, error)
}

type OrderStore interface {
	ListDeliveredSince(ctx context.Context, clientIDs []uint, since time.Time) ([]models.Order, error)
	FindForClients(ctx context.Context, id uint, clientIDs []uint) (*models.Order, error)
	UpdateStatus(ctx context.Context, id uint, clientIDs []uint, status string) error
	CountDeliveredBetween(ctx context.Context, clientID uint, from, to time.Time) (int64, error)
}

type PaymentStore interface {
	Latest(ctx context.Context, clientID uint, limit int) ([]models.Payment, error)
}

type AccountStore interface {
	FindClientByUsername(ctx context.Context, username string) (*models.Client, error)
	FindClientByID(ctx context.Context, id uint) (*models.Client, error)
	UpdateClientProfile(ctx context.Context, client *models.Client) error
	UpdateClientPassword(ctx context.Context, id uint, hash string) error
	TouchClientLogin(ctx context.Context, id uint, at time.Time) error
	FindAdminByEmail(ctx context.Context, email string) (*models.Admin, error)
	FindAdminByID(ctx context.Context, id uint) (*models.Admin, error)
	TouchAdminLogin(ctx context.Context, id uint, at time.Time) error
	RevokeToken(ctx context.Context, token string, expiresAt time.Time) error
	IsTokenRevoked(ctx context.Context, token string) (bool, error)
	PurgeExpiredTokens(ctx context.Context, now time.Time) (int64, error)
}

// Clock returns the current time in the distributor's timezone.
type Clock func() time.Time

// NewClock returns a Clock reading the wall clock in loc.
func NewClock(loc *time.Location) Clock {
	return func() time.Time { return time.Now().In(loc) }
}

// monthBounds returns the first and last calendar day of now's month.
func monthBounds(now time.Time) (first, last time.Time) {
	first = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	last = first.AddDate(0, 1, -1)
	return first, last
}
