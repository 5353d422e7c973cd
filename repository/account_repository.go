package repository

import (
	"context"
	"time"

	"github.com/Govind-619/OrderSphere/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AccountRepository stores clients, admins and revoked tokens.
type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) FindClientByUsername(ctx context.Context, username string) (*models.Client, error) {
	var client models.Client
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&client).Error; err != nil {
		return nil, translate(err)
	}
	return &client, nil
}

func (r *AccountRepository) FindClientByID(ctx context.Context, id uint) (*models.Client, error) {
	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, id).Error; err != nil {
		return nil, translate(err)
	}
	return &client, nil
}

// UpdateClientProfile saves the tax id and markup percentages.
func (r *AccountRepository) UpdateClientProfile(ctx context.Context, client *models.Client) error {
	return r.db.WithContext(ctx).Model(client).
		Select("TaxID", "Markup1", "Markup2", "Markup3").
		Updates(client).Error
}

func (r *AccountRepository) UpdateClientPassword(ctx context.Context, id uint, hash string) error {
	return r.db.WithContext(ctx).Model(&models.Client{}).Where("id = ?", id).Update("password", hash).Error
}

func (r *AccountRepository) TouchClientLogin(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).Model(&models.Client{}).Where("id = ?", id).Update("last_login_at", at).Error
}

func (r *AccountRepository) FindAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	var admin models.Admin
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&admin).Error; err != nil {
		return nil, translate(err)
	}
	return &admin, nil
}

func (r *AccountRepository) FindAdminByID(ctx context.Context, id uint) (*models.Admin, error) {
	var admin models.Admin
	if err := r.db.WithContext(ctx).First(&admin, id).Error; err != nil {
		return nil, translate(err)
	}
	return &admin, nil
}

func (r *AccountRepository) TouchAdminLogin(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).Model(&models.Admin{}).Where("id = ?", id).Update("last_login", at).Error
}

// RevokeToken blacklists a token until expiresAt. Revoking twice is a no-op.
func (r *AccountRepository) RevokeToken(ctx context.Context, token string, expiresAt time.Time) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.BlacklistedToken{Token: token, ExpiresAt: expiresAt}).Error
}

func (r *AccountRepository) IsTokenRevoked(ctx context.Context, token string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.BlacklistedToken{}).Where("token = ?", token).Count(&n).Error
	return n > 0, err
}

// PurgeExpiredTokens deletes blacklist entries past their expiry.
func (r *AccountRepository) PurgeExpiredTokens(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Unscoped().Where("expires_at < ?", now).Delete(&models.BlacklistedToken{})
	return res.RowsAffected, res.Error
}

// EnsureAdmin creates the admin unless one with the same email exists. It
// reports whether a row was created.
func (r *AccountRepository) EnsureAdmin(ctx context.Context, admin *models.Admin) (bool, error) {
	res := r.db.WithContext(ctx).Where(models.Admin{Email: admin.Email}).FirstOrCreate(admin)
	return res.RowsAffected > 0, res.Error
}
