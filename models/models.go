package models

import (
	"time"

	"gorm.io/gorm"
)

// Client is a distributor customer account. A client may be linked to a
// secondary account whose orders and drafts it also sees.
type Client struct {
	gorm.Model
	Username      string     `gorm:"uniqueIndex;not null" json:"username"`
	Password      string     `json:"-"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	TaxID         string     `json:"tax_id"`
	Debt          float64    `json:"debt"`
	LastPaymentAt *time.Time `json:"last_payment_at"`
	SecondaryID   *uint      `json:"secondary_id"`
	Markup1       float64    `json:"markup_1"`
	Markup2       float64    `json:"markup_2"`
	Markup3       float64    `json:"markup_3"`
	IsBlocked     bool       `json:"is_blocked" gorm:"default:false"`
	LastLoginAt   *time.Time `json:"last_login_at"`
}

// AccountIDs returns the client's own id followed by the secondary account, if any.
func (c Client) AccountIDs() []uint {
	ids := []uint{c.ID}
	if c.SecondaryID != nil && *c.SecondaryID != 0 && *c.SecondaryID != c.ID {
		ids = append(ids, *c.SecondaryID)
	}
	return ids
}

// IsPrimary reports whether accountID is the client's own account.
func (c Client) IsPrimary(accountID uint) bool {
	return accountID == c.ID
}

// DebtDays is the number of whole days since the last payment, 0 when none was recorded.
func (c Client) DebtDays(now time.Time) int {
	if c.LastPaymentAt == nil || c.LastPaymentAt.After(now) {
		return 0
	}
	return int(now.Sub(*c.LastPaymentAt).Hours() / 24)
}

// Admin represents a back office operator
type Admin struct {
	gorm.Model
	Email     string     `gorm:"uniqueIndex;not null" json:"email"`
	Password  string     `json:"-"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	LastLogin *time.Time `json:"last_login"`
	IsActive  bool       `json:"is_active" gorm:"default:true"`
}
